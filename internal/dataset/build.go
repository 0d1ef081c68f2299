package dataset

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"lafter/internal/label"
)

// Default file names inside a data directory.
const (
	ComedyExportName    = "status1_videos.txt"
	OtherExportName     = "status2_videos.txt"
	PendingExportName   = "status0_videos.txt"
	LabeledOutputName   = "video_titles.csv"
	UnlabeledOutputName = "video_titles_unlabeled.csv"
)

// BuildOptions names the export inputs and CSV outputs.
type BuildOptions struct {
	ComedyExport    string
	OtherExport     string
	PendingExport   string
	LabeledOutput   string
	UnlabeledOutput string
}

// DefaultBuildOptions lays the standard file names out under dir.
func DefaultBuildOptions(dir string) BuildOptions {
	return BuildOptions{
		ComedyExport:    filepath.Join(dir, ComedyExportName),
		OtherExport:     filepath.Join(dir, OtherExportName),
		PendingExport:   filepath.Join(dir, PendingExportName),
		LabeledOutput:   filepath.Join(dir, LabeledOutputName),
		UnlabeledOutput: filepath.Join(dir, UnlabeledOutputName),
	}
}

// BuildResult reports row counts after deduplication.
type BuildResult struct {
	Labeled        int
	Unlabeled      int
	PendingSkipped bool
}

// Build writes the labeled CSV from the comedy and other exports and, when
// the pending export exists, the unlabeled CSV.
func Build(opts BuildOptions) (BuildResult, error) {
	comedy, other := label.Comedy, label.Other
	positives, err := LoadD1Export(opts.ComedyExport, LoadOptions{Label: &comedy})
	if err != nil {
		return BuildResult{}, err
	}
	negatives, err := LoadD1Export(opts.OtherExport, LoadOptions{Label: &other})
	if err != nil {
		return BuildResult{}, err
	}
	labeled := Deduplicate(append(positives, negatives...))
	if err := writeFile(opts.LabeledOutput, func(w io.Writer) error { return WriteLabeled(w, labeled) }); err != nil {
		return BuildResult{}, err
	}
	result := BuildResult{Labeled: len(labeled)}

	if opts.PendingExport == "" {
		result.PendingSkipped = true
		return result, nil
	}
	if _, err := os.Stat(opts.PendingExport); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			result.PendingSkipped = true
			return result, nil
		}
		return result, fmt.Errorf("stat pending export: %w", err)
	}
	pending, err := LoadD1Export(opts.PendingExport, LoadOptions{KeepRawTitle: true})
	if err != nil {
		return result, err
	}
	unlabeled := Deduplicate(pending)
	if err := writeFile(opts.UnlabeledOutput, func(w io.Writer) error { return WriteUnlabeled(w, unlabeled) }); err != nil {
		return result, err
	}
	result.Unlabeled = len(unlabeled)
	return result, nil
}
