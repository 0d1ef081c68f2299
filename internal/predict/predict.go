// Package predict scores a CSV of titles with the rule/model classifier and
// writes all, positive, and negative prediction CSVs.
package predict

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"lafter/internal/classifier"
	"lafter/internal/dataset"
	"lafter/internal/label"
)

// Default output names inside the output directory.
const (
	AllOutputName      = "video_titles_predictions.csv"
	PositiveOutputName = "video_titles_predictions_positive.csv"
	NegativeOutputName = "video_titles_predictions_negative.csv"
)

var header = []string{"title", "normalized_title", "probability", "label"}

// Outputs names the three prediction files.
type Outputs struct {
	All      string
	Positive string
	Negative string
}

// DefaultOutputs lays the standard file names out under dir.
func DefaultOutputs(dir string) Outputs {
	return Outputs{
		All:      filepath.Join(dir, AllOutputName),
		Positive: filepath.Join(dir, PositiveOutputName),
		Negative: filepath.Join(dir, NegativeOutputName),
	}
}

// Counts reports how many rows landed in each file.
type Counts struct {
	Total     int
	Positive  int
	Negative  int
	Threshold float64
}

// Run reads titles from input, classifies them, and writes outputs.
func Run(cls *classifier.Classifier, input string, out Outputs) (Counts, error) {
	file, err := os.Open(input)
	if err != nil {
		return Counts{}, fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	titles, err := dataset.ReadTitles(file)
	if err != nil {
		return Counts{}, fmt.Errorf("%s: %w", input, err)
	}
	results := cls.ClassifyBatch(titles)

	var positives, negatives []classifier.Result
	for _, result := range results {
		if result.Label == label.Comedy {
			positives = append(positives, result)
		} else {
			negatives = append(negatives, result)
		}
	}

	targets := []struct {
		path string
		rows []classifier.Result
	}{
		{out.All, results},
		{out.Positive, positives},
		{out.Negative, negatives},
	}
	for _, target := range targets {
		rows := target.rows
		if err := dataset.WriteCSVFile(target.path, func(w io.Writer) error { return writeResults(w, rows) }); err != nil {
			return Counts{}, err
		}
	}
	return Counts{
		Total:     len(results),
		Positive:  len(positives),
		Negative:  len(negatives),
		Threshold: cls.Threshold(),
	}, nil
}

// writeResults emits title,normalized_title,probability,label with the
// probability fixed to six decimals.
func writeResults(w io.Writer, results []classifier.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, result := range results {
		record := []string{
			result.Title,
			result.NormalizedTitle,
			strconv.FormatFloat(result.Probability, 'f', 6, 64),
			result.Label.CSV(),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
