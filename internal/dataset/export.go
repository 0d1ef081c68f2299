package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"lafter/internal/label"
	"lafter/internal/services"
	"lafter/internal/textnorm"
)

// Row is one title extracted from an export.
type Row struct {
	Title           string
	NormalizedTitle string
	Label           *label.Label
}

// LoadOptions controls how export rows are shaped.
type LoadOptions struct {
	// Label is attached to every row when set.
	Label *label.Label
	// KeepRawTitle keeps the original title in Row.Title for unlabeled rows.
	// Labeled rows always carry the normalized title.
	KeepRawTitle bool
}

type exportBlock struct {
	Results []map[string]any `json:"results"`
}

// LoadD1Export reads and parses the export at path.
func LoadD1Export(path string, opts LoadOptions) ([]Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read export %s: %w", path, err)
	}
	rows, err := ParseD1Export(data, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// ParseD1Export extracts titles from the JSON array that starts at the first
// '[' in data. Rows without a non-empty string title are skipped.
func ParseD1Export(data []byte, opts LoadOptions) ([]Row, error) {
	start := bytes.IndexByte(data, '[')
	if start < 0 {
		return nil, services.Wrap(services.ErrValidation, "dataset", "parse export", "no json array found", nil)
	}
	var blocks []exportBlock
	if err := json.Unmarshal(data[start:], &blocks); err != nil {
		return nil, services.Wrap(services.ErrValidation, "dataset", "parse export", "invalid json", err)
	}

	var rows []Row
	for _, block := range blocks {
		for _, item := range block.Results {
			title, ok := item["title"].(string)
			if !ok || title == "" {
				continue
			}
			normalized := textnorm.Normalize(title)
			row := Row{Title: normalized, NormalizedTitle: normalized}
			if opts.Label != nil {
				lbl := *opts.Label
				row.Label = &lbl
			} else if opts.KeepRawTitle {
				row.Title = title
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}
