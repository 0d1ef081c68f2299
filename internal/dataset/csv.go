package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"lafter/internal/fileutil"
	"lafter/internal/services"
)

// WriteLabeled writes a title,label CSV. Rows without a label are an error.
func WriteLabeled(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"title", "label"}); err != nil {
		return err
	}
	for i, row := range rows {
		if row.Label == nil {
			return services.Wrap(services.ErrValidation, "dataset", "write labeled", fmt.Sprintf("row %d has no label", i), nil)
		}
		if err := cw.Write([]string{row.Title, row.Label.CSV()}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteUnlabeled writes a title,normalized_title CSV.
func WriteUnlabeled(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"title", "normalized_title"}); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write([]string{row.Title, row.NormalizedTitle}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadTitles returns the title column of a CSV with a header row. A missing
// title column is a validation error.
func ReadTitles(r io.Reader) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, services.Wrap(services.ErrValidation, "dataset", "read titles", "csv is empty", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = trimBOM(header[0])
	}
	column := slices.Index(header, "title")
	if column < 0 {
		return nil, services.Wrap(services.ErrValidation, "dataset", "read titles", "csv has no title column", nil)
	}

	var titles []string
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		if column < len(record) {
			titles = append(titles, record[column])
		} else {
			titles = append(titles, "")
		}
	}
	return titles, nil
}

func trimBOM(s string) string {
	const bom = "\ufeff"
	return strings.TrimPrefix(s, bom)
}

// writeFile atomically replaces path with the output of write.
func writeFile(path string, write func(io.Writer) error) error {
	if err := fileutil.WriteAtomic(path, 0o644, write); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// WriteCSVFile is writeFile for callers outside the package.
func WriteCSVFile(path string, write func(io.Writer) error) error {
	return writeFile(path, write)
}
