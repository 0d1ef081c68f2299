// Package keywords loads the positive/negative keyword tables and applies
// them as an additive bias on the raw linear score.
package keywords

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"lafter/internal/services"
)

//go:embed default_keywords.json
var defaultTable []byte

// Table is the validated keyword configuration. Keywords are lowercased
// and free of blanks and duplicates.
type Table struct {
	Positive        []string
	Negative        []string
	PositiveBonus   float64
	NegativePenalty float64
}

// document is the on-disk shape. Entries are untyped so non-string values
// can be skipped instead of failing the whole file.
type document struct {
	Positive        []any    `json:"positiveKeywords" yaml:"positiveKeywords"`
	Negative        []any    `json:"negativeKeywords" yaml:"negativeKeywords"`
	PositiveBonus   *float64 `json:"positiveKeywordBonus" yaml:"positiveKeywordBonus"`
	NegativePenalty *float64 `json:"negativeKeywordPenalty" yaml:"negativeKeywordPenalty"`
}

// Default returns the embedded keyword table.
func Default() Table {
	table, err := ParseJSON(defaultTable)
	if err != nil {
		panic(fmt.Sprintf("embedded keyword table is invalid: %v", err))
	}
	return table
}

// Load reads a keyword table from path. An empty path yields the embedded
// default. Files ending in .yaml or .yml are decoded as YAML, anything else
// as JSON.
func Load(path string) (Table, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("load keywords %s: %w: %w", path, services.ErrConfiguration, err)
	}
	var table Table
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		table, err = ParseYAML(data)
	default:
		table, err = ParseJSON(data)
	}
	if err != nil {
		return Table{}, fmt.Errorf("load keywords %s: %w", path, err)
	}
	return table, nil
}

// ParseJSON decodes a JSON keyword document.
func ParseJSON(data []byte) (Table, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Table{}, fmt.Errorf("%w: decode keyword json: %w", services.ErrConfiguration, err)
	}
	return doc.table()
}

// ParseYAML decodes a YAML keyword document.
func ParseYAML(data []byte) (Table, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Table{}, fmt.Errorf("%w: decode keyword yaml: %w", services.ErrConfiguration, err)
	}
	return doc.table()
}

func (d document) table() (Table, error) {
	table := Table{
		Positive: cleanWords(d.Positive),
		Negative: cleanWords(d.Negative),
	}
	if d.PositiveBonus != nil {
		table.PositiveBonus = *d.PositiveBonus
	}
	if d.NegativePenalty != nil {
		table.NegativePenalty = *d.NegativePenalty
	}
	if err := table.Validate(); err != nil {
		return Table{}, fmt.Errorf("%w: %w", services.ErrConfiguration, err)
	}
	return table, nil
}

// Validate checks magnitudes and that the two lists do not overlap.
func (t Table) Validate() error {
	if math.IsNaN(t.PositiveBonus) || math.IsInf(t.PositiveBonus, 0) || t.PositiveBonus < 0 {
		return errors.New("positiveKeywordBonus must be a finite non-negative number")
	}
	if math.IsNaN(t.NegativePenalty) || math.IsInf(t.NegativePenalty, 0) || t.NegativePenalty < 0 {
		return errors.New("negativeKeywordPenalty must be a finite non-negative number")
	}
	positives := make(map[string]struct{}, len(t.Positive))
	for _, w := range t.Positive {
		positives[strings.ToLower(w)] = struct{}{}
	}
	for _, w := range t.Negative {
		if _, dup := positives[strings.ToLower(w)]; dup {
			return fmt.Errorf("keyword %q is listed as both positive and negative", w)
		}
	}
	return nil
}

func cleanWords(values []any) []string {
	seen := make(map[string]struct{}, len(values))
	words := make([]string, 0, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		s = strings.ToLower(s)
		if strings.TrimSpace(s) == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		words = append(words, s)
	}
	return words
}
