// Package classifier composes the rule/model title pipeline: normalize,
// extract TF-IDF features, score, apply keyword bias, squash through the
// sigmoid, and threshold.
//
// A Classifier is immutable after New and safe for concurrent use. All
// configuration problems surface from New; ClassifyTitle never fails.
package classifier

import (
	"fmt"
	"math"

	"lafter/internal/keywords"
	"lafter/internal/label"
	"lafter/internal/services"
	"lafter/internal/textnorm"
	"lafter/internal/titlemodel"
)

// Result is the verdict for one title.
type Result struct {
	Title           string      `json:"title"`
	NormalizedTitle string      `json:"normalizedTitle"`
	Probability     float64     `json:"probability"`
	Label           label.Label `json:"label"`
	Score           float64     `json:"score"`
}

// Classifier scores titles against a loaded model.
type Classifier struct {
	model     *titlemodel.Model
	keywords  *keywords.Adjuster
	threshold float64
}

// ValidateThreshold rejects values outside the open interval (0, 1).
func ValidateThreshold(threshold float64) error {
	if math.IsNaN(threshold) || threshold <= 0 || threshold >= 1 {
		return fmt.Errorf("%w: threshold %v must be strictly between 0 and 1", services.ErrConfiguration, threshold)
	}
	return nil
}

// New builds a classifier. A nil adjuster disables keyword bias.
func New(model *titlemodel.Model, adjuster *keywords.Adjuster, threshold float64) (*Classifier, error) {
	if model == nil {
		return nil, fmt.Errorf("%w: model is required", services.ErrConfiguration)
	}
	if err := ValidateThreshold(threshold); err != nil {
		return nil, err
	}
	return &Classifier{model: model, keywords: adjuster, threshold: threshold}, nil
}

// Load reads the model and keyword table from disk and builds a classifier.
// An empty keywordsPath uses the embedded default table.
func Load(modelPath, keywordsPath string, threshold float64) (*Classifier, error) {
	if err := ValidateThreshold(threshold); err != nil {
		return nil, err
	}
	model, err := titlemodel.Load(modelPath)
	if err != nil {
		return nil, err
	}
	table, err := keywords.Load(keywordsPath)
	if err != nil {
		return nil, err
	}
	adjuster, err := keywords.NewAdjuster(table)
	if err != nil {
		return nil, err
	}
	return New(model, adjuster, threshold)
}

// Threshold returns the decision cutoff.
func (c *Classifier) Threshold() float64 { return c.threshold }

// Model returns the underlying model.
func (c *Classifier) Model() *titlemodel.Model { return c.model }

// ClassifyTitle runs the full pipeline for one title.
func (c *Classifier) ClassifyTitle(title string) Result {
	normalized := textnorm.Normalize(title)
	score := c.model.Score(c.model.Extract(normalized))
	if c.keywords != nil {
		score = c.keywords.Adjust(normalized, score)
	}
	probability := titlemodel.Sigmoid(score)
	return Result{
		Title:           title,
		NormalizedTitle: normalized,
		Probability:     probability,
		Label:           label.FromBool(probability >= c.threshold),
		Score:           score,
	}
}

// ClassifyBatch classifies each title independently, preserving order.
func (c *Classifier) ClassifyBatch(titles []string) []Result {
	results := make([]Result, len(titles))
	for i, title := range titles {
		results[i] = c.ClassifyTitle(title)
	}
	return results
}
