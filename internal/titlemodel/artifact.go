package titlemodel

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"lafter/internal/services"
)

// Artifact mirrors the exported model document.
type Artifact struct {
	Vectorizer VectorizerSpec `json:"vectorizer"`
	Classifier ClassifierSpec `json:"classifier"`
}

// VectorizerSpec describes the character n-gram TF-IDF vocabulary.
type VectorizerSpec struct {
	Analyzer     string    `json:"analyzer,omitempty"`
	NgramRange   []int     `json:"ngram_range"`
	Lowercase    *bool     `json:"lowercase,omitempty"`
	FeatureNames []string  `json:"feature_names"`
	IDF          []float64 `json:"idf"`
}

// ClassifierSpec holds the logistic regression parameters.
type ClassifierSpec struct {
	Coef      []float64 `json:"coef"`
	Intercept float64   `json:"intercept"`
	Classes   []int     `json:"classes,omitempty"`
}

// Load reads and validates a model artifact from disk.
func Load(path string) (*Model, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("load model: %w: model path is empty", services.ErrConfiguration)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w: %w", path, services.ErrConfiguration, err)
	}
	model, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", path, err)
	}
	return model, nil
}

// Parse decodes and validates an artifact document.
func Parse(data []byte) (*Model, error) {
	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("%w: decode model artifact: %w", services.ErrConfiguration, err)
	}
	return New(artifact)
}

// New validates an artifact and builds the immutable lookup model.
func New(artifact Artifact) (*Model, error) {
	if err := artifact.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", services.ErrConfiguration, err)
	}
	v := artifact.Vectorizer
	features := make(map[string]Feature, len(v.FeatureNames))
	for i, name := range v.FeatureNames {
		features[name] = Feature{IDF: v.IDF[i], Coef: artifact.Classifier.Coef[i]}
	}
	return &Model{
		features:  features,
		intercept: artifact.Classifier.Intercept,
		minN:      v.NgramRange[0],
		maxN:      v.NgramRange[1],
	}, nil
}

// Validate checks the structural invariants of the artifact.
func (a Artifact) Validate() error {
	v := a.Vectorizer
	if analyzer := strings.TrimSpace(v.Analyzer); analyzer != "" && analyzer != "char" {
		return fmt.Errorf("vectorizer.analyzer %q is not supported (want char)", analyzer)
	}
	if len(v.NgramRange) != 2 {
		return errors.New("vectorizer.ngram_range must have exactly two entries")
	}
	if v.NgramRange[0] < 1 || v.NgramRange[0] > v.NgramRange[1] {
		return fmt.Errorf("vectorizer.ngram_range [%d, %d] is invalid", v.NgramRange[0], v.NgramRange[1])
	}
	if len(v.FeatureNames) == 0 {
		return errors.New("vectorizer.feature_names is empty")
	}
	if len(v.IDF) != len(v.FeatureNames) {
		return fmt.Errorf("vectorizer.idf has %d entries, feature_names has %d", len(v.IDF), len(v.FeatureNames))
	}
	if len(a.Classifier.Coef) != len(v.FeatureNames) {
		return fmt.Errorf("classifier.coef has %d entries, feature_names has %d", len(a.Classifier.Coef), len(v.FeatureNames))
	}
	if !finite(a.Classifier.Intercept) {
		return errors.New("classifier.intercept must be finite")
	}
	seen := make(map[string]struct{}, len(v.FeatureNames))
	for i, name := range v.FeatureNames {
		if name == "" {
			return fmt.Errorf("vectorizer.feature_names[%d] is empty", i)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("vectorizer.feature_names contains duplicate %q", name)
		}
		seen[name] = struct{}{}
		if !finite(v.IDF[i]) || v.IDF[i] < 0 {
			return fmt.Errorf("vectorizer.idf[%d] must be finite and non-negative", i)
		}
		if !finite(a.Classifier.Coef[i]) {
			return fmt.Errorf("classifier.coef[%d] must be finite", i)
		}
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
