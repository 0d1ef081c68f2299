package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"lafter/internal/titlemodel"
)

// SampleArtifact returns a small hand-weighted model. Comedy n-grams carry
// positive coefficients and announcement n-grams negative ones; the
// intercept is negative so an empty title scores below 0.5.
func SampleArtifact() titlemodel.Artifact {
	names := []string{"コン", "ント", "コント", "漫才", "ネタ", "先生", "公式", "配信", "ジャポ", "お知ら", "告知"}
	idf := []float64{1.0, 1.0, 1.2, 1.1, 1.0, 1.5, 1.3, 1.4, 1.6, 1.7, 1.3}
	coef := []float64{2.0, 2.0, 2.5, 2.4, 1.8, 0.6, -2.2, -2.6, -1.2, -1.5, -2.0}
	lower := true
	return titlemodel.Artifact{
		Vectorizer: titlemodel.VectorizerSpec{
			Analyzer:     "char",
			NgramRange:   []int{2, 3},
			Lowercase:    &lower,
			FeatureNames: names,
			IDF:          idf,
		},
		Classifier: titlemodel.ClassifierSpec{
			Coef:      coef,
			Intercept: -0.6,
			Classes:   []int{0, 1},
		},
	}
}

// SampleModel builds the sample artifact into a model.
func SampleModel(t testing.TB) *titlemodel.Model {
	t.Helper()
	model, err := titlemodel.New(SampleArtifact())
	if err != nil {
		t.Fatalf("build sample model: %v", err)
	}
	return model
}

// WriteModel serializes artifact into dir and returns the file path.
func WriteModel(t testing.TB, dir string, artifact titlemodel.Artifact) string {
	t.Helper()
	data, err := json.Marshal(artifact)
	if err != nil {
		t.Fatalf("marshal model: %v", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	path := filepath.Join(dir, "video_classifier.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write model: %v", err)
	}
	return path
}
