package classifier_test

import (
	"errors"
	"math"
	"sync"
	"testing"

	"lafter/internal/classifier"
	"lafter/internal/keywords"
	"lafter/internal/label"
	"lafter/internal/services"
	"lafter/internal/testsupport"
	"lafter/internal/titlemodel"
)

func newClassifier(t *testing.T, threshold float64) *classifier.Classifier {
	t.Helper()
	adj, err := keywords.NewAdjuster(keywords.Default())
	if err != nil {
		t.Fatalf("NewAdjuster: %v", err)
	}
	c, err := classifier.New(testsupport.SampleModel(t), adj, threshold)
	if err != nil {
		t.Fatalf("classifier.New: %v", err)
	}
	return c
}

func TestClassifyTitleExamples(t *testing.T) {
	c := newClassifier(t, 0.5)

	pos := c.ClassifyTitle("【コント】面白すぎて生徒人気No.1の先生")
	if pos.NormalizedTitle != "コント面白すぎて生徒人気 の先生" {
		t.Fatalf("unexpected normalized title %q", pos.NormalizedTitle)
	}
	if pos.Label != label.Comedy {
		t.Fatalf("expected comedy label, got %+v", pos)
	}

	neg := c.ClassifyTitle("サンデージャポン【公式】")
	if neg.NormalizedTitle != "サンデージャポン公式" {
		t.Fatalf("unexpected normalized title %q", neg.NormalizedTitle)
	}
	if neg.Label != label.Other {
		t.Fatalf("expected other label, got %+v", neg)
	}
}

func TestClassifyEmptyTitle(t *testing.T) {
	c := newClassifier(t, 0.5)
	res := c.ClassifyTitle("")
	if res.Label != label.Other {
		t.Fatalf("expected other label for empty title, got %+v", res)
	}
	if math.IsNaN(res.Probability) || math.IsInf(res.Probability, 0) {
		t.Fatalf("expected finite probability, got %v", res.Probability)
	}
	if res.Score != -0.6 {
		t.Fatalf("expected intercept-only score, got %v", res.Score)
	}
}

func TestThresholdBoundaryIsInclusive(t *testing.T) {
	model, err := titlemodel.New(titlemodel.Artifact{
		Vectorizer: titlemodel.VectorizerSpec{NgramRange: []int{2, 2}, FeatureNames: []string{"zz"}, IDF: []float64{1}},
		Classifier: titlemodel.ClassifierSpec{Coef: []float64{1}, Intercept: 0},
	})
	if err != nil {
		t.Fatalf("titlemodel.New: %v", err)
	}
	c, err := classifier.New(model, nil, 0.5)
	if err != nil {
		t.Fatalf("classifier.New: %v", err)
	}
	res := c.ClassifyTitle("")
	if res.Probability != 0.5 {
		t.Fatalf("expected probability exactly 0.5, got %v", res.Probability)
	}
	if res.Label != label.Comedy {
		t.Fatalf("probability equal to threshold must be comedy, got %v", res.Label)
	}
}

func TestKeywordAdjustmentFeedsScore(t *testing.T) {
	model := testsupport.SampleModel(t)
	table := keywords.Table{Positive: []string{"ネタ"}, Negative: []string{"配信"}, PositiveBonus: 1, NegativePenalty: 3}
	adj, err := keywords.NewAdjuster(table)
	if err != nil {
		t.Fatalf("NewAdjuster: %v", err)
	}
	with, err := classifier.New(model, adj, 0.5)
	if err != nil {
		t.Fatalf("classifier.New: %v", err)
	}
	without, err := classifier.New(model, nil, 0.5)
	if err != nil {
		t.Fatalf("classifier.New: %v", err)
	}
	title := "ネタ配信"
	diff := with.ClassifyTitle(title).Score - without.ClassifyTitle(title).Score
	if math.Abs(diff-(-3)) > 1e-12 {
		t.Fatalf("expected adjustment of exactly -3, got %v", diff)
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	c := newClassifier(t, 0.5)
	title := "漫才ネタ【公式】配信コント #お笑い"
	first := c.ClassifyTitle(title)
	for i := 0; i < 20; i++ {
		if got := c.ClassifyTitle(title); got != first {
			t.Fatalf("result changed: %+v vs %+v", got, first)
		}
	}
}

func TestClassifyBatchPreservesOrder(t *testing.T) {
	c := newClassifier(t, 0.5)
	titles := []string{"【コント】先生", "サンデージャポン【公式】", "", "漫才ネタ", "配信のお知らせ"}
	results := c.ClassifyBatch(titles)
	if len(results) != len(titles) {
		t.Fatalf("expected %d results, got %d", len(titles), len(results))
	}
	for i, title := range titles {
		if results[i].Title != title {
			t.Fatalf("result %d has title %q, want %q", i, results[i].Title, title)
		}
		if single := c.ClassifyTitle(title); single != results[i] {
			t.Fatalf("batch result %d differs from single call: %+v vs %+v", i, results[i], single)
		}
	}
}

func TestClassifyConcurrent(t *testing.T) {
	c := newClassifier(t, 0.5)
	want := c.ClassifyTitle("漫才ネタ")
	var wg sync.WaitGroup
	var mu sync.Mutex
	mismatches := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := c.ClassifyTitle("漫才ネタ"); got != want {
				mu.Lock()
				mismatches++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if mismatches != 0 {
		t.Fatalf("%d concurrent results differed", mismatches)
	}
}

func TestThresholdValidation(t *testing.T) {
	model := testsupport.SampleModel(t)
	for _, th := range []float64{0, 1, -0.1, 1.5, math.NaN()} {
		if _, err := classifier.New(model, nil, th); !errors.Is(err, services.ErrConfiguration) {
			t.Fatalf("threshold %v: expected configuration error, got %v", th, err)
		}
	}
	if _, err := classifier.New(nil, nil, 0.5); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("nil model: expected configuration error, got %v", err)
	}
}

func TestLoadFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := testsupport.WriteModel(t, dir, testsupport.SampleArtifact())
	c, err := classifier.Load(path, "", 0.6)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Threshold() != 0.6 {
		t.Fatalf("unexpected threshold %v", c.Threshold())
	}
	if _, err := classifier.Load(path, "", 1); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
