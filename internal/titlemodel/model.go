// Package titlemodel holds the exported linear title model and performs
// character n-gram TF-IDF extraction and linear scoring against it.
//
// A Model is immutable after construction and safe for concurrent use.
package titlemodel

import "math"

// Feature is the per-n-gram entry of the vocabulary.
type Feature struct {
	IDF  float64
	Coef float64
}

// Model is the read-only vocabulary lookup plus intercept and n-gram range.
type Model struct {
	features  map[string]Feature
	intercept float64
	minN      int
	maxN      int
}

// Weight is one non-zero component of a feature vector.
type Weight struct {
	Gram  string
	Value float64
}

// FeatureVector lists vocabulary hits in order of first occurrence
// (ascending n, then ascending position). Keeping a fixed order makes the
// floating point sums reproducible bit for bit.
type FeatureVector []Weight

// Norm returns the L2 norm of the vector.
func (fv FeatureVector) Norm() float64 {
	var sq float64
	for _, w := range fv {
		sq += w.Value * w.Value
	}
	return math.Sqrt(sq)
}

// Size returns the number of vocabulary entries.
func (m *Model) Size() int { return len(m.features) }

// Intercept returns the linear intercept.
func (m *Model) Intercept() float64 { return m.intercept }

// NgramRange returns the inclusive n-gram bounds.
func (m *Model) NgramRange() (int, int) { return m.minN, m.maxN }

// Lookup returns the vocabulary entry for gram.
func (m *Model) Lookup(gram string) (Feature, bool) {
	f, ok := m.features[gram]
	return f, ok
}

// Extract computes the L2-normalized TF-IDF vector of a normalized title.
// Windows are taken over code points. Titles with no vocabulary hits, or
// shorter than the minimum n, yield an empty vector.
func (m *Model) Extract(normalized string) FeatureVector {
	if normalized == "" {
		return nil
	}
	runes := []rune(normalized)
	index := make(map[string]int)
	var vec FeatureVector
	for n := m.minN; n <= m.maxN; n++ {
		for i := 0; i+n <= len(runes); i++ {
			gram := string(runes[i : i+n])
			if _, ok := m.features[gram]; !ok {
				continue
			}
			if pos, ok := index[gram]; ok {
				vec[pos].Value++
				continue
			}
			index[gram] = len(vec)
			vec = append(vec, Weight{Gram: gram, Value: 1})
		}
	}

	var normSq float64
	for i := range vec {
		vec[i].Value *= m.features[vec[i].Gram].IDF
		normSq += vec[i].Value * vec[i].Value
	}
	if normSq == 0 {
		return vec
	}
	norm := math.Sqrt(normSq)
	for i := range vec {
		vec[i].Value /= norm
	}
	return vec
}

// Score returns intercept + sum(weight * coef). Grams outside the
// vocabulary contribute nothing.
func (m *Model) Score(fv FeatureVector) float64 {
	score := m.intercept
	for _, w := range fv {
		f, ok := m.features[w.Gram]
		if !ok {
			continue
		}
		score += f.Coef * w.Value
	}
	return score
}

// Sigmoid is the standard logistic function.
func Sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
