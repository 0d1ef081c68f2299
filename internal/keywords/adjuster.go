package keywords

import (
	"sort"
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"
)

// Adjuster biases a raw score by keyword containment. It is immutable and
// safe for concurrent use.
type Adjuster struct {
	positive *ahocorasick.Matcher
	negative *ahocorasick.Matcher
	bonus    float64
	penalty  float64
}

// NewAdjuster builds the matchers for a validated table.
func NewAdjuster(table Table) (*Adjuster, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return &Adjuster{
		positive: buildMatcher(table.Positive),
		negative: buildMatcher(table.Negative),
		bonus:    table.PositiveBonus,
		penalty:  table.NegativePenalty,
	}, nil
}

// Matches reports whether the lowercased title contains any positive and
// any negative keyword.
func (a *Adjuster) Matches(normalized string) (positive, negative bool) {
	text := []byte(strings.ToLower(normalized))
	return contains(a.positive, text), contains(a.negative, text)
}

// Adjustment returns the additive bias for a normalized title. The bonus
// applies only without a negative hit; any negative hit subtracts the
// penalty.
func (a *Adjuster) Adjustment(normalized string) float64 {
	hasPositive, hasNegative := a.Matches(normalized)
	var adj float64
	if hasPositive && !hasNegative {
		adj += a.bonus
	}
	if hasNegative {
		adj -= a.penalty
	}
	return adj
}

// Adjust returns base plus the keyword adjustment.
func (a *Adjuster) Adjust(normalized string, base float64) float64 {
	return base + a.Adjustment(normalized)
}

func contains(m *ahocorasick.Matcher, text []byte) bool {
	if m == nil || len(text) == 0 {
		return false
	}
	return len(m.MatchThreadSafe(text)) > 0
}

// buildMatcher drops keywords that contain a shorter keyword, since only
// the presence of some hit matters.
func buildMatcher(words []string) *ahocorasick.Matcher {
	if len(words) == 0 {
		return nil
	}
	sorted := append([]string(nil), words...)
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) < len(sorted[j]) })
	kept := make([]string, 0, len(sorted))
	for _, w := range sorted {
		redundant := false
		for _, k := range kept {
			if strings.Contains(w, k) {
				redundant = true
				break
			}
		}
		if !redundant {
			kept = append(kept, w)
		}
	}
	return ahocorasick.NewStringMatcher(kept)
}
