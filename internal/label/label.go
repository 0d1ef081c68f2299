// Package label defines the binary verdict shared by every classification path.
package label

import (
	"fmt"
	"strconv"
	"strings"
)

// Label is the canonical verdict: Comedy (1) marks a comedy performance
// video, Other (0) everything else.
type Label int

const (
	Other  Label = 0
	Comedy Label = 1
)

// FromBool maps a boolean verdict onto the canonical label.
func FromBool(b bool) Label {
	if b {
		return Comedy
	}
	return Other
}

// Bool reports whether the label is Comedy.
func (l Label) Bool() bool { return l == Comedy }

// Valid reports whether l is one of the two defined values.
func (l Label) Valid() bool { return l == Other || l == Comedy }

// String returns a human readable name.
func (l Label) String() string {
	switch l {
	case Comedy:
		return "comedy"
	case Other:
		return "other"
	default:
		return "label(" + strconv.Itoa(int(l)) + ")"
	}
}

// CSV returns the dataset encoding of the label ("1" or "0").
func (l Label) CSV() string { return strconv.Itoa(int(l)) }

// Parse accepts the dataset and display encodings: "1", "0", "comedy",
// "other", "true", "false". Matching is case-insensitive.
func Parse(raw string) (Label, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "comedy", "true":
		return Comedy, nil
	case "0", "other", "false":
		return Other, nil
	default:
		return Other, fmt.Errorf("invalid label %q", raw)
	}
}
