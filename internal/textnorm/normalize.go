// Package textnorm canonicalizes video titles before feature extraction.
//
// Normalize applies, in order: NFKC and lowercasing, hashtag removal,
// episode marker removal, square-bracket tag removal, deletion of the
// 【】<> characters, emoji removal, collapsing of repeated elongation
// symbols, and whitespace collapsing.
package textnorm

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Python-compatible whitespace: Unicode separators plus vertical tab, the C0
// file/group/record/unit separators and NEL. RE2's \s omits \v.
const space = `\s\p{Z}\x{0B}\x{1C}-\x{1F}\x{85}`

var (
	hashtagPattern    = regexp.MustCompile(`#[^` + space + `]+`)
	episodePattern    = regexp.MustCompile(`(?i)(?:vol\.?[` + space + `]*\p{Nd}+|no\.?[` + space + `]*\p{Nd}+|#[` + space + `]*\p{Nd}+)`)
	bracketTagPattern = regexp.MustCompile(`\[[^\]]+\]`)
	emojiPattern      = regexp.MustCompile(`[\x{1F1E0}-\x{1F1FF}\x{1F300}-\x{1FAFF}\x{2600}-\x{27BF}]+`)
	whitespacePattern = regexp.MustCompile(`[` + space + `]+`)

	trimReplacer = strings.NewReplacer("【", "", "】", "", "<", "", ">", "")
)

// maxPasses bounds the fixpoint loop. Removing one token can expose
// another (for example "vol【】1"), so a single pass is not always stable.
const maxPasses = 16

// Normalize returns the canonical form of title. It never fails; empty or
// symbol-only input yields an empty string. The result is a fixpoint:
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(title string) string {
	out := normalizeOnce(title)
	for i := 1; i < maxPasses; i++ {
		next := normalizeOnce(out)
		if next == out {
			break
		}
		out = next
	}
	return out
}

func normalizeOnce(s string) string {
	// Full case mapping ("İ" lowers to "i̇"); a Caser is stateful, so one per call.
	s = cases.Lower(language.Und).String(norm.NFKC.String(s))
	s = hashtagPattern.ReplaceAllLiteralString(s, " ")
	s = episodePattern.ReplaceAllLiteralString(s, " ")
	s = bracketTagPattern.ReplaceAllLiteralString(s, " ")
	s = trimReplacer.Replace(s)
	s = emojiPattern.ReplaceAllLiteralString(s, " ")
	s = collapseRepeated(s)
	s = whitespacePattern.ReplaceAllLiteralString(s, " ")
	return strings.TrimSpace(s)
}

// elongation holds the symbols whose identical runs collapse to one.
var elongation = map[rune]struct{}{}

func init() {
	for _, r := range "!?！？w〜・…、。-―_+=♡♥★☆♪" {
		elongation[r] = struct{}{}
	}
}

// IsElongation reports whether r belongs to the repeated-symbol set.
func IsElongation(r rune) bool {
	_, ok := elongation[r]
	return ok
}

func collapseRepeated(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prev := rune(-1)
	for _, r := range s {
		if r == prev && IsElongation(r) {
			continue
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}
