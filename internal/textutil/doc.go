// Package textutil provides rune-level edit distance helpers used to drop
// near-duplicate titles when building datasets.
//
// Distances count Unicode code points, not bytes, so a single kana or kanji
// edit costs one. WithinDistance answers the bounded question with an early
// exit and is what deduplication calls on every kept/candidate pair.
package textutil
