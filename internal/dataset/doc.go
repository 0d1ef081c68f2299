// Package dataset builds training and inference CSVs from D1 query exports.
//
// An export is the text a D1 console prints: arbitrary preamble followed by
// a JSON array of result blocks, each with a results list whose rows carry a
// title. Titles are normalized on load, near duplicates (rune edit distance
// of two or less on the normalized title) are dropped keep-first, and rows are
// written as labeled title,label CSV or unlabeled title,normalized_title CSV.
package dataset
