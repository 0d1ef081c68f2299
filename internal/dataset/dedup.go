package dataset

import "lafter/internal/textutil"

// DedupDistance is the largest edit distance at which two titles are the same.
const DedupDistance = 2

// Deduplicate keeps the first of every group of near-identical rows. Rows are
// compared on NormalizedTitle, falling back to Title when it is empty.
func Deduplicate(rows []Row) []Row {
	unique := make([]Row, 0, len(rows))
	keys := make([]string, 0, len(rows))
	for _, row := range rows {
		key := dedupKey(row)
		duplicate := false
		for _, kept := range keys {
			if textutil.WithinDistance(key, kept, DedupDistance) {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}
		unique = append(unique, row)
		keys = append(keys, key)
	}
	return unique
}

func dedupKey(row Row) string {
	if row.NormalizedTitle != "" {
		return row.NormalizedTitle
	}
	return row.Title
}
