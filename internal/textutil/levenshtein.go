package textutil

// Levenshtein returns the insert/delete/substitute edit distance between a
// and b measured in runes.
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i, ca := range ra {
		curr[0] = i + 1
		for j, cb := range rb {
			cost := 1
			if ca == cb {
				cost = 0
			}
			curr[j+1] = min(curr[j]+1, prev[j+1]+1, prev[j]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// WithinDistance reports whether Levenshtein(a, b) <= limit without always
// filling the full table.
func WithinDistance(a, b string, limit int) bool {
	if limit < 0 {
		return false
	}
	if a == b {
		return true
	}
	ra, rb := []rune(a), []rune(b)
	if abs(len(ra)-len(rb)) > limit {
		return false
	}
	if len(ra) == 0 || len(rb) == 0 {
		return max(len(ra), len(rb)) <= limit
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i, ca := range ra {
		curr[0] = i + 1
		rowMin := curr[0]
		for j, cb := range rb {
			cost := 1
			if ca == cb {
				cost = 0
			}
			curr[j+1] = min(curr[j]+1, prev[j+1]+1, prev[j]+cost)
			rowMin = min(rowMin, curr[j+1])
		}
		// Row minima never decrease.
		if rowMin > limit {
			return false
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)] <= limit
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
