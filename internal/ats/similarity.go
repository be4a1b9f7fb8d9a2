package ats

// Distance returns the Levenshtein edit distance between a and b
// (unit-cost insert/delete/substitute), computed over runes.
func Distance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(rb); i++ {
		curr[0] = i
		for j := 1; j <= len(ra); j++ {
			if rb[i-1] == ra[j-1] {
				curr[j] = prev[j-1]
				continue
			}
			min := prev[j-1]
			if prev[j] < min {
				min = prev[j]
			}
			if curr[j-1] < min {
				min = curr[j-1]
			}
			curr[j] = min + 1
		}
		prev, curr = curr, prev
	}
	return prev[len(ra)]
}

// Similarity returns a normalized edit-distance similarity in [0,1].
// Two empty strings are defined as identical (1.0). The scorer only calls
// this as a fuzzy fallback when cheap substring checks fail, and only on the
// bounded keyword cross-product, since the DP is O(len(a)*len(b)) per pair.
func Similarity(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	longest := la
	if lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 1.0
	}
	return float64(longest-Distance(a, b)) / float64(longest)
}
