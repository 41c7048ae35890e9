package segment

// CanSegment reports whether text can be split, left to right with no gaps
// or overlaps, into a sequence of zero or more words from dict. Words may be
// reused any number of times.
//
// Lengths and cut points are measured in bytes. Because every word is matched
// whole, a partition of valid UTF-8 text only ever cuts on rune boundaries.
//
// Decision order:
//   - Empty text is always segmentable (the empty partition), even with an
//     empty dictionary.
//   - A non-empty text can never be segmented by an empty dictionary.
//   - When the shortest word is exactly as long as the text, the only
//     possible partition is the text itself, so membership decides.
//   - When the shortest word is longer than the text, nothing fits.
//   - Otherwise the feasibility table is filled bottom-up.
//
// CanSegment has no side effects and never fails.
func CanSegment(text string, dict Dictionary) bool {
	n := len(text)
	if n == 0 {
		return true
	}
	if dict.IsEmpty() {
		return false
	}

	minLen := dict.MinWordLength()
	// Only sound because no word is shorter than the text: a single word is
	// then the sole partition shape. Two shorter words summing to n would
	// otherwise be missed.
	if minLen == n {
		return dict.Contains(text)
	}
	if minLen > n {
		return false
	}

	return reachable(text, dict)[n]
}

// reachable builds the feasibility table for text. Entry k is true iff the
// prefix text[:k] can be fully partitioned into dictionary words.
//
// For each cut point k the table is extended by any word that ends exactly
// at k and starts at an already reachable cut point. Iterating over the
// distinct word lengths and probing the set is equivalent to iterating over
// every word, but each probe is a single hash lookup.
func reachable(text string, dict Dictionary) []bool {
	n := len(text)
	table := make([]bool, n+1)
	table[0] = true

	for k := 1; k <= n; k++ {
		for _, l := range dict.lengths {
			// lengths are ascending, so no longer word can end at k either
			if l > k {
				break
			}
			if table[k-l] && dict.Contains(text[k-l:k]) {
				table[k] = true
				break
			}
		}
	}

	return table
}
