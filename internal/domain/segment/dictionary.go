package segment

import "sort"

// Dictionary is an immutable set of non-empty words used to segment text.
//
// The zero value is an empty dictionary. A Dictionary is safe for concurrent
// use by multiple goroutines once constructed.
type Dictionary struct {
	words map[string]struct{}

	// lengths holds the distinct word lengths in ascending order
	lengths []int
}

// NewDictionary builds a Dictionary from the given words.
// Duplicate words collapse into one entry and empty strings are dropped,
// since an empty word can never be part of a partition.
func NewDictionary(words ...string) Dictionary {
	set := make(map[string]struct{}, len(words))
	seen := make(map[int]struct{})
	lengths := make([]int, 0)

	for _, w := range words {
		if w == "" {
			continue
		}
		set[w] = struct{}{}
		if _, ok := seen[len(w)]; !ok {
			seen[len(w)] = struct{}{}
			lengths = append(lengths, len(w))
		}
	}
	sort.Ints(lengths)

	return Dictionary{
		words:   set,
		lengths: lengths,
	}
}

// Len returns the number of distinct words in the dictionary.
func (d Dictionary) Len() int {
	return len(d.words)
}

// IsEmpty reports whether the dictionary holds no words.
func (d Dictionary) IsEmpty() bool {
	return len(d.words) == 0
}

// Contains reports whether word is a member of the dictionary.
func (d Dictionary) Contains(word string) bool {
	_, ok := d.words[word]
	return ok
}

// MinWordLength returns the length in bytes of the shortest word,
// or 0 for an empty dictionary.
func (d Dictionary) MinWordLength() int {
	if len(d.lengths) == 0 {
		return 0
	}
	return d.lengths[0]
}

// Lengths returns a copy of the distinct word lengths in ascending order.
func (d Dictionary) Lengths() []int {
	out := make([]int, len(d.lengths))
	copy(out, d.lengths)
	return out
}

// Words returns the dictionary words sorted lexically.
func (d Dictionary) Words() []string {
	out := make([]string, 0, len(d.words))
	for w := range d.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}
