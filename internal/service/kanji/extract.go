// Package kanji holds the cross-referencing logic: pulling kanji out of text,
// resolving them against a Dictionary and reconciling entry sets.
// Pure functions: no I/O, no logging.
package kanji

import (
	"maps"
	"slices"
)

// Bounds of the CJK Unified Ideographs block covered by KANJIDIC2.
const (
	rangeFirst = '\u4e00'
	rangeLast  = '\u9faf'
)

// IsKanji reports whether r falls in U+4E00–U+9FAF inclusive.
func IsKanji(r rune) bool {
	return r >= rangeFirst && r <= rangeLast
}

// CharSet is a set of distinct kanji runes.
type CharSet map[rune]struct{}

// Extract returns every distinct kanji across all texts. Anything outside the
// kanji range is dropped silently.
func Extract(texts ...string) CharSet {
	set := make(CharSet)
	for _, text := range texts {
		for _, r := range text {
			if IsKanji(r) {
				set[r] = struct{}{}
			}
		}
	}
	return set
}

// Contains reports whether r is in the set.
func (s CharSet) Contains(r rune) bool {
	_, ok := s[r]
	return ok
}

// Len returns the number of characters.
func (s CharSet) Len() int {
	return len(s)
}

// Sorted returns the characters in code point order.
func (s CharSet) Sorted() []rune {
	return slices.Sorted(maps.Keys(s))
}

// String renders the characters in code point order.
func (s CharSet) String() string {
	return string(s.Sorted())
}

// Union returns a new set holding the characters of s and other.
func (s CharSet) Union(other CharSet) CharSet {
	out := make(CharSet, len(s)+len(other))
	maps.Copy(out, s)
	maps.Copy(out, other)
	return out
}

// Equal reports whether both sets hold the same characters.
func (s CharSet) Equal(other CharSet) bool {
	if len(s) != len(other) {
		return false
	}
	for r := range s {
		if !other.Contains(r) {
			return false
		}
	}
	return true
}
