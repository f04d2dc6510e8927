package kanji

import (
	"github.com/heartmarshall/kanjigap/internal/domain"
)

// Lookup resolves each character to its dictionary entry. Characters with no
// entry are dropped: deck and curriculum text routinely contains kanji the
// dictionary does not cover (names, variants). Never fails; an empty or nil
// set yields an empty slice.
//
// Each literal appears at most once because chars is a set. Callers must not
// rely on the order; the current implementation returns code point order.
func Lookup(dict *domain.Dictionary, chars CharSet) []domain.KanjiEntry {
	out := make([]domain.KanjiEntry, 0, len(chars))
	for _, r := range chars.Sorted() {
		if e, ok := dict.GetRune(r); ok {
			out = append(out, e)
		}
	}
	return out
}

// LookupText is Extract followed by Lookup.
func LookupText(dict *domain.Dictionary, texts ...string) []domain.KanjiEntry {
	return Lookup(dict, Extract(texts...))
}

// Misses returns the characters from chars that have no dictionary entry.
func Misses(dict *domain.Dictionary, chars CharSet) CharSet {
	out := make(CharSet)
	for r := range chars {
		if _, ok := dict.GetRune(r); !ok {
			out[r] = struct{}{}
		}
	}
	return out
}
