package kanji

import (
	"github.com/heartmarshall/kanjigap/internal/domain"
)

// KnownSet is the membership index over a learner's known entries.
// Membership is by literal, the natural key: two parses of the same kanji can
// carry the same meanings in a different order, and that must not make a
// known kanji look unknown.
type KnownSet map[string]struct{}

// NewKnownSet indexes entries by literal.
func NewKnownSet(entries []domain.KanjiEntry) KnownSet {
	set := make(KnownSet, len(entries))
	for _, e := range entries {
		set[e.Literal] = struct{}{}
	}
	return set
}

// Has reports whether the literal is known.
func (k KnownSet) Has(literal string) bool {
	_, ok := k[literal]
	return ok
}

// Gap returns every dictionary entry with Grade == grade that is not in known,
// sorted by domain.SortEntries. An empty known set yields the whole grade; an
// unused grade yields an empty, non-nil slice.
func Gap(dict *domain.Dictionary, grade int, known []domain.KanjiEntry) []domain.KanjiEntry {
	return Subtract(dict.ByGrade(grade), known)
}

// GapSimple is Gap projected onto KanjiEntrySimple.
func GapSimple(dict *domain.Dictionary, grade int, known []domain.KanjiEntry) []domain.KanjiEntrySimple {
	return domain.ToSimple(Gap(dict, grade, known))
}

// Subtract removes known literals from entries and returns the remainder
// sorted by domain.SortEntries. entries is not modified.
func Subtract(entries, known []domain.KanjiEntry) []domain.KanjiEntry {
	index := NewKnownSet(known)
	out := make([]domain.KanjiEntry, 0, len(entries))
	for _, e := range entries {
		if index.Has(e.Literal) {
			continue
		}
		out = append(out, e)
	}
	domain.SortEntries(out)
	return out
}
