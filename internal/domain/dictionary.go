package domain

import (
	"fmt"
	"maps"
	"slices"
)

// Dictionary is the read-only literal→entry mapping built once per run and
// passed explicitly to everything that needs lookups.
type Dictionary struct {
	entries map[string]KanjiEntry
}

// NewDictionary validates entries and builds the mapping. Empty, multi-rune
// and duplicate literals are rejected.
func NewDictionary(entries []KanjiEntry) (*Dictionary, error) {
	m := make(map[string]KanjiEntry, len(entries))
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("entry %d (%q): %w", i, e.Literal, err)
		}
		if _, dup := m[e.Literal]; dup {
			return nil, fmt.Errorf("entry %d: %w", i, NewValidationError("literal", fmt.Sprintf("duplicate literal %q", e.Literal)))
		}
		m[e.Literal] = canonical(e)
	}
	return &Dictionary{entries: m}, nil
}

// canonical deep-copies e and replaces nil reading slices with empty ones
// so that every entry serializes its readings as arrays.
func canonical(e KanjiEntry) KanjiEntry {
	e = e.Clone()
	if e.Onyomi == nil {
		e.Onyomi = []string{}
	}
	if e.Kunyomi == nil {
		e.Kunyomi = []string{}
	}
	return e
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// Get returns a copy of the entry for literal.
func (d *Dictionary) Get(literal string) (KanjiEntry, bool) {
	if d == nil {
		return KanjiEntry{}, false
	}
	e, ok := d.entries[literal]
	if !ok {
		return KanjiEntry{}, false
	}
	return e.Clone(), true
}

// GetRune is Get keyed by a single rune.
func (d *Dictionary) GetRune(r rune) (KanjiEntry, bool) {
	return d.Get(string(r))
}

// Entries returns copies of all entries ordered by literal.
func (d *Dictionary) Entries() []KanjiEntry {
	if d == nil {
		return []KanjiEntry{}
	}
	out := make([]KanjiEntry, 0, len(d.entries))
	for _, lit := range slices.Sorted(maps.Keys(d.entries)) {
		out = append(out, d.entries[lit].Clone())
	}
	return out
}

// ByGrade returns copies of all entries with exactly the given grade,
// ordered by literal. An unused grade yields an empty slice.
func (d *Dictionary) ByGrade(grade int) []KanjiEntry {
	out := []KanjiEntry{}
	for _, e := range d.Entries() {
		if e.Grade == grade {
			out = append(out, e)
		}
	}
	return out
}

// Grades returns the distinct grades present, ascending.
func (d *Dictionary) Grades() []int {
	if d == nil {
		return nil
	}
	seen := make(map[int]struct{})
	for _, e := range d.entries {
		seen[e.Grade] = struct{}{}
	}
	return slices.Sorted(maps.Keys(seen))
}

// Map returns a copy of the mapping keyed by literal, for serialization.
func (d *Dictionary) Map() map[string]KanjiEntry {
	out := make(map[string]KanjiEntry, d.Len())
	if d == nil {
		return out
	}
	for lit, e := range d.entries {
		out[lit] = e.Clone()
	}
	return out
}
