package domain

import (
	"cmp"
	"encoding/json"
	"slices"
	"strings"
	"unicode/utf8"
)

// joinSeparator is used when flattening readings and meanings.
const joinSeparator = ", "

// KanjiEntry is one dictionary record, keyed by its literal.
// Entries are treated as immutable once constructed: accessors hand out copies.
type KanjiEntry struct {
	Literal         string     `json:"literal"`
	Grade           int        `json:"grade"`
	StrokeCount     int        `json:"stroke_count"`
	Onyomi          []string   `json:"onyomi"`
	Kunyomi         []string   `json:"kunyomi"`
	EnglishMeanings MeaningSet `json:"english_meanings"`
}

// IsGraded reports whether the entry belongs to the school curriculum.
// Grade 0 and negative grades mean "ungraded".
func (e KanjiEntry) IsGraded() bool {
	return e.Grade >= 1
}

// Clone returns a deep copy of the entry.
func (e KanjiEntry) Clone() KanjiEntry {
	e.Onyomi = slices.Clone(e.Onyomi)
	e.Kunyomi = slices.Clone(e.Kunyomi)
	e.EnglishMeanings = e.EnglishMeanings.Clone()
	return e
}

// Validate checks the invariants every entry in a Dictionary must hold.
func (e KanjiEntry) Validate() error {
	var errs []FieldError
	switch {
	case e.Literal == "":
		errs = append(errs, FieldError{Field: "literal", Message: "required"})
	case utf8.RuneCountInString(e.Literal) != 1:
		errs = append(errs, FieldError{Field: "literal", Message: "must be a single character"})
	}
	if e.StrokeCount < 0 {
		errs = append(errs, FieldError{Field: "stroke_count", Message: "must be >= 0"})
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// Simple flattens the entry into its reporting projection.
func (e KanjiEntry) Simple() KanjiEntrySimple {
	return KanjiEntrySimple{
		Literal:         e.Literal,
		Grade:           e.Grade,
		StrokeCount:     e.StrokeCount,
		Onyomi:          strings.Join(e.Onyomi, joinSeparator),
		Kunyomi:         strings.Join(e.Kunyomi, joinSeparator),
		EnglishMeanings: strings.Join(e.EnglishMeanings.Values(), joinSeparator),
	}
}

// KanjiEntrySimple is the flattened projection of KanjiEntry used in reports.
// It is comparable: two values are equal iff every field matches exactly.
type KanjiEntrySimple struct {
	Literal         string `json:"literal"          yaml:"literal"`
	Grade           int    `json:"grade"            yaml:"grade"`
	StrokeCount     int    `json:"stroke_count"     yaml:"stroke_count"`
	Onyomi          string `json:"onyomi"           yaml:"onyomi"`
	Kunyomi         string `json:"kunyomi"          yaml:"kunyomi"`
	EnglishMeanings string `json:"english_meanings" yaml:"english_meanings"`
}

// ---------------------------------------------------------------------------
// Ordering
// ---------------------------------------------------------------------------

// CompareKeys orders by (grade, stroke count) with ungraded entries last:
//  1. grade < 1 sorts after every grade >= 1
//  2. otherwise lower grade first
//  3. equal grades: fewer strokes first
func CompareKeys(gradeA, strokesA, gradeB, strokesB int) int {
	gradedA, gradedB := gradeA >= 1, gradeB >= 1
	switch {
	case !gradedA && gradedB:
		return 1
	case gradedA && !gradedB:
		return -1
	case gradeA != gradeB:
		return cmp.Compare(gradeA, gradeB)
	default:
		return cmp.Compare(strokesA, strokesB)
	}
}

// CompareEntries applies CompareKeys to two entries.
func CompareEntries(a, b KanjiEntry) int {
	return CompareKeys(a.Grade, a.StrokeCount, b.Grade, b.StrokeCount)
}

// CompareSimple applies CompareKeys to two simplified entries.
func CompareSimple(a, b KanjiEntrySimple) int {
	return CompareKeys(a.Grade, a.StrokeCount, b.Grade, b.StrokeCount)
}

// SortEntries sorts in place by CompareEntries. Ties on (grade, strokes)
// fall back to the literal so reports are byte-for-byte reproducible.
func SortEntries(entries []KanjiEntry) {
	slices.SortStableFunc(entries, func(a, b KanjiEntry) int {
		if c := CompareEntries(a, b); c != 0 {
			return c
		}
		return strings.Compare(a.Literal, b.Literal)
	})
}

// SortSimple is SortEntries for the simplified projection.
func SortSimple(entries []KanjiEntrySimple) {
	slices.SortStableFunc(entries, func(a, b KanjiEntrySimple) int {
		if c := CompareSimple(a, b); c != 0 {
			return c
		}
		return strings.Compare(a.Literal, b.Literal)
	})
}

// ToSimple projects a slice of entries, preserving order.
func ToSimple(entries []KanjiEntry) []KanjiEntrySimple {
	out := make([]KanjiEntrySimple, len(entries))
	for i, e := range entries {
		out[i] = e.Simple()
	}
	return out
}

// Literals returns the literal of each entry, preserving order.
func Literals(entries []KanjiEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Literal
	}
	return out
}

// ---------------------------------------------------------------------------
// MeaningSet
// ---------------------------------------------------------------------------

// MeaningSet is a set of meaning strings. Duplicates collapse on insert.
// Values are kept in first-insertion order so serialization is deterministic;
// equality ignores that order.
type MeaningSet struct {
	items []string
	index map[string]struct{}
}

// NewMeaningSet builds a set from values, dropping duplicates.
func NewMeaningSet(values ...string) MeaningSet {
	var s MeaningSet
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Add inserts v and reports whether it was new.
func (s *MeaningSet) Add(v string) bool {
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	if _, ok := s.index[v]; ok {
		return false
	}
	s.index[v] = struct{}{}
	s.items = append(s.items, v)
	return true
}

// Contains reports whether v is in the set.
func (s MeaningSet) Contains(v string) bool {
	_, ok := s.index[v]
	return ok
}

// Len returns the number of distinct meanings.
func (s MeaningSet) Len() int {
	return len(s.items)
}

// Values returns a copy of the meanings in insertion order.
func (s MeaningSet) Values() []string {
	return slices.Clone(s.items)
}

// Sorted returns a copy of the meanings in lexical order.
func (s MeaningSet) Sorted() []string {
	out := slices.Clone(s.items)
	slices.Sort(out)
	return out
}

// Equal reports set equality, independent of insertion order.
func (s MeaningSet) Equal(other MeaningSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, v := range s.items {
		if !other.Contains(v) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the set.
func (s MeaningSet) Clone() MeaningSet {
	return NewMeaningSet(s.items...)
}

// MarshalJSON encodes the set as a JSON array. An empty set encodes as [].
func (s MeaningSet) MarshalJSON() ([]byte, error) {
	if s.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.items)
}

// UnmarshalJSON decodes a JSON array, collapsing duplicates. null decodes
// to an empty set.
func (s *MeaningSet) UnmarshalJSON(data []byte) error {
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*s = NewMeaningSet(values...)
	return nil
}
