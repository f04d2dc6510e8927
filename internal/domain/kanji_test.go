package domain

import (
	"encoding/json"
	"errors"
	"slices"
	"testing"
)

func entry(lit string, grade, strokes int) KanjiEntry {
	return KanjiEntry{Literal: lit, Grade: grade, StrokeCount: strokes}
}

// --- Ordering ---

func TestCompareKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b KanjiEntry
		want int
	}{
		{"ungraded after graded", entry("哀", 0, 1), entry("亜", 8, 30), 1},
		{"graded before ungraded", entry("亜", 8, 30), entry("哀", 0, 1), -1},
		{"negative grade counts as ungraded", entry("x", -3, 1), entry("y", 1, 20), 1},
		{"lower grade first", entry("一", 1, 1), entry("右", 2, 5), -1},
		{"higher grade later", entry("右", 3, 5), entry("一", 2, 1), 1},
		{"same grade by strokes", entry("一", 1, 1), entry("右", 1, 5), -1},
		{"same grade same strokes", entry("一", 1, 1), entry("乙", 1, 1), 0},
		{"both ungraded compare grade", entry("a", -1, 1), entry("b", 0, 1), -1},
		{"both ungraded same grade by strokes", entry("a", 0, 9), entry("b", 0, 3), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := CompareEntries(tt.a, tt.b); got != tt.want {
				t.Errorf("CompareEntries = %d, want %d", got, tt.want)
			}
			if got := CompareSimple(tt.a.Simple(), tt.b.Simple()); got != tt.want {
				t.Errorf("CompareSimple = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSortEntries(t *testing.T) {
	t.Parallel()

	entries := []KanjiEntry{
		entry("哀", 0, 9),
		entry("愛", 4, 13),
		entry("亜", 6, 7),
		entry("一", 1, 1),
		entry("悪", 3, 11),
		entry("安", 3, 6),
		entry("乙", 0, 1),
	}
	SortEntries(entries)

	want := []string{"一", "安", "悪", "愛", "亜", "乙", "哀"}
	if got := Literals(entries); !slices.Equal(got, want) {
		t.Errorf("sorted literals = %v, want %v", got, want)
	}
}

func TestSortSimple_TieBreakOnLiteral(t *testing.T) {
	t.Parallel()

	entries := []KanjiEntrySimple{
		entry("右", 1, 5).Simple(),
		entry("円", 1, 4).Simple(),
		entry("王", 1, 4).Simple(),
	}
	SortSimple(entries)

	var got []string
	for _, e := range entries {
		got = append(got, e.Literal)
	}
	want := []string{"円", "王", "右"}
	if !slices.Equal(got, want) {
		t.Errorf("sorted literals = %v, want %v", got, want)
	}
}

// --- Simple projection ---

func TestKanjiEntry_Simple(t *testing.T) {
	t.Parallel()

	e := KanjiEntry{
		Literal:         "亜",
		Grade:           8,
		StrokeCount:     7,
		Onyomi:          []string{"ア", "アク"},
		Kunyomi:         []string{"つ.ぐ"},
		EnglishMeanings: NewMeaningSet("Asia", "rank next", "Asia", "come after"),
	}
	want := KanjiEntrySimple{
		Literal:         "亜",
		Grade:           8,
		StrokeCount:     7,
		Onyomi:          "ア, アク",
		Kunyomi:         "つ.ぐ",
		EnglishMeanings: "Asia, rank next, come after",
	}
	if got := e.Simple(); got != want {
		t.Errorf("Simple() = %+v, want %+v", got, want)
	}
}

func TestKanjiEntrySimple_EqualityIsOrderSensitive(t *testing.T) {
	t.Parallel()

	a := KanjiEntry{Literal: "亜", Onyomi: []string{"ア", "アク"}}.Simple()
	b := KanjiEntry{Literal: "亜", Onyomi: []string{"アク", "ア"}}.Simple()
	if a == b {
		t.Error("simplified entries with different reading order should differ")
	}
}

func TestKanjiEntry_ReadingsPreserveDuplicates(t *testing.T) {
	t.Parallel()

	e := KanjiEntry{Literal: "生", Kunyomi: []string{"い.きる", "い.きる"}}
	if got := e.Simple().Kunyomi; got != "い.きる, い.きる" {
		t.Errorf("Kunyomi = %q", got)
	}
}

func TestKanjiEntry_Clone(t *testing.T) {
	t.Parallel()

	orig := KanjiEntry{Literal: "亜", Onyomi: []string{"ア"}, EnglishMeanings: NewMeaningSet("Asia")}
	c := orig.Clone()
	c.Onyomi[0] = "X"
	c.EnglishMeanings.Add("changed")

	if orig.Onyomi[0] != "ア" {
		t.Error("clone shares onyomi backing array")
	}
	if orig.EnglishMeanings.Len() != 1 {
		t.Error("clone shares meaning set")
	}
}

// --- Validation ---

func TestKanjiEntry_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		e       KanjiEntry
		wantErr bool
	}{
		{"valid", entry("亜", 8, 7), false},
		{"ungraded valid", entry("哀", 0, 9), false},
		{"empty literal", entry("", 1, 1), true},
		{"two characters", entry("亜哀", 1, 1), true},
		{"negative strokes", entry("亜", 1, -1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.e.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrValidation) {
				t.Errorf("error should wrap ErrValidation: %v", err)
			}
		})
	}
}

// --- MeaningSet ---

func TestMeaningSet_CollapsesDuplicates(t *testing.T) {
	t.Parallel()

	s := NewMeaningSet("sad", "pity", "sad")
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	if s.Add("pity") {
		t.Error("Add of existing value should report false")
	}
	if !s.Add("grieve") {
		t.Error("Add of new value should report true")
	}
	if got := s.Values(); !slices.Equal(got, []string{"sad", "pity", "grieve"}) {
		t.Errorf("Values() = %v", got)
	}
	if got := s.Sorted(); !slices.Equal(got, []string{"grieve", "pity", "sad"}) {
		t.Errorf("Sorted() = %v", got)
	}
}

func TestMeaningSet_EqualIgnoresOrder(t *testing.T) {
	t.Parallel()

	a := NewMeaningSet("sad", "pity")
	b := NewMeaningSet("pity", "sad")
	c := NewMeaningSet("pity")

	if !a.Equal(b) {
		t.Error("sets with same members in different order should be equal")
	}
	if a.Equal(c) || c.Equal(a) {
		t.Error("sets with different members should not be equal")
	}
	if !(MeaningSet{}).Equal(NewMeaningSet()) {
		t.Error("zero value should equal empty set")
	}
}

func TestMeaningSet_JSON(t *testing.T) {
	t.Parallel()

	var zero MeaningSet
	b, err := json.Marshal(zero)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "[]" {
		t.Errorf("empty set encoded as %s, want []", b)
	}

	var s MeaningSet
	if err := json.Unmarshal([]byte(`["Asia","rank next","Asia"]`), &s); err != nil {
		t.Fatal(err)
	}
	if !s.Equal(NewMeaningSet("rank next", "Asia")) {
		t.Errorf("decoded set = %v", s.Values())
	}

	var fromNull MeaningSet
	if err := json.Unmarshal([]byte(`null`), &fromNull); err != nil {
		t.Fatal(err)
	}
	if fromNull.Len() != 0 {
		t.Errorf("null decoded to %v", fromNull.Values())
	}

	if err := json.Unmarshal([]byte(`"Asia"`), &s); err == nil {
		t.Error("expected error decoding a bare string")
	}
}

func TestKanjiEntry_JSONFieldNames(t *testing.T) {
	t.Parallel()

	e := KanjiEntry{
		Literal:         "亜",
		Grade:           6,
		StrokeCount:     7,
		Onyomi:          []string{"アク"},
		Kunyomi:         []string{},
		EnglishMeanings: NewMeaningSet("Asia"),
	}
	b, err := json.Marshal(e)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"literal":"亜","grade":6,"stroke_count":7,"onyomi":["アク"],"kunyomi":[],"english_meanings":["Asia"]}`
	if string(b) != want {
		t.Errorf("json = %s\nwant  %s", b, want)
	}
}
