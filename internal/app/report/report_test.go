package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/kanjigap/internal/domain"
	"github.com/heartmarshall/kanjigap/internal/service/kanji"
)

func sampleEntries() []domain.KanjiEntry {
	return []domain.KanjiEntry{
		{
			Literal:         "亜",
			Grade:           6,
			StrokeCount:     7,
			Onyomi:          []string{"アク"},
			Kunyomi:         []string{},
			EnglishMeanings: domain.NewMeaningSet("Asia", "rank next"),
		},
		{
			Literal:         "哀",
			Grade:           0,
			StrokeCount:     9,
			Onyomi:          []string{"アイ"},
			Kunyomi:         []string{"あわ.れ", "あわ.れむ"},
			EnglishMeanings: domain.NewMeaningSet("grief", "pity"),
		},
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseFormat("yaml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func readJSON[T any](t *testing.T, path string) T {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var v T
	require.NoError(t, json.Unmarshal(b, &v))
	return v
}

func TestWriteJSON_RoundTripEntries(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "entries.json")
	in := sampleEntries()
	require.NoError(t, Writer{Indent: true}.WriteJSON(path, in))

	out := readJSON[[]domain.KanjiEntry](t, path)
	require.Len(t, out, len(in))

	for i := range in {
		assert.Equal(t, in[i].Literal, out[i].Literal)
		assert.Equal(t, in[i].Grade, out[i].Grade)
		assert.Equal(t, in[i].StrokeCount, out[i].StrokeCount)
		assert.Equal(t, in[i].Onyomi, out[i].Onyomi)
		assert.Equal(t, in[i].Kunyomi, out[i].Kunyomi)
		assert.True(t, in[i].EnglishMeanings.Equal(out[i].EnglishMeanings),
			"meanings %v != %v", in[i].EnglishMeanings.Values(), out[i].EnglishMeanings.Values())
	}
}

func TestWriteJSON_RoundTripSimple(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "todo.json")
	in := Simple(sampleEntries())
	require.NoError(t, Writer{}.WriteJSON(path, in))

	out := readJSON[[]domain.KanjiEntrySimple](t, path)
	assert.Equal(t, in, out)
	assert.Equal(t, "あわ.れ, あわ.れむ", out[1].Kunyomi)
}

func TestWriteJSON_Unescaped(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "todo.json")
	require.NoError(t, Writer{}.WriteJSON(path, Simple(sampleEntries()[:1])))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		`[{"literal":"亜","grade":6,"stroke_count":7,"onyomi":"アク","kunyomi":"","english_meanings":"Asia, rank next"}]`+"\n",
		string(b))
}

func TestWriteJSON_EmptyIsArray(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "todo.json")
	require.NoError(t, Writer{}.WriteJSON(path, []domain.KanjiEntry{}))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(b))
}

func TestWrite_OverwritesWholeDocument(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "todo.json")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("x", 4096)), 0o644))

	require.NoError(t, Writer{}.WriteJSON(path, []string{"亜"}))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[\"亜\"]\n", string(b))
}

func TestWrite_FailureKeepsPriorReport(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "todo.json")
	require.NoError(t, os.WriteFile(path, []byte("previous"), 0o644))

	err := Writer{}.WriteJSON(path, map[string]any{"bad": make(chan int)})
	require.Error(t, err)

	b, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "previous", string(b))

	leftovers, globErr := filepath.Glob(filepath.Join(dir, ".todo.json.tmp-*"))
	require.NoError(t, globErr)
	assert.Empty(t, leftovers, "temp files must be cleaned up")
}

func TestWrite_MissingDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	prior := filepath.Join(dir, "dict.json")
	require.NoError(t, os.WriteFile(prior, []byte("{}"), 0o644))

	err := Writer{}.WriteJSON(filepath.Join(dir, "nope", "todo.json"), []string{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "todo.json")

	b, readErr := os.ReadFile(prior)
	require.NoError(t, readErr)
	assert.Equal(t, "{}", string(b), "earlier reports are untouched")
}

func TestDictionaryDump(t *testing.T) {
	t.Parallel()

	dict, err := domain.NewDictionary(sampleEntries())
	require.NoError(t, err)

	dump := Dictionary(dict)
	require.Len(t, dump, 2)
	assert.Equal(t, 9, dump["哀"].StrokeCount)
}

func TestAuditSummary_YAML(t *testing.T) {
	t.Parallel()

	dict, err := domain.NewDictionary([]domain.KanjiEntry{
		{Literal: "一", Grade: 1, StrokeCount: 1},
		{Literal: "右", Grade: 1, StrokeCount: 5},
		{Literal: "引", Grade: 2, StrokeCount: 4},
	})
	require.NoError(t, err)

	known := kanji.LookupText(dict, "一引")
	summary := Audit("run-1", kanji.Audit(dict, 1, known))

	path := filepath.Join(t.TempDir(), "audit.yaml")
	require.NoError(t, Writer{}.Write(path, FormatYAML, summary))

	b, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded AuditSummary
	require.NoError(t, yaml.Unmarshal(b, &decoded))
	assert.Equal(t, "run-1", decoded.RunID)
	assert.Equal(t, 1, decoded.Grade)
	assert.Equal(t, 2, decoded.Total)
	assert.InDelta(t, 0.5, decoded.Coverage, 1e-9)
	require.Len(t, decoded.AboveGrade, 1)
	assert.Equal(t, "引", decoded.AboveGrade[0].Literal)
	require.Len(t, decoded.Missing, 1)
	assert.Equal(t, "右", decoded.Missing[0].Literal)
}
