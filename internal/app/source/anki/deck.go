// Package anki extracts answer text from study-deck JSON exports
// (CrowdAnki layout: a top-level "notes" array, each note carrying an ordered
// "fields" array whose last element is the answer).
//
// Exports are heterogeneous, so nothing here returns an error: an unreadable
// or malformed deck is reported as "no data" through a boolean.
package anki

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/heartmarshall/kanjigap/internal/domain"
	"github.com/heartmarshall/kanjigap/internal/service/kanji"
)

// export is the subset of a deck export we care about. Notes and fields stay
// raw until each boundary is checked.
type export struct {
	Notes *[]json.RawMessage `json:"notes"`
}

type note struct {
	Fields *[]json.RawMessage `json:"fields"`
}

// fieldObject is the alternative field encoding some exporters use.
type fieldObject struct {
	Value *string `json:"value"`
}

// Stats holds extraction statistics for logging.
type Stats struct {
	TotalNotes   int
	Extracted    int
	SkippedNotes int
}

// ParseAnswers decodes a deck export and returns the last-field text of every
// note that has one. ok is false when the document is not JSON or has no
// "notes" array; notes without a usable last field are skipped.
func ParseAnswers(r io.Reader) (answers []string, stats Stats, ok bool) {
	var doc export
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, Stats{}, false
	}
	if doc.Notes == nil {
		return nil, Stats{}, false
	}

	answers = make([]string, 0, len(*doc.Notes))
	for _, raw := range *doc.Notes {
		stats.TotalNotes++
		text, found := lastField(raw)
		if !found {
			stats.SkippedNotes++
			continue
		}
		answers = append(answers, text)
		stats.Extracted++
	}
	return answers, stats, true
}

// ReadAnswers is ParseAnswers over a file. A missing or unreadable file is
// reported the same way as a malformed one.
func ReadAnswers(path string) ([]string, Stats, bool) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, false
	}
	defer f.Close()
	return ParseAnswers(f)
}

// KnownEntries turns deck answers into the learner's known entries.
func KnownEntries(dict *domain.Dictionary, answers []string) []domain.KanjiEntry {
	texts := domain.NormalizeAll(append([]string(nil), answers...))
	return kanji.LookupText(dict, texts...)
}

// lastField returns the text of the note's last field.
func lastField(raw json.RawMessage) (string, bool) {
	var n note
	if err := json.Unmarshal(raw, &n); err != nil || n.Fields == nil {
		return "", false
	}
	fields := *n.Fields
	if len(fields) == 0 {
		return "", false
	}
	return fieldText(fields[len(fields)-1])
}

// fieldText accepts a JSON string or an object with a string "value".
func fieldText(raw json.RawMessage) (string, bool) {
	if string(bytes.TrimSpace(raw)) == "null" {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	var obj fieldObject
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Value != nil {
		return *obj.Value, true
	}
	return "", false
}
