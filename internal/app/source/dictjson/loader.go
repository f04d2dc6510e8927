// Package dictjson loads the prebuilt kanji dictionary: a JSON object keyed by
// literal whose values are KanjiEntry records.
// Pure function: file path in, domain structs out.
package dictjson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/heartmarshall/kanjigap/internal/domain"
)

// Load reads and validates the dictionary at path. Any failure is fatal for
// the run, so errors always carry the path.
func Load(path string) (*domain.Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dictionary: %w", err)
	}
	defer f.Close()

	dict, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("dictionary %s: %w", path, err)
	}
	return dict, nil
}

// Decode parses a dictionary document from r. Each map key must equal its
// entry's literal.
func Decode(r io.Reader) (*domain.Dictionary, error) {
	var raw map[string]domain.KanjiEntry
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("decode JSON: %w: top-level value must be an object", domain.ErrInvalidInput)
	}

	entries := make([]domain.KanjiEntry, 0, len(raw))
	for key, e := range raw {
		if key != e.Literal {
			return nil, domain.NewValidationError("literal", fmt.Sprintf("key %q does not match literal %q", key, e.Literal))
		}
		entries = append(entries, e)
	}
	return domain.NewDictionary(entries)
}
