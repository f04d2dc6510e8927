// Package curriculum reads a target-curriculum CSV (e.g. a textbook's kanji
// list) whose cells contain Japanese text.
// Pure function: file path in, text cells out. No dictionary dependencies.
package curriculum

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// ReadCells opens the CSV at path and returns every cell after the header row.
// A missing or malformed file is an error; it aborts that report only.
func ReadCells(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open curriculum file: %w", err)
	}
	defer f.Close()

	cells, err := ParseCells(f)
	if err != nil {
		return nil, fmt.Errorf("parse curriculum %s: %w", path, err)
	}
	return cells, nil
}

// ParseCells reads CSV from r. The first row is a header and is skipped;
// rows may have differing column counts.
func ParseCells(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // allow variable column count

	// Skip header row.
	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	cells := []string{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		for _, cell := range record {
			if cell != "" {
				cells = append(cells, cell)
			}
		}
	}
	return cells, nil
}
