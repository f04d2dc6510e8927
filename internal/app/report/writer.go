// Package report serializes entry collections and writes them as complete
// documents. Writes go through a temp file in the destination directory and
// a rename, so a failed write never leaves a truncated or half-replaced report.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Format selects the on-disk encoding of a report.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name. Empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown report format %q (want json or yaml)", s)
	}
}

// Writer encodes values and replaces destination files atomically.
type Writer struct {
	// Indent pretty-prints JSON output with two spaces.
	Indent bool
}

// Write encodes v in the given format and replaces path with the result.
func (w Writer) Write(path string, format Format, v any) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatYAML:
		data, err = encodeYAML(v)
	default:
		data, err = w.encodeJSON(v)
	}
	if err != nil {
		return fmt.Errorf("encode %s report: %w", format, err)
	}
	if err := writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}

// WriteJSON is Write with FormatJSON.
func (w Writer) WriteJSON(path string, v any) error {
	return w.Write(path, FormatJSON, v)
}

func (w Writer) encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	// Kana and kanji stay readable in the output.
	enc.SetEscapeHTML(false)
	if w.Indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeYAML(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeFileAtomic writes data to a hidden temp file next to path, syncs it and
// renames it over path. The temp file is removed on every failure path.
func writeFileAtomic(path string, data []byte) error {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+name+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
