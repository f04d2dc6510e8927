package config

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// Output paths are command-specific and checked by CheckPaths.
func (c *Config) Validate() error {
	if c.Grade < 0 {
		return fmt.Errorf("grade must be >= 0 (got %d)", c.Grade)
	}
	if strings.TrimSpace(c.Sources.DictPath) == "" {
		return fmt.Errorf("sources.dict is required")
	}
	switch c.Reports.AuditFormat {
	case "", "json", "yaml":
	default:
		return fmt.Errorf("reports: audit_format must be json or yaml (got %q)", c.Reports.AuditFormat)
	}
	if err := c.Log.validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}

// CheckPaths fails when two outputs share a file or an output would
// overwrite an input. Both maps are keyed by a name used in the error;
// empty paths are ignored.
func CheckPaths(inputs, outputs map[string]string) error {
	written := make(map[string]string, len(outputs))
	for _, name := range slices.Sorted(maps.Keys(outputs)) {
		p := outputs[name]
		if p == "" {
			continue
		}
		clean := filepath.Clean(p)
		if other, ok := written[clean]; ok {
			return fmt.Errorf("%s and %s both write to %s", other, name, clean)
		}
		written[clean] = name
	}

	for _, name := range slices.Sorted(maps.Keys(inputs)) {
		p := inputs[name]
		if p == "" {
			continue
		}
		if out, ok := written[filepath.Clean(p)]; ok {
			return fmt.Errorf("%s would overwrite input %s (%s)", out, name, filepath.Clean(p))
		}
	}
	return nil
}

func (l *LogConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(l.Level)) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("level must be one of debug, info, warn, error (got %q)", l.Level)
	}
	switch strings.ToLower(strings.TrimSpace(l.Format)) {
	case "", "json", "text":
	default:
		return fmt.Errorf("format must be json or text (got %q)", l.Format)
	}
	return nil
}
