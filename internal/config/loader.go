package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultPath is the config file looked up when none is given explicitly.
const DefaultPath = "./kanjigap.yaml"

// Load reads configuration and validates it.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return cfg, nil
}

// Read reads configuration from a YAML file and environment variables
// without validating it, so callers can apply overrides first.
// Priority: ENV > YAML > defaults (via env-default tags).
// The YAML path is taken from the argument, then KANJIGAP_CONFIG, then
// DefaultPath. If the file does not exist and no path was given explicitly,
// configuration is loaded from ENV + defaults only.
func Read(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		path = os.Getenv("KANJIGAP_CONFIG")
	}
	explicitPath := path != ""
	if !explicitPath {
		path = DefaultPath
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		// No file, load from ENV + defaults only.
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	return &cfg, nil
}
