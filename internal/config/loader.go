package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if SMOKEOFF_CONFIG is set
//  3. env (prefix SMOKEOFF_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("SMOKEOFF_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: SMOKEOFF_ADDR, SMOKEOFF_STORAGE, ...
	// Map env keys like SMOKEOFF_SQLITE_PATH -> sqlite_path (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("SMOKEOFF_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "smokeoff_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects configurations that cannot describe a tasting.
func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.Storage != StorageMemory && c.Storage != StorageSQLite {
		return fmt.Errorf("%w: unknown storage backend %q", ErrInvalidConfig, c.Storage)
	}
	if c.Storage == StorageSQLite && c.SQLitePath == "" {
		return fmt.Errorf("%w: sqlite_path must not be empty", ErrInvalidConfig)
	}
	if len(c.Samples) == 0 {
		return fmt.Errorf("%w: at least one sample is required", ErrInvalidConfig)
	}
	if len(c.Categories) == 0 {
		return fmt.Errorf("%w: at least one category is required", ErrInvalidConfig)
	}
	seen := make(map[string]bool, len(c.Samples))
	for _, s := range c.Samples {
		if s.ID == "" {
			return fmt.Errorf("%w: sample id must not be empty", ErrInvalidConfig)
		}
		if seen[s.ID] {
			return fmt.Errorf("%w: duplicate sample id %q", ErrInvalidConfig, s.ID)
		}
		seen[s.ID] = true
	}
	seen = make(map[string]bool, len(c.Categories))
	for _, cat := range c.Categories {
		if cat.ID == "" {
			return fmt.Errorf("%w: category id must not be empty", ErrInvalidConfig)
		}
		if seen[cat.ID] {
			return fmt.Errorf("%w: duplicate category id %q", ErrInvalidConfig, cat.ID)
		}
		if cat.Max <= c.ScoreMin {
			return fmt.Errorf("%w: category %q max must be greater than score_min", ErrInvalidConfig, cat.ID)
		}
		seen[cat.ID] = true
	}
	return nil
}
