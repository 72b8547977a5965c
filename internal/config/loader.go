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
//  2. file (YAML) if ENCORE_CONFIG is set
//  3. env (prefix ENCORE_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("ENCORE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: ENCORE_ADDR, ENCORE_DATA_FILE, ...
	// Map env keys like ENCORE_MAX_SAMPLE_COUNT -> max_sample_count and
	// preserve underscores to match the koanf tags on the struct.
	envProvider := env.Provider("ENCORE_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "encore_")
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

	// Basic validation
	switch {
	case cfg.Addr == "":
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case cfg.DataFile == "":
		return nil, fmt.Errorf("%w: data_file must not be empty", ErrInvalidConfig)
	case cfg.DefaultSampleCount < 1:
		return nil, fmt.Errorf("%w: default_sample_count must be at least 1", ErrInvalidConfig)
	case cfg.MaxSampleCount < cfg.DefaultSampleCount:
		return nil, fmt.Errorf("%w: max_sample_count must be >= default_sample_count", ErrInvalidConfig)
	}
	return &cfg, nil
}
