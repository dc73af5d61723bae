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
//  2. file (YAML) if ADMITLY_CONFIG is set
//  3. env (prefix ADMITLY_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("ADMITLY_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: ADMITLY_ADDR, ADMITLY_CATALOG_PATH, ...
	// Map env keys like ADMITLY_CATALOG_PATH -> catalog_path (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("ADMITLY_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "admitly_")
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

	switch {
	case cfg.Addr == "":
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case cfg.CatalogPath == "":
		return nil, fmt.Errorf("%w: catalog_path must not be empty", ErrInvalidConfig)
	case cfg.ModelPath == "":
		return nil, fmt.Errorf("%w: model_path must not be empty", ErrInvalidConfig)
	case cfg.BandDisplayCap < 1:
		return nil, fmt.Errorf("%w: band_display_cap must be positive", ErrInvalidConfig)
	case cfg.MaxCatalogLimit < 1:
		return nil, fmt.Errorf("%w: max_catalog_limit must be positive", ErrInvalidConfig)
	}
	return &cfg, nil
}
