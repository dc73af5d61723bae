// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// CatalogPath points at the university catalog CSV.
	CatalogPath string `koanf:"catalog_path"`

	// ModelPath points at the trained model artifact JSON.
	ModelPath string `koanf:"model_path"`

	// BandDisplayCap bounds how many candidates each band carries
	// in an /evaluate response.
	BandDisplayCap int `koanf:"band_display_cap"`

	// MaxCatalogLimit caps GET /catalog?limit.
	MaxCatalogLimit int `koanf:"max_catalog_limit"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":9080",
		CatalogPath:     "data/universities.csv",
		ModelPath:       "data/admission_model.json",
		BandDisplayCap:  30,
		MaxCatalogLimit: 100,
	}
}
