// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load(ctx) layers defaults, an optional YAML file, and env vars.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":3000".
	Addr string `koanf:"addr"`

	// DataFile is the path to the bundled performance data file.
	DataFile string `koanf:"data_file"`

	// DefaultSampleCount is used when the count query parameter is
	// absent or malformed.
	DefaultSampleCount int `koanf:"default_sample_count"`

	// MaxSampleCount caps GET /api/random-bands?count.
	MaxSampleCount int `koanf:"max_sample_count"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":3000",
		DataFile:           "bands.json",
		DefaultSampleCount: 1,
		MaxSampleCount:     5,
	}
}
