// Package config handles fixsim configuration loading.
package config

// Config holds all fixsim settings.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Sim     SimConfig     `yaml:"sim"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level     string `yaml:"level"`
	LogFile   string `yaml:"log_file"`
	MaxSizeMB int    `yaml:"max_size_mb"`
	Color     bool   `yaml:"color"`
}

// SimConfig holds scenario run settings. Values here override the
// matching scenario fields when set.
type SimConfig struct {
	// Debug enables tree diagnostics and routes fixmath logs to the
	// configured logger.
	Debug       bool `yaml:"debug"`
	LegacyScale bool `yaml:"legacy_scale"`
	// Quiet suppresses probe output; only checksums are printed.
	Quiet bool `yaml:"quiet"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:     "info",
			MaxSizeMB: 20,
			Color:     true,
		},
	}
}
