package config

import "flag"

// Flags holds command-line overrides.
type Flags struct {
	Config  string
	Debug   bool
	Level   string
	LogFile string
	Legacy  bool
	Quiet   bool
	NoColor bool
}

// Register binds the flags to fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable tree diagnostics and debug logging")
	fs.StringVar(&f.Level, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&f.LogFile, "log-file", "", "Also log to this file, rotated")
	fs.BoolVar(&f.Legacy, "legacy-scale", false, "Derive world Y scale from the translation column")
	fs.BoolVar(&f.Quiet, "quiet", false, "Print checksums only")
	fs.BoolVar(&f.NoColor, "no-color", false, "Disable colored console logs")
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
		cfg.Sim.Debug = true
	}
	if f.Level != "" {
		cfg.Logging.Level = f.Level
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
	if f.Legacy {
		cfg.Sim.LegacyScale = true
	}
	if f.Quiet {
		cfg.Sim.Quiet = true
	}
	if f.NoColor {
		cfg.Logging.Color = false
	}
}
