// Command fixsim replays transform scenarios and prints their checksums.
// Running the same scenario on two machines must print the same checksum.
//
// Usage:
//
//	fixsim [flags] scenario.yaml...
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/phanxgames/fixmath"
	"github.com/phanxgames/fixmath/internal/config"
	"github.com/phanxgames/fixmath/internal/logger"
	"github.com/phanxgames/fixmath/internal/scenario"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var flags config.Flags
	fs := flag.NewFlagSet("fixsim", flag.ContinueOnError)
	fs.SetOutput(stderr)
	flags.Register(fs)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: fixsim [flags] scenario.yaml...\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	cfg, err := config.Load(&flags)
	if err != nil {
		fmt.Fprintf(stderr, "Config error: %v\n", err)
		return 1
	}

	lcfg := logger.Config{Level: cfg.Logging.Level, Console: stderr, Color: cfg.Logging.Color}
	if cfg.Logging.LogFile != "" {
		lcfg.File = logger.DefaultFileConfig(cfg.Logging.LogFile)
		lcfg.File.MaxSizeMB = cfg.Logging.MaxSizeMB
	}
	log := logger.New(lcfg)
	defer func() { _ = log.Sync() }()

	if cfg.Sim.Debug {
		fixmath.SetLogger(logger.Slog(log, "fixmath"))
		defer fixmath.SetLogger(nil)
	}

	failed := 0
	for _, path := range fs.Args() {
		if err := runFile(path, cfg, log, stdout); err != nil {
			log.Error("scenario failed", zap.String("file", path), zap.Error(err))
			failed++
		}
	}
	if failed > 0 {
		log.Warn("some scenarios failed", zap.Int("failed", failed), zap.Int("total", fs.NArg()))
		return 1
	}
	return 0
}

func runFile(path string, cfg *config.Config, log *zap.Logger, out io.Writer) error {
	sc, err := scenario.Load(path)
	if err != nil {
		return err
	}
	if cfg.Sim.LegacyScale {
		sc.LegacyScale = true
	}
	if cfg.Sim.Debug {
		sc.Debug = true
	}

	log.Info("running scenario", zap.String("name", sc.Name), zap.Int("nodes", len(sc.Nodes)))
	res, err := scenario.Run(sc, log)
	if err != nil {
		return err
	}

	if !cfg.Sim.Quiet {
		for _, p := range res.Probes {
			fmt.Fprintln(out, p)
		}
	}
	fmt.Fprintf(out, "%s %v\n", sc.Name, res.Checksum)
	log.Debug("recompute stats",
		zap.Int("localToWorld", res.Stats.LocalToWorld),
		zap.Int("worldToLocal", res.Stats.WorldToLocal),
		zap.Int("total", res.Stats.Total()))
	return res.Verify(sc)
}
