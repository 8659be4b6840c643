package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/monopolysim/cmd/monopolysim/shared"
	"github.com/lox/monopolysim/internal/config"
	"github.com/lox/monopolysim/internal/simulator"
	"github.com/lox/monopolysim/internal/statistics"
)

// SimulateCmd plays one or more games and reports the collected statistics.
// Flags override values from the config file when set.
type SimulateCmd struct {
	Config    string   `kong:"type='existingfile',help='HCL simulation config file'"`
	Rounds    int      `kong:"help='Rounds per game'"`
	Players   []string `kong:"help='Comma separated player names'"`
	Runs      int      `kong:"help='Number of independent games'"`
	Workers   int      `kong:"help='Games to play concurrently'"`
	Seed      *int64   `kong:"help='Base RNG seed; game i uses seed+i (optional)'"`
	OutputDir string   `kong:"name='output-dir',help='Directory for CSV statistics exports'"`
	Debug     bool     `kong:"help='Enable debug logging'"`
	NoColor   bool     `kong:"name='no-color',help='Disable colored output'"`
}

func (c *SimulateCmd) Run() error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	level, err := shared.ResolveLevel(cfg.Simulation.LogLevel, c.Debug)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logger := shared.SetupLogger(level)

	if c.NoColor {
		disableColor()
	}

	ctx, stop := shared.SetupSignalHandlerWithLogger(logger)
	defer stop()
	return c.simulate(ctx, cfg, logger, os.Stdout)
}

// loadConfig reads the config file, if any, and applies flag overrides.
func (c *SimulateCmd) loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if c.Config != "" {
		loaded, err := config.Load(c.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	c.applyOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *SimulateCmd) applyOverrides(cfg *config.Config) {
	s := &cfg.Simulation
	if c.Rounds != 0 {
		s.Rounds = c.Rounds
	}
	if c.Runs != 0 {
		s.Runs = c.Runs
	}
	if c.Workers != 0 {
		s.Workers = c.Workers
	}
	if c.Seed != nil {
		s.Seed = *c.Seed
	}
	if c.OutputDir != "" {
		s.OutputDir = c.OutputDir
	}
	if len(c.Players) > 0 {
		cfg.SetPlayerNames(c.Players)
	}
}

func (c *SimulateCmd) simulate(ctx context.Context, cfg *config.Config, logger *log.Logger, out io.Writer) error {
	b, err := cfg.BuildBoard()
	if err != nil {
		return fmt.Errorf("failed to build board: %w", err)
	}

	s := cfg.Simulation
	seed := s.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
		logger.Info("Using random seed", "seed", seed)
	} else {
		logger.Info("Using deterministic seed", "seed", seed)
	}

	players := cfg.PlayerNames()
	sim, err := simulator.New(simulator.Config{
		Rounds:  s.Rounds,
		Players: players,
		Runs:    s.Runs,
		Workers: s.Workers,
		Seed:    seed,
		Board:   b,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	logger.Info("Starting simulation",
		"runs", s.Runs,
		"rounds", s.Rounds,
		"players", len(players),
		"workers", s.Workers)

	report, err := sim.Run(ctx)
	if err != nil {
		logger.Error("Simulation failed", "error", err)
		return err
	}

	renderReport(out, report, s.Rounds, players)

	if s.OutputDir != "" {
		if err := statistics.Export(s.OutputDir, b.Names(), report.Snapshots()); err != nil {
			return fmt.Errorf("failed to export statistics: %w", err)
		}
		logger.Info("Exported statistics", "dir", s.OutputDir,
			"files", []string{statistics.PropertyStatsFile, statistics.DiceStatsFile})
	}
	return nil
}
