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
	"github.com/lox/monopolysim/internal/dice"
	"github.com/lox/monopolysim/internal/game"
)

// defaultTraceRounds applies when neither a flag nor a config file sets rounds.
const defaultTraceRounds = 5

// TraceCmd plays a single game and prints every turn as it happens.
type TraceCmd struct {
	Config      string   `kong:"type='existingfile',help='HCL simulation config file'"`
	Rounds      int      `kong:"help='Rounds to play (default: config file, else 5)'"`
	Players     []string `kong:"help='Comma separated player names'"`
	Seed        *int64   `kong:"help='RNG seed (optional)'"`
	Positions   bool     `kong:"help='Show board indices for each move'"`
	Perspective string   `kong:"help='Player name to narrate as You'"`
	Debug       bool     `kong:"help='Enable debug logging'"`
}

func (c *TraceCmd) Run() error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	level, err := shared.ResolveLevel(cfg.Simulation.LogLevel, c.Debug)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logger := shared.SetupLogger(level)

	seed := cfg.Simulation.Seed
	if c.Seed != nil {
		seed = *c.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, stop := shared.SetupSignalHandlerWithLogger(logger)
	defer stop()
	return c.trace(ctx, cfg, seed, logger, os.Stdout)
}

// loadConfig reads the config file, if any, and applies flag overrides.
func (c *TraceCmd) loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Simulation.Rounds = defaultTraceRounds
	if c.Config != "" {
		loaded, err := config.Load(c.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if c.Rounds != 0 {
		cfg.Simulation.Rounds = c.Rounds
	}
	if len(c.Players) > 0 {
		cfg.SetPlayerNames(c.Players)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *TraceCmd) trace(ctx context.Context, cfg *config.Config, seed int64, logger *log.Logger, out io.Writer) error {
	b, err := cfg.BuildBoard()
	if err != nil {
		return fmt.Errorf("failed to build board: %w", err)
	}

	formatter := game.NewEventFormatter(game.FormattingOptions{
		ShowPositions: c.Positions,
		Perspective:   c.Perspective,
	})
	bus := game.NewEventBus()
	bus.Subscribe(game.NewTraceSubscriber(formatter, func(line string) {
		fmt.Fprintln(out, line)
	}))

	g, err := game.New(game.Config{
		Rounds:  cfg.Simulation.Rounds,
		Players: cfg.PlayerNames(),
		Board:   b,
		Dice:    dice.NewSeeded(seed),
		Bus:     bus,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Seed %d\n", seed)
	if err := g.Run(ctx); err != nil {
		return err
	}

	fmt.Fprintln(out)
	for _, p := range g.Players() {
		fmt.Fprintln(out, p.String())
	}
	return nil
}
