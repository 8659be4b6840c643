// Package config loads simulation settings from HCL files.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/monopolysim/internal/board"
)

// MaxPlayers caps the number of players in one game.
const MaxPlayers = 8

// Config is the complete simulation configuration
type Config struct {
	Simulation SimulationSettings `hcl:"simulation,block"`
	Players    []PlayerConfig     `hcl:"player,block"`
	Board      *BoardConfig       `hcl:"board,block"`
}

// SimulationSettings controls how many games are played and how.
type SimulationSettings struct {
	Rounds    int    `hcl:"rounds,optional"`
	Runs      int    `hcl:"runs,optional"`
	Workers   int    `hcl:"workers,optional"`
	Seed      int64  `hcl:"seed,optional"` // 0 picks a time-based seed
	LogLevel  string `hcl:"log_level,optional"`
	OutputDir string `hcl:"output_dir,optional"` // empty disables CSV export
}

// PlayerConfig names one player.
type PlayerConfig struct {
	Name string `hcl:"name,label"`
}

// BoardConfig overrides the default board layout.
type BoardConfig struct {
	Spaces []SpaceConfig `hcl:"space,block"`
}

// SpaceConfig is one space in traversal order.
type SpaceConfig struct {
	Name  string `hcl:"name,label"`
	Price *int   `hcl:"price,optional"`
}

// DefaultConfig returns the configuration used when no file is given
func DefaultConfig() *Config {
	return &Config{
		Simulation: SimulationSettings{
			Rounds:   100,
			Runs:     1,
			Workers:  1,
			LogLevel: "info",
		},
		Players: []PlayerConfig{
			{Name: "Player 1"},
			{Name: "Player 2"},
		},
	}
}

// Load reads filename. A missing file yields DefaultConfig.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Simulation.Rounds == 0 {
		c.Simulation.Rounds = defaults.Simulation.Rounds
	}
	if c.Simulation.Runs == 0 {
		c.Simulation.Runs = defaults.Simulation.Runs
	}
	if c.Simulation.Workers == 0 {
		c.Simulation.Workers = defaults.Simulation.Workers
	}
	if c.Simulation.LogLevel == "" {
		c.Simulation.LogLevel = defaults.Simulation.LogLevel
	}
	if len(c.Players) == 0 {
		c.Players = defaults.Players
	}
}

// Validate checks the configuration for values the simulator cannot use
func (c *Config) Validate() error {
	s := c.Simulation
	if s.Rounds < 1 {
		return fmt.Errorf("rounds must be at least 1, got %d", s.Rounds)
	}
	if s.Runs < 1 {
		return fmt.Errorf("runs must be at least 1, got %d", s.Runs)
	}
	if s.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", s.Workers)
	}
	if _, err := log.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", s.LogLevel)
	}

	if len(c.Players) == 0 || len(c.Players) > MaxPlayers {
		return fmt.Errorf("need between 1 and %d players, got %d", MaxPlayers, len(c.Players))
	}
	seen := make(map[string]bool, len(c.Players))
	for i, p := range c.Players {
		if p.Name == "" {
			return fmt.Errorf("player %d has an empty name", i+1)
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate player name %q", p.Name)
		}
		seen[p.Name] = true
	}

	if c.Board != nil {
		if _, err := board.New(c.Board.Layout()); err != nil {
			return fmt.Errorf("board: %w", err)
		}
	}
	return nil
}

// PlayerNames returns the configured names in turn order.
func (c *Config) PlayerNames() []string {
	names := make([]string, len(c.Players))
	for i, p := range c.Players {
		names[i] = p.Name
	}
	return names
}

// SetPlayerNames replaces the configured players.
func (c *Config) SetPlayerNames(names []string) {
	c.Players = make([]PlayerConfig, len(names))
	for i, name := range names {
		c.Players[i] = PlayerConfig{Name: name}
	}
}

// Layout converts the board block into board spaces.
func (b *BoardConfig) Layout() []board.Space {
	spaces := make([]board.Space, len(b.Spaces))
	for i, s := range b.Spaces {
		spaces[i] = board.Space{Name: s.Name, Price: s.Price}
	}
	return spaces
}

// BuildBoard returns the configured board, or the default layout when the
// file has no board block.
func (c *Config) BuildBoard() (*board.Board, error) {
	if c.Board == nil {
		return board.NewDefault(), nil
	}
	return board.New(c.Board.Layout())
}
