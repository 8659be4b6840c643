package main

import (
	"os"

	"github.com/lox/monopolysim/internal/config"
)

// BoardCmd prints the board layout, either the default one or the layout
// from a config file.
type BoardCmd struct {
	Config  string `kong:"type='existingfile',help='HCL config file with a board block'"`
	NoColor bool   `kong:"name='no-color',help='Disable colored output'"`
}

func (c *BoardCmd) Run() error {
	cfg := config.DefaultConfig()
	if c.Config != "" {
		loaded, err := config.Load(c.Config)
		if err != nil {
			return err
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded
	}

	b, err := cfg.BuildBoard()
	if err != nil {
		return err
	}
	if c.NoColor {
		disableColor()
	}
	renderBoard(os.Stdout, b)
	return nil
}
