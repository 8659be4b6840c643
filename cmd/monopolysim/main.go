package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Simulate SimulateCmd      `cmd:"" help:"Simulate games and report landing and dice statistics"`
	Trace    TraceCmd         `cmd:"" help:"Play one game and narrate every turn"`
	Board    BoardCmd         `cmd:"" help:"Print the board layout"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("monopolysim"),
		kong.Description("Monopoly turn simulator collecting landing and dice statistics"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
