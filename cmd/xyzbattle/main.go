package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Play in the terminal (default)"`
	Serve    ServeCmd         `cmd:"" help:"Run the websocket game server"`
	Client   ClientCmd        `cmd:"" help:"Play a session held by a server"`
	Simulate SimulateCmd      `cmd:"" help:"Play headless sessions with a bot and report statistics"`
	Rules    RulesCmd         `cmd:"" help:"Print the rules"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("xyzbattle"),
		kong.Description("X/Y/Z Card Battle: beat the CPU as many times in a row as you can"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
