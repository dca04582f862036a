package main

import (
	"github.com/alecthomas/kong"
	"github.com/drewconway/shades-of-time/internal/commands"
)

func main() {
	ctx := kong.Parse(&commands.Cli,
		kong.Name("shades"),
		kong.Description("Render, serve and explore the Shades of Time skin-tone dataset."),
	)
	runCtx, err := commands.NewContext()
	ctx.FatalIfErrorf(err)
	// Call the Run() method of the selected parsed command.
	ctx.FatalIfErrorf(ctx.Run(runCtx))
}
