package commands

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/drewconway/shades-of-time/internal/dataset"
	"github.com/drewconway/shades-of-time/internal/logging"
)

// ExploreCmd is the Kong command for the interactive explorer.
type ExploreCmd struct {
	Data    string `arg:"" name:"data" help:"Dataset file or http(s) URL." required:"true"`
	LogFile string `name:"log-file" help:"Write logs here while the explorer owns the terminal." type:"path"`
}

// Run starts the explorer. Logs are discarded unless --log-file is set,
// since stderr shares the alternate screen.
func (e *ExploreCmd) Run(ctx *Context) error {
	var out io.Writer = io.Discard
	if e.LogFile != "" {
		f, err := os.OpenFile(e.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		out = f
	}
	log, err := logging.NewWithOutput(out, Cli.LogLevel, Cli.LogFormat)
	if err != nil {
		return err
	}

	model := NewExploreModel(dataset.SourceFor(e.Data), ctx.Layout, log, ctx.Timeout)
	p := tea.NewProgram(model, tea.WithAltScreen())

	_, err = p.Run()
	return err
}
