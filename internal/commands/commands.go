package commands

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/drewconway/shades-of-time/internal/config"
	"github.com/drewconway/shades-of-time/internal/dataset"
	"github.com/drewconway/shades-of-time/internal/logging"
	"github.com/sirupsen/logrus"
)

// Context is shared by every command's Run method.
type Context struct {
	Timeout time.Duration
	Log     logrus.FieldLogger
	Layout  config.Layout
	Stdout  io.Writer
}

var Cli struct {
	Timeout   time.Duration `help:"Timeout for loading the dataset." default:"60s"`
	LogLevel  string        `name:"log-level" help:"Log level." default:"info" enum:"trace,debug,info,warn,error"`
	LogFormat string        `name:"log-format" help:"Log format." default:"text" enum:"text,json"`
	Layout    string        `name:"layout" help:"YAML file overriding the default layout." type:"path"`

	Render  RenderCmd  `cmd:"" help:"Render the page to a file."`
	Serve   ServeCmd   `cmd:"" help:"Serve the page, dataset and images over HTTP."`
	Summary SummaryCmd `cmd:"" help:"Print dataset domains and terminal charts."`
	Explore ExploreCmd `cmd:"" help:"Browse records and their linked panels interactively."`
}

// NewContext builds the logger and layout from the parsed global flags.
func NewContext() (*Context, error) {
	log, err := logging.New(Cli.LogLevel, Cli.LogFormat)
	if err != nil {
		return nil, err
	}
	layout, err := config.Load(Cli.Layout)
	if err != nil {
		return nil, err
	}
	return &Context{Timeout: Cli.Timeout, Log: log, Layout: layout, Stdout: os.Stdout}, nil
}

// load fetches the dataset at ref under the configured timeout.
func (c *Context) load(ref string) (*dataset.Dataset, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()
	return dataset.Load(ctx, dataset.SourceFor(ref), c.Log)
}

func (c *Context) stdout() io.Writer {
	if c.Stdout == nil {
		return os.Stdout
	}
	return c.Stdout
}
