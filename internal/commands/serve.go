package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/drewconway/shades-of-time/internal/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type ServeCmd struct {
	Data   string `arg:"" name:"data" help:"Dataset file or http(s) URL." required:"true"`
	Addr   string `name:"addr" short:"a" help:"Listen address." default:":8080" env:"SHADES_ADDR"`
	Assets string `name:"assets" help:"Directory the dataset's image paths are relative to." default:"." type:"path"`
}

// Run loads the dataset once and serves until interrupted. A load failure
// does not stop the server; it serves the unavailable page instead.
func (s *ServeCmd) Run(ctx *Context) error {
	ds, err := ctx.load(s.Data)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	srv := server.New(ctx.Log, server.Config{
		Dataset:  ds,
		LoadErr:  err,
		Layout:   ctx.Layout,
		Assets:   s.Assets,
		Registry: reg,
	})

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.ListenAndServe(sigCtx, s.Addr)
}
