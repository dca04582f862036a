package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/drewconway/shades-of-time/internal/charts"
	"github.com/drewconway/shades-of-time/internal/interact"
	"github.com/drewconway/shades-of-time/internal/page"
)

type RenderCmd struct {
	Data   string `arg:"" name:"data" help:"Dataset file or http(s) URL." required:"true"`
	Output string `name:"output" short:"o" help:"Output file, - for stdout." default:"index.html"`
}

// Run writes the page. When the dataset cannot be loaded the unavailable
// page is written instead and the load error is returned.
func (r *RenderCmd) Run(ctx *Context) error {
	w, closeOut, err := r.open(ctx)
	if err != nil {
		return err
	}

	werr := r.write(ctx, w)
	if cerr := closeOut(); werr == nil {
		werr = cerr
	}
	return werr
}

func (r *RenderCmd) write(ctx *Context, w io.Writer) error {
	ds, err := ctx.load(r.Data)
	if err != nil {
		ctx.Log.WithField("error", err).Error("dataset unavailable")
		if werr := page.WriteUnavailable(w, err); werr != nil {
			return fmt.Errorf("writing unavailable page: %w", werr)
		}
		return err
	}

	doc, err := charts.Render(ds, ctx.Layout)
	if err != nil {
		return fmt.Errorf("rendering: %w", err)
	}
	if err := page.Write(w, doc, interact.New(doc, ctx.Layout.Interaction)); err != nil {
		return err
	}
	ctx.Log.WithField("path", r.Output).Info("page written")
	return nil
}

func (r *RenderCmd) open(ctx *Context) (io.Writer, func() error, error) {
	if r.Output == "-" {
		return ctx.stdout(), func() error { return nil }, nil
	}
	f, err := os.Create(r.Output)
	if err != nil {
		return nil, nil, fmt.Errorf("creating %s: %w", r.Output, err)
	}
	return f, f.Close, nil
}
