// Package charts renders the dataset: the SVG document for the page and
// compact terminal charts for the CLI.
package charts

import (
	"fmt"
	"io"
	"os"

	"github.com/drewconway/shades-of-time/internal/dataset"
	"golang.org/x/term"
)

// PanelKind names one of the page mount points.
type PanelKind int

const (
	PanelText PanelKind = iota
	PanelHistogram
	PanelCover
	PanelScatter
)

// MountID returns the id of the page container the panel is appended to.
func (k PanelKind) MountID() string {
	switch k {
	case PanelText:
		return "text_copy"
	case PanelHistogram:
		return "chart"
	case PanelCover:
		return "cover"
	case PanelScatter:
		return "color"
	default:
		return "unknown"
	}
}

// Panel is one rendered SVG root and the container it belongs in.
type Panel struct {
	Kind PanelKind
	Root *Element
}

// Charter prints a terminal overview of a dataset.
type Charter interface {
	PrintSummary(w io.Writer, ds *dataset.Dataset) error
}

type ntCharts struct {
	width int
}

// NewNtCharts returns a Charter sized to the terminal on stdout, falling back
// to DefaultTerminalWidth when stdout is not a terminal.
func NewNtCharts() Charter {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = DefaultTerminalWidth
	}
	return &ntCharts{width: width}
}

func (c *ntCharts) PrintSummary(w io.Writer, ds *dataset.Dataset) error {
	width := max(c.width-ChartWidthPadding, MinChartWidth)
	if _, err := fmt.Fprintln(w, DecadeBarchart(ds.ByDecade(), width)); err != nil {
		return err
	}
	chart := IntensityTimeseries(ds.Points(), width, -1)
	_, err := fmt.Fprintln(w, chart)
	return err
}
