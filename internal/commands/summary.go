package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/drewconway/shades-of-time/internal/charts"
	"github.com/drewconway/shades-of-time/internal/dataset"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v2"
)

type SummaryCmd struct {
	Data   string `arg:"" name:"data" help:"Dataset file or http(s) URL." required:"true"`
	Output string `name:"output" short:"o" help:"Output format." default:"graph" enum:"graph,json,yaml"`
}

type skipSummary struct {
	Position int    `json:"position" yaml:"position"`
	Error    string `json:"error" yaml:"error"`
}

type summary struct {
	Source  string                `json:"source" yaml:"source"`
	Records int                   `json:"records" yaml:"records"`
	Domains dataset.Domains       `json:"domains" yaml:"domains"`
	Decades []dataset.DecadeCount `json:"decades" yaml:"decades"`
	Skipped []skipSummary         `json:"skipped" yaml:"skipped"`
}

func newSummary(source string, ds *dataset.Dataset) summary {
	s := summary{
		Source:  source,
		Records: ds.Len(),
		Domains: ds.Domains(),
		Decades: ds.ByDecade(),
		Skipped: make([]skipSummary, 0, len(ds.Skipped())),
	}
	for _, sk := range ds.Skipped() {
		s.Skipped = append(s.Skipped, skipSummary{Position: sk.Position, Error: sk.Err.Error()})
	}
	return s
}

func (s *SummaryCmd) Run(ctx *Context) error {
	ds, err := ctx.load(s.Data)
	if err != nil {
		return err
	}
	return s.print(ctx.stdout(), charts.NewNtCharts(), ds)
}

func (s *SummaryCmd) print(w io.Writer, charter charts.Charter, ds *dataset.Dataset) error {
	sum := newSummary(s.Data, ds)
	switch s.Output {
	case "json":
		b, err := json.MarshalIndent(sum, "", "  ")
		if err != nil {
			return fmt.Errorf("marshalling summary to JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "yaml":
		b, err := yaml.Marshal(sum)
		if err != nil {
			return fmt.Errorf("marshalling summary to YAML: %w", err)
		}
		_, err = w.Write(b)
		return err
	}

	d := sum.Domains
	fmt.Fprintf(w, "%s faces from %s", humanize.Comma(int64(sum.Records)), sum.Source)
	if n := len(sum.Skipped); n > 0 {
		fmt.Fprintf(w, " (%s skipped)", humanize.Comma(int64(n)))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Covers:    %s to %s\n", d.Date.From.Format("2006-01-02"), d.Date.To.Format("2006-01-02"))
	fmt.Fprintf(w, "Faces:     up to %d per cover\n", d.FaceCount.Max)
	fmt.Fprintf(w, "Intensity: %s to %s\n\n", humanize.FtoaWithDigits(d.Intensity.Min, 1), humanize.FtoaWithDigits(d.Intensity.Max, 1))
	return charter.PrintSummary(w, ds)
}
