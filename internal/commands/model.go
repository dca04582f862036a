package commands

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/drewconway/shades-of-time/internal/charts"
	"github.com/drewconway/shades-of-time/internal/config"
	"github.com/drewconway/shades-of-time/internal/dataset"
	"github.com/drewconway/shades-of-time/internal/interact"
	"github.com/drewconway/shades-of-time/internal/tables"
	"github.com/sirupsen/logrus"
)

// ExploreModel is the Bubble Tea model for the interactive explorer. It
// drives the same controller the page uses, so the side panel always shows
// the attributes the page would display.
type ExploreModel struct {
	source  dataset.Source
	layout  config.Layout
	log     logrus.FieldLogger
	timeout time.Duration

	state    ExploreState
	spinner  spinner.Model
	err      error
	duration time.Duration

	ds  *dataset.Dataset
	doc *charts.Document
	ctl *interact.Controller

	records      tables.Model
	selected     int // -1 means nothing hovered
	chartContent string
	status       string

	width                int
	height               int
	showShortcutsOverlay bool
}

// NewExploreModel creates an explorer that loads src on Init.
func NewExploreModel(src dataset.Source, layout config.Layout, log logrus.FieldLogger, timeout time.Duration) ExploreModel {
	return ExploreModel{
		source:   src,
		layout:   layout,
		log:      log,
		timeout:  timeout,
		state:    StateLoading,
		spinner:  NewLoadingSpinner(),
		selected: -1,
	}
}

func (m ExploreModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadDataset(),
	)
}

// loadDataset is the explorer's only suspension point.
func (m ExploreModel) loadDataset() tea.Cmd {
	src, layout, log, timeout := m.source, m.layout, m.log, m.timeout
	return func() tea.Msg {
		start := time.Now()
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		ds, err := dataset.Load(ctx, src, log)
		if err != nil {
			return datasetLoadedMsg{err: err, duration: time.Since(start)}
		}
		doc, err := charts.Render(ds, layout)
		return datasetLoadedMsg{ds: ds, doc: doc, err: err, duration: time.Since(start)}
	}
}
