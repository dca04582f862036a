package commands

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/drewconway/shades-of-time/internal/charts"
	"github.com/drewconway/shades-of-time/internal/interact"
	"github.com/drewconway/shades-of-time/internal/tables"
)

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.state == StateReady {
			m.records = m.records.WithPageSize(m.getTableRows())
			m = m.regenerateChart()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case datasetLoadedMsg:
		return m.handleDatasetLoaded(msg)

	case spinner.TickMsg:
		if m.state == StateLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	return m, nil
}

func (m ExploreModel) handleDatasetLoaded(msg datasetLoadedMsg) (tea.Model, tea.Cmd) {
	m.duration = msg.duration
	if msg.err != nil {
		m.state = StateError
		m.err = msg.err
		m.log.WithField("error", msg.err).Error("dataset unavailable")
		return m, nil
	}

	m.state = StateReady
	m.ds = msg.ds
	m.doc = msg.doc
	m.ctl = interact.New(msg.doc, m.layout.Interaction)
	m.records = tables.Records(msg.ds.Records()).WithPageSize(m.getTableRows())
	return m.syncSelection(), nil
}

func (m ExploreModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global quit
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Handle shortcuts overlay - dismiss on any key except quit keys
	if m.showShortcutsOverlay {
		if msg.String() == "q" {
			return m, tea.Quit
		}
		m.showShortcutsOverlay = false
		return m, nil
	}

	switch m.state {
	case StateLoading:
		// Only allow quit during loading
		return m, nil
	case StateError:
		if msg.String() == "q" || msg.String() == "esc" {
			return m, tea.Quit
		}
		return m, nil
	}

	// Filter input gets every key until it is closed
	if m.records.Filtering() {
		return m.updateRecords(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?":
		m.showShortcutsOverlay = true
		return m, nil
	case "enter":
		return m.handleEnterKey()
	}
	return m.updateRecords(msg)
}

func (m ExploreModel) updateRecords(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.records, cmd = m.records.Update(msg)
	return m.syncSelection(), cmd
}

// handleEnterKey shows the highlighted record's cover, as clicking its
// histogram cell does on the page.
func (m ExploreModel) handleEnterKey() (tea.Model, tea.Cmd) {
	if m.selected < 0 {
		return m, nil
	}
	if err := m.ctl.Click(m.selected); err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.status = "cover: " + m.ctl.CoverSource()
	return m, nil
}

// syncSelection moves the hover to the row under the table cursor.
func (m ExploreModel) syncSelection() ExploreModel {
	cur, ok := m.records.Selected()
	if !ok {
		if m.selected >= 0 {
			if err := m.ctl.HoverExit(m.selected); err != nil {
				m.status = err.Error()
			}
		}
		m.selected = -1
		return m.regenerateChart()
	}
	if cur == m.selected {
		return m
	}
	if err := m.ctl.Move(m.selected, cur); err != nil {
		m.status = err.Error()
		return m
	}
	m.selected = cur
	return m.regenerateChart()
}

func (m ExploreModel) regenerateChart() ExploreModel {
	if m.ds == nil {
		return m
	}
	m.chartContent = charts.IntensityTimeseries(m.ds.Points(), m.getChartWidth(), m.selected)
	return m
}
