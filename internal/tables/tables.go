// Package tables lists dataset records in a filterable terminal table.
package tables

import (
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/drewconway/shades-of-time/internal/dataset"
	"github.com/evertras/bubble-table/table"
)

const (
	columnIndex     = "index"
	columnSwatch    = "swatch"
	columnDate      = "date"
	columnFace      = "face"
	columnHex       = "hex"
	columnIntensity = "intensity"
	columnCover     = "cover"
)

// DefaultPageSize is the number of rows shown when no height is given.
const DefaultPageSize = 10

type Model struct {
	table           table.Model
	filterTextInput textinput.Model
}

// Records builds a table with one row per record, in sequence order.
func Records(records []dataset.Record) Model {
	longestCover := len("Cover")
	rows := make([]table.Row, 0, len(records))
	for _, r := range records {
		longestCover = max(longestCover, len(r.CoverImagePath))
		rows = append(rows, table.NewRow(table.RowData{
			columnIndex:     r.SequenceIndex,
			columnSwatch:    table.NewStyledCell("  ", lipgloss.NewStyle().Background(lipgloss.Color(r.HexColor))),
			columnDate:      r.Date.Format("2006-01-02"),
			columnFace:      strconv.Itoa(r.FaceIndex),
			columnHex:       r.HexColor,
			columnIntensity: strconv.FormatFloat(r.RGB.Mean(), 'f', 1, 64),
			columnCover:     r.CoverImagePath,
		}))
	}

	columns := []table.Column{
		table.NewColumn(columnIndex, "#", max(len(strconv.Itoa(len(records)))+1, 4)),
		table.NewColumn(columnSwatch, "", 4),
		table.NewColumn(columnDate, "Date", 12).WithFiltered(true),
		table.NewColumn(columnFace, "Face", 6).WithFiltered(true),
		table.NewColumn(columnHex, "Color", 9).WithFiltered(true),
		table.NewColumn(columnIntensity, "Intensity", 10),
		table.NewColumn(columnCover, "Cover", min(longestCover+1, 48)).WithFiltered(true),
	}

	return Model{
		table: table.
			New(columns).
			Filtered(true).
			Focused(true).
			WithFooterVisibility(true).
			WithPageSize(DefaultPageSize).
			WithRows(rows),
		filterTextInput: textinput.New(),
	}
}

// WithPageSize returns the model showing n rows per page.
func (m Model) WithPageSize(n int) Model {
	m.table = m.table.WithPageSize(max(n, 1))
	return m
}

// Filtering reports whether keystrokes are going to the filter input.
func (m Model) Filtering() bool {
	return m.filterTextInput.Focused()
}

// FilterValue returns the current filter text.
func (m Model) FilterValue() string {
	return m.filterTextInput.Value()
}

// Selected returns the sequence index of the highlighted row, or false when
// the filter hides every row.
func (m Model) Selected() (int, bool) {
	i, ok := m.table.HighlightedRow().Data[columnIndex].(int)
	return i, ok
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles navigation and filtering. Quitting is left to the caller.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	// event to filter
	if m.filterTextInput.Focused() {
		switch key.String() {
		case "enter", "esc":
			m.filterTextInput.Blur()
		default:
			m.filterTextInput, _ = m.filterTextInput.Update(key)
		}
		m.table = m.table.WithFilterInput(m.filterTextInput)
		return m, nil
	}

	if key.String() == "/" {
		m.filterTextInput.Focus()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(key)
	return m, cmd
}

func (m Model) View() string {
	view := m.table.View()
	if m.filterTextInput.Focused() {
		view += "\nfilter: " + m.filterTextInput.View()
	}
	return view
}
