package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/drewconway/shades-of-time/internal/charts"
	"github.com/dustin/go-humanize"
	"golang.org/x/term"
)

var (
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1).
			Width(SidePanelWidth)
)

func (m ExploreModel) View() string {
	// Show shortcuts overlay if active
	if m.showShortcutsOverlay {
		return lipgloss.Place(
			m.getTerminalWidth(),
			m.getTerminalHeight(),
			lipgloss.Center,
			lipgloss.Center,
			renderShortcutsOverlay(),
		)
	}

	var s strings.Builder

	s.WriteString(m.renderStatusBar())
	s.WriteString("\n")

	switch m.state {
	case StateLoading:
		s.WriteString(m.renderLoadingState())
	case StateError:
		s.WriteString(m.renderErrorState())
	case StateReady:
		s.WriteString(m.renderReadyState())
	}
	s.WriteString("\n")

	s.WriteString(m.renderHelpBar())
	return s.String()
}

func (m ExploreModel) renderStatusBar() string {
	statusStyle := lipgloss.NewStyle().
		Background(lipgloss.Color("236")).
		Foreground(lipgloss.Color("252")).
		Width(m.getTerminalWidth()).
		Padding(0, 1)

	text := "Shades of Time | " + m.source.String()
	if m.state == StateReady {
		text += fmt.Sprintf(" | %s faces", humanize.Comma(int64(m.ds.Len())))
		if n := len(m.ds.Skipped()); n > 0 {
			text += " | " + WarningStyle.Render(fmt.Sprintf("%d skipped", n))
		}
	}
	if m.duration != 0 {
		text += " | loaded in " + formatDuration(m.duration)
	}
	return statusStyle.Render(text)
}

func (m ExploreModel) renderLoadingState() string {
	loadingStyle := lipgloss.NewStyle().Padding(2, 4)
	return loadingStyle.Render(fmt.Sprintf("%s Loading dataset: %s", m.spinner.View(), m.source))
}

func (m ExploreModel) renderErrorState() string {
	errorStyle := lipgloss.NewStyle().Padding(1, 2)
	return errorStyle.Render(ErrorStyle.Render("Data unavailable: ") + m.err.Error())
}

func (m ExploreModel) renderReadyState() string {
	top := lipgloss.JoinHorizontal(lipgloss.Top, m.records.View(), " ", m.renderSelectionPanel())

	chartStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63"))
	return lipgloss.JoinVertical(lipgloss.Left, top, chartStyle.Render(m.chartContent))
}

// renderSelectionPanel shows the live attributes of the hovered record's
// linked elements and the cover panel source.
func (m ExploreModel) renderSelectionPanel() string {
	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-10s", label)))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}

	rec, ok := m.ds.Record(m.selected)
	link, linked := m.doc.Links.Get(m.selected)
	if !ok || !linked {
		row("record", "none")
	} else {
		b.WriteString(charts.Swatch(rec.HexColor, SwatchWidth))
		b.WriteString("\n")
		row("date", rec.Date.Format("2006-01-02"))
		row("face", fmt.Sprint(rec.FaceIndex))
		row("color", rec.HexColor)
		row("intensity", humanize.FtoaWithDigits(rec.RGB.Mean(), 1))
		if rec.NoSkinTone() {
			row("", WarningStyle.Render("no skin tone found"))
		}
		b.WriteString("\n")
		stroke, _ := link.Cell.Style("stroke")
		row("cell", "stroke "+stroke)
		r, _ := link.Point.Attr("r")
		fill, _ := link.Point.Style("fill")
		opacity, _ := link.Point.Style("opacity")
		row("point", fmt.Sprintf("r %s fill %s", r, fill))
		row("", "opacity "+opacity)
	}
	b.WriteString("\n")
	row("cover", m.ctl.CoverSource())
	if m.status != "" {
		b.WriteString(labelStyle.Render(m.status))
	}
	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m ExploreModel) renderHelpBar() string {
	helpStyle := lipgloss.NewStyle().
		Background(lipgloss.Color("236")).
		Foreground(lipgloss.Color("252")).
		Width(m.getTerminalWidth()).
		Padding(0, 1)

	var helpText string
	switch {
	case m.state == StateReady && m.records.Filtering():
		helpText = "enter/esc: close filter | ctrl+c: quit"
	case m.state == StateReady:
		helpText = "j/k: move | enter: show cover | /: filter | ?: shortcuts | q: quit"
	default:
		helpText = "q: quit"
	}
	return helpStyle.Render(helpText)
}

func renderShortcutsOverlay() string {
	accentColor := lipgloss.Color("205")

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(accentColor).
		MarginBottom(1)

	keyStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("252"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245"))

	var content strings.Builder
	content.WriteString(titleStyle.Render("Keyboard Shortcuts"))
	content.WriteString("\n")

	shortcuts := []struct{ key, desc string }{
		{"j/k", "Move the highlight up/down"},
		{"h/l", "Page up/down"},
		{"Enter", "Show the record's cover"},
		{"/", "Filter records"},
		{"Esc", "Close the filter"},
		{"q", "Quit"},
		{"Ctrl+C", "Force quit"},
	}
	for _, s := range shortcuts {
		content.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render(fmt.Sprintf("%-8s", s.key)), descStyle.Render(s.desc)))
	}

	content.WriteString("\n")
	content.WriteString(descStyle.Render("Press any key to close"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accentColor).
		Padding(1, 2)

	return boxStyle.Render(content.String())
}

func (m ExploreModel) getTerminalWidth() int {
	if m.width > 0 {
		return m.width
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return DefaultTerminalWidth
}

func (m ExploreModel) getTerminalHeight() int {
	if m.height > 0 {
		return m.height
	}
	if _, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && h > 0 {
		return h
	}
	return DefaultTerminalHeight
}

func (m ExploreModel) getChartWidth() int {
	return max(m.getTerminalWidth()-ChartWidthPadding, charts.MinChartWidth)
}

// getTableRows fits the table between the chrome and the intensity chart.
func (m ExploreModel) getTableRows() int {
	chartHeight := max(m.getChartWidth()/charts.ChartHeightRatio, charts.MinChartHeight) + ChartBorderLines
	return max(m.getTerminalHeight()-ChromeHeight-chartHeight, MinTableRows)
}
