package charts

import (
	"sort"
	"time"

	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/charmbracelet/lipgloss"
	"github.com/drewconway/shades-of-time/internal/dataset"
)

const (
	intensitySeries = "intensity"
	selectedSeries  = "selected"
)

var axisStyle = lipgloss.NewStyle().Foreground(AxisColor)

var labelStyle = lipgloss.NewStyle().Foreground(LabelColor)

var lineStyle = lipgloss.NewStyle().Foreground(SeriesColor(6))

// IntensityTimeseries plots mean skin-tone intensity against cover date.
// When selected is a valid sequence index that point is drawn in
// HighlightColor on top of the others.
func IntensityTimeseries(points []dataset.DerivedPoint, width int, selected int) string {
	height := max(width/ChartHeightRatio, MinChartHeight)
	lc := timeserieslinechart.New(width, height)
	lc.AxisStyle = axisStyle
	lc.LabelStyle = labelStyle
	lc.XLabelFormatter = func(_ int, v float64) string {
		return time.Unix(int64(v), 0).UTC().Format("2006")
	}
	lc.SetStyle(lineStyle)
	lc.SetLineStyle(runes.ThinLineStyle)

	if len(points) == 0 {
		lc.DrawBrailleAll()
		return lc.View()
	}

	sorted := append([]dataset.DerivedPoint(nil), points...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	minY, maxY := sorted[0].MeanIntensity, sorted[0].MeanIntensity
	for _, p := range sorted {
		minY = min(minY, p.MeanIntensity)
		maxY = max(maxY, p.MeanIntensity)
	}
	if minY == maxY {
		minY, maxY = minY-1, maxY+1
	}
	from, to := sorted[0].Date, sorted[len(sorted)-1].Date
	if !to.After(from) {
		to = from.Add(24 * time.Hour)
	}

	lc.SetTimeRange(from, to)
	lc.SetViewTimeRange(from, to)
	lc.SetYRange(minY, maxY)     // set expected Y values (values can be less or greater than what is displayed)
	lc.SetViewYRange(minY, maxY) // setting display Y values will fail unless set expected Y values first

	lc.SetDataSetStyle(intensitySeries, lineStyle)
	for _, p := range sorted {
		lc.PushDataSet(intensitySeries, timeserieslinechart.TimePoint{Time: p.Date, Value: p.MeanIntensity})
	}

	if selected >= 0 && selected < len(points) {
		p := points[selected]
		lc.SetDataSetStyle(selectedSeries, lipgloss.NewStyle().Foreground(HighlightColor))
		// Two coincident samples so the braille renderer draws a dot.
		lc.PushDataSet(selectedSeries, timeserieslinechart.TimePoint{Time: p.Date, Value: p.MeanIntensity})
		lc.PushDataSet(selectedSeries, timeserieslinechart.TimePoint{Time: p.Date, Value: p.MeanIntensity})
	}

	lc.DrawBrailleAll()
	return lc.View()
}
