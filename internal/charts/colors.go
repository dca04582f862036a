package charts

import "github.com/charmbracelet/lipgloss"

// SeriesPalette is Paul Tol's qualitative color palette, designed for colorblind accessibility.
// See: https://personal.sron.nl/~pault/
var SeriesPalette = []string{
	"#4477AA", // Blue
	"#EE6677", // Rose
	"#228833", // Green
	"#CCBB44", // Olive/Yellow
	"#66CCEE", // Cyan
	"#AA3377", // Purple
	"#BBBBBB", // Grey
	"#EE8866", // Orange
	"#44BB99", // Teal
	"#FFAABB", // Pink
}

// AxisColor is the color used for chart axes.
var AxisColor = lipgloss.Color("#CCBB44")

// LabelColor is the color used for chart labels.
var LabelColor = lipgloss.Color("#66CCEE")

// HighlightColor marks the hovered record in terminal views, matching the
// page highlight.
var HighlightColor = lipgloss.Color("#00FF00")

// SeriesColor returns the color for a given series index, cycling through the palette.
func SeriesColor(index int) lipgloss.Color {
	return lipgloss.Color(SeriesPalette[index%len(SeriesPalette)])
}

// SeriesStyle returns a lipgloss style with the foreground color for the given series index.
func SeriesStyle(index int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(SeriesColor(index))
}

// SwatchStyle paints a block in a record's skin tone.
func SwatchStyle(hex string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}

// Swatch renders n full blocks in the given colour.
func Swatch(hex string, n int) string {
	s := make([]rune, n)
	for i := range s {
		s[i] = '█'
	}
	return SwatchStyle(hex).Render(string(s))
}
