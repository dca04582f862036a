// Package config holds the page layout. A Layout is built once at startup
// and handed to renderers by value.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

var ErrInvalidLayout = errors.New("invalid layout")

// Interaction holds the element styles the hover controller toggles between.
type Interaction struct {
	HighlightColor   string  `yaml:"highlight_color" json:"highlightColor"`
	NeutralStroke    string  `yaml:"neutral_stroke" json:"neutralStroke"`
	PointRadius      float64 `yaml:"point_radius" json:"pointRadius"`
	HighlightRadius  float64 `yaml:"highlight_radius" json:"highlightRadius"`
	PointOpacity     float64 `yaml:"point_opacity" json:"pointOpacity"`
	HighlightOpacity float64 `yaml:"highlight_opacity" json:"highlightOpacity"`
}

// Layout is the fixed geometry of the four panels.
type Layout struct {
	ChartWidth    float64 `yaml:"chart_width"`
	ChartHeight   float64 `yaml:"chart_height"`
	ScatterHeight float64 `yaml:"scatter_height"`
	CoverWidth    float64 `yaml:"cover_width"`
	CoverHeight   float64 `yaml:"cover_height"`

	// Margin is the outer padding of the time axes.
	Margin float64 `yaml:"margin"`
	// CellSize is the side of one histogram cell.
	CellSize float64 `yaml:"cell_size"`
	// LabelGutter is the space reserved right of the cells for year labels.
	LabelGutter float64 `yaml:"label_gutter"`
	// AxisInset offsets axis lines from the panel edge.
	AxisInset float64 `yaml:"axis_inset"`

	PlaceholderImage string `yaml:"placeholder_image"`
	LogoImage        string `yaml:"logo_image"`
	PointStroke      string `yaml:"point_stroke"`

	Interaction Interaction `yaml:"interaction"`

	// Narrative replaces the default text panel paragraphs. Entries may hold
	// inline HTML; it is sanitised before rendering.
	Narrative []string `yaml:"narrative"`
}

// Default returns the layout of the published page.
func Default() Layout {
	return Layout{
		ChartWidth:       760,
		ChartHeight:      75000,
		ScatterHeight:    200,
		CoverWidth:       400,
		CoverHeight:      527,
		Margin:           20,
		CellSize:         15,
		LabelGutter:      100,
		AxisInset:        4,
		PlaceholderImage: "faces/base.jpg",
		LogoImage:        "200px-Time_Magazine_logo.png",
		PointStroke:      "grey",
		Interaction: Interaction{
			HighlightColor:   "#00FF00",
			NeutralStroke:    "#000",
			PointRadius:      3,
			HighlightRadius:  7,
			PointOpacity:     0.55,
			HighlightOpacity: 1.0,
		},
	}
}

// Load reads YAML overrides from path on top of Default. An empty path
// returns the defaults.
func Load(path string) (Layout, error) {
	layout := Default()
	if path == "" {
		return layout, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("reading layout %s: %w", path, err)
	}
	if err := yaml.UnmarshalStrict(b, &layout); err != nil {
		return Layout{}, fmt.Errorf("%w: %s: %v", ErrInvalidLayout, path, err)
	}
	if err := layout.Validate(); err != nil {
		return Layout{}, err
	}
	return layout, nil
}

// Validate checks that every dimension leaves room to draw.
func (l Layout) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"chart_width", l.ChartWidth},
		{"chart_height", l.ChartHeight},
		{"scatter_height", l.ScatterHeight},
		{"cover_width", l.CoverWidth},
		{"cover_height", l.CoverHeight},
		{"cell_size", l.CellSize},
		{"interaction.point_radius", l.Interaction.PointRadius},
		{"interaction.highlight_radius", l.Interaction.HighlightRadius},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidLayout, p.name, p.v)
		}
	}
	if l.Margin < 0 || l.AxisInset < 0 || l.LabelGutter < 0 {
		return fmt.Errorf("%w: margin, axis_inset and label_gutter must not be negative", ErrInvalidLayout)
	}
	if l.LabelGutter >= l.ChartWidth {
		return fmt.Errorf("%w: label_gutter %v leaves no room in chart_width %v", ErrInvalidLayout, l.LabelGutter, l.ChartWidth)
	}
	if 2*l.Margin >= l.ChartHeight {
		return fmt.Errorf("%w: margin %v leaves no room in chart_height %v", ErrInvalidLayout, l.Margin, l.ChartHeight)
	}
	if 2*l.CellSize >= l.ScatterHeight {
		return fmt.Errorf("%w: cell_size %v leaves no room in scatter_height %v", ErrInvalidLayout, l.CellSize, l.ScatterHeight)
	}
	for name, v := range map[string]float64{
		"interaction.point_opacity":     l.Interaction.PointOpacity,
		"interaction.highlight_opacity": l.Interaction.HighlightOpacity,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: %s must be within [0, 1], got %v", ErrInvalidLayout, name, v)
		}
	}
	if l.Interaction.HighlightColor == "" || l.Interaction.NeutralStroke == "" {
		return fmt.Errorf("%w: interaction colours must be set", ErrInvalidLayout)
	}
	return nil
}

// ScatterWidth is the width of the scatter panel, which spans the histogram
// and the cover panel.
func (l Layout) ScatterWidth() float64 {
	return l.ChartWidth + l.Margin + l.CoverWidth
}
