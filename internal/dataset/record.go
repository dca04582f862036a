package dataset

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// NoSkinTone is the colour the upstream extractor records when a face crop
// contains no pixel classified as skin.
var NoSkinTone = RGB{R: 255, G: 250, B: 250}

var hexPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// RGB holds the three colour channel intensities, each in [0, 255].
type RGB struct {
	R float64 `json:"R" yaml:"r"`
	G float64 `json:"G" yaml:"g"`
	B float64 `json:"B" yaml:"b"`
}

// Mean returns the arithmetic mean of the three channels.
func (c RGB) Mean() float64 {
	return (c.R + c.G + c.B) / 3
}

// Min returns the smallest channel value.
func (c RGB) Min() float64 {
	return math.Min(c.R, math.Min(c.G, c.B))
}

// Max returns the largest channel value.
func (c RGB) Max() float64 {
	return math.Max(c.R, math.Max(c.G, c.B))
}

// Hex encodes the colour as a lowercase #rrggbb string.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channelByte(c.R), channelByte(c.G), channelByte(c.B))
}

func channelByte(v float64) int {
	return int(math.Round(math.Max(0, math.Min(255, v))))
}

// Record is one detected face on one magazine cover.
type Record struct {
	Date           time.Time
	FaceIndex      int
	RGB            RGB
	HexColor       string
	CoverImagePath string
	// SourceCoverPath is the undecorated cover scan, when the dataset carries it.
	SourceCoverPath string
	SequenceIndex   int
}

// NoSkinTone reports whether the extractor found no skin pixels for this face.
func (r Record) NoSkinTone() bool {
	return r.RGB == NoSkinTone
}

// DerivedPoint is the scatter plot datum computed from one Record.
type DerivedPoint struct {
	MeanIntensity float64
	Date          time.Time
	HexColor      string
	SequenceIndex int
}

func derive(r Record) DerivedPoint {
	return DerivedPoint{
		MeanIntensity: r.RGB.Mean(),
		Date:          r.Date,
		HexColor:      r.HexColor,
		SequenceIndex: r.SequenceIndex,
	}
}

// flexString accepts a JSON string or number and keeps its textual form.
type flexString struct {
	value string
	set   bool
}

func (f *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		f.value, f.set = strings.TrimSpace(s), true
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	f.value, f.set = n.String(), true
	return nil
}

func (f flexString) int(field string) (int, error) {
	if !f.set || f.value == "" {
		return 0, fmt.Errorf("%w: missing %s", ErrInvalidRecord, field)
	}
	n, err := strconv.Atoi(f.value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer", ErrInvalidRecord, field, f.value)
	}
	return n, nil
}

type rawRGB struct {
	R *float64 `json:"R"`
	G *float64 `json:"G"`
	B *float64 `json:"B"`
}

type rawRecord struct {
	Date      string     `json:"date"`
	Year      flexString `json:"year"`
	Month     flexString `json:"month"`
	Day       flexString `json:"day"`
	Num       flexString `json:"num"`
	HexColor  string     `json:"hexcolor"`
	RGB       *rawRGB    `json:"rgbcolor"`
	FacePath  string     `json:"face_path"`
	CoverPath string     `json:"cover_path"`
}

func decodeRecord(b []byte) (Record, error) {
	var raw rawRecord
	if err := json.Unmarshal(b, &raw); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	date, err := raw.date()
	if err != nil {
		return Record{}, err
	}

	num, err := raw.Num.int("num")
	if err != nil {
		return Record{}, err
	}
	if num < 0 {
		return Record{}, fmt.Errorf("%w: num %d is negative", ErrInvalidRecord, num)
	}

	rgb, err := raw.rgb()
	if err != nil {
		return Record{}, err
	}

	hex := strings.ToLower(strings.TrimSpace(raw.HexColor))
	switch {
	case hex == "":
		hex = rgb.Hex()
	case !hexPattern.MatchString(hex):
		return Record{}, fmt.Errorf("%w: hexcolor %q is not #rrggbb", ErrInvalidRecord, raw.HexColor)
	}

	if strings.TrimSpace(raw.FacePath) == "" {
		return Record{}, fmt.Errorf("%w: missing face_path", ErrInvalidRecord)
	}

	return Record{
		Date:            date,
		FaceIndex:       num,
		RGB:             rgb,
		HexColor:        hex,
		CoverImagePath:  raw.FacePath,
		SourceCoverPath: raw.CoverPath,
	}, nil
}

func (raw rawRecord) date() (time.Time, error) {
	if !raw.Year.set && !raw.Month.set && !raw.Day.set {
		if raw.Date == "" {
			return time.Time{}, fmt.Errorf("%w: missing date", ErrInvalidRecord)
		}
		t, err := time.Parse("2006-01-02", raw.Date)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: date %q: %v", ErrInvalidRecord, raw.Date, err)
		}
		return t, nil
	}

	y, err := raw.Year.int("year")
	if err != nil {
		return time.Time{}, err
	}
	m, err := raw.Month.int("month")
	if err != nil {
		return time.Time{}, err
	}
	d, err := raw.Day.int("day")
	if err != nil {
		return time.Time{}, err
	}

	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || int(t.Month()) != m || t.Day() != d {
		return time.Time{}, fmt.Errorf("%w: %04d-%02d-%02d is not a calendar date", ErrInvalidRecord, y, m, d)
	}
	return t, nil
}

func (raw rawRecord) rgb() (RGB, error) {
	if raw.RGB == nil {
		return RGB{}, fmt.Errorf("%w: missing rgbcolor", ErrInvalidRecord)
	}
	channels := []struct {
		name string
		v    *float64
	}{{"R", raw.RGB.R}, {"G", raw.RGB.G}, {"B", raw.RGB.B}}
	for _, c := range channels {
		if c.v == nil {
			return RGB{}, fmt.Errorf("%w: missing rgbcolor.%s", ErrInvalidRecord, c.name)
		}
		if math.IsNaN(*c.v) || *c.v < 0 || *c.v > 255 {
			return RGB{}, fmt.Errorf("%w: rgbcolor.%s %v outside [0, 255]", ErrInvalidRecord, c.name, *c.v)
		}
	}
	return RGB{R: *raw.RGB.R, G: *raw.RGB.G, B: *raw.RGB.B}, nil
}
