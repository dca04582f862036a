package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	ErrFetch         = errors.New("fetching dataset")
	ErrDecode        = errors.New("decoding dataset")
	ErrEmpty         = errors.New("dataset has no usable records")
	ErrInvalidRecord = errors.New("invalid record")
)

// IntRange is a closed integer interval.
type IntRange struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// FloatRange is a closed numeric interval.
type FloatRange struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// DateRange is a closed date interval.
type DateRange struct {
	From time.Time `json:"from" yaml:"from"`
	To   time.Time `json:"to" yaml:"to"`
}

// Domains are the axis extents computed from the full dataset.
type Domains struct {
	FaceCount IntRange   `json:"face_count" yaml:"face_count"`
	Date      DateRange  `json:"date" yaml:"date"`
	Intensity FloatRange `json:"intensity" yaml:"intensity"`
}

// SkipReport describes a dataset entry that was dropped while parsing.
type SkipReport struct {
	Position int
	Err      error
}

// DecadeCount is the number of faces on covers dated within one decade.
type DecadeCount struct {
	Decade int `json:"decade" yaml:"decade"`
	Faces  int `json:"faces" yaml:"faces"`
}

// Dataset is the loaded, read-only snapshot every panel renders from.
type Dataset struct {
	records []Record
	points  []DerivedPoint
	domains Domains
	skipped []SkipReport
	raw     []byte
}

// NewDataset assigns sequence indices in order, derives the scatter points and
// computes the axis domains.
func NewDataset(records []Record) (*Dataset, error) {
	if len(records) == 0 {
		return nil, ErrEmpty
	}

	ds := &Dataset{
		records: make([]Record, len(records)),
		points:  make([]DerivedPoint, len(records)),
	}
	for i, r := range records {
		r.SequenceIndex = i
		ds.records[i] = r
		ds.points[i] = derive(r)
	}
	ds.domains = computeDomains(ds.records, ds.points)
	return ds, nil
}

func computeDomains(records []Record, points []DerivedPoint) Domains {
	first := records[0]
	d := Domains{
		FaceCount: IntRange{Min: 0, Max: first.FaceIndex},
		Date:      DateRange{From: first.Date, To: first.Date},
		Intensity: FloatRange{Min: points[0].MeanIntensity, Max: points[0].MeanIntensity},
	}
	for i, r := range records {
		d.FaceCount.Max = max(d.FaceCount.Max, r.FaceIndex)
		if r.Date.Before(d.Date.From) {
			d.Date.From = r.Date
		}
		if r.Date.After(d.Date.To) {
			d.Date.To = r.Date
		}
		d.Intensity.Min = min(d.Intensity.Min, points[i].MeanIntensity)
		d.Intensity.Max = max(d.Intensity.Max, points[i].MeanIntensity)
	}
	// One extra slot so the widest row does not touch the right edge.
	d.FaceCount.Max++
	return d
}

// Parse decodes a JSON array of records. Entries that cannot be decoded or
// fail validation are skipped and logged; the rest keep their relative order.
func Parse(r io.Reader, log logrus.FieldLogger) (*Dataset, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(bytes.TrimSpace(raw), &entries); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	records := make([]Record, 0, len(entries))
	var skipped []SkipReport
	for pos, entry := range entries {
		rec, err := decodeRecord(entry)
		if err != nil {
			log.WithFields(logrus.Fields{
				"position": pos,
				"error":    err,
			}).Warn("skipping malformed record")
			skipped = append(skipped, SkipReport{Position: pos, Err: err})
			continue
		}
		records = append(records, rec)
	}

	ds, err := NewDataset(records)
	if err != nil {
		return nil, err
	}
	ds.skipped = skipped
	ds.raw = raw
	return ds, nil
}

// Len returns the number of accepted records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Record returns the record with sequence index i.
func (d *Dataset) Record(i int) (Record, bool) {
	if i < 0 || i >= len(d.records) {
		return Record{}, false
	}
	return d.records[i], true
}

// Point returns the derived point with sequence index i.
func (d *Dataset) Point(i int) (DerivedPoint, bool) {
	if i < 0 || i >= len(d.points) {
		return DerivedPoint{}, false
	}
	return d.points[i], true
}

// Records returns a copy of the records in sequence order.
func (d *Dataset) Records() []Record {
	return append([]Record(nil), d.records...)
}

// Points returns a copy of the derived points in sequence order.
func (d *Dataset) Points() []DerivedPoint {
	return append([]DerivedPoint(nil), d.points...)
}

func (d *Dataset) Domains() Domains {
	return d.domains
}

// Skipped lists the entries dropped during parsing.
func (d *Dataset) Skipped() []SkipReport {
	return append([]SkipReport(nil), d.skipped...)
}

// Raw returns the payload the dataset was parsed from, or nil when it was
// built directly from records.
func (d *Dataset) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// ByDecade counts faces per calendar decade, oldest first.
func (d *Dataset) ByDecade() []DecadeCount {
	counts := make(map[int]int)
	for _, r := range d.records {
		counts[r.Date.Year()/10*10]++
	}
	out := make([]DecadeCount, 0, len(counts))
	for decade, n := range counts {
		out = append(out, DecadeCount{Decade: decade, Faces: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Decade < out[j].Decade })
	return out
}
