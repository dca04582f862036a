package scale

import (
	"math"
	"time"
)

// Linear maps a continuous numeric domain onto an output range.
type Linear struct {
	d0, d1 float64
	r0, r1 float64
	round  bool
}

// NewLinear returns a linear scale mapping [d0, d1] onto [r0, r1].
func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Rounded returns a copy of the scale that rounds its output to the nearest integer.
func (s Linear) Rounded() Linear {
	s.round = true
	return s
}

// Domain returns the input extent.
func (s Linear) Domain() (float64, float64) {
	return s.d0, s.d1
}

// Range returns the output extent.
func (s Linear) Range() (float64, float64) {
	return s.r0, s.r1
}

// Map projects v into the output range. Values outside the domain are
// extrapolated. A zero-width domain maps everything to the range midpoint.
func (s Linear) Map(v float64) float64 {
	var out float64
	if s.d1 == s.d0 {
		out = (s.r0 + s.r1) / 2
	} else {
		t := (v - s.d0) / (s.d1 - s.d0)
		out = s.r0 + t*(s.r1-s.r0)
	}
	if s.round {
		return math.Round(out)
	}
	return out
}

// Time maps a time domain onto an output range.
type Time struct {
	lin Linear
}

// NewTime returns a time scale mapping [from, to] onto [r0, r1].
func NewTime(from, to time.Time, r0, r1 float64) Time {
	return Time{lin: NewLinear(unixSeconds(from), unixSeconds(to), r0, r1)}
}

// RangeRound returns a copy of the scale that rounds its output.
func (s Time) RangeRound() Time {
	s.lin = s.lin.Rounded()
	return s
}

// Map projects t into the output range.
func (s Time) Map(t time.Time) float64 {
	return s.lin.Map(unixSeconds(t))
}

// Range returns the output extent.
func (s Time) Range() (float64, float64) {
	return s.lin.Range()
}

func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
