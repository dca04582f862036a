// Package ticks generates calendar tick marks for the time axes.
package ticks

import "time"

// Years returns January 1st of every year within [from, to].
func Years(from, to time.Time) []time.Time {
	if to.Before(from) {
		return nil
	}
	first := from.Year()
	if !yearStart(first, from.Location()).Equal(from) {
		first++
	}
	var out []time.Time
	for y := first; y <= to.Year(); y++ {
		out = append(out, yearStart(y, from.Location()))
	}
	return out
}

// Decades returns January 1st of every year divisible by ten within [from, to].
func Decades(from, to time.Time) []time.Time {
	var out []time.Time
	for _, t := range Years(from, to) {
		if t.Year()%10 == 0 {
			out = append(out, t)
		}
	}
	return out
}

// YearsWithoutDecades returns the year ticks with every decade boundary
// removed, so decade lines are not drawn twice.
func YearsWithoutDecades(from, to time.Time) []time.Time {
	decades := make(map[int64]struct{})
	for _, d := range Decades(from, to) {
		decades[d.Unix()] = struct{}{}
	}
	var out []time.Time
	for _, y := range Years(from, to) {
		if _, ok := decades[y.Unix()]; ok {
			continue
		}
		out = append(out, y)
	}
	return out
}

func yearStart(year int, loc *time.Location) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
}
