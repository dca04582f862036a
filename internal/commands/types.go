package commands

import (
	"time"

	"github.com/drewconway/shades-of-time/internal/charts"
	"github.com/drewconway/shades-of-time/internal/dataset"
)

// ExploreState represents the current state of the explorer.
type ExploreState int

const (
	StateLoading ExploreState = iota
	StateReady
	StateError
)

func (s ExploreState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// datasetLoadedMsg carries the loaded dataset and its rendered document.
type datasetLoadedMsg struct {
	ds       *dataset.Dataset
	doc      *charts.Document
	err      error
	duration time.Duration
}
