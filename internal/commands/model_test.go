package commands

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/drewconway/shades-of-time/internal/config"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

const fixture = `[
  {"year": "1950", "month": "01", "day": "02", "num": "0", "rgbcolor": {"R": 10, "G": 20, "B": 30}, "hexcolor": "#0a141e", "face_path": "faces/a.jpg"},
  {"year": "1960", "month": "03", "day": "04", "num": "1", "rgbcolor": {"R": 200, "G": 180, "B": 160}, "hexcolor": "#c8b4a0", "face_path": "faces/b.jpg"},
  {"year": "1970", "month": "05", "day": "06", "num": "0", "rgbcolor": {"R": 90, "G": 60, "B": 30}, "hexcolor": "#5a3c1e", "face_path": "faces/c.jpg"}
]`

type stubSource struct {
	body string
	err  error
}

func (s stubSource) Fetch(context.Context) (io.ReadCloser, error) {
	if s.err != nil {
		return nil, s.err
	}
	return io.NopCloser(strings.NewReader(s.body)), nil
}

func (s stubSource) String() string { return "stub.json" }

func testLayout() config.Layout {
	l := config.Default()
	l.ChartHeight = 1000
	return l
}

func newModel(t *testing.T, src stubSource) ExploreModel {
	t.Helper()
	log, _ := logtest.NewNullLogger()
	return NewExploreModel(src, testLayout(), log, time.Second)
}

// loaded runs the load command synchronously and feeds its result back.
func loaded(t *testing.T, src stubSource) ExploreModel {
	t.Helper()
	m := newModel(t, src)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	next, _ = next.Update(m.loadDataset()())
	return next.(ExploreModel)
}

func press(t *testing.T, m ExploreModel, keys ...tea.KeyMsg) ExploreModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(ExploreModel)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		want     string
	}{
		{"microseconds", 500 * time.Microsecond, "500µs"},
		{"milliseconds", 500 * time.Millisecond, "500ms"},
		{"seconds", 1500 * time.Millisecond, "1.5s"},
		{"boundary - just under ms", 999 * time.Microsecond, "999µs"},
		{"boundary - just under s", 999 * time.Millisecond, "999ms"},
		{"zero", 0, "0µs"},
		{"exactly 1s", time.Second, "1.0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatDuration(tt.duration)
			if got != tt.want {
				t.Errorf("formatDuration(%v) = %q, want %q", tt.duration, got, tt.want)
			}
		})
	}
}

func TestNewExploreModel(t *testing.T) {
	m := newModel(t, stubSource{body: fixture})

	t.Run("starts loading", func(t *testing.T) {
		if m.state != StateLoading {
			t.Errorf("state = %v, want %v", m.state, StateLoading)
		}
	})

	t.Run("nothing selected", func(t *testing.T) {
		if m.selected != -1 {
			t.Errorf("selected = %d, want -1", m.selected)
		}
	})

	t.Run("loading view shows source", func(t *testing.T) {
		if !strings.Contains(m.View(), "Loading dataset: stub.json") {
			t.Errorf("View() = %q", m.View())
		}
	})

	t.Run("keys ignored while loading", func(t *testing.T) {
		after := press(t, m, runes("j"))
		if after.state != StateLoading {
			t.Errorf("state = %v, want %v", after.state, StateLoading)
		}
	})
}

func TestExploreLoaded(t *testing.T) {
	m := loaded(t, stubSource{body: fixture})

	if m.state != StateReady {
		t.Fatalf("state = %v, want %v (err %v)", m.state, StateReady, m.err)
	}
	if m.selected != 0 || !m.ctl.Highlighted(0) {
		t.Errorf("first record not highlighted on load: selected = %d", m.selected)
	}
	if m.chartContent == "" {
		t.Error("intensity chart not rendered")
	}

	view := m.View()
	for _, want := range []string{"3 faces", "1950-01-02", "#0a141e", "r 7"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestExploreMoveTransfersHighlight(t *testing.T) {
	m := loaded(t, stubSource{body: fixture})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})

	if m.selected != 2 {
		t.Fatalf("selected = %d, want 2", m.selected)
	}
	for i, want := range []bool{false, false, true} {
		if got := m.ctl.Highlighted(i); got != want {
			t.Errorf("Highlighted(%d) = %v, want %v", i, got, want)
		}
	}

	link, _ := m.doc.Links.Get(0)
	if fill, _ := link.Point.Style("fill"); fill != "#0a141e" {
		t.Errorf("record 0 point fill = %q, want its own colour restored", fill)
	}
}

func TestExploreEnterShowsCover(t *testing.T) {
	m := loaded(t, stubSource{body: fixture})
	before := m.ctl.CoverSource()

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})

	if got := m.ctl.CoverSource(); got != "faces/b.jpg" {
		t.Errorf("CoverSource() = %q, want faces/b.jpg (was %q)", got, before)
	}
	if !strings.Contains(m.View(), "cover: faces/b.jpg") {
		t.Error("status does not report the cover")
	}
}

func TestExploreFilter(t *testing.T) {
	m := loaded(t, stubSource{body: fixture})

	m = press(t, m, runes("/"), runes("1"), runes("9"), runes("7"), runes("0"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.selected != 2 || !m.ctl.Highlighted(2) || m.ctl.Highlighted(0) {
		t.Errorf("after filter selected = %d, want 2 highlighted alone", m.selected)
	}

	t.Run("filtering everything clears the highlight", func(t *testing.T) {
		m := press(t, m, runes("/"), runes("x"))
		if m.selected != -1 {
			t.Errorf("selected = %d, want -1", m.selected)
		}
		for i := 0; i < 3; i++ {
			if m.ctl.Highlighted(i) {
				t.Errorf("record %d still highlighted", i)
			}
		}
	})

	t.Run("q is filter text while filtering", func(t *testing.T) {
		next, cmd := press(t, m, runes("/")).Update(runes("q"))
		if cmd != nil {
			if _, quit := cmd().(tea.QuitMsg); quit {
				t.Error("q quit while the filter was focused")
			}
		}
		if !next.(ExploreModel).records.Filtering() {
			t.Error("filter lost focus")
		}
	})
}

func TestExploreLoadFailure(t *testing.T) {
	m := loaded(t, stubSource{err: errors.New("connection refused")})

	if m.state != StateError {
		t.Fatalf("state = %v, want %v", m.state, StateError)
	}
	if !strings.Contains(m.View(), "Data unavailable: ") || !strings.Contains(m.View(), "connection refused") {
		t.Errorf("View() = %q", m.View())
	}

	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit from the error view")
	}
}

func TestShortcutsOverlay(t *testing.T) {
	m := loaded(t, stubSource{body: fixture})
	m = press(t, m, runes("?"))
	if !m.showShortcutsOverlay || !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatal("? did not open the overlay")
	}
	m = press(t, m, runes("j"))
	if m.showShortcutsOverlay {
		t.Error("overlay not dismissed")
	}
	if m.selected != 0 {
		t.Errorf("dismissing key moved the cursor to %d", m.selected)
	}
}

func TestGetTableRows(t *testing.T) {
	m := newModel(t, stubSource{})
	m.width, m.height = 100, 10
	if got := m.getTableRows(); got != MinTableRows {
		t.Errorf("getTableRows() = %d, want floor %d", got, MinTableRows)
	}
	m.height = 60
	// chart: (100-6)/8 = 11 rows + 2 border
	if got, want := m.getTableRows(), 60-ChromeHeight-13; got != want {
		t.Errorf("getTableRows() = %d, want %d", got, want)
	}
}
