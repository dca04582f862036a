package tables

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/drewconway/shades-of-time/internal/dataset"
)

func fixture(t *testing.T) []dataset.Record {
	t.Helper()
	ds, err := dataset.NewDataset([]dataset.Record{
		{Date: time.Date(1950, 1, 2, 0, 0, 0, 0, time.UTC), RGB: dataset.RGB{R: 10, G: 20, B: 30}, HexColor: "#0a141e", CoverImagePath: "faces/a.jpg"},
		{Date: time.Date(1960, 3, 4, 0, 0, 0, 0, time.UTC), FaceIndex: 1, RGB: dataset.RGB{R: 200, G: 180, B: 160}, HexColor: "#c8b4a0", CoverImagePath: "faces/b.jpg"},
		{Date: time.Date(1970, 5, 6, 0, 0, 0, 0, time.UTC), RGB: dataset.RGB{R: 90, G: 60, B: 30}, HexColor: "#5a3c1e", CoverImagePath: "faces/c.jpg"},
	})
	if err != nil {
		t.Fatal(err)
	}
	return ds.Records()
}

func keys(s string) []tea.KeyMsg {
	msgs := make([]tea.KeyMsg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return msgs
}

func TestRecords(t *testing.T) {
	t.Run("empty records", func(t *testing.T) {
		m := Records(nil)
		if _, ok := m.Selected(); ok {
			t.Error("Selected() ok on empty table")
		}
		if len(m.View()) == 0 {
			t.Error("View() returned empty string")
		}
	})

	t.Run("rows show record fields", func(t *testing.T) {
		view := Records(fixture(t)).View()
		for _, want := range []string{"1950-01-02", "#c8b4a0", "faces/c.jpg", "180.0"} {
			if !strings.Contains(view, want) {
				t.Errorf("View() missing %q", want)
			}
		}
	})

	t.Run("first row highlighted", func(t *testing.T) {
		i, ok := Records(fixture(t)).Selected()
		if !ok || i != 0 {
			t.Errorf("Selected() = %d, %v, want 0, true", i, ok)
		}
	})
}

func TestNavigation(t *testing.T) {
	m := Records(fixture(t))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if i, _ := m.Selected(); i != 2 {
		t.Errorf("after two downs Selected() = %d, want 2", i)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if i, _ := m.Selected(); i != 1 {
		t.Errorf("after up Selected() = %d, want 1", i)
	}
}

func TestFilter(t *testing.T) {
	m := Records(fixture(t))
	for _, k := range keys("/") {
		m, _ = m.Update(k)
	}
	if !m.Filtering() {
		t.Fatal("'/' did not focus the filter")
	}
	for _, k := range keys("1960") {
		m, _ = m.Update(k)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if m.Filtering() {
		t.Error("enter did not leave the filter")
	}
	if m.FilterValue() != "1960" {
		t.Errorf("FilterValue() = %q, want 1960", m.FilterValue())
	}
	if i, ok := m.Selected(); !ok || i != 1 {
		t.Errorf("Selected() = %d, %v, want 1, true", i, ok)
	}

	view := m.View()
	if strings.Contains(view, "faces/a.jpg") {
		t.Error("filtered-out row still shown")
	}
}

func TestFilterHidingEverything(t *testing.T) {
	m := Records(fixture(t))
	for _, k := range keys("/zzz") {
		m, _ = m.Update(k)
	}
	if _, ok := m.Selected(); ok {
		t.Error("Selected() ok with every row filtered out")
	}
}

func TestModelInit(t *testing.T) {
	if cmd := Records(nil).Init(); cmd != nil {
		t.Error("Init() should return nil")
	}
}
