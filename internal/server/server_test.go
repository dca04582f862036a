package server

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/drewconway/shades-of-time/internal/config"
	"github.com/drewconway/shades-of-time/internal/dataset"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

const payload = `[
  {"year": "2000", "month": "01", "day": "01", "num": "0", "rgbcolor": {"R": 10, "G": 20, "B": 30}, "hexcolor": "#0a141e", "face_path": "faces/a.jpg"},
  {"year": "2005", "month": "06", "day": "15", "num": "1", "rgbcolor": {"R": 200, "G": 200, "B": 200}, "hexcolor": "#c8c8c8", "face_path": "faces/b.jpg"},
  {"year": "2005", "month": "13", "day": "15", "num": "1", "rgbcolor": {"R": 200, "G": 200, "B": 200}, "face_path": "faces/bad.jpg"}
]`

func layout() config.Layout {
	l := config.Default()
	l.ChartHeight = 1000
	return l
}

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	log, _ := logtest.NewNullLogger()
	return New(log, cfg)
}

func loaded(t *testing.T) *dataset.Dataset {
	t.Helper()
	log, _ := logtest.NewNullLogger()
	ds, err := dataset.Parse(strings.NewReader(payload), log)
	if err != nil {
		t.Fatal(err)
	}
	return ds
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestServerServesLoadedDataset(t *testing.T) {
	assets := t.TempDir()
	if err := os.MkdirAll(filepath.Join(assets, "faces"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(assets, "faces", "b.jpg"), []byte("jpeg"), 0o600); err != nil {
		t.Fatal(err)
	}

	reg := prometheus.NewRegistry()
	s := newTestServer(t, Config{Dataset: loaded(t), Layout: layout(), Assets: assets, Registry: reg})

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"page", "/", http.StatusOK, `id="chart"`},
		{"dataset", "/tones.json", http.StatusOK, `"face_path": "faces/a.jpg"`},
		{"health", "/healthz", http.StatusOK, `{"status":"ok"}`},
		{"asset", "/faces/b.jpg", http.StatusOK, "jpeg"},
		{"missing asset", "/faces/zzz.jpg", http.StatusNotFound, ""},
		{"metrics", "/metrics", http.StatusOK, "shades_dataset_records 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, tt.path)
			if rec.Code != tt.wantStatus {
				t.Fatalf("GET %s status = %d, want %d", tt.path, rec.Code, tt.wantStatus)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("GET %s body missing %q", tt.path, tt.wantBody)
			}
		})
	}

	if got := testutil.ToFloat64(s.metrics.skipped); got != 1 {
		t.Errorf("skipped gauge = %v, want 1", got)
	}
	if got := testutil.ToFloat64(s.metrics.requests.WithLabelValues("/", "200")); got != 1 {
		t.Errorf("page request counter = %v, want 1", got)
	}
}

func TestServerPageIsStable(t *testing.T) {
	s := newTestServer(t, Config{Dataset: loaded(t), Layout: layout()})
	first := get(t, s, "/").Body.String()
	second := get(t, s, "/").Body.String()
	if first != second {
		t.Error("page changed between requests")
	}
}

func TestServerReportsLoadFailure(t *testing.T) {
	s := newTestServer(t, Config{LoadErr: errors.New("fetching dataset: connection refused"), Layout: layout()})

	rec := get(t, s, "/")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("GET / status = %d, want 503", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "Data unavailable.") || !strings.Contains(string(body), "connection refused") {
		t.Errorf("failure page missing diagnostic: %s", body)
	}

	if rec := get(t, s, "/tones.json"); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("GET /tones.json status = %d, want 503", rec.Code)
	}
	health := get(t, s, "/healthz")
	if health.Code != http.StatusServiceUnavailable || !strings.Contains(health.Body.String(), "connection refused") {
		t.Errorf("GET /healthz = %d %s", health.Code, health.Body.String())
	}
}

func TestServerInvalidLayoutIsUnavailable(t *testing.T) {
	bad := layout()
	bad.ChartWidth = 0
	s := newTestServer(t, Config{Dataset: loaded(t), Layout: bad})
	if rec := get(t, s, "/"); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("GET / status = %d, want 503", rec.Code)
	}
}

func TestServerWithoutDataset(t *testing.T) {
	s := newTestServer(t, Config{Layout: layout()})
	if !errors.Is(s.loadErr, dataset.ErrEmpty) {
		t.Errorf("loadErr = %v, want ErrEmpty", s.loadErr)
	}
}
