// Package server serves the rendered page, its dataset and image assets.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/drewconway/shades-of-time/internal/charts"
	"github.com/drewconway/shades-of-time/internal/config"
	"github.com/drewconway/shades-of-time/internal/dataset"
	"github.com/drewconway/shades-of-time/internal/interact"
	"github.com/drewconway/shades-of-time/internal/page"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Config describes what the server publishes. Exactly one of Dataset and
// LoadErr is expected to be set.
type Config struct {
	Dataset *dataset.Dataset
	LoadErr error
	Layout  config.Layout
	// Assets is the directory image paths in the dataset are relative to.
	// Empty disables static file serving.
	Assets string
	// Registry receives the server metrics. Nil uses a private registry.
	Registry *prometheus.Registry
}

type metrics struct {
	requests *prometheus.CounterVec
	records  prometheus.Gauge
	skipped  prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "shades_http_requests_total",
			Help: "HTTP requests served, by route and status code.",
		}, []string{"route", "status"}),
		records: f.NewGauge(prometheus.GaugeOpts{
			Name: "shades_dataset_records",
			Help: "Records rendered from the loaded dataset.",
		}),
		skipped: f.NewGauge(prometheus.GaugeOpts{
			Name: "shades_dataset_skipped_records",
			Help: "Dataset entries skipped as malformed.",
		}),
	}
}

// Server holds the page rendered once at construction.
type Server struct {
	router  chi.Router
	log     logrus.FieldLogger
	page    []byte
	raw     []byte
	loadErr error
	metrics *metrics
}

// New renders the page and builds the router. A render failure is treated
// like a load failure: the server still starts and reports it.
func New(log logrus.FieldLogger, cfg Config) *Server {
	reg := cfg.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	s := &Server{log: log, loadErr: cfg.LoadErr, metrics: newMetrics(reg)}

	if s.loadErr == nil && cfg.Dataset == nil {
		s.loadErr = dataset.ErrEmpty
	}
	if s.loadErr == nil {
		s.page, s.loadErr = renderPage(cfg.Dataset, cfg.Layout)
	}
	if s.loadErr != nil {
		log.WithField("error", s.loadErr).Error("serving unavailable page")
		var buf bytes.Buffer
		_ = page.WriteUnavailable(&buf, s.loadErr)
		s.page = buf.Bytes()
	} else {
		s.raw = cfg.Dataset.Raw()
		s.metrics.records.Set(float64(cfg.Dataset.Len()))
		s.metrics.skipped.Set(float64(len(cfg.Dataset.Skipped())))
	}

	s.router = s.routes(reg, cfg.Assets)
	return s
}

func renderPage(ds *dataset.Dataset, layout config.Layout) ([]byte, error) {
	doc, err := charts.Render(ds, layout)
	if err != nil {
		return nil, fmt.Errorf("rendering: %w", err)
	}
	var buf bytes.Buffer
	if err := page.Write(&buf, doc, interact.New(doc, layout.Interaction)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Server) routes(reg *prometheus.Registry, assets string) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handlePage)
	r.Get("/tones.json", s.handleDataset)
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	if assets != "" {
		r.Handle("/*", http.FileServer(http.Dir(assets)))
	}
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handlePage(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if s.loadErr != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	w.Write(s.page)
}

func (s *Server) handleDataset(w http.ResponseWriter, _ *http.Request) {
	if s.loadErr != nil {
		http.Error(w, "dataset unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(s.raw)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if s.loadErr != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprintf(w, `{"status":"unavailable","error":%q}`, s.loadErr.Error())
		return
	}
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		s.metrics.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
		s.log.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     status,
			"bytes":      ww.BytesWritten(),
			"duration":   time.Since(start),
			"request_id": middleware.GetReqID(r.Context()),
		}).Info("request")
	})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
