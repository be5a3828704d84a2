package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/codeGROOVE-dev/tzgrid/pkg/daterange"
	"github.com/codeGROOVE-dev/tzgrid/pkg/grid"
	"github.com/codeGROOVE-dev/tzgrid/pkg/httpcache"
	"github.com/codeGROOVE-dev/tzgrid/pkg/textgrid"
	"github.com/codeGROOVE-dev/tzgrid/pkg/view"
	"github.com/codeGROOVE-dev/tzgrid/pkg/zones"
)

const (
	contentHTML     = "text/html; charset=utf-8"
	contentJSON     = "application/json"
	contentMarkdown = "text/markdown; charset=utf-8"
	contentCSV      = "text/csv; charset=utf-8"
)

type server struct {
	catalog  *zones.Catalog
	renderer *view.Renderer
	cache    *httpcache.OtterCache
	limiters *limiterStore
	metrics  *metrics
	gatherer prometheus.Gatherer
	logger   *slog.Logger
	ref      *time.Location
	now      func() time.Time
}

func newServer(cfg config, logger *slog.Logger, reg *prometheus.Registry) (*server, error) {
	catalog, err := zones.DefaultCatalog()
	if err != nil {
		return nil, err
	}
	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, err
	}
	cache := httpcache.NewOtterCache(cacheSize, cfg.cacheTTL, logger)
	m, err := newMetrics(reg, cache.Len)
	if err != nil {
		return nil, fmt.Errorf("registering metrics: %w", err)
	}
	return &server{
		catalog:  catalog,
		renderer: renderer,
		cache:    cache,
		limiters: newLimiterStore(cfg.rateLimit),
		metrics:  m,
		gatherer: reg,
		logger:   logger,
		ref:      cfg.ref,
		now:      time.Now,
	}, nil
}

func (s *server) handler() http.Handler {
	mux := http.NewServeMux()
	route := func(pattern, name string, h http.Handler) {
		mux.Handle(pattern, s.instrument(name, h))
	}

	route("GET /{$}", "home", s.limited(s.serveGrid("home", contentHTML, s.renderHTML, false)))
	route("GET /api/v1/grid", "api", s.limited(s.serveGrid("api", contentJSON, renderJSON, true)))
	route("GET /export.md", "markdown", s.limited(s.serveGrid("markdown", contentMarkdown, renderMarkdown, false)))
	route("GET /export.csv", "csv", s.limited(s.serveGrid("csv", contentCSV, renderCSV, false)))
	route("GET /static/", "static", staticHandler())
	route("GET /healthz", "healthz", http.HandlerFunc(s.handleHealth))
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	return s.wrap(mux)
}

type renderFunc func(w io.Writer, m *view.Model) error

// serveGrid rebuilds the view from the query string and writes it with
// render. Responses are cached by route, canonical query and reference
// clock; a request without an explicit range also keys on the current
// minute because its default range moves with the clock.
func (s *server) serveGrid(route, contentType string, render renderFunc, jsonErrors bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := w.Header().Get("X-Request-ID")
		now := s.now()
		q := r.URL.Query()

		key := s.cacheKey(route, q, now)
		if entry, found := s.cache.Get(key); found {
			s.metrics.observeCache(route, true)
			s.write(w, r, entry, "hit")
			s.logger.Debug("Request completed",
				"request_id", requestID,
				"route", route,
				"cache", "hit",
				"duration_ms", time.Since(start).Milliseconds())
			return
		}
		s.metrics.observeCache(route, false)

		m, err := view.FromQuery(s.catalog, s.ref, now, q)
		if err != nil {
			s.logger.Info("Invalid date range",
				"request_id", requestID,
				"route", route,
				"error", err,
				"client_ip", clientIP(r))
			s.badRange(w, err, jsonErrors)
			return
		}
		s.metrics.observeGrid(m.Grid().Columns())

		var buf bytes.Buffer
		if err := render(&buf, m); err != nil {
			s.logger.Error("Rendering failed",
				"request_id", requestID,
				"route", route,
				"error", err)
			http.Error(w, "Rendering failed", http.StatusInternalServerError)
			return
		}

		entry := s.cache.Set(key, contentType, buf.Bytes())
		s.write(w, r, entry, "miss")
		s.logger.Info("Request completed",
			"request_id", requestID,
			"route", route,
			"zones", len(m.Zones()),
			"columns", m.Grid().Columns(),
			"cache", "miss",
			"duration_ms", time.Since(start).Milliseconds())
	}
}

func (s *server) cacheKey(route string, q url.Values, now time.Time) string {
	key := route + "|" + s.ref.String() + "|" + q.Encode()
	if q.Get(view.ParamStart) == "" || q.Get(view.ParamEnd) == "" {
		key += "|" + now.Truncate(time.Minute).Format(time.RFC3339)
	}
	return key
}

func (s *server) write(w http.ResponseWriter, r *http.Request, entry httpcache.Entry, cacheStatus string) {
	w.Header().Set("Content-Type", entry.ContentType)
	w.Header().Set("ETag", entry.ETag)
	w.Header().Set("X-Cache", cacheStatus)
	if r.Header.Get("If-None-Match") == entry.ETag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	if _, err := w.Write(entry.Data); err != nil {
		s.logger.Error("Failed to write response",
			"request_id", w.Header().Get("X-Request-ID"),
			"error", err,
			"response_size", len(entry.Data))
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    string `json:"code,omitempty"`
}

func (s *server) badRange(w http.ResponseWriter, err error, jsonErrors bool) {
	if !jsonErrors {
		http.Error(w, "Invalid date range: "+err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", contentJSON)
	w.WriteHeader(http.StatusBadRequest)
	resp := errorResponse{
		Error:   "Invalid date range",
		Details: err.Error(),
		Code:    "INVALID_RANGE",
	}
	if encErr := json.NewEncoder(w).Encode(resp); encErr != nil {
		s.logger.Error("Failed to encode error response",
			"request_id", w.Header().Get("X-Request-ID"),
			"encode_error", encErr)
	}
}

// staticHandler serves the embedded assets under /static/. Directory paths
// are not listed.
func staticHandler() http.Handler {
	files := http.StripPrefix("/static/", http.FileServerFS(view.Static()))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := io.WriteString(w, "ok\n"); err != nil {
		s.logger.Debug("Failed to write health response", "error", err)
	}
}

func (s *server) renderHTML(w io.Writer, m *view.Model) error {
	return s.renderer.Render(w, m)
}

// gridResponse is the JSON body of /api/v1/grid.
type gridResponse struct {
	*grid.Grid

	Range daterange.Range `json:"range"`
	Zones []string        `json:"zones"`
}

func renderJSON(w io.Writer, m *view.Model) error {
	return json.NewEncoder(w).Encode(gridResponse{
		Grid:  m.Grid(),
		Range: m.Range(),
		Zones: m.Zones(),
	})
}

func renderMarkdown(w io.Writer, m *view.Model) error {
	_, err := io.WriteString(w, textgrid.Markdown(m.Grid())+"\n")
	return err
}

func renderCSV(w io.Writer, m *view.Model) error {
	_, err := io.WriteString(w, textgrid.CSV(m.Grid())+"\n")
	return err
}
