package main

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// metrics records request outcomes in Prometheus collectors.
type metrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	cache    *prometheus.CounterVec
	entries  prometheus.GaugeFunc
	columns  prometheus.Histogram
}

// newMetrics registers the server collectors on reg. If reg is nil, the
// default registerer is used. Collectors already registered are reused.
// cacheEntries is sampled at scrape time.
func newMetrics(reg prometheus.Registerer, cacheEntries func() int) (*metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tzgrid_http_requests_total",
			Help: "HTTP requests by route and status code",
		}, []string{"route", "code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tzgrid_http_request_duration_seconds",
			Help:    "Time to serve a request",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tzgrid_response_cache_total",
			Help: "Response cache lookups by route and result",
		}, []string{"route", "result"}),
		entries: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "tzgrid_response_cache_entries",
			Help: "Approximate number of cached responses",
		}, func() float64 { return float64(cacheEntries()) }),
		columns: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tzgrid_grid_columns",
			Help:    "Hour columns per built grid",
			Buckets: []float64{24, 48, 73, 168, 336, 744, 2232},
		}),
	}

	var err error
	if m.requests, err = register(reg, m.requests); err != nil {
		return nil, err
	}
	if m.latency, err = register(reg, m.latency); err != nil {
		return nil, err
	}
	if m.cache, err = register(reg, m.cache); err != nil {
		return nil, err
	}
	if m.entries, err = register(reg, m.entries); err != nil {
		return nil, err
	}
	if m.columns, err = register(reg, m.columns); err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (m *metrics) observeRequest(route string, code int, elapsed time.Duration) {
	m.requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	m.latency.WithLabelValues(route).Observe(elapsed.Seconds())
}

func (m *metrics) observeCache(route string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cache.WithLabelValues(route, result).Inc()
}

func (m *metrics) observeGrid(columns int) {
	m.columns.Observe(float64(columns))
}
