// Package main implements the tzgrid web server, which shows several time
// zones side by side over a date range.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	port      = flag.String("port", "", "Port for web server (or set PORT, default 8080)")
	refZone   = flag.String("ref", "", "Reference clock for day boundaries and hour labels (or set REF_ZONE, default UTC)")
	cacheTTL  = flag.String("cache-ttl", "", "Response cache TTL (or set CACHE_TTL, default 10m)")
	rateLimit = flag.Int("rate-limit", 0, "Requests per minute per client IP (or set RATE_LIMIT, default 120)")
	verbose   = flag.Bool("verbose", false, "Enable verbose logging")
	version   = flag.Bool("version", false, "Show version")
)

const (
	defaultPort      = "8080"
	defaultCacheTTL  = 10 * time.Minute
	defaultRateLimit = 120
	cacheSize        = 10_000
)

type config struct {
	ref       *time.Location
	port      string
	cacheTTL  time.Duration
	rateLimit int
}

// loadConfig merges flag values with environment fallbacks. Flags win.
func loadConfig(port, ref, ttl string, limit int, getenv func(string) string) (config, error) {
	cfg := config{port: port, cacheTTL: defaultCacheTTL, rateLimit: limit}

	if cfg.port == "" {
		cfg.port = getenv("PORT")
	}
	if cfg.port == "" {
		cfg.port = defaultPort
	}

	if ref == "" {
		ref = getenv("REF_ZONE")
	}
	cfg.ref = time.UTC
	if ref != "" {
		loc, err := time.LoadLocation(ref)
		if err != nil {
			return config{}, fmt.Errorf("reference zone %q: %w", ref, err)
		}
		cfg.ref = loc
	}

	if ttl == "" {
		ttl = getenv("CACHE_TTL")
	}
	if ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return config{}, fmt.Errorf("cache TTL %q: %w", ttl, err)
		}
		if d <= 0 {
			return config{}, fmt.Errorf("cache TTL %q: must be positive", ttl)
		}
		cfg.cacheTTL = d
	}

	if cfg.rateLimit == 0 {
		if v := getenv("RATE_LIMIT"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return config{}, fmt.Errorf("rate limit %q: %w", v, err)
			}
			cfg.rateLimit = n
		}
	}
	if cfg.rateLimit == 0 {
		cfg.rateLimit = defaultRateLimit
	}
	if cfg.rateLimit < 0 {
		return config{}, fmt.Errorf("rate limit %d: must be positive", cfg.rateLimit)
	}

	return cfg, nil
}

func main() {
	flag.Parse()

	if *version {
		fmt.Println("tzgrid server v1.0.0")
		return
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := loadConfig(*port, *refZone, *cacheTTL, *rateLimit, os.Getenv)
	if err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("Server configuration",
		"port", cfg.port,
		"verbose", *verbose,
		"reference", cfg.ref.String(),
		"cache_ttl", cfg.cacheTTL,
		"rate_limit_per_minute", cfg.rateLimit)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	s, err := newServer(cfg, logger, reg)
	if err != nil {
		logger.Error("Failed to start server", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.port,
		Handler:           s.handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.port)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}
