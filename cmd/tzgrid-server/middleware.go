package main

import (
	"net"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/maypok86/otter/v2"
	"golang.org/x/time/rate"
)

// statusRecorder remembers the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

// wrap adds a request ID, security headers and panic recovery to handler.
func (s *server) wrap(handler http.Handler) http.Handler {
	csp := cspPolicy()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		defer func() {
			if err := recover(); err != nil {
				const size = 64 << 10
				buf := make([]byte, size)
				buf = buf[:runtime.Stack(buf, false)]

				s.logger.Error("PANIC: Request handler crashed",
					"error", err,
					"path", r.URL.Path,
					"method", r.Method,
					"request_id", requestID,
					"client_ip", clientIP(r),
					"user_agent", r.Header.Get("User-Agent"),
					"stack", string(buf))
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
		}()

		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		w.Header().Set("Permissions-Policy", "geolocation=(), microphone=(), camera=(), payment=(), usb=(), bluetooth=()")
		w.Header().Set("Content-Security-Policy", csp)

		switch {
		case strings.HasPrefix(r.URL.Path, "/api/"), r.URL.Path == "/metrics", r.URL.Path == "/healthz":
			w.Header().Set("Cache-Control", "no-store")
		case strings.HasPrefix(r.URL.Path, "/static/"):
			w.Header().Set("Cache-Control", "public, max-age=3600")
		}

		handler.ServeHTTP(w, r)
	})
}

// instrument records the status and latency of h under route.
func (s *server) instrument(route string, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		h.ServeHTTP(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		s.metrics.observeRequest(route, rec.status, time.Since(start))
	})
}

// limiterStore hands out one token bucket per client IP. Idle buckets are
// evicted by the cache and start full when recreated.
type limiterStore struct {
	limiters *otter.Cache[string, *rate.Limiter]
	limit    rate.Limit
	burst    int
}

func newLimiterStore(perMinute int) *limiterStore {
	return &limiterStore{
		limiters: otter.Must(&otter.Options[string, *rate.Limiter]{
			MaximumSize:      100_000,
			ExpiryCalculator: otter.ExpiryWriting[string, *rate.Limiter](10 * time.Minute),
		}),
		limit: rate.Every(time.Minute / time.Duration(perMinute)),
		burst: max(perMinute/4, 1),
	}
}

func (l *limiterStore) allow(ip string) bool {
	limiter, ok := l.limiters.GetIfPresent(ip)
	if !ok {
		limiter, _ = l.limiters.SetIfAbsent(ip, rate.NewLimiter(l.limit, l.burst))
	}
	return limiter.Allow()
}

// limited rejects requests from clients over their rate.
func (s *server) limited(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !s.limiters.allow(ip) {
			s.logger.Warn("Rate limit exceeded",
				"request_id", w.Header().Get("X-Request-ID"),
				"client_ip", ip,
				"user_agent", r.Header.Get("User-Agent"))
			http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		h(w, r)
	}
}

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
