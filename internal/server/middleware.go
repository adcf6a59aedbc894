package server

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tartampluch/go-calendar/internal/config"
	"golang.org/x/time/rate"
)

// -----------------------------------------------------------------------------
// Request IDs
// -----------------------------------------------------------------------------

type ctxKey int

const requestIDKey ctxKey = iota

// requestIDMiddleware tags every request with an ID, echoed in the response.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(config.HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(config.HeaderRequestID, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// -----------------------------------------------------------------------------
// Metrics
// -----------------------------------------------------------------------------

// metrics lives on its own registry so several servers can coexist in tests.
type metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	renders  *prometheus.CounterVec
	warnings prometheus.Counter
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: config.MetricsNamespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"route", "method", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: config.MetricsNamespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: config.MetricsNamespace,
				Name:      "renders_total",
				Help:      "Calendars rendered, by layout and output format",
			},
			[]string{"layout", "format"},
		),
		warnings: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: config.MetricsNamespace,
				Name:      "render_warnings_total",
				Help:      "Non-fatal problems reported while composing documents",
			},
		),
	}
	m.registry.MustRegister(m.requests, m.duration, m.renders, m.warnings)
	return m
}

// middleware records request counts and durations per route template, so
// query strings never create new series.
func (m *metrics) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		m.requests.WithLabelValues(route, r.Method, strconv.Itoa(ww.status)).Inc()
		m.duration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())

		slog.Debug(config.MsgRequestServed,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyRequestID, requestID(r.Context()),
			config.LogKeyMethod, r.Method,
			config.LogKeyRoute, route,
			config.LogKeyStatus, ww.status,
			config.LogKeyDuration, time.Since(start).Milliseconds(),
		)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// -----------------------------------------------------------------------------
// Rate limiting
// -----------------------------------------------------------------------------

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiter hands out one token bucket per client address.
type limiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rps      rate.Limit
	burst    int
}

func newLimiter(rps float64, burst int) *limiter {
	return &limiter{visitors: make(map[string]*visitor), rps: rate.Limit(rps), burst: burst}
}

func (l *limiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

func (l *limiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.get(clientIP(r)).Allow() {
			w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
			writeError(w, http.StatusTooManyRequests, config.HTTPMsgTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// cleanup forgets idle clients until ctx is cancelled.
func (l *limiter) cleanup(ctx context.Context) {
	ticker := time.NewTicker(config.RateLimitCleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.mu.Lock()
			for ip, v := range l.visitors {
				if time.Since(v.lastSeen) > config.RateLimitIdleTTL {
					delete(l.visitors, ip)
				}
			}
			l.mu.Unlock()
		}
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get(config.HeaderForwardedFor); fwd != "" {
		return fwd
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
