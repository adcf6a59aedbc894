// Package server exposes the calendar renderer over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tartampluch/go-calendar/internal/calendar"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/engine"
	"github.com/tartampluch/go-calendar/internal/eventdb"
	"github.com/tartampluch/go-calendar/internal/events"
	"github.com/tartampluch/go-calendar/internal/pdf"
	"github.com/tartampluch/go-calendar/internal/theme"
)

// CalendarServer serves rendered calendars and the shared events.
type CalendarServer struct {
	Host string
	Port string

	Themes     *theme.Registry
	Rasterizer pdf.Rasterizer // PDF requests fail without one.
	Clock      calendar.Clock

	// Events backs GET renders and the /api/events routes. POST renders
	// carrying their own events never touch it.
	Events *events.Store

	// DB, if set, persists every PUT /api/events.
	DB *eventdb.DB

	metrics *metrics
	limiter *limiter
}

// NewCalendarServer creates a server listening on localhost:port.
func NewCalendarServer(port string, store *events.Store) *CalendarServer {
	return &CalendarServer{
		Host:    config.LocalhostBindAddr,
		Port:    port,
		Themes:  theme.Builtin(),
		Clock:   calendar.RealClock{},
		Events:  store,
		metrics: newMetrics(),
		limiter: newLimiter(config.RateLimitRPS, config.RateLimitBurst),
	}
}

// Handler builds the router with its middleware chain.
func (s *CalendarServer) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(s.metrics.middleware)

	r.HandleFunc(config.RouteHealth, s.handleHealth).Methods(http.MethodGet)
	r.Handle(config.RouteMetrics, promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	api := r.PathPrefix(config.RouteAPI).Subrouter()
	api.HandleFunc(config.RouteOptions, s.handleOptions).Methods(http.MethodGet)
	api.HandleFunc(config.RouteEvents, s.handleGetEvents).Methods(http.MethodGet)
	api.HandleFunc(config.RouteEvents, s.handlePutEvents).Methods(http.MethodPut)
	api.HandleFunc(config.RouteEventKey, s.handlePutEvent).Methods(http.MethodPut)
	api.HandleFunc(config.RouteEventKey, s.handleDeleteEvent).Methods(http.MethodDelete)

	// Rendering routes share the per-client limiter.
	limited := func(h http.HandlerFunc) http.Handler { return s.limiter.middleware(h) }
	api.Handle(config.RouteCalendar, limited(s.handleGetCalendar)).Methods(http.MethodGet)
	api.Handle(config.RouteCalendar, limited(s.handlePostCalendar)).Methods(http.MethodPost)
	api.Handle(config.RouteEventsICS, limited(s.handleEventsICS)).Methods(http.MethodGet, http.MethodHead)

	cors := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins([]string{"*"}),
		gorillaHandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		gorillaHandlers.AllowedHeaders([]string{config.HeaderContentType}),
		gorillaHandlers.ExposedHeaders([]string{config.HeaderRequestID, config.HeaderWarning}),
	)
	return gorillaHandlers.RecoveryHandler(gorillaHandlers.PrintRecoveryStack(false))(cors(r))
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *CalendarServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	srv := &http.Server{
		Addr:         s.Host + config.AddrSeparator + s.Port,
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	go s.limiter.cleanup(ctx)

	serverError := make(chan error, config.ChannelBufferSize)
	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyAddr, srv.Addr,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

func (s *CalendarServer) generator() *engine.Generator {
	return &engine.Generator{Clock: s.Clock, Themes: s.Themes, Rasterizer: s.Rasterizer}
}

func (s *CalendarServer) store() *events.Store {
	if s.Events == nil {
		return events.Shared()
	}
	return s.Events
}
