package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/tartampluch/go-calendar/internal/calendar"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/document"
	"github.com/tartampluch/go-calendar/internal/engine"
	"github.com/tartampluch/go-calendar/internal/events"
	"github.com/tartampluch/go-calendar/internal/layout"
	"github.com/tartampluch/go-calendar/internal/page"
)

// healthResponse is the body of GET /health.
type healthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// optionsResponse lists every accepted render option.
type optionsResponse struct {
	Themes         []string `json:"themes"`
	Layouts        []string `json:"layouts"`
	PageSizes      []string `json:"pageSizes"`
	Formats        []string `json:"formats"`
	LogoPositions  []string `json:"logoPositions"`
	LogoAlignments []string `json:"logoAlignments"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type eventsResponse struct {
	Count int `json:"count"`
}

func (s *CalendarServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    config.HealthStatusOK,
		Service:   config.ServiceName,
		Version:   config.Version,
		Timestamp: calendar.OrReal(s.Clock).Now().UTC().Format(time.RFC3339),
	})
}

func (s *CalendarServer) handleOptions(w http.ResponseWriter, _ *http.Request) {
	resp := optionsResponse{
		Themes:  s.Themes.Names(),
		Layouts: layout.Names(),
		Formats: []string{config.FormatPDF, config.FormatHTML},
	}
	for _, size := range page.Sizes {
		resp.PageSizes = append(resp.PageSizes, string(size))
	}
	for _, p := range document.Positions {
		resp.LogoPositions = append(resp.LogoPositions, string(p))
	}
	for _, a := range document.Alignments {
		resp.LogoAlignments = append(resp.LogoAlignments, string(a))
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleGetCalendar renders from query parameters against the shared store.
func (s *CalendarServer) handleGetCalendar(w http.ResponseWriter, r *http.Request) {
	job, err := s.parseJob(r.URL.Query().Get)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, s.store(), job)
}

// handlePostCalendar renders from a form or JSON body. Inline events get a
// store of their own so concurrent requests never see each other's data.
func (s *CalendarServer) handlePostCalendar(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxRequestBodySize)

	req, err := s.parsePost(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	store, err := s.requestStore(req.events)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, store, req.job)
}

func (s *CalendarServer) render(w http.ResponseWriter, r *http.Request, store *events.Store, job engine.Job) {
	ctx, cancel := context.WithTimeout(r.Context(), config.RenderTimeout)
	defer cancel()

	res, err := s.generator().Generate(ctx, store, job)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.metrics.renders.WithLabelValues(job.Options.Layout.String(), job.Format).Inc()
	s.metrics.warnings.Add(float64(len(res.Warnings)))
	for _, warn := range res.Warnings {
		w.Header().Add(config.HeaderWarning, warn.String())
	}

	if job.Format == config.FormatHTML {
		w.Header().Set(config.HeaderContentType, config.MimeHTML)
		w.WriteHeader(http.StatusOK)
		s.write(w, r, res.HTML)
		return
	}

	w.Header().Set(config.HeaderContentType, config.MimePDF)
	w.Header().Set(config.HeaderContentDisposition,
		mime.FormatMediaType(config.DispositionAttachment, map[string]string{"filename": engine.OutputName(job)}))
	w.Header().Set(config.HeaderContentLength, strconv.Itoa(len(res.PDF)))
	w.WriteHeader(http.StatusOK)
	s.write(w, r, res.PDF)
}

func (s *CalendarServer) handleGetEvents(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.store().Save(&buf); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set(config.HeaderContentType, config.MimeJSON)
	w.WriteHeader(http.StatusOK)
	s.write(w, r, buf.Bytes())
}

// handlePutEvents replaces the shared events, then persists them when a
// database is configured.
func (s *CalendarServer) handlePutEvents(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxRequestBodySize)

	records, err := events.Decode(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.fail(w, r, err)
			return
		}
		s.fail(w, r, badRequest{config.HTTPMsgInvalidEvents})
		return
	}
	// A failed database write leaves the store untouched.
	if s.DB != nil {
		if err := s.DB.SaveAll(r.Context(), records); err != nil {
			s.fail(w, r, err)
			return
		}
	}
	store := s.store()
	if err := store.Replace(records); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, eventsResponse{Count: store.Len()})
}

// handlePutEvent stores one record under the {key} path variable.
func (s *CalendarServer) handlePutEvent(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadSize)
	key := mux.Vars(r)[config.ParamKey]

	var rec events.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		s.fail(w, r, badRequest{config.HTTPMsgInvalidEvents})
		return
	}
	if rec.Category == "" {
		rec.Category = events.Custom
	}
	if err := events.Validate(key, rec); err != nil {
		s.fail(w, r, badRequest{config.HTTPMsgInvalidEvents})
		return
	}
	if s.DB != nil {
		if err := s.DB.Put(r.Context(), key, rec); err != nil {
			s.fail(w, r, err)
			return
		}
	}
	store := s.store()
	if err := store.Put(key, rec); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, eventsResponse{Count: store.Len()})
}

// handleDeleteEvent removes the record under {key}. Unknown keys are a no-op.
func (s *CalendarServer) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)[config.ParamKey]
	if _, _, err := calendar.ParseKey(key); err != nil {
		s.fail(w, r, badRequest{config.HTTPMsgInvalidKey})
		return
	}
	if s.DB != nil {
		if err := s.DB.Delete(r.Context(), key); err != nil {
			s.fail(w, r, err)
			return
		}
	}
	store := s.store()
	store.Delete(key)
	writeJSON(w, http.StatusOK, eventsResponse{Count: store.Len()})
}

// handleEventsICS exports the shared events for ?year= with ETag caching.
func (s *CalendarServer) handleEventsICS(w http.ResponseWriter, r *http.Request) {
	year := calendar.OrReal(s.Clock).Now().Year()
	if v := r.URL.Query().Get(config.ParamYear); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < config.MinYear || y > config.MaxYear {
			s.fail(w, r, badRequest{config.HTTPMsgInvalidYear})
			return
		}
		year = y
	}

	var buf bytes.Buffer
	exporter := &engine.ICSExporter{Clock: s.Clock}
	if _, err := exporter.Export(s.store(), year, &buf); err != nil {
		s.fail(w, r, err)
		return
	}

	// DTSTAMP changes on every export, so the tag covers the events only.
	etag := s.eventsETag(year)
	w.Header().Set(config.HeaderContentType, config.MimeTextCalendar)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, etag)

	if r.Header.Get(config.HeaderIfNoneMatch) == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodGet {
		s.write(w, r, buf.Bytes())
	}
}

func (s *CalendarServer) eventsETag(year int) string {
	var buf bytes.Buffer
	_ = s.store().Save(&buf)
	fmt.Fprintf(&buf, "%d", year)
	hash := sha256.Sum256(buf.Bytes())
	return fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))
}

// fail maps err to a status code. Validation problems are 400s with their
// message; everything else is a 500.
func (s *CalendarServer) fail(w http.ResponseWriter, r *http.Request, err error) {
	var bad badRequest
	var tooLarge *http.MaxBytesError
	status := http.StatusInternalServerError
	msg := err.Error()

	switch {
	case errors.As(err, &bad):
		status = http.StatusBadRequest
	case errors.As(err, &tooLarge):
		status = http.StatusRequestEntityTooLarge
		msg = config.HTTPMsgFileTooLarge
	case errors.Is(err, document.ErrInvalidMonth):
		status = http.StatusBadRequest
		msg = config.HTTPMsgInvalidMonth
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	}

	log := slog.With(
		config.LogKeyComponent, config.CompServer,
		config.LogKeyRequestID, requestID(r.Context()),
		config.LogKeyStatus, status,
		config.LogKeyError, err,
	)
	if status >= http.StatusInternalServerError {
		log.Error(config.MsgRequestFailed)
	} else {
		log.Debug(config.MsgRequestRejected)
	}
	writeError(w, status, msg)
}

func (s *CalendarServer) write(w http.ResponseWriter, r *http.Request, data []byte) {
	if _, err := w.Write(data); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyRequestID, requestID(r.Context()),
			config.LogKeyError, err,
		)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(config.HeaderContentType, config.MimeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
