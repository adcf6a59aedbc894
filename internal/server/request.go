package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/tartampluch/go-calendar/internal/calendar"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/document"
	"github.com/tartampluch/go-calendar/internal/engine"
	"github.com/tartampluch/go-calendar/internal/events"
	"github.com/tartampluch/go-calendar/internal/layout"
)

// badRequest is a validation failure reported to the client as a 400.
type badRequest struct {
	msg string
}

func (e badRequest) Error() string { return e.msg }

// fields abstracts over query strings, forms and JSON bodies.
type fields func(name string) string

// renderRequest is a validated calendar request.
type renderRequest struct {
	job    engine.Job
	events []byte // raw events JSON, nil to use the shared store
}

// parseJob validates the common render parameters. Missing values take
// the defaults of the command line; month is 1-12 on the wire.
func (s *CalendarServer) parseJob(get fields) (engine.Job, error) {
	now := calendar.OrReal(s.Clock).Now()
	job := engine.Job{
		Month:   int(now.Month()) - 1,
		Year:    now.Year(),
		Options: document.DefaultOptions(),
		Format:  config.FormatPDF,
	}

	if v := get(config.ParamMonth); v != "" {
		m, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || m < 1 || m > 12 {
			return job, badRequest{config.HTTPMsgInvalidMonth}
		}
		job.Month = m - 1
	}
	if v := get(config.ParamYear); v != "" {
		y, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || y < config.MinYear || y > config.MaxYear {
			return job, badRequest{config.HTTPMsgInvalidYear}
		}
		job.Year = y
	}
	if v := get(config.ParamLayout); v != "" {
		variant, err := layout.Lookup(strings.ToLower(strings.TrimSpace(v)))
		if err != nil {
			return job, badRequest{fmt.Sprintf(config.HTTPMsgInvalidLayout, strings.Join(layout.Names(), ", "))}
		}
		job.Options.Layout = variant.Kind()
	}
	if v := get(config.ParamTheme); v != "" {
		job.Options.Theme = v
	}
	if v := get(config.ParamPageSize); v != "" {
		job.Options.PageSize = v
	}
	if v := get(config.ParamFormat); v != "" {
		f := strings.ToLower(strings.TrimSpace(v))
		if f != config.FormatPDF && f != config.FormatHTML {
			return job, badRequest{config.HTTPMsgInvalidFormat}
		}
		job.Format = f
	}

	pos, err := document.ParsePosition(get(config.ParamLogoPosition))
	if err != nil {
		return job, badRequest{err.Error()}
	}
	align, err := document.ParseAlignment(get(config.ParamLogoAlign))
	if err != nil {
		return job, badRequest{err.Error()}
	}
	job.Options.LogoPosition = pos
	job.Options.LogoAlign = align
	return job, nil
}

// parsePost reads a POST body: multipart or url-encoded forms carrying
// optional image and logo files, or a JSON object.
func (s *CalendarServer) parsePost(r *http.Request) (*renderRequest, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get(config.HeaderContentType))

	switch mediaType {
	case config.MimeJSON:
		return s.parseJSONPost(r)
	case config.MimeMultipart:
		if err := r.ParseMultipartForm(config.MaxUploadSize); err != nil {
			return nil, badRequest{config.HTTPMsgInvalidForm}
		}
	default:
		if err := r.ParseForm(); err != nil {
			return nil, badRequest{config.HTTPMsgInvalidForm}
		}
	}

	job, err := s.parseJob(r.PostFormValue)
	if err != nil {
		return nil, err
	}
	req := &renderRequest{job: job}
	if v := r.PostFormValue(config.ParamEvents); v != "" {
		req.events = []byte(v)
	}

	if req.job.Options.Image, err = formAsset(r, config.ParamImage, document.ImageAsset); err != nil {
		return nil, err
	}
	if req.job.Options.Logo, err = formAsset(r, config.ParamLogo, document.LogoAsset); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *CalendarServer) parseJSONPost(r *http.Request) (*renderRequest, error) {
	var body map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, badRequest{config.HTTPMsgInvalidBody}
	}

	job, err := s.parseJob(func(name string) string { return jsonScalar(body[name]) })
	if err != nil {
		return nil, err
	}
	req := &renderRequest{job: job}

	// Events may be sent as an object or as a JSON encoded string.
	if raw := bytes.TrimSpace(body[config.ParamEvents]); len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
		var text string
		if json.Unmarshal(raw, &text) == nil {
			raw = []byte(text)
		}
		req.events = raw
	}
	return req, nil
}

// jsonScalar renders a JSON string or number as text.
func jsonScalar(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var text string
	if json.Unmarshal(raw, &text) == nil {
		return text
	}
	return strings.TrimSpace(string(raw))
}

// formAsset reads an uploaded file. A missing part yields nil.
func formAsset(r *http.Request, name string, kind document.AssetKind) (*document.Asset, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	file, header, err := r.FormFile(name)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, badRequest{config.HTTPMsgInvalidForm}
	}
	defer func() { _ = file.Close() }()

	if header.Size > config.MaxUploadSize {
		return nil, badRequest{config.HTTPMsgFileTooLarge}
	}
	data, err := io.ReadAll(io.LimitReader(file, config.MaxUploadSize+1))
	if err != nil {
		return nil, badRequest{config.HTTPMsgInvalidForm}
	}
	if int64(len(data)) > config.MaxUploadSize {
		return nil, badRequest{config.HTTPMsgFileTooLarge}
	}
	return document.NewAsset(header.Filename, data, kind), nil
}

// requestStore returns a dedicated store for inline events, or the shared one.
func (s *CalendarServer) requestStore(raw []byte) (*events.Store, error) {
	if raw == nil {
		return s.store(), nil
	}
	store := events.NewStore()
	if err := store.Load(bytes.NewReader(raw), config.SourceNameRequest); err != nil {
		return nil, badRequest{config.HTTPMsgInvalidEvents}
	}
	return store, nil
}
