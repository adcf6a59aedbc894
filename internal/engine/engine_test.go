package engine_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/document"
	"github.com/tartampluch/go-calendar/internal/engine"
	"github.com/tartampluch/go-calendar/internal/events"
	"github.com/tartampluch/go-calendar/internal/layout"
	"github.com/tartampluch/go-calendar/internal/page"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// MockFetcher simulates the network layer for unit tests using `testify/mock`.
type MockFetcher struct {
	mock.Mock
}

// Fetch implements the engine.SourceFetcher interface.
func (m *MockFetcher) Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error) {
	args := m.Called(ctx, url, user, pass)
	if r := args.Get(0); r != nil {
		return r.(io.ReadCloser), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockRasterizer stands in for headless Chrome.
type MockRasterizer struct {
	mock.Mock
}

// Rasterize implements the pdf.Rasterizer interface.
func (m *MockRasterizer) Rasterize(ctx context.Context, html []byte, spec page.PrintSpec) ([]byte, error) {
	args := m.Called(ctx, html, spec)
	if b := args.Get(0); b != nil {
		return b.([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

const sampleEvents = `{
  "11-05": {"type": "birthday", "lines": ["Sarah's Birthday", "Party at 7pm"], "originalYear": 2004},
  "11-14": {"type": "anniversary", "lines": ["Wedding Anniversary"], "originalYear": 2015},
  "12-25": {"type": "public", "lines": ["Christmas Day"], "originalYear": null}
}`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// -----------------------------------------------------------------------------
// Generator
// -----------------------------------------------------------------------------

func TestGenerate_HTML(t *testing.T) {
	store := events.NewStore()
	require.NoError(t, store.Load(strings.NewReader(sampleEvents), "sample"))

	gen := &engine.Generator{Clock: MockClock{CurrentTime: time.Date(2025, 11, 5, 9, 0, 0, 0, time.UTC)}}
	job := engine.Job{Month: 10, Year: 2025, Options: document.DefaultOptions(), Format: config.FormatHTML}

	res, err := gen.Generate(context.Background(), store, job)

	require.NoError(t, err)
	assert.Nil(t, res.PDF)
	assert.Empty(t, res.Warnings)
	html := string(res.HTML)
	assert.Contains(t, html, "<title>November 2025 Calendar</title>")
	assert.Contains(t, html, "Sarah&#39;s 21st Birthday")
	assert.Contains(t, html, `<div class="day-card today has-event">`)
}

func TestGenerate_PDF(t *testing.T) {
	raster := new(MockRasterizer)
	raster.On("Rasterize", mock.Anything, mock.Anything, page.PrintSpec{Format: "A5", Landscape: true}).
		Return([]byte("%PDF-1.7"), nil)

	gen := &engine.Generator{Clock: MockClock{CurrentTime: time.Now()}, Rasterizer: raster}
	opts := document.DefaultOptions()
	opts.Layout = layout.Year
	opts.PageSize = string(page.A5Landscape)

	res, err := gen.Generate(context.Background(), events.NewStore(), engine.Job{Month: 0, Year: 2026, Options: opts, Format: config.FormatPDF})

	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.7"), res.PDF)
	assert.NotEmpty(t, res.HTML, "The HTML is kept alongside the PDF")
	raster.AssertExpectations(t)
}

func TestGenerate_Errors(t *testing.T) {
	gen := &engine.Generator{Clock: MockClock{CurrentTime: time.Now()}}
	store := events.NewStore()

	_, err := gen.Generate(context.Background(), store, engine.Job{Month: 0, Year: 2025, Options: document.DefaultOptions(), Format: "docx"})
	assert.ErrorContains(t, err, config.ErrFormatUnsupported)

	_, err = gen.Generate(context.Background(), store, engine.Job{Month: 0, Year: 2025, Options: document.DefaultOptions(), Format: config.FormatPDF})
	assert.EqualError(t, err, config.ErrRasterizerMissing)

	_, err = gen.Generate(context.Background(), store, engine.Job{Month: 12, Year: 2025, Options: document.DefaultOptions(), Format: config.FormatHTML})
	assert.True(t, errors.Is(err, document.ErrInvalidMonth))

	raster := new(MockRasterizer)
	raster.On("Rasterize", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("chrome crashed"))
	gen.Rasterizer = raster
	_, err = gen.Generate(context.Background(), store, engine.Job{Month: 0, Year: 2025, Options: document.DefaultOptions(), Format: config.FormatPDF})
	assert.EqualError(t, err, "chrome crashed")
}

func TestGenerate_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := &engine.Generator{Clock: MockClock{CurrentTime: time.Now()}}
	_, err := gen.Generate(ctx, events.NewStore(), engine.Job{Options: document.DefaultOptions(), Format: config.FormatHTML})

	assert.Equal(t, context.Canceled, err)
}

func TestReadAsset(t *testing.T) {
	assert.Nil(t, engine.ReadAsset("", document.LogoAsset))

	missing := engine.ReadAsset(filepath.Join(t.TempDir(), "nope.png"), document.LogoAsset)
	require.NotNil(t, missing)
	assert.Error(t, missing.Err)

	path := writeTemp(t, "logo.svg", "<svg/>")
	logo := engine.ReadAsset(path, document.LogoAsset)
	require.NoError(t, logo.Err)
	assert.Equal(t, "image/svg+xml", logo.MIME)
	assert.Equal(t, []byte("<svg/>"), logo.Data)
}

func TestOutputName(t *testing.T) {
	assert.Equal(t, "calendar-2025-03.pdf", engine.OutputName(engine.Job{Month: 2, Year: 2025, Format: config.FormatPDF}))
	assert.Equal(t, "calendar-2024-12.html", engine.OutputName(engine.Job{Month: 11, Year: 2024, Format: config.FormatHTML}))
}

// -----------------------------------------------------------------------------
// Loader
// -----------------------------------------------------------------------------

func TestLoad_LocalJSON(t *testing.T) {
	path := writeTemp(t, "events.json", sampleEvents)
	store := events.NewStore()

	err := engine.NewLoader(nil).Load(context.Background(), store, engine.Source{Mode: config.SourceModeLocal, Path: path})

	require.NoError(t, err)
	assert.Equal(t, []string{"11-05", "11-14", "12-25"}, store.Keys())
}

func TestLoad_MalformedKeepsStore(t *testing.T) {
	path := writeTemp(t, "events.json", `{"11-05": [`)
	store := events.NewStoreFrom(map[string]events.Record{"01-01": {Category: events.Public, Lines: []string{"New Year"}}})

	err := engine.NewLoader(nil).Load(context.Background(), store, engine.Source{Mode: config.SourceModeLocal, Path: path})

	var loadErr *events.LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, path, loadErr.Source)
	assert.True(t, store.Has("01-01"))
}

func TestLoad_WebVCard(t *testing.T) {
	vcf := "BEGIN:VCARD\nVERSION:4.0\nFN:Sarah\nBDAY:2004-11-05\nEND:VCARD\n"
	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, "https://dav.example.com/contacts.vcf?token=secret", "me", "pw").
		Return(io.NopCloser(strings.NewReader(vcf)), nil)

	store := events.NewStore()
	src := engine.Source{Mode: config.SourceModeWeb, URL: "https://dav.example.com/contacts.vcf?token=secret", User: "me", Pass: "pw"}

	require.NoError(t, engine.NewLoader(fetcher).Load(context.Background(), store, src))

	ann, ok := store.Render("11-05", 2025)
	require.True(t, ok)
	assert.Equal(t, "Sarah's 21st Birthday", ann.Title())
	assert.Equal(t, "https://dav.example.com/contacts.vcf", src.Name(), "Tokens never reach the logs")
	fetcher.AssertExpectations(t)
}

func TestLoad_SourceErrors(t *testing.T) {
	store := events.NewStore()
	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

	tests := []struct {
		name    string
		loader  *engine.Loader
		src     engine.Source
		wantErr string
	}{
		{"Empty local path", engine.NewLoader(nil), engine.Source{Mode: config.SourceModeLocal}, config.ErrLocalPathEmpty},
		{"Empty URL", engine.NewLoader(fetcher), engine.Source{Mode: config.SourceModeWeb}, config.ErrWebURLEmpty},
		{"Missing fetcher", engine.NewLoader(nil), engine.Source{Mode: config.SourceModeWeb, URL: "http://x"}, config.ErrFetcherMissing},
		{"Unknown mode", engine.NewLoader(nil), engine.Source{Mode: "ftp"}, config.ErrModeUnsupport},
		{"Network failure", engine.NewLoader(fetcher), engine.Source{Mode: config.SourceModeWeb, URL: "http://x/e.json"}, "connection refused"},
		{"Unknown format", engine.NewLoader(nil), engine.Source{Mode: config.SourceModeLocal, Path: writeTemp(t, "e.json", "{}"), Format: "xml"}, config.ErrFormatUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.loader.Load(context.Background(), store, tt.src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := writeTemp(t, "events.json", sampleEvents)
	err := engine.NewLoader(nil).Load(ctx, events.NewStore(), engine.Source{Mode: config.SourceModeLocal, Path: path})

	assert.Equal(t, context.Canceled, err)
}
