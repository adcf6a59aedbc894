package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/tartampluch/go-calendar/internal/calendar"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/document"
	"github.com/tartampluch/go-calendar/internal/events"
	"github.com/tartampluch/go-calendar/internal/pdf"
	"github.com/tartampluch/go-calendar/internal/theme"
)

// Job is a single render request.
type Job struct {
	Month   int // 0-11
	Year    int
	Options document.Options
	Format  string // config.FormatHTML or config.FormatPDF
}

// Result carries the rendered artefacts of a job.
type Result struct {
	Document *document.Document
	HTML     []byte
	PDF      []byte // nil for HTML jobs
	Warnings []document.Warning
}

// Generator is the render pipeline: compose, serialise to HTML and
// optionally print to PDF.
type Generator struct {
	Clock      calendar.Clock  // Interface for time mocking.
	Themes     *theme.Registry // Nil means the built-in themes.
	Rasterizer pdf.Rasterizer  // Required for PDF jobs only.
}

// Generate renders job against store. Callers that serve concurrent
// requests with different events must pass a dedicated store per request.
func (g *Generator) Generate(ctx context.Context, store *events.Store, job Job) (*Result, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyLayout, job.Options.Layout.String(),
		config.LogKeyFormat, job.Format,
	)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if job.Format != config.FormatHTML && job.Format != config.FormatPDF {
		return nil, fmt.Errorf("%s: %q", config.ErrFormatUnsupported, job.Format)
	}

	doc, err := document.NewComposer(g.Themes, store, g.Clock).Compose(job.Month, job.Year, job.Options)
	if err != nil {
		return nil, err
	}

	html, err := doc.HTML(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrRenderHTML, err)
	}
	res := &Result{Document: doc, HTML: html, Warnings: doc.Warnings}

	if job.Format == config.FormatPDF {
		if g.Rasterizer == nil {
			return nil, errors.New(config.ErrRasterizerMissing)
		}
		res.PDF, err = g.Rasterizer.Rasterize(ctx, html, doc.PrintSpec())
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, err
		}
	}

	log.Info(config.MsgGenSuccess,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyMonth, job.Month+1),
			slog.Int(config.LogKeyYear, job.Year),
			slog.Int(config.LogKeyHTMLBytes, len(res.HTML)),
			slog.Int(config.LogKeyPDFBytes, len(res.PDF)),
			slog.Int(config.LogKeyWarnings, len(res.Warnings)),
		),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return res, nil
}

// ReadAsset loads an image or logo from disk. An empty path yields nil; a
// read failure is kept on the asset so the composer can report it.
func ReadAsset(path string, kind document.AssetKind) *document.Asset {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return document.FailedAsset(path, err)
	}
	return document.NewAsset(path, data, kind)
}

// OutputName returns the default file name of a render, calendar-YYYY-MM.ext.
func OutputName(job Job) string {
	return fmt.Sprintf(config.FormatOutputName, job.Year, job.Month+1, job.Format)
}
