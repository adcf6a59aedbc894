package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/events"
)

// Source describes where annotations are read from.
type Source struct {
	Mode string // config.SourceModeLocal or config.SourceModeWeb
	Path string // local file
	URL  string // remote document or CardDAV address book
	User string // HTTP basic auth
	Pass string // HTTP basic auth

	// Format is config.FormatJSON or config.FormatVCard. When empty it is
	// inferred from the extension of Path or URL.
	Format string
}

// Name identifies the source in logs and errors without leaking secrets.
func (s Source) Name() string {
	if s.Mode == config.SourceModeWeb {
		if u, err := url.Parse(s.URL); err == nil {
			return SafeURL(u)
		}
	}
	return s.Path
}

// ResolvedFormat returns the explicit format or the one implied by the extension.
func (s Source) ResolvedFormat() string {
	if s.Format != "" {
		return strings.ToLower(s.Format)
	}
	name := s.Path
	if s.Mode == config.SourceModeWeb {
		name = s.URL
		if u, err := url.Parse(s.URL); err == nil {
			name = u.Path
		}
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case config.ExtVCF, config.ExtVCard:
		return config.FormatVCard
	}
	return config.FormatJSON
}

// Loader fills event stores from local or remote sources.
type Loader struct {
	Fetcher SourceFetcher
}

// NewLoader returns a loader using fetcher for web sources.
func NewLoader(fetcher SourceFetcher) *Loader {
	return &Loader{Fetcher: fetcher}
}

// Load replaces the content of store with the events of src. Parsing and
// validation failures are reported as *events.LoadError and leave the store
// untouched.
func (l *Loader) Load(ctx context.Context, store *events.Store, src Source) error {
	log := slog.With(
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyMode, src.Mode,
		config.LogKeySource, src.Name(),
	)

	rc, err := l.open(ctx, src)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s: %w", config.ErrSourceOpen, err)
	}
	defer func() { _ = rc.Close() }()

	if err := ctx.Err(); err != nil {
		return err
	}

	switch format := src.ResolvedFormat(); format {
	case config.FormatJSON:
		return store.Load(rc, src.Name())
	case config.FormatVCard:
		imported, err := ImportVCards(ctx, rc)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return &events.LoadError{Source: src.Name(), Err: err}
		}
		if err := store.Replace(imported.Records); err != nil {
			return &events.LoadError{Source: src.Name(), Err: err}
		}
		log.Info(config.MsgEventsLoaded, config.LogKeyCount, len(imported.Records))
		return nil
	default:
		return fmt.Errorf("%s: %q", config.ErrFormatUnsupported, format)
	}
}

// open returns the raw stream of src.
func (l *Loader) open(ctx context.Context, src Source) (io.ReadCloser, error) {
	switch src.Mode {
	case config.SourceModeLocal:
		if src.Path == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return os.Open(src.Path)
	case config.SourceModeWeb:
		if src.URL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if l.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return l.Fetcher.Fetch(ctx, src.URL, src.User, src.Pass)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, src.Mode)
	}
}
