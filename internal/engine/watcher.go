package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/events"
)

// Watcher reloads an events JSON file into a store whenever it changes.
// A malformed edit keeps the previous events in place.
type Watcher struct {
	Path     string
	Store    *events.Store
	Debounce time.Duration

	// OnReload, if set, is called after every reload attempt.
	OnReload func(err error)
}

// NewWatcher watches path on behalf of store.
func NewWatcher(path string, store *events.Store) *Watcher {
	return &Watcher{Path: path, Store: store, Debounce: config.WatchDebounce}
}

// Run blocks until ctx is cancelled. The parent directory is watched so
// that editors replacing the file through a rename are noticed.
func (w *Watcher) Run(ctx context.Context) error {
	target, err := filepath.Abs(w.Path)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrWatch, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrWatch, err)
	}
	defer func() { _ = fsw.Close() }()

	if err := fsw.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("%s: %w", config.ErrWatch, err)
	}

	log := slog.With(config.LogKeyComponent, config.CompWatcher, config.LogKeyFile, target)
	log.Info(config.MsgWatchStart)

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			log.Info(config.MsgWatchStop)
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				fire = time.After(w.Debounce)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Warn(config.MsgWatchError, config.LogKeyError, err)

		case <-fire:
			fire = nil
			w.reload(log)
		}
	}
}

func (w *Watcher) reload(log *slog.Logger) {
	err := w.loadFile()
	if err != nil {
		log.Warn(config.MsgReloadFailed, config.LogKeyError, err)
	}
	if w.OnReload != nil {
		w.OnReload(err)
	}
}

func (w *Watcher) loadFile() error {
	f, err := os.Open(w.Path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return w.Store.Load(f, w.Path)
}
