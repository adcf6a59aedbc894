package engine_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-calendar/internal/engine"
	"github.com/tartampluch/go-calendar/internal/events"
)

// TestWatcher_Reload edits a watched file twice: a valid edit replaces the
// store, a malformed one leaves it untouched.
func TestWatcher_Reload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o600))

	store := events.NewStore()
	reloads := make(chan error, 4)

	w := engine.NewWatcher(path, store)
	w.Debounce = 100 * time.Millisecond
	w.OnReload = func(err error) { reloads <- err }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	defer func() {
		cancel()
		assert.NoError(t, <-done)
	}()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte(`{"01-01": {"type": "public", "lines": ["New Year"]}}`), 0o600))
	select {
	case err := <-reloads:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after a valid edit")
	}
	assert.True(t, store.Has("01-01"))

	require.NoError(t, os.WriteFile(path, []byte(`{"01-01": `), 0o600))
	select {
	case err := <-reloads:
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after a malformed edit")
	}
	assert.True(t, store.Has("01-01"), "A malformed edit keeps the previous events")
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w := engine.NewWatcher(filepath.Join(t.TempDir(), "nope", "events.json"), events.NewStore())
	assert.Error(t, w.Run(context.Background()))
}
