package events

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/tartampluch/go-calendar/internal/calendar"
	"github.com/tartampluch/go-calendar/internal/config"
)

// LoadError reports an events source that could not be used. The store
// that was being loaded keeps its previous content.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s %q: %v", config.ErrEventsLoad, e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Validate checks a single entry of an events source. An empty category is
// accepted and treated as custom by Decode.
func Validate(key string, rec Record) error {
	if _, _, err := calendar.ParseKey(key); err != nil {
		return err
	}
	if rec.Category != "" && !rec.Category.Valid() {
		return fmt.Errorf("%s %q: %q", config.ErrEventCategory, key, rec.Category)
	}
	if rec.Lines == nil {
		return fmt.Errorf("%s %q", config.ErrEventLines, key)
	}
	return nil
}

// Decode parses and validates an events JSON document.
func Decode(r io.Reader) (map[string]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var records map[string]Record
	if err := json.Unmarshal(bytes.TrimSpace(data), &records); err != nil {
		return nil, err
	}
	if records == nil {
		return nil, errors.New(config.ErrEventsNotObject)
	}

	for key, rec := range records {
		if err := Validate(key, rec); err != nil {
			return nil, err
		}
		if rec.Category == "" {
			rec.Category = Custom
			records[key] = rec
		}
	}
	return records, nil
}

// Load replaces the whole content of the store with the events read from r.
// Malformed input yields a *LoadError and leaves the store untouched.
func (s *Store) Load(r io.Reader, source string) error {
	records, err := Decode(r)
	if err != nil {
		return &LoadError{Source: source, Err: err}
	}

	s.mu.Lock()
	s.publish(records)
	s.mu.Unlock()

	slog.Info(config.MsgEventsLoaded,
		config.LogKeyComponent, config.CompEvents,
		config.LogKeySource, source,
		config.LogKeyCount, len(records))
	return nil
}

// Save writes the records as an indented JSON document accepted by Load.
func (s *Store) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", config.JSONIndent)
	if err := enc.Encode(s.snapshot()); err != nil {
		return fmt.Errorf("%s: %w", config.ErrEventsEncode, err)
	}
	return nil
}
