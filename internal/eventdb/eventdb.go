// Package eventdb persists annotations in a SQLite database so that edits
// made through the API survive restarts.
package eventdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/events"

	// Registers the pure Go "sqlite" driver.
	_ "modernc.org/sqlite"
)

// DB wraps the SQLite handle holding the annotations table.
type DB struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and runs the schema migration.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), config.PermUserRWX); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrDBOpen, err)
	}
	db, err := sql.Open(config.SQLiteDriver, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrDBOpen, err)
	}
	// WAL mode with a busy timeout: writers wait instead of returning SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", config.ErrDBOpen, err)
	}
	db.SetMaxOpenConns(config.DBMaxConns)
	db.SetMaxIdleConns(config.DBMaxConns)

	d := &DB{db: db}
	if err := d.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", config.ErrDBSchema, err)
	}
	slog.Debug(config.MsgDBOpened, config.LogKeyComponent, config.CompEventDB, config.LogKeyFile, path)
	return d, nil
}

// Close releases the database.
func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) ensureSchema() error {
	_, err := d.db.Exec(`
CREATE TABLE IF NOT EXISTS annotations (
    key TEXT PRIMARY KEY,
    category TEXT NOT NULL,
    lines TEXT NOT NULL,
    origin_year INTEGER,
    updated_at TEXT NOT NULL
);
`)
	return err
}

// LoadAll returns every stored record keyed by "MM-DD".
func (d *DB) LoadAll(ctx context.Context) (map[string]events.Record, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT key, category, lines, origin_year FROM annotations ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrDBQuery, err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[string]events.Record)
	for rows.Next() {
		var key, category, lines string
		var origin sql.NullInt64
		if err := rows.Scan(&key, &category, &lines, &origin); err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrDBQuery, err)
		}
		rec := events.Record{Category: events.Category(category)}
		if err := json.Unmarshal([]byte(lines), &rec.Lines); err != nil {
			return nil, fmt.Errorf("%s: %s: %w", config.ErrDBCorrupt, key, err)
		}
		if origin.Valid {
			rec.OriginYear = events.Origin(int(origin.Int64))
		}
		out[key] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrDBQuery, err)
	}
	return out, nil
}

// LoadInto replaces the content of store with the database rows. Rows that
// fail validation leave the store untouched.
func (d *DB) LoadInto(ctx context.Context, store *events.Store) error {
	records, err := d.LoadAll(ctx)
	if err != nil {
		return err
	}
	if err := store.Replace(records); err != nil {
		return &events.LoadError{Source: config.SourceNameDB, Err: err}
	}
	slog.Info(config.MsgEventsLoaded,
		config.LogKeyComponent, config.CompEventDB,
		config.LogKeySource, config.SourceNameDB,
		config.LogKeyCount, len(records))
	return nil
}

// SaveAll replaces the table with records in a single transaction.
func (d *DB) SaveAll(ctx context.Context, records map[string]events.Record) error {
	for key, rec := range records {
		if err := events.Validate(key, rec); err != nil {
			return err
		}
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrDBWrite, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM annotations`); err != nil {
		return fmt.Errorf("%s: %w", config.ErrDBWrite, err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	for key, rec := range records {
		if err := exec(ctx, tx.ExecContext, key, rec, now); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", config.ErrDBWrite, err)
	}
	slog.Info(config.MsgDBSaved, config.LogKeyComponent, config.CompEventDB, config.LogKeyCount, len(records))
	return nil
}

// Put inserts or updates a single record.
func (d *DB) Put(ctx context.Context, key string, rec events.Record) error {
	if err := events.Validate(key, rec); err != nil {
		return err
	}
	return exec(ctx, d.db.ExecContext, key, rec, time.Now().UTC().Format(time.RFC3339))
}

// Delete removes key. Deleting a missing key is not an error.
func (d *DB) Delete(ctx context.Context, key string) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM annotations WHERE key = ?`, key); err != nil {
		return fmt.Errorf("%s: %w", config.ErrDBWrite, err)
	}
	return nil
}

const upsertSQL = `INSERT INTO annotations (key, category, lines, origin_year, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(key) DO UPDATE SET
    category = excluded.category,
    lines = excluded.lines,
    origin_year = excluded.origin_year,
    updated_at = excluded.updated_at`

type execFunc func(ctx context.Context, query string, args ...any) (sql.Result, error)

func exec(ctx context.Context, run execFunc, key string, rec events.Record, now string) error {
	lines, err := json.Marshal(rec.Lines)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrDBWrite, err)
	}
	var origin sql.NullInt64
	if rec.OriginYear != nil {
		origin = sql.NullInt64{Int64: int64(*rec.OriginYear), Valid: true}
	}
	if _, err := run(ctx, upsertSQL, key, string(rec.Category), string(lines), origin, now); err != nil {
		return fmt.Errorf("%s: %w", config.ErrDBWrite, err)
	}
	return nil
}
