package eventdb_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-calendar/internal/eventdb"
	"github.com/tartampluch/go-calendar/internal/events"
)

func openTestDB(t *testing.T) *eventdb.DB {
	t.Helper()
	db, err := eventdb.Open(filepath.Join(t.TempDir(), "data", "events.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func sample() map[string]events.Record {
	return map[string]events.Record{
		"11-05": {Category: events.Birthday, Lines: []string{"Sarah's Birthday", "Party at 7pm"}, OriginYear: events.Origin(2004)},
		"12-25": {Category: events.Public, Lines: []string{"Christmas Day"}},
	}
}

func TestSaveAllAndLoadAll(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.SaveAll(ctx, sample()))

	got, err := db.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, sample(), got)

	// Scenario: a second save replaces the table instead of merging.
	require.NoError(t, db.SaveAll(ctx, map[string]events.Record{
		"01-01": {Category: events.Public, Lines: []string{"New Year"}},
	}))
	got, err = db.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Contains(t, got, "01-01")
}

func TestSaveAll_RejectsInvalidRecords(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	require.NoError(t, db.SaveAll(ctx, sample()))

	err := db.SaveAll(ctx, map[string]events.Record{"13-40": {Category: events.Custom, Lines: []string{"x"}}})
	require.Error(t, err)

	got, err := db.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2, "The table is untouched")
}

func TestPutAndDelete(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Put(ctx, "03-01", events.Record{Category: events.Custom, Lines: []string{"Dentist"}}))
	require.NoError(t, db.Put(ctx, "03-01", events.Record{Category: events.Custom, Lines: []string{"Dentist", "10am"}}))
	assert.Error(t, db.Put(ctx, "3-1", events.Record{Category: events.Custom, Lines: []string{"x"}}))

	got, err := db.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"Dentist", "10am"}, got["03-01"].Lines)
	assert.Nil(t, got["03-01"].OriginYear)

	require.NoError(t, db.Delete(ctx, "03-01"))
	require.NoError(t, db.Delete(ctx, "03-01"))
	got, err = db.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadInto(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	require.NoError(t, db.SaveAll(ctx, sample()))

	store := events.NewStoreFrom(map[string]events.Record{"07-04": {Category: events.Custom, Lines: []string{"BBQ"}}})
	require.NoError(t, db.LoadInto(ctx, store))

	assert.Equal(t, []string{"11-05", "12-25"}, store.Keys())
	ann, ok := store.Render("11-05", 2025)
	require.True(t, ok)
	assert.Equal(t, "Sarah's 21st Birthday", ann.Title())
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.db")
	ctx := context.Background()

	db, err := eventdb.Open(path)
	require.NoError(t, err)
	require.NoError(t, db.SaveAll(ctx, sample()))
	require.NoError(t, db.Close())

	db, err = eventdb.Open(path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	got, err := db.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestLoadAll_Cancelled(t *testing.T) {
	db := openTestDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := db.LoadAll(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
