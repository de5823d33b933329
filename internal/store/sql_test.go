package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/existflow/daysince/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "db", "timers.db")

	db, err := OpenSQLite(path)
	require.NoError(t, err)

	timers, err := db.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, timers)

	want := sampleTimers()
	require.NoError(t, db.Save(ctx, want))
	got, err := db.Load(ctx)
	require.NoError(t, err)
	assertSameTimers(t, want, got)

	// full overwrite, new order
	reordered := []model.Timer{want[2], want[0]}
	require.NoError(t, db.Save(ctx, reordered))
	got, err = db.Load(ctx)
	require.NoError(t, err)
	assertSameTimers(t, reordered, got)
	require.NoError(t, db.Close())

	// migrations are idempotent and data survives reopening
	db, err = OpenSQLite(path)
	require.NoError(t, err)
	defer db.Close()
	got, err = db.Load(ctx)
	require.NoError(t, err)
	assertSameTimers(t, reordered, got)
}

func TestSQLiteBackedStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "timers.db")

	db, err := OpenSQLite(path)
	require.NoError(t, err)
	s, err := Open(ctx, db)
	require.NoError(t, err)

	_, err = s.Add(ctx, "B", 5)
	require.NoError(t, err)
	a, err := s.Add(ctx, "A", 5)
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, a.ID))
	require.NoError(t, s.Close())

	db, err = OpenSQLite(path)
	require.NoError(t, err)
	s, err = Open(ctx, db)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, []string{"B"}, names(s.Timers()))
}

func TestRebind(t *testing.T) {
	pg := &SQL{dialect: "postgres"}
	assert.Equal(t, "VALUES ($1, $2, $3)", pg.rebind("VALUES (?, ?, ?)"))

	lite := &SQL{dialect: "sqlite"}
	assert.Equal(t, "VALUES (?, ?)", lite.rebind("VALUES (?, ?)"))
}
