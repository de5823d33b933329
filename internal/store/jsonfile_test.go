package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/existflow/daysince/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTimers() []model.Timer {
	base := time.Date(2025, 12, 24, 18, 30, 15, 250000000, time.Local)
	return []model.Timer{
		{ID: "1", Name: "Quit smoking", Date: base, TargetDays: 30},
		{ID: "2", Name: "Called mum", Date: base.AddDate(0, 0, -3), TargetDays: 7},
		{ID: "3", Name: "Zürich trip", Date: base.AddDate(0, -2, 0), TargetDays: 60},
	}
}

func assertSameTimers(t *testing.T, want, got []model.Timer) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].Name, got[i].Name)
		assert.Equal(t, want[i].TargetDays, got[i].TargetDays)
		assert.True(t, want[i].Date.Equal(got[i].Date), "date %d: want %v, got %v", i, want[i].Date, got[i].Date)
	}
}

func TestJSONFileMissing(t *testing.T) {
	f := NewJSONFile(filepath.Join(t.TempDir(), "nope", "timers.json"))
	timers, err := f.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, timers)
	assert.NotNil(t, timers)
}

func TestJSONFileRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sub", "timers.json")
	f := NewJSONFile(path)

	want := sampleTimers()
	require.NoError(t, f.Save(ctx, want))

	got, err := f.Load(ctx)
	require.NoError(t, err)
	assertSameTimers(t, want, got)

	// Save(Load()) reproduces the same collection
	require.NoError(t, f.Save(ctx, got))
	again, err := f.Load(ctx)
	require.NoError(t, err)
	assertSameTimers(t, want, again)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file is renamed away")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestJSONFileEmptyArrayAndNull(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	for name, content := range map[string]string{"empty": "[]", "null": "null"} {
		path := filepath.Join(dir, name+".json")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		timers, err := NewJSONFile(path).Load(ctx)
		require.NoError(t, err, name)
		assert.Empty(t, timers, name)
	}

	path := filepath.Join(dir, "saved.json")
	require.NoError(t, NewJSONFile(path).Save(ctx, nil))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestJSONFileCorrupt(t *testing.T) {
	tests := map[string]string{
		"truncated":  `[{"name": "a", "date": "2024-01-01T00:00:00", "targ`,
		"not array":  `{"name": "a"}`,
		"bad date":   `[{"name": "a", "date": "soon", "target_days": 1}]`,
		"bad target": `[{"name": "a", "date": "2024-01-01T00:00:00", "target_days": "x"}]`,
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "timers.json")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
			_, err := NewJSONFile(path).Load(context.Background())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrCorrupt))
		})
	}
}

func TestJSONFileReadsOriginalLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timers.json")
	content := `[{"name": "Quit smoking", "date": "2024-03-01T09:15:42.123456", "target_days": 30}]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	timers, err := NewJSONFile(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, timers, 1)
	assert.Equal(t, "Quit smoking", timers[0].Name)
	assert.Equal(t, 30, timers[0].TargetDays)
	assert.True(t, timers[0].Date.Equal(time.Date(2024, 3, 1, 9, 15, 42, 123456000, time.Local)))
}

func TestOpenBackendKinds(t *testing.T) {
	dir := t.TempDir()

	b, err := OpenBackend("", filepath.Join(dir, "a.json"))
	require.NoError(t, err)
	assert.IsType(t, &JSONFile{}, b)

	b, err = OpenBackend("SQLite", filepath.Join(dir, "a.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQL{}, b)
	require.NoError(t, b.Close())

	_, err = OpenBackend("postgres", "")
	assert.Error(t, err)

	_, err = OpenBackend("redis", "x")
	assert.Error(t, err)
}
