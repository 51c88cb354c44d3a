package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mivdata/traffic-data-aggregation/internal/traffic"
)

func testStore(t *testing.T) *FileStore {
	t.Helper()
	dir := t.TempDir()
	return NewFileStore(filepath.Join(dir, "most_recent_data.json"), filepath.Join(dir, "old_data"))
}

func snapshotAt(stamp string) traffic.Snapshot {
	return traffic.Snapshot{
		Time: stamp,
		MeasurePoints: map[int]traffic.MeasurePoint{
			5: {Speed: 42, Working: true, Longitude: 3.21, Latitude: 51.05, Location: "Main St", Lane: "1"},
		},
	}
}

func TestSaveSnapshotWritesLatestAndArchive(t *testing.T) {
	s := testStore(t)
	snap := snapshotAt("2026-08-25T10:00:00+02:00")

	require.NoError(t, s.SaveSnapshot(snap))

	latest, err := os.ReadFile(s.latestPath)
	require.NoError(t, err)
	archived, err := os.ReadFile(filepath.Join(s.archiveDir, snap.Time+".json"))
	require.NoError(t, err)
	assert.Equal(t, latest, archived)

	var decoded traffic.Snapshot
	require.NoError(t, json.Unmarshal(latest, &decoded))
	assert.Equal(t, snap, decoded)
}

func TestSaveSnapshotOverwritesLatest(t *testing.T) {
	s := testStore(t)

	require.NoError(t, s.SaveSnapshot(snapshotAt("2026-08-25T10:00:00+02:00")))
	require.NoError(t, s.SaveSnapshot(snapshotAt("2026-08-25T10:01:00+02:00")))

	latest, err := s.Latest()
	require.NoError(t, err)
	assert.Equal(t, "2026-08-25T10:01:00+02:00", latest.Time)

	// Both captures remain in the archive.
	entries, err := os.ReadDir(s.archiveDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestLatestRoundTrip(t *testing.T) {
	s := testStore(t)
	snap := snapshotAt("2026-08-25T10:00:00+02:00")

	require.NoError(t, s.SaveSnapshot(snap))

	got, err := s.Latest()
	require.NoError(t, err)
	assert.Equal(t, snap, got)
}

func TestLatestNotFound(t *testing.T) {
	s := testStore(t)

	_, err := s.Latest()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRangeFiltersByCaptureTime(t *testing.T) {
	s := testStore(t)
	stamps := []string{
		"2026-08-25T10:00:00+02:00",
		"2026-08-25T11:00:00+02:00",
		"2026-08-25T12:00:00+02:00",
	}
	for _, stamp := range stamps {
		require.NoError(t, s.SaveSnapshot(snapshotAt(stamp)))
	}

	from, _ := time.Parse(time.RFC3339, "2026-08-25T10:30:00+02:00")
	to, _ := time.Parse(time.RFC3339, "2026-08-25T12:30:00+02:00")

	got, err := s.Range(from, to)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, stamps[1], got[0].Time)
	assert.Equal(t, stamps[2], got[1].Time)
}

func TestRangeNotFound(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.SaveSnapshot(snapshotAt("2026-08-25T10:00:00+02:00")))

	from, _ := time.Parse(time.RFC3339, "2026-08-26T00:00:00+02:00")
	to, _ := time.Parse(time.RFC3339, "2026-08-27T00:00:00+02:00")

	_, err := s.Range(from, to)
	assert.ErrorIs(t, err, ErrNotFound)
}
