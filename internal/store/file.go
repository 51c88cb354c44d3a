package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mivdata/traffic-data-aggregation/internal/traffic"
)

var (
	// ErrNotFound is returned when no snapshot is available.
	ErrNotFound = errors.New("no traffic snapshot available")
)

// FileStore persists snapshots on the filesystem: a fixed "latest" file that
// is overwritten on every capture, plus an append-only archive directory
// holding one timestamped file per capture.
type FileStore struct {
	latestPath string
	archiveDir string
}

// NewFileStore creates a FileStore. The archive directory is created lazily
// on the first save.
func NewFileStore(latestPath, archiveDir string) *FileStore {
	return &FileStore{
		latestPath: latestPath,
		archiveDir: archiveDir,
	}
}

// SaveSnapshot writes the snapshot to the latest path and to a new archive
// file named after the snapshot's capture time. Archive files from the same
// second collide; the last write wins.
func (s *FileStore) SaveSnapshot(snapshot traffic.Snapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if err := os.MkdirAll(s.archiveDir, 0o755); err != nil {
		return fmt.Errorf("creating archive directory: %w", err)
	}

	if err := os.WriteFile(s.latestPath, payload, 0o644); err != nil {
		return fmt.Errorf("writing latest snapshot: %w", err)
	}

	archivePath := filepath.Join(s.archiveDir, snapshot.Time+".json")
	if err := os.WriteFile(archivePath, payload, 0o644); err != nil {
		return fmt.Errorf("writing archive snapshot: %w", err)
	}
	return nil
}

// Latest reads back the most recent snapshot.
func (s *FileStore) Latest() (traffic.Snapshot, error) {
	data, err := os.ReadFile(s.latestPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return traffic.Snapshot{}, ErrNotFound
		}
		return traffic.Snapshot{}, fmt.Errorf("reading latest snapshot: %w", err)
	}

	var snapshot traffic.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return traffic.Snapshot{}, fmt.Errorf("decoding latest snapshot: %w", err)
	}
	return snapshot, nil
}

// Range returns all archived snapshots captured between from and to
// (inclusive), ordered by capture time ascending. Files whose names do not
// parse as timestamps are skipped.
func (s *FileStore) Range(from, to time.Time) ([]traffic.Snapshot, error) {
	entries, err := os.ReadDir(s.archiveDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading archive directory: %w", err)
	}

	var result []traffic.Snapshot
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		stamp, err := time.Parse(time.RFC3339, strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			continue
		}
		if stamp.Before(from) || stamp.After(to) {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.archiveDir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading archive snapshot %s: %w", entry.Name(), err)
		}
		var snapshot traffic.Snapshot
		if err := json.Unmarshal(data, &snapshot); err != nil {
			return nil, fmt.Errorf("decoding archive snapshot %s: %w", entry.Name(), err)
		}
		result = append(result, snapshot)
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Time < result[j].Time
	})
	return result, nil
}
