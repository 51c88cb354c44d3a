package traffic

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Service orchestrates one capture: fetch both feeds, clean, join, and
// persist the snapshot.
type Service struct {
	measurements MeasurementSource
	stations     StationSource
	store        Store
}

// NewService creates a new Service.
func NewService(measurements MeasurementSource, stations StationSource, store Store) *Service {
	return &Service{
		measurements: measurements,
		stations:     stations,
		store:        store,
	}
}

// Capture runs the pipeline once. The feeds are fetched sequentially; a
// failure at any stage leaves the store untouched. The capture timestamp is
// computed once and shared by the snapshot payload and the archive filename.
func (s *Service) Capture(ctx context.Context) (Snapshot, error) {
	runLog := log.WithField("run_id", uuid.NewString())

	runLog.Info("fetching measurement feed")
	raw, err := s.measurements.Fetch(ctx)
	if err != nil {
		runLog.Errorf("measurement feed fetch failed: %v", err)
		return Snapshot{}, err
	}
	runLog.Infof("measurement feed fetched: %d sensors", len(raw))

	cleaned, err := Clean(raw)
	if err != nil {
		return Snapshot{}, fmt.Errorf("cleaning measurements: %w", err)
	}

	runLog.Info("fetching station feed")
	stations, err := s.stations.Fetch(ctx)
	if err != nil {
		runLog.Errorf("station feed fetch failed: %v", err)
		return Snapshot{}, err
	}
	runLog.Infof("station feed fetched: %d stations", len(stations))

	joined, err := Join(cleaned, stations)
	if err != nil {
		return Snapshot{}, fmt.Errorf("joining station metadata: %w", err)
	}

	snapshot := Snapshot{
		Time:          time.Now().Format(time.RFC3339),
		MeasurePoints: joined,
	}
	if err := s.store.SaveSnapshot(snapshot); err != nil {
		return Snapshot{}, fmt.Errorf("saving snapshot: %w", err)
	}

	runLog.Infof("snapshot captured: %d measure points", len(joined))
	return snapshot, nil
}

// Latest delegates to the underlying store.
func (s *Service) Latest() (Snapshot, error) {
	return s.store.Latest()
}

// History delegates to the underlying store.
func (s *Service) History(from, to time.Time) ([]Snapshot, error) {
	return s.store.Range(from, to)
}
