package traffic

import (
	"context"
	"time"
)

// MeasurementSource abstracts the live measurement feed.
type MeasurementSource interface {
	Fetch(ctx context.Context) (map[int]RawMeasurement, error)
}

// StationSource abstracts the station-configuration feed.
type StationSource interface {
	Fetch(ctx context.Context) (map[int]StationInfo, error)
}

// Store is the contract the snapshot store must satisfy.
type Store interface {
	SaveSnapshot(snapshot Snapshot) error
	Latest() (Snapshot, error)
	Range(from, to time.Time) ([]Snapshot, error)
}
