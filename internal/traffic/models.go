package traffic

import (
	"errors"
	"fmt"
)

// Field names as they appear in the MIV feeds. Measurement fields come from
// the live data feed; station fields from the configuration feed.
const (
	fieldDefect    = "defect"
	fieldAvailable = "beschikbaar"
	fieldValid     = "geldig"
	fieldSpeed     = "voertuigsnelheid_rekenkundig"

	fieldLongitude = "lengtegraad_EPSG_4326"
	fieldLatitude  = "breedtegraad_EPSG_4326"
	fieldName      = "volledige_naam"
	fieldLane      = "Rijstrook"
)

// RawMeasurement holds the untouched XML text of one sensor's scalar fields,
// with the selected measurement-class group flattened in.
type RawMeasurement map[string]string

// StationInfo holds the untouched XML text of one station's metadata fields.
type StationInfo map[string]string

// Measurement is a cleaned per-sensor reading.
type Measurement struct {
	Speed   int  `json:"speed"`
	Working bool `json:"working"`
}

// MeasurePoint is a cleaned reading joined with its station metadata.
type MeasurePoint struct {
	Speed     int     `json:"speed"`
	Working   bool    `json:"working"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Location  string  `json:"location"`
	Lane      string  `json:"lane"`
}

// Snapshot is one complete captured dataset. Time is RFC3339 in the local
// zone, so it carries an explicit UTC offset; it doubles as the archive
// filename stem.
type Snapshot struct {
	Time          string               `json:"time"`
	MeasurePoints map[int]MeasurePoint `json:"measure_points"`
}

// ErrFieldMissing marks a required feed field that is absent for a sensor.
var ErrFieldMissing = errors.New("field missing")

// FieldError reports a required feed field that is missing or malformed for
// a specific sensor.
type FieldError struct {
	SensorID int
	Field    string
	Value    string
	Err      error
}

func (e *FieldError) Error() string {
	if errors.Is(e.Err, ErrFieldMissing) {
		return fmt.Sprintf("sensor %d: field %q missing", e.SensorID, e.Field)
	}
	return fmt.Sprintf("sensor %d: field %q has malformed value %q: %v", e.SensorID, e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }
