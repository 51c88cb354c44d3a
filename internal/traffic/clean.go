package traffic

import "strconv"

// Clean normalizes raw measurements into typed per-sensor readings. The
// output key set always equals the input key set; a missing or non-numeric
// speed field aborts with a FieldError.
func Clean(raw map[int]RawMeasurement) (map[int]Measurement, error) {
	cleaned := make(map[int]Measurement, len(raw))
	for id, fields := range raw {
		speedText, ok := fields[fieldSpeed]
		if !ok {
			return nil, &FieldError{SensorID: id, Field: fieldSpeed, Err: ErrFieldMissing}
		}
		speed, err := strconv.Atoi(speedText)
		if err != nil {
			return nil, &FieldError{SensorID: id, Field: fieldSpeed, Value: speedText, Err: err}
		}
		cleaned[id] = Measurement{
			Speed:   speed,
			Working: working(fields),
		}
	}
	return cleaned, nil
}

// working reports whether a sensor is operational: not flagged defect, and
// both the availability and validity codes parse as integers <= 1. Codes
// that fail to parse make the sensor non-working rather than failing the
// run.
func working(fields RawMeasurement) bool {
	if fields[fieldDefect] != "" {
		return false
	}
	available, err := strconv.Atoi(fields[fieldAvailable])
	if err != nil || available > 1 {
		return false
	}
	valid, err := strconv.Atoi(fields[fieldValid])
	if err != nil || valid > 1 {
		return false
	}
	return true
}
