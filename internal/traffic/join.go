package traffic

import (
	"strconv"
	"strings"
)

// Join merges cleaned measurements with station metadata by sensor id and
// returns a new map; the inputs are left untouched. Sensors without a
// station entry, or whose entry lacks any required field, are dropped
// silently (data-quality filtering). A coordinate that is present but does
// not parse aborts with a FieldError.
func Join(cleaned map[int]Measurement, stations map[int]StationInfo) (map[int]MeasurePoint, error) {
	joined := make(map[int]MeasurePoint, len(cleaned))
	for id, m := range cleaned {
		info, ok := stations[id]
		if !ok {
			continue
		}
		lonText, lonOK := info[fieldLongitude]
		latText, latOK := info[fieldLatitude]
		name, nameOK := info[fieldName]
		lane, laneOK := info[fieldLane]
		if !lonOK || !latOK || !nameOK || !laneOK {
			continue
		}
		lon, err := parseCoordinate(lonText)
		if err != nil {
			return nil, &FieldError{SensorID: id, Field: fieldLongitude, Value: lonText, Err: err}
		}
		lat, err := parseCoordinate(latText)
		if err != nil {
			return nil, &FieldError{SensorID: id, Field: fieldLatitude, Value: latText, Err: err}
		}
		joined[id] = MeasurePoint{
			Speed:     m.Speed,
			Working:   m.Working,
			Longitude: lon,
			Latitude:  lat,
			Location:  name,
			Lane:      lane,
		}
	}
	return joined, nil
}

// parseCoordinate parses a locale-formatted decimal ("51,21") as a float.
func parseCoordinate(s string) (float64, error) {
	return strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
}
