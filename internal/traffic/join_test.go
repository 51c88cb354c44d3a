package traffic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stationFixture() StationInfo {
	return StationInfo{
		"lengtegraad_EPSG_4326":  "3,21",
		"breedtegraad_EPSG_4326": "51,05",
		"volledige_naam":         "Main St",
		"Rijstrook":              "1",
	}
}

func TestJoinAttachesStationMetadata(t *testing.T) {
	cleaned := map[int]Measurement{5: {Speed: 42, Working: true}}
	stations := map[int]StationInfo{5: stationFixture()}

	joined, err := Join(cleaned, stations)
	require.NoError(t, err)

	require.Contains(t, joined, 5)
	assert.Equal(t, MeasurePoint{
		Speed:     42,
		Working:   true,
		Longitude: 3.21,
		Latitude:  51.05,
		Location:  "Main St",
		Lane:      "1",
	}, joined[5])
}

func TestJoinDropsSensorsWithoutStation(t *testing.T) {
	cleaned := map[int]Measurement{
		5: {Speed: 42, Working: true},
		7: {Speed: 10, Working: false},
	}
	stations := map[int]StationInfo{5: stationFixture()}

	joined, err := Join(cleaned, stations)
	require.NoError(t, err)

	assert.Contains(t, joined, 5)
	assert.NotContains(t, joined, 7)

	// The input is not mutated.
	assert.Contains(t, cleaned, 7)
}

func TestJoinDropsSensorsMissingRequiredField(t *testing.T) {
	incomplete := stationFixture()
	delete(incomplete, "Rijstrook")

	joined, err := Join(map[int]Measurement{5: {Speed: 42}}, map[int]StationInfo{5: incomplete})
	require.NoError(t, err)
	assert.Empty(t, joined)
}

func TestJoinMalformedCoordinate(t *testing.T) {
	broken := stationFixture()
	broken["lengtegraad_EPSG_4326"] = "three point two"

	_, err := Join(map[int]Measurement{5: {Speed: 42}}, map[int]StationInfo{5: broken})
	require.Error(t, err)

	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "lengtegraad_EPSG_4326", fieldErr.Field)
}

func TestParseCoordinate(t *testing.T) {
	got, err := parseCoordinate("51,21")
	require.NoError(t, err)
	assert.Equal(t, 51.21, got)
}
