package feeds

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const measurementXML = `<verkeersdata>
  <meetpunt unieke_id="5">
    <beschikbaar>1</beschikbaar>
    <defect></defect>
    <geldig>1</geldig>
    <meetdata klasse_id="1">
      <voertuigsnelheid_rekenkundig>99</voertuigsnelheid_rekenkundig>
    </meetdata>
    <meetdata klasse_id="2">
      <voertuigsnelheid_rekenkundig>42</voertuigsnelheid_rekenkundig>
    </meetdata>
  </meetpunt>
  <meetpunt unieke_id="8">
    <beschikbaar>0</beschikbaar>
    <defect></defect>
    <geldig>0</geldig>
  </meetpunt>
</verkeersdata>`

func measurementServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/xml")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestMeasurementFeedSelectsClassGroup(t *testing.T) {
	srv := measurementServer(t, measurementXML)
	feed := NewMeasurementFeed(srv.Client(), srv.URL, "2", 0)

	points, err := feed.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, points, 2)

	// Only the class-2 group's speed is kept alongside the scalar fields.
	assert.Equal(t, "42", points[5]["voertuigsnelheid_rekenkundig"])
	assert.Equal(t, "1", points[5]["beschikbaar"])
	assert.Equal(t, "", points[5]["defect"])
	assert.Equal(t, "1", points[5]["geldig"])
}

func TestMeasurementFeedWithoutClassGroup(t *testing.T) {
	srv := measurementServer(t, measurementXML)
	feed := NewMeasurementFeed(srv.Client(), srv.URL, "2", 0)

	points, err := feed.Fetch(context.Background())
	require.NoError(t, err)

	// Sensor 8 has no meetdata groups at all: top-level fields only.
	require.Contains(t, points, 8)
	assert.NotContains(t, points[8], "voertuigsnelheid_rekenkundig")
	assert.Equal(t, "0", points[8]["beschikbaar"])
}

func TestMeasurementFeedServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	feed := NewMeasurementFeed(srv.Client(), srv.URL, "2", 0)
	_, err := feed.Fetch(context.Background())
	require.Error(t, err)
}

func TestMeasurementFeedTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	feed := NewMeasurementFeed(http.DefaultClient, url, "2", 0)
	_, err := feed.Fetch(context.Background())
	require.Error(t, err)
}

func TestMeasurementFeedBadUniqueID(t *testing.T) {
	srv := measurementServer(t, `<verkeersdata><meetpunt unieke_id="abc"></meetpunt></verkeersdata>`)
	feed := NewMeasurementFeed(srv.Client(), srv.URL, "2", 0)

	_, err := feed.Fetch(context.Background())
	require.Error(t, err)
}
