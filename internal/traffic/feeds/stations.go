package feeds

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/mivdata/traffic-data-aggregation/internal/traffic"
)

// StationFeed implements the traffic.StationSource interface for the MIV
// station-configuration feed.
type StationFeed struct {
	url     string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewStationFeed creates a station-configuration feed client.
func NewStationFeed(client *http.Client, url string, maxRetries int) *StationFeed {
	return &StationFeed{
		url: url,
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      maxRetries,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: newBreaker("stations"),
	}
}

// Fetch downloads and decodes the station feed, collecting every scalar
// child of each meetpunt into the station's record.
func (f *StationFeed) Fetch(ctx context.Context) (map[int]traffic.StationInfo, error) {
	resp, err := fetchWithResilience(ctx, f.httpCfg, f.circuit, f.url)
	if err != nil {
		return nil, fmt.Errorf("station feed: %w", err)
	}
	defer resp.Body.Close()

	var doc feedDocument
	if err := xml.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("station feed: decoding xml: %w", err)
	}

	stations := make(map[int]traffic.StationInfo, len(doc.MeasurePoints))
	for _, mp := range doc.MeasurePoints {
		id, err := strconv.Atoi(mp.UniqueID)
		if err != nil {
			return nil, fmt.Errorf("station feed: bad unieke_id %q: %w", mp.UniqueID, err)
		}
		info := make(traffic.StationInfo, len(mp.Children))
		for _, child := range mp.Children {
			info[child.XMLName.Local] = child.Value
		}
		stations[id] = info
	}
	return stations, nil
}
