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

// measureDataElement is the nested list of per-class measurement groups.
const measureDataElement = "meetdata"

// MeasurementFeed implements the traffic.MeasurementSource interface for the
// MIV live data feed.
type MeasurementFeed struct {
	url     string
	classID string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewMeasurementFeed creates a measurement feed client. classID selects
// which meetdata group is flattened into each sensor's record.
func NewMeasurementFeed(client *http.Client, url, classID string, maxRetries int) *MeasurementFeed {
	return &MeasurementFeed{
		url:     url,
		classID: classID,
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      maxRetries,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: newBreaker("measurements"),
	}
}

// Fetch downloads and decodes the live data feed. Scalar children of each
// meetpunt are collected as-is; from the nested meetdata groups only the
// configured class is kept, its fields flattened into the same record.
func (f *MeasurementFeed) Fetch(ctx context.Context) (map[int]traffic.RawMeasurement, error) {
	resp, err := fetchWithResilience(ctx, f.httpCfg, f.circuit, f.url)
	if err != nil {
		return nil, fmt.Errorf("measurement feed: %w", err)
	}
	defer resp.Body.Close()

	var doc feedDocument
	if err := xml.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("measurement feed: decoding xml: %w", err)
	}

	points := make(map[int]traffic.RawMeasurement, len(doc.MeasurePoints))
	for _, mp := range doc.MeasurePoints {
		id, err := strconv.Atoi(mp.UniqueID)
		if err != nil {
			return nil, fmt.Errorf("measurement feed: bad unieke_id %q: %w", mp.UniqueID, err)
		}
		fields := make(traffic.RawMeasurement)
		for _, child := range mp.Children {
			if child.XMLName.Local != measureDataElement {
				fields[child.XMLName.Local] = child.Value
				continue
			}
			if child.ClassID != f.classID {
				continue
			}
			for _, m := range child.Children {
				fields[m.XMLName.Local] = m.Value
			}
		}
		points[id] = fields
	}
	return points, nil
}
