package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Defaults point at the public MIV feeds and the paths the original scraper
// used.
const (
	defaultMeasurementFeedURL = "http://miv.opendata.belfla.be/miv/verkeersdata"
	defaultStationFeedURL     = "http://miv.opendata.belfla.be/miv/configuratie/xml"
	defaultMeasurementClassID = "2"
	defaultLatestOutputPath   = "most_recent_data.json"
	defaultArchiveDir         = "old_data"
)

// AppConfig holds all runtime configuration.
type AppConfig struct {
	MeasurementFeedURL string `validate:"required,url"`
	StationFeedURL     string `validate:"required,url"`

	// MeasurementClassID selects which meetdata class group is kept.
	MeasurementClassID string `validate:"required"`

	LatestOutputPath string `validate:"required"`
	ArchiveDir       string `validate:"required"`

	// HTTPTimeout bounds each outbound feed request.
	HTTPTimeout time.Duration

	// FetchMaxRetries is the extra attempt budget per feed request. The
	// default of zero keeps the fail-fast single-attempt capture.
	FetchMaxRetries int

	// FetchInterval controls how often serve mode captures a snapshot.
	FetchInterval time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Infof("no .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{
		MeasurementFeedURL: getenvDefault("MEASUREMENT_FEED_URL", defaultMeasurementFeedURL),
		StationFeedURL:     getenvDefault("STATION_FEED_URL", defaultStationFeedURL),
		MeasurementClassID: getenvDefault("MEASUREMENT_CLASS_ID", defaultMeasurementClassID),
		LatestOutputPath:   getenvDefault("LATEST_OUTPUT_PATH", defaultLatestOutputPath),
		ArchiveDir:         getenvDefault("ARCHIVE_DIR", defaultArchiveDir),
		FetchMaxRetries:    getenvInt("FETCH_MAX_RETRIES", 0),
		Port:               getenvDefault("PORT", "8080"),
	}

	timeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	interval, err := time.ParseDuration(getenvDefault("FETCH_INTERVAL", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid FETCH_INTERVAL: %w", err)
	}
	cfg.FetchInterval = interval

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
