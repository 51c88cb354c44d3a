package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"

	httpapi "github.com/mivdata/traffic-data-aggregation/internal/api/http"
	"github.com/mivdata/traffic-data-aggregation/internal/config"
	"github.com/mivdata/traffic-data-aggregation/internal/scheduler"
	"github.com/mivdata/traffic-data-aggregation/internal/store"
	"github.com/mivdata/traffic-data-aggregation/internal/traffic"
	"github.com/mivdata/traffic-data-aggregation/internal/traffic/feeds"
)

func main() {
	serve := flag.Bool("serve", false, "run as a long-lived service with periodic capture and an HTTP API")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound feed requests.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	measurements := feeds.NewMeasurementFeed(httpClient, cfg.MeasurementFeedURL, cfg.MeasurementClassID, cfg.FetchMaxRetries)
	stations := feeds.NewStationFeed(httpClient, cfg.StationFeedURL, cfg.FetchMaxRetries)
	fileStore := store.NewFileStore(cfg.LatestOutputPath, cfg.ArchiveDir)

	service := traffic.NewService(measurements, stations, fileStore)

	if !*serve {
		runOnce(service)
		return
	}

	runServer(cfg, service)
}

// runOnce captures a single snapshot and exits: 0 on success, 1 on any
// failure. A failed run writes no output.
func runOnce(service *traffic.Service) {
	if _, err := service.Capture(context.Background()); err != nil {
		log.Errorf("capture failed: %v", err)
		os.Exit(1)
	}
	log.Info("capture completed successfully")
}

func runServer(cfg *config.AppConfig, service *traffic.Service) {
	sched := scheduler.New(cfg.FetchInterval, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "traffic-data-aggregation",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "traffic-data-aggregation",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Errorf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorf("error during shutdown: %v", err)
	}
}
