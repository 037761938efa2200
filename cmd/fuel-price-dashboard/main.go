package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/fuel-price-dashboard/internal/api/http"
	"github.com/i474232898/fuel-price-dashboard/internal/config"
	"github.com/i474232898/fuel-price-dashboard/internal/export"
	"github.com/i474232898/fuel-price-dashboard/internal/fuel"
	"github.com/i474232898/fuel-price-dashboard/internal/loader"
	"github.com/i474232898/fuel-price-dashboard/internal/scheduler"
	"github.com/i474232898/fuel-price-dashboard/internal/source"
	"github.com/i474232898/fuel-price-dashboard/internal/store"
)

func main() {
	// Load configuration (also reads .env when present).
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Dataset sources: local files, http(s) with resilience, s3 objects.
	router := &source.Router{
		HTTP: source.NewHTTPOpener(&http.Client{Timeout: cfg.HTTPTimeout}, source.DefaultBackoff),
	}
	if source.NeedsS3(cfg.PricesSource, cfg.BoundariesSource) {
		s3Opener, err := source.NewS3Opener(context.Background(), source.S3Options{
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
		})
		if err != nil {
			log.Fatalf("failed to configure s3 source: %v", err)
		}
		router.S3 = s3Opener
	}

	ld := loader.New(router, loader.PriceOptions{
		Columns: loader.Columns{
			Region:       cfg.PriceColumns.Region,
			Price:        cfg.PriceColumns.Price,
			Date:         cfg.PriceColumns.Date,
			Municipality: cfg.PriceColumns.Municipality,
			Station:      cfg.PriceColumns.Station,
			FuelType:     cfg.PriceColumns.FuelType,
		},
		Encoding:  cfg.PricesEncoding,
		Delimiter: cfg.PricesDelimiter,
	}, cfg.BoundaryRegionProperty)

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 5*time.Minute)
	dataset, err := ld.Load(loadCtx, cfg.PricesSource, cfg.BoundariesSource)
	cancelLoad()
	if err != nil {
		log.Fatalf("failed to load datasets: %v", err)
	}

	// The baseline is built once here and never rebuilt.
	baseline := fuel.NewBaseline(dataset.Prices, dataset.Boundaries)
	log.Printf("INFO: baseline %s: %d regions joined, %d regions with prices",
		baseline.ID(), len(baseline.Enriched()), len(baseline.Aggregates()))

	service := fuel.NewService(baseline)

	// Report artifacts: render once now, then on the export interval.
	artifacts := store.NewMemoryStore(cfg.ArtifactHistory)
	renderer := export.NewRenderer(service, artifacts, cfg.ExportDir)
	if err := renderer.RenderAll(); err != nil {
		log.Printf("ERROR: initial report render: %v", err)
	}

	sched := scheduler.New(cfg.ExportInterval, renderer)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "fuel-price-dashboard",
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

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "fuel-price-dashboard",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service, artifacts)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
