package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"tanah-scraper/api"
	"tanah-scraper/config"
	"tanah-scraper/models"
	"tanah-scraper/scraper/properti"
	"tanah-scraper/services"
	"tanah-scraper/storage"
	"tanah-scraper/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	if len(os.Args) > 1 && os.Args[1] == "serve" {
		runServe(cfg, logger)
		return
	}
	runScrape(cfg, logger)
}

func runScrape(cfg *config.Config, logger *utils.Logger) {
	logger.Info("=== Properti Extraction System starting ===")
	logger.Info("Config — pages: %d | surface: %d–%d sqm | retries: %d | page delay: %dms",
		cfg.PagesToScrape, cfg.MinSurfaceSqm, cfg.MaxSurfaceSqm, cfg.MaxRetries, cfg.PageDelayMs)

	// The CSV file is created header-first so downstream consumers get a
	// syntactically valid file even when the run fails after this point.
	csvWriter, err := storage.NewCSVWriter(cfg.CSVOutputPath)
	if err != nil {
		logger.Error("Failed to create CSV output: %v", err)
		os.Exit(1)
	}
	defer csvWriter.Close()

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration: %v", err)
		os.Exit(1)
	}

	schema, err := config.LoadSchema(cfg.SchemaPath)
	if err != nil {
		logger.Error("Failed to load schema config: %v", err)
		os.Exit(1)
	}

	resolver := services.NewResolver(schema, logger)
	normalizer := services.NewNormalizer(cfg.BaseURL, cfg.RegionPrefix)
	pipeline := services.NewPipeline(resolver, normalizer, models.AcceptanceConfig{
		MinSurfaceSqm: cfg.MinSurfaceSqm,
		MaxSurfaceSqm: cfg.MaxSurfaceSqm,
	}, logger)

	var source properti.PageSource
	if cfg.UseBrowser {
		logger.Info("Page source: headless browser")
		source = properti.NewBrowserFetcher(cfg.ChromeBin,
			time.Duration(cfg.FetchTimeout)*time.Second, logger)
	} else {
		logger.Info("Page source: HTTP client")
		source = properti.NewHTTPFetcher(time.Duration(cfg.FetchTimeout) * time.Second)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	scraper := properti.New(cfg, logger, source, pipeline)
	listings, stats, runErr := scraper.Run(ctx)
	if runErr != nil {
		logger.Warn("Run ended early: %v", runErr)
	}

	if err := csvWriter.WriteListings(listings); err != nil {
		logger.Error("CSV write failed: %v", err)
		os.Exit(1)
	}
	logger.Info("Results written to %s (%d rows)", cfg.CSVOutputPath, len(listings))

	if cfg.PostgresEnabled {
		pgWriter, err := storage.NewPostgresWriter(cfg.DSN())
		if err != nil {
			logger.Error("PostgreSQL unavailable: %v", err)
		} else {
			defer pgWriter.Close()
			if err := pgWriter.WriteListings(listings); err != nil {
				logger.Error("PostgreSQL write failed: %v", err)
			} else {
				logger.Info("Listings stored in PostgreSQL (table: listings)")
			}
		}
	}

	services.PrintRunReport(stats)
}

func runServe(cfg *config.Config, logger *utils.Logger) {
	logger.Info("=== Properti API starting on %s ===", cfg.HTTPAddr)

	store, err := storage.NewPostgresWriter(cfg.DSN())
	if err != nil {
		logger.Error("PostgreSQL unavailable: %v", err)
		os.Exit(1)
	}
	defer store.Close()

	server := api.NewServer(store, logger)
	if err := http.ListenAndServe(cfg.HTTPAddr, server.Router()); err != nil {
		logger.Error("HTTP server failed: %v", err)
		os.Exit(1)
	}
}
