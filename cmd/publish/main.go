package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"trialintel/adapters/postgres"
	"trialintel/app"
	"trialintel/domain/core"
	"trialintel/domain/enrich"
	"trialintel/domain/trial"
	"trialintel/internal/assets"
	"trialintel/internal/config"
)

// publish builds the static site payload from a fetched corpus: trial index,
// detail chunks, metadata, enrichment index and methodology page.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("[Publish] No .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	records, err := loadRecords(cfg)
	if err != nil {
		log.Fatal("Failed to load records:", err)
	}
	if len(records) == 0 {
		log.Fatal("No records to publish; run fetch first")
	}

	prior := enrich.Prior{A: cfg.Prior.A, B: cfg.Prior.B}
	enrichment := app.NewEnrichmentService(prior)
	now := core.Now()
	index := enrichment.BuildIndex(records, now)

	publisher := assets.NewPublisher(cfg.Paths.PublicDir)
	if err := publisher.Publish(records, index, now); err != nil {
		log.Fatal("Failed to publish assets:", err)
	}
}

// loadRecords prefers postgres when configured, falling back to the JSON
// export from the fetch step.
func loadRecords(cfg *config.Config) ([]trial.Record, error) {
	if cfg.Database.URL != "" {
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return postgres.NewTrialRepository(db).LoadAll(context.Background())
	}

	path := filepath.Join(cfg.Paths.OutputDir, "stopped_trials.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []trial.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	log.Printf("[Publish] Loaded %d records from %s", len(records), path)
	return records, nil
}
