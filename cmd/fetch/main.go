package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"trialintel/adapters/ctgov"
	"trialintel/adapters/export"
	"trialintel/adapters/overrides"
	"trialintel/adapters/postgres"
	"trialintel/app"
	"trialintel/domain/trial"
	"trialintel/internal/config"
	"trialintel/ports"
)

// fetch pulls stopped studies from ClinicalTrials.gov, classifies them, and
// writes the full record set to OUTPUT_DIR (and to postgres when a
// DATABASE_URL is configured).
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("[Fetch] No .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := ctgov.NewClient(ctgov.Config{
		BaseURL:  cfg.Registry.BaseURL,
		PageSize: cfg.Registry.PageSize,
		Sleep:    cfg.Registry.Sleep,
	})
	overrideSource := overrides.NewCSVSource(cfg.Paths.OverridesPath)
	pipeline := app.NewPipelineService(registry, overrideSource)

	records, manifest, err := pipeline.Run(ctx, ports.RegistryQuery{
		LastUpdateFrom: cfg.Registry.LastUpdateFrom,
		MaxStudies:     cfg.Registry.MaxStudies,
	})
	if err != nil {
		log.Fatal("Pipeline run failed:", err)
	}

	if err := os.MkdirAll(cfg.Paths.OutputDir, 0o755); err != nil {
		log.Fatal("Failed to create output directory:", err)
	}
	if err := export.WriteCSV(filepath.Join(cfg.Paths.OutputDir, "stopped_trials.csv"), records); err != nil {
		log.Fatal("Failed to write CSV:", err)
	}
	if err := export.WriteJSON(filepath.Join(cfg.Paths.OutputDir, "stopped_trials.json"), records); err != nil {
		log.Fatal("Failed to write JSON:", err)
	}
	if err := export.WriteExcel(filepath.Join(cfg.Paths.OutputDir, "stopped_trials.xlsx"), records); err != nil {
		log.Fatal("Failed to write workbook:", err)
	}
	if err := export.WriteJSON(filepath.Join(cfg.Paths.OutputDir, "run_manifest.json"), manifest); err != nil {
		log.Fatal("Failed to write run manifest:", err)
	}

	bio := make([]trial.Record, 0, len(records))
	for _, r := range records {
		if r.IsBiologicalFailure() {
			bio = append(bio, r)
		}
	}
	if err := export.WriteCSV(filepath.Join(cfg.Paths.OutputDir, "biological_failures.csv"), bio); err != nil {
		log.Fatal("Failed to write failures CSV:", err)
	}
	if err := export.WriteJSON(filepath.Join(cfg.Paths.OutputDir, "biological_failures.json"), bio); err != nil {
		log.Fatal("Failed to write failures JSON:", err)
	}

	if cfg.Database.URL != "" {
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}
		defer db.Close()
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			log.Fatal("Failed to ensure schema:", err)
		}
		store := postgres.NewTrialRepository(db)
		if err := store.Upsert(ctx, records); err != nil {
			log.Fatal("Failed to persist records:", err)
		}
	}

	log.Printf("[Fetch] Done: %d records, corpus %s", len(records), manifest.CorpusHash)
}
