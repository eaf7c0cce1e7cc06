package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"trialintel/domain/enrich"
	"trialintel/domain/trial"
	"trialintel/internal/config"
	"trialintel/ui"
)

// api serves the exploration API and published static assets.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("[API] No .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	var records []trial.Record
	if err := readJSON(filepath.Join(cfg.Paths.OutputDir, "stopped_trials.json"), &records); err != nil {
		log.Fatal("Failed to load records (run fetch first):", err)
	}

	var index enrich.Index
	if err := readJSON(filepath.Join(cfg.Paths.PublicDir, "enrichment_index.json"), &index); err != nil {
		log.Fatal("Failed to load enrichment index (run publish first):", err)
	}

	application := ui.NewApp(ui.Config{
		Records:   records,
		Index:     &index,
		PublicDir: cfg.Paths.PublicDir,
		Prior:     enrich.Prior{A: cfg.Prior.A, B: cfg.Prior.B},
	})

	addr := ":" + cfg.Server.Port
	log.Printf("[API] Serving %d records on %s", len(records), addr)
	log.Fatal(http.ListenAndServe(addr, application.Router()))
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
