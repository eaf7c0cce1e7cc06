package assets

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"trialintel/adapters/export"
	"trialintel/domain/core"
	"trialintel/domain/enrich"
	"trialintel/domain/trial"
	"trialintel/internal/errors"
)

// Publisher writes the static site payload: trial index, detail chunks,
// dataset metadata, enrichment index and the methodology page.
type Publisher struct {
	publicDir string
}

func NewPublisher(publicDir string) *Publisher {
	return &Publisher{publicDir: publicDir}
}

// Publish writes every asset file. Existing files are overwritten; the
// directory is created if needed.
func (p *Publisher) Publish(records []trial.Record, index *enrich.Index, generatedAt core.Timestamp) error {
	if err := os.MkdirAll(p.publicDir, 0o755); err != nil {
		return errors.ExportError("failed to create public directory", err)
	}

	if err := export.WriteJSON(p.path("trials_index.json"), BuildIndexRows(records)); err != nil {
		return err
	}

	chunks := ChunkDetails(records)
	for i, chunk := range chunks {
		name := fmt.Sprintf("trials_details_%d.json", i)
		if chunk == nil {
			chunk = []trial.Record{}
		}
		if err := export.WriteJSON(p.path(name), chunk); err != nil {
			return err
		}
	}

	if err := export.WriteJSON(p.path("meta.json"), BuildMeta(records, generatedAt)); err != nil {
		return err
	}

	if err := export.WriteJSON(p.path("enrichment_index.json"), index); err != nil {
		return err
	}

	if err := os.WriteFile(p.path("methodology.html"), RenderMethodology(), 0o644); err != nil {
		return errors.ExportError("failed to write methodology page", err)
	}

	log.Printf("[Assets] Published %d records to %s", len(records), p.publicDir)
	return nil
}

func (p *Publisher) path(name string) string {
	return filepath.Join(p.publicDir, name)
}
