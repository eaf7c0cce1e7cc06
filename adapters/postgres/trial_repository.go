package postgres

import (
	"context"
	"log"

	"github.com/jmoiron/sqlx"

	"trialintel/domain/trial"
	"trialintel/internal/errors"
	"trialintel/ports"
)

// trialRepository implements the TrialStore interface on postgres.
type trialRepository struct {
	db *sqlx.DB
}

// NewTrialRepository creates a new trial repository
func NewTrialRepository(db *sqlx.DB) ports.TrialStore {
	return &trialRepository{db: db}
}

const trialsSchema = `CREATE TABLE IF NOT EXISTS stopped_trials (
	nct_id TEXT PRIMARY KEY,
	brief_title TEXT NOT NULL DEFAULT '',
	overall_status TEXT NOT NULL DEFAULT '',
	why_stopped TEXT NOT NULL DEFAULT '',
	classification_label TEXT NOT NULL DEFAULT '',
	classification_reason TEXT NOT NULL DEFAULT '',
	classification_confidence TEXT NOT NULL DEFAULT '',
	classification_evidence TEXT NOT NULL DEFAULT '',
	disease_area TEXT NOT NULL DEFAULT '',
	disease_areas_matched TEXT NOT NULL DEFAULT '',
	mesh_terms TEXT NOT NULL DEFAULT '',
	countries TEXT NOT NULL DEFAULT '',
	study_type TEXT NOT NULL DEFAULT '',
	phases TEXT NOT NULL DEFAULT '',
	lead_sponsor TEXT NOT NULL DEFAULT '',
	collaborators TEXT NOT NULL DEFAULT '',
	conditions TEXT NOT NULL DEFAULT '',
	intervention_names TEXT NOT NULL DEFAULT '',
	intervention_types TEXT NOT NULL DEFAULT '',
	start_date TEXT NOT NULL DEFAULT '',
	primary_completion_date TEXT NOT NULL DEFAULT '',
	completion_date TEXT NOT NULL DEFAULT '',
	last_update_post_date TEXT NOT NULL DEFAULT '',
	url TEXT NOT NULL DEFAULT ''
)`

// EnsureSchema creates the trials table if it does not exist.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, trialsSchema); err != nil {
		return errors.StorageError("failed to ensure trials schema", err)
	}
	return nil
}

const upsertQuery = `INSERT INTO stopped_trials (
	nct_id, brief_title, overall_status, why_stopped,
	classification_label, classification_reason, classification_confidence, classification_evidence,
	disease_area, disease_areas_matched, mesh_terms, countries,
	study_type, phases, lead_sponsor, collaborators, conditions,
	intervention_names, intervention_types,
	start_date, primary_completion_date, completion_date, last_update_post_date, url
) VALUES (
	:nct_id, :brief_title, :overall_status, :why_stopped,
	:classification_label, :classification_reason, :classification_confidence, :classification_evidence,
	:disease_area, :disease_areas_matched, :mesh_terms, :countries,
	:study_type, :phases, :lead_sponsor, :collaborators, :conditions,
	:intervention_names, :intervention_types,
	:start_date, :primary_completion_date, :completion_date, :last_update_post_date, :url
) ON CONFLICT (nct_id) DO UPDATE SET
	brief_title = EXCLUDED.brief_title,
	overall_status = EXCLUDED.overall_status,
	why_stopped = EXCLUDED.why_stopped,
	classification_label = EXCLUDED.classification_label,
	classification_reason = EXCLUDED.classification_reason,
	classification_confidence = EXCLUDED.classification_confidence,
	classification_evidence = EXCLUDED.classification_evidence,
	disease_area = EXCLUDED.disease_area,
	disease_areas_matched = EXCLUDED.disease_areas_matched,
	mesh_terms = EXCLUDED.mesh_terms,
	countries = EXCLUDED.countries,
	study_type = EXCLUDED.study_type,
	phases = EXCLUDED.phases,
	lead_sponsor = EXCLUDED.lead_sponsor,
	collaborators = EXCLUDED.collaborators,
	conditions = EXCLUDED.conditions,
	intervention_names = EXCLUDED.intervention_names,
	intervention_types = EXCLUDED.intervention_types,
	start_date = EXCLUDED.start_date,
	primary_completion_date = EXCLUDED.primary_completion_date,
	completion_date = EXCLUDED.completion_date,
	last_update_post_date = EXCLUDED.last_update_post_date,
	url = EXCLUDED.url`

// Upsert inserts or replaces records keyed by NCT ID inside one transaction.
func (r *trialRepository) Upsert(ctx context.Context, records []trial.Record) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.StorageError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	for i := range records {
		if _, err := tx.NamedExecContext(ctx, upsertQuery, records[i]); err != nil {
			return errors.StorageError("failed to upsert trial "+records[i].NCTID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.StorageError("failed to commit trial upsert", err)
	}

	log.Printf("[TrialStore] Upserted %d trial records", len(records))
	return nil
}

// LoadAll returns every stored record, newest last-update first.
func (r *trialRepository) LoadAll(ctx context.Context) ([]trial.Record, error) {
	var records []trial.Record
	query := `SELECT * FROM stopped_trials ORDER BY last_update_post_date DESC, nct_id ASC`
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, errors.StorageError("failed to load trials", err)
	}
	return records, nil
}
