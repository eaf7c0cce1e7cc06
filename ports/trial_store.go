package ports

import (
	"context"

	"trialintel/domain/trial"
)

// TrialStore persists classified trial records between pipeline runs.
type TrialStore interface {
	// Upsert inserts or replaces records keyed by NCT ID.
	Upsert(ctx context.Context, records []trial.Record) error
	// LoadAll returns every stored record, newest last-update first.
	LoadAll(ctx context.Context) ([]trial.Record, error)
}
