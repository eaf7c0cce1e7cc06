package ports

import (
	"context"

	"trialintel/domain/trial"
)

// RegistryQuery scopes a registry scan to stopped studies updated on or after
// a cutoff date, with a hard cap on how many studies to pull.
type RegistryQuery struct {
	LastUpdateFrom string // YYYY-MM-DD
	MaxStudies     int
}

// StudyRegistry streams stopped studies from a clinical trial registry.
// Visit is called once per study in registry order; returning an error from
// the visitor aborts the scan.
type StudyRegistry interface {
	FetchStopped(ctx context.Context, q RegistryQuery, visit func(trial.Sourced) error) error
}
