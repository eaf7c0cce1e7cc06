package ports

import (
	"trialintel/domain/classify"
)

// OverrideSource supplies manual classification overrides keyed by NCT ID.
// Overrides replace the engine verdict wholesale after classification.
type OverrideSource interface {
	Load() (map[string]classify.Classification, error)
}
