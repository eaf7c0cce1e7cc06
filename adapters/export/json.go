package export

import (
	"encoding/json"
	"os"

	"trialintel/internal/errors"
)

// WriteJSON marshals v with indentation and writes it atomically enough for
// static publishing: full rewrite, no partial appends.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.ExportError("failed to marshal JSON", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.ExportError("failed to write JSON file", err)
	}
	return nil
}
