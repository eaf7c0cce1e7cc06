package overrides

import (
	"encoding/csv"
	"io"
	"log"
	"os"
	"strings"

	"trialintel/domain/classify"
	"trialintel/internal/errors"
	"trialintel/ports"
)

// CSVSource loads manual classification overrides from a CSV file with
// columns nct_id, override_label, override_reason, override_confidence,
// notes. A missing file is not an error; curation is optional.
type CSVSource struct {
	path string
}

var _ ports.OverrideSource = (*CSVSource)(nil)

func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// Load parses the override file into a map keyed by NCT ID. Blank cells fall
// back to UNCLEAR / OTHER/UNKNOWN / LOW; notes become the evidence trail.
func (s *CSVSource) Load() (map[string]classify.Classification, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]classify.Classification{}, nil
		}
		return nil, errors.StorageError("failed to open overrides file", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return map[string]classify.Classification{}, nil
	}
	if err != nil {
		return nil, errors.StorageError("failed to read overrides header", err)
	}
	col := map[string]int{}
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := col["nct_id"]; !ok {
		return nil, errors.InvalidInput("overrides file missing nct_id column")
	}

	out := map[string]classify.Classification{}
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.StorageError("failed to read overrides row", err)
		}

		nctID := strings.TrimSpace(cell(row, col, "nct_id"))
		if nctID == "" {
			continue
		}

		c := classify.Classification{
			Label:      classify.Label(defaultIfEmpty(cell(row, col, "override_label"), string(classify.LabelUnclear))),
			Reason:     classify.Reason(defaultIfEmpty(cell(row, col, "override_reason"), string(classify.ReasonOtherUnknown))),
			Confidence: classify.Confidence(defaultIfEmpty(cell(row, col, "override_confidence"), string(classify.ConfidenceLow))),
		}
		if notes := strings.TrimSpace(cell(row, col, "notes")); notes != "" {
			c.Evidence = "override:" + notes
		} else {
			c.Evidence = "override:manual"
		}
		out[nctID] = c
	}

	log.Printf("[Overrides] Loaded %d manual overrides from %s", len(out), s.path)
	return out, nil
}

func cell(row []string, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func defaultIfEmpty(s, def string) string {
	if t := strings.TrimSpace(s); t != "" {
		return strings.ToUpper(t)
	}
	return def
}
