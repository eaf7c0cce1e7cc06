package export

import (
	"encoding/csv"
	"os"

	"trialintel/domain/trial"
	"trialintel/internal/errors"
)

// csvColumns is the published column order. Appending is safe; reordering or
// renaming breaks downstream consumers.
var csvColumns = []string{
	"nct_id",
	"brief_title",
	"overall_status",
	"why_stopped",
	"classification_label",
	"classification_reason",
	"classification_confidence",
	"classification_evidence",
	"disease_area",
	"disease_areas_matched",
	"mesh_terms",
	"countries",
	"study_type",
	"phases",
	"lead_sponsor",
	"collaborators",
	"conditions",
	"intervention_names",
	"intervention_types",
	"start_date",
	"primary_completion_date",
	"completion_date",
	"last_update_post_date",
	"url",
}

func csvRow(r trial.Record) []string {
	return []string{
		r.NCTID,
		r.BriefTitle,
		r.OverallStatus,
		r.WhyStopped,
		r.ClassificationLabel,
		r.ClassificationReason,
		r.ClassificationConfidence,
		r.ClassificationEvidence,
		r.DiseaseArea,
		r.DiseaseAreasMatched,
		r.MeshTerms,
		r.Countries,
		r.StudyType,
		r.Phases,
		r.LeadSponsor,
		r.Collaborators,
		r.Conditions,
		r.InterventionNames,
		r.InterventionTypes,
		r.StartDate,
		r.PrimaryCompletionDate,
		r.CompletionDate,
		r.LastUpdatePostDate,
		r.URL,
	}
}

// WriteCSV writes records to path in the published column order.
func WriteCSV(path string, records []trial.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.ExportError("failed to create CSV file", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvColumns); err != nil {
		return errors.ExportError("failed to write CSV header", err)
	}
	for _, r := range records {
		if err := w.Write(csvRow(r)); err != nil {
			return errors.ExportError("failed to write CSV row", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.ExportError("failed to flush CSV", err)
	}
	return nil
}
