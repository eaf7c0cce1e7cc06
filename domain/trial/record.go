package trial

import (
	"strings"

	"trialintel/domain/classify"
)

// Record is one stopped trial as exported to CSV/JSON and consumed by the
// enrichment aggregator. Field names mirror the published dataset columns.
type Record struct {
	NCTID         string `json:"nct_id" db:"nct_id"`
	BriefTitle    string `json:"brief_title" db:"brief_title"`
	OverallStatus string `json:"overall_status" db:"overall_status"`
	WhyStopped    string `json:"why_stopped" db:"why_stopped"`

	ClassificationLabel      string `json:"classification_label" db:"classification_label"`
	ClassificationReason     string `json:"classification_reason" db:"classification_reason"`
	ClassificationConfidence string `json:"classification_confidence" db:"classification_confidence"`
	ClassificationEvidence   string `json:"classification_evidence" db:"classification_evidence"`

	DiseaseArea         string `json:"disease_area" db:"disease_area"`
	DiseaseAreasMatched string `json:"disease_areas_matched" db:"disease_areas_matched"`
	MeshTerms           string `json:"mesh_terms" db:"mesh_terms"`

	Countries string `json:"countries" db:"countries"`

	StudyType         string `json:"study_type" db:"study_type"`
	Phases            string `json:"phases" db:"phases"`
	LeadSponsor       string `json:"lead_sponsor" db:"lead_sponsor"`
	Collaborators     string `json:"collaborators" db:"collaborators"`
	Conditions        string `json:"conditions" db:"conditions"`
	InterventionNames string `json:"intervention_names" db:"intervention_names"`
	InterventionTypes string `json:"intervention_types" db:"intervention_types"`

	StartDate             string `json:"start_date" db:"start_date"`
	PrimaryCompletionDate string `json:"primary_completion_date" db:"primary_completion_date"`
	CompletionDate        string `json:"completion_date" db:"completion_date"`
	LastUpdatePostDate    string `json:"last_update_post_date" db:"last_update_post_date"`
	URL                   string `json:"url" db:"url"`
}

// Sourced carries a Record together with the description fields the fallback
// miner needs. Descriptions are never exported; they exist only between fetch
// and classification.
type Sourced struct {
	Record

	BriefSummary        string
	DetailedDescription string
}

// ApplyClassification copies a verdict onto the record's exported fields.
// Manual overrides use the same path: full replacement of all four fields.
func (r *Record) ApplyClassification(c classify.Classification) {
	r.ClassificationLabel = string(c.Label)
	r.ClassificationReason = string(c.Reason)
	r.ClassificationConfidence = string(c.Confidence)
	r.ClassificationEvidence = c.Evidence
}

// IsInterventional reports whether the record is an interventional study.
func (r Record) IsInterventional() bool {
	return classify.NormalizeText(r.StudyType) == "interventional"
}

// IsDrugOrBiologic reports whether any intervention is a drug or biological.
func (r Record) IsDrugOrBiologic() bool {
	types := classify.NormalizeText(r.InterventionTypes)
	return strings.Contains(types, "drug") || strings.Contains(types, "biological")
}

// IsBiologicalFailure reports whether the classified verdict blames biology
// with at least medium confidence; this gates the biological-failure exports.
func (r Record) IsBiologicalFailure() bool {
	if r.ClassificationLabel != string(classify.LabelBiologicalFailure) {
		return false
	}
	return r.ClassificationConfidence == string(classify.ConfidenceHigh) ||
		r.ClassificationConfidence == string(classify.ConfidenceMedium)
}

// SearchBlob concatenates the searchable fields into one lower-case string
// for the published index.
func (r Record) SearchBlob() string {
	fields := []string{
		r.NCTID,
		r.BriefTitle,
		r.LeadSponsor,
		r.Collaborators,
		r.DiseaseArea,
		r.Conditions,
		r.InterventionNames,
		r.MeshTerms,
		r.WhyStopped,
		r.OverallStatus,
		r.Phases,
	}
	nonEmpty := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			nonEmpty = append(nonEmpty, f)
		}
	}
	return strings.ToLower(strings.Join(nonEmpty, " | "))
}

// FirstSemicolonField returns the first non-empty element of a
// semicolon-joined list field.
func FirstSemicolonField(s string) string {
	for _, part := range strings.Split(s, ";") {
		if p := strings.TrimSpace(part); p != "" {
			return p
		}
	}
	return ""
}
