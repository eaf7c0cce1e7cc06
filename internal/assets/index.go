package assets

import (
	"strings"

	"trialintel/domain/trial"
)

const whyStoppedShortMax = 220

// IndexRow is one compact entry in trials_index.json: enough to list, filter
// and search without loading the detail chunks.
type IndexRow struct {
	NCTID               string `json:"nct_id"`
	BriefTitle          string `json:"brief_title"`
	OverallStatus       string `json:"overall_status"`
	WhyStoppedShort     string `json:"why_stopped_short"`
	Label               string `json:"classification_label"`
	Reason              string `json:"classification_reason"`
	Confidence          string `json:"classification_confidence"`
	DiseaseArea         string `json:"disease_area"`
	Phases              string `json:"phases"`
	LeadSponsor         string `json:"lead_sponsor"`
	PrimaryCondition    string `json:"primary_condition"`
	PrimaryIntervention string `json:"primary_intervention"`
	LastUpdatePostDate  string `json:"last_update_post_date"`
	URL                 string `json:"url"`
	SearchBlob          string `json:"search_blob"`
}

// BuildIndexRows maps records to compact index rows, preserving input order.
func BuildIndexRows(records []trial.Record) []IndexRow {
	rows := make([]IndexRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, IndexRow{
			NCTID:               r.NCTID,
			BriefTitle:          r.BriefTitle,
			OverallStatus:       r.OverallStatus,
			WhyStoppedShort:     shorten(r.WhyStopped, whyStoppedShortMax),
			Label:               r.ClassificationLabel,
			Reason:              r.ClassificationReason,
			Confidence:          r.ClassificationConfidence,
			DiseaseArea:         r.DiseaseArea,
			Phases:              r.Phases,
			LeadSponsor:         r.LeadSponsor,
			PrimaryCondition:    trial.FirstSemicolonField(r.Conditions),
			PrimaryIntervention: trial.FirstSemicolonField(r.InterventionNames),
			LastUpdatePostDate:  r.LastUpdatePostDate,
			URL:                 r.URL,
			SearchBlob:          r.SearchBlob(),
		})
	}
	return rows
}

// shorten truncates s to max runes with a trailing ellipsis.
func shorten(s string, max int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max])) + "…"
}

// ChunkKey returns the detail chunk a record lands in: the last digit of its
// NCT ID, or 0 when the ID does not end in a digit. Ten chunks keep each
// detail file small enough to fetch lazily.
func ChunkKey(nctID string) int {
	if nctID == "" {
		return 0
	}
	last := nctID[len(nctID)-1]
	if last < '0' || last > '9' {
		return 0
	}
	return int(last - '0')
}

// ChunkDetails partitions full records into the ten detail chunks.
func ChunkDetails(records []trial.Record) [10][]trial.Record {
	var chunks [10][]trial.Record
	for _, r := range records {
		k := ChunkKey(r.NCTID)
		chunks[k] = append(chunks[k], r)
	}
	return chunks
}
