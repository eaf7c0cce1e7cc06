package enrich

import (
	"strings"

	"trialintel/domain/trial"
)

// Observation is one trial-level tuple as the aggregator consumes it.
// Missing fields default to empty strings; one bad row never aborts a scan.
type Observation struct {
	Phases      string // raw semicolon-separated phase string
	Reason      string // classification reason, possibly empty
	WhyStopped  string // fallback source for bucket normalization
	Label       string // classification label
	LeadSponsor string
	DiseaseArea string
}

// FromRecord maps an exported trial record to an aggregator observation.
func FromRecord(r trial.Record) Observation {
	return Observation{
		Phases:      r.Phases,
		Reason:      r.ClassificationReason,
		WhyStopped:  r.WhyStopped,
		Label:       r.ClassificationLabel,
		LeadSponsor: r.LeadSponsor,
		DiseaseArea: r.DiseaseArea,
	}
}

// company returns the group value for the company dimension, defaulting to
// "Unknown" for blank sponsors.
func (o Observation) company() string {
	if s := strings.TrimSpace(o.LeadSponsor); s != "" {
		return s
	}
	return "Unknown"
}

func (o Observation) area() string {
	if s := strings.TrimSpace(o.DiseaseArea); s != "" {
		return s
	}
	return "Other"
}

// PhaseCohorts maps raw phase tokens to canonical cohorts. A trial spanning
// phases contributes to every cohort it touches ("PHASE1/PHASE2" lands in
// both phase1 and phase2); EARLY_PHASE1 folds into phase1. The implicit "all"
// cohort is added by the accumulator, not here.
func PhaseCohorts(phasesRaw string) []string {
	seen := map[string]bool{}
	for _, token := range strings.Split(phasesRaw, ";") {
		t := strings.ToUpper(strings.TrimSpace(token))
		if t == "" {
			continue
		}
		if strings.Contains(t, "PHASE1") || t == "EARLY_PHASE1" {
			seen[Phase1] = true
		}
		if strings.Contains(t, "PHASE2") {
			seen[Phase2] = true
		}
		if strings.Contains(t, "PHASE3") {
			seen[Phase3] = true
		}
		if strings.Contains(t, "PHASE4") {
			seen[Phase4] = true
		}
	}
	var out []string
	for _, pk := range PhaseKeys[1:] {
		if seen[pk] {
			out = append(out, pk)
		}
	}
	return out
}

// NormalizeBucket collapses a raw reason into the 5-bucket set. An empty
// reason falls back to keyword sniffing on the why-stopped text; a raw
// ENROLLMENT bucket collapses into OTHER/UNKNOWN. This rule is applied
// identically everywhere a raw reason is consumed.
func NormalizeBucket(reason, whyStopped string) string {
	r := strings.ToUpper(strings.TrimSpace(reason))
	if r == "" {
		w := strings.ToUpper(whyStopped)
		switch {
		case strings.Contains(w, "EFFICACY") || strings.Contains(w, "FUTILITY") || strings.Contains(w, "INSUFFICIENT"):
			r = "EFFICACY/FUTILITY"
		case strings.Contains(w, "SAFETY") || strings.Contains(w, "TOXIC") || strings.Contains(w, "ADVERSE"):
			r = "SAFETY"
		case strings.Contains(w, "REGULAT") || strings.Contains(w, "FDA") || strings.Contains(w, "AUTHORITY"):
			r = "REGULATORY"
		case strings.Contains(w, "OPERATION") || strings.Contains(w, "LOGISTIC") || strings.Contains(w, "SUPPLY"):
			r = "OPERATIONAL"
		case strings.Contains(w, "ENROLL") || strings.Contains(w, "RECRUIT"):
			r = "ENROLLMENT"
		default:
			r = "OTHER/UNKNOWN"
		}
	}

	if r == "ENROLLMENT" {
		return "OTHER/UNKNOWN"
	}
	for _, b := range BucketKeys {
		if r == b {
			return r
		}
	}
	return "OTHER/UNKNOWN"
}

// IsBioFailure derives the biological-failure flag: an explicit biological or
// scientific failure label, or a bucket of EFFICACY/FUTILITY.
func (o Observation) IsBioFailure() bool {
	label := strings.ToUpper(strings.TrimSpace(o.Label))
	if strings.Contains(label, "BIOLOGICAL_FAILURE") || strings.Contains(label, "SCIENTIFIC_FAILURE") {
		return true
	}
	return NormalizeBucket(o.Reason, o.WhyStopped) == "EFFICACY/FUTILITY"
}
