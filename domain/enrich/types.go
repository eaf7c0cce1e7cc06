package enrich

// Key universes for the aggregate tables. All four are closed and small, so
// every cell is initialized up front instead of created on demand.
const (
	ScopeAll = "all"
	ScopeBio = "bio"

	GroupByCompany     = "company"
	GroupByDiseaseArea = "disease_area"

	PhaseAll = "all"
	Phase1   = "phase1"
	Phase2   = "phase2"
	Phase3   = "phase3"
	Phase4   = "phase4"
)

var (
	ScopeKeys   = []string{ScopeAll, ScopeBio}
	GroupByKeys = []string{GroupByCompany, GroupByDiseaseArea}
	PhaseKeys   = []string{PhaseAll, Phase1, Phase2, Phase3, Phase4}

	// BucketKeys is the fixed 5-bucket ordering; the k-vector of every
	// group row follows it positionally.
	BucketKeys = []string{
		"EFFICACY/FUTILITY",
		"SAFETY",
		"OPERATIONAL",
		"REGULATORY",
		"OTHER/UNKNOWN",
	}
)

// BucketPosition maps a canonical bucket to its position in BucketKeys;
// unknown buckets collapse to the trailing OTHER/UNKNOWN slot.
func BucketPosition(bucket string) int {
	for i, b := range BucketKeys {
		if b == bucket {
			return i
		}
	}
	return len(BucketKeys) - 1
}

// Prior is the Beta(a,b) prior shipped alongside the counts so consumers can
// reproduce the shrunk rates.
type Prior struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// UniformPrior is Beta(1,1).
func UniformPrior() Prior {
	return Prior{A: 1, B: 1}
}

// BaselineCell is the cohort-wide count for one scope/phase/bucket cell.
type BaselineCell struct {
	N    int     `json:"n"`
	K    int     `json:"k"`
	Rate float64 `json:"rate"`
}

// GroupRow is one group's counts within a cohort: n trials contributed, and a
// k-vector of bucket hits ordered as BucketKeys.
type GroupRow struct {
	Group string `json:"group"`
	N     int    `json:"n"`
	K     []int  `json:"k"`
}

// Index is the complete enrichment payload. Shape and key names are frozen:
// downstream consumers address cells as baselines[scope][phase][bucket] and
// results[scope][group_by][phase].
type Index struct {
	GeneratedAtUTC string `json:"generated_at_utc"`
	Prior          Prior  `json:"prior"`

	Scopes   []string `json:"scopes"`
	GroupBys []string `json:"group_bys"`
	Phases   []string `json:"phases"`
	Buckets  []string `json:"buckets"`

	Baselines map[string]map[string]map[string]BaselineCell `json:"baselines"`

	BucketOrder []string `json:"bucket_order"`

	Results map[string]map[string]map[string][]GroupRow `json:"results"`

	Notes string `json:"notes"`
}

const indexNotes = "This file contains only aggregate counts (n and per-bucket k). " +
	"The outliers UI computes shrunk rates and rankings client-side using the included Beta(a,b) prior."
