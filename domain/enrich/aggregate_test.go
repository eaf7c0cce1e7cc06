package enrich

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"trialintel/domain/core"
)

func fixedTime(t *testing.T) core.Timestamp {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, "2026-03-01T12:00:00Z")
	if err != nil {
		t.Fatal(err)
	}
	return core.NewTimestamp(ts)
}

// testCorpus builds 10 observations: 3 Acme phase2 SAFETY, plus filler from
// other sponsors and buckets.
func testCorpus() []Observation {
	obs := []Observation{
		{Phases: "PHASE2", Reason: "SAFETY", LeadSponsor: "Acme", DiseaseArea: "Oncology"},
		{Phases: "PHASE2", Reason: "SAFETY", LeadSponsor: "Acme", DiseaseArea: "Oncology"},
		{Phases: "PHASE2", Reason: "SAFETY", LeadSponsor: "Acme", DiseaseArea: "Cardiovascular"},
	}
	for i := 0; i < 4; i++ {
		obs = append(obs, Observation{
			Phases: "PHASE2", Reason: "OPERATIONAL",
			LeadSponsor: fmt.Sprintf("Filler %d", i), DiseaseArea: "Other",
		})
	}
	obs = append(obs,
		Observation{Phases: "PHASE1", Reason: "EFFICACY/FUTILITY", Label: "BIOLOGICAL_FAILURE", LeadSponsor: "Borealis", DiseaseArea: "Oncology"},
		Observation{Phases: "PHASE3", Reason: "REGULATORY", LeadSponsor: "Cobalt", DiseaseArea: "Neurology / CNS"},
		Observation{Phases: "", Reason: "", WhyStopped: "slow enrollment", LeadSponsor: "", DiseaseArea: ""},
	)
	return obs
}

// TestAcmeScenario pins the literal row shape for the Acme phase2 cell.
func TestAcmeScenario(t *testing.T) {
	idx := BuildIndex(testCorpus(), UniformPrior(), fixedTime(t))

	rows := idx.Results["all"]["company"]["phase2"]
	var acme *GroupRow
	for i := range rows {
		if rows[i].Group == "Acme" {
			acme = &rows[i]
		}
	}
	if acme == nil {
		t.Fatal("Acme row missing from results[all][company][phase2]")
	}
	if acme.N != 3 {
		t.Errorf("Acme n = %d, want 3", acme.N)
	}
	if want := []int{0, 3, 0, 0, 0}; !reflect.DeepEqual(acme.K, want) {
		t.Errorf("Acme k = %v, want %v", acme.K, want)
	}
}

// TestCountConservation verifies per-group counts sum to the baseline cell.
func TestCountConservation(t *testing.T) {
	idx := BuildIndex(testCorpus(), UniformPrior(), fixedTime(t))

	for _, scope := range ScopeKeys {
		for _, gb := range GroupByKeys {
			for _, pk := range PhaseKeys {
				rows := idx.Results[scope][gb][pk]
				baseline := idx.Baselines[scope][pk]

				sumN := 0
				sumK := make([]int, len(BucketKeys))
				for _, row := range rows {
					sumN += row.N
					for i, k := range row.K {
						sumK[i] += k
					}
				}

				var baselineN int
				for _, bk := range BucketKeys {
					baselineN = baseline[bk].N
					break
				}
				if sumN != baselineN {
					t.Errorf("%s/%s/%s: sum n = %d, baseline n = %d", scope, gb, pk, sumN, baselineN)
				}
				for i, bk := range BucketKeys {
					if sumK[i] != baseline[bk].K {
						t.Errorf("%s/%s/%s/%s: sum k = %d, baseline k = %d", scope, gb, pk, bk, sumK[i], baseline[bk].K)
					}
				}
			}
		}
	}
}

// TestPartitionMergeDeterminism verifies partitioned folds merge to the
// bit-identical single-pass payload regardless of split point.
func TestPartitionMergeDeterminism(t *testing.T) {
	corpus := testCorpus()
	single := BuildIndex(corpus, UniformPrior(), fixedTime(t))

	for split := 0; split <= len(corpus); split++ {
		left, right := NewAccumulator(), NewAccumulator()
		for _, o := range corpus[:split] {
			left.Add(o)
		}
		for _, o := range corpus[split:] {
			right.Add(o)
		}
		left.Merge(right)
		merged := left.Build(UniformPrior(), fixedTime(t))

		if !reflect.DeepEqual(single, merged) {
			t.Errorf("split at %d diverged from single-pass result", split)
		}
	}
}

// TestBioScopeFiltering verifies only biological failures reach the bio scope.
func TestBioScopeFiltering(t *testing.T) {
	idx := BuildIndex(testCorpus(), UniformPrior(), fixedTime(t))

	bioRows := idx.Results["bio"]["company"]["all"]
	if len(bioRows) != 1 || bioRows[0].Group != "Borealis" {
		t.Errorf("bio scope rows = %+v, want single Borealis row", bioRows)
	}
	if n := idx.Baselines["bio"]["all"]["EFFICACY/FUTILITY"].N; n != 1 {
		t.Errorf("bio baseline n = %d, want 1", n)
	}
}

// TestRowOrdering verifies descending n with ascending name tie-break.
func TestRowOrdering(t *testing.T) {
	idx := BuildIndex(testCorpus(), UniformPrior(), fixedTime(t))

	rows := idx.Results["all"]["company"]["all"]
	for i := 1; i < len(rows); i++ {
		prev, cur := rows[i-1], rows[i]
		if cur.N > prev.N || (cur.N == prev.N && cur.Group < prev.Group) {
			t.Errorf("rows out of order at %d: %+v before %+v", i, prev, cur)
		}
	}
	if rows[0].Group != "Acme" || rows[0].N != 3 {
		t.Errorf("top row = %+v, want Acme with n=3", rows[0])
	}
}

func TestObservationDefaults(t *testing.T) {
	o := Observation{Phases: "", Reason: "", WhyStopped: "terminated due to slow enrollment"}
	if got := o.company(); got != "Unknown" {
		t.Errorf("blank sponsor maps to %q, want Unknown", got)
	}
	if got := o.area(); got != "Other" {
		t.Errorf("blank area maps to %q, want Other", got)
	}
	if got := NormalizeBucket(o.Reason, o.WhyStopped); got != "OTHER/UNKNOWN" {
		t.Errorf("enrollment text bucketed as %q, want OTHER/UNKNOWN", got)
	}
}

func TestNormalizeBucket(t *testing.T) {
	tests := []struct {
		reason     string
		whyStopped string
		want       string
	}{
		{"SAFETY", "", "SAFETY"},
		{"safety", "", "SAFETY"},
		{"ENROLLMENT", "", "OTHER/UNKNOWN"},
		{"NONSENSE", "", "OTHER/UNKNOWN"},
		{"", "stopped for futility", "EFFICACY/FUTILITY"},
		{"", "toxicity observed", "SAFETY"},
		{"", "fda request", "REGULATORY"},
		{"", "drug supply problems", "OPERATIONAL"},
		{"", "slow recruitment", "OTHER/UNKNOWN"},
		{"", "", "OTHER/UNKNOWN"},
	}
	for _, tt := range tests {
		if got := NormalizeBucket(tt.reason, tt.whyStopped); got != tt.want {
			t.Errorf("NormalizeBucket(%q, %q) = %q, want %q", tt.reason, tt.whyStopped, got, tt.want)
		}
	}
}

func TestPhaseCohorts(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"PHASE2", []string{"phase2"}},
		{"PHASE1;PHASE2", []string{"phase1", "phase2"}},
		{"EARLY_PHASE1", []string{"phase1"}},
		{"phase3", []string{"phase3"}},
		{"NA", nil},
		{"", nil},
	}
	for _, tt := range tests {
		got := PhaseCohorts(tt.raw)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("PhaseCohorts(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
