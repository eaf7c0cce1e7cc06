package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"trialintel/domain/core"
	"trialintel/domain/enrich"
	"trialintel/domain/trial"
)

func enrichCorpus() []trial.Record {
	records := []trial.Record{}
	for i := 0; i < 8; i++ {
		r := trial.Record{
			NCTID:                "NCT0000000" + string(rune('1'+i)),
			Phases:               "PHASE2",
			LeadSponsor:          "Acme",
			ClassificationReason: "OPERATIONAL",
		}
		if i < 6 {
			r.ClassificationReason = "SAFETY"
		}
		records = append(records, r)
	}
	for i := 0; i < 12; i++ {
		records = append(records, trial.Record{
			NCTID:                "NCT0000010" + string(rune('a'+i)),
			Phases:               "PHASE2",
			LeadSponsor:          "Borealis",
			ClassificationReason: "OPERATIONAL",
		})
	}
	return records
}

func enrichTimestamp(t *testing.T) core.Timestamp {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, "2026-03-01T12:00:00Z")
	if err != nil {
		t.Fatal(err)
	}
	return core.NewTimestamp(ts)
}

func TestEnrichmentBuildIndex(t *testing.T) {
	svc := NewEnrichmentService(enrich.UniformPrior())

	idx := svc.BuildIndex(enrichCorpus(), enrichTimestamp(t))
	assert.Equal(t, "2026-03-01T12:00:00Z", idx.GeneratedAtUTC)
	assert.Equal(t, 20, idx.Baselines["all"]["phase2"]["SAFETY"].N)
	assert.Equal(t, 6, idx.Baselines["all"]["phase2"]["SAFETY"].K)
}

// TestRankGroups verifies the safety-heavy sponsor outranks the cohort and
// small groups are filtered by the sample-size floor.
func TestRankGroups(t *testing.T) {
	svc := NewEnrichmentService(enrich.UniformPrior())
	idx := svc.BuildIndex(enrichCorpus(), enrichTimestamp(t))

	ranked := svc.RankGroups(idx, "all", "company", "phase2", "SAFETY", 5)
	if len(ranked) != 2 {
		t.Fatalf("got %d ranked groups, want 2", len(ranked))
	}
	assert.Equal(t, "Acme", ranked[0].Group)
	assert.Equal(t, 8, ranked[0].N)
	assert.Equal(t, 6, ranked[0].K)
	assert.Greater(t, ranked[0].ProbAboveBaseline, ranked[1].ProbAboveBaseline, "ranking should be descending")

	// A floor above both group sizes filters everything.
	assert.Empty(t, svc.RankGroups(idx, "all", "company", "phase2", "SAFETY", 50))
}

func TestRankGroupsUnknownCell(t *testing.T) {
	svc := NewEnrichmentService(enrich.UniformPrior())
	idx := svc.BuildIndex(enrichCorpus(), enrichTimestamp(t))

	assert.Nil(t, svc.RankGroups(idx, "nope", "company", "phase2", "SAFETY", 1))
}
