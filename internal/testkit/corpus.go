package testkit

import (
	"fmt"
	"math/rand"

	"trialintel/domain/trial"
)

// Deterministic synthetic corpus for pipeline and aggregator tests. Seeded
// rand keeps fixtures stable across runs without checked-in data files.

var syntheticSponsors = []string{
	"Acme Therapeutics", "Borealis Biosciences", "Cobalt Pharma",
	"Delta Oncology", "Evergreen Labs", "Unknown",
}

var syntheticAreas = []string{
	"Oncology", "Cardiovascular", "Neurology / CNS", "Infectious Disease", "Other",
}

var syntheticPhases = []string{
	"PHASE1", "PHASE2", "PHASE3", "PHASE1;PHASE2", "PHASE2;PHASE3", "EARLY_PHASE1", "",
}

var syntheticWhyStopped = []string{
	"Terminated due to unacceptable toxicity in the treatment arm.",
	"Study stopped for futility after interim analysis; primary endpoint not met.",
	"Terminated due to slow enrollment.",
	"Sponsor decision; funding withdrawn.",
	"Study placed on clinical hold by FDA.",
	"Terminated for business reasons, not due to any safety concern.",
	"Lack of efficacy.",
	"",
}

// SyntheticRecords generates n classified-looking trial records from a seed.
// Classification fields are left empty; callers run the real engine when they
// need verdicts, keeping fixtures honest.
func SyntheticRecords(seed int64, n int) []trial.Record {
	rng := rand.New(rand.NewSource(seed))
	records := make([]trial.Record, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, trial.Record{
			NCTID:              fmt.Sprintf("NCT%08d", 10000000+i),
			BriefTitle:         fmt.Sprintf("Synthetic Study %03d", i),
			OverallStatus:      pick(rng, []string{"TERMINATED", "WITHDRAWN", "SUSPENDED"}),
			WhyStopped:         pick(rng, syntheticWhyStopped),
			DiseaseArea:        pick(rng, syntheticAreas),
			StudyType:          "INTERVENTIONAL",
			Phases:             pick(rng, syntheticPhases),
			LeadSponsor:        pick(rng, syntheticSponsors),
			Conditions:         "Synthetic Condition",
			InterventionNames:  fmt.Sprintf("Compound-%d", rng.Intn(40)),
			InterventionTypes:  "DRUG",
			LastUpdatePostDate: fmt.Sprintf("20%02d-%02d-%02d", 15+rng.Intn(10), 1+rng.Intn(12), 1+rng.Intn(28)),
		})
	}
	return records
}

// SyntheticSourced wraps synthetic records with description text so the
// fallback miner has something to chew on.
func SyntheticSourced(seed int64, n int) []trial.Sourced {
	records := SyntheticRecords(seed, n)
	out := make([]trial.Sourced, 0, n)
	for i, r := range records {
		s := trial.Sourced{Record: r}
		if i%4 == 0 {
			s.BriefSummary = "This study was terminated early due to slow accrual."
		}
		out = append(out, s)
	}
	return out
}

func pick(rng *rand.Rand, options []string) string {
	return options[rng.Intn(len(options))]
}
