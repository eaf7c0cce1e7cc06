package app

import (
	"log"
	"sort"

	"trialintel/domain/core"
	"trialintel/domain/enrich"
	"trialintel/domain/trial"
)

// EnrichmentService folds classified records into the aggregate index the
// outliers view consumes.
type EnrichmentService struct {
	prior enrich.Prior
}

func NewEnrichmentService(prior enrich.Prior) *EnrichmentService {
	return &EnrichmentService{prior: prior}
}

// BuildIndex aggregates the corpus into the published enrichment payload.
func (s *EnrichmentService) BuildIndex(records []trial.Record, generatedAt core.Timestamp) *enrich.Index {
	observations := make([]enrich.Observation, 0, len(records))
	for _, r := range records {
		observations = append(observations, enrich.FromRecord(r))
	}
	idx := enrich.BuildIndex(observations, s.prior, generatedAt)
	log.Printf("[Enrichment] Built index over %d records (prior a=%.1f b=%.1f)",
		len(records), s.prior.A, s.prior.B)
	return idx
}

// RankedGroup is one group scored against its cohort baseline for a bucket.
type RankedGroup struct {
	Group             string  `json:"group"`
	N                 int     `json:"n"`
	K                 int     `json:"k"`
	PosteriorMean     float64 `json:"posterior_mean"`
	Low               float64 `json:"low"`
	High              float64 `json:"high"`
	ProbAboveBaseline float64 `json:"prob_above_baseline"`
}

// RankGroups scores every group in one (scope, groupBy, phase, bucket) cell
// against the cohort baseline and orders by descending probability of
// exceeding it. Groups below minN are skipped; the normal approximation is
// unusable at tiny sample sizes.
func (s *EnrichmentService) RankGroups(idx *enrich.Index, scope, groupBy, phase, bucket string, minN int) []RankedGroup {
	rows, ok := idx.Results[scope][groupBy][phase]
	if !ok {
		return nil
	}
	baseline, ok := idx.Baselines[scope][phase][bucket]
	if !ok {
		return nil
	}
	bi := enrich.BucketPosition(bucket)

	var out []RankedGroup
	for _, row := range rows {
		if row.N < minN || bi >= len(row.K) {
			continue
		}
		k := row.K[bi]
		post := enrich.Posterior(idx.Prior, row.N, k, baseline.Rate, enrich.DefaultCredibleZ)
		out = append(out, RankedGroup{
			Group:             row.Group,
			N:                 row.N,
			K:                 k,
			PosteriorMean:     post.Mean,
			Low:               post.Low,
			High:              post.High,
			ProbAboveBaseline: post.ProbAboveBaseline,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProbAboveBaseline != out[j].ProbAboveBaseline {
			return out[i].ProbAboveBaseline > out[j].ProbAboveBaseline
		}
		if out[i].N != out[j].N {
			return out[i].N > out[j].N
		}
		return out[i].Group < out[j].Group
	})
	return out
}
