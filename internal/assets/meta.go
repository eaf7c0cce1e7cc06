package assets

import (
	"sort"

	"github.com/montanaflynn/stats"

	"trialintel/domain/core"
	"trialintel/domain/trial"
)

const topAreaCount = 10

// AreaCount is one disease area with its record count.
type AreaCount struct {
	Area  string `json:"area"`
	Count int    `json:"count"`
}

// SponsorDistribution summarizes how many trials each sponsor contributed.
type SponsorDistribution struct {
	Sponsors int     `json:"sponsors"`
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	P90      float64 `json:"p90"`
}

// Meta is the meta.json payload published next to the trial index.
type Meta struct {
	Version         string              `json:"version"`
	GeneratedAtUTC  string              `json:"generated_at_utc"`
	RecordCount     int                 `json:"record_count"`
	BioFailureCount int                 `json:"bio_failure_count"`
	MaxLastUpdate   string              `json:"max_last_update"`
	TopDiseaseAreas []AreaCount         `json:"top_disease_areas"`
	SponsorTrials   SponsorDistribution `json:"sponsor_trials"`
}

// BuildMeta derives the dataset metadata from the published records. Version
// is the newest last-update date in the corpus, so consumers can cache-bust
// on content rather than wall clock.
func BuildMeta(records []trial.Record, generatedAt core.Timestamp) Meta {
	m := Meta{
		GeneratedAtUTC: generatedAt.UTCString(),
		RecordCount:    len(records),
	}

	areaCounts := map[string]int{}
	sponsorCounts := map[string]int{}
	for _, r := range records {
		if r.LastUpdatePostDate > m.MaxLastUpdate {
			m.MaxLastUpdate = r.LastUpdatePostDate
		}
		if r.IsBiologicalFailure() {
			m.BioFailureCount++
		}
		area := r.DiseaseArea
		if area == "" {
			area = "Other"
		}
		areaCounts[area]++
		sponsor := r.LeadSponsor
		if sponsor == "" {
			sponsor = "Unknown"
		}
		sponsorCounts[sponsor]++
	}
	m.Version = m.MaxLastUpdate
	m.TopDiseaseAreas = topAreas(areaCounts, topAreaCount)
	m.SponsorTrials = sponsorDistribution(sponsorCounts)
	return m
}

// topAreas returns the n largest areas sorted by descending count then name.
func topAreas(counts map[string]int, n int) []AreaCount {
	out := make([]AreaCount, 0, len(counts))
	for area, count := range counts {
		out = append(out, AreaCount{Area: area, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Area < out[j].Area
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func sponsorDistribution(counts map[string]int) SponsorDistribution {
	if len(counts) == 0 {
		return SponsorDistribution{}
	}
	data := make(stats.Float64Data, 0, len(counts))
	for _, c := range counts {
		data = append(data, float64(c))
	}
	mean, _ := stats.Mean(data)
	median, _ := stats.Median(data)
	p90, _ := stats.Percentile(data, 90)
	return SponsorDistribution{
		Sponsors: len(counts),
		Mean:     mean,
		Median:   median,
		P90:      p90,
	}
}
