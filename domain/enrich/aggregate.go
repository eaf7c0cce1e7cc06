package enrich

import (
	"sort"

	"trialintel/domain/core"
)

// Accumulator folds trial observations into per-group and cohort-wide counts.
// Increments are commutative and associative, so a corpus may be partitioned,
// folded per partition, and merged pairwise; the final counts are identical
// to a single-pass fold. Row sorting happens only in Build, after any merge.
type Accumulator struct {
	// groupN[scope][groupBy][phase][group] = trials contributed
	groupN map[string]map[string]map[string]map[string]int
	// groupK[scope][groupBy][phase][bucket][group] = bucket hits
	groupK map[string]map[string]map[string]map[string]map[string]int

	baselineN map[string]map[string]int
	baselineK map[string]map[string]map[string]int
}

// NewAccumulator initializes every known cell up front; the key universe is
// closed (scopes × group-bys × phases × buckets), only group values grow.
func NewAccumulator() *Accumulator {
	a := &Accumulator{
		groupN:    map[string]map[string]map[string]map[string]int{},
		groupK:    map[string]map[string]map[string]map[string]map[string]int{},
		baselineN: map[string]map[string]int{},
		baselineK: map[string]map[string]map[string]int{},
	}
	for _, scope := range ScopeKeys {
		a.groupN[scope] = map[string]map[string]map[string]int{}
		a.groupK[scope] = map[string]map[string]map[string]map[string]int{}
		for _, gb := range GroupByKeys {
			a.groupN[scope][gb] = map[string]map[string]int{}
			a.groupK[scope][gb] = map[string]map[string]map[string]int{}
			for _, pk := range PhaseKeys {
				a.groupN[scope][gb][pk] = map[string]int{}
				a.groupK[scope][gb][pk] = map[string]map[string]int{}
				for _, bk := range BucketKeys {
					a.groupK[scope][gb][pk][bk] = map[string]int{}
				}
			}
		}
		a.baselineN[scope] = map[string]int{}
		a.baselineK[scope] = map[string]map[string]int{}
		for _, pk := range PhaseKeys {
			a.baselineN[scope][pk] = 0
			a.baselineK[scope][pk] = map[string]int{}
			for _, bk := range BucketKeys {
				a.baselineK[scope][pk][bk] = 0
			}
		}
	}
	return a
}

// Add folds one observation into every cohort it belongs to.
func (a *Accumulator) Add(o Observation) {
	cohorts := append([]string{PhaseAll}, PhaseCohorts(o.Phases)...)
	bucket := NormalizeBucket(o.Reason, o.WhyStopped)
	company := o.company()
	area := o.area()
	isBio := o.IsBioFailure()

	for _, scope := range ScopeKeys {
		if scope == ScopeBio && !isBio {
			continue
		}
		for _, pk := range cohorts {
			a.baselineN[scope][pk]++
			a.baselineK[scope][pk][bucket]++

			a.groupN[scope][GroupByCompany][pk][company]++
			a.groupK[scope][GroupByCompany][pk][bucket][company]++

			a.groupN[scope][GroupByDiseaseArea][pk][area]++
			a.groupK[scope][GroupByDiseaseArea][pk][bucket][area]++
		}
	}
}

// Merge adds another accumulator's counts into this one. Merge order does not
// affect the result.
func (a *Accumulator) Merge(b *Accumulator) {
	for _, scope := range ScopeKeys {
		for _, pk := range PhaseKeys {
			a.baselineN[scope][pk] += b.baselineN[scope][pk]
			for _, bk := range BucketKeys {
				a.baselineK[scope][pk][bk] += b.baselineK[scope][pk][bk]
			}
			for _, gb := range GroupByKeys {
				for g, n := range b.groupN[scope][gb][pk] {
					a.groupN[scope][gb][pk][g] += n
				}
				for _, bk := range BucketKeys {
					for g, k := range b.groupK[scope][gb][pk][bk] {
						a.groupK[scope][gb][pk][bk][g] += k
					}
				}
			}
		}
	}
}

// Build materializes the immutable index payload: baseline rates, per-group
// rows with k-vectors in fixed bucket order, and rows sorted by descending n
// then ascending group name for stable diffs.
func (a *Accumulator) Build(prior Prior, generatedAt core.Timestamp) *Index {
	idx := &Index{
		GeneratedAtUTC: generatedAt.UTCString(),
		Prior:          prior,
		Scopes:         ScopeKeys,
		GroupBys:       GroupByKeys,
		Phases:         PhaseKeys,
		Buckets:        BucketKeys,
		Baselines:      map[string]map[string]map[string]BaselineCell{},
		BucketOrder:    BucketKeys,
		Results:        map[string]map[string]map[string][]GroupRow{},
		Notes:          indexNotes,
	}

	for _, scope := range ScopeKeys {
		idx.Baselines[scope] = map[string]map[string]BaselineCell{}
		idx.Results[scope] = map[string]map[string][]GroupRow{}
		for _, gb := range GroupByKeys {
			idx.Results[scope][gb] = map[string][]GroupRow{}
		}

		for _, pk := range PhaseKeys {
			n := a.baselineN[scope][pk]
			cells := map[string]BaselineCell{}
			for _, bk := range BucketKeys {
				k := a.baselineK[scope][pk][bk]
				rate := 0.0
				if n > 0 {
					rate = float64(k) / float64(n)
				}
				cells[bk] = BaselineCell{N: n, K: k, Rate: rate}
			}
			idx.Baselines[scope][pk] = cells

			for _, gb := range GroupByKeys {
				nMap := a.groupN[scope][gb][pk]
				rows := make([]GroupRow, 0, len(nMap))
				for g, gn := range nMap {
					ks := make([]int, len(BucketKeys))
					for i, bk := range BucketKeys {
						ks[i] = a.groupK[scope][gb][pk][bk][g]
					}
					rows = append(rows, GroupRow{Group: g, N: gn, K: ks})
				}
				sort.Slice(rows, func(i, j int) bool {
					if rows[i].N != rows[j].N {
						return rows[i].N > rows[j].N
					}
					return rows[i].Group < rows[j].Group
				})
				idx.Results[scope][gb][pk] = rows
			}
		}
	}
	return idx
}

// BuildIndex is the single-pass convenience fold over a full corpus.
func BuildIndex(observations []Observation, prior Prior, generatedAt core.Timestamp) *Index {
	acc := NewAccumulator()
	for _, o := range observations {
		acc.Add(o)
	}
	return acc.Build(prior, generatedAt)
}
