package app

import (
	"context"
	"log"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/semaphore"

	"trialintel/domain/classify"
	"trialintel/domain/core"
	"trialintel/domain/taxonomy"
	"trialintel/domain/trial"
	"trialintel/ports"
)

// RunManifest summarizes one pipeline run for logging and provenance.
type RunManifest struct {
	RunID        core.RunID      `json:"run_id"`
	StartedAt    core.Timestamp  `json:"started_at"`
	FinishedAt   core.Timestamp  `json:"finished_at"`
	CorpusHash   core.CorpusHash `json:"corpus_hash"`
	Fetched      int             `json:"fetched"`
	Kept         int             `json:"kept"`
	Overridden   int             `json:"overridden"`
	BioFailures  int             `json:"bio_failures"`
	UnclearCount int             `json:"unclear_count"`
}

// PipelineService runs the fetch-classify-override pipeline: pull stopped
// studies from the registry, keep interventional drug/biologic trials,
// classify each why-stopped text, then apply manual overrides.
type PipelineService struct {
	registry  ports.StudyRegistry
	overrides ports.OverrideSource
	engine    *classify.Engine
	areas     []taxonomy.Area
	workers   int64
}

// NewPipelineService creates a pipeline with the default engine and taxonomy.
func NewPipelineService(registry ports.StudyRegistry, overrides ports.OverrideSource) *PipelineService {
	return &PipelineService{
		registry:  registry,
		overrides: overrides,
		engine:    classify.NewDefaultEngine(),
		areas:     taxonomy.DefaultTaxonomy(),
		workers:   int64(runtime.NumCPU()),
	}
}

// Run executes the full pipeline and returns classified records sorted by
// descending last-update date (ties broken by NCT ID for determinism).
func (s *PipelineService) Run(ctx context.Context, q ports.RegistryQuery) ([]trial.Record, *RunManifest, error) {
	manifest := &RunManifest{
		RunID:     core.RunID(core.NewID()),
		StartedAt: core.Now(),
	}
	log.Printf("[Pipeline] Run %s started", manifest.RunID)

	// Fetch and filter. Dedup on NCT ID keeps the first (newest) copy, since
	// the registry scan is sorted by last-update descending.
	seen := map[string]bool{}
	var sourced []trial.Sourced
	err := s.registry.FetchStopped(ctx, q, func(t trial.Sourced) error {
		manifest.Fetched++
		if t.NCTID == "" || seen[t.NCTID] {
			return nil
		}
		if !t.IsInterventional() || !t.IsDrugOrBiologic() {
			return nil
		}
		seen[t.NCTID] = true
		sourced = append(sourced, t)
		return nil
	})
	if err != nil {
		return nil, manifest, err
	}
	manifest.Kept = len(sourced)
	log.Printf("[Pipeline] Kept %d of %d fetched studies", manifest.Kept, manifest.Fetched)

	records, err := s.classifyAll(ctx, sourced)
	if err != nil {
		return nil, manifest, err
	}

	overridden, err := s.applyOverrides(records)
	if err != nil {
		return nil, manifest, err
	}
	manifest.Overridden = overridden

	sort.Slice(records, func(i, j int) bool {
		if records[i].LastUpdatePostDate != records[j].LastUpdatePostDate {
			return records[i].LastUpdatePostDate > records[j].LastUpdatePostDate
		}
		return records[i].NCTID < records[j].NCTID
	})

	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.NCTID
		if r.IsBiologicalFailure() {
			manifest.BioFailures++
		}
		if r.ClassificationLabel == string(classify.LabelUnclear) {
			manifest.UnclearCount++
		}
	}
	manifest.CorpusHash = core.ComputeCorpusHash(ids)
	manifest.FinishedAt = core.Now()

	log.Printf("[Pipeline] Run %s finished: %d records, %d bio failures, %d unclear, %d overridden",
		manifest.RunID, len(records), manifest.BioFailures, manifest.UnclearCount, manifest.Overridden)
	return records, manifest, nil
}

// classifyAll classifies and tags every sourced trial with bounded
// parallelism. The engine is stateless, so workers share one instance.
func (s *PipelineService) classifyAll(ctx context.Context, sourced []trial.Sourced) ([]trial.Record, error) {
	records := make([]trial.Record, len(sourced))
	sem := semaphore.NewWeighted(s.workers)
	var wg sync.WaitGroup

	for i := range sourced {
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		wg.Add(1)
		go func(i int) {
			defer sem.Release(1)
			defer wg.Done()
			records[i] = s.classifyOne(sourced[i])
		}(i)
	}
	wg.Wait()
	return records, nil
}

func (s *PipelineService) classifyOne(t trial.Sourced) trial.Record {
	r := t.Record

	verdict := s.engine.ClassifyWithFallback(t.WhyStopped, t.BriefSummary, t.DetailedDescription)
	r.ApplyClassification(verdict)

	primary, matched := taxonomy.Assign(s.areas,
		strings.Split(r.Conditions, ";"), strings.Split(r.MeshTerms, ";"))
	r.DiseaseArea = primary
	r.DiseaseAreasMatched = matched

	return r
}

// applyOverrides replaces engine verdicts with curated ones, returning how
// many records were touched.
func (s *PipelineService) applyOverrides(records []trial.Record) (int, error) {
	if s.overrides == nil {
		return 0, nil
	}
	overrides, err := s.overrides.Load()
	if err != nil {
		return 0, err
	}
	if len(overrides) == 0 {
		return 0, nil
	}

	n := 0
	for i := range records {
		if c, ok := overrides[records[i].NCTID]; ok {
			records[i].ApplyClassification(c)
			n++
		}
	}
	return n, nil
}
