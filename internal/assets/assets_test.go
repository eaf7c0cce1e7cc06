package assets

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"trialintel/domain/core"
	"trialintel/domain/enrich"
	"trialintel/domain/trial"
	"trialintel/internal/testkit"
)

func generatedAt(t *testing.T) core.Timestamp {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, "2026-03-01T12:00:00Z")
	if err != nil {
		t.Fatal(err)
	}
	return core.NewTimestamp(ts)
}

func TestBuildIndexRows(t *testing.T) {
	long := strings.Repeat("why stopped text ", 30)
	records := []trial.Record{{
		NCTID:             "NCT00000001",
		BriefTitle:        "Study One",
		WhyStopped:        long,
		Conditions:        "Lung Cancer; NSCLC",
		InterventionNames: "Compound X; Placebo",
		LeadSponsor:       "Acme",
	}}

	rows := BuildIndexRows(records)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	row := rows[0]
	if !strings.HasSuffix(row.WhyStoppedShort, "…") {
		t.Errorf("long why_stopped not truncated: %q", row.WhyStoppedShort)
	}
	if n := len([]rune(row.WhyStoppedShort)); n > whyStoppedShortMax+1 {
		t.Errorf("why_stopped_short is %d runes, cap is %d", n, whyStoppedShortMax+1)
	}
	if row.PrimaryCondition != "Lung Cancer" {
		t.Errorf("primary condition = %q", row.PrimaryCondition)
	}
	if row.PrimaryIntervention != "Compound X" {
		t.Errorf("primary intervention = %q", row.PrimaryIntervention)
	}
	if !strings.Contains(row.SearchBlob, "acme") {
		t.Errorf("search blob missing sponsor: %q", row.SearchBlob)
	}
}

func TestChunkKey(t *testing.T) {
	tests := []struct {
		id   string
		want int
	}{
		{"NCT00000007", 7},
		{"NCT12345670", 0},
		{"NCTABCDEFGX", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := ChunkKey(tt.id); got != tt.want {
			t.Errorf("ChunkKey(%q) = %d, want %d", tt.id, got, tt.want)
		}
	}
}

func TestChunkDetailsPartition(t *testing.T) {
	records := testkit.SyntheticRecords(7, 50)
	chunks := ChunkDetails(records)

	total := 0
	for i, chunk := range chunks {
		total += len(chunk)
		for _, r := range chunk {
			if ChunkKey(r.NCTID) != i {
				t.Errorf("record %s landed in chunk %d", r.NCTID, i)
			}
		}
	}
	if total != len(records) {
		t.Errorf("chunks hold %d records, want %d", total, len(records))
	}
}

func TestBuildMeta(t *testing.T) {
	records := []trial.Record{
		{NCTID: "NCT1", DiseaseArea: "Oncology", LeadSponsor: "Acme", LastUpdatePostDate: "2024-06-01",
			ClassificationLabel: "BIOLOGICAL_FAILURE", ClassificationConfidence: "HIGH"},
		{NCTID: "NCT2", DiseaseArea: "Oncology", LeadSponsor: "Acme", LastUpdatePostDate: "2025-01-15"},
		{NCTID: "NCT3", DiseaseArea: "", LeadSponsor: "", LastUpdatePostDate: "2023-12-31"},
	}

	meta := BuildMeta(records, generatedAt(t))

	if meta.RecordCount != 3 {
		t.Errorf("record count = %d, want 3", meta.RecordCount)
	}
	if meta.BioFailureCount != 1 {
		t.Errorf("bio failure count = %d, want 1", meta.BioFailureCount)
	}
	if meta.Version != "2025-01-15" || meta.MaxLastUpdate != "2025-01-15" {
		t.Errorf("version = %q, max last update = %q", meta.Version, meta.MaxLastUpdate)
	}
	if len(meta.TopDiseaseAreas) != 2 || meta.TopDiseaseAreas[0].Area != "Oncology" || meta.TopDiseaseAreas[0].Count != 2 {
		t.Errorf("unexpected top areas: %+v", meta.TopDiseaseAreas)
	}
	if meta.SponsorTrials.Sponsors != 2 {
		t.Errorf("sponsor count = %d, want 2", meta.SponsorTrials.Sponsors)
	}
	if meta.SponsorTrials.Mean != 1.5 {
		t.Errorf("sponsor mean = %f, want 1.5", meta.SponsorTrials.Mean)
	}
}

func TestRenderMethodology(t *testing.T) {
	html := string(RenderMethodology())
	if !strings.Contains(html, "<h1") || !strings.Contains(html, "Methodology") {
		t.Error("rendered page missing title heading")
	}
	if !strings.Contains(html, "BIOLOGICAL_FAILURE") {
		t.Error("rendered page missing classification description")
	}
	if !strings.HasPrefix(html, "<!doctype html>") {
		t.Error("rendered page is not a standalone document")
	}
}

func TestPublisherWritesAllAssets(t *testing.T) {
	dir := t.TempDir()
	records := testkit.SyntheticRecords(3, 20)
	idx := enrich.BuildIndex(nil, enrich.UniformPrior(), generatedAt(t))

	if err := NewPublisher(dir).Publish(records, idx, generatedAt(t)); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	wantFiles := []string{"trials_index.json", "meta.json", "enrichment_index.json", "methodology.html"}
	for i := 0; i < 10; i++ {
		wantFiles = append(wantFiles, "trials_details_"+string(rune('0'+i))+".json")
	}
	for _, name := range wantFiles {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("asset %s not written: %v", name, err)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "meta.json"))
	if err != nil {
		t.Fatal(err)
	}
	var meta Meta
	if err := json.Unmarshal(data, &meta); err != nil {
		t.Fatalf("meta.json does not parse: %v", err)
	}
	if meta.RecordCount != len(records) {
		t.Errorf("meta record count = %d, want %d", meta.RecordCount, len(records))
	}
}
