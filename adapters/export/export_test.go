package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"trialintel/domain/trial"
)

func sampleRecords() []trial.Record {
	return []trial.Record{
		{
			NCTID:                    "NCT00000001",
			BriefTitle:               "Study One",
			OverallStatus:            "TERMINATED",
			WhyStopped:               "slow accrual, \"quoted\" text",
			ClassificationLabel:      "NON_BIOLOGICAL",
			ClassificationReason:     "OPERATIONAL",
			ClassificationConfidence: "HIGH",
			LeadSponsor:              "Acme",
			Phases:                   "PHASE2",
			LastUpdatePostDate:       "2024-01-01",
		},
		{
			NCTID:         "NCT00000002",
			BriefTitle:    "Study Two",
			OverallStatus: "WITHDRAWN",
		},
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trials.csv")
	if err := WriteCSV(path, sampleRecords()); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("written CSV does not parse: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header plus 2", len(rows))
	}
	if rows[0][0] != "nct_id" || rows[0][len(rows[0])-1] != "url" {
		t.Errorf("unexpected header boundaries: %v", rows[0])
	}
	if len(rows[0]) != len(csvColumns) {
		t.Errorf("header has %d columns, want %d", len(rows[0]), len(csvColumns))
	}
	if rows[1][0] != "NCT00000001" || rows[1][3] != "slow accrual, \"quoted\" text" {
		t.Errorf("unexpected first data row: %v", rows[1])
	}
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trials.json")
	if err := WriteJSON(path, sampleRecords()); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got []trial.Record
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("written JSON does not parse: %v", err)
	}
	if len(got) != 2 || got[0].NCTID != "NCT00000001" {
		t.Errorf("unexpected round trip: %+v", got)
	}
}

func TestWriteExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trials.xlsx")
	if err := WriteExcel(path, sampleRecords()); err != nil {
		t.Fatalf("WriteExcel failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("workbook not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("workbook is empty")
	}
}
