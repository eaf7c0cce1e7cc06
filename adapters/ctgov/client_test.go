package ctgov

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"trialintel/domain/trial"
	"trialintel/ports"
)

func studyJSON(nctID, status string) map[string]any {
	return map[string]any{
		"protocolSection": map[string]any{
			"identificationModule": map[string]any{"nctId": nctID, "briefTitle": "Study " + nctID},
			"statusModule": map[string]any{
				"overallStatus":            status,
				"whyStopped":               "slow accrual",
				"lastUpdatePostDateStruct": map[string]any{"date": "2025-06-01"},
			},
			"designModule": map[string]any{"studyType": "INTERVENTIONAL", "phases": []string{"PHASE2"}},
		},
	}
}

func TestFetchStoppedPagination(t *testing.T) {
	var tokens []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		tokens = append(tokens, q.Get("pageToken"))

		if got := q.Get("filter.overallStatus"); got != "TERMINATED,SUSPENDED,WITHDRAWN" {
			t.Errorf("unexpected status filter: %q", got)
		}
		if got := q.Get("query.term"); got != "AREA[LastUpdatePostDate]RANGE[2020-01-01,MAX]" {
			t.Errorf("unexpected query.term: %q", got)
		}

		resp := map[string]any{"totalCount": 3}
		if q.Get("pageToken") == "" {
			resp["studies"] = []any{studyJSON("NCT00000001", "TERMINATED"), studyJSON("NCT00000002", "WITHDRAWN")}
			resp["nextPageToken"] = "page2"
		} else {
			resp["studies"] = []any{studyJSON("NCT00000003", "SUSPENDED")}
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, PageSize: 2, Sleep: 1})

	var seen []string
	err := client.FetchStopped(context.Background(), ports.RegistryQuery{LastUpdateFrom: "2020-01-01"}, func(s trial.Sourced) error {
		seen = append(seen, s.NCTID)
		return nil
	})
	if err != nil {
		t.Fatalf("FetchStopped failed: %v", err)
	}

	if len(seen) != 3 {
		t.Fatalf("visited %d studies, want 3: %v", len(seen), seen)
	}
	if len(tokens) != 2 || tokens[0] != "" || tokens[1] != "page2" {
		t.Errorf("unexpected page token sequence: %v", tokens)
	}
}

func TestFetchStoppedRespectsCap(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"studies":       []any{studyJSON("NCT00000001", "TERMINATED"), studyJSON("NCT00000002", "TERMINATED")},
			"nextPageToken": "more",
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Sleep: 1})

	count := 0
	err := client.FetchStopped(context.Background(), ports.RegistryQuery{MaxStudies: 2}, func(trial.Sourced) error {
		count++
		return nil
	})
	if err != nil {
		t.Fatalf("FetchStopped failed: %v", err)
	}
	if count != 2 {
		t.Errorf("visited %d studies, cap was 2", count)
	}
}

func TestFetchPageRetriesTransientErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"studies": []any{studyJSON("NCT00000009", "TERMINATED")}})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Sleep: 1, HTTPClient: server.Client()})
	client.backoff = time.Millisecond

	page, err := client.fetchPage(context.Background(), "2020-01-01", "")
	if err != nil {
		t.Fatalf("fetchPage failed after retries: %v", err)
	}
	if attempts != 3 {
		t.Errorf("made %d attempts, want 3", attempts)
	}
	if len(page.Studies) != 1 {
		t.Errorf("got %d studies, want 1", len(page.Studies))
	}
}

func TestFetchPageFailsFastOnClientError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Sleep: 1})
	if _, err := client.fetchPage(context.Background(), "2020-01-01", ""); err == nil {
		t.Fatal("expected error on 400 response")
	}
}
