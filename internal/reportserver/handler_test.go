package reportserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"ragbench/internal/runner"
	"ragbench/internal/testutil"
)

func fixtureResultsDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	summary := runner.RunSummary{
		RunID:     "20260101T000000Z-aaa",
		Dataset:   "papers",
		Providers: []string{"alpha"},
		Metrics:   []string{"faithfulness"},
		ProviderAverages: map[string]map[string]float64{
			"alpha": {"faithfulness": 0.9},
		},
	}
	data, err := json.Marshal(summary)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	testutil.WriteFile(t, dir, filepath.Join("runs", summary.RunID, "summary.json"), string(data))
	return dir
}

func TestHandlerIndex(t *testing.T) {
	handler, err := NewHandler(Config{ResultsDir: fixtureResultsDir(t)})
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "20260101T000000Z-aaa") || !strings.Contains(body, "alpha") {
		t.Errorf("body missing run content:\n%s", body)
	}
}

func TestHandlerSingleRun(t *testing.T) {
	handler, err := NewHandler(Config{ResultsDir: fixtureResultsDir(t)})
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs/20260101T000000Z-aaa", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "faithfulness") {
		t.Error("run page missing metrics")
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs/does-not-exist", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing run status = %d", rec.Code)
	}
}

func TestHandlerRunListAPI(t *testing.T) {
	handler, err := NewHandler(Config{ResultsDir: fixtureResultsDir(t)})
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var payload struct {
		Runs []string `json:"runs"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.Runs) != 1 || payload.Runs[0] != "20260101T000000Z-aaa" {
		t.Errorf("runs = %v", payload.Runs)
	}
}

func TestNewHandlerRequiresResultsDir(t *testing.T) {
	if _, err := NewHandler(Config{}); err == nil {
		t.Fatal("expected error")
	}
}
