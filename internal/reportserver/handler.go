package reportserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"ragbench/internal/report"
	"ragbench/internal/runner"
)

// NewHandler builds the HTTP handler for the report UI and endpoints.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.ResultsDir == "" {
		return nil, errors.New("reportserver: results dir is required")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", serveIndex(cfg.ResultsDir))
	mux.HandleFunc("/runs/", serveRun(cfg.ResultsDir))
	mux.HandleFunc("/api/runs", serveRunList(cfg.ResultsDir))
	if cfg.DBPath != "" {
		mux.Handle("/data/db.duckdb", serveDatabase(cfg.DBPath))
	}
	return mux, nil
}

// serveIndex renders the report page for every finished run.
func serveIndex(resultsDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		runIDs, err := report.ListRunIDs(resultsDir)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		summaries := make([]runner.RunSummary, 0, len(runIDs))
		for _, runID := range runIDs {
			summary, err := report.ResolveRun(resultsDir, runID)
			if err != nil {
				continue
			}
			summaries = append(summaries, summary)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := report.ReportPage(summaries).Render(r.Context(), w); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

// serveRun renders a single run's report page.
func serveRun(resultsDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runID := strings.TrimPrefix(r.URL.Path, "/runs/")
		if runID == "" || strings.Contains(runID, "/") {
			http.NotFound(w, r)
			return
		}
		summary, err := report.ResolveRun(resultsDir, runID)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := report.ReportPage([]runner.RunSummary{summary}).Render(r.Context(), w); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

// serveRunList returns the known run IDs as JSON.
func serveRunList(resultsDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runIDs, err := report.ListRunIDs(resultsDir)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"runs": runIDs})
	}
}

// serveDatabase serves the DuckDB file for browser-side querying.
func serveDatabase(dbPath string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		http.ServeFile(w, r, dbPath)
	})
}
