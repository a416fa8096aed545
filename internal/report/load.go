package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"ragbench/internal/runner"
)

// LoadRunSummary reads a summary.json artifact.
func LoadRunSummary(path string) (runner.RunSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return runner.RunSummary{}, err
	}
	var summary runner.RunSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return runner.RunSummary{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return summary, nil
}

// ListRunIDs returns the run IDs with a summary under the results
// directory, newest first. Run IDs sort chronologically by
// construction.
func ListRunIDs(resultsDir string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(resultsDir, "runs"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var runIDs []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		summaryPath := filepath.Join(resultsDir, "runs", entry.Name(), "summary.json")
		if _, err := os.Stat(summaryPath); err == nil {
			runIDs = append(runIDs, entry.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(runIDs)))
	return runIDs, nil
}

// ResolveRun loads a run summary by ID, or the latest finished run
// when ref is empty or "latest".
func ResolveRun(resultsDir, ref string) (runner.RunSummary, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" || ref == "latest" {
		runIDs, err := ListRunIDs(resultsDir)
		if err != nil {
			return runner.RunSummary{}, err
		}
		if len(runIDs) == 0 {
			return runner.RunSummary{}, fmt.Errorf("no finished runs under %s", resultsDir)
		}
		ref = runIDs[0]
	}
	return LoadRunSummary(filepath.Join(resultsDir, "runs", ref, "summary.json"))
}
