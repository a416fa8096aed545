package runner

import "sort"

// BuildDocumentResult folds all provider outcomes for one document
// into the per-document aggregate artifact.
func BuildDocumentResult(docID, title string, questionCount int, results []ProviderResult) DocumentResult {
	providers := make(map[string]ProviderSummary, len(results))
	for _, result := range results {
		providers[result.Provider] = ProviderSummary{
			Status:           result.Status,
			ErrorKind:        result.ErrorKind,
			AggregatedScores: result.AggregatedScores,
			DurationSeconds:  result.DurationSeconds,
		}
	}
	return DocumentResult{
		DocID:         docID,
		Title:         title,
		QuestionCount: questionCount,
		Providers:     providers,
	}
}

// AverageProviderScores computes each provider's unweighted mean per
// metric across the documents where it succeeded. Failed tasks do not
// contribute zeros; a provider that failed everywhere is absent.
func AverageProviderScores(documents []DocumentResult) map[string]map[string]float64 {
	sums := make(map[string]map[string]float64)
	counts := make(map[string]map[string]int)
	for _, doc := range documents {
		for provider, summary := range doc.Providers {
			if summary.Status != TaskSuccess {
				continue
			}
			if sums[provider] == nil {
				sums[provider] = make(map[string]float64)
				counts[provider] = make(map[string]int)
			}
			for metric, score := range summary.AggregatedScores {
				sums[provider][metric] += score
				counts[provider][metric]++
			}
		}
	}
	averages := make(map[string]map[string]float64, len(sums))
	for provider, metricSums := range sums {
		averages[provider] = make(map[string]float64, len(metricSums))
		for metric, sum := range metricSums {
			averages[provider][metric] = sum / float64(counts[provider][metric])
		}
	}
	return averages
}

// countFailures tallies failed tasks by error kind.
func countFailures(documents []DocumentResult) map[string]int {
	failures := make(map[string]int)
	for _, doc := range documents {
		for _, summary := range doc.Providers {
			if summary.Status == TaskError && summary.ErrorKind != "" {
				failures[string(summary.ErrorKind)]++
			}
		}
	}
	if len(failures) == 0 {
		return nil
	}
	return failures
}

// sortDocuments orders document aggregates by ID for stable output.
func sortDocuments(documents []DocumentResult) {
	sort.Slice(documents, func(i, j int) bool {
		return documents[i].DocID < documents[j].DocID
	})
}
