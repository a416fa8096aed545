package cucumber

import (
	"context"
	"fmt"

	"ragbench/internal/runner"
)

func (s *featureState) theRunSucceeds() error {
	if s.runErr != nil {
		return fmt.Errorf("run failed: %w", s.runErr)
	}
	if s.summary.RunID == "" {
		return fmt.Errorf("summary has no run id")
	}
	return nil
}

func (s *featureState) theSummaryCountsTasks(total, succeeded, failed int) error {
	counts := s.summary.Tasks
	if counts.Total != total || counts.Succeeded != succeeded || counts.Failed != failed {
		return fmt.Errorf("got %d tasks with %d succeeded and %d failed, want %d/%d/%d",
			counts.Total, counts.Succeeded, counts.Failed, total, succeeded, failed)
	}
	return nil
}

// artifactExistsForEveryPair checks the persisted per-task results, not
// just the in-memory summary.
func (s *featureState) artifactExistsForEveryPair() error {
	results := runner.NewResultStore(s.kv)
	ctx := context.Background()
	for _, doc := range s.set.Documents {
		for name := range s.providers {
			ok, err := results.HasProviderResult(ctx, s.runID, doc.ID, name)
			if err != nil {
				return fmt.Errorf("check %s/%s: %w", doc.ID, name, err)
			}
			if !ok {
				return fmt.Errorf("no artifact for document %q and provider %q", doc.ID, name)
			}
		}
	}
	if _, err := results.LoadRunSummary(ctx, s.runID); err != nil {
		return fmt.Errorf("load run summary: %w", err)
	}
	return nil
}

func (s *featureState) providerAveragesIncludeMetric(metric string) error {
	if len(s.summary.ProviderAverages) == 0 {
		return fmt.Errorf("summary has no provider averages")
	}
	for name, averages := range s.summary.ProviderAverages {
		if _, ok := averages[metric]; !ok {
			return fmt.Errorf("provider %q is missing metric %q", name, metric)
		}
	}
	return nil
}

func (s *featureState) failureKindIsCounted(kind string, want int) error {
	got := s.summary.FailuresByKind[kind]
	if got != want {
		return fmt.Errorf("failure kind %q counted %d times, want %d", kind, got, want)
	}
	return nil
}

func (s *featureState) taskIsRecordedAs(docID, name, kind string) error {
	results := runner.NewResultStore(s.kv)
	result, err := results.LoadProviderResult(context.Background(), s.runID, docID, name)
	if err != nil {
		return fmt.Errorf("load %s/%s: %w", docID, name, err)
	}
	if result.Status != runner.TaskError {
		return fmt.Errorf("task %s/%s has status %q, want error", docID, name, result.Status)
	}
	if string(result.ErrorKind) != kind {
		return fmt.Errorf("task %s/%s has error kind %q, want %q", docID, name, result.ErrorKind, kind)
	}
	return nil
}

func (s *featureState) noProviderCallsAreMade() error {
	for name, p := range s.providers {
		if calls := p.calls(); calls != 0 {
			return fmt.Errorf("provider %q was called %d times", name, calls)
		}
	}
	if calls := s.scorer.callCount(); calls != 0 {
		return fmt.Errorf("scorer was called %d times", calls)
	}
	return nil
}
