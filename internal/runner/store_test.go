package runner

import (
	"errors"
	"testing"
	"time"

	"ragbench/internal/store"
	"ragbench/internal/testutil"
)

func TestResultStoreRoundTrip(t *testing.T) {
	kv := store.NewMemoryStore()
	results := NewResultStore(kv)
	ctx := testutil.Context(t, 0)

	original := ProviderResult{
		Provider:         "alpha",
		DocID:            "d1",
		Status:           TaskSuccess,
		Questions:        []QuestionResult{{QuestionID: "d1-q1", Question: "?", Answer: "!"}},
		EvaluationScores: map[string]float64{"faithfulness": 0.9},
		AggregatedScores: map[string]float64{"faithfulness": 0.9, "duration_seconds": 1.25},
		TimestampStart:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		TimestampEnd:     time.Date(2026, 1, 2, 3, 4, 6, 0, time.UTC),
		DurationSeconds:  1.25,
	}
	if err := results.SaveProviderResult(ctx, "r1", original); err != nil {
		t.Fatalf("save: %v", err)
	}

	ok, err := results.HasProviderResult(ctx, "r1", "d1", "alpha")
	if err != nil || !ok {
		t.Fatalf("Has = %v, %v", ok, err)
	}
	loaded, err := results.LoadProviderResult(ctx, "r1", "d1", "alpha")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.AggregatedScores["duration_seconds"] != 1.25 {
		t.Errorf("loaded = %+v", loaded)
	}
	if !loaded.TimestampStart.Equal(original.TimestampStart) {
		t.Errorf("timestamp = %v", loaded.TimestampStart)
	}
}

func TestResultStoreKeyLayout(t *testing.T) {
	kv := store.NewMemoryStore()
	results := NewResultStore(kv)
	ctx := testutil.Context(t, 0)

	if err := results.SaveProviderResult(ctx, "r1", ProviderResult{Provider: "alpha", DocID: "d1"}); err != nil {
		t.Fatalf("save provider: %v", err)
	}
	if err := results.SaveDocumentResult(ctx, "r1", DocumentResult{DocID: "d1"}); err != nil {
		t.Fatalf("save document: %v", err)
	}
	if err := results.SaveRunSummary(ctx, RunSummary{RunID: "r1"}); err != nil {
		t.Fatalf("save summary: %v", err)
	}

	for _, key := range []string{
		"runs/r1/docs/d1/alpha.json",
		"runs/r1/docs/d1/aggregated.json",
		"runs/r1/summary.json",
	} {
		ok, err := kv.Exists(ctx, key)
		if err != nil || !ok {
			t.Errorf("key %s missing (%v)", key, err)
		}
	}
}

func TestResultStoreLoadMissing(t *testing.T) {
	results := NewResultStore(store.NewMemoryStore())
	ctx := testutil.Context(t, 0)

	if _, err := results.LoadProviderResult(ctx, "r1", "d1", "alpha"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v", err)
	}
	if _, err := results.LoadRunSummary(ctx, "r1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v", err)
	}
}
