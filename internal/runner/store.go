package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// KV is the slice of artifact storage the runner needs. The store
// package's backends satisfy it.
type KV interface {
	Put(ctx context.Context, key string, value []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Exists(ctx context.Context, key string) (bool, error)
}

// ResultStore owns the run's artifact layout and serialization. A
// single mutex serializes writes so concurrent task completions never
// interleave on the backend.
type ResultStore struct {
	mu sync.Mutex
	kv KV
}

func NewResultStore(kv KV) *ResultStore {
	return &ResultStore{kv: kv}
}

func taskResultKey(runID, docID, provider string) string {
	return fmt.Sprintf("runs/%s/docs/%s/%s.json", runID, docID, provider)
}

func documentResultKey(runID, docID string) string {
	return fmt.Sprintf("runs/%s/docs/%s/aggregated.json", runID, docID)
}

func runSummaryKey(runID string) string {
	return fmt.Sprintf("runs/%s/summary.json", runID)
}

// SaveProviderResult persists one task outcome immediately on
// completion, before any aggregation runs.
func (s *ResultStore) SaveProviderResult(ctx context.Context, runID string, result ProviderResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result %s/%s: %w", result.DocID, result.Provider, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Put(ctx, taskResultKey(runID, result.DocID, result.Provider), data)
}

// HasProviderResult reports whether a prior run already completed the
// task.
func (s *ResultStore) HasProviderResult(ctx context.Context, runID, docID, provider string) (bool, error) {
	return s.kv.Exists(ctx, taskResultKey(runID, docID, provider))
}

// LoadProviderResult reads a persisted task outcome.
func (s *ResultStore) LoadProviderResult(ctx context.Context, runID, docID, provider string) (ProviderResult, error) {
	data, err := s.kv.Get(ctx, taskResultKey(runID, docID, provider))
	if err != nil {
		return ProviderResult{}, err
	}
	var result ProviderResult
	if err := json.Unmarshal(data, &result); err != nil {
		return ProviderResult{}, fmt.Errorf("decode result %s/%s: %w", docID, provider, err)
	}
	return result, nil
}

// SaveDocumentResult persists the per-document aggregate.
func (s *ResultStore) SaveDocumentResult(ctx context.Context, runID string, result DocumentResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document %s: %w", result.DocID, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Put(ctx, documentResultKey(runID, result.DocID), data)
}

// SaveRunSummary persists the run-level summary.
func (s *ResultStore) SaveRunSummary(ctx context.Context, summary RunSummary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal run summary: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Put(ctx, runSummaryKey(summary.RunID), data)
}

// LoadRunSummary reads a persisted run summary.
func (s *ResultStore) LoadRunSummary(ctx context.Context, runID string) (RunSummary, error) {
	data, err := s.kv.Get(ctx, runSummaryKey(runID))
	if err != nil {
		return RunSummary{}, err
	}
	var summary RunSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return RunSummary{}, fmt.Errorf("decode run summary: %w", err)
	}
	return summary, nil
}
