package cucumber

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"ragbench/internal/dataset"
	"ragbench/internal/provider"
	"ragbench/internal/runner"
	"ragbench/internal/scoring"
	"ragbench/internal/spec"
)

// countingProvider is a deterministic in-memory provider that tracks
// how often it was called.
type countingProvider struct {
	name string

	mu         sync.Mutex
	ingests    int
	queries    int
	failIngest map[string]bool
}

func (p *countingProvider) Ingest(ctx context.Context, doc dataset.Document) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ingests++
	if p.failIngest[doc.ID] {
		return "", fmt.Errorf("%s rejected %s", p.name, doc.ID)
	}
	return "handle-" + doc.ID, nil
}

func (p *countingProvider) Query(ctx context.Context, question, handle string) (provider.Answer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queries++
	docID := strings.TrimPrefix(handle, "handle-")
	return provider.Answer{
		Text:    p.name + " answers " + question,
		Context: []string{"passage from " + docID},
	}, nil
}

func (p *countingProvider) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ingests + p.queries
}

// fixedScorer returns constant batch scores and tracks call counts.
type fixedScorer struct {
	mu    sync.Mutex
	calls int
}

func (s *fixedScorer) ScoreBatch(ctx context.Context, samples []scoring.Sample) (map[string]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return map[string]float64{
		"faithfulness":     0.9,
		"answer_relevancy": 0.8,
	}, nil
}

func (s *fixedScorer) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// aDatasetWithDocuments builds a two-document set with two questions each.
func (s *featureState) aDatasetWithDocuments(first, second string) error {
	set := &dataset.Set{
		Name:                "cucumber-fixture",
		QuestionsByDocument: map[string][]dataset.Question{},
	}
	for _, id := range []string{first, second} {
		set.Documents = append(set.Documents, dataset.Document{
			ID:    id,
			Title: "Document " + id,
			Text:  "body of " + id,
		})
		set.QuestionsByDocument[id] = []dataset.Question{
			{ID: id + "-q1", Text: "first question about " + id, Reference: "first reference"},
			{ID: id + "-q2", Text: "second question about " + id, Reference: "second reference"},
		}
	}
	s.set = set
	return nil
}

// configuredProviders registers two counting providers under the given names.
func (s *featureState) configuredProviders(first, second string) error {
	cfg := spec.Config{Version: 1}
	for _, name := range []string{first, second} {
		s.providers[name] = &countingProvider{name: name, failIngest: map[string]bool{}}
		cfg.Providers = append(cfg.Providers, spec.ProviderConfig{Name: name, Type: "fake"})
	}
	cfg.Execution = spec.ExecutionConfig{
		Workers:             4,
		ProviderConcurrency: 2,
		ScoringConcurrency:  2,
	}
	cfg.Evaluation = spec.EvaluationConfig{
		Metrics:       []string{"faithfulness", "answer_relevancy"},
		NaNPolicy:     "zero",
		ScoreAttempts: 3,
	}
	s.cfg = cfg
	return nil
}

func (s *featureState) providerFailsToIngest(name, docID string) error {
	p, ok := s.providers[name]
	if !ok {
		return fmt.Errorf("provider %q is not configured", name)
	}
	p.failIngest[docID] = true
	return nil
}

func (s *featureState) theBenchmarkRuns() error {
	return s.execute("")
}

// aCompletedRun runs the benchmark once and resets the call counters so
// the resumed run can be observed in isolation.
func (s *featureState) aCompletedRun() error {
	if err := s.execute(""); err != nil {
		return err
	}
	if s.runErr != nil {
		return fmt.Errorf("setup run failed: %w", s.runErr)
	}
	for _, p := range s.providers {
		p.mu.Lock()
		p.ingests = 0
		p.queries = 0
		p.mu.Unlock()
	}
	s.scorer.mu.Lock()
	s.scorer.calls = 0
	s.scorer.mu.Unlock()
	return nil
}

func (s *featureState) theRunIsResumed() error {
	if s.runID == "" {
		return fmt.Errorf("no prior run to resume")
	}
	return s.execute(s.runID)
}

func (s *featureState) execute(resumeID string) error {
	if s.set == nil {
		return fmt.Errorf("dataset is not configured")
	}
	if len(s.providers) == 0 {
		return fmt.Errorf("providers are not configured")
	}
	instances := make(map[string]provider.Provider, len(s.providers))
	for name, p := range s.providers {
		instances[name] = p
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	s.summary, s.runErr = runner.Run(ctx, s.cfg, runner.RunParams{
		Set:         s.set,
		ResumeRunID: resumeID,
		Deps: runner.RunDependencies{
			Providers: instances,
			Scorer:    s.scorer,
			Store:     s.kv,
		},
	})
	if s.runErr == nil {
		s.runID = s.summary.RunID
	}
	return nil
}
