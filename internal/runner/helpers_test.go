package runner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ragbench/internal/dataset"
	"ragbench/internal/provider"
	"ragbench/internal/scoring"
)

// gauge tracks the peak number of concurrent holders.
type gauge struct {
	mu     sync.Mutex
	active int
	peak   int
}

func (g *gauge) enter() {
	g.mu.Lock()
	g.active++
	if g.active > g.peak {
		g.peak = g.active
	}
	g.mu.Unlock()
}

func (g *gauge) exit() {
	g.mu.Lock()
	g.active--
	g.mu.Unlock()
}

func (g *gauge) max() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.peak
}

// fakeProvider answers every question deterministically and records
// call counts. Failures and panics are keyed by document ID.
type fakeProvider struct {
	mu         sync.Mutex
	name       string
	ingests    int
	queries    int
	failIngest map[string]bool
	failQuery  map[string]bool
	panicOn    map[string]bool
	delay      time.Duration
	load       gauge
}

func (f *fakeProvider) Ingest(ctx context.Context, doc dataset.Document) (string, error) {
	f.load.enter()
	defer f.load.exit()
	f.mu.Lock()
	f.ingests++
	f.mu.Unlock()
	if f.panicOn[doc.ID] {
		panic("provider blew up on " + doc.ID)
	}
	if f.failIngest[doc.ID] {
		return "", fmt.Errorf("ingest rejected %s", doc.ID)
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return "handle-" + doc.ID, nil
}

func (f *fakeProvider) Query(ctx context.Context, question, handle string) (provider.Answer, error) {
	f.load.enter()
	defer f.load.exit()
	f.mu.Lock()
	f.queries++
	f.mu.Unlock()
	docID := handle[len("handle-"):]
	if f.failQuery[docID] {
		return provider.Answer{}, fmt.Errorf("query rejected for %s", docID)
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return provider.Answer{}, ctx.Err()
		}
	}
	return provider.Answer{
		Text:      f.name + " answer: " + question,
		Context:   []string{"excerpt from " + docID},
		LatencyMS: 1,
	}, nil
}

func (f *fakeProvider) callCounts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ingests, f.queries
}

// scriptedScorer returns canned outcomes per call: an error, a score
// map (possibly containing NaN), or the default scores.
type scriptedScorer struct {
	mu     sync.Mutex
	calls  int
	scores map[string]float64
	script []scorerStep
	delay  time.Duration
	load   gauge
}

type scorerStep struct {
	err    error
	scores map[string]float64
}

func (s *scriptedScorer) ScoreBatch(ctx context.Context, samples []scoring.Sample) (map[string]float64, error) {
	s.load.enter()
	defer s.load.exit()
	s.mu.Lock()
	call := s.calls
	s.calls++
	s.mu.Unlock()
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if call < len(s.script) {
		step := s.script[call]
		if step.err != nil {
			return nil, step.err
		}
		return copyScores(step.scores), nil
	}
	if s.scores == nil {
		return map[string]float64{"faithfulness": 0.9, "answer_relevancy": 0.8}, nil
	}
	return copyScores(s.scores), nil
}

func (s *scriptedScorer) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// eventRecorder collects observer events for assertions.
type eventRecorder struct {
	mu     sync.Mutex
	events []TaskEvent
}

func (r *eventRecorder) record(event TaskEvent) {
	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()
}

func (r *eventRecorder) ofType(eventType TaskEventType) []TaskEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []TaskEvent
	for _, event := range r.events {
		if event.Type == eventType {
			matched = append(matched, event)
		}
	}
	return matched
}

func testSet(docIDs ...string) *dataset.Set {
	set := &dataset.Set{
		Name:                "unit",
		QuestionsByDocument: make(map[string][]dataset.Question),
	}
	for i, id := range docIDs {
		set.Documents = append(set.Documents, dataset.Document{
			ID:    id,
			Title: "Doc " + id,
			Text:  fmt.Sprintf("contents of document %d", i+1),
		})
		set.QuestionsByDocument[id] = []dataset.Question{
			{ID: id + "-q1", Text: "What is in " + id + "?", Reference: "the contents"},
			{ID: id + "-q2", Text: "Summarize " + id, Reference: "a summary"},
		}
	}
	return set
}
