package runner

import (
	"context"
	"fmt"
	"time"

	"ragbench/internal/permit"
	"ragbench/internal/provider"
	"ragbench/internal/scoring"
)

// taskDeps bundles everything executeTask needs for one task.
type taskDeps struct {
	runID         string
	provider      provider.Provider
	scorer        scoring.Scorer
	providerSem   *permit.Semaphore
	scoringSem    *permit.Semaphore
	nanPolicy     scoring.NaNPolicy
	attempts      int
	retryDelay    time.Duration
	ingestTimeout time.Duration
	queryTimeout  time.Duration
	scoreTimeout  time.Duration
	now           func() time.Time
	observe       func(TaskEvent)
}

// executeTask runs ingest, query and score for a single task. The
// provider permit is held for the whole task; the scoring permit is
// held across the entire retry loop. Failures never propagate as
// errors, they become error results.
func executeTask(ctx context.Context, task Task, deps taskDeps) ProviderResult {
	start := deps.now()
	event := func(eventType TaskEventType) TaskEvent {
		return TaskEvent{
			RunID:     deps.runID,
			DocID:     task.Document.ID,
			Provider:  task.Provider,
			Type:      eventType,
			EmittedAt: deps.now(),
		}
	}
	var (
		questions []QuestionResult
		handle    string
	)
	fail := func(kind ErrorKind, err error) ProviderResult {
		end := deps.now()
		failedEvent := event(TaskFailed)
		failedEvent.ErrorKind = kind
		failedEvent.Error = err.Error()
		deps.observe(failedEvent)
		return ProviderResult{
			Provider:        task.Provider,
			DocID:           task.Document.ID,
			Status:          TaskError,
			ErrorKind:       kind,
			Error:           err.Error(),
			IngestionHandle: handle,
			Questions:       questions,
			TimestampStart:  start,
			TimestampEnd:    end,
			DurationSeconds: end.Sub(start).Seconds(),
		}
	}

	if err := deps.providerSem.Acquire(ctx); err != nil {
		return fail(ErrKindThread, fmt.Errorf("acquire provider permit: %w", err))
	}
	defer deps.providerSem.Release()

	deps.observe(event(TaskIngesting))
	ingestCtx, cancelIngest := withTimeout(ctx, deps.ingestTimeout)
	ingested, err := deps.provider.Ingest(ingestCtx, task.Document)
	cancelIngest()
	if err != nil {
		return fail(ErrKindIngest, fmt.Errorf("ingest %s: %w", task.Document.ID, err))
	}
	handle = ingested

	samples := make([]scoring.Sample, 0, len(task.Questions))
	for index, question := range task.Questions {
		queryEvent := event(TaskQuerying)
		queryEvent.QuestionIndex = index + 1
		queryEvent.QuestionTotal = len(task.Questions)
		deps.observe(queryEvent)

		queryCtx, cancelQuery := withTimeout(ctx, deps.queryTimeout)
		answer, err := deps.provider.Query(queryCtx, question.Text, handle)
		cancelQuery()
		if err != nil {
			return fail(ErrKindQuery, fmt.Errorf("query %s: %w", question.ID, err))
		}
		questions = append(questions, QuestionResult{
			QuestionID: question.ID,
			Question:   question.Text,
			Answer:     answer.Text,
			Reference:  question.Reference,
			Context:    answer.Context,
			LatencyMS:  answer.LatencyMS,
		})
		samples = append(samples, scoring.Sample{
			Question:  question.Text,
			Reference: question.Reference,
			Context:   answer.Context,
			Answer:    answer.Text,
		})
	}

	if err := deps.scoringSem.Acquire(ctx); err != nil {
		return fail(ErrKindThread, fmt.Errorf("acquire scoring permit: %w", err))
	}
	defer deps.scoringSem.Release()

	scores, err := scoreWithRetries(ctx, samples, deps, event)
	if err != nil {
		return fail(ErrKindScore, err)
	}

	end := deps.now()
	duration := end.Sub(start).Seconds()
	aggregated := make(map[string]float64, len(scores)+1)
	for metric, score := range scores {
		aggregated[metric] = score
	}
	aggregated["duration_seconds"] = duration

	// Scoring is batch-level; each question carries its own copy of
	// the batch scores so per-question records stand alone.
	for index := range questions {
		questions[index].Scores = copyScores(scores)
	}

	deps.observe(event(TaskSucceeded))
	return ProviderResult{
		Provider:         task.Provider,
		DocID:            task.Document.ID,
		Status:           TaskSuccess,
		IngestionHandle:  handle,
		Questions:        questions,
		EvaluationScores: scores,
		AggregatedScores: aggregated,
		TimestampStart:   start,
		TimestampEnd:     end,
		DurationSeconds:  duration,
	}
}

func copyScores(scores map[string]float64) map[string]float64 {
	if scores == nil {
		return nil
	}
	out := make(map[string]float64, len(scores))
	for metric, score := range scores {
		out[metric] = score
	}
	return out
}

// withTimeout applies a per-call timeout when one is configured; a
// zero or negative timeout means unbounded.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// scoreWithRetries calls the scorer up to deps.attempts times. Errors
// and undefined metric values both consume attempts; on the final
// attempt remaining NaN values are resolved by the configured policy.
func scoreWithRetries(ctx context.Context, samples []scoring.Sample, deps taskDeps, event func(TaskEventType) TaskEvent) (map[string]float64, error) {
	attempts := deps.attempts
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		scoringEvent := event(TaskScoring)
		scoringEvent.Attempt = attempt
		deps.observe(scoringEvent)

		scoreCtx, cancel := withTimeout(ctx, deps.scoreTimeout)
		scores, err := deps.scorer.ScoreBatch(scoreCtx, samples)
		cancel()
		if err != nil {
			lastErr = err
			if attempt == attempts {
				break
			}
			if err := waitRetry(ctx, deps, event, attempt); err != nil {
				return nil, err
			}
			continue
		}
		if scoring.HasNaN(scores) && attempt < attempts {
			lastErr = fmt.Errorf("scorer returned undefined metric values")
			if err := waitRetry(ctx, deps, event, attempt); err != nil {
				return nil, err
			}
			continue
		}
		return scoring.ApplyNaNPolicy(scores, deps.nanPolicy)
	}
	return nil, fmt.Errorf("scoring failed after %d attempts: %w", attempts, lastErr)
}

func waitRetry(ctx context.Context, deps taskDeps, event func(TaskEventType) TaskEvent, attempt int) error {
	retryEvent := event(TaskRetryingScore)
	retryEvent.Attempt = attempt
	deps.observe(retryEvent)
	if deps.retryDelay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(deps.retryDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
