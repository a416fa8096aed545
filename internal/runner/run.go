package runner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ragbench/internal/dataset"
	"ragbench/internal/permit"
	"ragbench/internal/provider"
	"ragbench/internal/scoring"
	"ragbench/internal/spec"
)

// RunDependencies injects the external capabilities of a run.
// Providers is keyed by configured provider name.
type RunDependencies struct {
	Providers map[string]provider.Provider
	Scorer    scoring.Scorer
	Store     KV
	RunID     func() (string, error)
	Now       func() time.Time
	Observer  RunObserver
}

// RunParams configures a run invocation.
type RunParams struct {
	Set *dataset.Set
	// ResumeRunID reuses a prior run's artifacts: tasks whose result
	// already exists are not re-executed.
	ResumeRunID string
	Deps        RunDependencies
}

// Run executes the full benchmark: plans the (provider, document)
// cross product, runs tasks under bounded concurrency, persists each
// outcome as it completes, aggregates per document and finally writes
// the run summary. Task failures are isolated; Run itself only fails
// on planning or persistence errors.
func Run(ctx context.Context, cfg spec.Config, params RunParams) (RunSummary, error) {
	deps := params.Deps
	if deps.Scorer == nil {
		return RunSummary{}, fmt.Errorf("scorer is required")
	}
	if deps.Store == nil {
		return RunSummary{}, fmt.Errorf("result store is required")
	}
	for _, name := range cfg.ProviderNames() {
		if _, ok := deps.Providers[name]; !ok {
			return RunSummary{}, fmt.Errorf("no provider instance for %q", name)
		}
	}
	observer := deps.Observer
	if observer == nil {
		observer = nopObserver{}
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	runID := params.ResumeRunID
	if runID == "" {
		newRunID := deps.RunID
		if newRunID == nil {
			newRunID = NewRunID
		}
		var err error
		if runID, err = newRunID(); err != nil {
			return RunSummary{}, err
		}
	}
	startedAt := now()

	tasks, err := GenerateTasks(params.Set, cfg.ProviderNames())
	if err != nil {
		return RunSummary{}, err
	}
	results := NewResultStore(deps.Store)

	pending := tasks
	var resumed []resumedTask
	if params.ResumeRunID != "" {
		pending, resumed, err = partitionResume(ctx, results, runID, tasks)
		if err != nil {
			return RunSummary{}, err
		}
	}

	ledger := NewLedger()
	for _, task := range tasks {
		if err := ledger.Register(task.Key()); err != nil {
			return RunSummary{}, err
		}
	}
	observer.OnRunStart(runID, len(tasks))
	for _, task := range pending {
		observer.OnTaskEvent(TaskEvent{
			RunID:     runID,
			DocID:     task.Document.ID,
			Provider:  task.Provider,
			Type:      TaskQueued,
			EmittedAt: now(),
		})
	}
	for _, item := range resumed {
		observer.OnTaskEvent(TaskEvent{
			RunID:     runID,
			DocID:     item.task.Document.ID,
			Provider:  item.task.Provider,
			Type:      TaskResumed,
			EmittedAt: now(),
		})
		ledger.Resolve(item.task.Key(), item.result)
	}

	providerSems := make(map[string]*permit.Semaphore, len(cfg.Providers))
	for _, name := range cfg.ProviderNames() {
		providerSems[name] = permit.New(cfg.Execution.ProviderConcurrency)
	}
	scoringSem := permit.New(cfg.Execution.ScoringConcurrency)

	var persistence runErrors
	documents := make([]DocumentResult, 0, len(params.Set.Documents))
	var docMu sync.Mutex
	var docWG sync.WaitGroup
	for _, doc := range params.Set.Documents {
		docWG.Add(1)
		go func(doc dataset.Document) {
			defer docWG.Done()
			resultsByProvider := make([]ProviderResult, 0, len(cfg.Providers))
			for _, name := range cfg.ProviderNames() {
				result, err := ledger.Await(ctx, taskKey(doc.ID, name))
				if err != nil {
					persistence.record(fmt.Errorf("await %s/%s: %w", doc.ID, name, err))
					return
				}
				resultsByProvider = append(resultsByProvider, result)
			}
			docResult := BuildDocumentResult(doc.ID, doc.Title, len(params.Set.QuestionsByDocument[doc.ID]), resultsByProvider)
			if err := results.SaveDocumentResult(ctx, runID, docResult); err != nil {
				persistence.record(err)
			}
			observer.OnDocumentEnd(docResult)
			docMu.Lock()
			documents = append(documents, docResult)
			docMu.Unlock()
		}(doc)
	}

	taskDepsFor := func(task Task) taskDeps {
		return taskDeps{
			runID:         runID,
			provider:      deps.Providers[task.Provider],
			scorer:        deps.Scorer,
			providerSem:   providerSems[task.Provider],
			scoringSem:    scoringSem,
			nanPolicy:     scoring.NaNPolicy(cfg.Evaluation.NaNPolicy),
			attempts:      cfg.Evaluation.ScoreAttempts,
			retryDelay:    time.Duration(cfg.Evaluation.ScoreRetryDelaySeconds) * time.Second,
			ingestTimeout: time.Duration(cfg.Execution.IngestTimeoutSeconds) * time.Second,
			queryTimeout:  time.Duration(cfg.Execution.QueryTimeoutSeconds) * time.Second,
			scoreTimeout:  time.Duration(cfg.Execution.ScoreTimeoutSeconds) * time.Second,
			now:           now,
			observe:       observer.OnTaskEvent,
		}
	}
	schedule(ctx, pending, cfg.Execution.Workers, taskDepsFor, func(task Task, result ProviderResult) {
		if err := results.SaveProviderResult(ctx, runID, result); err != nil {
			persistence.record(err)
		}
		ledger.Resolve(task.Key(), result)
	})
	docWG.Wait()

	sortDocuments(documents)
	finishedAt := now()
	summary := RunSummary{
		RunID:            runID,
		Dataset:          params.Set.Name,
		Config:           cfg,
		NumDocuments:     len(documents),
		TotalQuestions:   params.Set.TotalQuestions(),
		Providers:        cfg.ProviderNames(),
		Metrics:          cfg.Evaluation.Metrics,
		StartedAt:        startedAt,
		FinishedAt:       finishedAt,
		DurationSeconds:  finishedAt.Sub(startedAt).Seconds(),
		Tasks:            countTasks(documents, len(resumed)),
		FailuresByKind:   countFailures(documents),
		ProviderAverages: AverageProviderScores(documents),
		Documents:        documents,
	}
	if err := results.SaveRunSummary(ctx, summary); err != nil {
		persistence.record(err)
	}
	observer.OnRunEnd(summary)
	return summary, persistence.first()
}

type resumedTask struct {
	task   Task
	result ProviderResult
}

// partitionResume splits tasks into pending and already-completed. A
// prior artifact that exists but cannot be decoded is treated as
// absent, so the task runs again instead of poisoning the run.
func partitionResume(ctx context.Context, results *ResultStore, runID string, tasks []Task) ([]Task, []resumedTask, error) {
	pending, completed, err := FilterResume(ctx, tasks, func(ctx context.Context, task Task) (bool, error) {
		return results.HasProviderResult(ctx, runID, task.Document.ID, task.Provider)
	})
	if err != nil {
		return nil, nil, err
	}
	resumed := make([]resumedTask, 0, len(completed))
	for _, task := range completed {
		result, err := results.LoadProviderResult(ctx, runID, task.Document.ID, task.Provider)
		if err != nil {
			pending = append(pending, task)
			continue
		}
		result.Resumed = true
		resumed = append(resumed, resumedTask{task: task, result: result})
	}
	return pending, resumed, nil
}

func countTasks(documents []DocumentResult, resumed int) TaskCounts {
	counts := TaskCounts{Resumed: resumed}
	for _, doc := range documents {
		for _, summary := range doc.Providers {
			counts.Total++
			if summary.Status == TaskSuccess {
				counts.Succeeded++
			} else {
				counts.Failed++
			}
		}
	}
	return counts
}

// runErrors collects persistence failures from worker goroutines and
// surfaces the first one.
type runErrors struct {
	mu  sync.Mutex
	err error
}

func (e *runErrors) record(err error) {
	e.mu.Lock()
	if e.err == nil {
		e.err = err
	}
	e.mu.Unlock()
}

func (e *runErrors) first() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}
