package runner

import "time"

// TaskEventType identifies a task status update for observers.
type TaskEventType string

const (
	// TaskQueued marks a task known but not yet submitted.
	TaskQueued TaskEventType = "queued"
	// TaskScheduled marks a task handed to a worker.
	TaskScheduled TaskEventType = "scheduled"
	// TaskIngesting marks the provider ingest call in progress.
	TaskIngesting TaskEventType = "ingesting"
	// TaskQuerying marks question answering in progress.
	TaskQuerying TaskEventType = "querying"
	// TaskScoring marks the evaluation batch in progress.
	TaskScoring TaskEventType = "scoring"
	// TaskRetryingScore marks a scoring retry after an error or an
	// undefined metric value.
	TaskRetryingScore TaskEventType = "retrying_score"
	// TaskSucceeded marks task completion with scores.
	TaskSucceeded TaskEventType = "succeeded"
	// TaskFailed marks a terminal task failure.
	TaskFailed TaskEventType = "failed"
	// TaskResumed marks a task satisfied by a prior run artifact.
	TaskResumed TaskEventType = "resumed"
)

// TaskEvent carries a single status update for a task.
type TaskEvent struct {
	RunID         string
	DocID         string
	Provider      string
	Type          TaskEventType
	QuestionIndex int
	QuestionTotal int
	Attempt       int
	ErrorKind     ErrorKind
	Error         string
	EmittedAt     time.Time
}

// RunObserver receives run lifecycle events for UI or logging.
type RunObserver interface {
	// OnRunStart signals the start of a run.
	OnRunStart(runID string, totalTasks int)
	// OnTaskEvent delivers a task status update.
	OnTaskEvent(event TaskEvent)
	// OnDocumentEnd signals that a document finished aggregating.
	OnDocumentEnd(result DocumentResult)
	// OnRunEnd signals run completion.
	OnRunEnd(summary RunSummary)
}

// nopObserver satisfies RunObserver and drops every event.
type nopObserver struct{}

func (nopObserver) OnRunStart(string, int)       {}
func (nopObserver) OnTaskEvent(TaskEvent)        {}
func (nopObserver) OnDocumentEnd(DocumentResult) {}
func (nopObserver) OnRunEnd(RunSummary)          {}
