package live

import "ragbench/internal/runner"

// EventKind identifies the type of live UI event.
type EventKind int

const (
	// EventRunStart signals the start of a run.
	EventRunStart EventKind = iota
	// EventTask delivers a task status update.
	EventTask
	// EventDocument signals that a document finished aggregating.
	EventDocument
	// EventRunEnd signals run completion.
	EventRunEnd
)

// Event carries a UI update payload.
type Event struct {
	Kind       EventKind
	RunID      string
	TotalTasks int
	Task       runner.TaskEvent
	DocID      string
	Summary    runner.RunSummary
}
