package live

import (
	"time"

	"ragbench/internal/runner"
)

// TaskRow holds UI state for a single (provider, document) task.
type TaskRow struct {
	DocID         string
	Provider      string
	Status        runner.TaskEventType
	QuestionIndex int
	QuestionTotal int
	Attempt       int
	Error         string
	ErrorKind     runner.ErrorKind
	StartedAt     time.Time
	FinishedAt    time.Time
}

// StatusCounts aggregates tasks by status bucket.
type StatusCounts struct {
	Pending   int
	Ingesting int
	Querying  int
	Scoring   int
	Succeeded int
	Failed    int
	Resumed   int
}

// State captures the live UI state for a run.
type State struct {
	RunID      string
	TotalTasks int
	StartedAt  time.Time
	LastEvent  string
	Rows       []TaskRow
	Counts     StatusCounts
	Finished   bool
}
