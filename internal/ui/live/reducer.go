package live

import (
	"fmt"

	"ragbench/internal/runner"
)

// Reduce applies a task event to the UI state.
func Reduce(state State, event runner.TaskEvent) State {
	index := rowIndex(state.Rows, event.DocID, event.Provider)
	if index < 0 {
		state.Rows = append(state.Rows, TaskRow{
			DocID:     event.DocID,
			Provider:  event.Provider,
			StartedAt: event.EmittedAt,
		})
		index = len(state.Rows) - 1
	}
	row := state.Rows[index]
	row.Status = event.Type
	switch event.Type {
	case runner.TaskQuerying:
		row.QuestionIndex = event.QuestionIndex
		row.QuestionTotal = event.QuestionTotal
	case runner.TaskScoring, runner.TaskRetryingScore:
		row.Attempt = event.Attempt
	case runner.TaskFailed:
		row.Error = event.Error
		row.ErrorKind = event.ErrorKind
		row.FinishedAt = event.EmittedAt
	case runner.TaskSucceeded, runner.TaskResumed:
		row.FinishedAt = event.EmittedAt
	}
	state.Rows[index] = row
	state.Counts = countRows(state.Rows)
	state.LastEvent = formatEvent(event)
	return state
}

func rowIndex(rows []TaskRow, docID, provider string) int {
	for i, row := range rows {
		if row.DocID == docID && row.Provider == provider {
			return i
		}
	}
	return -1
}

func countRows(rows []TaskRow) StatusCounts {
	var counts StatusCounts
	for _, row := range rows {
		switch row.Status {
		case runner.TaskIngesting:
			counts.Ingesting++
		case runner.TaskQuerying:
			counts.Querying++
		case runner.TaskScoring, runner.TaskRetryingScore:
			counts.Scoring++
		case runner.TaskSucceeded:
			counts.Succeeded++
		case runner.TaskFailed:
			counts.Failed++
		case runner.TaskResumed:
			counts.Resumed++
		default:
			counts.Pending++
		}
	}
	return counts
}

func formatEvent(event runner.TaskEvent) string {
	label := event.DocID + "/" + event.Provider
	switch event.Type {
	case runner.TaskFailed:
		return fmt.Sprintf("%s failed (%s)", label, event.ErrorKind)
	case runner.TaskQuerying:
		return fmt.Sprintf("%s question %d/%d", label, event.QuestionIndex, event.QuestionTotal)
	case runner.TaskRetryingScore:
		return fmt.Sprintf("%s retrying score (attempt %d)", label, event.Attempt)
	default:
		return fmt.Sprintf("%s %s", label, event.Type)
	}
}
