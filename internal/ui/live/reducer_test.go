package live

import (
	"testing"
	"time"

	"ragbench/internal/runner"
)

func event(docID, provider string, eventType runner.TaskEventType) runner.TaskEvent {
	return runner.TaskEvent{
		RunID:     "r1",
		DocID:     docID,
		Provider:  provider,
		Type:      eventType,
		EmittedAt: time.Now(),
	}
}

func TestReduceTracksTaskLifecycle(t *testing.T) {
	state := State{}
	state = Reduce(state, event("d1", "alpha", runner.TaskScheduled))
	state = Reduce(state, event("d1", "alpha", runner.TaskIngesting))

	if len(state.Rows) != 1 {
		t.Fatalf("rows = %d", len(state.Rows))
	}
	if state.Counts.Ingesting != 1 {
		t.Errorf("counts = %+v", state.Counts)
	}

	querying := event("d1", "alpha", runner.TaskQuerying)
	querying.QuestionIndex = 2
	querying.QuestionTotal = 5
	state = Reduce(state, querying)
	if state.Rows[0].QuestionIndex != 2 || state.Rows[0].QuestionTotal != 5 {
		t.Errorf("row = %+v", state.Rows[0])
	}

	state = Reduce(state, event("d1", "alpha", runner.TaskSucceeded))
	if state.Counts.Succeeded != 1 || state.Counts.Querying != 0 {
		t.Errorf("counts = %+v", state.Counts)
	}
	if state.Rows[0].FinishedAt.IsZero() {
		t.Error("finished row missing timestamp")
	}
}

func TestReduceSeparatesTasks(t *testing.T) {
	state := State{}
	state = Reduce(state, event("d1", "alpha", runner.TaskIngesting))
	state = Reduce(state, event("d1", "beta", runner.TaskIngesting))
	state = Reduce(state, event("d2", "alpha", runner.TaskIngesting))

	if len(state.Rows) != 3 {
		t.Fatalf("rows = %d", len(state.Rows))
	}
	if state.Counts.Ingesting != 3 {
		t.Errorf("counts = %+v", state.Counts)
	}
}

func TestReduceFailureCarriesKind(t *testing.T) {
	failed := event("d1", "alpha", runner.TaskFailed)
	failed.ErrorKind = runner.ErrKindScore
	failed.Error = "judge unavailable"

	state := Reduce(State{}, failed)
	if state.Counts.Failed != 1 {
		t.Errorf("counts = %+v", state.Counts)
	}
	if state.Rows[0].ErrorKind != runner.ErrKindScore {
		t.Errorf("row = %+v", state.Rows[0])
	}
	if formatStatus(state.Rows[0]) != "score_failed" {
		t.Errorf("status = %s", formatStatus(state.Rows[0]))
	}
}

func TestReduceRetryAttempts(t *testing.T) {
	retry := event("d1", "alpha", runner.TaskRetryingScore)
	retry.Attempt = 2
	state := Reduce(State{}, retry)
	if state.Rows[0].Attempt != 2 {
		t.Errorf("row = %+v", state.Rows[0])
	}
	if state.Counts.Scoring != 1 {
		t.Errorf("counts = %+v", state.Counts)
	}
	if formatProgress(state.Rows[0]) != "attempt 2" {
		t.Errorf("progress = %s", formatProgress(state.Rows[0]))
	}
}
