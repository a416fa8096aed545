package runner

import (
	"context"
	"fmt"
	"sync"
)

// schedule fans tasks out to a fixed pool of workers. A panicking task
// is converted into a thread_failed result so the rest of the run keeps
// going. onComplete is invoked once per task, from worker goroutines.
func schedule(ctx context.Context, tasks []Task, workers int, deps func(Task) taskDeps, onComplete func(Task, ProviderResult)) {
	if workers < 1 {
		workers = 1
	}
	taskCh := make(chan Task)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range taskCh {
				onComplete(task, runGuarded(ctx, task, deps(task)))
			}
		}()
	}
	for _, task := range tasks {
		taskCh <- task
	}
	close(taskCh)
	wg.Wait()
}

// runGuarded shields the worker from panics inside provider or scorer
// implementations.
func runGuarded(ctx context.Context, task Task, deps taskDeps) (result ProviderResult) {
	start := deps.now()
	defer func() {
		if r := recover(); r != nil {
			end := deps.now()
			failedEvent := TaskEvent{
				RunID:     deps.runID,
				DocID:     task.Document.ID,
				Provider:  task.Provider,
				Type:      TaskFailed,
				ErrorKind: ErrKindThread,
				Error:     fmt.Sprint(r),
				EmittedAt: end,
			}
			deps.observe(failedEvent)
			result = ProviderResult{
				Provider:        task.Provider,
				DocID:           task.Document.ID,
				Status:          TaskError,
				ErrorKind:       ErrKindThread,
				Error:           fmt.Sprintf("worker panic: %v", r),
				TimestampStart:  start,
				TimestampEnd:    end,
				DurationSeconds: end.Sub(start).Seconds(),
			}
		}
	}()
	scheduledEvent := TaskEvent{
		RunID:     deps.runID,
		DocID:     task.Document.ID,
		Provider:  task.Provider,
		Type:      TaskScheduled,
		EmittedAt: deps.now(),
	}
	deps.observe(scheduledEvent)
	return executeTask(ctx, task, deps)
}
