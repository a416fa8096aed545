package runner

import (
	"context"
	"fmt"

	"ragbench/internal/dataset"
)

// Task is one unit of work: a single provider evaluated against a
// single document and its question list.
type Task struct {
	Provider  string
	Document  dataset.Document
	Questions []dataset.Question
}

// Key identifies a task within a run.
func (t Task) Key() string {
	return taskKey(t.Document.ID, t.Provider)
}

// taskKey is the ledger and artifact key for a (document, provider)
// pair; every lookup goes through it so the format cannot drift.
func taskKey(docID, provider string) string {
	return docID + "/" + provider
}

// GenerateTasks builds the (provider, document) cross product in a
// stable order: documents outer, providers inner. A document without a
// question list is a planning error and fails the whole run.
func GenerateTasks(set *dataset.Set, providers []string) ([]Task, error) {
	if set == nil {
		return nil, fmt.Errorf("dataset is nil")
	}
	if len(providers) == 0 {
		return nil, fmt.Errorf("no providers configured")
	}
	tasks := make([]Task, 0, len(set.Documents)*len(providers))
	for _, doc := range set.Documents {
		questions, ok := set.QuestionsByDocument[doc.ID]
		if !ok || len(questions) == 0 {
			return nil, fmt.Errorf("document %s has no questions", doc.ID)
		}
		for _, provider := range providers {
			tasks = append(tasks, Task{Provider: provider, Document: doc, Questions: questions})
		}
	}
	return tasks, nil
}

// FilterResume partitions tasks into pending and already-completed
// using an existence predicate over prior run artifacts.
func FilterResume(ctx context.Context, tasks []Task, exists func(ctx context.Context, task Task) (bool, error)) (pending, completed []Task, err error) {
	for _, task := range tasks {
		done, err := exists(ctx, task)
		if err != nil {
			return nil, nil, fmt.Errorf("check prior result for %s: %w", task.Key(), err)
		}
		if done {
			completed = append(completed, task)
		} else {
			pending = append(pending, task)
		}
	}
	return pending, completed, nil
}
