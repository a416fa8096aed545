package runner

import (
	"time"

	"ragbench/internal/spec"
)

// TaskStatus is the terminal status of one (provider, document) task.
type TaskStatus string

const (
	TaskSuccess TaskStatus = "success"
	TaskError   TaskStatus = "error"
)

// ErrorKind classifies where a failed task gave up.
type ErrorKind string

const (
	// ErrKindIngest marks a failure while the provider ingested the document.
	ErrKindIngest ErrorKind = "ingest_failed"
	// ErrKindQuery marks a failure while answering one of the questions.
	ErrKindQuery ErrorKind = "query_failed"
	// ErrKindScore marks a scoring failure after the retry budget ran out.
	ErrKindScore ErrorKind = "score_failed"
	// ErrKindThread marks a worker panic caught by the scheduler.
	ErrKindThread ErrorKind = "thread_failed"
)

// QuestionResult records one answered question inside a task. Scores
// is a copy of the task's batch evaluation scores: scoring happens per
// batch, so every question in a successful task carries the same map.
type QuestionResult struct {
	QuestionID string             `json:"question_id"`
	Question   string             `json:"question"`
	Answer     string             `json:"answer"`
	Reference  string             `json:"reference,omitempty"`
	Context    []string           `json:"context,omitempty"`
	LatencyMS  float64            `json:"latency_ms"`
	Scores     map[string]float64 `json:"evaluation_scores,omitempty"`
}

// ProviderResult is the persisted outcome of one (provider, document)
// task. Timestamps are recorded for failed tasks too.
type ProviderResult struct {
	Provider         string             `json:"provider"`
	DocID            string             `json:"doc_id"`
	Status           TaskStatus         `json:"status"`
	ErrorKind        ErrorKind          `json:"error_kind,omitempty"`
	Error            string             `json:"error,omitempty"`
	IngestionHandle  string             `json:"ingestion_handle,omitempty"`
	Questions        []QuestionResult   `json:"questions,omitempty"`
	EvaluationScores map[string]float64 `json:"evaluation_scores,omitempty"`
	AggregatedScores map[string]float64 `json:"aggregated_scores,omitempty"`
	TimestampStart   time.Time          `json:"timestamp_start"`
	TimestampEnd     time.Time          `json:"timestamp_end"`
	DurationSeconds  float64            `json:"duration_seconds"`
	Resumed          bool               `json:"resumed,omitempty"`
}

// ProviderSummary is the per-provider slice of a document aggregate.
type ProviderSummary struct {
	Status           TaskStatus         `json:"status"`
	ErrorKind        ErrorKind          `json:"error_kind,omitempty"`
	AggregatedScores map[string]float64 `json:"aggregated_scores,omitempty"`
	DurationSeconds  float64            `json:"duration_seconds"`
}

// DocumentResult aggregates all provider outcomes for one document.
type DocumentResult struct {
	DocID         string                     `json:"doc_id"`
	Title         string                     `json:"title,omitempty"`
	QuestionCount int                        `json:"question_count"`
	Providers     map[string]ProviderSummary `json:"providers"`
}

// TaskCounts breaks a run down by task outcome.
type TaskCounts struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	Resumed   int `json:"resumed"`
}

// RunSummary is the run-level artifact written once all documents are
// aggregated. Config is the resolved configuration snapshot the run
// executed with, so an artifact can be interpreted without the
// original config file.
type RunSummary struct {
	RunID            string                        `json:"run_id"`
	Dataset          string                        `json:"dataset"`
	Config           spec.Config                   `json:"config"`
	NumDocuments     int                           `json:"num_documents"`
	TotalQuestions   int                           `json:"total_questions"`
	Providers        []string                      `json:"providers"`
	Metrics          []string                      `json:"metrics"`
	StartedAt        time.Time                     `json:"started_at"`
	FinishedAt       time.Time                     `json:"finished_at"`
	DurationSeconds  float64                       `json:"duration_seconds"`
	Tasks            TaskCounts                    `json:"tasks"`
	FailuresByKind   map[string]int                `json:"failures_by_kind,omitempty"`
	ProviderAverages map[string]map[string]float64 `json:"provider_averages"`
	Documents        []DocumentResult              `json:"documents"`
}
