package duckdb

import (
	"context"
	"database/sql"
	"fmt"

	"ragbench/internal/runner"
)

// IngestRunSummary writes one finished run into the analytical tables.
// Re-ingesting the same run replaces its rows.
func IngestRunSummary(ctx context.Context, db *sql.DB, summary runner.RunSummary) error {
	if db == nil {
		return fmt.Errorf("duckdb: db is nil")
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin ingest: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"runs", "task_results", "provider_metrics", "provider_averages"} {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE run_id = ?", table), summary.RunID); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (run_id, dataset, started_at, finished_at, duration_seconds,
			tasks_total, tasks_succeeded, tasks_failed, tasks_resumed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.RunID, summary.Dataset, summary.StartedAt, summary.FinishedAt,
		summary.DurationSeconds, summary.Tasks.Total, summary.Tasks.Succeeded,
		summary.Tasks.Failed, summary.Tasks.Resumed,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, doc := range summary.Documents {
		for provider, result := range doc.Providers {
			if err := insertTaskResult(ctx, tx, summary.RunID, doc.DocID, provider, result); err != nil {
				return err
			}
		}
	}
	for provider, metrics := range summary.ProviderAverages {
		for metric, score := range metrics {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO provider_averages (run_id, provider, metric, score)
				VALUES (?, ?, ?, ?)`,
				summary.RunID, provider, metric, score,
			); err != nil {
				return fmt.Errorf("insert average %s/%s: %w", provider, metric, err)
			}
		}
	}
	return tx.Commit()
}

func insertTaskResult(ctx context.Context, tx *sql.Tx, runID, docID, provider string, result runner.ProviderSummary) error {
	var errorKind any
	if result.ErrorKind != "" {
		errorKind = string(result.ErrorKind)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO task_results (run_id, doc_id, provider, status, error_kind, duration_seconds)
		VALUES (?, ?, ?, ?, ?, ?)`,
		runID, docID, provider, string(result.Status), errorKind, result.DurationSeconds,
	); err != nil {
		return fmt.Errorf("insert task %s/%s: %w", docID, provider, err)
	}
	for metric, score := range result.AggregatedScores {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO provider_metrics (run_id, doc_id, provider, metric, score)
			VALUES (?, ?, ?, ?, ?)`,
			runID, docID, provider, metric, score,
		); err != nil {
			return fmt.Errorf("insert metric %s/%s/%s: %w", docID, provider, metric, err)
		}
	}
	return nil
}
