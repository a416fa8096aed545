package config

import "ragbench/internal/spec"

// Execution defaults. Providers and the scoring backend are network services;
// the worker bound tracks the task fan-out, the lane bounds track their rate
// tolerances.
const (
	defaultWorkers             = 4
	defaultProviderConcurrency = 2
	defaultScoringConcurrency  = 2

	defaultIngestTimeoutSeconds = 300
	defaultQueryTimeoutSeconds  = 60
	defaultScoreTimeoutSeconds  = 120

	defaultScoreAttempts          = 3
	defaultScoreRetryDelaySeconds = 2
)

var defaultMetrics = []string{"faithfulness", "answer_relevancy"}

// Normalize fills unset config fields with defaults.
func Normalize(cfg *spec.Config) {
	if cfg.Execution.Workers <= 0 {
		cfg.Execution.Workers = defaultWorkers
	}
	if cfg.Execution.ProviderConcurrency <= 0 {
		cfg.Execution.ProviderConcurrency = defaultProviderConcurrency
	}
	if cfg.Execution.ScoringConcurrency <= 0 {
		cfg.Execution.ScoringConcurrency = defaultScoringConcurrency
	}
	if cfg.Execution.ProviderConcurrency > cfg.Execution.Workers {
		cfg.Execution.ProviderConcurrency = cfg.Execution.Workers
	}
	if cfg.Execution.ScoringConcurrency > cfg.Execution.Workers {
		cfg.Execution.ScoringConcurrency = cfg.Execution.Workers
	}
	if cfg.Execution.IngestTimeoutSeconds <= 0 {
		cfg.Execution.IngestTimeoutSeconds = defaultIngestTimeoutSeconds
	}
	if cfg.Execution.QueryTimeoutSeconds <= 0 {
		cfg.Execution.QueryTimeoutSeconds = defaultQueryTimeoutSeconds
	}
	if cfg.Execution.ScoreTimeoutSeconds <= 0 {
		cfg.Execution.ScoreTimeoutSeconds = defaultScoreTimeoutSeconds
	}

	if cfg.Evaluation.NaNPolicy == "" {
		cfg.Evaluation.NaNPolicy = "zero"
	}
	if cfg.Evaluation.ScoreAttempts <= 0 {
		cfg.Evaluation.ScoreAttempts = defaultScoreAttempts
	}
	if cfg.Evaluation.ScoreRetryDelaySeconds <= 0 {
		cfg.Evaluation.ScoreRetryDelaySeconds = defaultScoreRetryDelaySeconds
	}
	if len(cfg.Evaluation.Metrics) == 0 {
		cfg.Evaluation.Metrics = append([]string(nil), defaultMetrics...)
	}

	if cfg.Output.Backend == "" {
		cfg.Output.Backend = "file"
	}
	if cfg.Output.ResultsDir == "" {
		cfg.Output.ResultsDir = "data/results"
	}

	for i := range cfg.Providers {
		if cfg.Providers[i].Type == "" {
			cfg.Providers[i].Type = cfg.Providers[i].Name
		}
	}
}
