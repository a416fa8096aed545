package config

import (
	"fmt"
	"strings"

	"ragbench/internal/spec"
)

// Issue is a single validation problem.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates all issues found in a config.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	var builder strings.Builder
	builder.WriteString("invalid config:")
	for _, issue := range e.Issues {
		builder.WriteString("\n  ")
		builder.WriteString(issue.Field)
		builder.WriteString(": ")
		builder.WriteString(issue.Message)
	}
	return builder.String()
}

// issueCollector accumulates validation issues.
type issueCollector struct {
	issues []Issue
}

func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}

var validNaNPolicies = map[string]bool{"zero": true, "drop": true, "fail": true}
var validBackends = map[string]bool{"file": true, "memory": true, "redis": true, "s3": true}

// Validate checks a normalized config for correctness.
func Validate(cfg *spec.Config) error {
	collector := &issueCollector{}

	if cfg.Version == 0 {
		collector.add("version", "is required")
	} else if cfg.Version != 1 {
		collector.add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}

	if strings.TrimSpace(cfg.Dataset.Path) == "" {
		collector.add("dataset.path", "is required")
	}

	validateProviders(cfg, collector.add)
	validateExecution(cfg, collector.add)
	validateEvaluation(cfg, collector.add)
	validateOutput(cfg, collector.add)

	return collector.result()
}

func validateProviders(cfg *spec.Config, add func(field, message string)) {
	if len(cfg.Providers) == 0 {
		add("providers", "at least one provider is required")
		return
	}
	seen := map[string]bool{}
	for i, provider := range cfg.Providers {
		field := fmt.Sprintf("providers[%d]", i)
		if strings.TrimSpace(provider.Name) == "" {
			add(field+".name", "is required")
			continue
		}
		if seen[provider.Name] {
			add(field+".name", fmt.Sprintf("duplicate provider name %q", provider.Name))
		}
		seen[provider.Name] = true
	}
}

func validateExecution(cfg *spec.Config, add func(field, message string)) {
	exec := cfg.Execution
	if exec.ProviderConcurrency > exec.Workers {
		add("execution.provider_concurrency", "must not exceed execution.workers")
	}
	if exec.ScoringConcurrency > exec.Workers {
		add("execution.scoring_concurrency", "must not exceed execution.workers")
	}
}

func validateEvaluation(cfg *spec.Config, add func(field, message string)) {
	if !validNaNPolicies[cfg.Evaluation.NaNPolicy] {
		add("evaluation.nan_policy", fmt.Sprintf("unknown policy %q (expected zero|drop|fail)", cfg.Evaluation.NaNPolicy))
	}
	for i, metric := range cfg.Evaluation.Metrics {
		if strings.TrimSpace(metric) == "" {
			add(fmt.Sprintf("evaluation.metrics[%d]", i), "is empty")
		}
	}
}

func validateOutput(cfg *spec.Config, add func(field, message string)) {
	if !validBackends[cfg.Output.Backend] {
		add("output.backend", fmt.Sprintf("unknown backend %q (expected file|memory|redis|s3)", cfg.Output.Backend))
		return
	}
	switch cfg.Output.Backend {
	case "redis":
		if strings.TrimSpace(cfg.Output.Redis.Addr) == "" {
			add("output.redis.addr", "is required for the redis backend")
		}
	case "s3":
		if strings.TrimSpace(cfg.Output.S3.Endpoint) == "" {
			add("output.s3.endpoint", "is required for the s3 backend")
		}
		if strings.TrimSpace(cfg.Output.S3.Bucket) == "" {
			add("output.s3.bucket", "is required for the s3 backend")
		}
	}
}
