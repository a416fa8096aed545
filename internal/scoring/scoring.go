package scoring

import (
	"context"
	"fmt"
	"math"
)

// Sample is one (question, reference, retrieved context, answer) tuple
// submitted for evaluation.
type Sample struct {
	Question  string   `json:"question"`
	Reference string   `json:"reference"`
	Context   []string `json:"context"`
	Answer    string   `json:"answer"`
}

// Scorer is the external evaluation capability. ScoreBatch returns one
// batch-level aggregate score per metric, not per-sample values.
type Scorer interface {
	ScoreBatch(ctx context.Context, samples []Sample) (map[string]float64, error)
}

// NaNPolicy decides what happens to metrics that are still NaN after the
// scoring retry budget is exhausted.
type NaNPolicy string

const (
	// NaNPolicyZero coerces remaining NaN scores to 0.0.
	NaNPolicyZero NaNPolicy = "zero"
	// NaNPolicyDrop removes NaN metrics from the task's aggregation.
	NaNPolicyDrop NaNPolicy = "drop"
	// NaNPolicyFail marks the task as failed scoring.
	NaNPolicyFail NaNPolicy = "fail"
)

// ParseNaNPolicy validates a policy string from config.
func ParseNaNPolicy(value string) (NaNPolicy, error) {
	switch NaNPolicy(value) {
	case NaNPolicyZero, NaNPolicyDrop, NaNPolicyFail:
		return NaNPolicy(value), nil
	case "":
		return NaNPolicyZero, nil
	default:
		return "", fmt.Errorf("unknown nan policy %q (expected zero|drop|fail)", value)
	}
}

// HasNaN reports whether any metric value is NaN.
func HasNaN(scores map[string]float64) bool {
	for _, score := range scores {
		if math.IsNaN(score) {
			return true
		}
	}
	return false
}

// ApplyNaNPolicy resolves remaining NaN values per the policy. With
// NaNPolicyFail it returns an error naming the first offending metric.
func ApplyNaNPolicy(scores map[string]float64, policy NaNPolicy) (map[string]float64, error) {
	if !HasNaN(scores) {
		return scores, nil
	}
	cleaned := make(map[string]float64, len(scores))
	for metric, score := range scores {
		if !math.IsNaN(score) {
			cleaned[metric] = score
			continue
		}
		switch policy {
		case NaNPolicyZero:
			cleaned[metric] = 0.0
		case NaNPolicyDrop:
			// metric omitted
		case NaNPolicyFail:
			return nil, fmt.Errorf("metric %s is undefined after retries", metric)
		default:
			cleaned[metric] = 0.0
		}
	}
	return cleaned, nil
}
