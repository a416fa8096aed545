package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	genai "google.golang.org/genai"
)

// GeminiJudge scores answer batches by prompting a Gemini model to grade
// them, returning one aggregate value per metric in [0, 1].
type GeminiJudge struct {
	client  *genai.Client
	model   string
	metrics []string
}

// NewGeminiJudge constructs a Gemini-backed scorer for the given metrics.
func NewGeminiJudge(ctx context.Context, model string, metrics []string) (*GeminiJudge, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("judge model is required")
	}
	if len(metrics) == 0 {
		return nil, fmt.Errorf("at least one metric is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, fmt.Errorf("init gemini client: %w", err)
	}
	return &GeminiJudge{client: client, model: model, metrics: metrics}, nil
}

// ScoreBatch grades the full batch in one model call and returns the
// batch-level mean per metric. Metrics the model omits come back as NaN so
// the caller's retry and NaN policy apply.
func (j *GeminiJudge) ScoreBatch(ctx context.Context, samples []Sample) (map[string]float64, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("empty sample batch")
	}
	payload, err := json.MarshalIndent(samples, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal samples: %w", err)
	}
	prompt := "You grade question-answering quality. For the sample batch below, " +
		"rate the batch as a whole on each metric from 0.0 (worst) to 1.0 (best): " +
		strings.Join(j.metrics, ", ") + ". " +
		"Respond with a single JSON object mapping each metric name to its score.\n\n" +
		"[SAMPLES]\n" + string(payload)

	resp, err := j.client.Models.GenerateContent(ctx, j.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		return nil, fmt.Errorf("score batch: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("score batch: empty response")
	}

	var graded map[string]float64
	if err := json.Unmarshal([]byte(resp.Candidates[0].Content.Parts[0].Text), &graded); err != nil {
		return nil, fmt.Errorf("score batch: invalid JSON from judge: %w", err)
	}
	scores := make(map[string]float64, len(j.metrics))
	for _, metric := range j.metrics {
		value, ok := graded[metric]
		if !ok {
			value = math.NaN()
		}
		scores[metric] = value
	}
	return scores, nil
}
