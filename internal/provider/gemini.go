package provider

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	genai "google.golang.org/genai"

	"ragbench/internal/dataset"
	"ragbench/internal/spec"
)

const geminiContextChars = 24000

// Gemini is a reference provider that holds ingested document text in memory
// and answers questions by prompting a Gemini model with the document as
// context. File-backed documents are read as text; binary formats need a
// parsing provider instead.
type Gemini struct {
	client *genai.Client
	model  string

	mu      sync.RWMutex
	handles map[string]string
}

// NewGemini constructs the reference Gemini provider from config.
func NewGemini(cfg spec.ProviderConfig) (Provider, error) {
	model := cfg.Model
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("gemini provider requires a model")
	}
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, fmt.Errorf("init gemini client: %w", err)
	}
	return &Gemini{
		client:  client,
		model:   model,
		handles: map[string]string{},
	}, nil
}

// Ingest stores the document text under a fresh handle.
func (g *Gemini) Ingest(_ context.Context, doc dataset.Document) (string, error) {
	text := doc.Text
	if !doc.Inline() {
		data, err := os.ReadFile(doc.Path)
		if err != nil {
			return "", fmt.Errorf("read document %s: %w", doc.ID, err)
		}
		text = string(data)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("document %s has no text content", doc.ID)
	}
	handle := uuid.NewString()
	g.mu.Lock()
	g.handles[handle] = text
	g.mu.Unlock()
	return handle, nil
}

// Query prompts the model with the ingested document and the question.
func (g *Gemini) Query(ctx context.Context, question, handle string) (Answer, error) {
	g.mu.RLock()
	text, ok := g.handles[handle]
	g.mu.RUnlock()
	if !ok {
		return Answer{}, fmt.Errorf("unknown ingestion handle %q", handle)
	}

	excerpt := text
	if len(excerpt) > geminiContextChars {
		excerpt = excerpt[:geminiContextChars]
	}
	prompt := "Answer the question using only the document below. Be concise.\n\n" +
		"[DOCUMENT]\n" + excerpt + "\n\n[QUESTION]\n" + question

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		nil,
	)
	if err != nil {
		return Answer{}, fmt.Errorf("gemini query: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return Answer{}, fmt.Errorf("gemini query: empty response")
	}
	return Answer{
		Text:      resp.Candidates[0].Content.Parts[0].Text,
		Context:   []string{excerpt},
		LatencyMS: float64(time.Since(start).Milliseconds()),
	}, nil
}
