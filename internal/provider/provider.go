package provider

import (
	"context"
	"fmt"
	"sort"

	"ragbench/internal/dataset"
	"ragbench/internal/spec"
)

// Answer is a provider's response to one question.
type Answer struct {
	Text      string
	Context   []string
	LatencyMS float64
}

// Provider is the document-understanding capability under benchmark. Ingest
// accepts a document and returns an opaque handle; Query answers a question
// against a previously ingested handle. Implementations must be safe for
// concurrent Query calls on the same handle.
type Provider interface {
	Ingest(ctx context.Context, doc dataset.Document) (handle string, err error)
	Query(ctx context.Context, question, handle string) (Answer, error)
}

// Constructor builds a Provider from its config entry.
type Constructor func(cfg spec.ProviderConfig) (Provider, error)

// Registry maps provider types to constructors. Adding a provider means
// registering one constructor; nothing else branches on provider names.
type Registry struct {
	constructors map[string]Constructor
}

// NewRegistry returns an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{constructors: map[string]Constructor{}}
}

// Register installs a constructor for a provider type.
func (r *Registry) Register(providerType string, constructor Constructor) {
	r.constructors[providerType] = constructor
}

// New constructs a provider instance from its config entry.
func (r *Registry) New(cfg spec.ProviderConfig) (Provider, error) {
	constructor, ok := r.constructors[cfg.Type]
	if !ok {
		return nil, fmt.Errorf("unknown provider type %q (registered: %v)", cfg.Type, r.Types())
	}
	return constructor(cfg)
}

// NewAll constructs every configured provider, keyed by instance name.
func (r *Registry) NewAll(configs []spec.ProviderConfig) (map[string]Provider, error) {
	providers := make(map[string]Provider, len(configs))
	for _, cfg := range configs {
		instance, err := r.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("provider %s: %w", cfg.Name, err)
		}
		providers[cfg.Name] = instance
	}
	return providers, nil
}

// Types lists registered provider types in sorted order.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.constructors))
	for providerType := range r.constructors {
		types = append(types, providerType)
	}
	sort.Strings(types)
	return types
}

// Default returns a registry with the built-in providers registered.
func Default() *Registry {
	registry := NewRegistry()
	registry.Register("gemini", NewGemini)
	return registry
}
