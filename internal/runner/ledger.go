package runner

import (
	"context"
	"fmt"
	"sync"
)

// Ledger tracks every task of a run and lets document aggregation wait
// for individual task outcomes. Each registered key resolves exactly
// once.
type Ledger struct {
	mu      sync.Mutex
	entries map[string]*ledgerEntry
}

type ledgerEntry struct {
	done   chan struct{}
	result ProviderResult
}

func NewLedger() *Ledger {
	return &Ledger{entries: make(map[string]*ledgerEntry)}
}

// Register creates a pending entry for the task key. Registering the
// same key twice is a programming error.
func (l *Ledger) Register(key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.entries[key]; ok {
		return fmt.Errorf("task %s already registered", key)
	}
	l.entries[key] = &ledgerEntry{done: make(chan struct{})}
	return nil
}

// Resolve records the task outcome and releases every waiter. A second
// resolution of the same key is ignored.
func (l *Ledger) Resolve(key string, result ProviderResult) {
	l.mu.Lock()
	entry, ok := l.entries[key]
	if !ok {
		entry = &ledgerEntry{done: make(chan struct{})}
		l.entries[key] = entry
	}
	select {
	case <-entry.done:
		l.mu.Unlock()
		return
	default:
	}
	entry.result = result
	close(entry.done)
	l.mu.Unlock()
}

// Await blocks until the task resolves or ctx is done.
func (l *Ledger) Await(ctx context.Context, key string) (ProviderResult, error) {
	l.mu.Lock()
	entry, ok := l.entries[key]
	l.mu.Unlock()
	if !ok {
		return ProviderResult{}, fmt.Errorf("task %s was never registered", key)
	}
	select {
	case <-entry.done:
		return entry.result, nil
	case <-ctx.Done():
		return ProviderResult{}, ctx.Err()
	}
}

// Pending reports the number of unresolved entries.
func (l *Ledger) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	count := 0
	for _, entry := range l.entries {
		select {
		case <-entry.done:
		default:
			count++
		}
	}
	return count
}
