// Package store provides key-value artifact backends for run results.
// Keys are slash-separated paths such as "runs/<run-id>/summary.json";
// values are opaque bytes. Backends must make Put atomic enough that a
// key never becomes visible with partial content.
package store

import (
	"context"
	"errors"
	"fmt"

	"ragbench/internal/spec"
)

// ErrNotFound is returned by Get for keys that were never written.
var ErrNotFound = errors.New("store: key not found")

// KV is the artifact storage capability shared by all backends.
type KV interface {
	Put(ctx context.Context, key string, value []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Exists(ctx context.Context, key string) (bool, error)
}

// Open constructs the backend selected by the output configuration.
func Open(cfg spec.OutputConfig) (KV, error) {
	switch cfg.Backend {
	case "file", "":
		return NewFileStore(cfg.ResultsDir)
	case "memory":
		return NewMemoryStore(), nil
	case "redis":
		return NewRedisStore(cfg.Redis), nil
	case "s3":
		return NewS3Store(cfg.S3)
	default:
		return nil, fmt.Errorf("unknown output backend %q", cfg.Backend)
	}
}
