package config

import (
	"fmt"
	"os"

	"ragbench/internal/spec"
)

// Load reads a config file and returns it parsed, normalized and
// validated. Normalization runs before validation so defaults are
// checked by the same rules as explicit values.
func Load(path string) (spec.Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return spec.Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := spec.ParseConfig(raw)
	if err != nil {
		return spec.Config{}, err
	}
	Normalize(&cfg)
	if err := Validate(&cfg); err != nil {
		return spec.Config{}, err
	}
	return cfg, nil
}
