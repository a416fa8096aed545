package spec

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ParseConfig decodes a benchmark config from YAML. Unknown fields are
// rejected so a typoed key fails loudly instead of silently keeping a
// default, and a stream with more than one document is an error.
func ParseConfig(data []byte) (Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	switch err := dec.Decode(&struct{}{}); {
	case err == nil:
		return Config{}, errors.New("parse config: multiple YAML documents are not supported")
	case !errors.Is(err, io.EOF):
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
