package runner

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"time"
)

// Run identifiers start with a UTC timestamp so run directories order
// lexicographically by start time; the "latest" run is the last one in
// a sorted listing. The hex suffix keeps runs started within the same
// second distinct.
const (
	runIDTimeLayout   = "20060102T150405Z"
	runIDEntropyBytes = 6
)

func NewRunID() (string, error) {
	return NewRunIDWithRand(time.Now(), rand.Reader)
}

func NewRunIDWithRand(start time.Time, entropy io.Reader) (string, error) {
	if entropy == nil {
		return "", fmt.Errorf("entropy reader is nil")
	}
	suffix := make([]byte, runIDEntropyBytes)
	if _, err := io.ReadFull(entropy, suffix); err != nil {
		return "", fmt.Errorf("read run id entropy: %w", err)
	}
	return FormatRunID(start, hex.EncodeToString(suffix)), nil
}

func FormatRunID(start time.Time, suffix string) string {
	return start.UTC().Format(runIDTimeLayout) + "-" + suffix
}
