package cli

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

// The live UI takes over the terminal, so it is only enabled when
// stdout is a TTY. Verbose mode always wins: streamed logs and the
// alternate screen do not mix.

// isTerminal reports whether a writer is backed by a TTY. Tests
// replace it to simulate both environments.
var isTerminal = defaultIsTerminal

type uiModeDecision struct {
	useLive bool
	warning string
}

func resolveUIMode(mode string, verbose bool, stdout io.Writer) (uiModeDecision, error) {
	if verbose {
		return uiModeDecision{}, nil
	}
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		return uiModeDecision{useLive: isTerminal(stdout)}, nil
	case "live":
		if !isTerminal(stdout) {
			return uiModeDecision{warning: "live UI needs a TTY on stdout, using plain output"}, nil
		}
		return uiModeDecision{useLive: true}, nil
	case "plain":
		return uiModeDecision{}, nil
	}
	return uiModeDecision{}, fmt.Errorf("unknown ui mode %q, want auto, live or plain", mode)
}

func defaultIsTerminal(w io.Writer) bool {
	fder, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return term.IsTerminal(int(fder.Fd()))
}
