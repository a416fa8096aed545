package cli

import (
	"io"
	"testing"
)

func stubTerminal(t *testing.T, tty bool) {
	t.Helper()
	original := isTerminal
	isTerminal = func(io.Writer) bool { return tty }
	t.Cleanup(func() { isTerminal = original })
}

func TestResolveUIModeAuto(t *testing.T) {
	stubTerminal(t, true)
	decision, err := resolveUIMode("auto", false, io.Discard)
	if err != nil || !decision.useLive {
		t.Errorf("decision = %+v, err = %v", decision, err)
	}

	stubTerminal(t, false)
	decision, err = resolveUIMode("auto", false, io.Discard)
	if err != nil || decision.useLive {
		t.Errorf("decision = %+v, err = %v", decision, err)
	}
}

func TestResolveUIModeLiveWithoutTTY(t *testing.T) {
	stubTerminal(t, false)
	decision, err := resolveUIMode("live", false, io.Discard)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if decision.useLive || decision.warning == "" {
		t.Errorf("decision = %+v", decision)
	}
}

func TestResolveUIModeVerboseForcesPlain(t *testing.T) {
	stubTerminal(t, true)
	decision, err := resolveUIMode("live", true, io.Discard)
	if err != nil || decision.useLive {
		t.Errorf("decision = %+v, err = %v", decision, err)
	}
}

func TestResolveUIModeInvalid(t *testing.T) {
	if _, err := resolveUIMode("fancy", false, io.Discard); err == nil {
		t.Fatal("expected error")
	}
}
