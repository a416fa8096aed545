package runner

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"golang.org/x/term"
)

// lockedWriter serializes writes from concurrent workers.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

const verbosePrefix = "[run]"

const (
	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"
	ansiDim   = "\x1b[2m"
	ansiGray  = "\x1b[90m"
	ansiGreen = "\x1b[32m"
	ansiRed   = "\x1b[31m"
	ansiBlue  = "\x1b[34m"
)

type verboseStyle int

const (
	styleDefault verboseStyle = iota
	styleTask
	styleMetrics
	styleError
)

// VerboseObserver writes a line per run event. Safe for concurrent use
// by worker goroutines.
type VerboseObserver struct {
	writer  io.Writer
	palette verbosePalette
}

// NewVerboseObserver wraps the writer with a lock and picks a color
// palette based on the writer and environment.
func NewVerboseObserver(writer io.Writer, noColor bool) *VerboseObserver {
	palette := paletteFor(writer, noColor)
	return &VerboseObserver{writer: &lockedWriter{w: writer}, palette: palette}
}

func (v *VerboseObserver) OnRunStart(runID string, totalTasks int) {
	v.logf(styleTask, "run %s started with %d tasks", runID, totalTasks)
}

func (v *VerboseObserver) OnTaskEvent(event TaskEvent) {
	label := fmt.Sprintf("%s/%s", event.DocID, event.Provider)
	switch event.Type {
	case TaskQuerying:
		v.logf(styleDefault, "%s question %d/%d", label, event.QuestionIndex, event.QuestionTotal)
	case TaskScoring:
		v.logf(styleDefault, "%s scoring attempt %d", label, event.Attempt)
	case TaskRetryingScore:
		v.logf(styleDefault, "%s retrying score after attempt %d", label, event.Attempt)
	case TaskSucceeded:
		v.logf(styleMetrics, "%s succeeded", label)
	case TaskFailed:
		v.logf(styleError, "%s failed (%s): %s", label, event.ErrorKind, event.Error)
	case TaskResumed:
		v.logf(styleDefault, "%s reused prior result", label)
	default:
		v.logf(styleDefault, "%s %s", label, event.Type)
	}
}

func (v *VerboseObserver) OnDocumentEnd(result DocumentResult) {
	v.logf(styleTask, "document %s aggregated (%d providers)", result.DocID, len(result.Providers))
}

func (v *VerboseObserver) OnRunEnd(summary RunSummary) {
	v.logf(styleMetrics, "run %s finished: %d succeeded, %d failed, %d resumed",
		summary.RunID, summary.Tasks.Succeeded, summary.Tasks.Failed, summary.Tasks.Resumed)
	for _, provider := range summary.Providers {
		averages, ok := summary.ProviderAverages[provider]
		if !ok {
			v.logf(styleError, "  %s: no successful tasks", provider)
			continue
		}
		v.logf(styleDefault, "  %s: %s", provider, formatScores(averages))
	}
}

func (v *VerboseObserver) logf(style verboseStyle, format string, args ...any) {
	if v == nil || v.writer == nil {
		return
	}
	line := fmt.Sprintf(format, args...)
	fmt.Fprintf(v.writer, "%s %s\n", v.palette.prefix(verbosePrefix), v.palette.apply(style, line))
}

func formatScores(scores map[string]float64) string {
	if len(scores) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(scores))
	for key := range scores {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%.3f", key, scores[key]))
	}
	return strings.Join(parts, " ")
}

type verbosePalette struct {
	enabled bool
}

func paletteFor(writer io.Writer, noColor bool) verbosePalette {
	if noColor {
		return verbosePalette{enabled: false}
	}
	return verbosePalette{enabled: shouldUseStyling(writer)}
}

func shouldUseStyling(writer io.Writer) bool {
	if writer == nil {
		return false
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	if strings.EqualFold(os.Getenv("CLICOLOR"), "0") {
		return false
	}
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	if fder, ok := writer.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fder.Fd()))
	}
	return false
}

func (p verbosePalette) prefix(text string) string {
	if !p.enabled {
		return text
	}
	return ansiDim + ansiGray + text + ansiReset
}

func (p verbosePalette) apply(style verboseStyle, text string) string {
	if !p.enabled {
		return text
	}
	switch style {
	case styleTask:
		return ansiBold + ansiBlue + text + ansiReset
	case styleMetrics:
		return ansiBold + ansiGreen + text + ansiReset
	case styleError:
		return ansiBold + ansiRed + text + ansiReset
	default:
		return text
	}
}
