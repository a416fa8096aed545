package live

import (
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the run header line.
func renderHeader(state State, now time.Time, noColor bool) string {
	elapsed := ""
	if !state.StartedAt.IsZero() {
		elapsed = now.Sub(state.StartedAt).Round(100 * time.Millisecond).String()
	}
	line := "Run " + state.RunID
	if state.TotalTasks > 0 {
		line += " | Tasks: " + strconv.Itoa(state.TotalTasks)
	}
	if elapsed != "" {
		line += " | Elapsed: " + elapsed
	}
	if state.Finished {
		line += " | finished"
	}
	return stylize(line, noColor, lipgloss.Color("33"))
}

// renderSummary renders the status counts line.
func renderSummary(state State, noColor bool) string {
	counts := state.Counts
	line := "Pending: " + strconv.Itoa(counts.Pending) +
		" Ingesting: " + strconv.Itoa(counts.Ingesting) +
		" Querying: " + strconv.Itoa(counts.Querying) +
		" Scoring: " + strconv.Itoa(counts.Scoring) +
		" Succeeded: " + strconv.Itoa(counts.Succeeded) +
		" Failed: " + strconv.Itoa(counts.Failed) +
		" Resumed: " + strconv.Itoa(counts.Resumed)
	return stylize(line, noColor, lipgloss.Color("242"))
}

// renderFooter renders the last event line.
func renderFooter(state State, noColor bool) string {
	if state.LastEvent == "" {
		return ""
	}
	return stylize("Last event: "+state.LastEvent, noColor, lipgloss.Color("244"))
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
