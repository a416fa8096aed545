package live

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"ragbench/internal/runner"
)

// defaultColumns returns the task table columns.
func defaultColumns() []table.Column {
	return []table.Column{
		{Title: "document", Width: 24},
		{Title: "provider", Width: 16},
		{Title: "status", Width: 16},
		{Title: "progress", Width: 12},
		{Title: "elapsed", Width: 10},
	}
}

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	if noColor {
		return table.DefaultStyles()
	}
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

// rowsForState converts UI state into table rows.
func rowsForState(state State, now time.Time) []table.Row {
	rows := make([]table.Row, 0, len(state.Rows))
	for _, row := range state.Rows {
		rows = append(rows, table.Row{
			row.DocID,
			row.Provider,
			formatStatus(row),
			formatProgress(row),
			formatRowDuration(row, now),
		})
	}
	return rows
}

func formatStatus(row TaskRow) string {
	if row.Status == runner.TaskFailed && row.ErrorKind != "" {
		return string(row.ErrorKind)
	}
	if row.Status == "" {
		return "pending"
	}
	return string(row.Status)
}

func formatProgress(row TaskRow) string {
	switch row.Status {
	case runner.TaskQuerying:
		return fmt.Sprintf("%d/%d", row.QuestionIndex, row.QuestionTotal)
	case runner.TaskScoring, runner.TaskRetryingScore:
		return fmt.Sprintf("attempt %d", row.Attempt)
	default:
		return ""
	}
}

func formatRowDuration(row TaskRow, now time.Time) string {
	if row.StartedAt.IsZero() {
		return ""
	}
	end := row.FinishedAt
	if end.IsZero() {
		end = now
	}
	if end.Before(row.StartedAt) {
		return ""
	}
	return end.Sub(row.StartedAt).Round(100 * time.Millisecond).String()
}
