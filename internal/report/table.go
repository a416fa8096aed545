package report

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"ragbench/internal/runner"
)

// RenderScoreTable formats the run's provider averages as a terminal
// table.
func RenderScoreTable(summary runner.RunSummary) string {
	metrics := collectMetrics(summary)

	writer := table.NewWriter()
	writer.SetStyle(table.StyleLight)

	header := table.Row{"provider"}
	for _, metric := range metrics {
		header = append(header, metric)
	}
	header = append(header, "status")
	writer.AppendHeader(header)

	for _, provider := range summary.Providers {
		row := table.Row{provider}
		averages, ok := summary.ProviderAverages[provider]
		for _, metric := range metrics {
			if score, found := averages[metric]; ok && found {
				row = append(row, formatScore(score))
			} else {
				row = append(row, "-")
			}
		}
		if ok {
			row = append(row, "ok")
		} else {
			row = append(row, text.FgRed.Sprint("no successes"))
		}
		writer.AppendRow(row)
	}
	return writer.Render()
}

// RenderRunList formats available runs for the report command.
func RenderRunList(runIDs []string) string {
	writer := table.NewWriter()
	writer.SetStyle(table.StyleLight)
	writer.AppendHeader(table.Row{"run"})
	for _, runID := range runIDs {
		writer.AppendRow(table.Row{runID})
	}
	return writer.Render()
}
