// Package report renders finished runs as terminal tables and HTML
// pages, and locates run artifacts under a results directory.
package report

import (
	"context"
	"fmt"
	"html"
	"io"
	"sort"

	"github.com/a-h/templ"

	"ragbench/internal/runner"
)

// ReportPage builds the HTML component for a set of runs, newest
// first.
func ReportPage(summaries []runner.RunSummary) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, pageHeader); err != nil {
			return err
		}
		for _, summary := range summaries {
			if err := writeRunSection(w, summary); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, pageFooter)
		return err
	})
}

const pageHeader = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Benchmark report</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
table { border-collapse: collapse; margin-bottom: 2rem; }
th, td { border: 1px solid #ccc; padding: 0.4rem 0.8rem; text-align: left; }
th { background: #f0f0f0; }
.failed { color: #b00020; }
</style>
</head>
<body>
<h1>Benchmark report</h1>
`

const pageFooter = `</body>
</html>
`

func writeRunSection(w io.Writer, summary runner.RunSummary) error {
	if _, err := fmt.Fprintf(w, "<h2>Run %s</h2>\n<p>dataset %s, %d tasks, %d succeeded, %d failed, %d resumed</p>\n",
		html.EscapeString(summary.RunID), html.EscapeString(summary.Dataset),
		summary.Tasks.Total, summary.Tasks.Succeeded, summary.Tasks.Failed, summary.Tasks.Resumed); err != nil {
		return err
	}
	metrics := collectMetrics(summary)
	if _, err := io.WriteString(w, "<table>\n<tr><th>provider</th>"); err != nil {
		return err
	}
	for _, metric := range metrics {
		if _, err := fmt.Fprintf(w, "<th>%s</th>", html.EscapeString(metric)); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, "</tr>\n"); err != nil {
		return err
	}
	for _, provider := range summary.Providers {
		if _, err := fmt.Fprintf(w, "<tr><td>%s</td>", html.EscapeString(provider)); err != nil {
			return err
		}
		averages, ok := summary.ProviderAverages[provider]
		for _, metric := range metrics {
			cell := "&mdash;"
			if ok {
				if score, found := averages[metric]; found {
					cell = formatScore(score)
				}
			}
			if _, err := fmt.Fprintf(w, "<td>%s</td>", cell); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "</tr>\n"); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</table>\n")
	return err
}

// collectMetrics returns the union of averaged metrics across
// providers, configured metrics first.
func collectMetrics(summary runner.RunSummary) []string {
	seen := make(map[string]bool)
	var metrics []string
	for _, metric := range summary.Metrics {
		seen[metric] = true
		metrics = append(metrics, metric)
	}
	var extra []string
	for _, averages := range summary.ProviderAverages {
		for metric := range averages {
			if !seen[metric] {
				seen[metric] = true
				extra = append(extra, metric)
			}
		}
	}
	sort.Strings(extra)
	return append(metrics, extra...)
}
