package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"ragbench/internal/report"
	"ragbench/internal/runner"
)

func runReport(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		resultsDir := flags.String("results-dir", "data/results", "Results directory")
		runRef := flags.String("run", "latest", "Run id to report on")
		htmlPath := flags.String("html", "", "Write an HTML report to this path")
		list := flags.Bool("list", false, "List available runs")
		if err := flags.Parse(args); err != nil {
			return ExitUsage
		}

		if *list {
			runIDs, err := report.ListRunIDs(*resultsDir)
			if err != nil {
				fmt.Fprintf(stderr, "Failed to list runs: %v\n", err)
				return ExitError
			}
			fmt.Fprintln(stdout, report.RenderRunList(runIDs))
			return ExitOK
		}

		summary, err := report.ResolveRun(*resultsDir, *runRef)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load run: %v\n", err)
			return ExitError
		}

		if *htmlPath != "" {
			html, err := report.RenderReportHTML(context.Background(), []runner.RunSummary{summary})
			if err != nil {
				fmt.Fprintf(stderr, "Failed to render report: %v\n", err)
				return ExitError
			}
			if err := os.WriteFile(*htmlPath, []byte(html), 0o644); err != nil {
				fmt.Fprintf(stderr, "Failed to write report: %v\n", err)
				return ExitError
			}
			fmt.Fprintf(stdout, "Report written to %s\n", *htmlPath)
			return ExitOK
		}

		fmt.Fprintf(stdout, "Run %s (%s)\n", summary.RunID, summary.Dataset)
		fmt.Fprintln(stdout, report.RenderScoreTable(summary))
		return ExitOK
	}
}
