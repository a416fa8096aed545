package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"ragbench/internal/reportserver"
)

// serveReports is a seam for tests.
var serveReports = reportserver.Serve

func runServe(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		addr := flags.String("addr", "127.0.0.1:8321", "Listen address")
		resultsDir := flags.String("results-dir", "data/results", "Results directory")
		dbPath := flags.String("db", "", "Optional DuckDB file to serve")
		if err := flags.Parse(args); err != nil {
			return ExitUsage
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(stdout, "Serving reports on http://%s\n", *addr)
		if err := serveReports(ctx, reportserver.Config{
			Addr:       *addr,
			ResultsDir: *resultsDir,
			DBPath:     *dbPath,
		}); err != nil {
			fmt.Fprintf(stderr, "Serve failed: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}
