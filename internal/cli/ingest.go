package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"ragbench/internal/duckdb"
	"ragbench/internal/report"
)

func runIngest(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		resultsDir := flags.String("results-dir", "data/results", "Results directory")
		runRef := flags.String("run", "latest", "Run id to ingest")
		dbPath := flags.String("db", "", "DuckDB database path")
		if err := flags.Parse(args); err != nil {
			return ExitUsage
		}
		if *dbPath == "" {
			fmt.Fprintln(stderr, "--db is required")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		summary, err := report.ResolveRun(*resultsDir, *runRef)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load run: %v\n", err)
			return ExitError
		}

		db, err := duckdb.Open(*dbPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open database: %v\n", err)
			return ExitError
		}
		defer db.Close()
		if err := duckdb.EnsureSchema(db); err != nil {
			fmt.Fprintf(stderr, "Failed to apply schema: %v\n", err)
			return ExitError
		}
		if err := duckdb.IngestRunSummary(context.Background(), db, summary); err != nil {
			fmt.Fprintf(stderr, "Failed to ingest run: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Run %s ingested into %s\n", summary.RunID, *dbPath)
		return ExitOK
	}
}
