package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"ragbench/internal/config"
	"ragbench/internal/dataset"
	"ragbench/internal/provider"
	"ragbench/internal/report"
	"ragbench/internal/runner"
	"ragbench/internal/scoring"
	"ragbench/internal/spec"
	"ragbench/internal/store"
	"ragbench/internal/ui/live"
)

// runBenchmark is a seam for tests.
var runBenchmark = runner.Run

// newScorer is a seam for tests; the default judge needs API access.
var newScorer = func(ctx context.Context, cfg spec.Config) (scoring.Scorer, error) {
	return scoring.NewGeminiJudge(ctx, cfg.Evaluation.Model, cfg.Evaluation.Metrics)
}

func runRun(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", defaultConfigPath, "Path to benchmark config")
		resumeID := flags.String("resume", "", "Resume a prior run by id (or \"latest\")")
		uiMode := flags.String("ui", "auto", "UI mode: auto, live or plain")
		verbose := flags.Bool("verbose", false, "Log every task event")
		noColor := flags.Bool("no-color", false, "Disable colored output")
		if err := flags.Parse(args); err != nil {
			return ExitUsage
		}

		cfg, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}

		set, err := dataset.Load(cfg.Dataset.Path, dataset.LoadOptions{
			MaxQuestionsPerDoc: cfg.Dataset.MaxQuestionsPerDoc,
		})
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load dataset: %v\n", err)
			return ExitError
		}

		kv, err := store.Open(cfg.Output)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open result store: %v\n", err)
			return ExitError
		}

		providers, err := provider.Default().NewAll(cfg.Providers)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to construct providers: %v\n", err)
			return ExitError
		}

		ctx := context.Background()
		scorer, err := newScorer(ctx, cfg)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to construct scorer: %v\n", err)
			return ExitError
		}

		resume, err := resolveResumeID(cfg, *resumeID)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to resolve resume run: %v\n", err)
			return ExitError
		}

		decision, err := resolveUIMode(*uiMode, *verbose, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		var observer runner.RunObserver
		var controller *live.Controller
		if decision.useLive {
			controller = live.Start(stdout, live.Options{NoColor: *noColor})
			observer = controller
		} else if *verbose {
			observer = runner.NewVerboseObserver(stderr, *noColor)
		}

		summary, runErr := runBenchmark(ctx, cfg, runner.RunParams{
			Set:         &set,
			ResumeRunID: resume,
			Deps: runner.RunDependencies{
				Providers: providers,
				Scorer:    scorer,
				Store:     kv,
				Observer:  observer,
			},
		})
		if controller != nil {
			controller.Close()
			controller.Wait()
		}
		if runErr != nil {
			fmt.Fprintf(stderr, "Run failed: %v\n", runErr)
			return ExitError
		}

		fmt.Fprintf(stdout, "Run %s completed: %d succeeded, %d failed, %d resumed\n",
			summary.RunID, summary.Tasks.Succeeded, summary.Tasks.Failed, summary.Tasks.Resumed)
		fmt.Fprintln(stdout, report.RenderScoreTable(summary))
		return ExitOK
	}
}

// resolveResumeID turns the resume flag (or the config's resume
// setting) into a concrete run ID. An enabled resume with no prior
// runs falls back to a fresh run.
func resolveResumeID(cfg spec.Config, flagValue string) (string, error) {
	ref := flagValue
	if ref == "" && cfg.Output.Resume {
		ref = "latest"
	}
	if ref == "" {
		return "", nil
	}
	if ref != "latest" {
		return ref, nil
	}
	if cfg.Output.Backend != "file" && cfg.Output.Backend != "" {
		return "", fmt.Errorf("resume latest requires the file backend; pass an explicit run id")
	}
	runIDs, err := report.ListRunIDs(cfg.Output.ResultsDir)
	if err != nil {
		return "", err
	}
	if len(runIDs) == 0 {
		return "", nil
	}
	return runIDs[0], nil
}
