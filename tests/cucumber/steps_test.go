package cucumber

import (
	"context"

	"ragbench/internal/dataset"
	"ragbench/internal/runner"
	"ragbench/internal/spec"
	"ragbench/internal/store"

	"github.com/cucumber/godog"
)

// featureState holds scenario state for benchmark feature tests.
type featureState struct {
	set       *dataset.Set
	cfg       spec.Config
	kv        *store.MemoryStore
	providers map[string]*countingProvider
	scorer    *fixedScorer
	summary   runner.RunSummary
	runErr    error
	runID     string
}

// InitializeScenario wires cucumber steps to the feature state.
func InitializeScenario(ctx *godog.ScenarioContext) {
	state := &featureState{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.Step(`^a dataset with documents "([^"]+)" and "([^"]+)"$`, state.aDatasetWithDocuments)
	ctx.Step(`^configured providers "([^"]+)" and "([^"]+)"$`, state.configuredProviders)
	ctx.Step(`^provider "([^"]+)" fails to ingest document "([^"]+)"$`, state.providerFailsToIngest)
	ctx.Step(`^a completed run$`, state.aCompletedRun)
	ctx.Step(`^the benchmark runs$`, state.theBenchmarkRuns)
	ctx.Step(`^the run is resumed$`, state.theRunIsResumed)
	ctx.Step(`^the run succeeds$`, state.theRunSucceeds)
	ctx.Step(`^the summary counts (\d+) tasks with (\d+) succeeded and (\d+) failed$`, state.theSummaryCountsTasks)
	ctx.Step(`^a result artifact exists for every document and provider pair$`, state.artifactExistsForEveryPair)
	ctx.Step(`^the provider averages include the metric "([^"]+)"$`, state.providerAveragesIncludeMetric)
	ctx.Step(`^the failure kind "([^"]+)" is counted (\d+) times?$`, state.failureKindIsCounted)
	ctx.Step(`^the task for document "([^"]+)" and provider "([^"]+)" is recorded as "([^"]+)"$`, state.taskIsRecordedAs)
	ctx.Step(`^no provider calls are made$`, state.noProviderCallsAreMade)
}

// reset clears all scenario state before each scenario.
func (s *featureState) reset() {
	s.set = nil
	s.cfg = spec.Config{}
	s.kv = store.NewMemoryStore()
	s.providers = map[string]*countingProvider{}
	s.scorer = &fixedScorer{}
	s.summary = runner.RunSummary{}
	s.runErr = nil
	s.runID = ""
}
