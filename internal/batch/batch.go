// Package batch iterates prompts, scenarios and variations and drives the
// retry loop for each. Variations are independent: each owns its prompt
// string and verdict, so they can run concurrently without shared state.
package batch

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"convogen/internal/catalog"
	"convogen/internal/generate"
	"convogen/internal/prompt"
	"convogen/internal/record"
)

// Options configures one batch run.
type Options struct {
	// Variations per scenario; defaults to prompt.DefaultVariations.
	Variations int
	// MaxScenarios limits the run to the first N catalog entries;
	// zero means the full catalog.
	MaxScenarios int
	// Concurrency bounds variations resolved in parallel; the reference
	// behavior is sequential (1).
	Concurrency int
	// Model name stamped into record metadata.
	Model string
}

// RunStats summarizes a completed run.
type RunStats struct {
	RunID              string
	TotalPrompts       int
	TotalConversations int
	Passed             int
	Failed             int
	AverageQuality     float64
	Duration           time.Duration
}

// Orchestrator wires the catalog, randomizer, backend and retry controller
// into full batch runs.
type Orchestrator struct {
	catalog    *catalog.Catalog
	randomizer *prompt.Randomizer
	backend    generate.Backend
	retry      *generate.RetryController
	logger     *zap.Logger
	opts       Options
}

// New builds an orchestrator.
func New(cat *catalog.Catalog, randomizer *prompt.Randomizer, backend generate.Backend, retry *generate.RetryController, logger *zap.Logger, opts Options) *Orchestrator {
	if opts.Variations <= 0 {
		opts.Variations = prompt.DefaultVariations
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	return &Orchestrator{
		catalog:    cat,
		randomizer: randomizer,
		backend:    backend,
		retry:      retry,
		logger:     logger,
		opts:       opts,
	}
}

// task is one scheduled variation with its fully built prompt.
type task struct {
	scenario catalog.ScenarioDefinition
	request  prompt.GenerationRequest
	prompt   string
}

// Run resolves every prompt x scenario x variation combination. Failures
// inside one variation never propagate to siblings; every variation yields
// exactly one record, pass or fail. Only context cancellation aborts the
// run, returning the records completed so far.
func (o *Orchestrator) Run(ctx context.Context, prompts []record.InputPrompt) ([]record.GeneratedRecord, RunStats, error) {
	start := time.Now()
	runID := uuid.NewString()
	scenarios := o.catalog.First(o.opts.MaxScenarios)

	o.logger.Info("starting batch run",
		zap.String("run_id", runID),
		zap.Int("prompts", len(prompts)),
		zap.Int("scenarios", len(scenarios)),
		zap.Int("variations", o.opts.Variations))

	// the randomizer is not safe for concurrent use: draw all variation
	// attributes up front, then fan the attempts out
	var tasks []task
	for _, input := range prompts {
		for _, scenario := range scenarios {
			for _, req := range o.randomizer.Variations(scenario, o.opts.Variations) {
				tasks = append(tasks, task{
					scenario: scenario,
					request:  req,
					prompt:   prompt.Build(input.SystemPrompt, scenario, req),
				})
			}
		}
	}

	records := make([]record.GeneratedRecord, len(tasks))
	done := make([]bool, len(tasks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.opts.Concurrency)
	for i, t := range tasks {
		i, t := i, t
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			records[i] = o.resolve(gctx, t)
			done[i] = true
			return gctx.Err()
		})
	}
	runErr := g.Wait()

	// keep whatever completed, in schedule order
	completed := records[:0]
	for i, r := range records {
		if done[i] {
			completed = append(completed, r)
		}
	}

	stats := RunStats{RunID: runID, TotalPrompts: len(prompts), Duration: time.Since(start)}
	var qualitySum float64
	for _, r := range completed {
		stats.TotalConversations++
		qualitySum += r.Verdict.QualityScore
		if r.Verdict.Passed {
			stats.Passed++
		} else {
			stats.Failed++
		}
	}
	if stats.TotalConversations > 0 {
		stats.AverageQuality = qualitySum / float64(stats.TotalConversations)
	}

	o.logger.Info("batch run finished",
		zap.String("run_id", runID),
		zap.Int("total", stats.TotalConversations),
		zap.Int("passed", stats.Passed),
		zap.Int("failed", stats.Failed),
		zap.Float64("avg_quality", stats.AverageQuality),
		zap.Duration("duration", stats.Duration))

	return completed, stats, runErr
}

func (o *Orchestrator) resolve(ctx context.Context, t task) record.GeneratedRecord {
	required := make([]string, len(t.scenario.SpecialTags))
	copy(required, t.scenario.SpecialTags)

	result := o.retry.GenerateWithRetry(ctx, o.backend, t.prompt, required, t.scenario.ID)

	o.logger.Info("variation resolved",
		zap.String("scenario", t.scenario.ID),
		zap.Int("variation", t.request.VariationID),
		zap.Stringer("state", result.State),
		zap.Int("attempts", result.Attempts),
		zap.Float64("quality", result.Verdict.QualityScore))

	return record.GeneratedRecord{
		ScenarioID:   t.scenario.ID,
		VariationID:  t.request.VariationID,
		Conversation: result.Conversation,
		Verdict:      result.Verdict,
		SystemPrompt: result.Prompt,
		Metadata: record.Metadata{
			GeneratedAt:      time.Now().UTC(),
			Model:            o.opts.Model,
			GeneratorVersion: record.GeneratorVersion,
		},
	}
}
