package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"convogen/internal/batch"
	"convogen/internal/catalog"
	"convogen/internal/config"
	"convogen/internal/generate"
	"convogen/internal/prompt"
	"convogen/internal/record"
	"convogen/internal/validate"
)

func newGenerateCmd(logger *zap.Logger, cfg *config.Config) *cobra.Command {
	var (
		inputFile   string
		outputFile  string
		catalogFile string
		scenarios   int
		variations  int
		maxAttempts int
		concurrency int
		seed        int64
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate validated conversations from system prompts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.OpenAIAPIKey == "" {
				return errors.New("OPENAI_API_KEY is not set")
			}

			cat := catalog.Default()
			if catalogFile != "" {
				var err error
				if cat, err = catalog.Load(catalogFile); err != nil {
					return err
				}
			}

			prompts, err := record.ReadInputPrompts(inputFile, logger)
			if err != nil {
				return err
			}

			backendCfg := generate.DefaultOpenAIConfig(cfg.OpenAIAPIKey)
			backendCfg.BaseURL = cfg.OpenAIBaseURL
			backendCfg.Model = cfg.OpenAIModel
			backend, err := generate.NewOpenAIBackend(backendCfg, logger)
			if err != nil {
				return err
			}

			validator := validate.NewValidator(cfg.ValidateConfig())
			retry := generate.NewRetryController(validator, maxAttempts, logger)

			orchestrator := batch.New(cat, prompt.NewRandomizer(seed), backend, retry, logger, batch.Options{
				Variations:   variations,
				MaxScenarios: scenarios,
				Concurrency:  concurrency,
				Model:        backend.Model(),
			})

			records, stats, runErr := orchestrator.Run(cmd.Context(), prompts)
			if len(records) > 0 {
				if err := record.WriteRecords(outputFile, records); err != nil {
					return err
				}
				logger.Info("records written",
					zap.String("path", outputFile),
					zap.Int("count", len(records)))
			}
			if runErr != nil {
				return errors.Wrap(runErr, "batch run aborted")
			}

			logger.Info("generation complete",
				zap.String("run_id", stats.RunID),
				zap.Int("total", stats.TotalConversations),
				zap.Int("passed", stats.Passed),
				zap.Int("failed", stats.Failed),
				zap.Float64("avg_quality", stats.AverageQuality))
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "input JSONL file with system prompts")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "output JSONL file for generated records")
	cmd.Flags().StringVar(&catalogFile, "catalog", "", "YAML scenario catalog replacing the built-in table")
	cmd.Flags().IntVarP(&scenarios, "scenarios", "s", 10, "number of scenarios to run (0 = full catalog)")
	cmd.Flags().IntVar(&variations, "variations", cfg.VariationsPerScenario, "variations per scenario")
	cmd.Flags().IntVar(&maxAttempts, "max-attempts", cfg.MaxAttempts, "generation attempts per variation")
	cmd.Flags().IntVar(&concurrency, "concurrency", 1, "variations resolved in parallel")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed for reproducible variation draws (0 = time-based)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
