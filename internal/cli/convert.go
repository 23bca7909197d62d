package cli

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"convogen/internal/formats"
	"convogen/internal/record"
)

func newConvertCmd(logger *zap.Logger) *cobra.Command {
	var (
		conversationsFile string
		promptsFile       string
		outputDir         string
		format            string
		withStats         bool
	)

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert generated records into fine-tuning formats",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case "all", "sharegpt", "chatml", "alpaca":
			default:
				return errors.Errorf("unknown format %q", format)
			}

			records, err := record.ReadRecords(conversationsFile, logger)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				return errors.Errorf("no records loaded from %s", conversationsFile)
			}

			prompts, err := record.ReadInputPrompts(promptsFile, logger)
			if err != nil {
				return err
			}
			systemPrompt := prompts[0].SystemPrompt

			if err := os.MkdirAll(outputDir, 0o755); err != nil {
				return errors.Wrap(err, "create output directory")
			}

			stats := map[string]formats.TrainingStats{}

			if format == "all" || format == "sharegpt" {
				entries := formats.ToShareGPT(systemPrompt, records)
				path := filepath.Join(outputDir, "debt_collection_sharegpt.jsonl")
				if err := formats.WriteJSONL(path, entries); err != nil {
					return err
				}
				stats["sharegpt"] = formats.ShareGPTStats(entries)
				logger.Info("dataset written", zap.String("format", "sharegpt"),
					zap.String("path", path), zap.Int("entries", len(entries)))
			}
			if format == "all" || format == "chatml" {
				entries := formats.ToChatML(systemPrompt, records)
				path := filepath.Join(outputDir, "debt_collection_chatml.jsonl")
				if err := formats.WriteJSONL(path, entries); err != nil {
					return err
				}
				stats["chatml"] = formats.ChatMLStats(entries)
				logger.Info("dataset written", zap.String("format", "chatml"),
					zap.String("path", path), zap.Int("entries", len(entries)))
			}
			if format == "all" || format == "alpaca" {
				entries := formats.ToAlpaca(systemPrompt, records)
				path := filepath.Join(outputDir, "debt_collection_alpaca.jsonl")
				if err := formats.WriteJSONL(path, entries); err != nil {
					return err
				}
				stats["alpaca"] = formats.AlpacaStats(entries)
				logger.Info("dataset written", zap.String("format", "alpaca"),
					zap.String("path", path), zap.Int("entries", len(entries)))
			}

			if withStats {
				data, err := json.MarshalIndent(stats, "", "  ")
				if err != nil {
					return errors.Wrap(err, "marshal statistics")
				}
				statsPath := filepath.Join(outputDir, "training_statistics.json")
				if err := os.WriteFile(statsPath, data, 0o644); err != nil {
					return errors.Wrap(err, "write statistics")
				}
				logger.Info("statistics written", zap.String("path", statsPath))
			}

			readmePath := filepath.Join(outputDir, "README.md")
			if err := os.WriteFile(readmePath, []byte(formats.GenerateReadme(stats)), 0o644); err != nil {
				return errors.Wrap(err, "write README")
			}
			logger.Info("conversion complete", zap.String("output_dir", outputDir))
			return nil
		},
	}

	cmd.Flags().StringVar(&conversationsFile, "conversations", "", "generated records JSONL file")
	cmd.Flags().StringVar(&promptsFile, "prompts", "", "input prompts JSONL file (system prompt source)")
	cmd.Flags().StringVar(&outputDir, "output-dir", "./training_data", "output directory for converted data")
	cmd.Flags().StringVar(&format, "format", "all", "output format: all, sharegpt, chatml or alpaca")
	cmd.Flags().BoolVar(&withStats, "stats", false, "write dataset statistics")
	_ = cmd.MarkFlagRequired("conversations")
	_ = cmd.MarkFlagRequired("prompts")

	return cmd
}
