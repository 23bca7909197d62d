package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"convogen/internal/record"
)

func newSampleCmd(logger *zap.Logger) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write a sample input prompts file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := record.WriteSampleInput(output); err != nil {
				return err
			}
			logger.Info("sample input written", zap.String("path", output))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "input_prompts.jsonl", "path for the sample prompts file")

	return cmd
}
