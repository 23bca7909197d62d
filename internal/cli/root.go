// Package cli wires the cobra command tree for the generator binary.
package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"convogen/internal/config"
)

// NewRootCmd builds the command tree. The logger and config are injected so
// commands stay testable.
func NewRootCmd(logger *zap.Logger, cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "convogen",
		Short:         "Generate labeled debt-collection conversations for fine-tuning",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newGenerateCmd(logger, cfg))
	root.AddCommand(newConvertCmd(logger))
	root.AddCommand(newScenariosCmd())
	root.AddCommand(newSampleCmd(logger))

	return root
}
