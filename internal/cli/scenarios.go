package cli

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"convogen/internal/catalog"
)

func newScenariosCmd() *cobra.Command {
	var (
		catalogPath string
		scenarioID  string
	)

	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "List the scenario catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := catalog.Default()
			if catalogPath != "" {
				loaded, err := catalog.Load(catalogPath)
				if err != nil {
					return err
				}
				cat = loaded
			}

			out := cmd.OutOrStdout()

			if scenarioID != "" {
				s, ok := cat.ByID(scenarioID)
				if !ok {
					return errors.Errorf("scenario %q not found", scenarioID)
				}
				fmt.Fprintf(out, "ID:                %s\n", s.ID)
				fmt.Fprintf(out, "Name:              %s\n", s.Name)
				fmt.Fprintf(out, "Description:       %s\n", s.Description)
				fmt.Fprintf(out, "Customer behavior: %s\n", s.CustomerBehavior)
				fmt.Fprintf(out, "Expected outcome:  %s\n", s.Outcome)
				fmt.Fprintf(out, "Special tags:      %s\n", strings.Join(s.SpecialTags, ", "))
				fmt.Fprintf(out, "Category:          %s\n", catalog.Categorize(s))
				return nil
			}

			for _, s := range cat.Scenarios() {
				tags := strings.Join(s.SpecialTags, ", ")
				fmt.Fprintf(out, "%-40s %-45s [%s]\n", s.ID, s.Name, tags)
			}
			fmt.Fprintf(out, "\n%d scenarios\n", cat.Len())
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "optional YAML scenario catalog (defaults to builtin)")
	cmd.Flags().StringVar(&scenarioID, "id", "", "show a single scenario by id")

	return cmd
}
