package cli

import (
	"github.com/piwi3910/CargoLoad/internal/engine"
	"github.com/spf13/cobra"
)

func newCompareCmd(a *app) *cobra.Command {
	var presets []string

	cmd := &cobra.Command{
		Use:   "compare [cargo file]",
		Short: "Compare what-if container selections for a cargo list",
		Long: `Compare plans the same cargo under the current selection, the other
selection metric, standard equipment only, the largest standard type on its
own and the whole catalog, and prints the outcome of each.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := a.readInput(cmd, args, presets)
			if err != nil {
				return err
			}
			sel, err := a.resolve(cmd, in)
			if err != nil {
				return err
			}

			scenarios := engine.BuildDefaultScenarios(sel.Types, sel.Catalog, sel.Settings)
			results := engine.CompareScenarios(scenarios, in.Cargo)
			a.log.Debug("scenarios compared", "count", len(results))
			return RenderComparison(cmd.OutOrStdout(), results)
		},
	}

	addInputFlags(cmd, &presets)
	return cmd
}
