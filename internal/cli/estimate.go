package cli

import (
	"fmt"

	"github.com/piwi3910/CargoLoad/internal/model"
	"github.com/piwi3910/CargoLoad/internal/project"
	"github.com/spf13/cobra"
)

func newEstimateCmd(a *app) *cobra.Command {
	var (
		presets []string
		stowage float64
	)

	cmd := &cobra.Command{
		Use:   "estimate [cargo file]",
		Short: "Quick container count estimate by volume and weight",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := a.readInput(cmd, args, presets)
			if err != nil {
				return err
			}
			sel, err := a.resolve(cmd, in)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("stowage") {
				appCfg, err := project.LoadAppConfig(a.cfg.AppConfigPath())
				if err != nil {
					return fmt.Errorf("failed to load app config: %w", err)
				}
				stowage = appCfg.DefaultStowage
			}
			if stowage < 0 {
				return fmt.Errorf("stowage must not be negative, got %g", stowage)
			}

			estimates := make([]model.LoadEstimate, len(sel.Types))
			for i, ct := range sel.Types {
				estimates[i] = model.CalculateLoadEstimate(in.Cargo, ct, stowage)
			}
			return RenderEstimates(cmd.OutOrStdout(), sel.Types, estimates)
		},
	}

	addInputFlags(cmd, &presets)
	cmd.Flags().Float64Var(&stowage, "stowage", 0, "broken stowage allowance in percent (default from app config)")
	return cmd
}
