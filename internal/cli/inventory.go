package cli

import (
	"fmt"

	"github.com/piwi3910/CargoLoad/internal/project"
	"github.com/spf13/cobra"
)

func newInventoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "List cargo presets and custom containers",
		Long: `Inventory lists the saved cargo presets, usable with --preset, and any
custom container types. The default inventory is created on first use.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := project.LoadInventory(a.cfg.InventoryPath())
			if err != nil {
				return fmt.Errorf("failed to load inventory: %w", err)
			}
			return RenderInventory(cmd.OutOrStdout(), inv)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "import <file>",
		Short: "Merge presets and containers from an inventory JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.InventoryPath()
			inv, err := project.LoadInventory(path)
			if err != nil {
				return fmt.Errorf("failed to load inventory: %w", err)
			}
			before := len(inv.Cargo) + len(inv.Containers)

			merged, err := project.ImportInventory(args[0], inv)
			if err != nil {
				return fmt.Errorf("failed to import inventory: %w", err)
			}
			for _, ct := range merged.Containers {
				if err := ct.Validate(); err != nil {
					return fmt.Errorf("imported inventory: %w", err)
				}
			}
			if err := project.SaveInventory(path, merged); err != nil {
				return fmt.Errorf("failed to save inventory: %w", err)
			}

			added := len(merged.Cargo) + len(merged.Containers) - before
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d new entries\n", added)
			return nil
		},
	})
	return cmd
}
