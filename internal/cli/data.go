package cli

import (
	"fmt"

	"github.com/piwi3910/CargoLoad/internal/project"
	"github.com/spf13/cobra"
)

func newDataCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Back up or restore config, inventory and templates",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "export <file>",
		Short: "Write all user data to a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appCfg, err := project.LoadAppConfig(a.cfg.AppConfigPath())
			if err != nil {
				return fmt.Errorf("failed to load app config: %w", err)
			}
			inv, err := project.LoadInventory(a.cfg.InventoryPath())
			if err != nil {
				return fmt.Errorf("failed to load inventory: %w", err)
			}
			store, err := a.loadTemplates()
			if err != nil {
				return err
			}

			if err := project.ExportAllData(args[0], appCfg, inv, store); err != nil {
				return fmt.Errorf("failed to write backup: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backed up %d presets, %d containers and %d templates to %s\n",
				len(inv.Cargo), len(inv.Containers), len(store.Templates), args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "import <file>",
		Short: "Restore user data from a backup file, replacing the current data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backup, err := project.ImportAllData(args[0])
			if err != nil {
				return fmt.Errorf("failed to read backup: %w", err)
			}

			if err := project.SaveAppConfig(a.cfg.AppConfigPath(), backup.Config); err != nil {
				return fmt.Errorf("failed to save app config: %w", err)
			}
			if err := project.SaveInventory(a.cfg.InventoryPath(), backup.Inventory); err != nil {
				return fmt.Errorf("failed to save inventory: %w", err)
			}
			if err := project.SaveTemplates(a.cfg.TemplatesPath(), backup.Templates); err != nil {
				return fmt.Errorf("failed to save templates: %w", err)
			}

			a.log.Info("backup restored", "version", backup.Version, "created_at", backup.CreatedAt)
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %d presets, %d containers and %d templates\n",
				len(backup.Inventory.Cargo), len(backup.Inventory.Containers), len(backup.Templates.Templates))
			return nil
		},
	})
	return cmd
}
