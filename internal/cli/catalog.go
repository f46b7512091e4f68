package cli

import (
	"errors"
	"fmt"

	"github.com/piwi3910/CargoLoad/internal/model"
	"github.com/piwi3910/CargoLoad/internal/project"
	"github.com/spf13/cobra"
)

func newCatalogCmd(a *app) *cobra.Command {
	var customOnly bool

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List container types",
		Long: `Catalog lists the built-in container types together with the custom
types from the inventory and the custom catalog file (--catalog).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if customOnly {
				custom, err := a.customCatalog()
				if err != nil {
					return err
				}
				return RenderCatalog(cmd.OutOrStdout(), custom)
			}
			catalog, err := a.loadCatalog(nil)
			if err != nil {
				return err
			}
			return RenderCatalog(cmd.OutOrStdout(), catalog)
		},
	}
	cmd.Flags().BoolVar(&customOnly, "custom", false, "list only the custom catalog file")

	cmd.AddCommand(newCatalogAddCmd(a), newCatalogRemoveCmd(a))
	return cmd
}

func (a *app) customCatalog() ([]model.ContainerType, error) {
	if a.cfg.Plan.Catalog == "" {
		return nil, errors.New("no custom catalog file configured")
	}
	return project.LoadCatalog(a.cfg.Plan.Catalog)
}

func newCatalogAddCmd(a *app) *cobra.Command {
	var (
		ct        model.ContainerType
		equipment string
		toInv     bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add or replace a custom container type",
		Example: `  cargoload catalog add --id 45_hc_pw --name "45' Pallet Wide" \
    --length 13.556 --width 2.444 --height 2.698 --max-weight 27700`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eq, err := model.ParseEquipment(equipment)
			if err != nil {
				return err
			}
			ct.Equipment = eq
			if ct.Name == "" {
				ct.Name = ct.ID
			}
			if err := ct.Validate(); err != nil {
				return fmt.Errorf("invalid container type: %w", err)
			}

			var (
				replaced bool
				target   string
			)
			if toInv {
				target = a.cfg.InventoryPath()
				inv, err := project.LoadInventory(target)
				if err != nil {
					return fmt.Errorf("failed to load inventory: %w", err)
				}
				replaced = inv.UpsertContainer(ct)
				if err := project.SaveInventory(target, inv); err != nil {
					return fmt.Errorf("failed to save inventory: %w", err)
				}
			} else {
				target = a.cfg.Plan.Catalog
				custom, err := a.customCatalog()
				if err != nil {
					return err
				}
				replaced = model.FindContainer(custom, ct.ID) != nil
				custom = project.MergeCatalog(custom, []model.ContainerType{ct})
				if err := project.SaveCatalog(target, custom); err != nil {
					return fmt.Errorf("failed to save catalog: %w", err)
				}
			}

			verb := "Added"
			if replaced {
				verb = "Replaced"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s container type %s in %s\n", verb, ct.ID, target)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&ct.ID, "id", "", "container type ID")
	f.StringVar(&ct.Name, "name", "", "display name (defaults to the ID)")
	f.Float64Var(&ct.Length, "length", 0, "inner length in metres")
	f.Float64Var(&ct.Width, "width", 0, "inner width in metres")
	f.Float64Var(&ct.Height, "height", 0, "inner height in metres")
	f.Float64Var(&ct.MaxWeight, "max-weight", 0, "payload limit in kg")
	f.StringVar(&equipment, "equipment", "standard", "standard, open_top or flat_rack")
	f.BoolVar(&ct.TopOverhang, "top-overhang", false, "cargo may rise above the container")
	f.BoolVar(&ct.SideOverhang, "side-overhang", false, "cargo may overhang the sides and ends")
	f.StringVar(&ct.Color, "color", "", "display colour as #rrggbb")
	f.BoolVar(&toInv, "inventory", false, "store in the inventory instead of the catalog file")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newCatalogRemoveCmd(a *app) *cobra.Command {
	var fromInv bool

	cmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a custom container type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if fromInv {
				return a.removeInventoryContainer(cmd, args[0])
			}
			custom, err := a.customCatalog()
			if err != nil {
				return err
			}
			kept := make([]model.ContainerType, 0, len(custom))
			for _, ct := range custom {
				if ct.ID != args[0] {
					kept = append(kept, ct)
				}
			}
			if len(kept) == len(custom) {
				return fmt.Errorf("custom container type %q not found", args[0])
			}
			if err := project.SaveCatalog(a.cfg.Plan.Catalog, kept); err != nil {
				return fmt.Errorf("failed to save catalog: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed container type %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVar(&fromInv, "inventory", false, "remove from the inventory instead of the catalog file")
	return cmd
}

func (a *app) removeInventoryContainer(cmd *cobra.Command, id string) error {
	path := a.cfg.InventoryPath()
	inv, err := project.LoadInventory(path)
	if err != nil {
		return fmt.Errorf("failed to load inventory: %w", err)
	}
	if inv.FindContainerByID(id) == nil {
		return fmt.Errorf("inventory container type %q not found", id)
	}

	kept := inv.Containers[:0]
	for _, ct := range inv.Containers {
		if ct.ID != id {
			kept = append(kept, ct)
		}
	}
	inv.Containers = kept
	if err := project.SaveInventory(path, inv); err != nil {
		return fmt.Errorf("failed to save inventory: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed container type %s from the inventory\n", id)
	return nil
}
