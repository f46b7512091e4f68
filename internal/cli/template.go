package cli

import (
	"fmt"

	"github.com/piwi3910/CargoLoad/internal/model"
	"github.com/piwi3910/CargoLoad/internal/project"
	"github.com/spf13/cobra"
)

func newTemplateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage reusable project templates",
	}
	cmd.AddCommand(
		newTemplateListCmd(a),
		newTemplateSaveCmd(a),
		newTemplateUseCmd(a),
		newTemplateDeleteCmd(a),
	)
	return cmd
}

func (a *app) loadTemplates() (model.TemplateStore, error) {
	store, err := project.LoadTemplates(a.cfg.TemplatesPath())
	if err != nil {
		return model.TemplateStore{}, fmt.Errorf("failed to load templates: %w", err)
	}
	return store, nil
}

// findTemplate looks a template up by ID, then by name.
func findTemplate(store *model.TemplateStore, key string) (*model.ProjectTemplate, error) {
	if t := store.FindByID(key); t != nil {
		return t, nil
	}
	if t := store.FindByName(key); t != nil {
		return t, nil
	}
	return nil, fmt.Errorf("template %q not found", key)
}

func newTemplateListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.loadTemplates()
			if err != nil {
				return err
			}
			return RenderTemplates(cmd.OutOrStdout(), store)
		},
	}
}

func newTemplateSaveCmd(a *app) *cobra.Command {
	var (
		presets     []string
		description string
	)

	cmd := &cobra.Command{
		Use:   "save <name> [cargo file]",
		Short: "Save cargo, container selection and settings as a template",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := a.readInput(cmd, args[1:], presets)
			if err != nil {
				return err
			}
			sel, err := a.resolve(cmd, in)
			if err != nil {
				return err
			}

			store, err := a.loadTemplates()
			if err != nil {
				return err
			}
			if store.FindByName(args[0]) != nil {
				return fmt.Errorf("template %q already exists", args[0])
			}

			tpl := model.NewProjectTemplate(args[0], description, in.Cargo, sel.IDs, sel.Settings)
			store.Add(tpl)
			if err := project.SaveTemplates(a.cfg.TemplatesPath(), store); err != nil {
				return fmt.Errorf("failed to save templates: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved template %s (%s)\n", tpl.Name, tpl.ID)
			return nil
		},
	}

	addInputFlags(cmd, &presets)
	cmd.Flags().StringVar(&description, "description", "", "template description")
	return cmd
}

func newTemplateUseCmd(a *app) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "use <template> <project file>",
		Short: "Create a project file from a template",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.loadTemplates()
			if err != nil {
				return err
			}
			tpl, err := findTemplate(&store, args[0])
			if err != nil {
				return err
			}
			if name == "" {
				name = tpl.Name
			}

			p := tpl.ToProject(name)
			path := a.cfg.ExportPath(args[1])
			if err := project.SaveProject(path, p); err != nil {
				return fmt.Errorf("failed to save project: %w", err)
			}
			a.rememberProject(path)
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s from template %s\n", path, tpl.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "project name (defaults to the template name)")
	return cmd
}

func newTemplateDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <template>",
		Short: "Delete a saved template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.loadTemplates()
			if err != nil {
				return err
			}
			tpl, err := findTemplate(&store, args[0])
			if err != nil {
				return err
			}
			id, tplName := tpl.ID, tpl.Name
			store.Remove(id)
			if err := project.SaveTemplates(a.cfg.TemplatesPath(), store); err != nil {
				return fmt.Errorf("failed to save templates: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted template %s\n", tplName)
			return nil
		},
	}
}
