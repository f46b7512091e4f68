package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/CargoLoad/internal/engine"
	"github.com/piwi3910/CargoLoad/internal/export"
	"github.com/piwi3910/CargoLoad/internal/model"
	"github.com/piwi3910/CargoLoad/internal/project"
	"github.com/spf13/cobra"
)

// maxRecentProjects bounds the recent-projects list in the app config.
const maxRecentProjects = 10

type planOptions struct {
	presets []string
	json    bool
	pdf     string
	labels  string
	csv     string
	xlsx    string
	chart   string
	save    string
}

func newPlanCmd(a *app) *cobra.Command {
	var opts planOptions

	cmd := &cobra.Command{
		Use:   "plan [cargo file]",
		Short: "Plan a cargo list into containers",
		Long: `Plan reads a cargo list and allocates it to containers.

The cargo file may be CSV, Excel (.xlsx), a saved project (.json/.yaml) or
pasted tab separated rows. Use "-" to read pasted rows from stdin.`,
		Example: `  cargoload plan cargo.csv --containers 20_dv_iso,40_hc_iso --pdf plan.pdf
  cargoload plan project.yaml --metric volume --xlsx manifest.xlsx
  cargoload plan --preset "EUR Pallet 1200x800=24" --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPlan(cmd, args, opts)
		},
	}

	addInputFlags(cmd, &opts.presets)
	f := cmd.Flags()
	f.BoolVar(&opts.json, "json", false, "print the full result as JSON")
	f.StringVar(&opts.pdf, "pdf", "", "write the loading plan PDF")
	f.StringVar(&opts.labels, "labels", "", "write QR unit labels PDF")
	f.StringVar(&opts.csv, "csv", "", "write the manifest as CSV")
	f.StringVar(&opts.xlsx, "xlsx", "", "write the manifest as an Excel workbook")
	f.StringVar(&opts.chart, "chart", "", "write the utilisation chart as HTML")
	f.StringVar(&opts.save, "save", "", "save the project with its result (.json or .yaml)")
	return cmd
}

func (a *app) runPlan(cmd *cobra.Command, args []string, opts planOptions) error {
	in, err := a.readInput(cmd, args, opts.presets)
	if err != nil {
		return err
	}
	sel, err := a.resolve(cmd, in)
	if err != nil {
		return err
	}

	result := engine.New(sel.Settings, a.log).Plan(in.Cargo, sel.Types)

	out := cmd.OutOrStdout()
	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	} else if err := RenderSummary(out, result); err != nil {
		return err
	}

	if err := a.writeOutputs(result, opts); err != nil {
		return err
	}

	if opts.save != "" {
		return a.saveProject(opts.save, args, in, sel, result)
	}
	return nil
}

// writeOutputs runs every requested export.
func (a *app) writeOutputs(result model.FleetResult, opts planOptions) error {
	outputs := []struct {
		kind  string
		path  string
		write func(string, model.FleetResult) error
	}{
		{"pdf", opts.pdf, export.ExportPDF},
		{"labels", opts.labels, export.ExportLabels},
		{"csv", opts.csv, export.ExportManifestCSV},
		{"xlsx", opts.xlsx, export.ExportManifestXLSX},
		{"chart", opts.chart, export.ExportChart},
	}

	for _, o := range outputs {
		if o.path == "" {
			continue
		}
		path := a.cfg.ExportPath(o.path)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := o.write(path, result); err != nil {
			return fmt.Errorf("%s export failed: %w", o.kind, err)
		}
		a.log.Info("export written", "kind", o.kind, "path", path)
	}
	return nil
}

func (a *app) saveProject(name string, args []string, in cargoInput, sel selection, result model.FleetResult) error {
	p := model.NewProject()
	if in.Project != nil {
		p = *in.Project
	} else if len(args) > 0 && args[0] != "-" {
		p.Name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	}
	p.Cargo = in.Cargo
	p.ContainerIDs = sel.IDs
	p.Settings = sel.Settings
	p.Result = &result

	path := a.cfg.ExportPath(name)
	if err := project.SaveProject(path, p); err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}
	a.log.Info("project saved", "path", path)
	a.rememberProject(path)
	return nil
}

// rememberProject records path in the recent-projects list. Failures are
// logged only.
func (a *app) rememberProject(path string) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	cfgPath := a.cfg.AppConfigPath()
	appCfg, err := project.LoadAppConfig(cfgPath)
	if err != nil {
		a.log.Warn("could not load app config", "path", cfgPath, "error", err)
		return
	}
	appCfg.AddRecent(path, maxRecentProjects)
	if err := project.SaveAppConfig(cfgPath, appCfg); err != nil {
		a.log.Warn("could not save app config", "path", cfgPath, "error", err)
	}
}
