package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/piwi3910/CargoLoad/internal/importer"
	"github.com/piwi3910/CargoLoad/internal/model"
	"github.com/piwi3910/CargoLoad/internal/project"
	"github.com/spf13/cobra"
)

// cargoInput is the cargo a command works on, plus the project it came from
// when the input was a saved project file.
type cargoInput struct {
	Cargo   []model.CargoTemplate
	Project *model.Project
}

// addInputFlags registers the cargo source flags shared by plan, compare,
// estimate and template save.
func addInputFlags(cmd *cobra.Command, presets *[]string) {
	cmd.Flags().StringSliceVar(presets, "preset", nil, `add inventory presets as NAME=QTY or ID=QTY`)
}

// readInput loads cargo from the optional file argument and any --preset
// entries. "-" reads pasted rows from stdin.
func (a *app) readInput(cmd *cobra.Command, args []string, presets []string) (cargoInput, error) {
	var in cargoInput
	if len(args) > 0 {
		var err error
		in, err = a.readFile(cmd, args[0])
		if err != nil {
			return cargoInput{}, err
		}
	}

	if len(presets) > 0 {
		inv, err := project.LoadInventory(a.cfg.InventoryPath())
		if err != nil {
			return cargoInput{}, fmt.Errorf("failed to load inventory: %w", err)
		}
		lines, err := presetCargo(inv, presets)
		if err != nil {
			return cargoInput{}, err
		}
		in.Cargo = append(in.Cargo, lines...)
	}

	if len(in.Cargo) == 0 {
		return cargoInput{}, errors.New("no cargo given: pass a cargo file or --preset")
	}
	if err := model.ValidateTemplates(in.Cargo); err != nil {
		return cargoInput{}, err
	}
	return in, nil
}

func (a *app) readFile(cmd *cobra.Command, path string) (cargoInput, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return cargoInput{}, fmt.Errorf("failed to read stdin: %w", err)
		}
		if looksLikeCSV(data) {
			return a.fromImport("stdin", importer.ImportCSVFromReader(bytes.NewReader(data), importer.DetectCSVDelimiter(data)))
		}
		return a.fromImport("stdin", importer.ParsePaste(string(data)))
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		p, err := project.LoadProject(path)
		if err != nil {
			return cargoInput{}, fmt.Errorf("failed to load project: %w", err)
		}
		return cargoInput{Cargo: p.Cargo, Project: &p}, nil
	case ".csv":
		return a.fromImport(path, importer.ImportCSV(path))
	case ".xlsx", ".xlsm":
		return a.fromImport(path, importer.ImportExcel(path))
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return cargoInput{}, fmt.Errorf("failed to read %s: %w", path, err)
		}
		return a.fromImport(path, importer.ParsePaste(string(data)))
	}
}

// looksLikeCSV reports whether the first line is a recognised CSV header.
// Anything else is treated as pasted rows.
func looksLikeCSV(data []byte) bool {
	first, _, _ := strings.Cut(string(data), "\n")
	first = strings.TrimRight(first, "\r")
	delim := importer.DetectCSVDelimiter(data)
	_, isHeader := importer.DetectColumns(strings.Split(first, string(delim)))
	return isHeader
}

// fromImport logs row problems and keeps whatever cargo was usable.
func (a *app) fromImport(source string, res importer.ImportResult) (cargoInput, error) {
	for _, e := range res.Errors {
		a.log.Warn("skipped cargo row", "source", source, "error", e)
	}
	for _, w := range res.Warnings {
		a.log.Info("import note", "source", source, "warning", w)
	}
	if len(res.Cargo) == 0 {
		if len(res.Errors) > 0 {
			return cargoInput{}, fmt.Errorf("no usable cargo in %s: %s", source, strings.Join(res.Errors, "; "))
		}
		return cargoInput{}, fmt.Errorf("no cargo found in %s", source)
	}
	a.log.Debug("cargo imported", "source", source, "lines", len(res.Cargo), "units", model.TotalUnits(res.Cargo))
	return cargoInput{Cargo: res.Cargo}, nil
}

// presetCargo turns NAME=QTY entries into cargo lines. Presets are matched by
// ID first, then by name.
func presetCargo(inv model.Inventory, entries []string) ([]model.CargoTemplate, error) {
	lines := make([]model.CargoTemplate, 0, len(entries))
	for _, entry := range entries {
		i := strings.LastIndex(entry, "=")
		if i <= 0 {
			return nil, fmt.Errorf("invalid preset %q: want NAME=QTY", entry)
		}
		key := strings.TrimSpace(entry[:i])
		qty, err := strconv.Atoi(strings.TrimSpace(entry[i+1:]))
		if err != nil || qty <= 0 {
			return nil, fmt.Errorf("invalid preset quantity in %q", entry)
		}
		preset := inv.FindCargoByID(key)
		if preset == nil {
			preset = inv.FindCargoByName(key)
		}
		if preset == nil {
			return nil, fmt.Errorf("unknown cargo preset %q (available: %s)", key, strings.Join(inv.CargoNames(), ", "))
		}
		lines = append(lines, preset.ToTemplate(qty))
	}
	return lines, nil
}

// selection is the resolved container choice and planner settings.
type selection struct {
	Catalog  []model.ContainerType
	IDs      []string
	Types    []model.ContainerType
	Settings model.PlanSettings
}

// loadCatalog merges the built-in types with the inventory's custom
// containers, the custom catalog file and any extra types, later sources
// replacing earlier ones with the same ID.
func (a *app) loadCatalog(extra []model.ContainerType) ([]model.ContainerType, error) {
	catalog := model.DefaultCatalog()

	if _, err := os.Stat(a.cfg.InventoryPath()); err == nil {
		inv, err := project.LoadInventory(a.cfg.InventoryPath())
		if err != nil {
			return nil, fmt.Errorf("failed to load inventory: %w", err)
		}
		catalog = project.MergeCatalog(catalog, inv.Containers)
	}

	if a.cfg.Plan.Catalog != "" {
		custom, err := project.LoadCatalog(a.cfg.Plan.Catalog)
		if err != nil {
			return nil, fmt.Errorf("failed to load container catalog: %w", err)
		}
		catalog = project.MergeCatalog(catalog, custom)
	}

	return project.MergeCatalog(catalog, extra), nil
}

// resolve picks the container types and settings. Explicit flags win over a
// loaded project, which wins over configuration; the saved app defaults fill
// in the container selection last.
func (a *app) resolve(cmd *cobra.Command, in cargoInput) (selection, error) {
	var extra []model.ContainerType
	if in.Project != nil {
		extra = in.Project.Custom
	}
	catalog, err := a.loadCatalog(extra)
	if err != nil {
		return selection{}, err
	}

	settings, err := a.cfg.PlanSettings()
	if err != nil {
		return selection{}, err
	}
	ids := a.cfg.Plan.Containers

	flags := cmd.Flags()
	if p := in.Project; p != nil {
		if !flags.Changed("metric") && p.Settings.Metric != "" {
			settings.Metric = p.Settings.Metric
		}
		if !flags.Changed("round-cap") && p.Settings.RoundCap > 0 {
			settings.RoundCap = p.Settings.RoundCap
		}
		if !flags.Changed("containers") && len(p.ContainerIDs) > 0 {
			ids = p.ContainerIDs
		}
	}

	if len(ids) == 0 {
		appCfg, err := project.LoadAppConfig(a.cfg.AppConfigPath())
		if err != nil {
			return selection{}, fmt.Errorf("failed to load app config: %w", err)
		}
		defaults := model.NewProject()
		appCfg.ApplyToProject(&defaults)
		ids = defaults.ContainerIDs
	}

	types, unknown := model.SelectContainers(catalog, ids)
	if len(unknown) > 0 {
		return selection{}, fmt.Errorf("unknown container types: %s", strings.Join(unknown, ", "))
	}
	if len(types) == 0 {
		return selection{}, errors.New("no container types selected")
	}

	a.log.Debug("container selection", "types", ids, "metric", settings.Metric, "round_cap", settings.RoundCap)
	return selection{Catalog: catalog, IDs: ids, Types: types, Settings: settings}, nil
}
