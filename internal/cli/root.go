package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// Version is overridden at build time with -ldflags "-X ...cli.Version=...".
var Version = "1.0.0"

// app carries the state shared by all commands of one invocation.
type app struct {
	configPath string
	cfg        *Config
	log        *slog.Logger
}

// NewRootCmd builds the cargoload command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "cargoload",
		Short: "Container load planner",
		Long: `CargoLoad - Container Load Planner

Plans how a cargo list is loaded into a fleet of shipping containers,
reports what did not fit and why, and exports loading plans, labels
and manifests.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(a.configPath, cmd.Flags())
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = SetupLogger(cfg.Log, cmd.ErrOrStderr())
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default ~/.cargoload/cargoload.yaml)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "text", "log format: text or json")
	pf.StringSlice("containers", nil, "container type IDs to plan with")
	pf.String("metric", "count", "round selection metric: count or volume")
	pf.Int("round-cap", 0, "maximum number of containers per plan")
	pf.String("catalog", "", "custom container catalog YAML file")
	pf.String("data-dir", "", "directory holding config, inventory and templates")
	pf.String("export-dir", "", "directory relative output paths are written to")

	root.AddCommand(
		newPlanCmd(a),
		newCompareCmd(a),
		newEstimateCmd(a),
		newCatalogCmd(a),
		newServeCmd(a),
		newTemplateCmd(a),
		newInventoryCmd(a),
		newDataCmd(a),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}
