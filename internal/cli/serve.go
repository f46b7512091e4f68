package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/piwi3910/CargoLoad/internal/api"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the planning HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := a.loadCatalog(nil)
			if err != nil {
				return err
			}
			settings, err := a.cfg.PlanSettings()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if a.cfg.Server.MaxUnits < 1 {
				return fmt.Errorf("server.max_units must be positive, got %d", a.cfg.Server.MaxUnits)
			}

			srv := api.NewServer(catalog, settings, a.log)
			srv.SetMaxUnits(a.cfg.Server.MaxUnits)
			return srv.ListenAndServe(ctx, a.cfg.Server.Address(), a.cfg.Server.ShutdownTimeout)
		},
	}

	cmd.Flags().String("host", "127.0.0.1", "address to listen on")
	cmd.Flags().Int("port", 8080, "port to listen on")
	return cmd
}
