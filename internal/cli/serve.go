package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/xoso-stats/internal/config"
	"github.com/pfrederiksen/xoso-stats/internal/server"
)

func (a *app) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analyses as a JSON API",
		Long: `Starts an HTTP server exposing /api/table, /api/track, /api/gan,
/api/freq, /api/streak, /api/lookup/{pair}, POST /api/refresh, /healthz
and Prometheus metrics at /metrics.`,
		Args: cobra.NoArgs,
		RunE: a.runServe,
	}
	cmd.Flags().String("listen", config.Default().Listen, "Address to listen on")
	return cmd
}

func (a *app) runServe(cmd *cobra.Command, _ []string) error {
	opts, err := a.cfg.Tracking.Options()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(a.svc, server.Options{
		Addr:     a.cfg.Listen,
		Days:     a.cfg.FetchDays,
		ShowDays: a.cfg.ShowDays,
		Tracking: opts,
	})
	return srv.Run(ctx)
}
