package commands

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lurelight/lurelight/pkg/engine"
	"github.com/lurelight/lurelight/pkg/server/app"
)

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the analysis HTTP server",
		Long: `Start the HTTP server exposing the analysis pipeline.

The server hosts:
  - REST endpoints under /api/v1 (feature extraction, visual matching,
    domain arbitration and the combined analyze pipeline)
  - Health and readiness endpoints (/healthz, /readyz)

It runs until interrupted (Ctrl+C) or killed, draining in-flight requests
on shutdown.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFromCommand(cmd)
			if err != nil {
				return err
			}

			eng, err := engine.New(cfg.Engine)
			if err != nil {
				return fmt.Errorf("initialize engine: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return app.New(cfg.Server, eng).Run(ctx)
		},
	}

	return cmd
}
