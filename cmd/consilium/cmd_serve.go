package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/consilium-ai/consilium/internal/projectconfig"
	"github.com/consilium-ai/consilium/internal/webserver"
)

func newServeCommand() *cobra.Command {
	var (
		port        int
		runsDir     string
		corsOrigins []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the analysis HTTP API server",
		Long: `Start the HTTP API server.

Endpoints:
  POST /api/analyze         Run a full analysis and return the recommendation
  POST /api/analyze/stream  Run an analysis with SSE progress events
  GET  /api/runs            List stored runs (sort, order query params)
  GET  /api/runs/{id}       Full run detail with per-pillar results
  GET  /api/summary         Aggregate metrics across stored runs
  GET  /api/status          Configured agents and active weights
  GET  /api/health          Health check

Completed runs are persisted as JSON files under the runs directory. The
server binds to loopback and shuts down gracefully on SIGINT/SIGTERM.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := projectconfig.Load(".")
			if err != nil {
				return err
			}
			if port != 0 {
				cfg.Server.Port = port
			}
			if runsDir != "" {
				cfg.Server.RunsDir = runsDir
			}

			orch, err := buildOrchestrator(cfg, 0)
			if err != nil {
				return err
			}

			srv, err := webserver.New(orch, webserver.Config{
				Port:           cfg.Server.Port,
				RunsDir:        cfg.Server.RunsDir,
				AllowedOrigins: corsOrigins,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Port to listen on (overrides config)")
	cmd.Flags().StringVar(&runsDir, "runs-dir", "", "Directory for persisted run files (overrides config)")
	cmd.Flags().StringArrayVar(&corsOrigins, "cors-origin", nil, "Origin allowed for CORS (can be repeated)")

	return cmd
}
