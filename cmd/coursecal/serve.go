package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/coursecal/internal/config"
	"github.com/jackzampolin/coursecal/internal/server"
)

var (
	serveHost string
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the coursecal HTTP server",
	Long: `Start the coursecal HTTP API server.

The server provides:
  - GET  /health             - Server health check
  - GET  /api/parse/status   - Extraction engine availability
  - POST /api/parse          - LLM extraction
  - POST /api/parse/pattern  - Pattern extraction
  - POST /api/parse/compare  - Run both engines side by side
  - POST /api/export/ics     - Extract and export as an ICS calendar
  - POST /api/upload         - Decode an uploaded text document

Examples:
  coursecal serve                  # Start on default port 8080
  coursecal serve --port 3000      # Start on custom port`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		cm, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}
		cm.WatchConfig()

		cfg := cm.Get()

		host := serveHost
		if host == "" {
			host = cfg.Server.Host
		}
		port := servePort
		if port == "" {
			port = cfg.Server.Port
		}

		srv, err := server.New(server.Config{
			Host:         host,
			Port:         port,
			MaxBodyBytes: cfg.Server.MaxBodyBytes,
			Orchestrator: buildOrchestrator(cfg, logger),
			App:          *cfg,
			Logger:       logger,
		})
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "host to bind to (overrides config)")
	serveCmd.Flags().StringVar(&servePort, "port", "", "port to listen on (overrides config)")

	rootCmd.AddCommand(serveCmd)
}
