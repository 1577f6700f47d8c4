// Package cmd - serve command
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cloud-portal/api"
	"cloud-portal/core/admission"
	"cloud-portal/db"
	"cloud-portal/internal/config"
	"cloud-portal/internal/logging"
)

var (
	serveAddr string
	dbPath    string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the ordering portal HTTP server",
	Long: `Start the HTTP API server.

The store must already contain tariffs; run "cloud-portal seed" first
on a fresh database.

Examples:
  cloud-portal serve
  cloud-portal serve --addr :8080 --db ./portal.db`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	serveCmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}

	store, err := db.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}

	controller := admission.NewController(store, store, admission.Policy{
		LockoutFinalMonth: cfg.Cancellation.LockoutFinalMonth,
	})

	auth := api.AuthenticatorFunc(store.UserByToken)
	server := api.NewServer(controller, auth, Version)

	logging.Logger.Info("serving",
		zap.String("addr", cfg.Server.Addr),
		zap.String("db", cfg.Database.Path),
	)
	defer logging.Sync()

	return server.ListenAndServe(cfg.Server.Addr)
}
