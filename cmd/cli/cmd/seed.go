// Package cmd - seed command
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cloud-portal/core/tariff"
	"cloud-portal/core/types"
	"cloud-portal/db"
	"cloud-portal/internal/config"
	"cloud-portal/internal/logging"
)

var (
	seedTariffFile string
	seedDBPath     string
	seedDemoUsers  bool
)

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load tariff definitions into the store",
	Long: `Load the tariff definition file into the database.

Seeding replaces any previously stored tariffs. Existing orders keep
their frozen prices; tariff changes only affect new quotes and orders.

Examples:
  cloud-portal seed
  cloud-portal seed --tariffs ./tariffs.hcl --demo-users`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedTariffFile, "tariffs", "", "tariff HCL file (overrides config)")
	seedCmd.Flags().StringVar(&seedDBPath, "db", "", "SQLite database path (overrides config)")
	seedCmd.Flags().BoolVar(&seedDemoUsers, "demo-users", false, "also create demo users with fixed tokens")
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	if seedTariffFile != "" {
		cfg.Tariffs.File = seedTariffFile
	}
	if seedDBPath != "" {
		cfg.Database.Path = seedDBPath
	}

	tariffs, err := tariff.Load(cfg.Tariffs.File)
	if err != nil {
		return err
	}

	store, err := db.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}

	ctx := context.Background()
	if err := store.SeedTariffs(ctx, tariffs); err != nil {
		return err
	}
	logging.Logger.Info("tariffs seeded",
		zap.String("file", cfg.Tariffs.File),
		zap.Int("ram_tiers", len(tariffs.Computation.Tiers)),
		zap.Int("max_instances", tariffs.Computation.MaxInstances),
	)

	if seedDemoUsers {
		demo := []types.User{
			{Email: "alice@example.com", Name: "Alice", APIToken: "demo-alice"},
			{Email: "bob@example.com", Name: "Bob", APIToken: "demo-bob"},
		}
		for i := range demo {
			if err := store.CreateUser(ctx, &demo[i]); err != nil {
				return err
			}
		}
		logging.Logger.Info("demo users created", zap.Int("count", len(demo)))
	}

	return nil
}
