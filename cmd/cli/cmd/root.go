// Package cmd provides the CLI commands for cloud-portal.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cloud-portal/internal/config"
	"cloud-portal/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "cloud-portal",
	Short: "Cloud resource ordering portal",
	Long: `cloud-portal runs the cloud resource ordering service.

Users browse tiered computation, storage and data-transfer offerings,
request quotes, and place orders against shared capacity pools.

Examples:
  cloud-portal seed --tariffs tariffs.hcl
  cloud-portal serve --addr :3001
  cloud-portal quote --ram 16 --storage 1 --data 10`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.cloud-portal.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	// Initialize logging
	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}
