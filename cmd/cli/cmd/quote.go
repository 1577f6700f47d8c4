// Package cmd - quote command
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"cloud-portal/core/pricing"
	"cloud-portal/core/tariff"
	"cloud-portal/core/types"
	"cloud-portal/internal/config"
)

var (
	quoteRAMGb      float64
	quoteStorageTb  float64
	quoteDataGb     float64
	quoteTariffFile string
)

// quoteCmd represents the quote command
var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Compute a price offline",
	Long: `Compute the monthly price of a resource bundle directly from
the tariff definition file, without a running server.

The same pricing engine serves the API, so the output always matches
what the portal would quote.

Examples:
  cloud-portal quote --ram 16 --storage 1 --data 10
  cloud-portal quote --ram 64 --storage 8 --data 500 --tariffs ./tariffs.hcl`,
	RunE: runQuote,
}

func init() {
	quoteCmd.Flags().Float64Var(&quoteRAMGb, "ram", 0, "RAM size in GB (must match a tier)")
	quoteCmd.Flags().Float64Var(&quoteStorageTb, "storage", 0, "storage amount in TB")
	quoteCmd.Flags().Float64Var(&quoteDataGb, "data", 0, "monthly data transfer in GB")
	quoteCmd.Flags().StringVar(&quoteTariffFile, "tariffs", "", "tariff HCL file (overrides config)")
	quoteCmd.MarkFlagRequired("ram")
}

func runQuote(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	file := cfg.Tariffs.File
	if quoteTariffFile != "" {
		file = quoteTariffFile
	}

	tariffs, err := tariff.Load(file)
	if err != nil {
		return err
	}

	quote, err := pricing.Quote(quoteRAMGb, quoteStorageTb, quoteDataGb, tariffs)
	if err != nil {
		return err
	}

	fmt.Printf("Computation:   %s %s\n", types.FormatMoney(quote.Computation), quote.Currency)
	fmt.Printf("Storage:       %s %s\n", types.FormatMoney(quote.Storage), quote.Currency)
	fmt.Printf("Data transfer: %s %s\n", types.FormatMoney(quote.DataTransfer), quote.Currency)
	fmt.Printf("Monthly total: %s %s\n", types.FormatMoney(quote.Monthly), quote.Currency)
	return nil
}
