// Package tariff loads tariff definitions from HCL files.
// Tariffs are administrative configuration: the order flow only ever
// reads them, and the seed command is the single write path into the
// store.
package tariff

import (
	"os"

	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/shopspring/decimal"

	"cloud-portal/core/types"
	"cloud-portal/internal/errors"
)

// DefaultMaxDataGb caps a single order's data transfer when the tariff
// file does not set one. Keeps runaway requests out of the store.
const DefaultMaxDataGb = 5000

type tariffFile struct {
	Currency     string            `hcl:"currency,optional"`
	Computation  computationBlock  `hcl:"computation,block"`
	Storage      storageBlock      `hcl:"storage,block"`
	DataTransfer dataTransferBlock `hcl:"data_transfer,block"`
}

type computationBlock struct {
	MaxInstances int         `hcl:"max_instances"`
	Tiers        []tierBlock `hcl:"tier,block"`
}

type tierBlock struct {
	RAMGb        float64 `hcl:"ram_gb"`
	MonthlyPrice float64 `hcl:"monthly_price"`
	MinStorageTb float64 `hcl:"min_storage_tb,optional"`
}

type storageBlock struct {
	PricePerTbMonth float64 `hcl:"price_per_tb_month"`
	MinTbPerOrder   float64 `hcl:"min_tb_per_order,optional"`
	MaxGlobalTb     float64 `hcl:"max_global_tb"`
}

type dataTransferBlock struct {
	BasePrice       float64 `hcl:"base_price"`
	BaseTierGb      float64 `hcl:"base_tier_gb"`
	Tier1Gb         float64 `hcl:"tier1_gb"`
	Tier1Multiplier float64 `hcl:"tier1_multiplier"`
	Tier2Multiplier float64 `hcl:"tier2_multiplier"`
	MaxGb           float64 `hcl:"max_gb,optional"`
}

// Load reads and validates a tariff definition file
func Load(path string) (*types.Tariffs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeConfig, err, "reading tariff file %s", path)
	}
	return Parse(path, data)
}

// Parse decodes tariff HCL and validates the result. The filename is
// used for diagnostics only.
func Parse(filename string, data []byte) (*types.Tariffs, error) {
	var file tariffFile
	if err := hclsimple.Decode(filename, data, nil, &file); err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "parsing tariff file", err)
	}

	tariffs := file.toTariffs()
	if err := tariffs.Validate(); err != nil {
		return nil, err
	}
	return tariffs, nil
}

func (f *tariffFile) toTariffs() *types.Tariffs {
	currency := types.CurrencyEUR
	if f.Currency != "" {
		currency = types.Currency(f.Currency)
	}

	tiers := make([]types.RAMTier, 0, len(f.Computation.Tiers))
	for _, tier := range f.Computation.Tiers {
		tiers = append(tiers, types.RAMTier{
			SizeGb:       tier.RAMGb,
			MonthlyPrice: decimal.NewFromFloat(tier.MonthlyPrice),
			MinStorageTb: tier.MinStorageTb,
		})
	}

	maxGb := f.DataTransfer.MaxGb
	if maxGb == 0 {
		maxGb = DefaultMaxDataGb
	}

	return &types.Tariffs{
		Computation: types.ComputationTariff{
			MaxInstances: f.Computation.MaxInstances,
			Tiers:        tiers,
		},
		Storage: types.StorageTariff{
			PricePerTbMonth: decimal.NewFromFloat(f.Storage.PricePerTbMonth),
			MinTbPerOrder:   f.Storage.MinTbPerOrder,
			MaxGlobalTb:     f.Storage.MaxGlobalTb,
		},
		DataTransfer: types.DataTransferTariff{
			BasePrice:       decimal.NewFromFloat(f.DataTransfer.BasePrice),
			BaseTierGb:      f.DataTransfer.BaseTierGb,
			Tier1Gb:         f.DataTransfer.Tier1Gb,
			Tier1Multiplier: f.DataTransfer.Tier1Multiplier,
			Tier2Multiplier: f.DataTransfer.Tier2Multiplier,
			MaxGb:           maxGb,
		},
		Currency: currency,
	}
}
