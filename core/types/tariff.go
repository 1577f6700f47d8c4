// Package types - Shared domain types for the ordering portal
package types

import (
	"github.com/shopspring/decimal"

	"cloud-portal/internal/errors"
)

// Currency represents a currency code
type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
)

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// RAMTier is one discrete size/price point of the computation offering
type RAMTier struct {
	// SizeGb is the RAM size selecting this tier, matched exactly
	SizeGb float64 `json:"size_gb"`

	// MonthlyPrice is the fixed monthly price for this tier
	MonthlyPrice decimal.Decimal `json:"monthly_price"`

	// MinStorageTb is the minimum storage an order on this tier must carry
	MinStorageTb float64 `json:"min_storage_tb"`
}

// ComputationTariff describes the computation offering
type ComputationTariff struct {
	// MaxInstances is the global cap on concurrent orders
	MaxInstances int `json:"max_instances"`

	// Tiers are the configured RAM tiers, strictly increasing in SizeGb
	Tiers []RAMTier `json:"tiers"`
}

// TierFor returns the tier matching the given RAM size exactly
func (t *ComputationTariff) TierFor(ramGb float64) (*RAMTier, bool) {
	for i := range t.Tiers {
		if t.Tiers[i].SizeGb == ramGb {
			return &t.Tiers[i], true
		}
	}
	return nil, false
}

// StorageTariff describes the storage offering
type StorageTariff struct {
	// PricePerTbMonth is the linear storage rate
	PricePerTbMonth decimal.Decimal `json:"price_per_tb_month"`

	// MinTbPerOrder is the tariff-wide minimum storage per order
	MinTbPerOrder float64 `json:"min_tb_per_order"`

	// MaxGlobalTb is the global cap on storage across all orders
	MaxGlobalTb float64 `json:"max_global_tb"`
}

// DataTransferTariff describes the banded data-transfer offering
type DataTransferTariff struct {
	// BasePrice is the flat fee covering usage up to BaseTierGb
	BasePrice decimal.Decimal `json:"base_price"`

	// BaseTierGb is the width of the flat band, and the amortization
	// base for both overage bands
	BaseTierGb float64 `json:"base_tier_gb"`

	// Tier1Gb is the width of the first overage band
	Tier1Gb float64 `json:"tier1_gb"`

	// Tier1Multiplier scales BasePrice for band-1 overage
	Tier1Multiplier float64 `json:"tier1_multiplier"`

	// Tier2Multiplier scales BasePrice for band-2 overage
	Tier2Multiplier float64 `json:"tier2_multiplier"`

	// MaxGb is the absolute per-order transfer ceiling
	MaxGb float64 `json:"max_gb"`
}

// Tariffs bundles the current tariff configuration.
// Read-mostly: order flow never mutates it.
type Tariffs struct {
	Computation  ComputationTariff  `json:"computation"`
	Storage      StorageTariff      `json:"storage"`
	DataTransfer DataTransferTariff `json:"data_transfer"`
	Currency     Currency           `json:"currency"`
}

// Validate checks the tariff configuration invariants
func (t *Tariffs) Validate() error {
	if t.Computation.MaxInstances <= 0 {
		return errors.New(errors.TypeConfig, "computation max_instances must be positive")
	}
	if len(t.Computation.Tiers) == 0 {
		return errors.New(errors.TypeConfig, "computation tariff needs at least one RAM tier")
	}
	for i, tier := range t.Computation.Tiers {
		if tier.SizeGb <= 0 {
			return errors.Newf(errors.TypeConfig, "RAM tier %d has non-positive size", i+1)
		}
		if tier.MonthlyPrice.IsNegative() {
			return errors.Newf(errors.TypeConfig, "RAM tier %d has negative price", i+1)
		}
		if tier.MinStorageTb < 0 {
			return errors.Newf(errors.TypeConfig, "RAM tier %d has negative min storage", i+1)
		}
		if i > 0 && tier.SizeGb <= t.Computation.Tiers[i-1].SizeGb {
			return errors.New(errors.TypeConfig, "RAM tiers must be strictly increasing in size")
		}
	}
	if t.Storage.PricePerTbMonth.IsNegative() {
		return errors.New(errors.TypeConfig, "storage price must be non-negative")
	}
	if t.Storage.MinTbPerOrder < 0 {
		return errors.New(errors.TypeConfig, "storage min_tb_per_order must be non-negative")
	}
	if t.Storage.MaxGlobalTb <= 0 {
		return errors.New(errors.TypeConfig, "storage max_global_tb must be positive")
	}
	dt := t.DataTransfer
	if dt.BaseTierGb <= 0 {
		return errors.New(errors.TypeConfig, "data transfer base_tier_gb must be positive")
	}
	if dt.Tier1Gb <= 0 {
		return errors.New(errors.TypeConfig, "data transfer tier1_gb must be positive")
	}
	if dt.BasePrice.IsNegative() {
		return errors.New(errors.TypeConfig, "data transfer base_price must be non-negative")
	}
	if dt.Tier1Multiplier < 0 || dt.Tier2Multiplier < 0 {
		return errors.New(errors.TypeConfig, "data transfer multipliers must be non-negative")
	}
	if dt.MaxGb < dt.BaseTierGb {
		return errors.New(errors.TypeConfig, "data transfer max_gb must cover at least the base tier")
	}
	return nil
}
