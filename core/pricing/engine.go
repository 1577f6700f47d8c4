// Package pricing - Centralized pricing math for the ordering portal.
// Every caller that needs a price goes through Quote: the quoting path,
// the admission path, and any display path share one formula and can
// never diverge.
package pricing

import (
	"math"

	"github.com/shopspring/decimal"

	"cloud-portal/core/types"
	"cloud-portal/internal/errors"
)

// ComputationCharge matches ramGb exactly against the configured RAM
// tiers and returns the tier's fixed monthly price together with its
// minimum storage requirement.
func ComputationCharge(ramGb float64, t *types.ComputationTariff) (decimal.Decimal, float64, error) {
	tier, ok := t.TierFor(ramGb)
	if !ok {
		return decimal.Zero, 0, errors.InvalidRamSize(ramGb)
	}
	return tier.MonthlyPrice, tier.MinStorageTb, nil
}

// StorageCharge is linear: storageTb times the per-TB monthly rate.
func StorageCharge(storageTb float64, t *types.StorageTariff) decimal.Decimal {
	return decimal.NewFromFloat(storageTb).Mul(t.PricePerTbMonth)
}

// DataTransferCharge computes the banded data-transfer component.
//
// Band 0 is a flat fee covering usage up to BaseTierGb. Overage in the
// two bands above it is amortized over BaseTierGb (not over the band's
// own width); band 1 is capped at its full width before band 2 starts.
// The amortization base is a fixed pricing convention and must not be
// changed without breaking price compatibility.
func DataTransferCharge(dataGb float64, t *types.DataTransferTariff) (decimal.Decimal, error) {
	if dataGb < 0 {
		return decimal.Zero, errors.InvalidInput("data transfer must be non-negative")
	}
	if dataGb > t.MaxGb {
		return decimal.Zero, errors.DataCeilingExceeded(dataGb, t.MaxGb)
	}

	baseTier := decimal.NewFromFloat(t.BaseTierGb)
	price := t.BasePrice

	overage := dataGb - t.BaseTierGb
	switch {
	case overage <= 0:
		// Flat fee covers the whole request.
	case overage <= t.Tier1Gb:
		band1 := decimal.NewFromFloat(overage).Div(baseTier).
			Mul(t.BasePrice.Mul(decimal.NewFromFloat(t.Tier1Multiplier)))
		price = price.Add(band1)
	default:
		band1 := decimal.NewFromFloat(t.Tier1Gb).Div(baseTier).
			Mul(t.BasePrice.Mul(decimal.NewFromFloat(t.Tier1Multiplier)))
		band2 := decimal.NewFromFloat(overage - t.Tier1Gb).Div(baseTier).
			Mul(t.BasePrice.Mul(decimal.NewFromFloat(t.Tier2Multiplier)))
		price = price.Add(band1).Add(band2)
	}

	return price, nil
}

// MinStorageFor returns the effective storage minimum for a RAM tier:
// the larger of the tier's own requirement and the tariff-wide
// per-order minimum.
func MinStorageFor(tier float64, t *types.Tariffs) (float64, error) {
	_, tierMin, err := ComputationCharge(tier, &t.Computation)
	if err != nil {
		return 0, err
	}
	if t.Storage.MinTbPerOrder > tierMin {
		return t.Storage.MinTbPerOrder, nil
	}
	return tierMin, nil
}

// Quote computes the monthly price of a resource bundle under the
// given tariffs. Pure and deterministic: identical inputs always yield
// an identical quote, so callers may re-quote on every change.
func Quote(ramGb, storageTb, dataGb float64, t *types.Tariffs) (*types.Quote, error) {
	for _, v := range []float64{ramGb, storageTb, dataGb} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.InvalidInput("resource sizes must be finite")
		}
	}

	compPrice, _, err := ComputationCharge(ramGb, &t.Computation)
	if err != nil {
		return nil, err
	}

	minStorage, err := MinStorageFor(ramGb, t)
	if err != nil {
		return nil, err
	}
	if storageTb < minStorage {
		return nil, errors.InsufficientStorage(ramGb, minStorage)
	}

	dataPrice, err := DataTransferCharge(dataGb, &t.DataTransfer)
	if err != nil {
		return nil, err
	}

	storagePrice := StorageCharge(storageTb, &t.Storage)

	return &types.Quote{
		Computation:  compPrice,
		Storage:      storagePrice,
		DataTransfer: dataPrice,
		Monthly:      compPrice.Add(storagePrice).Add(dataPrice),
		Currency:     t.Currency,
	}, nil
}
