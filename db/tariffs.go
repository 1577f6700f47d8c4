// Package db - Tariff persistence
package db

import (
	"context"
	stderrors "errors"
	"sort"

	"gorm.io/gorm"

	"cloud-portal/core/types"
	"cloud-portal/internal/errors"
)

// Tariffs reads the current tariff configuration. The three tariff
// tables are assumed consistent for the duration of one call.
func (s *Store) Tariffs(ctx context.Context) (*types.Tariffs, error) {
	var comp computationTariffRecord
	if err := s.db.WithContext(ctx).First(&comp).Error; err != nil {
		return nil, tariffReadError(err)
	}

	var tierRecords []ramTierRecord
	if err := s.db.WithContext(ctx).Order("position").Find(&tierRecords).Error; err != nil {
		return nil, errors.BackendUnavailable(err)
	}
	if len(tierRecords) == 0 {
		return nil, errors.New(errors.TypeConfig, "no RAM tiers configured, run seed first")
	}

	var storage storageTariffRecord
	if err := s.db.WithContext(ctx).First(&storage).Error; err != nil {
		return nil, tariffReadError(err)
	}

	var transfer dataTransferTariffRecord
	if err := s.db.WithContext(ctx).First(&transfer).Error; err != nil {
		return nil, tariffReadError(err)
	}

	currency := types.Currency(comp.Currency)
	if currency == "" {
		currency = types.CurrencyEUR
	}

	tiers := make([]types.RAMTier, 0, len(tierRecords))
	for _, r := range tierRecords {
		tiers = append(tiers, types.RAMTier{
			SizeGb:       r.RAMGb,
			MonthlyPrice: decimalFromDB(r.MonthlyPrice),
			MinStorageTb: r.MinStorageTb,
		})
	}

	return &types.Tariffs{
		Computation: types.ComputationTariff{
			MaxInstances: comp.MaxInstances,
			Tiers:        tiers,
		},
		Storage: types.StorageTariff{
			PricePerTbMonth: decimalFromDB(storage.PricePerTbMonth),
			MinTbPerOrder:   storage.MinTbPerOrder,
			MaxGlobalTb:     storage.MaxGlobalTb,
		},
		DataTransfer: types.DataTransferTariff{
			BasePrice:       decimalFromDB(transfer.BasePrice),
			BaseTierGb:      transfer.BaseTierGb,
			Tier1Gb:         transfer.Tier1Gb,
			Tier1Multiplier: transfer.Tier1Multiplier,
			Tier2Multiplier: transfer.Tier2Multiplier,
			MaxGb:           transfer.MaxGb,
		},
		Currency: currency,
	}, nil
}

// SeedTariffs replaces the stored tariff configuration. This is the
// administrative write path; order flow never touches these tables.
func (s *Store) SeedTariffs(ctx context.Context, tariffs *types.Tariffs) error {
	if err := tariffs.Validate(); err != nil {
		return err
	}

	sorted := make([]types.RAMTier, len(tariffs.Computation.Tiers))
	copy(sorted, tariffs.Computation.Tiers)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].SizeGb < sorted[j].SizeGb })

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&computationTariffRecord{}, &ramTierRecord{},
			&storageTariffRecord{}, &dataTransferTariffRecord{},
		} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}

		if err := tx.Create(&computationTariffRecord{
			MaxInstances: tariffs.Computation.MaxInstances,
			Currency:     string(tariffs.Currency),
		}).Error; err != nil {
			return err
		}
		for i, tier := range sorted {
			if err := tx.Create(&ramTierRecord{
				Position:     i + 1,
				RAMGb:        tier.SizeGb,
				MonthlyPrice: decimalToDB(tier.MonthlyPrice),
				MinStorageTb: tier.MinStorageTb,
			}).Error; err != nil {
				return err
			}
		}
		if err := tx.Create(&storageTariffRecord{
			PricePerTbMonth: decimalToDB(tariffs.Storage.PricePerTbMonth),
			MinTbPerOrder:   tariffs.Storage.MinTbPerOrder,
			MaxGlobalTb:     tariffs.Storage.MaxGlobalTb,
		}).Error; err != nil {
			return err
		}
		return tx.Create(&dataTransferTariffRecord{
			BasePrice:       decimalToDB(tariffs.DataTransfer.BasePrice),
			BaseTierGb:      tariffs.DataTransfer.BaseTierGb,
			Tier1Gb:         tariffs.DataTransfer.Tier1Gb,
			Tier1Multiplier: tariffs.DataTransfer.Tier1Multiplier,
			Tier2Multiplier: tariffs.DataTransfer.Tier2Multiplier,
			MaxGb:           tariffs.DataTransfer.MaxGb,
		}).Error
	})
	if err != nil {
		return errors.BackendUnavailable(err)
	}
	return nil
}

func tariffReadError(err error) error {
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return errors.New(errors.TypeConfig, "tariffs not seeded, run seed first")
	}
	return errors.BackendUnavailable(err)
}
