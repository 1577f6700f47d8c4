// Package db - Table records and domain conversions
package db

import (
	"time"

	"cloud-portal/core/types"
)

type orderRecord struct {
	ID         uint      `gorm:"primaryKey"`
	UserID     uint      `gorm:"column:user_id;index;not null"`
	RAMGb      float64   `gorm:"column:ram_gb;not null"`
	StorageTb  float64   `gorm:"column:storage_tb;not null"`
	DataGb     float64   `gorm:"column:data_gb;not null"`
	Months     int       `gorm:"column:num_months;not null;default:1"`
	TotalPrice string    `gorm:"column:total_price;not null"`
	CreatedAt  time.Time `gorm:"not null"`
	ExpiresAt  time.Time `gorm:"not null"`
}

func (orderRecord) TableName() string { return "orders" }

func orderRecordFrom(o *types.Order) *orderRecord {
	return &orderRecord{
		ID:         o.ID,
		UserID:     o.UserID,
		RAMGb:      o.RAMGb,
		StorageTb:  o.StorageTb,
		DataGb:     o.DataGb,
		Months:     o.Months,
		TotalPrice: decimalToDB(o.TotalPrice),
		CreatedAt:  o.CreatedAt,
		ExpiresAt:  o.ExpiresAt,
	}
}

func (r *orderRecord) toOrder() *types.Order {
	return &types.Order{
		ID:         r.ID,
		UserID:     r.UserID,
		RAMGb:      r.RAMGb,
		StorageTb:  r.StorageTb,
		DataGb:     r.DataGb,
		Months:     r.Months,
		TotalPrice: decimalFromDB(r.TotalPrice),
		CreatedAt:  r.CreatedAt,
		ExpiresAt:  r.ExpiresAt,
	}
}

type userRecord struct {
	ID       uint   `gorm:"primaryKey"`
	Email    string `gorm:"uniqueIndex;not null"`
	Name     string `gorm:"not null"`
	APIToken string `gorm:"column:api_token;uniqueIndex;not null"`
}

func (userRecord) TableName() string { return "users" }

func userRecordFrom(u *types.User) *userRecord {
	return &userRecord{
		ID:       u.ID,
		Email:    u.Email,
		Name:     u.Name,
		APIToken: u.APIToken,
	}
}

func (r *userRecord) toUser() *types.User {
	return &types.User{
		ID:       r.ID,
		Email:    r.Email,
		Name:     r.Name,
		APIToken: r.APIToken,
	}
}

// Tariff tables are read-mostly: the order flow never writes them,
// only SeedTariffs does.

type computationTariffRecord struct {
	ID           uint   `gorm:"primaryKey"`
	MaxInstances int    `gorm:"column:max_instances;not null"`
	Currency     string `gorm:"column:currency;not null;default:EUR"`
}

func (computationTariffRecord) TableName() string { return "computation_tariffs" }

type ramTierRecord struct {
	ID           uint    `gorm:"primaryKey"`
	Position     int     `gorm:"column:position;not null"`
	RAMGb        float64 `gorm:"column:ram_gb;not null"`
	MonthlyPrice string  `gorm:"column:monthly_price;not null"`
	MinStorageTb float64 `gorm:"column:min_storage_tb;not null"`
}

func (ramTierRecord) TableName() string { return "ram_tiers" }

type storageTariffRecord struct {
	ID              uint    `gorm:"primaryKey"`
	PricePerTbMonth string  `gorm:"column:price_per_tb_month;not null"`
	MinTbPerOrder   float64 `gorm:"column:min_tb_per_order;not null"`
	MaxGlobalTb     float64 `gorm:"column:max_global_tb;not null"`
}

func (storageTariffRecord) TableName() string { return "storage_tariffs" }

type dataTransferTariffRecord struct {
	ID              uint    `gorm:"primaryKey"`
	BasePrice       string  `gorm:"column:base_price;not null"`
	BaseTierGb      float64 `gorm:"column:base_tier_gb;not null"`
	Tier1Gb         float64 `gorm:"column:tier1_gb;not null"`
	Tier1Multiplier float64 `gorm:"column:tier1_multiplier;not null"`
	Tier2Multiplier float64 `gorm:"column:tier2_multiplier;not null"`
	MaxGb           float64 `gorm:"column:max_gb;not null"`
}

func (dataTransferTariffRecord) TableName() string { return "data_transfer_tariffs" }
