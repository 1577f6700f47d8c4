// Package types - Order and user types
package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a committed resource bundle owned by a single user.
// Created only through admission; immutable afterwards; removed only
// by its owner through cancellation.
type Order struct {
	// ID is the server-assigned order identity
	ID uint `json:"order_id"`

	// UserID is the owning user
	UserID uint `json:"user_id"`

	// RAMGb equals one of the configured RAM tier sizes
	RAMGb float64 `json:"ram_gb"`

	// StorageTb is the ordered storage amount
	StorageTb float64 `json:"storage_tb"`

	// DataGb is the ordered monthly data transfer
	DataGb float64 `json:"data_gb"`

	// Months is the subscription length
	Months int `json:"months"`

	// TotalPrice is frozen at creation (monthly price times Months);
	// never recomputed even if tariffs later change
	TotalPrice decimal.Decimal `json:"total_price"`

	// CreatedAt is the server-assigned creation timestamp
	CreatedAt time.Time `json:"created_at"`

	// ExpiresAt is CreatedAt plus Months months
	ExpiresAt time.Time `json:"expires_at"`
}

// User is the minimal account record the portal needs: order scoping
// and a token for the default authenticator. Credential management is
// an external concern.
type User struct {
	ID       uint   `json:"user_id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	APIToken string `json:"-"`
}
