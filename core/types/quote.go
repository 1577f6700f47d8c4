// Package types - Quote types
package types

import "github.com/shopspring/decimal"

// Quote is a monthly price computed for display before commitment.
// It reserves no capacity. Components retain full decimal precision;
// rounding to currency precision happens only at presentation time.
type Quote struct {
	// Computation is the fixed monthly price of the matched RAM tier
	Computation decimal.Decimal `json:"computation"`

	// Storage is the linear storage component
	Storage decimal.Decimal `json:"storage"`

	// DataTransfer is the banded data-transfer component
	DataTransfer decimal.Decimal `json:"data_transfer"`

	// Monthly is the sum of the three components
	Monthly decimal.Decimal `json:"monthly"`

	// Currency is the quote currency
	Currency Currency `json:"currency"`
}

// FormatMoney renders an amount at currency precision (2 decimals).
// Boundary use only.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}
