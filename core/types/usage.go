// Package types - Aggregate usage
package types

// AggregateUsage is the portal-wide resource consumption, always
// recomputed by aggregating the live order set. Never maintained as
// separate counters that could drift.
type AggregateUsage struct {
	// Instances is the count of live orders
	Instances int `json:"used_computation_instances"`

	// StorageTb is the sum of storage across live orders
	StorageTb float64 `json:"used_storage_tb"`

	// DataGb is the sum of data transfer across live orders
	DataGb float64 `json:"used_data_gb"`
}
