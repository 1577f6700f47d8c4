// Package admission decides whether orders are admitted against the
// globally shared, finite capacity pools, and owns cancellation.
// The API layer never performs capacity logic itself.
package admission

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"cloud-portal/core/pricing"
	"cloud-portal/core/types"
	"cloud-portal/internal/errors"
)

// Store is the transactional order store the controller runs against.
// Implementations must guarantee that everything inside WithTx commits
// or rolls back as one unit.
type Store interface {
	// WithTx runs fn inside a single transaction. The Store passed to
	// fn operates on that transaction.
	WithTx(ctx context.Context, fn func(tx Store) error) error

	// AggregateUsage aggregates the live order set (count/sum).
	AggregateUsage(ctx context.Context) (types.AggregateUsage, error)

	// InsertOrder persists a new order and assigns its ID.
	InsertOrder(ctx context.Context, order *types.Order) error

	// OrderByID returns an order, or a TypeOrderNotFound error.
	OrderByID(ctx context.Context, orderID uint) (*types.Order, error)

	// DeleteOrder removes an order permanently.
	DeleteOrder(ctx context.Context, orderID uint) error

	// ListOrders returns all orders owned by a user.
	ListOrders(ctx context.Context, userID uint) ([]types.Order, error)
}

// TariffSource provides the current tariff configuration, assumed
// consistent for the duration of a single call.
type TariffSource interface {
	Tariffs(ctx context.Context) (*types.Tariffs, error)
}

// Policy is the configurable cancellation policy
type Policy struct {
	// LockoutFinalMonth blocks cancellation within the final month
	// before an order expires
	LockoutFinalMonth bool
}

// OrderRequest is a requested resource bundle
type OrderRequest struct {
	RAMGb     float64
	StorageTb float64
	DataGb    float64

	// Months is the subscription length; zero means one month
	Months int
}

// Controller is the capacity admission controller
type Controller struct {
	store   Store
	tariffs TariffSource
	policy  Policy
	now     func() time.Time

	// mu serializes check-and-insert in-process; the store transaction
	// is the cross-process guard
	mu sync.Mutex
}

// NewController creates an admission controller
func NewController(store Store, tariffs TariffSource, policy Policy) *Controller {
	return &Controller{
		store:   store,
		tariffs: tariffs,
		policy:  policy,
		now:     time.Now,
	}
}

// Quote computes a price for display without reserving capacity
func (c *Controller) Quote(ctx context.Context, req OrderRequest) (*types.Quote, error) {
	tariffs, err := c.tariffs.Tariffs(ctx)
	if err != nil {
		return nil, err
	}
	return pricing.Quote(req.RAMGb, req.StorageTb, req.DataGb, tariffs)
}

// SubmitOrder validates a request, re-checks live capacity and commits
// the order, all capacity reads and the insert inside one transaction.
// Rejections are structured errors naming the exhausted resource; no
// partial state is ever written.
func (c *Controller) SubmitOrder(ctx context.Context, userID uint, req OrderRequest) (*types.Order, error) {
	months := req.Months
	if months == 0 {
		months = 1
	}
	if months < 1 {
		return nil, errors.InvalidInput("months must be at least 1")
	}

	tariffs, err := c.tariffs.Tariffs(ctx)
	if err != nil {
		return nil, err
	}

	// Shape/range validation happens before any capacity state is read.
	quote, err := pricing.Quote(req.RAMGb, req.StorageTb, req.DataGb, tariffs)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var order *types.Order
	err = c.store.WithTx(ctx, func(tx Store) error {
		usage, err := tx.AggregateUsage(ctx)
		if err != nil {
			return err
		}

		// One order consumes exactly one instance slot, regardless of
		// RAM tier size.
		if usage.Instances >= tariffs.Computation.MaxInstances {
			return errors.NoComputationCapacity(tariffs.Computation.MaxInstances)
		}
		if usage.StorageTb+req.StorageTb > tariffs.Storage.MaxGlobalTb {
			return errors.StorageCapacityExceeded(req.StorageTb, tariffs.Storage.MaxGlobalTb-usage.StorageTb)
		}
		// Data transfer has no global cap; the per-request ceiling was
		// already enforced by the pricing engine.

		now := c.now().UTC()
		order = &types.Order{
			UserID:     userID,
			RAMGb:      req.RAMGb,
			StorageTb:  req.StorageTb,
			DataGb:     req.DataGb,
			Months:     months,
			TotalPrice: quote.Monthly.Mul(decimal.NewFromInt(int64(months))),
			CreatedAt:  now,
			ExpiresAt:  now.AddDate(0, months, 0),
		}
		return tx.InsertOrder(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// CancelOrder removes an order. Only the owning user may cancel; the
// ownership check lives here, not in the UI. Capacity is freed
// implicitly because usage is derived from the order set.
func (c *Controller) CancelOrder(ctx context.Context, userID, orderID uint) error {
	return c.store.WithTx(ctx, func(tx Store) error {
		order, err := tx.OrderByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order.UserID != userID {
			return errors.NotOwner(orderID)
		}
		if c.policy.LockoutFinalMonth {
			lockoutStart := order.ExpiresAt.AddDate(0, -1, 0)
			if !c.now().UTC().Before(lockoutStart) {
				return errors.Newf(errors.TypeCancellationWindowClosed,
					"order %d cannot be cancelled within its final month (expires %s)",
					orderID, order.ExpiresAt.Format("2006-01-02"))
			}
		}
		return tx.DeleteOrder(ctx, orderID)
	})
}

// ListOrders returns the caller's own orders
func (c *Controller) ListOrders(ctx context.Context, userID uint) ([]types.Order, error) {
	return c.store.ListOrders(ctx, userID)
}

// Usage returns current aggregate usage
func (c *Controller) Usage(ctx context.Context) (types.AggregateUsage, error) {
	return c.store.AggregateUsage(ctx)
}

// Tariffs returns the current tariff configuration
func (c *Controller) Tariffs(ctx context.Context) (*types.Tariffs, error) {
	return c.tariffs.Tariffs(ctx)
}
