// Package db provides the SQLite-backed order store.
// It implements the admission controller's Store and TariffSource
// boundaries; no capacity or pricing decisions are made here.
package db

import (
	"context"
	stderrors "errors"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"cloud-portal/core/admission"
	"cloud-portal/core/types"
	"cloud-portal/internal/errors"
)

// Store is the gorm-backed implementation of the order store
type Store struct {
	db *gorm.DB
}

// Open opens (and migrates) the SQLite database at path.
// Use ":memory:" for an in-memory store.
func Open(path string) (*Store, error) {
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.BackendUnavailable(err)
	}

	// A single connection keeps SQLite writes serialized and makes
	// ":memory:" behave as one database rather than one per pooled
	// connection.
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, errors.BackendUnavailable(err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := gdb.AutoMigrate(
		&orderRecord{},
		&userRecord{},
		&computationTariffRecord{},
		&ramTierRecord{},
		&storageTariffRecord{},
		&dataTransferTariffRecord{},
	); err != nil {
		return nil, errors.Wrap(errors.TypeInternal, "migrating schema", err)
	}

	return &Store{db: gdb}, nil
}

// WithTx runs fn inside a single gorm transaction. Domain errors pass
// through unchanged; anything else surfaces as BackendUnavailable.
func (s *Store) WithTx(ctx context.Context, fn func(tx admission.Store) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
	if err == nil {
		return nil
	}
	var domainErr *errors.Error
	if stderrors.As(err, &domainErr) {
		return domainErr
	}
	return errors.BackendUnavailable(err)
}

// AggregateUsage aggregates the live order set on every read. There is
// no stored counter to drift from the orders table.
func (s *Store) AggregateUsage(ctx context.Context) (types.AggregateUsage, error) {
	var row struct {
		Instances int
		StorageTb float64
		DataGb    float64
	}
	err := s.db.WithContext(ctx).Raw(`
		SELECT count(*)                  AS instances,
		       coalesce(sum(storage_tb), 0) AS storage_tb,
		       coalesce(sum(data_gb), 0)    AS data_gb
		FROM orders`).Scan(&row).Error
	if err != nil {
		return types.AggregateUsage{}, errors.BackendUnavailable(err)
	}
	return types.AggregateUsage{
		Instances: row.Instances,
		StorageTb: row.StorageTb,
		DataGb:    row.DataGb,
	}, nil
}

// InsertOrder persists a new order and assigns its server-side ID
func (s *Store) InsertOrder(ctx context.Context, order *types.Order) error {
	record := orderRecordFrom(order)
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return errors.BackendUnavailable(err)
	}
	order.ID = record.ID
	return nil
}

// OrderByID returns a single order
func (s *Store) OrderByID(ctx context.Context, orderID uint) (*types.Order, error) {
	var record orderRecord
	err := s.db.WithContext(ctx).First(&record, orderID).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.OrderNotFound(orderID)
	}
	if err != nil {
		return nil, errors.BackendUnavailable(err)
	}
	return record.toOrder(), nil
}

// DeleteOrder removes an order permanently
func (s *Store) DeleteOrder(ctx context.Context, orderID uint) error {
	result := s.db.WithContext(ctx).Delete(&orderRecord{}, orderID)
	if result.Error != nil {
		return errors.BackendUnavailable(result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.OrderNotFound(orderID)
	}
	return nil
}

// ListOrders returns all orders owned by a user, oldest first
func (s *Store) ListOrders(ctx context.Context, userID uint) ([]types.Order, error) {
	var records []orderRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, errors.BackendUnavailable(err)
	}

	orders := make([]types.Order, 0, len(records))
	for i := range records {
		orders = append(orders, *records[i].toOrder())
	}
	return orders, nil
}

// UserByToken resolves an API token to its user. Used by the default
// authenticator; credential management itself is out of scope.
func (s *Store) UserByToken(ctx context.Context, token string) (*types.User, error) {
	var record userRecord
	err := s.db.WithContext(ctx).Where("api_token = ?", token).First(&record).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Unauthorized("unknown API token")
	}
	if err != nil {
		return nil, errors.BackendUnavailable(err)
	}
	return record.toUser(), nil
}

// CreateUser inserts a user record
func (s *Store) CreateUser(ctx context.Context, user *types.User) error {
	record := userRecordFrom(user)
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return errors.BackendUnavailable(err)
	}
	user.ID = record.ID
	return nil
}

// decimal round-trip helpers for stored money values

func decimalToDB(d decimal.Decimal) string {
	return d.String()
}

func decimalFromDB(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
