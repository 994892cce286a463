package persistence

import (
	"context"

	appbooking "github.com/rentals/backend/internal/application/booking"
	"github.com/rentals/backend/internal/domain/booking"
	"github.com/rentals/backend/internal/domain/property"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn within a database transaction. The transaction is rolled
// back when fn returns an error and committed otherwise.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appbooking.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories hands out repositories bound to one transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// Bookings returns the booking repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Bookings() booking.BookingRepository {
	return NewGormBookingRepository(r.tx)
}

// Properties returns the property repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Properties() property.PropertyRepository {
	return NewGormPropertyRepository(r.tx)
}

var _ appbooking.TransactionScope = (*GormTransactionScope)(nil)
var _ appbooking.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
