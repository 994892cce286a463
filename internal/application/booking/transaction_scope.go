package booking

import (
	"context"

	"github.com/rentals/backend/internal/domain/booking"
	"github.com/rentals/backend/internal/domain/property"
)

// TransactionScope runs booking slot checks and writes atomically.
type TransactionScope interface {
	// Execute runs fn within a database transaction. An error from fn rolls
	// the transaction back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes repositories bound to one transaction
type TransactionalRepositories interface {
	Bookings() booking.BookingRepository
	Properties() property.PropertyRepository
}

// NoOpTransactionScope runs fn directly against the given repositories.
// Used by tests and by callers that do not need isolation.
type NoOpTransactionScope struct {
	bookingRepo  booking.BookingRepository
	propertyRepo property.PropertyRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope
func NewNoOpTransactionScope(bookingRepo booking.BookingRepository, propertyRepo property.PropertyRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{bookingRepo: bookingRepo, propertyRepo: propertyRepo}
}

// Execute runs fn without a transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Bookings returns the booking repository
func (s *NoOpTransactionScope) Bookings() booking.BookingRepository {
	return s.bookingRepo
}

// Properties returns the property repository
func (s *NoOpTransactionScope) Properties() property.PropertyRepository {
	return s.propertyRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
