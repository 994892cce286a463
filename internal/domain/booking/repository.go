package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rentals/backend/internal/domain/shared"
)

// BookingRepository defines persistence operations for bookings
type BookingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	// Create inserts a booking. Inserting a second active booking for the
	// same slot fails with shared.ErrConflict.
	Create(ctx context.Context, b *Booking) error
	// SaveWithLock updates a booking if its version is unchanged since it
	// was loaded, then bumps the version.
	SaveWithLock(ctx context.Context, b *Booking) error

	// ExistsActiveSlot reports whether a PENDING or CONFIRMED booking holds
	// the slot, ignoring excludeID when set.
	ExistsActiveSlot(ctx context.Context, propertyID uuid.UUID, date time.Time, visitTime string, excludeID *uuid.UUID) (bool, error)
	// FindActiveTimes returns the visit times held by active bookings on date
	FindActiveTimes(ctx context.Context, propertyID uuid.UUID, date time.Time) ([]string, error)

	FindByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Booking, int64, error)
	FindByProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) ([]Booking, int64, error)
	// FindActiveOnOrBefore returns active bookings whose visit date is on or
	// before date, oldest first.
	FindActiveOnOrBefore(ctx context.Context, date time.Time, limit int) ([]Booking, error)
}
