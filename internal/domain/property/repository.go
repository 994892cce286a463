package property

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentals/backend/internal/domain/shared"
)

// PropertyRepository defines persistence operations for properties and their schedules
type PropertyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Property, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]Property, int64, error)
	Save(ctx context.Context, p *Property) error

	// FindSchedule loads every weekly slot and date override of a property
	FindSchedule(ctx context.Context, propertyID uuid.UUID) (*Schedule, error)
	// ReplaceSlots atomically swaps the weekly schedule of a property
	ReplaceSlots(ctx context.Context, propertyID uuid.UUID, slots []AvailabilitySlot) error
	SaveOverride(ctx context.Context, o *DateOverride) error
	FindOverride(ctx context.Context, id uuid.UUID) (*DateOverride, error)
	DeleteOverride(ctx context.Context, id uuid.UUID) error
}
