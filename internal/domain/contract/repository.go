package contract

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rentals/backend/internal/domain/shared"
)

// ContractFilter narrows contract listings
type ContractFilter struct {
	shared.Filter
	// PartyID restricts results to contracts where the user is owner or tenant
	PartyID    *uuid.UUID
	PropertyID *uuid.UUID
	Status     *ContractStatus
}

// ContractRepository defines persistence operations for contracts
type ContractRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Contract, error)
	FindAll(ctx context.Context, filter ContractFilter) ([]Contract, int64, error)
	Create(ctx context.Context, c *Contract) error
	// SaveWithLock updates the contract if nobody changed it since it was
	// loaded. A stale version fails with shared.ErrConflict.
	SaveWithLock(ctx context.Context, c *Contract) error
	Delete(ctx context.Context, id uuid.UUID) error
	// FindActiveEndingBefore returns ACTIVE contracts whose end date is
	// strictly before date.
	FindActiveEndingBefore(ctx context.Context, date time.Time, limit int) ([]Contract, error)
}
