package document

import (
	"context"

	"github.com/google/uuid"
)

// DocumentRepository defines persistence operations for contract documents
type DocumentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ContractDocument, error)
	FindByContract(ctx context.Context, contractID uuid.UUID) ([]ContractDocument, error)
	FindByCategory(ctx context.Context, contractID uuid.UUID, category string) (*ContractDocument, error)
	// Upsert writes d keyed by (contract, category). When a concurrent upload
	// won the race, its row is overwritten and d takes over the surviving ID.
	Upsert(ctx context.Context, d *ContractDocument) error
	Save(ctx context.Context, d *ContractDocument) error
	Delete(ctx context.Context, id uuid.UUID) error
}
