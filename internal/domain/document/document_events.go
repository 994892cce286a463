package document

import (
	"github.com/google/uuid"
	"github.com/rentals/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeContractDocument = "ContractDocument"

// Event type constants
const (
	EventTypeDocumentUploaded      = "document.uploaded"
	EventTypeDocumentStatusChanged = "document.status_changed"
)

// DocumentUploadedEvent is raised on first upload and on every replacement
type DocumentUploadedEvent struct {
	shared.BaseDomainEvent
	ContractID uuid.UUID `json:"contract_id"`
	Category   string    `json:"category"`
	FileName   string    `json:"file_name"`
}

// NewDocumentUploadedEvent creates a new DocumentUploadedEvent
func NewDocumentUploadedEvent(d *ContractDocument) *DocumentUploadedEvent {
	return &DocumentUploadedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDocumentUploaded, AggregateTypeContractDocument, d.ID, d.UploadedByID),
		ContractID:      d.ContractID,
		Category:        d.Category,
		FileName:        d.FileName,
	}
}

// DocumentStatusChangedEvent is raised when the owner validates or rejects a document
type DocumentStatusChangedEvent struct {
	shared.BaseDomainEvent
	ContractID      uuid.UUID      `json:"contract_id"`
	Category        string         `json:"category"`
	UploadedByID    uuid.UUID      `json:"uploaded_by_id"`
	OldStatus       DocumentStatus `json:"old_status"`
	NewStatus       DocumentStatus `json:"new_status"`
	RejectionReason string         `json:"rejection_reason,omitempty"`
}

// NewDocumentStatusChangedEvent creates a new DocumentStatusChangedEvent
func NewDocumentStatusChangedEvent(d *ContractDocument, previous DocumentStatus, reviewerID uuid.UUID) *DocumentStatusChangedEvent {
	e := &DocumentStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDocumentStatusChanged, AggregateTypeContractDocument, d.ID, reviewerID),
		ContractID:      d.ContractID,
		Category:        d.Category,
		UploadedByID:    d.UploadedByID,
		OldStatus:       previous,
		NewStatus:       d.Status,
	}
	if d.RejectionReason != nil {
		e.RejectionReason = *d.RejectionReason
	}
	return e
}
