package document

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rentals/backend/internal/domain/shared"
)

// DocumentStatus represents the review status of an uploaded document
type DocumentStatus string

const (
	DocumentStatusUploaded  DocumentStatus = "UPLOADED"
	DocumentStatusValidated DocumentStatus = "VALIDATED"
	DocumentStatusRejected  DocumentStatus = "REJECTED"
)

// IsValid checks if the status is a valid DocumentStatus
func (s DocumentStatus) IsValid() bool {
	switch s {
	case DocumentStatusUploaded, DocumentStatusValidated, DocumentStatusRejected:
		return true
	}
	return false
}

// String returns the string representation of DocumentStatus
func (s DocumentStatus) String() string {
	return string(s)
}

// IsReviewOutcome reports whether an owner may set this status
func (s DocumentStatus) IsReviewOutcome() bool {
	return s == DocumentStatusValidated || s == DocumentStatusRejected
}

// Well-known categories
const (
	CategoryIDCard        = "ID_CARD"
	CategoryProofOfIncome = "PROOF_OF_INCOME"
)

// NormalizeCategory upper-cases and trims a category key
func NormalizeCategory(category string) string {
	return strings.ToUpper(strings.TrimSpace(category))
}

// FileInfo describes a stored file as reported by the upload collaborator
type FileInfo struct {
	Category   string
	FileName   string
	FileURL    string
	FileSize   int64
	MimeType   string
	StorageKey *string
}

func (f FileInfo) validate() error {
	if NormalizeCategory(f.Category) == "" {
		return shared.NewInvalidInput("Document category cannot be empty")
	}
	if strings.TrimSpace(f.FileName) == "" {
		return shared.NewInvalidInput("File name cannot be empty")
	}
	if strings.TrimSpace(f.FileURL) == "" {
		return shared.NewInvalidInput("File URL cannot be empty")
	}
	if f.FileSize < 0 {
		return shared.NewInvalidInput("File size cannot be negative")
	}
	return nil
}

// ContractDocument is one entry of a contract's document checklist
type ContractDocument struct {
	shared.BaseAggregateRoot
	ContractID      uuid.UUID
	UploadedByID    uuid.UUID
	Category        string
	FileName        string
	FileURL         string
	FileSize        int64
	MimeType        string
	StorageKey      *string
	Status          DocumentStatus
	RejectionReason *string
}

// NewContractDocument creates an UPLOADED document
func NewContractDocument(contractID, uploaderID uuid.UUID, file FileInfo) (*ContractDocument, error) {
	if contractID == uuid.Nil {
		return nil, shared.NewInvalidInput("Contract ID cannot be empty")
	}
	if err := file.validate(); err != nil {
		return nil, err
	}

	d := &ContractDocument{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ContractID:        contractID,
	}
	d.setFile(uploaderID, file)
	d.AddDomainEvent(NewDocumentUploadedEvent(d))
	return d, nil
}

func (d *ContractDocument) setFile(uploaderID uuid.UUID, file FileInfo) {
	d.UploadedByID = uploaderID
	d.Category = NormalizeCategory(file.Category)
	d.FileName = strings.TrimSpace(file.FileName)
	d.FileURL = strings.TrimSpace(file.FileURL)
	d.FileSize = file.FileSize
	d.MimeType = strings.TrimSpace(file.MimeType)
	d.StorageKey = file.StorageKey
	d.Status = DocumentStatusUploaded
	d.RejectionReason = nil
}

// Replace overwrites the file in place, resetting the review. It returns the
// storage key of the previous file when that file is no longer referenced.
func (d *ContractDocument) Replace(uploaderID uuid.UUID, file FileInfo) (*string, error) {
	if err := file.validate(); err != nil {
		return nil, err
	}
	if NormalizeCategory(file.Category) != d.Category {
		return nil, shared.NewInvalidInput(fmt.Sprintf("Cannot replace a %s document with a %s document", d.Category, NormalizeCategory(file.Category)))
	}

	var stale *string
	if d.StorageKey != nil && (file.StorageKey == nil || *file.StorageKey != *d.StorageKey) {
		key := *d.StorageKey
		stale = &key
	}
	d.setFile(uploaderID, file)
	d.UpdatedAt = time.Now()

	d.AddDomainEvent(NewDocumentUploadedEvent(d))
	return stale, nil
}

// Review records the owner's verdict. REJECTED requires a reason and
// VALIDATED clears any earlier one.
func (d *ContractDocument) Review(reviewerID uuid.UUID, status DocumentStatus, reason *string) error {
	if !status.IsReviewOutcome() {
		return shared.NewInvalidInput("Status must be VALIDATED or REJECTED")
	}

	switch status {
	case DocumentStatusRejected:
		if reason == nil || strings.TrimSpace(*reason) == "" {
			return shared.NewInvalidInput("A rejection reason is required")
		}
		r := strings.TrimSpace(*reason)
		d.RejectionReason = &r
	case DocumentStatusValidated:
		d.RejectionReason = nil
	}

	previous := d.Status
	d.Status = status
	d.UpdatedAt = time.Now()

	d.AddDomainEvent(NewDocumentStatusChangedEvent(d, previous, reviewerID))
	return nil
}
