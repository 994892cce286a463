package models

import (
	"github.com/google/uuid"
	"github.com/rentals/backend/internal/domain/document"
)

// ContractDocumentModel is the persistence model for a contract document.
// idx_contract_documents_category keeps one row per (contract, category).
type ContractDocumentModel struct {
	AggregateModel
	ContractID      uuid.UUID               `gorm:"type:uuid;not null;uniqueIndex:idx_contract_documents_category,priority:1"`
	Category        string                  `gorm:"type:varchar(64);not null;uniqueIndex:idx_contract_documents_category,priority:2"`
	UploadedByID    uuid.UUID               `gorm:"type:uuid;not null;index"`
	FileName        string                  `gorm:"type:varchar(255);not null"`
	FileURL         string                  `gorm:"type:varchar(2048);not null"`
	FileSize        int64                   `gorm:"not null;default:0"`
	MimeType        string                  `gorm:"type:varchar(127)"`
	StorageKey      *string                 `gorm:"type:varchar(1024)"`
	Status          document.DocumentStatus `gorm:"type:varchar(20);not null;default:'UPLOADED'"`
	RejectionReason *string                 `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ContractDocumentModel) TableName() string {
	return "contract_documents"
}

// ToDomain converts the persistence model to a domain ContractDocument.
func (m *ContractDocumentModel) ToDomain() *document.ContractDocument {
	return &document.ContractDocument{
		BaseAggregateRoot: m.ToAggregateRoot(),
		ContractID:        m.ContractID,
		UploadedByID:      m.UploadedByID,
		Category:          m.Category,
		FileName:          m.FileName,
		FileURL:           m.FileURL,
		FileSize:          m.FileSize,
		MimeType:          m.MimeType,
		StorageKey:        m.StorageKey,
		Status:            m.Status,
		RejectionReason:   m.RejectionReason,
	}
}

// FromDomain populates the persistence model from a domain ContractDocument.
func (m *ContractDocumentModel) FromDomain(d *document.ContractDocument) {
	m.FromDomainAggregateRoot(d.BaseAggregateRoot)
	m.ContractID = d.ContractID
	m.UploadedByID = d.UploadedByID
	m.Category = d.Category
	m.FileName = d.FileName
	m.FileURL = d.FileURL
	m.FileSize = d.FileSize
	m.MimeType = d.MimeType
	m.StorageKey = d.StorageKey
	m.Status = d.Status
	m.RejectionReason = d.RejectionReason
}

// ContractDocumentModelFromDomain creates a new persistence model from a domain document.
func ContractDocumentModelFromDomain(d *document.ContractDocument) *ContractDocumentModel {
	m := &ContractDocumentModel{}
	m.FromDomain(d)
	return m
}
