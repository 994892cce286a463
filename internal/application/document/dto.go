package document

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentals/backend/internal/domain/document"
)

// UploadDocumentRequest reports a file already stored by the upload collaborator
type UploadDocumentRequest struct {
	Category   string  `json:"category" binding:"required,max=64"`
	FileName   string  `json:"fileName" binding:"required,max=255"`
	FileURL    string  `json:"fileUrl" binding:"required,max=2048"`
	FileSize   int64   `json:"fileSize" binding:"min=0"`
	MimeType   string  `json:"mimeType" binding:"omitempty,max=127"`
	StorageKey *string `json:"storageKey" binding:"omitempty,max=1024"`
}

// RejectDocumentRequest carries the mandatory rejection reason
type RejectDocumentRequest struct {
	Reason string `json:"reason" binding:"required,max=1000"`
}

// UploadURLRequest asks for a presigned upload URL
type UploadURLRequest struct {
	Category string `json:"category" binding:"required,max=64"`
	FileName string `json:"fileName" binding:"required,max=255"`
	MimeType string `json:"mimeType" binding:"required,max=127"`
}

// UploadURLResponse is a presigned upload target. After uploading, clients
// call the upload endpoint with FileURL and StorageKey.
type UploadURLResponse struct {
	UploadURL  string    `json:"uploadUrl"`
	FileURL    string    `json:"fileUrl"`
	StorageKey string    `json:"storageKey"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// DocumentResponse represents a contract document in API responses
type DocumentResponse struct {
	ID              uuid.UUID `json:"id"`
	ContractID      uuid.UUID `json:"contractId"`
	UploadedByID    uuid.UUID `json:"uploadedById"`
	Category        string    `json:"category"`
	FileName        string    `json:"fileName"`
	FileURL         string    `json:"fileUrl"`
	FileSize        int64     `json:"fileSize"`
	MimeType        string    `json:"mimeType"`
	Status          string    `json:"status"`
	RejectionReason *string   `json:"rejectionReason,omitempty"`
	DownloadURL     string    `json:"downloadUrl,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ToDocumentResponse converts a domain document to its response
func ToDocumentResponse(d *document.ContractDocument) DocumentResponse {
	return DocumentResponse{
		ID:              d.ID,
		ContractID:      d.ContractID,
		UploadedByID:    d.UploadedByID,
		Category:        d.Category,
		FileName:        d.FileName,
		FileURL:         d.FileURL,
		FileSize:        d.FileSize,
		MimeType:        d.MimeType,
		Status:          string(d.Status),
		RejectionReason: d.RejectionReason,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

// ChecklistEntry is one uploaded category
type ChecklistEntry struct {
	Category string `json:"category"`
	Status   string `json:"status"`
	FileName string `json:"fileName"`
	Required bool   `json:"required"`
}

// ChecklistResponse summarises a contract's documents
type ChecklistResponse struct {
	ContractID uuid.UUID        `json:"contractId"`
	Documents  []ChecklistEntry `json:"documents"`
	Required   []string         `json:"required"`
	Missing    []string         `json:"missing"`
	Pending    []string         `json:"pending"`
	Complete   bool             `json:"complete"`
}

// ToChecklistResponse converts a checklist to its response
func ToChecklistResponse(contractID uuid.UUID, c document.Checklist) ChecklistResponse {
	entries := make([]ChecklistEntry, len(c.Items))
	for i, item := range c.Items {
		entries[i] = ChecklistEntry{
			Category: item.Category,
			Status:   string(item.Status),
			FileName: item.FileName,
			Required: item.Required,
		}
	}
	return ChecklistResponse{
		ContractID: contractID,
		Documents:  entries,
		Required:   c.Required,
		Missing:    c.Missing,
		Pending:    c.Pending,
		Complete:   c.Complete,
	}
}
