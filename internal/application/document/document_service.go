package document

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rentals/backend/internal/domain/contract"
	"github.com/rentals/backend/internal/domain/document"
	"github.com/rentals/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Options configures the document checklist
type Options struct {
	RequiredCategories []string
	// UploadURLExpiry bounds presigned upload and download URLs
	UploadURLExpiry time.Duration
	// VerifyUploads checks that a reported storage key exists before accepting it
	VerifyUploads bool
}

// DocumentService manages the per-contract document checklist
type DocumentService struct {
	documentRepo   document.DocumentRepository
	contractRepo   contract.ContractRepository
	storage        ObjectStorage
	opts           Options
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewDocumentService creates a new DocumentService. storage may be nil, in
// which case presigned URLs are unavailable and stored objects are never
// touched.
func NewDocumentService(
	documentRepo document.DocumentRepository,
	contractRepo contract.ContractRepository,
	storage ObjectStorage,
	opts Options,
	logger *zap.Logger,
) *DocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.UploadURLExpiry <= 0 {
		opts.UploadURLExpiry = 15 * time.Minute
	}
	return &DocumentService{
		documentRepo: documentRepo,
		contractRepo: contractRepo,
		storage:      storage,
		opts:         opts,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher used for notifications
func (s *DocumentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// UploadDocument records an uploaded file, replacing any earlier file of the
// same category and resetting its review
func (s *DocumentService) UploadDocument(ctx context.Context, actor shared.Actor, contractID uuid.UUID, req UploadDocumentRequest) (*DocumentResponse, error) {
	c, err := s.contractRepo.FindByID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if err := document.CanUpload(c, actor); err != nil {
		return nil, err
	}

	file := document.FileInfo{
		Category:   req.Category,
		FileName:   req.FileName,
		FileURL:    req.FileURL,
		FileSize:   req.FileSize,
		MimeType:   req.MimeType,
		StorageKey: req.StorageKey,
	}
	if err := s.checkStorageKey(ctx, contractID, file.StorageKey); err != nil {
		return nil, err
	}

	var stale *string
	d, err := s.documentRepo.FindByCategory(ctx, contractID, document.NormalizeCategory(req.Category))
	switch {
	case errors.Is(err, shared.ErrNotFound):
		d, err = document.NewContractDocument(contractID, actor.UserID, file)
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		if stale, err = d.Replace(actor.UserID, file); err != nil {
			return nil, err
		}
	}

	if err := s.documentRepo.Upsert(ctx, d); err != nil {
		return nil, err
	}
	if stale != nil {
		s.deleteObject(ctx, *stale)
	}

	s.logger.Info("Contract document uploaded",
		zap.String("contract_id", contractID.String()),
		zap.String("document_id", d.ID.String()),
		zap.String("category", d.Category),
	)
	s.publish(ctx, d)

	resp := ToDocumentResponse(d)
	return &resp, nil
}

// ValidateDocument marks a document VALIDATED
func (s *DocumentService) ValidateDocument(ctx context.Context, actor shared.Actor, contractID, documentID uuid.UUID) (*DocumentResponse, error) {
	return s.UpdateDocumentStatus(ctx, actor, contractID, documentID, document.DocumentStatusValidated, nil)
}

// RejectDocument marks a document REJECTED with a reason
func (s *DocumentService) RejectDocument(ctx context.Context, actor shared.Actor, contractID, documentID uuid.UUID, req RejectDocumentRequest) (*DocumentResponse, error) {
	return s.UpdateDocumentStatus(ctx, actor, contractID, documentID, document.DocumentStatusRejected, &req.Reason)
}

// UpdateDocumentStatus records the contract owner's review
func (s *DocumentService) UpdateDocumentStatus(
	ctx context.Context,
	actor shared.Actor,
	contractID, documentID uuid.UUID,
	status document.DocumentStatus,
	reason *string,
) (*DocumentResponse, error) {
	d, c, err := s.load(ctx, contractID, documentID)
	if err != nil {
		return nil, err
	}
	if err := document.CanReview(c, actor); err != nil {
		return nil, err
	}
	if err := d.Review(actor.UserID, status, reason); err != nil {
		return nil, err
	}
	if err := s.documentRepo.Save(ctx, d); err != nil {
		return nil, err
	}

	s.logger.Info("Contract document reviewed",
		zap.String("document_id", d.ID.String()),
		zap.String("status", string(d.Status)),
	)
	s.publish(ctx, d)

	resp := ToDocumentResponse(d)
	return &resp, nil
}

// GetChecklistStatus reports uploaded categories against the required set
func (s *DocumentService) GetChecklistStatus(ctx context.Context, actor shared.Actor, contractID uuid.UUID) (*ChecklistResponse, error) {
	c, err := s.contractRepo.FindByID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if err := document.CanView(c, actor); err != nil {
		return nil, err
	}
	docs, err := s.documentRepo.FindByContract(ctx, contractID)
	if err != nil {
		return nil, err
	}

	resp := ToChecklistResponse(contractID, document.BuildChecklist(docs, s.opts.RequiredCategories))
	return &resp, nil
}

// ListDocuments returns the contract's documents with short-lived download
// links for stored files
func (s *DocumentService) ListDocuments(ctx context.Context, actor shared.Actor, contractID uuid.UUID) ([]DocumentResponse, error) {
	c, err := s.contractRepo.FindByID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if err := document.CanView(c, actor); err != nil {
		return nil, err
	}
	docs, err := s.documentRepo.FindByContract(ctx, contractID)
	if err != nil {
		return nil, err
	}

	out := make([]DocumentResponse, len(docs))
	for i := range docs {
		out[i] = ToDocumentResponse(&docs[i])
		if s.storage == nil || docs[i].StorageKey == nil {
			continue
		}
		url, _, err := s.storage.GenerateDownloadURL(ctx, *docs[i].StorageKey, s.opts.UploadURLExpiry)
		if err != nil {
			s.logger.Warn("Failed to sign download URL", zap.String("document_id", docs[i].ID.String()), zap.Error(err))
			continue
		}
		out[i].DownloadURL = url
	}
	return out, nil
}

// DeleteDocument removes a document and its stored object
func (s *DocumentService) DeleteDocument(ctx context.Context, actor shared.Actor, contractID, documentID uuid.UUID) error {
	d, c, err := s.load(ctx, contractID, documentID)
	if err != nil {
		return err
	}
	if err := document.CanDelete(c, d, actor); err != nil {
		return err
	}
	if err := s.documentRepo.Delete(ctx, d.ID); err != nil {
		return err
	}
	if d.StorageKey != nil {
		s.deleteObject(ctx, *d.StorageKey)
	}

	s.logger.Info("Contract document deleted", zap.String("document_id", d.ID.String()))
	return nil
}

// RequestUploadURL issues a presigned upload target under the contract's prefix
func (s *DocumentService) RequestUploadURL(ctx context.Context, actor shared.Actor, contractID uuid.UUID, req UploadURLRequest) (*UploadURLResponse, error) {
	if s.storage == nil {
		return nil, fmt.Errorf("object storage is not configured")
	}
	c, err := s.contractRepo.FindByID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if err := document.CanUpload(c, actor); err != nil {
		return nil, err
	}
	category := document.NormalizeCategory(req.Category)
	if category == "" {
		return nil, shared.NewInvalidInput("Document category cannot be empty")
	}

	key := StorageKey(contractID, category, req.FileName)
	url, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, req.MimeType, s.opts.UploadURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("generate upload url: %w", err)
	}
	return &UploadURLResponse{
		UploadURL:  url,
		FileURL:    s.storage.ObjectURL(key),
		StorageKey: key,
		ExpiresAt:  expiresAt,
	}, nil
}

// StorageKey builds contracts/<contract>/<category>/<random>-<file>
func StorageKey(contractID uuid.UUID, category, fileName string) string {
	return fmt.Sprintf("%s%s/%s-%s",
		keyPrefix(contractID), strings.ToLower(category), uuid.NewString(), sanitizeFileName(fileName))
}

func keyPrefix(contractID uuid.UUID) string {
	return "contracts/" + contractID.String() + "/"
}

func sanitizeFileName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		}
		return -1
	}, name)
	if clean == "" || clean == "." || clean == ".." {
		return "file"
	}
	return clean
}

// checkStorageKey rejects keys outside the contract's prefix and, when
// configured, keys that were never uploaded
func (s *DocumentService) checkStorageKey(ctx context.Context, contractID uuid.UUID, key *string) error {
	if key == nil {
		return nil
	}
	if !strings.HasPrefix(*key, keyPrefix(contractID)) {
		return shared.NewInvalidInput("Storage key does not belong to this contract")
	}
	if !s.opts.VerifyUploads || s.storage == nil {
		return nil
	}
	exists, err := s.storage.ObjectExists(ctx, *key)
	if err != nil {
		return fmt.Errorf("check uploaded object: %w", err)
	}
	if !exists {
		return shared.NewInvalidInput("Uploaded file was not found in storage")
	}
	return nil
}

func (s *DocumentService) load(ctx context.Context, contractID, documentID uuid.UUID) (*document.ContractDocument, *contract.Contract, error) {
	d, err := s.documentRepo.FindByID(ctx, documentID)
	if err != nil {
		return nil, nil, err
	}
	if d.ContractID != contractID {
		return nil, nil, shared.NewNotFound("Document")
	}
	c, err := s.contractRepo.FindByID(ctx, contractID)
	if err != nil {
		return nil, nil, err
	}
	return d, c, nil
}

func (s *DocumentService) deleteObject(ctx context.Context, key string) {
	if s.storage == nil {
		return
	}
	if err := s.storage.DeleteObject(ctx, key); err != nil {
		s.logger.Warn("Failed to delete stored object", zap.String("storage_key", key), zap.Error(err))
	}
}

func (s *DocumentService) publish(ctx context.Context, d *document.ContractDocument) {
	events := d.GetDomainEvents()
	d.ClearDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish document events", zap.String("document_id", d.ID.String()), zap.Error(err))
	}
}
