package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rentals/backend/internal/domain/document"
	"github.com/rentals/backend/internal/domain/shared"
	"github.com/rentals/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDocumentRepository implements DocumentRepository using GORM
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewGormDocumentRepository creates a new GormDocumentRepository
func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

// FindByID finds a document by its ID
func (r *GormDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*document.ContractDocument, error) {
	var model models.ContractDocumentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translate(err, "Document")
	}
	return model.ToDomain(), nil
}

// FindByContract returns every document of a contract ordered by category
func (r *GormDocumentRepository) FindByContract(ctx context.Context, contractID uuid.UUID) ([]document.ContractDocument, error) {
	var rows []models.ContractDocumentModel
	if err := r.db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Order("category ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]document.ContractDocument, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// FindByCategory finds the document a contract holds for category
func (r *GormDocumentRepository) FindByCategory(ctx context.Context, contractID uuid.UUID, category string) (*document.ContractDocument, error) {
	var model models.ContractDocumentModel
	if err := r.db.WithContext(ctx).
		Where("contract_id = ? AND category = ?", contractID, category).
		First(&model).Error; err != nil {
		return nil, translate(err, "Document")
	}
	return model.ToDomain(), nil
}

// Upsert inserts d or overwrites the row already held for its category
func (r *GormDocumentRepository) Upsert(ctx context.Context, d *document.ContractDocument) error {
	model := models.ContractDocumentModelFromDomain(d)
	model.UpdatedAt = time.Now()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "contract_id"}, {Name: "category"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"uploaded_by_id", "file_name", "file_url", "file_size", "mime_type",
				"storage_key", "status", "rejection_reason", "updated_at",
			}),
		}).Create(model).Error; err != nil {
			return err
		}

		var surviving models.ContractDocumentModel
		if err := tx.Select("id", "created_at", "version").
			Where("contract_id = ? AND category = ?", d.ContractID, d.Category).
			First(&surviving).Error; err != nil {
			return err
		}
		d.ID = surviving.ID
		d.CreatedAt = surviving.CreatedAt
		d.Version = surviving.Version
		d.UpdatedAt = model.UpdatedAt
		return nil
	})
	return translate(err, "Document")
}

// Save updates an existing document
func (r *GormDocumentRepository) Save(ctx context.Context, d *document.ContractDocument) error {
	d.UpdatedAt = time.Now()
	result := r.db.WithContext(ctx).Model(&models.ContractDocumentModel{}).
		Where("id = ?", d.ID).
		Updates(map[string]interface{}{
			"status":           d.Status,
			"rejection_reason": d.RejectionReason,
			"updated_at":       d.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFound("Document")
	}
	return nil
}

// Delete removes a document
func (r *GormDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ContractDocumentModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFound("Document")
	}
	return nil
}

var _ document.DocumentRepository = (*GormDocumentRepository)(nil)
