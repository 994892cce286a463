package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rentals/backend/internal/domain/contract"
	"github.com/rentals/backend/internal/domain/property"
	"github.com/rentals/backend/internal/domain/shared"
	"github.com/rentals/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormContractRepository implements ContractRepository using GORM
type GormContractRepository struct {
	db *gorm.DB
}

// NewGormContractRepository creates a new GormContractRepository
func NewGormContractRepository(db *gorm.DB) *GormContractRepository {
	return &GormContractRepository{db: db}
}

// FindByID finds a contract by its ID
func (r *GormContractRepository) FindByID(ctx context.Context, id uuid.UUID) (*contract.Contract, error) {
	var model models.ContractModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translate(err, "Contract")
	}
	return model.ToDomain(), nil
}

// FindAll returns one page of contracts matching filter and the total count
func (r *GormContractRepository) FindAll(ctx context.Context, filter contract.ContractFilter) ([]contract.Contract, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ContractModel{})

	if filter.PartyID != nil {
		query = query.Where("(owner_id = ? OR tenant_id = ?)", *filter.PartyID, *filter.PartyID)
	}
	if filter.PropertyID != nil {
		query = query.Where("property_id = ?", *filter.PropertyID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ContractModel
	if err := paginate(query, filter.Filter, ContractSortFields, "created_at").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toContracts(rows), total, nil
}

// Create inserts a new contract
func (r *GormContractRepository) Create(ctx context.Context, c *contract.Contract) error {
	return translate(r.db.WithContext(ctx).Create(models.ContractModelFromDomain(c)).Error, "Contract")
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormContractRepository) SaveWithLock(ctx context.Context, c *contract.Contract) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var currentVersion int
		result := tx.Model(&models.ContractModel{}).
			Where("id = ?", c.ID).
			Select("version").
			Scan(&currentVersion)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewNotFound("Contract")
		}
		if currentVersion != c.Version {
			return shared.NewConflict("The contract has been modified by another user")
		}

		c.Version++
		c.UpdatedAt = time.Now()

		update := tx.Model(&models.ContractModel{}).
			Where("id = ? AND version = ?", c.ID, currentVersion).
			Updates(map[string]interface{}{
				"status":              c.Status,
				"start_date":          property.NormalizeDate(c.StartDate),
				"end_date":            property.NormalizeDate(c.EndDate),
				"monthly_rent":        c.MonthlyRent,
				"charges":             c.Charges,
				"deposit":             c.Deposit,
				"terms":               c.Terms,
				"content":             c.Content,
				"custom_clauses":      models.ClausesJSON(c.CustomClauses),
				"owner_signature":     c.OwnerSignature,
				"tenant_signature":    c.TenantSignature,
				"owner_signed_at":     c.OwnerSignedAt,
				"tenant_signed_at":    c.TenantSignedAt,
				"sent_at":             c.SentAt,
				"activated_at":        c.ActivatedAt,
				"terminated_at":       c.TerminatedAt,
				"cancelled_at":        c.CancelledAt,
				"expired_at":          c.ExpiredAt,
				"cancellation_reason": c.CancellationReason,
				"version":             c.Version,
				"updated_at":          c.UpdatedAt,
			})
		if update.Error != nil {
			c.Version--
			return update.Error
		}
		if update.RowsAffected == 0 {
			c.Version--
			return shared.NewConflict("The contract has been modified by another user")
		}
		return nil
	})
}

// Delete removes a contract
func (r *GormContractRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ContractModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFound("Contract")
	}
	return nil
}

// FindActiveEndingBefore returns ACTIVE contracts whose end date is strictly before date
func (r *GormContractRepository) FindActiveEndingBefore(ctx context.Context, date time.Time, limit int) ([]contract.Contract, error) {
	var rows []models.ContractModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", contract.ContractStatusActive).
		Where("end_date < ?", property.NormalizeDate(date)).
		Order("end_date ASC").Order("id ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toContracts(rows), nil
}

func toContracts(rows []models.ContractModel) []contract.Contract {
	out := make([]contract.Contract, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

var _ contract.ContractRepository = (*GormContractRepository)(nil)
