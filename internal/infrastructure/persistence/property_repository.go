package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rentals/backend/internal/domain/property"
	"github.com/rentals/backend/internal/domain/shared"
	"github.com/rentals/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPropertyRepository implements PropertyRepository using GORM
type GormPropertyRepository struct {
	db *gorm.DB
}

// NewGormPropertyRepository creates a new GormPropertyRepository
func NewGormPropertyRepository(db *gorm.DB) *GormPropertyRepository {
	return &GormPropertyRepository{db: db}
}

// FindByID finds a property by its ID
func (r *GormPropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	var model models.PropertyModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translate(err, "Property")
	}
	return model.ToDomain(), nil
}

// FindByOwner returns one page of an owner's properties and the total count
func (r *GormPropertyRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]property.Property, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PropertyModel{}).Where("owner_id = ?", ownerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.PropertyModel
	if err := paginate(query, filter, PropertySortFields, "created_at").Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]property.Property, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// Save creates or updates a property
func (r *GormPropertyRepository) Save(ctx context.Context, p *property.Property) error {
	return translate(r.db.WithContext(ctx).Save(models.PropertyModelFromDomain(p)).Error, "Property")
}

// FindSchedule loads every weekly slot and date override of a property
func (r *GormPropertyRepository) FindSchedule(ctx context.Context, propertyID uuid.UUID) (*property.Schedule, error) {
	var slots []models.AvailabilitySlotModel
	if err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("day_of_week ASC").Order("start_time ASC").
		Find(&slots).Error; err != nil {
		return nil, fmt.Errorf("load availability slots: %w", err)
	}

	var overrides []models.DateOverrideModel
	if err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("date ASC").Order("start_time ASC").
		Find(&overrides).Error; err != nil {
		return nil, fmt.Errorf("load date overrides: %w", err)
	}

	schedule := &property.Schedule{
		Slots:     make([]property.AvailabilitySlot, len(slots)),
		Overrides: make([]property.DateOverride, len(overrides)),
	}
	for i := range slots {
		schedule.Slots[i] = slots[i].ToDomain()
	}
	for i := range overrides {
		schedule.Overrides[i] = overrides[i].ToDomain()
	}
	return schedule, nil
}

// ReplaceSlots atomically swaps the weekly schedule of a property
func (r *GormPropertyRepository) ReplaceSlots(ctx context.Context, propertyID uuid.UUID, slots []property.AvailabilitySlot) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_id = ?", propertyID).Delete(&models.AvailabilitySlotModel{}).Error; err != nil {
			return err
		}
		if len(slots) == 0 {
			return nil
		}
		rows := make([]*models.AvailabilitySlotModel, len(slots))
		for i, s := range slots {
			s.PropertyID = propertyID
			rows[i] = models.AvailabilitySlotModelFromDomain(s)
		}
		return tx.Create(&rows).Error
	})
}

// SaveOverride inserts a date override
func (r *GormPropertyRepository) SaveOverride(ctx context.Context, o *property.DateOverride) error {
	return translate(r.db.WithContext(ctx).Create(models.DateOverrideModelFromDomain(o)).Error, "Availability override")
}

// FindOverride finds a date override by its ID
func (r *GormPropertyRepository) FindOverride(ctx context.Context, id uuid.UUID) (*property.DateOverride, error) {
	var model models.DateOverrideModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translate(err, "Availability override")
	}
	o := model.ToDomain()
	return &o, nil
}

// DeleteOverride removes a date override
func (r *GormPropertyRepository) DeleteOverride(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.DateOverrideModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFound("Availability override")
	}
	return nil
}

var _ property.PropertyRepository = (*GormPropertyRepository)(nil)
