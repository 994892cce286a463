package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rentals/backend/internal/domain/booking"
	"github.com/rentals/backend/internal/domain/property"
	"github.com/rentals/backend/internal/domain/shared"
	"github.com/rentals/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormBookingRepository implements BookingRepository using GORM
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

var errSlotTaken = shared.NewConflict("This time slot is already booked")

func activeStatuses() []string {
	out := make([]string, len(booking.ActiveStatuses))
	for i, s := range booking.ActiveStatuses {
		out[i] = string(s)
	}
	return out
}

// FindByID finds a booking by its ID
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	var model models.BookingModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translate(err, "Booking")
	}
	return model.ToDomain(), nil
}

// Create inserts a booking. idx_bookings_active_slot turns a lost race for
// the same slot into shared.ErrConflict.
func (r *GormBookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	if err := r.db.WithContext(ctx).Create(models.BookingModelFromDomain(b)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errSlotTaken
		}
		return err
	}
	return nil
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormBookingRepository) SaveWithLock(ctx context.Context, b *booking.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var currentVersion int
		result := tx.Model(&models.BookingModel{}).
			Where("id = ?", b.ID).
			Select("version").
			Scan(&currentVersion)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewNotFound("Booking")
		}
		if currentVersion != b.Version {
			return shared.NewConflict("The booking has been modified by another user")
		}

		b.Version++
		b.UpdatedAt = time.Now()

		update := tx.Model(&models.BookingModel{}).
			Where("id = ? AND version = ?", b.ID, currentVersion).
			Updates(map[string]interface{}{
				"visit_date":          property.NormalizeDate(b.VisitDate),
				"visit_time":          b.VisitTime,
				"duration":            b.Duration,
				"status":              b.Status,
				"tenant_notes":        b.TenantNotes,
				"owner_notes":         b.OwnerNotes,
				"cancellation_reason": b.CancellationReason,
				"confirmed_at":        b.ConfirmedAt,
				"cancelled_at":        b.CancelledAt,
				"completed_at":        b.CompletedAt,
				"version":             b.Version,
				"updated_at":          b.UpdatedAt,
			})
		if update.Error != nil {
			b.Version--
			if errors.Is(update.Error, gorm.ErrDuplicatedKey) {
				// rescheduled onto a slot a concurrent booking took
				return errSlotTaken
			}
			return update.Error
		}
		if update.RowsAffected == 0 {
			b.Version--
			return shared.NewConflict("The booking has been modified by another user")
		}
		return nil
	})
}

// ExistsActiveSlot reports whether an active booking holds the slot
func (r *GormBookingRepository) ExistsActiveSlot(ctx context.Context, propertyID uuid.UUID, date time.Time, visitTime string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.BookingModel{}).
		Where("property_id = ? AND visit_date = ? AND visit_time = ?", propertyID, property.NormalizeDate(date), visitTime).
		Where("status IN ?", activeStatuses())
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindActiveTimes returns the visit times held by active bookings on date
func (r *GormBookingRepository) FindActiveTimes(ctx context.Context, propertyID uuid.UUID, date time.Time) ([]string, error) {
	var times []string
	if err := r.db.WithContext(ctx).Model(&models.BookingModel{}).
		Where("property_id = ? AND visit_date = ?", propertyID, property.NormalizeDate(date)).
		Where("status IN ?", activeStatuses()).
		Order("visit_time ASC").
		Pluck("visit_time", &times).Error; err != nil {
		return nil, err
	}
	return times, nil
}

// FindByTenant returns one page of a tenant's bookings
func (r *GormBookingRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]booking.Booking, int64, error) {
	return r.findPage(ctx, r.db.WithContext(ctx).Model(&models.BookingModel{}).Where("tenant_id = ?", tenantID), filter)
}

// FindByProperty returns one page of a property's bookings
func (r *GormBookingRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) ([]booking.Booking, int64, error) {
	return r.findPage(ctx, r.db.WithContext(ctx).Model(&models.BookingModel{}).Where("property_id = ?", propertyID), filter)
}

func (r *GormBookingRepository) findPage(_ context.Context, query *gorm.DB, filter shared.Filter) ([]booking.Booking, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.BookingModel
	if err := paginate(query, filter, BookingSortFields, "visit_date").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toBookings(rows), total, nil
}

// FindActiveOnOrBefore returns active bookings dated on or before date, oldest first
func (r *GormBookingRepository) FindActiveOnOrBefore(ctx context.Context, date time.Time, limit int) ([]booking.Booking, error) {
	var rows []models.BookingModel
	if err := r.db.WithContext(ctx).
		Where("visit_date <= ?", property.NormalizeDate(date)).
		Where("status IN ?", activeStatuses()).
		Order("visit_date ASC").Order("visit_time ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toBookings(rows), nil
}

func toBookings(rows []models.BookingModel) []booking.Booking {
	out := make([]booking.Booking, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

var _ booking.BookingRepository = (*GormBookingRepository)(nil)
