package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rentals/backend/internal/domain/booking"
	"github.com/rentals/backend/internal/domain/property"
	"github.com/rentals/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockBookingRepository is a mock implementation of BookingRepository
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) SaveWithLock(ctx context.Context, b *booking.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) ExistsActiveSlot(ctx context.Context, propertyID uuid.UUID, date time.Time, visitTime string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, propertyID, date, visitTime, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) FindActiveTimes(ctx context.Context, propertyID uuid.UUID, date time.Time) ([]string, error) {
	args := m.Called(ctx, propertyID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBookingRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]booking.Booking, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]booking.Booking), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookingRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) ([]booking.Booking, int64, error) {
	args := m.Called(ctx, propertyID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]booking.Booking), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookingRepository) FindActiveOnOrBefore(ctx context.Context, date time.Time, limit int) ([]booking.Booking, error) {
	args := m.Called(ctx, date, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]booking.Booking), args.Error(1)
}

var _ booking.BookingRepository = (*MockBookingRepository)(nil)

// MockPropertyRepository is a mock implementation of PropertyRepository
type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Property), args.Error(1)
}

func (m *MockPropertyRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]property.Property, int64, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]property.Property), args.Get(1).(int64), args.Error(2)
}

func (m *MockPropertyRepository) Save(ctx context.Context, p *property.Property) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPropertyRepository) FindSchedule(ctx context.Context, propertyID uuid.UUID) (*property.Schedule, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Schedule), args.Error(1)
}

func (m *MockPropertyRepository) ReplaceSlots(ctx context.Context, propertyID uuid.UUID, slots []property.AvailabilitySlot) error {
	args := m.Called(ctx, propertyID, slots)
	return args.Error(0)
}

func (m *MockPropertyRepository) SaveOverride(ctx context.Context, o *property.DateOverride) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockPropertyRepository) FindOverride(ctx context.Context, id uuid.UUID) (*property.DateOverride, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.DateOverride), args.Error(1)
}

func (m *MockPropertyRepository) DeleteOverride(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ property.PropertyRepository = (*MockPropertyRepository)(nil)

// MockEventPublisher records published events
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

var _ shared.EventPublisher = (*MockEventPublisher)(nil)
