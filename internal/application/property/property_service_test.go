package property

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rentals/backend/internal/domain/property"
	"github.com/rentals/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

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

// MockBookedTimesReader is a mock implementation of BookedTimesReader
type MockBookedTimesReader struct {
	mock.Mock
}

func (m *MockBookedTimesReader) FindActiveTimes(ctx context.Context, propertyID uuid.UUID, date time.Time) ([]string, error) {
	args := m.Called(ctx, propertyID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func newTestService() (*PropertyService, *MockPropertyRepository, *MockBookedTimesReader) {
	repo := new(MockPropertyRepository)
	booked := new(MockBookedTimesReader)
	return NewPropertyService(repo, booked, nil), repo, booked
}

func newTestProperty(t *testing.T, ownerID uuid.UUID) *property.Property {
	p, err := property.NewProperty(ownerID, "Studio Bastille", "3 rue de Lappe", 30)
	require.NoError(t, err)
	return p
}

func TestPropertyService_GetAvailableSlots(t *testing.T) {
	ctx := context.Background()
	svc, repo, booked := newTestService()
	p := newTestProperty(t, uuid.New())
	monday := time.Date(2030, 6, 3, 0, 0, 0, 0, time.UTC)

	slot, err := property.NewAvailabilitySlot(p.ID, int(time.Monday), "10:00", "12:00")
	require.NoError(t, err)

	repo.On("FindByID", ctx, p.ID).Return(p, nil)
	repo.On("FindSchedule", ctx, p.ID).Return(&property.Schedule{Slots: []property.AvailabilitySlot{*slot}}, nil)
	booked.On("FindActiveTimes", ctx, p.ID, monday).Return([]string{"10:30"}, nil)

	resp, err := svc.GetAvailableSlots(ctx, p.ID, monday)
	require.NoError(t, err)

	assert.Equal(t, []string{"10:00", "11:00", "11:30"}, resp.AvailableSlots)
	assert.Equal(t, "2030-06-03", resp.Date)
	assert.Equal(t, 30, resp.Duration)
}

func TestPropertyService_GetAvailableSlots_EmptyIsNotNil(t *testing.T) {
	ctx := context.Background()
	svc, repo, booked := newTestService()
	p := newTestProperty(t, uuid.New())
	date := time.Date(2030, 6, 3, 0, 0, 0, 0, time.UTC)

	blocked, err := property.NewDateOverride(p.ID, date, property.OverrideTypeBlocked, nil, nil)
	require.NoError(t, err)

	repo.On("FindByID", ctx, p.ID).Return(p, nil)
	repo.On("FindSchedule", ctx, p.ID).Return(&property.Schedule{Overrides: []property.DateOverride{*blocked}}, nil)
	booked.On("FindActiveTimes", ctx, p.ID, date).Return([]string{}, nil)

	resp, err := svc.GetAvailableSlots(ctx, p.ID, date)
	require.NoError(t, err)
	assert.NotNil(t, resp.AvailableSlots)
	assert.Empty(t, resp.AvailableSlots)
}

func TestPropertyService_GetAvailableSlots_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService()
	id := uuid.New()

	repo.On("FindByID", ctx, id).Return(nil, shared.NewNotFound("Property"))

	_, err := svc.GetAvailableSlots(ctx, id, time.Now())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestPropertyService_Create(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService()
	owner := shared.NewActor(uuid.New(), shared.RoleOwner)

	repo.On("Save", ctx, mock.AnythingOfType("*property.Property")).Return(nil)

	resp, err := svc.Create(ctx, owner, CreatePropertyRequest{Title: "Loft", VisitDuration: 45})
	require.NoError(t, err)
	assert.Equal(t, owner.UserID, resp.OwnerID)
	assert.Equal(t, 45, resp.VisitDuration)
	assert.Equal(t, "AVAILABLE", resp.Status)

	tenant := shared.NewActor(uuid.New(), shared.RoleTenant)
	_, err = svc.Create(ctx, tenant, CreatePropertyRequest{Title: "Loft"})
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestPropertyService_ReplaceAvailability(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService()
	ownerID := uuid.New()
	p := newTestProperty(t, ownerID)

	repo.On("FindByID", ctx, p.ID).Return(p, nil)
	repo.On("ReplaceSlots", ctx, p.ID, mock.MatchedBy(func(slots []property.AvailabilitySlot) bool {
		return len(slots) == 2 && slots[0].DayOfWeek == time.Monday && slots[1].DayOfWeek == time.Saturday
	})).Return(nil)
	repo.On("FindSchedule", ctx, p.ID).Return(&property.Schedule{}, nil)

	_, err := svc.ReplaceAvailability(ctx, shared.NewActor(ownerID, shared.RoleOwner), p.ID, ReplaceAvailabilityRequest{
		Slots: []AvailabilitySlotInput{
			{DayOfWeek: 1, StartTime: "10:00", EndTime: "12:00"},
			{DayOfWeek: 6, StartTime: "09:00", EndTime: "11:00"},
		},
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestPropertyService_ReplaceAvailability_NotOwner(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService()
	p := newTestProperty(t, uuid.New())

	repo.On("FindByID", ctx, p.ID).Return(p, nil)

	_, err := svc.ReplaceAvailability(ctx, shared.NewActor(uuid.New(), shared.RoleOwner), p.ID, ReplaceAvailabilityRequest{})
	assert.ErrorIs(t, err, shared.ErrForbidden)
	repo.AssertNotCalled(t, "ReplaceSlots", mock.Anything, mock.Anything, mock.Anything)
}

func TestPropertyService_AddOverride(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService()
	ownerID := uuid.New()
	p := newTestProperty(t, ownerID)
	owner := shared.NewActor(ownerID, shared.RoleOwner)

	repo.On("FindByID", ctx, p.ID).Return(p, nil)
	repo.On("SaveOverride", ctx, mock.AnythingOfType("*property.DateOverride")).Return(nil)

	start, end := "14:00", "16:00"
	resp, err := svc.AddOverride(ctx, owner, p.ID, CreateOverrideRequest{Date: "2030-06-03", Type: "EXTRA", StartTime: &start, EndTime: &end})
	require.NoError(t, err)
	assert.Equal(t, "2030-06-03", resp.Date)
	assert.Equal(t, "EXTRA", resp.Type)

	_, err = svc.AddOverride(ctx, owner, p.ID, CreateOverrideRequest{Date: "2030-06-03", Type: "EXTRA"})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestPropertyService_DeleteOverride_WrongProperty(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService()
	ownerID := uuid.New()
	p := newTestProperty(t, ownerID)

	o, err := property.NewDateOverride(uuid.New(), time.Now(), property.OverrideTypeBlocked, nil, nil)
	require.NoError(t, err)

	repo.On("FindByID", ctx, p.ID).Return(p, nil)
	repo.On("FindOverride", ctx, o.ID).Return(o, nil)

	err = svc.DeleteOverride(ctx, shared.NewActor(ownerID, shared.RoleOwner), p.ID, o.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	repo.AssertNotCalled(t, "DeleteOverride", mock.Anything, mock.Anything)
}
