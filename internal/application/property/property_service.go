package property

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rentals/backend/internal/domain/property"
	"github.com/rentals/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// BookedTimesReader reports the visit times already held on a date
type BookedTimesReader interface {
	FindActiveTimes(ctx context.Context, propertyID uuid.UUID, date time.Time) ([]string, error)
}

// PropertyService handles property listings and their visit availability
type PropertyService struct {
	propertyRepo property.PropertyRepository
	bookedTimes  BookedTimesReader
	logger       *zap.Logger
}

// NewPropertyService creates a new PropertyService
func NewPropertyService(propertyRepo property.PropertyRepository, bookedTimes BookedTimesReader, logger *zap.Logger) *PropertyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PropertyService{
		propertyRepo: propertyRepo,
		bookedTimes:  bookedTimes,
		logger:       logger,
	}
}

// Create lists a new property owned by the caller
func (s *PropertyService) Create(ctx context.Context, actor shared.Actor, req CreatePropertyRequest) (*PropertyResponse, error) {
	if actor.Role != shared.RoleOwner && !actor.IsAdmin() {
		return nil, shared.NewForbidden("Only owners can list properties")
	}

	p, err := property.NewProperty(actor.UserID, req.Title, req.Address, req.VisitDuration)
	if err != nil {
		return nil, err
	}
	if err := s.propertyRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	resp := ToPropertyResponse(p)
	return &resp, nil
}

// GetByID retrieves a property
func (s *PropertyService) GetByID(ctx context.Context, id uuid.UUID) (*PropertyResponse, error) {
	p, err := s.propertyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToPropertyResponse(p)
	return &resp, nil
}

// Update changes a property's listing details
func (s *PropertyService) Update(ctx context.Context, actor shared.Actor, id uuid.UUID, req UpdatePropertyRequest) (*PropertyResponse, error) {
	p, err := s.ownedProperty(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	var status *property.PropertyStatus
	if req.Status != nil {
		st := property.PropertyStatus(*req.Status)
		status = &st
	}
	if err := p.Update(req.Title, req.Address, req.VisitDuration, status); err != nil {
		return nil, err
	}
	if err := s.propertyRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	resp := ToPropertyResponse(p)
	return &resp, nil
}

// GetAvailability returns the weekly windows and date overrides of a property
func (s *PropertyService) GetAvailability(ctx context.Context, id uuid.UUID) (*AvailabilityResponse, error) {
	p, err := s.propertyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	schedule, err := s.propertyRepo.FindSchedule(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToAvailabilityResponse(p, schedule)
	return &resp, nil
}

// ReplaceAvailability swaps the weekly schedule of a property
func (s *PropertyService) ReplaceAvailability(ctx context.Context, actor shared.Actor, id uuid.UUID, req ReplaceAvailabilityRequest) (*AvailabilityResponse, error) {
	p, err := s.ownedProperty(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	slots := make([]property.AvailabilitySlot, 0, len(req.Slots))
	for _, in := range req.Slots {
		slot, err := property.NewAvailabilitySlot(id, in.DayOfWeek, in.StartTime, in.EndTime)
		if err != nil {
			return nil, err
		}
		slots = append(slots, *slot)
	}
	if err := s.propertyRepo.ReplaceSlots(ctx, id, slots); err != nil {
		return nil, err
	}

	s.logger.Info("Property availability replaced",
		zap.String("property_id", id.String()),
		zap.Int("slots", len(slots)),
	)

	schedule, err := s.propertyRepo.FindSchedule(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToAvailabilityResponse(p, schedule)
	return &resp, nil
}

// AddOverride blocks a date or replaces its windows
func (s *PropertyService) AddOverride(ctx context.Context, actor shared.Actor, id uuid.UUID, req CreateOverrideRequest) (*DateOverrideResponse, error) {
	if _, err := s.ownedProperty(ctx, actor, id); err != nil {
		return nil, err
	}

	date, err := property.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	o, err := property.NewDateOverride(id, date, property.OverrideType(req.Type), req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if err := s.propertyRepo.SaveOverride(ctx, o); err != nil {
		return nil, err
	}

	resp := ToDateOverrideResponse(o)
	return &resp, nil
}

// DeleteOverride removes a date-specific exception
func (s *PropertyService) DeleteOverride(ctx context.Context, actor shared.Actor, id, overrideID uuid.UUID) error {
	if _, err := s.ownedProperty(ctx, actor, id); err != nil {
		return err
	}
	o, err := s.propertyRepo.FindOverride(ctx, overrideID)
	if err != nil {
		return err
	}
	if o.PropertyID != id {
		return shared.NewNotFound("Date override")
	}
	return s.propertyRepo.DeleteOverride(ctx, overrideID)
}

// GetAvailableSlots computes the bookable start times of a property on date
func (s *PropertyService) GetAvailableSlots(ctx context.Context, id uuid.UUID, date time.Time) (*AvailableSlotsResponse, error) {
	p, err := s.propertyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	slots, err := AvailableSlots(ctx, s.propertyRepo, s.bookedTimes, p, date)
	if err != nil {
		return nil, err
	}

	return &AvailableSlotsResponse{
		PropertyID:     p.ID,
		Date:           property.NormalizeDate(date).Format(property.DateLayout),
		Duration:       p.EffectiveVisitDuration(),
		AvailableSlots: slots,
	}, nil
}

// AvailableSlots loads the schedule and active bookings of p and resolves
// the free slots on date. Callers inside a transaction pass tx-scoped readers.
func AvailableSlots(ctx context.Context, schedules property.PropertyRepository, booked BookedTimesReader, p *property.Property, date time.Time) ([]string, error) {
	schedule, err := schedules.FindSchedule(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	times, err := booked.FindActiveTimes(ctx, p.ID, property.NormalizeDate(date))
	if err != nil {
		return nil, err
	}

	slots := property.ResolveSlots(*schedule, date, p.EffectiveVisitDuration(), times)
	if slots == nil {
		slots = []string{}
	}
	return slots, nil
}

func (s *PropertyService) ownedProperty(ctx context.Context, actor shared.Actor, id uuid.UUID) (*property.Property, error) {
	p, err := s.propertyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.OwnedBy(actor.UserID) && !actor.IsAdmin() {
		return nil, shared.NewForbidden("Only the property owner can manage this property")
	}
	return p, nil
}
