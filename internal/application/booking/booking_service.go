package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	appproperty "github.com/rentals/backend/internal/application/property"
	"github.com/rentals/backend/internal/domain/booking"
	"github.com/rentals/backend/internal/domain/property"
	"github.com/rentals/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// BookingService handles visit bookings
type BookingService struct {
	bookingRepo    booking.BookingRepository
	propertyRepo   property.PropertyRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
	now            func() time.Time
	location       *time.Location
}

// Option configures a BookingService
type Option func(*BookingService)

// WithClock overrides the time source used for the future-visit check
func WithClock(now func() time.Time) Option {
	return func(s *BookingService) {
		s.now = now
	}
}

// WithLocation sets the time zone visit slots are expressed in
func WithLocation(loc *time.Location) Option {
	return func(s *BookingService) {
		if loc != nil {
			s.location = loc
		}
	}
}

// NewBookingService creates a new BookingService
func NewBookingService(
	bookingRepo booking.BookingRepository,
	propertyRepo property.PropertyRepository,
	txScope TransactionScope,
	logger *zap.Logger,
	opts ...Option,
) *BookingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &BookingService{
		bookingRepo:  bookingRepo,
		propertyRepo: propertyRepo,
		txScope:      txScope,
		logger:       logger,
		now:          time.Now,
		location:     time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetEventPublisher sets the event publisher used for notifications
func (s *BookingService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create books a visit slot for the calling tenant. The slot checks and the
// insert share one transaction, and the storage layer's unique index on
// active slots turns a lost race into a Conflict.
func (s *BookingService) Create(ctx context.Context, actor shared.Actor, req CreateBookingRequest) (*BookingResponse, error) {
	if actor.Role != shared.RoleTenant && !actor.IsAdmin() {
		return nil, shared.NewForbidden("Only tenants can book visits")
	}
	date, err := property.ParseDate(req.VisitDate)
	if err != nil {
		return nil, err
	}
	if _, err := property.ParseTimeOfDay(req.VisitTime); err != nil {
		return nil, err
	}
	duration := 0
	if req.Duration != nil {
		duration = *req.Duration
	}

	var (
		created *booking.Booking
		prop    *property.Property
	)
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		p, err := repos.Properties().FindByID(ctx, req.PropertyID)
		if err != nil {
			return err
		}
		if !p.IsAvailable() {
			return shared.NewInvalidState("Property is not available for visits")
		}
		if err := s.checkSlot(ctx, repos, p, date, req.VisitTime, nil); err != nil {
			return err
		}

		b, err := booking.NewBooking(p.ID, actor.UserID, date, req.VisitTime, duration, req.TenantNotes)
		if err != nil {
			return err
		}
		if err := repos.Bookings().Create(ctx, b); err != nil {
			return err
		}
		created, prop = b, p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Booking created",
		zap.String("booking_id", created.ID.String()),
		zap.String("property_id", created.PropertyID.String()),
		zap.String("visit_date", req.VisitDate),
		zap.String("visit_time", created.VisitTime),
	)
	s.publish(ctx, created)

	resp := ToBookingResponse(created, prop)
	return &resp, nil
}

// checkSlot runs the conflict, future and availability checks in that order
func (s *BookingService) checkSlot(ctx context.Context, repos TransactionalRepositories, p *property.Property, date time.Time, visitTime string, excludeID *uuid.UUID) error {
	taken, err := repos.Bookings().ExistsActiveSlot(ctx, p.ID, date, visitTime, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return shared.NewConflict("This time slot is already booked")
	}

	t, err := property.ParseTimeOfDay(visitTime)
	if err != nil {
		return err
	}
	if property.At(date, t, s.location).Before(s.now()) {
		return shared.NewInvalidInput("Visit date must be in the future")
	}

	slots, err := appproperty.AvailableSlots(ctx, repos.Properties(), repos.Bookings(), p, date)
	if err != nil {
		return err
	}
	if !property.ContainsSlot(slots, visitTime) {
		return shared.NewInvalidInput("Selected time slot is not available")
	}
	return nil
}

// GetByID returns a booking visible to the caller
func (s *BookingService) GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*BookingResponse, error) {
	b, p, err := s.load(ctx, s.bookingRepo, s.propertyRepo, id)
	if err != nil {
		return nil, err
	}
	if !b.CanAccess(actor, p.OwnerID) {
		return nil, shared.NewForbidden("You are not allowed to view this booking")
	}
	resp := ToBookingResponse(b, p)
	return &resp, nil
}

// Update applies a partial update under the per-role field allow-list.
// Moving the booking re-runs the slot checks, ignoring the booking itself.
func (s *BookingService) Update(ctx context.Context, actor shared.Actor, id uuid.UUID, req UpdateBookingRequest) (*BookingResponse, error) {
	patch, err := req.ToPatch()
	if err != nil {
		return nil, err
	}

	var (
		updated *booking.Booking
		prop    *property.Property
	)
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		b, p, err := s.load(ctx, repos.Bookings(), repos.Properties(), id)
		if err != nil {
			return err
		}
		role, err := b.Authorize(actor, p.OwnerID, patch)
		if err != nil {
			return err
		}

		if date, visitTime, moved := b.Reschedules(patch); moved {
			if !b.Status.IsActive() {
				return shared.NewInvalidState("Cannot reschedule booking in " + b.Status.String() + " status")
			}
			if err := s.checkSlot(ctx, repos, p, date, visitTime, &b.ID); err != nil {
				return err
			}
		}

		if err := b.Apply(actor, role, patch); err != nil {
			return err
		}
		if err := repos.Bookings().SaveWithLock(ctx, b); err != nil {
			return err
		}
		updated, prop = b, p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, updated)
	resp := ToBookingResponse(updated, prop)
	return &resp, nil
}

// Cancel cancels a booking on behalf of the tenant, the owner or an admin
func (s *BookingService) Cancel(ctx context.Context, actor shared.Actor, id uuid.UUID, req CancelBookingRequest) (*BookingResponse, error) {
	b, p, err := s.load(ctx, s.bookingRepo, s.propertyRepo, id)
	if err != nil {
		return nil, err
	}
	if err := b.Cancel(actor, p.OwnerID, req.Reason); err != nil {
		return nil, err
	}
	if err := s.bookingRepo.SaveWithLock(ctx, b); err != nil {
		return nil, err
	}

	s.logger.Info("Booking cancelled",
		zap.String("booking_id", b.ID.String()),
		zap.String("actor_id", actor.UserID.String()),
	)
	s.publish(ctx, b)

	resp := ToBookingResponse(b, p)
	return &resp, nil
}

// Confirm accepts a pending booking. Owner only.
func (s *BookingService) Confirm(ctx context.Context, actor shared.Actor, id uuid.UUID) (*BookingResponse, error) {
	b, p, err := s.load(ctx, s.bookingRepo, s.propertyRepo, id)
	if err != nil {
		return nil, err
	}
	if err := b.Confirm(actor, p.OwnerID); err != nil {
		return nil, err
	}
	if err := s.bookingRepo.SaveWithLock(ctx, b); err != nil {
		return nil, err
	}

	s.logger.Info("Booking confirmed", zap.String("booking_id", b.ID.String()))
	s.publish(ctx, b)

	resp := ToBookingResponse(b, p)
	return &resp, nil
}

// ListMine lists the caller's own bookings
func (s *BookingService) ListMine(ctx context.Context, actor shared.Actor, filter BookingListFilter) (*BookingListResponse, error) {
	bookings, total, err := s.bookingRepo.FindByTenant(ctx, actor.UserID, toFilter(filter))
	if err != nil {
		return nil, err
	}
	return s.toListResponse(ctx, bookings, total), nil
}

// ListForProperty lists the bookings of a property. Owner or admin only.
func (s *BookingService) ListForProperty(ctx context.Context, actor shared.Actor, propertyID uuid.UUID, filter BookingListFilter) (*BookingListResponse, error) {
	p, err := s.propertyRepo.FindByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if !p.OwnedBy(actor.UserID) && !actor.IsAdmin() {
		return nil, shared.NewForbidden("Only the property owner can list its bookings")
	}

	bookings, total, err := s.bookingRepo.FindByProperty(ctx, propertyID, toFilter(filter))
	if err != nil {
		return nil, err
	}
	items := make([]BookingResponse, len(bookings))
	for i := range bookings {
		items[i] = ToBookingResponse(&bookings[i], p)
	}
	return &BookingListResponse{Items: items, Total: total}, nil
}

// ExportForProperty returns every booking of a property, page by page,
// for the spreadsheet export.
func (s *BookingService) ExportForProperty(ctx context.Context, actor shared.Actor, propertyID uuid.UUID) (*appproperty.PropertyResponse, []BookingResponse, error) {
	first, err := s.ListForProperty(ctx, actor, propertyID, BookingListFilter{Page: 1, PageSize: 100})
	if err != nil {
		return nil, nil, err
	}
	items := first.Items
	for page := 2; int64(len(items)) < first.Total; page++ {
		next, err := s.ListForProperty(ctx, actor, propertyID, BookingListFilter{Page: page, PageSize: 100})
		if err != nil {
			return nil, nil, err
		}
		if len(next.Items) == 0 {
			break
		}
		items = append(items, next.Items...)
	}

	p, err := s.propertyRepo.FindByID(ctx, propertyID)
	if err != nil {
		return nil, nil, err
	}
	resp := appproperty.ToPropertyResponse(p)
	return &resp, items, nil
}

// CompleteElapsed marks active bookings whose visit ended more than grace ago
// as COMPLETED. It returns how many bookings were completed.
func (s *BookingService) CompleteElapsed(ctx context.Context, grace time.Duration, batchSize int) (int, error) {
	cutoff := s.now().Add(-grace)
	due, err := s.bookingRepo.FindActiveOnOrBefore(ctx, property.NormalizeDate(cutoff.In(s.location)), batchSize)
	if err != nil {
		return 0, err
	}

	completed := 0
	for i := range due {
		b := &due[i]
		if !b.VisitEnd(s.location).Before(cutoff) {
			continue
		}
		if err := b.Complete(); err != nil {
			s.logger.Warn("Skipping booking completion", zap.String("booking_id", b.ID.String()), zap.Error(err))
			continue
		}
		if err := s.bookingRepo.SaveWithLock(ctx, b); err != nil {
			s.logger.Error("Failed to complete booking", zap.String("booking_id", b.ID.String()), zap.Error(err))
			continue
		}
		s.publish(ctx, b)
		completed++
	}
	return completed, nil
}

func (s *BookingService) load(ctx context.Context, bookings booking.BookingRepository, properties property.PropertyRepository, id uuid.UUID) (*booking.Booking, *property.Property, error) {
	b, err := bookings.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	p, err := properties.FindByID(ctx, b.PropertyID)
	if err != nil {
		return nil, nil, err
	}
	return b, p, nil
}

func (s *BookingService) toListResponse(ctx context.Context, bookings []booking.Booking, total int64) *BookingListResponse {
	props := make(map[uuid.UUID]*property.Property)
	items := make([]BookingResponse, len(bookings))
	for i := range bookings {
		b := &bookings[i]
		p, ok := props[b.PropertyID]
		if !ok {
			found, err := s.propertyRepo.FindByID(ctx, b.PropertyID)
			if err != nil {
				s.logger.Warn("Booking property lookup failed", zap.String("property_id", b.PropertyID.String()), zap.Error(err))
			}
			p = found
			props[b.PropertyID] = p
		}
		items[i] = ToBookingResponse(b, p)
	}
	return &BookingListResponse{Items: items, Total: total}
}

func (s *BookingService) publish(ctx context.Context, b *booking.Booking) {
	events := b.GetDomainEvents()
	b.ClearDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish booking events", zap.String("booking_id", b.ID.String()), zap.Error(err))
	}
}

func toFilter(f BookingListFilter) shared.Filter {
	return shared.Filter{
		Page:     f.Page,
		PageSize: f.PageSize,
		OrderBy:  "visit_date",
		OrderDir: "desc",
	}.Normalize()
}
