package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rentals/backend/internal/domain/property"
	"github.com/rentals/backend/internal/domain/shared"
)

// BookingStatus represents the status of a visit booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
)

// ActiveStatuses are the statuses that hold a visit slot
var ActiveStatuses = []BookingStatus{BookingStatusPending, BookingStatusConfirmed}

// IsValid checks if the status is a valid BookingStatus
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

// String returns the string representation of BookingStatus
func (s BookingStatus) String() string {
	return string(s)
}

// IsActive reports whether a booking in this status holds its slot
func (s BookingStatus) IsActive() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

// IsTerminal reports whether no further transition is possible
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCancelled || s == BookingStatusCompleted
}

// CanTransitionTo checks if the status can transition to the target status
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	switch s {
	case BookingStatusPending:
		return target == BookingStatusConfirmed || target == BookingStatusCancelled || target == BookingStatusCompleted
	case BookingStatusConfirmed:
		return target == BookingStatusCancelled || target == BookingStatusCompleted
	case BookingStatusCancelled, BookingStatusCompleted:
		return false // Terminal states
	}
	return false
}

// Booking is a tenant's request to visit a property at a given slot
type Booking struct {
	shared.BaseAggregateRoot
	PropertyID         uuid.UUID
	TenantID           uuid.UUID
	VisitDate          time.Time // calendar day, always UTC midnight
	VisitTime          string    // "HH:MM"
	Duration           int       // minutes
	Status             BookingStatus
	TenantNotes        *string
	OwnerNotes         *string
	CancellationReason *string
	ConfirmedAt        *time.Time
	CancelledAt        *time.Time
	CompletedAt        *time.Time
}

// NewBooking creates a PENDING booking. A zero duration falls back to the
// default visit length.
func NewBooking(propertyID, tenantID uuid.UUID, visitDate time.Time, visitTime string, duration int, tenantNotes *string) (*Booking, error) {
	if propertyID == uuid.Nil {
		return nil, shared.NewInvalidInput("Property ID cannot be empty")
	}
	if tenantID == uuid.Nil {
		return nil, shared.NewInvalidInput("Tenant ID cannot be empty")
	}
	if _, err := property.ParseTimeOfDay(visitTime); err != nil {
		return nil, err
	}
	if duration == 0 {
		duration = property.DefaultVisitDuration
	}
	if duration < 0 || duration > property.MaxVisitDuration {
		return nil, shared.NewInvalidInput(fmt.Sprintf("Duration must be between 1 and %d minutes", property.MaxVisitDuration))
	}

	b := &Booking{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PropertyID:        propertyID,
		TenantID:          tenantID,
		VisitDate:         property.NormalizeDate(visitDate),
		VisitTime:         visitTime,
		Duration:          duration,
		Status:            BookingStatusPending,
		TenantNotes:       trimmed(tenantNotes),
	}
	b.AddDomainEvent(NewBookingCreatedEvent(b))
	return b, nil
}

// VisitStart returns the start of the visit in loc
func (b *Booking) VisitStart(loc *time.Location) time.Time {
	t, err := property.ParseTimeOfDay(b.VisitTime)
	if err != nil {
		return property.At(b.VisitDate, 0, loc)
	}
	return property.At(b.VisitDate, t, loc)
}

// VisitEnd returns the end of the visit in loc
func (b *Booking) VisitEnd(loc *time.Location) time.Time {
	return b.VisitStart(loc).Add(time.Duration(b.Duration) * time.Minute)
}

// RelationOf resolves how actor relates to this booking. Admins rank first,
// then the property owner, then the tenant who made the booking.
func (b *Booking) RelationOf(actor shared.Actor, ownerID uuid.UUID) (shared.Role, bool) {
	switch {
	case actor.IsAdmin():
		return shared.RoleAdmin, true
	case actor.Is(ownerID):
		return shared.RoleOwner, true
	case actor.Is(b.TenantID):
		return shared.RoleTenant, true
	}
	return "", false
}

// CanAccess reports whether actor may read or modify this booking
func (b *Booking) CanAccess(actor shared.Actor, ownerID uuid.UUID) bool {
	_, ok := b.RelationOf(actor, ownerID)
	return ok
}

// Confirm accepts a pending booking. Only the property owner may confirm.
func (b *Booking) Confirm(actor shared.Actor, ownerID uuid.UUID) error {
	if !actor.Is(ownerID) {
		return shared.NewForbidden("Only the property owner can confirm this booking")
	}
	if b.Status != BookingStatusPending {
		return shared.NewInvalidState("Only pending bookings can be confirmed")
	}
	b.markConfirmed(actor.UserID)
	return nil
}

// Cancel cancels the booking on behalf of the tenant, the owner or an admin
func (b *Booking) Cancel(actor shared.Actor, ownerID uuid.UUID, reason *string) error {
	if !b.CanAccess(actor, ownerID) {
		return shared.NewForbidden("You are not allowed to cancel this booking")
	}
	return b.cancel(actor.UserID, reason)
}

// Complete marks the visit as done. It is driven by the lifecycle sweeper,
// never by a user request.
func (b *Booking) Complete() error {
	if !b.Status.CanTransitionTo(BookingStatusCompleted) {
		return shared.NewInvalidState(fmt.Sprintf("Cannot complete booking in %s status", b.Status))
	}

	now := time.Now()
	b.Status = BookingStatusCompleted
	b.CompletedAt = &now
	b.UpdatedAt = now

	b.AddDomainEvent(NewBookingCompletedEvent(b))
	return nil
}

func (b *Booking) cancel(actorID uuid.UUID, reason *string) error {
	if b.Status == BookingStatusCompleted {
		return shared.NewInvalidState("Cannot cancel completed booking")
	}
	if !b.Status.CanTransitionTo(BookingStatusCancelled) {
		return shared.NewInvalidState(fmt.Sprintf("Cannot cancel booking in %s status", b.Status))
	}

	now := time.Now()
	b.Status = BookingStatusCancelled
	b.CancelledAt = &now
	if r := trimmed(reason); r != nil {
		b.CancellationReason = r
	}
	b.UpdatedAt = now

	b.AddDomainEvent(NewBookingCancelledEvent(b, actorID))
	return nil
}

func (b *Booking) markConfirmed(actorID uuid.UUID) {
	now := time.Now()
	b.Status = BookingStatusConfirmed
	b.ConfirmedAt = &now
	b.UpdatedAt = now

	b.AddDomainEvent(NewBookingConfirmedEvent(b, actorID))
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
