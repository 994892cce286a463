package booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentals/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeBooking = "Booking"

// Event type constants
const (
	EventTypeBookingCreated     = "booking.created"
	EventTypeBookingConfirmed   = "booking.confirmed"
	EventTypeBookingCancelled   = "booking.cancelled"
	EventTypeBookingCompleted   = "booking.completed"
	EventTypeBookingRescheduled = "booking.rescheduled"
)

// BookingSlot identifies the visit slot carried by booking events
type BookingSlot struct {
	PropertyID uuid.UUID `json:"property_id"`
	TenantID   uuid.UUID `json:"tenant_id"`
	VisitDate  string    `json:"visit_date"`
	VisitTime  string    `json:"visit_time"`
}

func slotOf(b *Booking) BookingSlot {
	return BookingSlot{
		PropertyID: b.PropertyID,
		TenantID:   b.TenantID,
		VisitDate:  b.VisitDate.Format(time.DateOnly),
		VisitTime:  b.VisitTime,
	}
}

// BookingCreatedEvent is raised when a tenant books a visit
type BookingCreatedEvent struct {
	shared.BaseDomainEvent
	BookingSlot
}

// NewBookingCreatedEvent creates a new BookingCreatedEvent
func NewBookingCreatedEvent(b *Booking) *BookingCreatedEvent {
	return &BookingCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBookingCreated, AggregateTypeBooking, b.ID, b.TenantID),
		BookingSlot:     slotOf(b),
	}
}

// BookingConfirmedEvent is raised when the owner accepts a visit
type BookingConfirmedEvent struct {
	shared.BaseDomainEvent
	BookingSlot
	ConfirmedAt time.Time `json:"confirmed_at"`
}

// NewBookingConfirmedEvent creates a new BookingConfirmedEvent
func NewBookingConfirmedEvent(b *Booking, actorID uuid.UUID) *BookingConfirmedEvent {
	e := &BookingConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBookingConfirmed, AggregateTypeBooking, b.ID, actorID),
		BookingSlot:     slotOf(b),
	}
	if b.ConfirmedAt != nil {
		e.ConfirmedAt = *b.ConfirmedAt
	}
	return e
}

// BookingCancelledEvent is raised when a visit is cancelled by any party
type BookingCancelledEvent struct {
	shared.BaseDomainEvent
	BookingSlot
	Reason string `json:"reason,omitempty"`
}

// NewBookingCancelledEvent creates a new BookingCancelledEvent
func NewBookingCancelledEvent(b *Booking, actorID uuid.UUID) *BookingCancelledEvent {
	e := &BookingCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBookingCancelled, AggregateTypeBooking, b.ID, actorID),
		BookingSlot:     slotOf(b),
	}
	if b.CancellationReason != nil {
		e.Reason = *b.CancellationReason
	}
	return e
}

// BookingCompletedEvent is raised by the lifecycle sweeper after a visit
type BookingCompletedEvent struct {
	shared.BaseDomainEvent
	BookingSlot
}

// NewBookingCompletedEvent creates a new BookingCompletedEvent
func NewBookingCompletedEvent(b *Booking) *BookingCompletedEvent {
	return &BookingCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBookingCompleted, AggregateTypeBooking, b.ID, uuid.Nil),
		BookingSlot:     slotOf(b),
	}
}

// BookingRescheduledEvent is raised when a booking moves to another slot
type BookingRescheduledEvent struct {
	shared.BaseDomainEvent
	BookingSlot
}

// NewBookingRescheduledEvent creates a new BookingRescheduledEvent
func NewBookingRescheduledEvent(b *Booking, actorID uuid.UUID) *BookingRescheduledEvent {
	return &BookingRescheduledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBookingRescheduled, AggregateTypeBooking, b.ID, actorID),
		BookingSlot:     slotOf(b),
	}
}
