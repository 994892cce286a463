package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentals/backend/internal/domain/booking"
	"github.com/rentals/backend/internal/domain/property"
)

// BookingModel is the persistence model for the Booking aggregate.
//
// idx_bookings_active_slot is a partial unique index: at most one PENDING or
// CONFIRMED booking per (property, date, time).
type BookingModel struct {
	AggregateModel
	PropertyID         uuid.UUID             `gorm:"type:uuid;not null;index;uniqueIndex:idx_bookings_active_slot,priority:1,where:status <> 'CANCELLED' AND status <> 'COMPLETED'"`
	TenantID           uuid.UUID             `gorm:"type:uuid;not null;index"`
	VisitDate          time.Time             `gorm:"type:date;not null;uniqueIndex:idx_bookings_active_slot,priority:2"`
	VisitTime          string                `gorm:"type:varchar(5);not null;uniqueIndex:idx_bookings_active_slot,priority:3"`
	Duration           int                   `gorm:"not null;default:30"`
	Status             booking.BookingStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	TenantNotes        *string               `gorm:"type:text"`
	OwnerNotes         *string               `gorm:"type:text"`
	CancellationReason *string               `gorm:"type:text"`
	ConfirmedAt        *time.Time
	CancelledAt        *time.Time
	CompletedAt        *time.Time
}

// TableName returns the table name for GORM
func (BookingModel) TableName() string {
	return "bookings"
}

// ToDomain converts the persistence model to a domain Booking.
func (m *BookingModel) ToDomain() *booking.Booking {
	return &booking.Booking{
		BaseAggregateRoot:  m.ToAggregateRoot(),
		PropertyID:         m.PropertyID,
		TenantID:           m.TenantID,
		VisitDate:          property.NormalizeDate(m.VisitDate),
		VisitTime:          m.VisitTime,
		Duration:           m.Duration,
		Status:             m.Status,
		TenantNotes:        m.TenantNotes,
		OwnerNotes:         m.OwnerNotes,
		CancellationReason: m.CancellationReason,
		ConfirmedAt:        m.ConfirmedAt,
		CancelledAt:        m.CancelledAt,
		CompletedAt:        m.CompletedAt,
	}
}

// FromDomain populates the persistence model from a domain Booking.
func (m *BookingModel) FromDomain(b *booking.Booking) {
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	m.PropertyID = b.PropertyID
	m.TenantID = b.TenantID
	m.VisitDate = property.NormalizeDate(b.VisitDate)
	m.VisitTime = b.VisitTime
	m.Duration = b.Duration
	m.Status = b.Status
	m.TenantNotes = b.TenantNotes
	m.OwnerNotes = b.OwnerNotes
	m.CancellationReason = b.CancellationReason
	m.ConfirmedAt = b.ConfirmedAt
	m.CancelledAt = b.CancelledAt
	m.CompletedAt = b.CompletedAt
}

// BookingModelFromDomain creates a new persistence model from a domain Booking.
func BookingModelFromDomain(b *booking.Booking) *BookingModel {
	m := &BookingModel{}
	m.FromDomain(b)
	return m
}
