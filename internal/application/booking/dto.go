package booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentals/backend/internal/domain/booking"
	"github.com/rentals/backend/internal/domain/property"
)

// CreateBookingRequest represents a tenant's request to visit a property
type CreateBookingRequest struct {
	PropertyID  uuid.UUID `json:"propertyId" binding:"required"`
	VisitDate   string    `json:"visitDate" binding:"required,isodate"`
	VisitTime   string    `json:"visitTime" binding:"required,hhmm"`
	Duration    *int      `json:"duration" binding:"omitempty,min=5,max=480"`
	TenantNotes *string   `json:"tenantNotes" binding:"omitempty,max=2000"`
}

// UpdateBookingRequest represents a partial booking update. Which fields a
// caller may send depends on their relation to the booking.
type UpdateBookingRequest struct {
	VisitDate          *string `json:"visitDate" binding:"omitempty,isodate"`
	VisitTime          *string `json:"visitTime" binding:"omitempty,hhmm"`
	Duration           *int    `json:"duration" binding:"omitempty,min=5,max=480"`
	TenantNotes        *string `json:"tenantNotes" binding:"omitempty,max=2000"`
	OwnerNotes         *string `json:"ownerNotes" binding:"omitempty,max=2000"`
	Status             *string `json:"status" binding:"omitempty,oneof=PENDING CONFIRMED CANCELLED COMPLETED"`
	CancellationReason *string `json:"cancellationReason" binding:"omitempty,max=1000"`
}

// ToPatch converts the request into a domain patch
func (r UpdateBookingRequest) ToPatch() (booking.Patch, error) {
	patch := booking.Patch{
		VisitTime:          r.VisitTime,
		Duration:           r.Duration,
		TenantNotes:        r.TenantNotes,
		OwnerNotes:         r.OwnerNotes,
		CancellationReason: r.CancellationReason,
	}
	if r.VisitDate != nil {
		date, err := property.ParseDate(*r.VisitDate)
		if err != nil {
			return booking.Patch{}, err
		}
		patch.VisitDate = &date
	}
	if r.Status != nil {
		status := booking.BookingStatus(*r.Status)
		patch.Status = &status
	}
	return patch, nil
}

// CancelBookingRequest carries an optional cancellation reason
type CancelBookingRequest struct {
	Reason *string `json:"reason" binding:"omitempty,max=1000"`
}

// BookingListFilter represents pagination for booking listings
type BookingListFilter struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// BookingPropertyInfo is the property summary attached to a booking
type BookingPropertyInfo struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Address string    `json:"address"`
	OwnerID uuid.UUID `json:"ownerId"`
}

// BookingResponse represents a booking in API responses
type BookingResponse struct {
	ID                 uuid.UUID            `json:"id"`
	PropertyID         uuid.UUID            `json:"propertyId"`
	TenantID           uuid.UUID            `json:"tenantId"`
	VisitDate          string               `json:"visitDate"`
	VisitTime          string               `json:"visitTime"`
	Duration           int                  `json:"duration"`
	Status             string               `json:"status"`
	TenantNotes        *string              `json:"tenantNotes,omitempty"`
	OwnerNotes         *string              `json:"ownerNotes,omitempty"`
	CancellationReason *string              `json:"cancellationReason,omitempty"`
	ConfirmedAt        *time.Time           `json:"confirmedAt,omitempty"`
	CancelledAt        *time.Time           `json:"cancelledAt,omitempty"`
	CompletedAt        *time.Time           `json:"completedAt,omitempty"`
	CreatedAt          time.Time            `json:"createdAt"`
	UpdatedAt          time.Time            `json:"updatedAt"`
	Property           *BookingPropertyInfo `json:"property,omitempty"`
}

// BookingListResponse is a page of bookings
type BookingListResponse struct {
	Items []BookingResponse `json:"items"`
	Total int64             `json:"total"`
}

// ToBookingResponse converts a domain booking to its response. p may be nil.
func ToBookingResponse(b *booking.Booking, p *property.Property) BookingResponse {
	resp := BookingResponse{
		ID:                 b.ID,
		PropertyID:         b.PropertyID,
		TenantID:           b.TenantID,
		VisitDate:          b.VisitDate.Format(property.DateLayout),
		VisitTime:          b.VisitTime,
		Duration:           b.Duration,
		Status:             string(b.Status),
		TenantNotes:        b.TenantNotes,
		OwnerNotes:         b.OwnerNotes,
		CancellationReason: b.CancellationReason,
		ConfirmedAt:        b.ConfirmedAt,
		CancelledAt:        b.CancelledAt,
		CompletedAt:        b.CompletedAt,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
	if p != nil {
		resp.Property = &BookingPropertyInfo{
			ID:      p.ID,
			Title:   p.Title,
			Address: p.Address,
			OwnerID: p.OwnerID,
		}
	}
	return resp
}
