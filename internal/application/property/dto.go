package property

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentals/backend/internal/domain/property"
)

// CreatePropertyRequest represents a request to list a new property
type CreatePropertyRequest struct {
	Title         string `json:"title" binding:"required,min=1,max=200"`
	Address       string `json:"address" binding:"max=500"`
	VisitDuration int    `json:"visitDuration" binding:"omitempty,min=5,max=480"`
}

// UpdatePropertyRequest represents a partial update of a property
type UpdatePropertyRequest struct {
	Title         *string `json:"title" binding:"omitempty,min=1,max=200"`
	Address       *string `json:"address" binding:"omitempty,max=500"`
	VisitDuration *int    `json:"visitDuration" binding:"omitempty,min=5,max=480"`
	Status        *string `json:"status" binding:"omitempty,oneof=AVAILABLE RENTED UNAVAILABLE"`
}

// PropertyResponse represents a property in API responses
type PropertyResponse struct {
	ID            uuid.UUID `json:"id"`
	OwnerID       uuid.UUID `json:"ownerId"`
	Title         string    `json:"title"`
	Address       string    `json:"address"`
	Status        string    `json:"status"`
	VisitDuration int       `json:"visitDuration"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ToPropertyResponse converts a domain property to its response
func ToPropertyResponse(p *property.Property) PropertyResponse {
	return PropertyResponse{
		ID:            p.ID,
		OwnerID:       p.OwnerID,
		Title:         p.Title,
		Address:       p.Address,
		Status:        string(p.Status),
		VisitDuration: p.EffectiveVisitDuration(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// AvailabilitySlotInput is one weekly window in a schedule replacement
type AvailabilitySlotInput struct {
	DayOfWeek int    `json:"dayOfWeek" binding:"min=0,max=6"`
	StartTime string `json:"startTime" binding:"required,hhmm"`
	EndTime   string `json:"endTime" binding:"required,hhmm"`
}

// ReplaceAvailabilityRequest replaces every weekly window of a property
type ReplaceAvailabilityRequest struct {
	Slots []AvailabilitySlotInput `json:"slots" binding:"dive"`
}

// CreateOverrideRequest adds a date-specific exception
type CreateOverrideRequest struct {
	Date      string  `json:"date" binding:"required,isodate"`
	Type      string  `json:"type" binding:"required,oneof=BLOCKED EXTRA"`
	StartTime *string `json:"startTime" binding:"omitempty,hhmm"`
	EndTime   *string `json:"endTime" binding:"omitempty,hhmm"`
}

// AvailabilitySlotResponse represents a weekly window
type AvailabilitySlotResponse struct {
	ID        uuid.UUID `json:"id"`
	DayOfWeek int       `json:"dayOfWeek"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
}

// DateOverrideResponse represents a date-specific exception
type DateOverrideResponse struct {
	ID        uuid.UUID `json:"id"`
	Date      string    `json:"date"`
	Type      string    `json:"type"`
	StartTime *string   `json:"startTime,omitempty"`
	EndTime   *string   `json:"endTime,omitempty"`
}

// AvailabilityResponse is the full availability configuration of a property
type AvailabilityResponse struct {
	PropertyID    uuid.UUID                  `json:"propertyId"`
	VisitDuration int                        `json:"visitDuration"`
	Slots         []AvailabilitySlotResponse `json:"slots"`
	Overrides     []DateOverrideResponse     `json:"overrides"`
}

// AvailableSlotsResponse lists the bookable start times on a date
type AvailableSlotsResponse struct {
	PropertyID     uuid.UUID `json:"propertyId"`
	Date           string    `json:"date"`
	Duration       int       `json:"duration"`
	AvailableSlots []string  `json:"availableSlots"`
}

// ToDateOverrideResponse converts a domain override to its response
func ToDateOverrideResponse(o *property.DateOverride) DateOverrideResponse {
	return DateOverrideResponse{
		ID:        o.ID,
		Date:      o.Date.Format(property.DateLayout),
		Type:      string(o.Type),
		StartTime: o.StartTime,
		EndTime:   o.EndTime,
	}
}

// ToAvailabilityResponse converts a schedule to its response
func ToAvailabilityResponse(p *property.Property, s *property.Schedule) AvailabilityResponse {
	resp := AvailabilityResponse{
		PropertyID:    p.ID,
		VisitDuration: p.EffectiveVisitDuration(),
		Slots:         make([]AvailabilitySlotResponse, 0, len(s.Slots)),
		Overrides:     make([]DateOverrideResponse, 0, len(s.Overrides)),
	}
	for _, slot := range s.Slots {
		resp.Slots = append(resp.Slots, AvailabilitySlotResponse{
			ID:        slot.ID,
			DayOfWeek: int(slot.DayOfWeek),
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
		})
	}
	for i := range s.Overrides {
		resp.Overrides = append(resp.Overrides, ToDateOverrideResponse(&s.Overrides[i]))
	}
	return resp
}
