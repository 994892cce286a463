package property

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rentals/backend/internal/domain/shared"
)

// DefaultVisitDuration is the visit length used when a property does not set one
const DefaultVisitDuration = 30

// MaxVisitDuration bounds the configurable visit length (one working day)
const MaxVisitDuration = 8 * 60

// PropertyStatus represents the listing status of a property
type PropertyStatus string

const (
	PropertyStatusAvailable   PropertyStatus = "AVAILABLE"
	PropertyStatusRented      PropertyStatus = "RENTED"
	PropertyStatusUnavailable PropertyStatus = "UNAVAILABLE"
)

// IsValid checks if the status is a valid value
func (s PropertyStatus) IsValid() bool {
	switch s {
	case PropertyStatusAvailable, PropertyStatusRented, PropertyStatusUnavailable:
		return true
	}
	return false
}

// String returns the string representation of PropertyStatus
func (s PropertyStatus) String() string {
	return string(s)
}

// Property is a rental listing that tenants can book visits for
type Property struct {
	shared.BaseAggregateRoot
	OwnerID       uuid.UUID
	Title         string
	Address       string
	Status        PropertyStatus
	VisitDuration int
}

// NewProperty creates an AVAILABLE property owned by ownerID
func NewProperty(ownerID uuid.UUID, title, address string, visitDuration int) (*Property, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewInvalidInput("Owner ID cannot be empty")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewInvalidInput("Property title cannot be empty")
	}
	if visitDuration == 0 {
		visitDuration = DefaultVisitDuration
	}
	if err := validateVisitDuration(visitDuration); err != nil {
		return nil, err
	}

	return &Property{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OwnerID:           ownerID,
		Title:             title,
		Address:           strings.TrimSpace(address),
		Status:            PropertyStatusAvailable,
		VisitDuration:     visitDuration,
	}, nil
}

func validateVisitDuration(minutes int) error {
	if minutes <= 0 || minutes > MaxVisitDuration {
		return shared.NewInvalidInput(fmt.Sprintf("Visit duration must be between 1 and %d minutes", MaxVisitDuration))
	}
	return nil
}

// OwnedBy reports whether userID owns the property
func (p *Property) OwnedBy(userID uuid.UUID) bool {
	return userID != uuid.Nil && p.OwnerID == userID
}

// IsAvailable reports whether the property accepts visit bookings
func (p *Property) IsAvailable() bool {
	return p.Status == PropertyStatusAvailable
}

// EffectiveVisitDuration returns the slot length, falling back to the default
func (p *Property) EffectiveVisitDuration() int {
	if p.VisitDuration <= 0 {
		return DefaultVisitDuration
	}
	return p.VisitDuration
}

// Update changes listing details. Nil arguments are left untouched.
func (p *Property) Update(title, address *string, visitDuration *int, status *PropertyStatus) error {
	if title != nil {
		t := strings.TrimSpace(*title)
		if t == "" {
			return shared.NewInvalidInput("Property title cannot be empty")
		}
		p.Title = t
	}
	if address != nil {
		p.Address = strings.TrimSpace(*address)
	}
	if visitDuration != nil {
		if err := validateVisitDuration(*visitDuration); err != nil {
			return err
		}
		p.VisitDuration = *visitDuration
	}
	if status != nil {
		if !status.IsValid() {
			return shared.NewInvalidInput("Invalid property status: " + string(*status))
		}
		p.Status = *status
	}
	p.Touch()
	return nil
}
