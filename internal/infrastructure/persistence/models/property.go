package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentals/backend/internal/domain/property"
)

// PropertyModel is the persistence model for the Property aggregate.
type PropertyModel struct {
	AggregateModel
	OwnerID       uuid.UUID               `gorm:"type:uuid;not null;index"`
	Title         string                  `gorm:"type:varchar(200);not null"`
	Address       string                  `gorm:"type:varchar(500);not null"`
	Status        property.PropertyStatus `gorm:"type:varchar(20);not null;default:'AVAILABLE'"`
	VisitDuration int                     `gorm:"not null;default:30"`
}

// TableName returns the table name for GORM
func (PropertyModel) TableName() string {
	return "properties"
}

// ToDomain converts the persistence model to a domain Property.
func (m *PropertyModel) ToDomain() *property.Property {
	return &property.Property{
		BaseAggregateRoot: m.ToAggregateRoot(),
		OwnerID:           m.OwnerID,
		Title:             m.Title,
		Address:           m.Address,
		Status:            m.Status,
		VisitDuration:     m.VisitDuration,
	}
}

// FromDomain populates the persistence model from a domain Property.
func (m *PropertyModel) FromDomain(p *property.Property) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.OwnerID = p.OwnerID
	m.Title = p.Title
	m.Address = p.Address
	m.Status = p.Status
	m.VisitDuration = p.VisitDuration
}

// PropertyModelFromDomain creates a new persistence model from a domain Property.
func PropertyModelFromDomain(p *property.Property) *PropertyModel {
	m := &PropertyModel{}
	m.FromDomain(p)
	return m
}

// AvailabilitySlotModel is a weekly visit window.
type AvailabilitySlotModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	PropertyID uuid.UUID `gorm:"type:uuid;not null;index:idx_availability_slots_property_day,priority:1"`
	DayOfWeek  int       `gorm:"not null;index:idx_availability_slots_property_day,priority:2"`
	StartTime  string    `gorm:"type:varchar(5);not null"`
	EndTime    string    `gorm:"type:varchar(5);not null"`
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AvailabilitySlotModel) TableName() string {
	return "visit_availability_slots"
}

// ToDomain converts the persistence model to a domain AvailabilitySlot.
func (m *AvailabilitySlotModel) ToDomain() property.AvailabilitySlot {
	return property.AvailabilitySlot{
		ID:         m.ID,
		PropertyID: m.PropertyID,
		DayOfWeek:  time.Weekday(m.DayOfWeek),
		StartTime:  m.StartTime,
		EndTime:    m.EndTime,
	}
}

// AvailabilitySlotModelFromDomain creates a persistence model from a domain slot.
func AvailabilitySlotModelFromDomain(s property.AvailabilitySlot) *AvailabilitySlotModel {
	return &AvailabilitySlotModel{
		ID:         s.ID,
		PropertyID: s.PropertyID,
		DayOfWeek:  int(s.DayOfWeek),
		StartTime:  s.StartTime,
		EndTime:    s.EndTime,
		CreatedAt:  time.Now(),
	}
}

// DateOverrideModel blocks or adds visit windows on one date.
type DateOverrideModel struct {
	ID         uuid.UUID             `gorm:"type:uuid;primary_key"`
	PropertyID uuid.UUID             `gorm:"type:uuid;not null;index:idx_date_overrides_property_date,priority:1"`
	Date       time.Time             `gorm:"type:date;not null;index:idx_date_overrides_property_date,priority:2"`
	Type       property.OverrideType `gorm:"type:varchar(10);not null"`
	StartTime  *string               `gorm:"type:varchar(5)"`
	EndTime    *string               `gorm:"type:varchar(5)"`
	CreatedAt  time.Time             `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DateOverrideModel) TableName() string {
	return "visit_date_overrides"
}

// ToDomain converts the persistence model to a domain DateOverride.
func (m *DateOverrideModel) ToDomain() property.DateOverride {
	return property.DateOverride{
		ID:         m.ID,
		PropertyID: m.PropertyID,
		Date:       property.NormalizeDate(m.Date),
		Type:       m.Type,
		StartTime:  m.StartTime,
		EndTime:    m.EndTime,
		CreatedAt:  m.CreatedAt,
	}
}

// DateOverrideModelFromDomain creates a persistence model from a domain override.
func DateOverrideModelFromDomain(o *property.DateOverride) *DateOverrideModel {
	return &DateOverrideModel{
		ID:         o.ID,
		PropertyID: o.PropertyID,
		Date:       property.NormalizeDate(o.Date),
		Type:       o.Type,
		StartTime:  o.StartTime,
		EndTime:    o.EndTime,
		CreatedAt:  o.CreatedAt,
	}
}
