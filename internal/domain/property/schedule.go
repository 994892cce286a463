package property

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentals/backend/internal/domain/shared"
)

// AvailabilitySlot is a recurring weekly visiting window
type AvailabilitySlot struct {
	ID         uuid.UUID
	PropertyID uuid.UUID
	DayOfWeek  time.Weekday
	StartTime  string
	EndTime    string
}

// NewAvailabilitySlot validates and creates a weekly window. Windows whose end
// does not follow their start are accepted and simply yield no slots.
func NewAvailabilitySlot(propertyID uuid.UUID, dayOfWeek int, startTime, endTime string) (*AvailabilitySlot, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return nil, shared.NewInvalidInput("Day of week must be between 0 (Sunday) and 6 (Saturday)")
	}
	if _, err := ParseTimeOfDay(startTime); err != nil {
		return nil, err
	}
	if _, err := ParseTimeOfDay(endTime); err != nil {
		return nil, err
	}
	return &AvailabilitySlot{
		ID:         uuid.New(),
		PropertyID: propertyID,
		DayOfWeek:  time.Weekday(dayOfWeek),
		StartTime:  startTime,
		EndTime:    endTime,
	}, nil
}

// Window returns the slot's time window
func (s AvailabilitySlot) Window() (Window, bool) {
	return newWindow(s.StartTime, s.EndTime)
}

// OverrideType distinguishes blocked days from replacement windows
type OverrideType string

const (
	OverrideTypeBlocked OverrideType = "BLOCKED"
	OverrideTypeExtra   OverrideType = "EXTRA"
)

// IsValid checks if the override type is a valid value
func (t OverrideType) IsValid() bool {
	return t == OverrideTypeBlocked || t == OverrideTypeExtra
}

// DateOverride is a date-specific exception to the weekly schedule
type DateOverride struct {
	ID         uuid.UUID
	PropertyID uuid.UUID
	Date       time.Time
	Type       OverrideType
	StartTime  *string
	EndTime    *string
	CreatedAt  time.Time
}

// NewDateOverride creates an override. EXTRA overrides need both times;
// times given to a BLOCKED override are dropped.
func NewDateOverride(propertyID uuid.UUID, date time.Time, overrideType OverrideType, startTime, endTime *string) (*DateOverride, error) {
	if !overrideType.IsValid() {
		return nil, shared.NewInvalidInput("Override type must be BLOCKED or EXTRA")
	}
	o := &DateOverride{
		ID:         uuid.New(),
		PropertyID: propertyID,
		Date:       NormalizeDate(date),
		Type:       overrideType,
		CreatedAt:  time.Now(),
	}
	if overrideType == OverrideTypeBlocked {
		return o, nil
	}
	if startTime == nil || endTime == nil {
		return nil, shared.NewInvalidInput("EXTRA overrides require startTime and endTime")
	}
	if _, err := ParseTimeOfDay(*startTime); err != nil {
		return nil, err
	}
	if _, err := ParseTimeOfDay(*endTime); err != nil {
		return nil, err
	}
	start, end := *startTime, *endTime
	o.StartTime = &start
	o.EndTime = &end
	return o, nil
}

// Window returns the override's window. BLOCKED overrides have none.
func (o DateOverride) Window() (Window, bool) {
	if o.Type != OverrideTypeExtra || o.StartTime == nil || o.EndTime == nil {
		return Window{}, false
	}
	return newWindow(*o.StartTime, *o.EndTime)
}

// Schedule is the full availability configuration of a property
type Schedule struct {
	Slots     []AvailabilitySlot
	Overrides []DateOverride
}

// IsEmpty reports whether nothing at all is configured
func (s Schedule) IsEmpty() bool {
	return len(s.Slots) == 0 && len(s.Overrides) == 0
}
