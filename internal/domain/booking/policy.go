package booking

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rentals/backend/internal/domain/property"
	"github.com/rentals/backend/internal/domain/shared"
)

// Field names a writable booking attribute, using its API name
type Field string

const (
	FieldVisitDate          Field = "visitDate"
	FieldVisitTime          Field = "visitTime"
	FieldDuration           Field = "duration"
	FieldTenantNotes        Field = "tenantNotes"
	FieldOwnerNotes         Field = "ownerNotes"
	FieldStatus             Field = "status"
	FieldCancellationReason Field = "cancellationReason"
)

// AllFields lists every writable booking field
var AllFields = []Field{
	FieldVisitDate, FieldVisitTime, FieldDuration, FieldTenantNotes,
	FieldOwnerNotes, FieldStatus, FieldCancellationReason,
}

// WritableFields is the per-relation allow-list applied before an update
var WritableFields = map[shared.Role][]Field{
	shared.RoleTenant: {FieldVisitDate, FieldVisitTime, FieldTenantNotes},
	shared.RoleOwner:  {FieldVisitDate, FieldVisitTime, FieldTenantNotes, FieldOwnerNotes, FieldStatus},
	shared.RoleAdmin:  AllFields,
}

// CanWrite reports whether role may change field
func CanWrite(role shared.Role, field Field) bool {
	return slices.Contains(WritableFields[role], field)
}

// Patch is a partial update. Nil members are left untouched.
type Patch struct {
	VisitDate          *time.Time
	VisitTime          *string
	Duration           *int
	TenantNotes        *string
	OwnerNotes         *string
	Status             *BookingStatus
	CancellationReason *string
}

// Fields lists the fields present in the patch
func (p Patch) Fields() []Field {
	var fields []Field
	if p.VisitDate != nil {
		fields = append(fields, FieldVisitDate)
	}
	if p.VisitTime != nil {
		fields = append(fields, FieldVisitTime)
	}
	if p.Duration != nil {
		fields = append(fields, FieldDuration)
	}
	if p.TenantNotes != nil {
		fields = append(fields, FieldTenantNotes)
	}
	if p.OwnerNotes != nil {
		fields = append(fields, FieldOwnerNotes)
	}
	if p.Status != nil {
		fields = append(fields, FieldStatus)
	}
	if p.CancellationReason != nil {
		fields = append(fields, FieldCancellationReason)
	}
	return fields
}

// IsEmpty reports whether the patch changes nothing
func (p Patch) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// Authorize resolves the caller's relation to the booking and checks every
// field in the patch against that relation's allow-list.
func (b *Booking) Authorize(actor shared.Actor, ownerID uuid.UUID, patch Patch) (shared.Role, error) {
	role, ok := b.RelationOf(actor, ownerID)
	if !ok {
		return "", shared.NewForbidden("You are not allowed to update this booking")
	}
	for _, f := range patch.Fields() {
		if !CanWrite(role, f) {
			return "", shared.NewForbidden(fmt.Sprintf("Field %s cannot be modified by %s", f, role))
		}
	}
	return role, nil
}

// Reschedules reports whether applying patch would move the booking to a
// different slot, and returns the resulting date and time.
func (b *Booking) Reschedules(patch Patch) (time.Time, string, bool) {
	date, visitTime := b.VisitDate, b.VisitTime
	if patch.VisitDate != nil {
		date = property.NormalizeDate(*patch.VisitDate)
	}
	if patch.VisitTime != nil {
		visitTime = *patch.VisitTime
	}
	return date, visitTime, !date.Equal(b.VisitDate) || visitTime != b.VisitTime
}

// Apply writes an authorized patch. Status changes go through the state
// machine and stamp the matching timestamp.
func (b *Booking) Apply(actor shared.Actor, role shared.Role, patch Patch) error {
	date, visitTime, moved := b.Reschedules(patch)
	if moved {
		if !b.Status.IsActive() {
			return shared.NewInvalidState(fmt.Sprintf("Cannot reschedule booking in %s status", b.Status))
		}
		if _, err := property.ParseTimeOfDay(visitTime); err != nil {
			return err
		}
	}
	if patch.Duration != nil && (*patch.Duration <= 0 || *patch.Duration > property.MaxVisitDuration) {
		return shared.NewInvalidInput(fmt.Sprintf("Duration must be between 1 and %d minutes", property.MaxVisitDuration))
	}
	if patch.Status != nil && *patch.Status != b.Status {
		if err := b.transition(actor, role, *patch.Status, patch.CancellationReason); err != nil {
			return err
		}
	} else if patch.CancellationReason != nil {
		b.CancellationReason = trimmed(patch.CancellationReason)
	}

	if moved {
		b.VisitDate, b.VisitTime = date, visitTime
		b.AddDomainEvent(NewBookingRescheduledEvent(b, actor.UserID))
	}
	if patch.Duration != nil {
		b.Duration = *patch.Duration
	}
	if patch.TenantNotes != nil {
		b.TenantNotes = trimmed(patch.TenantNotes)
	}
	if patch.OwnerNotes != nil {
		b.OwnerNotes = trimmed(patch.OwnerNotes)
	}
	b.Touch()
	return nil
}

func (b *Booking) transition(actor shared.Actor, role shared.Role, target BookingStatus, reason *string) error {
	if !target.IsValid() {
		return shared.NewInvalidInput("Invalid booking status: " + string(target))
	}
	switch target {
	case BookingStatusConfirmed:
		if b.Status != BookingStatusPending {
			return shared.NewInvalidState("Only pending bookings can be confirmed")
		}
		b.markConfirmed(actor.UserID)
		return nil
	case BookingStatusCancelled:
		return b.cancel(actor.UserID, reason)
	case BookingStatusCompleted:
		if role != shared.RoleAdmin {
			return shared.NewForbidden("Only administrators can complete a booking manually")
		}
		return b.Complete()
	}
	return shared.NewInvalidState(fmt.Sprintf("Cannot move booking from %s to %s", b.Status, target))
}
