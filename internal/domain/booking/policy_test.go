package booking

import (
	"testing"
	"time"

	"github.com/rentals/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanWrite(t *testing.T) {
	tests := []struct {
		role  shared.Role
		field Field
		want  bool
	}{
		{shared.RoleTenant, FieldVisitDate, true},
		{shared.RoleTenant, FieldVisitTime, true},
		{shared.RoleTenant, FieldTenantNotes, true},
		{shared.RoleTenant, FieldOwnerNotes, false},
		{shared.RoleTenant, FieldStatus, false},
		{shared.RoleTenant, FieldDuration, false},
		{shared.RoleOwner, FieldOwnerNotes, true},
		{shared.RoleOwner, FieldStatus, true},
		{shared.RoleOwner, FieldDuration, false},
		{shared.RoleOwner, FieldCancellationReason, false},
		{shared.RoleAdmin, FieldDuration, true},
		{shared.RoleAdmin, FieldCancellationReason, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.field), func(t *testing.T) {
			assert.Equal(t, tt.want, CanWrite(tt.role, tt.field))
		})
	}
}

func TestBooking_Authorize(t *testing.T) {
	p := newParties()
	b := createTestBooking(t, p)
	notes := "bring keys"

	role, err := b.Authorize(p.owner, p.owner.UserID, Patch{OwnerNotes: &notes})
	require.NoError(t, err)
	assert.Equal(t, shared.RoleOwner, role)

	_, err = b.Authorize(p.tenant, p.owner.UserID, Patch{OwnerNotes: &notes})
	assert.ErrorIs(t, err, shared.ErrForbidden)
	assert.Contains(t, err.Error(), "ownerNotes")

	_, err = b.Authorize(p.other, p.owner.UserID, Patch{TenantNotes: &notes})
	assert.ErrorIs(t, err, shared.ErrForbidden)

	role, err = b.Authorize(p.admin, p.owner.UserID, Patch{OwnerNotes: &notes})
	require.NoError(t, err)
	assert.Equal(t, shared.RoleAdmin, role)
}

func TestBooking_ApplyStatusPatch(t *testing.T) {
	p := newParties()

	t.Run("owner confirms through patch", func(t *testing.T) {
		b := createTestBooking(t, p)
		status := BookingStatusConfirmed
		require.NoError(t, b.Apply(p.owner, shared.RoleOwner, Patch{Status: &status}))
		assert.Equal(t, BookingStatusConfirmed, b.Status)
		assert.NotNil(t, b.ConfirmedAt)
	})

	t.Run("owner cancels through patch", func(t *testing.T) {
		b := createTestBooking(t, p)
		status := BookingStatusCancelled
		require.NoError(t, b.Apply(p.owner, shared.RoleOwner, Patch{Status: &status}))
		assert.NotNil(t, b.CancelledAt)
	})

	t.Run("only admin completes through patch", func(t *testing.T) {
		b := createTestBooking(t, p)
		status := BookingStatusCompleted
		assert.ErrorIs(t, b.Apply(p.owner, shared.RoleOwner, Patch{Status: &status}), shared.ErrForbidden)
		require.NoError(t, b.Apply(p.admin, shared.RoleAdmin, Patch{Status: &status}))
		assert.Equal(t, BookingStatusCompleted, b.Status)
	})

	t.Run("back to pending is rejected", func(t *testing.T) {
		b := createTestBooking(t, p)
		require.NoError(t, b.Confirm(p.owner, p.owner.UserID))
		status := BookingStatusPending
		assert.ErrorIs(t, b.Apply(p.admin, shared.RoleAdmin, Patch{Status: &status}), shared.ErrInvalidState)
	})
}

func TestBooking_Reschedule(t *testing.T) {
	p := newParties()
	b := createTestBooking(t, p)

	newDate := time.Date(2030, 1, 8, 12, 0, 0, 0, time.UTC)
	newTime := "11:30"
	patch := Patch{VisitDate: &newDate, VisitTime: &newTime}

	date, visitTime, moved := b.Reschedules(patch)
	assert.True(t, moved)
	assert.Equal(t, time.Date(2030, 1, 8, 0, 0, 0, 0, time.UTC), date)
	assert.Equal(t, "11:30", visitTime)

	require.NoError(t, b.Apply(p.tenant, shared.RoleTenant, patch))
	assert.Equal(t, date, b.VisitDate)
	assert.Equal(t, "11:30", b.VisitTime)

	same := "11:30"
	_, _, moved = b.Reschedules(Patch{VisitTime: &same})
	assert.False(t, moved)

	require.NoError(t, b.Cancel(p.tenant, p.owner.UserID, nil))
	other := "14:00"
	assert.ErrorIs(t, b.Apply(p.tenant, shared.RoleTenant, Patch{VisitTime: &other}), shared.ErrInvalidState)
}
