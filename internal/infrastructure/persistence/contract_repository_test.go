package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rentals/backend/internal/domain/contract"
	"github.com/rentals/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContract(t *testing.T, propertyID, ownerID, tenantID uuid.UUID, start time.Time) *contract.Contract {
	t.Helper()
	terms := "Paid on the 5th"
	c, err := contract.NewContract(propertyID, ownerID, tenantID, contract.LeaseTerms{
		StartDate:     start,
		EndDate:       start.AddDate(1, 0, 0),
		MonthlyRent:   decimal.NewFromInt(1200),
		Charges:       decimal.RequireFromString("85.50"),
		Deposit:       decimal.NewFromInt(2400),
		Terms:         &terms,
		CustomClauses: []string{"No smoking", "Cats allowed"},
	})
	require.NoError(t, err)
	return c
}

func TestGormContractRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewGormContractRepository(newTestDB(t))
	start := time.Date(2031, 4, 1, 0, 0, 0, 0, time.UTC)
	c := newTestContract(t, uuid.New(), uuid.New(), uuid.New(), start)
	require.NoError(t, repo.Create(ctx, c))

	found, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, contract.ContractStatusDraft, found.Status)
	assert.True(t, found.MonthlyRent.Equal(decimal.NewFromInt(1200)))
	assert.True(t, found.Charges.Equal(decimal.RequireFromString("85.5")))
	assert.Equal(t, []string{"No smoking", "Cats allowed"}, found.CustomClauses)
	assert.Equal(t, "2031-04-01", found.StartDate.Format("2006-01-02"))
	require.NotNil(t, found.Terms)
	assert.Equal(t, "Paid on the 5th", *found.Terms)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestGormContractRepository_FindAll(t *testing.T) {
	ctx := context.Background()
	repo := NewGormContractRepository(newTestDB(t))
	start := time.Date(2031, 4, 1, 0, 0, 0, 0, time.UTC)

	user := uuid.New()
	propertyID := uuid.New()
	asOwner := newTestContract(t, propertyID, user, uuid.New(), start)
	asTenant := newTestContract(t, uuid.New(), uuid.New(), user, start)
	unrelated := newTestContract(t, propertyID, uuid.New(), uuid.New(), start)
	for _, c := range []*contract.Contract{asOwner, asTenant, unrelated} {
		require.NoError(t, repo.Create(ctx, c))
	}
	require.NoError(t, asTenant.Send(shared.NewActor(asTenant.OwnerID, shared.RoleOwner)))
	require.NoError(t, repo.SaveWithLock(ctx, asTenant))

	page := shared.Filter{Page: 1, PageSize: 20}

	t.Run("party scope", func(t *testing.T) {
		items, total, err := repo.FindAll(ctx, contract.ContractFilter{Filter: page, PartyID: &user})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, items, 2)
	})

	t.Run("property and status filters", func(t *testing.T) {
		items, total, err := repo.FindAll(ctx, contract.ContractFilter{Filter: page, PropertyID: &propertyID})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, items, 2)

		sent := contract.ContractStatusSent
		items, total, err = repo.FindAll(ctx, contract.ContractFilter{Filter: page, PartyID: &user, Status: &sent})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, items, 1)
		assert.Equal(t, asTenant.ID, items[0].ID)
	})
}

func TestGormContractRepository_SaveWithLock(t *testing.T) {
	ctx := context.Background()
	repo := NewGormContractRepository(newTestDB(t))
	c := newTestContract(t, uuid.New(), uuid.New(), uuid.New(), time.Date(2031, 4, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, c))

	owner := shared.NewActor(c.OwnerID, shared.RoleOwner)
	tenant := shared.NewActor(c.TenantID, shared.RoleTenant)
	require.NoError(t, c.Sign(owner, "Owner"))
	require.NoError(t, c.Sign(tenant, "Tenant"))
	require.NoError(t, repo.SaveWithLock(ctx, c))

	stored, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, contract.ContractStatusSigned, stored.Status)
	assert.True(t, stored.IsFullySigned())
	assert.Equal(t, 2, stored.Version)

	stale := *c
	stale.Version = 1
	err = repo.SaveWithLock(ctx, &stale)
	assert.True(t, errors.Is(err, shared.ErrConflict))
}

func TestGormContractRepository_DeleteAndExpiry(t *testing.T) {
	ctx := context.Background()
	repo := NewGormContractRepository(newTestDB(t))

	draft := newTestContract(t, uuid.New(), uuid.New(), uuid.New(), time.Date(2031, 4, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, draft))
	require.NoError(t, repo.Delete(ctx, draft.ID))
	assert.True(t, errors.Is(repo.Delete(ctx, draft.ID), shared.ErrNotFound))

	// end dates: 2030-01-01 and 2030-06-01
	ended := newTestContract(t, uuid.New(), uuid.New(), uuid.New(), time.Date(2029, 1, 1, 0, 0, 0, 0, time.UTC))
	ended.Status = contract.ContractStatusActive
	endsToday := newTestContract(t, uuid.New(), uuid.New(), uuid.New(), time.Date(2029, 6, 1, 0, 0, 0, 0, time.UTC))
	endsToday.Status = contract.ContractStatusActive
	signedOld := newTestContract(t, uuid.New(), uuid.New(), uuid.New(), time.Date(2029, 1, 1, 0, 0, 0, 0, time.UTC))
	signedOld.Status = contract.ContractStatusSigned
	for _, c := range []*contract.Contract{ended, endsToday, signedOld} {
		require.NoError(t, repo.Create(ctx, c))
	}

	due, err := repo.FindActiveEndingBefore(ctx, time.Date(2030, 6, 1, 9, 0, 0, 0, time.UTC), 10)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, ended.ID, due[0].ID)
}
