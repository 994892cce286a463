package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rentals/backend/internal/domain/document"
	"github.com/rentals/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDocument(t *testing.T, contractID uuid.UUID, category, fileName string) *document.ContractDocument {
	t.Helper()
	key := "contracts/" + contractID.String() + "/" + fileName
	d, err := document.NewContractDocument(contractID, uuid.New(), document.FileInfo{
		Category:   category,
		FileName:   fileName,
		FileURL:    "https://files.example.com/" + key,
		FileSize:   2048,
		MimeType:   "application/pdf",
		StorageKey: &key,
	})
	require.NoError(t, err)
	return d
}

func TestGormDocumentRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	repo := NewGormDocumentRepository(newTestDB(t))
	contractID := uuid.New()

	first := newTestDocument(t, contractID, document.CategoryIDCard, "id-front.pdf")
	require.NoError(t, repo.Upsert(ctx, first))
	income := newTestDocument(t, contractID, document.CategoryProofOfIncome, "payslip.pdf")
	require.NoError(t, repo.Upsert(ctx, income))

	t.Run("a racing upload for the same category keeps one row", func(t *testing.T) {
		racer := newTestDocument(t, contractID, document.CategoryIDCard, "id-both-sides.pdf")
		require.NotEqual(t, first.ID, racer.ID)

		require.NoError(t, repo.Upsert(ctx, racer))
		assert.Equal(t, first.ID, racer.ID)

		docs, err := repo.FindByContract(ctx, contractID)
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, document.CategoryIDCard, docs[0].Category)
		assert.Equal(t, "id-both-sides.pdf", docs[0].FileName)
		assert.Equal(t, document.CategoryProofOfIncome, docs[1].Category)
	})

	t.Run("find by category", func(t *testing.T) {
		found, err := repo.FindByCategory(ctx, contractID, document.CategoryProofOfIncome)
		require.NoError(t, err)
		assert.Equal(t, income.ID, found.ID)

		_, err = repo.FindByCategory(ctx, contractID, "GUARANTOR")
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}

func TestGormDocumentRepository_ReviewAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewGormDocumentRepository(newTestDB(t))
	d := newTestDocument(t, uuid.New(), document.CategoryIDCard, "id.pdf")
	require.NoError(t, repo.Upsert(ctx, d))

	reason := "Expired card"
	require.NoError(t, d.Review(uuid.New(), document.DocumentStatusRejected, &reason))
	require.NoError(t, repo.Save(ctx, d))

	found, err := repo.FindByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, document.DocumentStatusRejected, found.Status)
	require.NotNil(t, found.RejectionReason)
	assert.Equal(t, "Expired card", *found.RejectionReason)

	require.NoError(t, found.Review(uuid.New(), document.DocumentStatusValidated, nil))
	require.NoError(t, repo.Save(ctx, found))
	again, err := repo.FindByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, document.DocumentStatusValidated, again.Status)
	assert.Nil(t, again.RejectionReason)

	require.NoError(t, repo.Delete(ctx, d.ID))
	assert.True(t, errors.Is(repo.Delete(ctx, d.ID), shared.ErrNotFound))
	assert.True(t, errors.Is(repo.Save(ctx, d), shared.ErrNotFound))
}
