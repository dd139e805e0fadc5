package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrilink/agrilink/internal/model"
)

func newTestFarmer(email string) *model.Farmer {
	return &model.Farmer{
		FarmerName:   "Ada Okafor",
		CropType:     "maize",
		FarmSize:     "12 acres",
		FarmLocation: "Valley Town",
		PhoneNumber:  "1234567890",
		Email:        email,
	}
}

func TestFarmerRepository_Create(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewFarmerRepository(db)
	ctx := context.Background()

	t.Run("create farmer successfully", func(t *testing.T) {
		created, err := repo.Create(ctx, newTestFarmer("ada@example.com"))
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		_, err := repo.Create(ctx, newTestFarmer("dup@example.com"))
		require.NoError(t, err)

		_, err = repo.Create(ctx, newTestFarmer("dup@example.com"))
		assert.ErrorIs(t, err, ErrDuplicateEmail)
	})
}

func TestFarmerRepository_GetByEmail(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewFarmerRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, newTestFarmer("lookup@example.com"))
	require.NoError(t, err)

	got, err := repo.GetByEmail(ctx, "lookup@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = repo.GetByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFarmerRepository_Delete(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewFarmerRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, newTestFarmer("gone@example.com"))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), ErrNotFound)
}
