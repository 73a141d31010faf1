package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toystore/backend/internal/domain/shared"
	"github.com/toystore/backend/internal/domain/shopping"
	"gorm.io/gorm"
)

func addCartItem(t *testing.T, db *gorm.DB, userID, productID uuid.UUID, quantity int) *shopping.CartItem {
	t.Helper()

	item, err := shopping.NewCartItem(userID, productID, quantity)
	require.NoError(t, err)
	require.NoError(t, NewGormCartItemRepository(db).Save(context.Background(), item))
	return item
}

func TestGormCartItemRepository_FindByUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormCartItemRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	addCartItem(t, db, userID, uuid.New(), 2)
	addCartItem(t, db, userID, uuid.New(), 1)
	addCartItem(t, db, uuid.New(), uuid.New(), 5)

	items, err := repo.FindByUser(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = repo.FindByUser(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestGormCartItemRepository_FindByUserAndProduct(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormCartItemRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	productID := uuid.New()
	item := addCartItem(t, db, userID, productID, 3)

	found, err := repo.FindByUserAndProduct(ctx, userID, productID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, found.ID)
	assert.Equal(t, 3, found.Quantity)

	_, err = repo.FindByUserAndProduct(ctx, userID, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormCartItemRepository_FindByIDForUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormCartItemRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	item := addCartItem(t, db, userID, uuid.New(), 1)

	found, err := repo.FindByIDForUser(ctx, item.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, found.ID)

	_, err = repo.FindByIDForUser(ctx, item.ID, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormCartItemRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormCartItemRepository(db)
	ctx := context.Background()

	item := addCartItem(t, db, uuid.New(), uuid.New(), 1)

	require.NoError(t, repo.Delete(ctx, item.ID))
	assert.ErrorIs(t, repo.Delete(ctx, item.ID), shared.ErrNotFound)
}

func TestGormCartItemRepository_DeleteByUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormCartItemRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	addCartItem(t, db, userID, uuid.New(), 1)
	addCartItem(t, db, userID, uuid.New(), 2)
	other := addCartItem(t, db, uuid.New(), uuid.New(), 3)

	require.NoError(t, repo.DeleteByUser(ctx, userID))

	items, err := repo.FindByUser(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, items)

	remaining, err := repo.FindByUser(ctx, other.UserID)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}
