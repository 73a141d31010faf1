package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appordering "github.com/toystore/backend/internal/application/ordering"
	"github.com/toystore/backend/internal/domain/ordering"
)

func TestGormCheckoutScope_Execute(t *testing.T) {
	t.Run("commits all repository writes on success", func(t *testing.T) {
		db := newTestDB(t)
		scope := NewGormCheckoutScope(db)
		ctx := context.Background()

		userID := uuid.New()
		product := mustProduct(t, "Toy Robot", "30.00", 10)
		require.NoError(t, NewGormProductRepository(db).Save(ctx, product))
		addCartItem(t, db, userID, product.ID, 2)

		var orderID uuid.UUID
		err := scope.Execute(ctx, func(repos appordering.CheckoutRepositories) error {
			items, err := repos.CartRepo().FindByUser(ctx, userID)
			if err != nil {
				return err
			}
			require.Len(t, items, 1)

			order := ordering.NewOrder(userID, "12 Toy Lane", "")
			if err := order.AddItem(product.ID, items[0].Quantity, product.GetPriceMoney()); err != nil {
				return err
			}
			if err := order.Place(); err != nil {
				return err
			}
			if err := repos.OrderRepo().Save(ctx, order); err != nil {
				return err
			}
			orderID = order.ID

			if err := product.DecrementStock(items[0].Quantity); err != nil {
				return err
			}
			if err := repos.ProductRepo().Save(ctx, product); err != nil {
				return err
			}
			return repos.CartRepo().DeleteByUser(ctx, userID)
		})
		require.NoError(t, err)

		order, err := NewGormOrderRepository(db).FindByID(ctx, orderID)
		require.NoError(t, err)
		assert.Equal(t, ordering.OrderStatusPending, order.Status)

		updated, err := NewGormProductRepository(db).FindByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 8, updated.StockQuantity)

		items, err := NewGormCartItemRepository(db).FindByUser(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("rolls back all writes when the function fails", func(t *testing.T) {
		db := newTestDB(t)
		scope := NewGormCheckoutScope(db)
		ctx := context.Background()

		userID := uuid.New()
		product := mustProduct(t, "Toy Robot", "30.00", 10)
		require.NoError(t, NewGormProductRepository(db).Save(ctx, product))
		addCartItem(t, db, userID, product.ID, 2)

		boom := errors.New("payment declined")
		err := scope.Execute(ctx, func(repos appordering.CheckoutRepositories) error {
			order := ordering.NewOrder(userID, "12 Toy Lane", "")
			if err := order.AddItem(product.ID, 2, product.GetPriceMoney()); err != nil {
				return err
			}
			if err := order.Place(); err != nil {
				return err
			}
			if err := repos.OrderRepo().Save(ctx, order); err != nil {
				return err
			}

			if err := product.DecrementStock(2); err != nil {
				return err
			}
			if err := repos.ProductRepo().Save(ctx, product); err != nil {
				return err
			}
			if err := repos.CartRepo().DeleteByUser(ctx, userID); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		untouched, err := NewGormProductRepository(db).FindByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 10, untouched.StockQuantity)

		items, err := NewGormCartItemRepository(db).FindByUser(ctx, userID)
		require.NoError(t, err)
		assert.Len(t, items, 1)

		var orderCount int64
		require.NoError(t, db.Model(&ordering.Order{}).Count(&orderCount).Error)
		assert.Equal(t, int64(0), orderCount)
	})
}
