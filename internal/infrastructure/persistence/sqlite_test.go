package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/toystore/backend/internal/domain/catalog"
	"github.com/toystore/backend/internal/domain/identity"
	"github.com/toystore/backend/internal/domain/ordering"
	"github.com/toystore/backend/internal/domain/shared/valueobject"
	"github.com/toystore/backend/internal/domain/shopping"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens an in-memory SQLite database with the full store schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&catalog.Product{},
		&identity.User{},
		&shopping.CartItem{},
		&ordering.Order{},
		&ordering.OrderItem{},
	))
	return db
}

// mustProduct builds a catalog product ready for persistence tests
func mustProduct(t *testing.T, name, price string, stock int) *catalog.Product {
	t.Helper()

	money, err := valueobject.NewMoneyUSDFromString(price)
	require.NoError(t, err)

	product, err := catalog.NewProduct(name, money)
	require.NoError(t, err)
	require.NoError(t, product.SetStockQuantity(stock))
	return product
}
