package shopping

import (
	"github.com/google/uuid"
	"github.com/toystore/backend/internal/domain/shared"
)

// CartItem represents one product line in a user's shopping cart.
// A user holds at most one cart item per product.
type CartItem struct {
	shared.BaseEntity
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product"`
	Quantity  int       `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM
func (CartItem) TableName() string {
	return "cart_items"
}

// NewCartItem creates a new cart item
func NewCartItem(userID, productID uuid.UUID, quantity int) (*CartItem, error) {
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}

	return &CartItem{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		ProductID:  productID,
		Quantity:   quantity,
	}, nil
}

// AddQuantity increases the quantity by the given amount
func (c *CartItem) AddQuantity(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	c.Quantity += quantity
	c.Touch()

	return nil
}

// UpdateQuantity replaces the quantity with the given amount
func (c *CartItem) UpdateQuantity(quantity int) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}

	c.Quantity = quantity
	c.Touch()

	return nil
}

func validateQuantity(quantity int) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	return nil
}
