package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/toystore/backend/internal/domain/shared"
	"github.com/toystore/backend/internal/domain/shopping"
	"gorm.io/gorm"
)

// GormCartItemRepository implements CartItemRepository using GORM
type GormCartItemRepository struct {
	db *gorm.DB
}

// NewGormCartItemRepository creates a new GormCartItemRepository
func NewGormCartItemRepository(db *gorm.DB) *GormCartItemRepository {
	return &GormCartItemRepository{db: db}
}

// FindByUser finds all cart items belonging to the user, oldest line first
func (r *GormCartItemRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]shopping.CartItem, error) {
	var items []shopping.CartItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByUserAndProduct finds the user's cart item for a product
func (r *GormCartItemRepository) FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*shopping.CartItem, error) {
	var item shopping.CartItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByIDForUser finds a cart item by ID scoped to the user
func (r *GormCartItemRepository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*shopping.CartItem, error) {
	var item shopping.CartItem
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Save creates or updates a cart item
func (r *GormCartItemRepository) Save(ctx context.Context, item *shopping.CartItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete removes a cart item by ID
func (r *GormCartItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&shopping.CartItem{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByUser removes all cart items belonging to the user
func (r *GormCartItemRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&shopping.CartItem{}).Error
}

// Ensure GormCartItemRepository implements CartItemRepository
var _ shopping.CartItemRepository = (*GormCartItemRepository)(nil)
