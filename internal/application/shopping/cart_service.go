package shopping

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/toystore/backend/internal/domain/catalog"
	"github.com/toystore/backend/internal/domain/shared"
	"github.com/toystore/backend/internal/domain/shopping"
	"go.uber.org/zap"
)

// CartService handles shopping cart operations
type CartService struct {
	cartRepo    shopping.CartItemRepository
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewCartService creates a new CartService
func NewCartService(
	cartRepo shopping.CartItemRepository,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// GetCart returns the user's cart joined with current product data.
// Lines whose product has been removed from the catalog are skipped.
func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	items, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return &CartResponse{Items: []CartItemResponse{}, Total: decimal.Zero}, nil
	}

	productIDs := make([]uuid.UUID, len(items))
	for i := range items {
		productIDs[i] = items[i].ProductID
	}

	products, err := s.productRepo.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	response := &CartResponse{
		Items: make([]CartItemResponse, 0, len(items)),
		Total: decimal.Zero,
	}
	for i := range items {
		product, ok := byID[items[i].ProductID]
		if !ok {
			continue
		}
		line := toCartItemResponse(&items[i], product)
		response.Items = append(response.Items, line)
		response.Total = response.Total.Add(line.Subtotal)
	}
	response.ItemCount = len(response.Items)

	return response, nil
}

// AddItem puts a product in the cart, or bumps the quantity of an
// existing line for the same product
func (s *CartService) AddItem(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*CartResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
		}
		return nil, err
	}

	existing, err := s.cartRepo.FindByUserAndProduct(ctx, userID, req.ProductID)
	switch {
	case err == nil:
		if err := existing.AddQuantity(req.Quantity); err != nil {
			return nil, err
		}
		if err := s.cartRepo.Save(ctx, existing); err != nil {
			return nil, err
		}
	case errors.Is(err, shared.ErrNotFound):
		item, err := shopping.NewCartItem(userID, req.ProductID, req.Quantity)
		if err != nil {
			return nil, err
		}
		if err := s.cartRepo.Save(ctx, item); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	s.logger.Info("cart item added",
		zap.String("user_id", userID.String()),
		zap.String("product_id", req.ProductID.String()),
		zap.Int("quantity", req.Quantity))

	return s.GetCart(ctx, userID)
}

// UpdateItem replaces the quantity of one of the user's cart lines
func (s *CartService) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, req UpdateItemRequest) (*CartResponse, error) {
	item, err := s.cartRepo.FindByIDForUser(ctx, itemID, userID)
	if err != nil {
		return nil, err
	}

	if err := item.UpdateQuantity(req.Quantity); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	return s.GetCart(ctx, userID)
}

// RemoveItem deletes one of the user's cart lines
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*CartResponse, error) {
	item, err := s.cartRepo.FindByIDForUser(ctx, itemID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.Delete(ctx, item.ID); err != nil {
		return nil, err
	}

	return s.GetCart(ctx, userID)
}

// Clear removes every line from the user's cart
func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.cartRepo.DeleteByUser(ctx, userID); err != nil {
		return err
	}

	s.logger.Info("cart cleared", zap.String("user_id", userID.String()))

	return nil
}
