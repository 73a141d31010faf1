package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/toystore/backend/internal/domain/catalog"
	"github.com/toystore/backend/internal/domain/shared"
	"github.com/toystore/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// ProductService handles catalog business operations
type ProductService struct {
	productRepo catalog.ProductRepository
	publisher   shared.EventPublisher
	logger      *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		publisher:   publisher,
		logger:      logger,
	}
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}

	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}
	if filter.AgeRange != "" {
		domainFilter.Filters["age_range"] = filter.AgeRange
	}
	if filter.IsFeatured != nil {
		domainFilter.Filters["is_featured"] = *filter.IsFeatured
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToProductResponses(products), total, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetFeatured retrieves all featured products
func (s *ProductService) GetFeatured(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.productRepo.FindFeatured(ctx)
	if err != nil {
		return nil, err
	}

	return ToProductResponses(products), nil
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.Name, valueobject.NewMoneyUSD(req.Price))
	if err != nil {
		return nil, err
	}

	if req.Description != "" {
		if err := product.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}

	product.SetAttributes(req.Category, req.AgeRange, req.Brand, req.ImageURL)

	if req.StockQuantity != nil {
		if err := product.SetStockQuantity(*req.StockQuantity); err != nil {
			return nil, err
		}
	}
	if req.Rating != nil {
		if err := product.SetRating(*req.Rating); err != nil {
			return nil, err
		}
	}
	if req.IsFeatured != nil {
		product.SetFeatured(*req.IsFeatured)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)

	s.logger.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name))

	response := ToProductResponse(product)
	return &response, nil
}

// Update applies the request's present fields to an existing product
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Description != nil {
		name := product.Name
		description := product.Description
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		if err := product.Update(name, description); err != nil {
			return nil, err
		}
	}

	if req.Price != nil {
		if err := product.SetPrice(valueobject.NewMoneyUSD(*req.Price)); err != nil {
			return nil, err
		}
	}

	if req.StockQuantity != nil {
		if err := product.SetStockQuantity(*req.StockQuantity); err != nil {
			return nil, err
		}
	}

	if req.Category != nil || req.AgeRange != nil || req.Brand != nil || req.ImageURL != nil {
		category := product.Category
		ageRange := product.AgeRange
		brand := product.Brand
		imageURL := product.ImageURL
		if req.Category != nil {
			category = *req.Category
		}
		if req.AgeRange != nil {
			ageRange = *req.AgeRange
		}
		if req.Brand != nil {
			brand = *req.Brand
		}
		if req.ImageURL != nil {
			imageURL = *req.ImageURL
		}
		product.SetAttributes(category, ageRange, brand, imageURL)
	}

	if req.Rating != nil {
		if err := product.SetRating(*req.Rating); err != nil {
			return nil, err
		}
	}

	if req.IsFeatured != nil {
		product.SetFeatured(*req.IsFeatured)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)

	s.logger.Info("product updated",
		zap.String("product_id", product.ID.String()))

	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes a product from the catalog
func (s *ProductService) Delete(ctx context.Context, productID uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, productID); err != nil {
		return err
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, catalog.NewProductDeletedEvent(product)); err != nil {
			s.logger.Warn("failed to publish product deleted event", zap.Error(err))
		}
	}

	s.logger.Info("product deleted",
		zap.String("product_id", productID.String()),
		zap.String("name", product.Name))

	return nil
}

func (s *ProductService) publishEvents(ctx context.Context, product *catalog.Product) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, product.GetDomainEvents()...); err != nil {
		s.logger.Warn("failed to publish product events", zap.Error(err))
	}
	product.ClearDomainEvents()
}
