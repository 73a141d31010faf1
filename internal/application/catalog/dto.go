package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/toystore/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name          string           `json:"name" binding:"required,min=1,max=200"`
	Description   string           `json:"description" binding:"max=2000"`
	Price         decimal.Decimal  `json:"price" binding:"required"`
	StockQuantity *int             `json:"stock_quantity"`
	Category      string           `json:"category" binding:"max=100"`
	AgeRange      string           `json:"age_range" binding:"max=50"`
	Brand         string           `json:"brand" binding:"max=100"`
	Rating        *float64         `json:"rating" binding:"omitempty,min=0,max=5"`
	ImageURL      string           `json:"image_url" binding:"max=500"`
	IsFeatured    *bool            `json:"is_featured"`
}

// UpdateProductRequest represents a request to update a product.
// Only the fields present in the request are applied.
type UpdateProductRequest struct {
	Name          *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description   *string          `json:"description" binding:"omitempty,max=2000"`
	Price         *decimal.Decimal `json:"price"`
	StockQuantity *int             `json:"stock_quantity"`
	Category      *string          `json:"category" binding:"omitempty,max=100"`
	AgeRange      *string          `json:"age_range" binding:"omitempty,max=50"`
	Brand         *string          `json:"brand" binding:"omitempty,max=100"`
	Rating        *float64         `json:"rating" binding:"omitempty,min=0,max=5"`
	ImageURL      *string          `json:"image_url" binding:"omitempty,max=500"`
	IsFeatured    *bool            `json:"is_featured"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	Category      string          `json:"category"`
	AgeRange      string          `json:"age_range"`
	Brand         string          `json:"brand"`
	Rating        float64         `json:"rating"`
	ImageURL      string          `json:"image_url"`
	IsFeatured    bool            `json:"is_featured"`
	InStock       bool            `json:"in_stock"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Version       int             `json:"version"`
}

// ProductListFilter represents filter options for product list
type ProductListFilter struct {
	Search     string `form:"search"`
	Category   string `form:"category"`
	AgeRange   string `form:"age_range"`
	IsFeatured *bool  `form:"is_featured"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		Category:      p.Category,
		AgeRange:      p.AgeRange,
		Brand:         p.Brand,
		Rating:        p.Rating,
		ImageURL:      p.ImageURL,
		IsFeatured:    p.IsFeatured,
		InStock:       p.IsInStock(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		Version:       p.Version,
	}
}

// ToProductResponses converts domain Products to ProductResponses
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}
