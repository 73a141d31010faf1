package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/toystore/backend/internal/domain/shared"
	"github.com/toystore/backend/internal/domain/shared/valueobject"
)

// Product represents a toy in the store catalog
// It is the aggregate root for product-related operations
type Product struct {
	shared.BaseAggregateRoot
	Name          string          `gorm:"type:varchar(200);not null;index"`
	Description   string          `gorm:"type:text"`
	Price         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	StockQuantity int             `gorm:"not null;default:0"`
	Category      string          `gorm:"type:varchar(100);index"`
	AgeRange      string          `gorm:"type:varchar(50)"`
	Brand         string          `gorm:"type:varchar(100)"`
	Rating        float64         `gorm:"not null;default:0"`
	ImageURL      string          `gorm:"type:varchar(500)"`
	IsFeatured    bool            `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(name string, price valueobject.Money) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Price:             price.Amount(),
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = strings.TrimSpace(name)
	p.Description = description
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetPrice updates the selling price
func (p *Product) SetPrice(price valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	p.Price = price.Amount()
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetStockQuantity replaces the stock level (admin restock/correction)
func (p *Product) SetStockQuantity(quantity int) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Stock quantity cannot be negative")
	}

	p.StockQuantity = quantity
	p.Touch()
	p.IncrementVersion()

	return nil
}

// DecrementStock reduces available stock by the ordered quantity.
// No floor check is applied: concurrent or oversized orders may drive
// the stored quantity negative. That mirrors the store's fulfilment
// policy of accepting orders and back-ordering shortfalls.
func (p *Product) DecrementStock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	p.StockQuantity -= quantity
	p.Touch()
	p.IncrementVersion()

	return nil
}

// SetAttributes updates the merchandising attributes
func (p *Product) SetAttributes(category, ageRange, brand, imageURL string) {
	p.Category = category
	p.AgeRange = ageRange
	p.Brand = brand
	p.ImageURL = imageURL
	p.Touch()
	p.IncrementVersion()
}

// SetRating updates the product rating
func (p *Product) SetRating(rating float64) error {
	if rating < 0 || rating > 5 {
		return shared.NewDomainError("INVALID_RATING", "Rating must be between 0 and 5")
	}

	p.Rating = rating
	p.Touch()
	p.IncrementVersion()

	return nil
}

// SetFeatured marks or unmarks the product as featured
func (p *Product) SetFeatured(featured bool) {
	p.IsFeatured = featured
	p.Touch()
	p.IncrementVersion()
}

// GetPriceMoney returns the price as a Money value object
func (p *Product) GetPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.Price)
}

// IsInStock returns true if the recorded stock is positive
func (p *Product) IsInStock() bool {
	return p.StockQuantity > 0
}

func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
