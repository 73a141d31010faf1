package ordering

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/toystore/backend/internal/domain/shared"
	"github.com/toystore/backend/internal/domain/shared/valueobject"
)

// OrderStatus represents the fulfilment status of an order
type OrderStatus string

// Order statuses
const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// DefaultPaymentMethod is used when the buyer does not choose one
const DefaultPaymentMethod = "cash_on_delivery"

// IsValid reports whether the status is one of the known statuses
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the status as a string
func (s OrderStatus) String() string {
	return string(s)
}

// Order represents a placed order with its line items
type Order struct {
	shared.BaseAggregateRoot
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Status          OrderStatus     `gorm:"type:varchar(20);not null;default:'pending';index"`
	ShippingAddress string          `gorm:"type:text"`
	PaymentMethod   string          `gorm:"type:varchar(50);not null;default:'cash_on_delivery'"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// OrderItem represents one product line in an order.
// Price is a snapshot of the product's unit price at placement time
// and is never revised when the catalog price changes later.
type OrderItem struct {
	shared.BaseEntity
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity  int             `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// Subtotal returns the line total, unit price times quantity
func (i *OrderItem) Subtotal() valueobject.Money {
	return valueobject.NewMoneyUSD(i.Price).MultiplyByInt(int64(i.Quantity))
}

// NewOrder creates a new pending order for the user
func NewOrder(userID uuid.UUID, shippingAddress, paymentMethod string) *Order {
	if paymentMethod == "" {
		paymentMethod = DefaultPaymentMethod
	}

	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		TotalAmount:       decimal.Zero,
		Status:            OrderStatusPending,
		ShippingAddress:   shippingAddress,
		PaymentMethod:     paymentMethod,
	}
}

// AddItem appends a line item with the given unit price snapshot
// and adds its subtotal to the order total
func (o *Order) AddItem(productID uuid.UUID, quantity int, unitPrice valueobject.Money) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	item := OrderItem{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    o.ID,
		ProductID:  productID,
		Quantity:   quantity,
		Price:      unitPrice.Amount(),
	}

	o.Items = append(o.Items, item)
	o.TotalAmount = o.TotalAmount.Add(item.Price.Mul(decimal.NewFromInt(int64(quantity))))
	o.Touch()

	return nil
}

// Place marks the order as placed and emits the placement event.
// The order must have at least one item.
func (o *Order) Place() error {
	if len(o.Items) == 0 {
		return shared.ErrEmptyCart
	}

	o.AddDomainEvent(NewOrderPlacedEvent(o))

	return nil
}

// UpdateStatus moves the order to the given status. Any known status
// may follow any other known status, including moves out of cancelled.
func (o *Order) UpdateStatus(status OrderStatus) error {
	if !status.IsValid() {
		return shared.ErrInvalidStatus
	}

	previous := o.Status
	o.Status = status
	o.Touch()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, previous))

	return nil
}

// GetTotalMoney returns the order total as a Money value object
func (o *Order) GetTotalMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.TotalAmount)
}

// ItemCount returns the number of line items on the order
func (o *Order) ItemCount() int {
	return len(o.Items)
}
