package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrInvalidDiscount is returned when a discount is negative or exceeds
// the order total
var ErrInvalidDiscount = errors.New("discount must be between zero and the order total")

// Order is the transactional aggregate root for a purchase. It exclusively
// owns its items; inventory rows are referenced by item but owned by the
// inventory ledger. Orders are never deleted, cancellation is a status.
type Order struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	OrderNumber     string          `json:"order_number" gorm:"uniqueIndex;not null"`
	RetailerID      uint            `json:"retailer_id" gorm:"not null;index"`
	SupplierID      uint            `json:"supplier_id" gorm:"not null;index"`
	Status          Status          `json:"status" gorm:"not null;default:'PENDING'"`
	TotalAmount     decimal.Decimal `json:"total_amount" gorm:"type:decimal(14,2);not null"`
	ShippingAddress string          `json:"shipping_address"`
	Notes           string          `json:"notes"`
	OrderDate       time.Time       `json:"order_date"`
	DeliveryDate    *time.Time      `json:"delivery_date"`
	Items           []OrderItem     `json:"items" gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one priced line of an order. ProductName is a snapshot
// taken at placement time so later catalog edits do not rewrite history.
type OrderItem struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	OrderID        uint            `json:"order_id" gorm:"not null;index"`
	ProductID      uint            `json:"product_id" gorm:"not null"`
	VariantID      uint            `json:"variant_id" gorm:"not null"`
	Quantity       int             `json:"quantity" gorm:"not null"`
	UnitPrice      decimal.Decimal `json:"unit_price" gorm:"type:decimal(12,2);not null"`
	LineTotal      decimal.Decimal `json:"line_total" gorm:"type:decimal(14,2);not null"`
	ProductName    string          `json:"product_name" gorm:"not null"`
	Specifications string          `json:"specifications"`
	Notes          string          `json:"notes"`
	CreatedAt      time.Time       `json:"created_at"`
}

// TableName specifies the table name
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrder creates an order in PENDING state with no items
func NewOrder(orderNumber string, retailerID, supplierID uint, shippingAddress string, orderDate time.Time) *Order {
	return &Order{
		OrderNumber:     orderNumber,
		RetailerID:      retailerID,
		SupplierID:      supplierID,
		Status:          StatusPending,
		TotalAmount:     decimal.Zero,
		ShippingAddress: shippingAddress,
		OrderDate:       orderDate,
	}
}

// AddItem appends a line and recomputes the total from scratch, so the
// stored total can never drift from the sum of its lines
func (o *Order) AddItem(item OrderItem) {
	o.Items = append(o.Items, item)
	o.recomputeTotal()
}

func (o *Order) recomputeTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.LineTotal)
	}
	o.TotalAmount = total.Round(2)
}

// ApplyDiscount subtracts an order-level discount
func (o *Order) ApplyDiscount(amount decimal.Decimal) error {
	if amount.IsNegative() || amount.GreaterThan(o.TotalAmount) {
		return ErrInvalidDiscount
	}
	o.TotalAmount = o.TotalAmount.Sub(amount).Round(2)
	return nil
}

func (o *Order) transition(to Status, allowedFrom ...Status) error {
	for _, from := range allowedFrom {
		if o.Status == from {
			o.Status = to
			return nil
		}
	}
	return &InvalidTransitionError{From: o.Status, To: to}
}

// Confirm moves the order from PENDING to CONFIRMED
func (o *Order) Confirm() error {
	return o.transition(StatusConfirmed, StatusPending)
}

// MarkProcessing moves the order from CONFIRMED to PROCESSING
func (o *Order) MarkProcessing() error {
	return o.transition(StatusProcessing, StatusConfirmed)
}

// Ship moves the order from PROCESSING to SHIPPED
func (o *Order) Ship() error {
	return o.transition(StatusShipped, StatusProcessing)
}

// Deliver moves the order from SHIPPED to DELIVERED and stamps the
// delivery date
func (o *Order) Deliver() error {
	if err := o.transition(StatusDelivered, StatusShipped); err != nil {
		return err
	}
	now := time.Now()
	o.DeliveryDate = &now
	return nil
}

// CanCancel reports whether the current status allows cancellation
func (o *Order) CanCancel() bool {
	return o.Status.cancellable()
}

// Cancel moves the order to CANCELLED. Only PENDING and CONFIRMED orders
// may be cancelled.
func (o *Order) Cancel() error {
	return o.transition(StatusCancelled, StatusPending, StatusConfirmed)
}

// OrderRepository defines the contract for order data access
type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	Save(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id uint) (*Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)
	ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error)
	FindByRetailerID(ctx context.Context, retailerID uint, limit, offset int) ([]Order, error)
	FindAll(ctx context.Context, limit, offset int) ([]Order, error)
}
