package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a supplier's sellable product
type Product struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	SupplierID       uint            `json:"supplier_id" gorm:"not null;index"`
	Name             string          `json:"name" gorm:"not null"`
	Description      string          `json:"description"`
	SKU              string          `json:"sku" gorm:"uniqueIndex"`
	Category         string          `json:"category"`
	BasePrice        decimal.Decimal `json:"base_price" gorm:"type:decimal(12,2);not null"`
	MinOrderQuantity int             `json:"min_order_quantity" gorm:"not null;default:1"`
	IsActive         bool            `json:"is_active" gorm:"default:true"`
	PriceTiers       []PriceTier     `json:"price_tiers" gorm:"foreignKey:ProductID"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	DeletedAt        gorm.DeletedAt  `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// ProductVariant represents a sellable configuration of a product.
// Inventory and orders operate on variants, not products.
type ProductVariant struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	ProductID       uint            `json:"product_id" gorm:"not null;index"`
	SKU             string          `json:"sku" gorm:"uniqueIndex"`
	Name            string          `json:"name" gorm:"not null"`
	PriceAdjustment decimal.Decimal `json:"price_adjustment" gorm:"type:decimal(12,2);default:0"`
	Attributes      string          `json:"attributes"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (ProductVariant) TableName() string {
	return "product_variants"
}

// PriceTier is a quantity band with a bulk discount. Tiers of one product
// are non-overlapping and ordered by MinQuantity ascending. A nil
// MaxQuantity means the band is unbounded above.
type PriceTier struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	ProductID       uint            `json:"product_id" gorm:"not null;index"`
	MinQuantity     int             `json:"min_quantity" gorm:"not null"`
	MaxQuantity     *int            `json:"max_quantity"`
	DiscountPercent decimal.Decimal `json:"discount_percent" gorm:"type:decimal(5,2);not null"`
	CreatedAt       time.Time       `json:"created_at"`
}

// TableName specifies the table name
func (PriceTier) TableName() string {
	return "price_tiers"
}

// Contains reports whether quantity falls inside the tier's band
func (t PriceTier) Contains(quantity int) bool {
	if quantity < t.MinQuantity {
		return false
	}
	return t.MaxQuantity == nil || quantity <= *t.MaxQuantity
}

// ValidateTiers checks that a tier set is well-formed: positive minimums,
// discounts within 0..100, bands ordered ascending and non-overlapping.
func ValidateTiers(tiers []PriceTier) error {
	hundred := decimal.NewFromInt(100)
	for i, tier := range tiers {
		if tier.MinQuantity <= 0 {
			return fmt.Errorf("tier %d: min_quantity must be positive", i)
		}
		if tier.MaxQuantity != nil && *tier.MaxQuantity < tier.MinQuantity {
			return fmt.Errorf("tier %d: max_quantity below min_quantity", i)
		}
		if tier.DiscountPercent.IsNegative() || tier.DiscountPercent.GreaterThan(hundred) {
			return fmt.Errorf("tier %d: discount_percent outside 0..100", i)
		}
		if i == 0 {
			continue
		}
		prev := tiers[i-1]
		if prev.MaxQuantity == nil {
			return fmt.Errorf("tier %d: previous tier is unbounded", i)
		}
		if tier.MinQuantity <= *prev.MaxQuantity {
			return fmt.Errorf("tier %d: overlaps previous tier", i)
		}
	}
	return nil
}

// ProductRepository defines the contract for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id uint) (*Product, error)
	FindBySKU(ctx context.Context, sku string) (*Product, error)
	FindBySupplierID(ctx context.Context, supplierID uint, limit, offset int) ([]Product, error)
	FindAll(ctx context.Context, limit, offset int) ([]Product, error)
	Update(ctx context.Context, product *Product) error
	ReplaceTiers(ctx context.Context, productID uint, tiers []PriceTier) error
}

// VariantRepository defines the contract for product variant data access
type VariantRepository interface {
	Create(ctx context.Context, variant *ProductVariant) error
	FindByID(ctx context.Context, id uint) (*ProductVariant, error)
	FindBySKU(ctx context.Context, sku string) (*ProductVariant, error)
	FindByProductID(ctx context.Context, productID uint) ([]ProductVariant, error)
}
