package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Retailer represents a buying partner
type Retailer struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name" gorm:"not null"`
	Email        string         `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string         `json:"-" gorm:"not null"`
	ContactPhone string         `json:"contact_phone"`
	Address      string         `json:"address"`
	LoyaltyTier  string         `json:"loyalty_tier" gorm:"default:'standard'"`
	IsActive     bool           `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Retailer) TableName() string {
	return "retailers"
}

// Supplier represents a selling partner
type Supplier struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name" gorm:"not null"`
	Email        string         `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string         `json:"-" gorm:"not null"`
	ContactPhone string         `json:"contact_phone"`
	Address      string         `json:"address"`
	IsActive     bool           `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Supplier) TableName() string {
	return "suppliers"
}

// RetailerRepository defines the contract for retailer data access
type RetailerRepository interface {
	Create(ctx context.Context, retailer *Retailer) error
	FindByID(ctx context.Context, id uint) (*Retailer, error)
	FindByEmail(ctx context.Context, email string) (*Retailer, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
}

// SupplierRepository defines the contract for supplier data access
type SupplierRepository interface {
	Create(ctx context.Context, supplier *Supplier) error
	FindByID(ctx context.Context, id uint) (*Supplier, error)
	FindByEmail(ctx context.Context, email string) (*Supplier, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
}
