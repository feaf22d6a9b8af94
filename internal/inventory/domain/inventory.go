package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Status is the derived stock status of an inventory record
type Status string

const (
	StatusAvailable    Status = "AVAILABLE"
	StatusLowStock     Status = "LOW_STOCK"
	StatusOutOfStock   Status = "OUT_OF_STOCK"
	StatusDiscontinued Status = "DISCONTINUED"
)

var (
	// ErrInvalidQuantity is returned for non-positive mutation quantities
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrNotAvailable is returned when the record's status blocks reservation
	ErrNotAvailable = errors.New("inventory is not available for reservation")

	// ErrReleaseExceedsReserved is returned when a release would take the
	// reserved counter negative
	ErrReleaseExceedsReserved = errors.New("release exceeds reserved quantity")

	// ErrDeductExceedsReserved is returned when a deduction would take the
	// reserved counter negative
	ErrDeductExceedsReserved = errors.New("deduction exceeds reserved quantity")
)

// InsufficientStockError reports a reservation rejected because the
// available counter cannot cover the requested quantity.
type InsufficientStockError struct {
	VariantID uint
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for variant %d: requested %d, available %d",
		e.VariantID, e.Requested, e.Available)
}

// Inventory is the stock ledger row for one (supplier, variant) pair.
// AvailableQuantity and ReservedQuantity only move through Reserve,
// Release, Deduct and Restock; Status is always re-derived afterwards.
type Inventory struct {
	ID                uint           `json:"id" gorm:"primaryKey"`
	SupplierID        uint           `json:"supplier_id" gorm:"not null;uniqueIndex:idx_supplier_variant"`
	ProductID         uint           `json:"product_id" gorm:"not null;index"`
	VariantID         uint           `json:"variant_id" gorm:"not null;uniqueIndex:idx_supplier_variant"`
	AvailableQuantity int            `json:"available_quantity" gorm:"not null;default:0"`
	ReservedQuantity  int            `json:"reserved_quantity" gorm:"not null;default:0"`
	ReorderLevel      int            `json:"reorder_level" gorm:"not null;default:0"`
	MaxStockLevel     int            `json:"max_stock_level" gorm:"not null;default:0"`
	Status            Status         `json:"status" gorm:"not null;default:'OUT_OF_STOCK'"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Inventory) TableName() string {
	return "inventories"
}

// DeriveStatus computes the stock status from the counters. DISCONTINUED is
// an external override and wins regardless of quantity.
func DeriveStatus(available, reorderLevel int, discontinued bool) Status {
	switch {
	case discontinued:
		return StatusDiscontinued
	case available == 0:
		return StatusOutOfStock
	case available <= reorderLevel:
		return StatusLowStock
	default:
		return StatusAvailable
	}
}

// IsDiscontinued reports whether the external override is in effect
func (i *Inventory) IsDiscontinued() bool {
	return i.Status == StatusDiscontinued
}

func (i *Inventory) refreshStatus() {
	i.Status = DeriveStatus(i.AvailableQuantity, i.ReorderLevel, i.IsDiscontinued())
}

// Reserve moves quantity from available to reserved. The record is left
// untouched on any failure.
func (i *Inventory) Reserve(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if i.Status == StatusDiscontinued {
		return ErrNotAvailable
	}
	// An OUT_OF_STOCK row falls through here: available is zero, so any
	// positive request reports insufficient stock with the counters.
	if quantity > i.AvailableQuantity {
		return &InsufficientStockError{
			VariantID: i.VariantID,
			Requested: quantity,
			Available: i.AvailableQuantity,
		}
	}

	i.AvailableQuantity -= quantity
	i.ReservedQuantity += quantity
	i.refreshStatus()
	return nil
}

// Release returns a reservation to available stock. The inverse of Reserve.
func (i *Inventory) Release(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if quantity > i.ReservedQuantity {
		return ErrReleaseExceedsReserved
	}

	i.AvailableQuantity += quantity
	i.ReservedQuantity -= quantity
	i.refreshStatus()
	return nil
}

// Deduct converts a reservation into a permanent stock decrease. The stock
// has left the warehouse, so available is not touched.
func (i *Inventory) Deduct(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if quantity > i.ReservedQuantity {
		return ErrDeductExceedsReserved
	}

	i.ReservedQuantity -= quantity
	i.refreshStatus()
	return nil
}

// Restock adds quantity to available stock, capped at MaxStockLevel when
// one is configured.
func (i *Inventory) Restock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if i.MaxStockLevel > 0 && i.AvailableQuantity+i.ReservedQuantity+quantity > i.MaxStockLevel {
		return fmt.Errorf("restock of %d exceeds max stock level %d", quantity, i.MaxStockLevel)
	}

	i.AvailableQuantity += quantity
	i.refreshStatus()
	return nil
}

// Discontinue sets the external override that blocks further reservation
func (i *Inventory) Discontinue() {
	i.Status = StatusDiscontinued
}

// Reinstate clears the discontinued override and re-derives status
func (i *Inventory) Reinstate() {
	i.Status = DeriveStatus(i.AvailableQuantity, i.ReorderLevel, false)
}

// InventoryRepository defines the contract for inventory data access.
// The ForUpdate variants take a row-level exclusive lock and are only
// meaningful inside a transaction; they serialize the check-then-mutate
// sequence of competing reservations.
type InventoryRepository interface {
	Create(ctx context.Context, inventory *Inventory) error
	FindByID(ctx context.Context, id uint) (*Inventory, error)
	FindByVariantID(ctx context.Context, variantID uint) (*Inventory, error)
	FindByVariantIDForUpdate(ctx context.Context, variantID uint) (*Inventory, error)
	FindBySupplierAndProductForUpdate(ctx context.Context, supplierID, productID uint) (*Inventory, error)
	FindAll(ctx context.Context, limit, offset int) ([]Inventory, error)
	FindBelowReorderLevel(ctx context.Context) ([]Inventory, error)
	Save(ctx context.Context, inventory *Inventory) error
}
