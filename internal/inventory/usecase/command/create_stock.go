package command

import (
	"context"
	"fmt"

	"github.com/tradehub/b2b-marketplace/internal/inventory/domain"
)

// CreateStockCommand creates the ledger row for a (supplier, variant) pair.
// Issued when a supplier first stocks a variant.
type CreateStockCommand struct {
	SupplierID      uint
	ProductID       uint
	VariantID       uint
	InitialQuantity int
	ReorderLevel    int
	MaxStockLevel   int
}

// CreateStockHandler handles create stock command
type CreateStockHandler struct {
	repo domain.InventoryRepository
}

// NewCreateStockHandler creates a new create stock handler
func NewCreateStockHandler(repo domain.InventoryRepository) *CreateStockHandler {
	return &CreateStockHandler{repo: repo}
}

// Handle executes the create stock command
func (h *CreateStockHandler) Handle(ctx context.Context, cmd CreateStockCommand) (*domain.Inventory, error) {
	if cmd.SupplierID == 0 {
		return nil, fmt.Errorf("supplier_id is required")
	}
	if cmd.ProductID == 0 {
		return nil, fmt.Errorf("product_id is required")
	}
	if cmd.VariantID == 0 {
		return nil, fmt.Errorf("variant_id is required")
	}
	if cmd.InitialQuantity < 0 {
		return nil, fmt.Errorf("initial quantity cannot be negative")
	}
	if cmd.MaxStockLevel > 0 && cmd.InitialQuantity > cmd.MaxStockLevel {
		return nil, fmt.Errorf("initial quantity exceeds max stock level")
	}

	inventory := &domain.Inventory{
		SupplierID:        cmd.SupplierID,
		ProductID:         cmd.ProductID,
		VariantID:         cmd.VariantID,
		AvailableQuantity: cmd.InitialQuantity,
		ReorderLevel:      cmd.ReorderLevel,
		MaxStockLevel:     cmd.MaxStockLevel,
		Status:            domain.DeriveStatus(cmd.InitialQuantity, cmd.ReorderLevel, false),
	}

	if err := h.repo.Create(ctx, inventory); err != nil {
		return nil, fmt.Errorf("failed to create inventory: %w", err)
	}
	return inventory, nil
}
