package command

import (
	"context"
	"fmt"

	"github.com/tradehub/b2b-marketplace/internal/inventory/domain"
	"github.com/tradehub/b2b-marketplace/pkg/database"
)

// RestockCommand adds stock to an existing ledger row
type RestockCommand struct {
	VariantID uint
	Quantity  int
}

// RestockHandler handles restock command
type RestockHandler struct {
	repo       domain.InventoryRepository
	transactor database.Transactor
}

// NewRestockHandler creates a new restock handler
func NewRestockHandler(repo domain.InventoryRepository, transactor database.Transactor) *RestockHandler {
	return &RestockHandler{repo: repo, transactor: transactor}
}

// Handle executes the restock command. The row is locked so a restock
// cannot interleave with a concurrent reservation.
func (h *RestockHandler) Handle(ctx context.Context, cmd RestockCommand) (*domain.Inventory, error) {
	if cmd.VariantID == 0 {
		return nil, fmt.Errorf("variant_id is required")
	}
	if cmd.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive")
	}

	var result *domain.Inventory
	err := h.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		inventory, err := h.repo.FindByVariantIDForUpdate(ctx, cmd.VariantID)
		if err != nil {
			return fmt.Errorf("inventory not found: %w", err)
		}
		if err := inventory.Restock(cmd.Quantity); err != nil {
			return err
		}
		if err := h.repo.Save(ctx, inventory); err != nil {
			return fmt.Errorf("failed to save inventory: %w", err)
		}
		result = inventory
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
