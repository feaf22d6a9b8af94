package command

import (
	"context"
	"fmt"

	"github.com/tradehub/b2b-marketplace/internal/inventory/domain"
	"github.com/tradehub/b2b-marketplace/pkg/database"
)

// DiscontinueCommand sets or clears the discontinued override for a variant.
// While set, the override blocks reservation regardless of stock level.
type DiscontinueCommand struct {
	VariantID uint
	Reinstate bool
}

// DiscontinueHandler handles discontinue command
type DiscontinueHandler struct {
	repo       domain.InventoryRepository
	transactor database.Transactor
}

// NewDiscontinueHandler creates a new discontinue handler
func NewDiscontinueHandler(repo domain.InventoryRepository, transactor database.Transactor) *DiscontinueHandler {
	return &DiscontinueHandler{repo: repo, transactor: transactor}
}

// Handle executes the discontinue command
func (h *DiscontinueHandler) Handle(ctx context.Context, cmd DiscontinueCommand) (*domain.Inventory, error) {
	if cmd.VariantID == 0 {
		return nil, fmt.Errorf("variant_id is required")
	}

	var result *domain.Inventory
	err := h.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		inventory, err := h.repo.FindByVariantIDForUpdate(ctx, cmd.VariantID)
		if err != nil {
			return fmt.Errorf("inventory not found: %w", err)
		}
		if cmd.Reinstate {
			inventory.Reinstate()
		} else {
			inventory.Discontinue()
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
