package query

import (
	"context"
	"fmt"

	"github.com/tradehub/b2b-marketplace/internal/inventory/domain"
)

// GetInventoryQuery represents the query to get a ledger row by variant
type GetInventoryQuery struct {
	VariantID uint
}

// GetInventoryHandler handles get inventory query
type GetInventoryHandler struct {
	repo domain.InventoryRepository
}

// NewGetInventoryHandler creates a new get inventory handler
func NewGetInventoryHandler(repo domain.InventoryRepository) *GetInventoryHandler {
	return &GetInventoryHandler{repo: repo}
}

// Handle executes the get inventory query
func (h *GetInventoryHandler) Handle(ctx context.Context, q GetInventoryQuery) (*domain.Inventory, error) {
	if q.VariantID == 0 {
		return nil, fmt.Errorf("variant_id is required")
	}
	inventory, err := h.repo.FindByVariantID(ctx, q.VariantID)
	if err != nil {
		return nil, fmt.Errorf("inventory not found: %w", err)
	}
	return inventory, nil
}
