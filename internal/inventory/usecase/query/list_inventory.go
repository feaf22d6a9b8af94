package query

import (
	"context"

	"github.com/tradehub/b2b-marketplace/internal/inventory/domain"
)

// ListInventoryQuery represents the query to list ledger rows
type ListInventoryQuery struct {
	Limit  int
	Offset int
}

// ListInventoryHandler handles list inventory query
type ListInventoryHandler struct {
	repo domain.InventoryRepository
}

// NewListInventoryHandler creates a new list inventory handler
func NewListInventoryHandler(repo domain.InventoryRepository) *ListInventoryHandler {
	return &ListInventoryHandler{repo: repo}
}

// Handle executes the list inventory query
func (h *ListInventoryHandler) Handle(ctx context.Context, q ListInventoryQuery) ([]domain.Inventory, error) {
	if q.Limit <= 0 {
		q.Limit = 10
	}
	return h.repo.FindAll(ctx, q.Limit, q.Offset)
}
