package query

import (
	"context"

	"github.com/tradehub/b2b-marketplace/internal/inventory/domain"
)

// LowStockReportHandler lists every ledger row at or below its reorder
// level, for replenishment tooling
type LowStockReportHandler struct {
	repo domain.InventoryRepository
}

// NewLowStockReportHandler creates a new low stock report handler
func NewLowStockReportHandler(repo domain.InventoryRepository) *LowStockReportHandler {
	return &LowStockReportHandler{repo: repo}
}

// Handle executes the low stock report query
func (h *LowStockReportHandler) Handle(ctx context.Context) ([]domain.Inventory, error) {
	return h.repo.FindBelowReorderLevel(ctx)
}
