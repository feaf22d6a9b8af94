package query

import (
	"context"

	"github.com/tradehub/b2b-marketplace/internal/order/domain"
)

// ListOrdersQuery represents the query to list orders
type ListOrdersQuery struct {
	RetailerID uint // 0 lists across all retailers
	Limit      int
	Offset     int
}

// ListOrdersHandler handles list orders query
type ListOrdersHandler struct {
	repo domain.OrderRepository
}

// NewListOrdersHandler creates a new list orders handler
func NewListOrdersHandler(repo domain.OrderRepository) *ListOrdersHandler {
	return &ListOrdersHandler{repo: repo}
}

// Handle executes the list orders query
func (h *ListOrdersHandler) Handle(ctx context.Context, q ListOrdersQuery) ([]domain.Order, error) {
	if q.Limit <= 0 {
		q.Limit = 10
	}
	if q.RetailerID != 0 {
		return h.repo.FindByRetailerID(ctx, q.RetailerID, q.Limit, q.Offset)
	}
	return h.repo.FindAll(ctx, q.Limit, q.Offset)
}
