package query

import (
	"context"
	"fmt"

	"github.com/tradehub/b2b-marketplace/internal/order/domain"
)

// GetOrderQuery represents the query to get an order by id or number
type GetOrderQuery struct {
	OrderID     uint
	OrderNumber string
}

// GetOrderHandler handles get order query
type GetOrderHandler struct {
	repo domain.OrderRepository
}

// NewGetOrderHandler creates a new get order handler
func NewGetOrderHandler(repo domain.OrderRepository) *GetOrderHandler {
	return &GetOrderHandler{repo: repo}
}

// Handle executes the get order query. OrderID wins when both are set.
func (h *GetOrderHandler) Handle(ctx context.Context, q GetOrderQuery) (*domain.Order, error) {
	switch {
	case q.OrderID != 0:
		order, err := h.repo.FindByID(ctx, q.OrderID)
		if err != nil {
			return nil, fmt.Errorf("order not found: %w", err)
		}
		return order, nil
	case q.OrderNumber != "":
		order, err := h.repo.FindByOrderNumber(ctx, q.OrderNumber)
		if err != nil {
			return nil, fmt.Errorf("order not found: %w", err)
		}
		return order, nil
	default:
		return nil, fmt.Errorf("order id or order number is required")
	}
}
