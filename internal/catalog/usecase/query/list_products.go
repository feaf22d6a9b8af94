package query

import (
	"context"

	"github.com/tradehub/b2b-marketplace/internal/catalog/domain"
)

// ListProductsQuery represents the query to list products
type ListProductsQuery struct {
	SupplierID uint
	Limit      int
	Offset     int
}

// ListProductsHandler handles list products query
type ListProductsHandler struct {
	repo domain.ProductRepository
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(repo domain.ProductRepository) *ListProductsHandler {
	return &ListProductsHandler{repo: repo}
}

// Handle executes the list products query
func (h *ListProductsHandler) Handle(ctx context.Context, q ListProductsQuery) ([]domain.Product, error) {
	if q.Limit <= 0 {
		q.Limit = 10
	}
	if q.SupplierID != 0 {
		return h.repo.FindBySupplierID(ctx, q.SupplierID, q.Limit, q.Offset)
	}
	return h.repo.FindAll(ctx, q.Limit, q.Offset)
}
