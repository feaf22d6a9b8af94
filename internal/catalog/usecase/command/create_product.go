package command

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tradehub/b2b-marketplace/internal/catalog/domain"
)

// CreateProductCommand represents the command to create a product
type CreateProductCommand struct {
	SupplierID       uint
	Name             string
	Description      string
	SKU              string
	Category         string
	BasePrice        decimal.Decimal
	MinOrderQuantity int
	PriceTiers       []domain.PriceTier
}

// CreateProductHandler handles create product command
type CreateProductHandler struct {
	repo domain.ProductRepository
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(repo domain.ProductRepository) *CreateProductHandler {
	return &CreateProductHandler{repo: repo}
}

// Handle executes the create product command
func (h *CreateProductHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*domain.Product, error) {
	if cmd.SupplierID == 0 {
		return nil, fmt.Errorf("supplier_id is required")
	}
	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if cmd.BasePrice.IsNegative() {
		return nil, fmt.Errorf("base_price cannot be negative")
	}
	if cmd.MinOrderQuantity <= 0 {
		cmd.MinOrderQuantity = 1
	}
	if err := domain.ValidateTiers(cmd.PriceTiers); err != nil {
		return nil, fmt.Errorf("invalid price tiers: %w", err)
	}

	product := &domain.Product{
		SupplierID:       cmd.SupplierID,
		Name:             cmd.Name,
		Description:      cmd.Description,
		SKU:              cmd.SKU,
		Category:         cmd.Category,
		BasePrice:        cmd.BasePrice,
		MinOrderQuantity: cmd.MinOrderQuantity,
		IsActive:         true,
		PriceTiers:       cmd.PriceTiers,
	}

	if err := h.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}
