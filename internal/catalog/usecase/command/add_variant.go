package command

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tradehub/b2b-marketplace/internal/catalog/domain"
)

// AddVariantCommand represents the command to add a product variant
type AddVariantCommand struct {
	ProductID       uint
	SKU             string
	Name            string
	PriceAdjustment decimal.Decimal
	Attributes      string
}

// AddVariantHandler handles add variant command
type AddVariantHandler struct {
	products domain.ProductRepository
	variants domain.VariantRepository
}

// NewAddVariantHandler creates a new add variant handler
func NewAddVariantHandler(products domain.ProductRepository, variants domain.VariantRepository) *AddVariantHandler {
	return &AddVariantHandler{products: products, variants: variants}
}

// Handle executes the add variant command
func (h *AddVariantHandler) Handle(ctx context.Context, cmd AddVariantCommand) (*domain.ProductVariant, error) {
	if cmd.ProductID == 0 {
		return nil, fmt.Errorf("product_id is required")
	}
	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	product, err := h.products.FindByID(ctx, cmd.ProductID)
	if err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}

	// The adjustment may be negative (variant cheaper than base) but must
	// not push the unit price below zero.
	if product.BasePrice.Add(cmd.PriceAdjustment).IsNegative() {
		return nil, fmt.Errorf("price_adjustment produces a negative unit price")
	}

	variant := &domain.ProductVariant{
		ProductID:       cmd.ProductID,
		SKU:             cmd.SKU,
		Name:            cmd.Name,
		PriceAdjustment: cmd.PriceAdjustment,
		Attributes:      cmd.Attributes,
	}

	if err := h.variants.Create(ctx, variant); err != nil {
		return nil, fmt.Errorf("failed to create variant: %w", err)
	}
	return variant, nil
}
