package command

import (
	"context"
	"fmt"

	"github.com/tradehub/b2b-marketplace/internal/catalog/domain"
)

// SetPriceTiersCommand replaces a product's bulk pricing bands
type SetPriceTiersCommand struct {
	ProductID uint
	Tiers     []domain.PriceTier
}

// SetPriceTiersHandler handles set price tiers command
type SetPriceTiersHandler struct {
	repo domain.ProductRepository
}

// NewSetPriceTiersHandler creates a new set price tiers handler
func NewSetPriceTiersHandler(repo domain.ProductRepository) *SetPriceTiersHandler {
	return &SetPriceTiersHandler{repo: repo}
}

// Handle executes the set price tiers command
func (h *SetPriceTiersHandler) Handle(ctx context.Context, cmd SetPriceTiersCommand) error {
	if cmd.ProductID == 0 {
		return fmt.Errorf("product_id is required")
	}
	if _, err := h.repo.FindByID(ctx, cmd.ProductID); err != nil {
		return fmt.Errorf("product not found: %w", err)
	}
	if err := domain.ValidateTiers(cmd.Tiers); err != nil {
		return fmt.Errorf("invalid price tiers: %w", err)
	}
	if err := h.repo.ReplaceTiers(ctx, cmd.ProductID, cmd.Tiers); err != nil {
		return fmt.Errorf("failed to replace price tiers: %w", err)
	}
	return nil
}
