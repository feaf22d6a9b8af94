package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tradehub/b2b-marketplace/internal/inventory/domain"
)

var tracer = otel.Tracer("inventory-repository")

// TracingInventoryRepository wraps GormInventoryRepository with tracing on
// the operations that sit on the order placement hot path
type TracingInventoryRepository struct {
	*GormInventoryRepository
}

// NewTracingInventoryRepository creates a new repository with tracing
func NewTracingInventoryRepository(db *gorm.DB) *TracingInventoryRepository {
	return &TracingInventoryRepository{
		GormInventoryRepository: NewGormInventoryRepository(db),
	}
}

func (r *TracingInventoryRepository) FindByVariantIDForUpdate(ctx context.Context, variantID uint) (*domain.Inventory, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByVariantIDForUpdate",
		trace.WithAttributes(
			attribute.Int("inventory.variant_id", int(variantID)),
		),
	)
	defer span.End()

	inventory, err := r.GormInventoryRepository.FindByVariantIDForUpdate(ctx, variantID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("inventory.available", inventory.AvailableQuantity),
		attribute.Int("inventory.reserved", inventory.ReservedQuantity),
	)
	return inventory, nil
}

func (r *TracingInventoryRepository) FindBySupplierAndProductForUpdate(ctx context.Context, supplierID, productID uint) (*domain.Inventory, error) {
	ctx, span := tracer.Start(ctx, "repository.FindBySupplierAndProductForUpdate",
		trace.WithAttributes(
			attribute.Int("inventory.supplier_id", int(supplierID)),
			attribute.Int("inventory.product_id", int(productID)),
		),
	)
	defer span.End()

	inventory, err := r.GormInventoryRepository.FindBySupplierAndProductForUpdate(ctx, supplierID, productID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return inventory, nil
}

func (r *TracingInventoryRepository) Save(ctx context.Context, inventory *domain.Inventory) error {
	ctx, span := tracer.Start(ctx, "repository.Save",
		trace.WithAttributes(
			attribute.Int("inventory.id", int(inventory.ID)),
			attribute.Int("inventory.available", inventory.AvailableQuantity),
			attribute.Int("inventory.reserved", inventory.ReservedQuantity),
			attribute.String("inventory.status", string(inventory.Status)),
		),
	)
	defer span.End()

	if err := r.GormInventoryRepository.Save(ctx, inventory); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}
