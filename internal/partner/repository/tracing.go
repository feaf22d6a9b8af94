package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tradehub/b2b-marketplace/internal/partner/domain"
)

var tracer = otel.Tracer("partner-repository")

// TracingRetailerRepository wraps GormRetailerRepository with tracing
type TracingRetailerRepository struct {
	*GormRetailerRepository
}

// NewTracingRetailerRepository creates a new repository with tracing
func NewTracingRetailerRepository(db *gorm.DB) *TracingRetailerRepository {
	return &TracingRetailerRepository{
		GormRetailerRepository: NewGormRetailerRepository(db),
	}
}

func (r *TracingRetailerRepository) FindByID(ctx context.Context, id uint) (*domain.Retailer, error) {
	ctx, span := tracer.Start(ctx, "repository.FindRetailerByID",
		trace.WithAttributes(attribute.Int("retailer.id", int(id))))
	defer span.End()

	retailer, err := r.GormRetailerRepository.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return retailer, nil
}

func (r *TracingRetailerRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	ctx, span := tracer.Start(ctx, "repository.RetailerExistsByID",
		trace.WithAttributes(attribute.Int("retailer.id", int(id))))
	defer span.End()

	exists, err := r.GormRetailerRepository.ExistsByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false, err
	}
	span.SetAttributes(attribute.Bool("retailer.exists", exists))
	return exists, nil
}

func (r *TracingRetailerRepository) FindByEmail(ctx context.Context, email string) (*domain.Retailer, error) {
	ctx, span := tracer.Start(ctx, "repository.FindRetailerByEmail")
	defer span.End()

	retailer, err := r.GormRetailerRepository.FindByEmail(ctx, email)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return retailer, nil
}

// TracingSupplierRepository wraps GormSupplierRepository with tracing
type TracingSupplierRepository struct {
	*GormSupplierRepository
}

// NewTracingSupplierRepository creates a new repository with tracing
func NewTracingSupplierRepository(db *gorm.DB) *TracingSupplierRepository {
	return &TracingSupplierRepository{
		GormSupplierRepository: NewGormSupplierRepository(db),
	}
}

func (r *TracingSupplierRepository) FindByID(ctx context.Context, id uint) (*domain.Supplier, error) {
	ctx, span := tracer.Start(ctx, "repository.FindSupplierByID",
		trace.WithAttributes(attribute.Int("supplier.id", int(id))))
	defer span.End()

	supplier, err := r.GormSupplierRepository.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return supplier, nil
}

func (r *TracingSupplierRepository) FindByEmail(ctx context.Context, email string) (*domain.Supplier, error) {
	ctx, span := tracer.Start(ctx, "repository.FindSupplierByEmail")
	defer span.End()

	supplier, err := r.GormSupplierRepository.FindByEmail(ctx, email)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return supplier, nil
}

func (r *TracingSupplierRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	ctx, span := tracer.Start(ctx, "repository.SupplierExistsByID",
		trace.WithAttributes(attribute.Int("supplier.id", int(id))))
	defer span.End()

	exists, err := r.GormSupplierRepository.ExistsByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false, err
	}
	span.SetAttributes(attribute.Bool("supplier.exists", exists))
	return exists, nil
}
