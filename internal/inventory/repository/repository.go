package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tradehub/b2b-marketplace/internal/inventory/domain"
	"github.com/tradehub/b2b-marketplace/pkg/database"
)

type GormInventoryRepository struct {
	base *gorm.DB
}

func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{base: db}
}

func (r *GormInventoryRepository) AutoMigrate() error {
	return r.base.AutoMigrate(&domain.Inventory{})
}

func (r *GormInventoryRepository) db(ctx context.Context) *gorm.DB {
	return database.FromContext(ctx, r.base)
}

func (r *GormInventoryRepository) Create(ctx context.Context, inventory *domain.Inventory) error {
	return r.db(ctx).Create(inventory).Error
}

func (r *GormInventoryRepository) FindByID(ctx context.Context, id uint) (*domain.Inventory, error) {
	var inventory domain.Inventory
	if err := r.db(ctx).First(&inventory, id).Error; err != nil {
		return nil, err
	}
	return &inventory, nil
}

func (r *GormInventoryRepository) FindByVariantID(ctx context.Context, variantID uint) (*domain.Inventory, error) {
	var inventory domain.Inventory
	if err := r.db(ctx).Where("variant_id = ?", variantID).First(&inventory).Error; err != nil {
		return nil, err
	}
	return &inventory, nil
}

// FindByVariantIDForUpdate reads the row under an exclusive lock (SELECT ...
// FOR UPDATE). The lock serializes competing reservations for the same row
// until the surrounding transaction commits or rolls back.
func (r *GormInventoryRepository) FindByVariantIDForUpdate(ctx context.Context, variantID uint) (*domain.Inventory, error) {
	var inventory domain.Inventory
	err := r.db(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("variant_id = ?", variantID).
		First(&inventory).Error
	if err != nil {
		return nil, err
	}
	return &inventory, nil
}

// FindBySupplierAndProductForUpdate is the fallback lookup for suppliers
// that stock at product rather than variant granularity, also locking.
// Product-level rows carry variant_id = 0; rows belonging to sibling
// variants must never satisfy this lookup.
func (r *GormInventoryRepository) FindBySupplierAndProductForUpdate(ctx context.Context, supplierID, productID uint) (*domain.Inventory, error) {
	var inventory domain.Inventory
	err := r.db(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("supplier_id = ? AND product_id = ? AND variant_id = 0", supplierID, productID).
		First(&inventory).Error
	if err != nil {
		return nil, err
	}
	return &inventory, nil
}

func (r *GormInventoryRepository) FindAll(ctx context.Context, limit, offset int) ([]domain.Inventory, error) {
	var inventories []domain.Inventory
	err := r.db(ctx).Limit(limit).Offset(offset).Find(&inventories).Error
	return inventories, err
}

func (r *GormInventoryRepository) FindBelowReorderLevel(ctx context.Context) ([]domain.Inventory, error) {
	var inventories []domain.Inventory
	err := r.db(ctx).
		Where("available_quantity <= reorder_level AND status <> ?", domain.StatusDiscontinued).
		Find(&inventories).Error
	return inventories, err
}

func (r *GormInventoryRepository) Save(ctx context.Context, inventory *domain.Inventory) error {
	return r.db(ctx).Save(inventory).Error
}
