package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tradehub/b2b-marketplace/internal/catalog/domain"
	"github.com/tradehub/b2b-marketplace/pkg/database"
)

type GormProductRepository struct {
	base *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{base: db}
}

func (r *GormProductRepository) AutoMigrate() error {
	return r.base.AutoMigrate(&domain.Product{}, &domain.ProductVariant{}, &domain.PriceTier{})
}

func (r *GormProductRepository) db(ctx context.Context) *gorm.DB {
	return database.FromContext(ctx, r.base)
}

func (r *GormProductRepository) Create(ctx context.Context, product *domain.Product) error {
	return r.db(ctx).Create(product).Error
}

func (r *GormProductRepository) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	var product domain.Product
	err := r.db(ctx).
		Preload("PriceTiers", func(db *gorm.DB) *gorm.DB {
			return db.Order("min_quantity ASC")
		}).
		First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormProductRepository) FindBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	var product domain.Product
	err := r.db(ctx).
		Preload("PriceTiers", func(db *gorm.DB) *gorm.DB {
			return db.Order("min_quantity ASC")
		}).
		Where("sku = ?", sku).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormProductRepository) FindBySupplierID(ctx context.Context, supplierID uint, limit, offset int) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db(ctx).
		Where("supplier_id = ?", supplierID).
		Limit(limit).Offset(offset).
		Find(&products).Error
	return products, err
}

func (r *GormProductRepository) FindAll(ctx context.Context, limit, offset int) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db(ctx).Limit(limit).Offset(offset).Find(&products).Error
	return products, err
}

func (r *GormProductRepository) Update(ctx context.Context, product *domain.Product) error {
	return r.db(ctx).Save(product).Error
}

// ReplaceTiers swaps a product's tier set atomically
func (r *GormProductRepository) ReplaceTiers(ctx context.Context, productID uint, tiers []domain.PriceTier) error {
	return r.db(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&domain.PriceTier{}).Error; err != nil {
			return err
		}
		for i := range tiers {
			tiers[i].ProductID = productID
		}
		if len(tiers) == 0 {
			return nil
		}
		return tx.Create(&tiers).Error
	})
}

type GormVariantRepository struct {
	base *gorm.DB
}

func NewGormVariantRepository(db *gorm.DB) *GormVariantRepository {
	return &GormVariantRepository{base: db}
}

func (r *GormVariantRepository) db(ctx context.Context) *gorm.DB {
	return database.FromContext(ctx, r.base)
}

func (r *GormVariantRepository) Create(ctx context.Context, variant *domain.ProductVariant) error {
	return r.db(ctx).Create(variant).Error
}

func (r *GormVariantRepository) FindByID(ctx context.Context, id uint) (*domain.ProductVariant, error) {
	var variant domain.ProductVariant
	if err := r.db(ctx).First(&variant, id).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *GormVariantRepository) FindBySKU(ctx context.Context, sku string) (*domain.ProductVariant, error) {
	var variant domain.ProductVariant
	if err := r.db(ctx).Where("sku = ?", sku).First(&variant).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *GormVariantRepository) FindByProductID(ctx context.Context, productID uint) ([]domain.ProductVariant, error) {
	var variants []domain.ProductVariant
	err := r.db(ctx).Where("product_id = ?", productID).Find(&variants).Error
	return variants, err
}
