package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tradehub/b2b-marketplace/internal/partner/domain"
	"github.com/tradehub/b2b-marketplace/pkg/database"
)

type GormRetailerRepository struct {
	base *gorm.DB
}

func NewGormRetailerRepository(db *gorm.DB) *GormRetailerRepository {
	return &GormRetailerRepository{base: db}
}

func (r *GormRetailerRepository) AutoMigrate() error {
	return r.base.AutoMigrate(&domain.Retailer{}, &domain.Supplier{})
}

func (r *GormRetailerRepository) db(ctx context.Context) *gorm.DB {
	return database.FromContext(ctx, r.base)
}

func (r *GormRetailerRepository) Create(ctx context.Context, retailer *domain.Retailer) error {
	return r.db(ctx).Create(retailer).Error
}

func (r *GormRetailerRepository) FindByID(ctx context.Context, id uint) (*domain.Retailer, error) {
	var retailer domain.Retailer
	if err := r.db(ctx).First(&retailer, id).Error; err != nil {
		return nil, err
	}
	return &retailer, nil
}

func (r *GormRetailerRepository) FindByEmail(ctx context.Context, email string) (*domain.Retailer, error) {
	var retailer domain.Retailer
	if err := r.db(ctx).Where("email = ?", email).First(&retailer).Error; err != nil {
		return nil, err
	}
	return &retailer, nil
}

func (r *GormRetailerRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db(ctx).Model(&domain.Retailer{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

type GormSupplierRepository struct {
	base *gorm.DB
}

func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{base: db}
}

func (r *GormSupplierRepository) db(ctx context.Context) *gorm.DB {
	return database.FromContext(ctx, r.base)
}

func (r *GormSupplierRepository) Create(ctx context.Context, supplier *domain.Supplier) error {
	return r.db(ctx).Create(supplier).Error
}

func (r *GormSupplierRepository) FindByID(ctx context.Context, id uint) (*domain.Supplier, error) {
	var supplier domain.Supplier
	if err := r.db(ctx).First(&supplier, id).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *GormSupplierRepository) FindByEmail(ctx context.Context, email string) (*domain.Supplier, error) {
	var supplier domain.Supplier
	if err := r.db(ctx).Where("email = ?", email).First(&supplier).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *GormSupplierRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db(ctx).Model(&domain.Supplier{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
