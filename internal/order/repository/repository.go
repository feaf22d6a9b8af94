package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tradehub/b2b-marketplace/internal/order/domain"
	"github.com/tradehub/b2b-marketplace/pkg/database"
)

type GormOrderRepository struct {
	base *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{base: db}
}

func (r *GormOrderRepository) AutoMigrate() error {
	return r.base.AutoMigrate(&domain.Order{}, &domain.OrderItem{})
}

func (r *GormOrderRepository) db(ctx context.Context) *gorm.DB {
	return database.FromContext(ctx, r.base)
}

// Create persists a new order together with its items
func (r *GormOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	return r.db(ctx).Create(order).Error
}

// Save persists changes to an existing order and its items
func (r *GormOrderRepository) Save(ctx context.Context, order *domain.Order) error {
	return r.db(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(order).Error
}

func (r *GormOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	var order domain.Order
	err := r.db(ctx).Preload("Items").First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	var order domain.Order
	err := r.db(ctx).Preload("Items").Where("order_number = ?", orderNumber).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormOrderRepository) ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error) {
	var count int64
	err := r.db(ctx).Model(&domain.Order{}).Where("order_number = ?", orderNumber).Count(&count).Error
	return count > 0, err
}

func (r *GormOrderRepository) FindByRetailerID(ctx context.Context, retailerID uint, limit, offset int) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.db(ctx).
		Preload("Items").
		Where("retailer_id = ?", retailerID).
		Order("order_date DESC").
		Limit(limit).Offset(offset).
		Find(&orders).Error
	return orders, err
}

func (r *GormOrderRepository) FindAll(ctx context.Context, limit, offset int) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.db(ctx).
		Preload("Items").
		Order("order_date DESC").
		Limit(limit).Offset(offset).
		Find(&orders).Error
	return orders, err
}
