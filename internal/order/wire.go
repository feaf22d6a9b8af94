//go:build wireinject
// +build wireinject

package order

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	catalogdomain "github.com/tradehub/b2b-marketplace/internal/catalog/domain"
	catalogrepo "github.com/tradehub/b2b-marketplace/internal/catalog/repository"
	inventorydomain "github.com/tradehub/b2b-marketplace/internal/inventory/domain"
	inventoryrepo "github.com/tradehub/b2b-marketplace/internal/inventory/repository"
	"github.com/tradehub/b2b-marketplace/internal/order/delivery/http"
	"github.com/tradehub/b2b-marketplace/internal/order/domain"
	"github.com/tradehub/b2b-marketplace/internal/order/repository"
	"github.com/tradehub/b2b-marketplace/internal/order/usecase/command"
	"github.com/tradehub/b2b-marketplace/internal/order/usecase/query"
	partnerdomain "github.com/tradehub/b2b-marketplace/internal/partner/domain"
	partnerrepo "github.com/tradehub/b2b-marketplace/internal/partner/repository"
	"github.com/tradehub/b2b-marketplace/pkg/database"
)

// Repository providers

func ProvideOrderRepository(db *gorm.DB) domain.OrderRepository {
	return repository.NewGormOrderRepository(db)
}

func ProvideRetailerRepository(db *gorm.DB) partnerdomain.RetailerRepository {
	return partnerrepo.NewTracingRetailerRepository(db)
}

func ProvideSupplierRepository(db *gorm.DB) partnerdomain.SupplierRepository {
	return partnerrepo.NewTracingSupplierRepository(db)
}

func ProvideProductRepository(db *gorm.DB) catalogdomain.ProductRepository {
	return catalogrepo.NewGormProductRepository(db)
}

func ProvideVariantRepository(db *gorm.DB) catalogdomain.VariantRepository {
	return catalogrepo.NewGormVariantRepository(db)
}

func ProvideInventoryRepository(db *gorm.DB) inventorydomain.InventoryRepository {
	return inventoryrepo.NewTracingInventoryRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideOrderRepository,
	ProvideRetailerRepository,
	ProvideSupplierRepository,
	ProvideProductRepository,
	ProvideVariantRepository,
	ProvideInventoryRepository,
)

var HandlerSet = wire.NewSet(
	command.NewPlaceOrderHandler,
	command.NewCancelOrderHandler,
	command.NewTransitionOrderHandler,
	query.NewGetOrderHandler,
	query.NewListOrdersHandler,
)

// InitializeHTTPHandler initializes the order HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, transactor database.Transactor, events command.EventPublisher) (*http.OrderHandler, error) {
	wire.Build(
		RepositorySet,
		HandlerSet,
		http.NewOrderHandler,
	)
	return nil, nil
}
