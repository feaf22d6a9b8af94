//go:build wireinject
// +build wireinject

package catalog

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tradehub/b2b-marketplace/internal/catalog/delivery/http"
	"github.com/tradehub/b2b-marketplace/internal/catalog/domain"
	"github.com/tradehub/b2b-marketplace/internal/catalog/repository"
	"github.com/tradehub/b2b-marketplace/internal/catalog/usecase/command"
	"github.com/tradehub/b2b-marketplace/internal/catalog/usecase/query"
)

func ProvideProductRepository(db *gorm.DB) domain.ProductRepository {
	return repository.NewGormProductRepository(db)
}

func ProvideVariantRepository(db *gorm.DB) domain.VariantRepository {
	return repository.NewGormVariantRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideProductRepository,
	ProvideVariantRepository,
)

var HandlerSet = wire.NewSet(
	command.NewCreateProductHandler,
	command.NewAddVariantHandler,
	command.NewSetPriceTiersHandler,
	query.NewGetProductHandler,
	query.NewListProductsHandler,
)

// InitializeHTTPHandler initializes the catalog HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB) (*http.CatalogHandler, error) {
	wire.Build(
		RepositorySet,
		HandlerSet,
		http.NewCatalogHandler,
	)
	return nil, nil
}
