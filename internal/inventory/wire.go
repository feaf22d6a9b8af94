//go:build wireinject
// +build wireinject

package inventory

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tradehub/b2b-marketplace/internal/inventory/delivery/http"
	"github.com/tradehub/b2b-marketplace/internal/inventory/domain"
	"github.com/tradehub/b2b-marketplace/internal/inventory/repository"
	"github.com/tradehub/b2b-marketplace/internal/inventory/usecase/command"
	"github.com/tradehub/b2b-marketplace/internal/inventory/usecase/query"
	"github.com/tradehub/b2b-marketplace/pkg/database"
)

func ProvideInventoryRepository(db *gorm.DB) domain.InventoryRepository {
	return repository.NewTracingInventoryRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideInventoryRepository,
)

var HandlerSet = wire.NewSet(
	command.NewCreateStockHandler,
	command.NewRestockHandler,
	command.NewDiscontinueHandler,
	query.NewGetInventoryHandler,
	query.NewListInventoryHandler,
	query.NewLowStockReportHandler,
)

// InitializeHTTPHandler initializes the inventory HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, transactor database.Transactor) (*http.InventoryHandler, error) {
	wire.Build(
		RepositorySet,
		HandlerSet,
		http.NewInventoryHandler,
	)
	return nil, nil
}
