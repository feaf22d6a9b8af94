//go:build wireinject
// +build wireinject

package partner

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tradehub/b2b-marketplace/internal/partner/delivery/http"
	"github.com/tradehub/b2b-marketplace/internal/partner/domain"
	"github.com/tradehub/b2b-marketplace/internal/partner/repository"
	"github.com/tradehub/b2b-marketplace/internal/partner/usecase/command"
)

func ProvideRetailerRepository(db *gorm.DB) domain.RetailerRepository {
	return repository.NewTracingRetailerRepository(db)
}

func ProvideSupplierRepository(db *gorm.DB) domain.SupplierRepository {
	return repository.NewTracingSupplierRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideRetailerRepository,
	ProvideSupplierRepository,
)

var HandlerSet = wire.NewSet(
	command.NewRegisterPartnerHandler,
	command.NewLoginPartnerHandler,
)

// InitializeHTTPHandler initializes the partner HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB) (*http.PartnerHandler, error) {
	wire.Build(
		RepositorySet,
		HandlerSet,
		http.NewPartnerHandler,
	)
	return nil, nil
}
