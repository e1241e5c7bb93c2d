package catalog_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"sitesmith/internal/repositories"
	"sitesmith/internal/services"
)

var Module = fx.Provide(
	providePolicy, providePackageRepo, provideCatalogService)

func providePolicy() services.CreditPolicy {
	return services.LoadCreditPolicy()
}

func providePackageRepo(db *gorm.DB) repositories.IPackageRepository {
	return repositories.NewPackageRepository(db)
}

func provideCatalogService(packageRepo repositories.IPackageRepository, policy services.CreditPolicy) services.CatalogServiceInterface {
	return services.NewCatalogService(packageRepo, policy)
}
