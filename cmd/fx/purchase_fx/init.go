package purchase_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"sitesmith/internal/repositories"
	"sitesmith/internal/services"
)

var Module = fx.Provide(
	provideTransactionRepo, providePurchaseService)

func provideTransactionRepo(db *gorm.DB) repositories.ITransactionRepository {
	return repositories.NewTransactionRepository(db)
}

func providePurchaseService(
	catalog services.CatalogServiceInterface,
	credits services.CreditServiceInterface,
	txnRepo repositories.ITransactionRepository,
	policy services.CreditPolicy,
) services.PurchaseServiceInterface {
	return services.NewPurchaseService(catalog, credits, txnRepo, policy)
}
