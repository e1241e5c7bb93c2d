package credits_fx

import (
	"os"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"sitesmith/internal/repositories"
	"sitesmith/internal/services"
)

var Module = fx.Provide(
	provideLedgerRepo, provideCreditService, provideGateService, provideNotifierService)

func provideLedgerRepo(db *gorm.DB) repositories.LedgerRepository {
	// LEDGER_BACKEND=memory runs the ledger without Postgres (local dev)
	if os.Getenv("LEDGER_BACKEND") == "memory" {
		return repositories.NewMemoryLedgerRepository()
	}
	return repositories.NewLedgerRepository(db)
}

func provideCreditService(ledger repositories.LedgerRepository, policy services.CreditPolicy) services.CreditServiceInterface {
	return services.NewCreditService(ledger, policy)
}

func provideGateService(credits services.CreditServiceInterface) services.GateServiceInterface {
	return services.NewGateService(credits, nil)
}

func provideNotifierService(
	accountRepo repositories.AccountRepository,
	credits services.CreditServiceInterface,
	mail services.IMailService,
	policy services.CreditPolicy,
) services.NotifierServiceInterface {
	return services.NewNotifierService(accountRepo, credits, mail, policy)
}
