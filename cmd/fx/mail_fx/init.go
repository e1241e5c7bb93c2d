package mail_fx

import (
	"log"

	"go.uber.org/fx"

	"sitesmith/internal/models/db_models"
	"sitesmith/internal/services"
)

var Module = fx.Provide(
	provideMailService)

func provideMailService() services.IMailService {
	mail, err := services.NewSMTPMailService(services.LoadSMTPConfig())
	if err != nil {
		log.Printf("SMTP not configured, expiry warnings disabled: %v", err)
		return noopMail{}
	}
	return mail
}

type noopMail struct{}

func (noopMail) SendExpiringCreditsWarning(to, fullName string, lots []db_models.CreditLot) error {
	return nil
}
