package services

import (
	"context"
	"log"

	"github.com/google/uuid"

	"sitesmith/internal/repositories"
	"sitesmith/pkg/utils"
)

type NotifierServiceInterface interface {
	// NotifyExpiringCredits mails the account a list of lots expiring inside
	// the configured warning window. Returns how many lots were flagged.
	NotifyExpiringCredits(ctx context.Context, accountID uuid.UUID) (int, error)
}

type NotifierService struct {
	accountRepo repositories.AccountRepository
	credits     CreditServiceInterface
	mail        IMailService
	policy      CreditPolicy
}

func NewNotifierService(
	accountRepo repositories.AccountRepository,
	credits CreditServiceInterface,
	mail IMailService,
	policy CreditPolicy,
) NotifierServiceInterface {
	return &NotifierService{
		accountRepo: accountRepo,
		credits:     credits,
		mail:        mail,
		policy:      policy,
	}
}

func (n *NotifierService) NotifyExpiringCredits(ctx context.Context, accountID uuid.UUID) (int, error) {

	account, err := n.accountRepo.FindById(ctx, accountID.String())
	if err != nil {
		return 0, utils.ErrDatabaseError
	}
	if account == nil {
		return 0, utils.ErrAccountNotFound
	}

	lots, err := n.credits.ExpiringWithin(ctx, accountID, n.policy.WarnWindowDays)
	if err != nil {
		return 0, err
	}
	if len(lots) == 0 {
		return 0, nil
	}

	if err := n.mail.SendExpiringCreditsWarning(account.Email, account.FullName, lots); err != nil {
		// the warning is advisory; a mail outage must not fail the caller
		log.Printf("Expiry warning mail failed for account %s: %v", accountID, err)
	}

	return len(lots), nil
}
