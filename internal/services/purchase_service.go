package services

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"

	"sitesmith/internal/models/db_models"
	"sitesmith/internal/models/response_models"
	"sitesmith/internal/repositories"
	"sitesmith/pkg/utils"
)

type PurchaseServiceInterface interface {
	PurchasePackage(ctx context.Context, accountID uuid.UUID, packageCode string) (*response_models.PurchaseResponse, error)
}

// PurchaseService records a package sale and grants its credits as one lot.
// There is no payment gateway in this deployment: the transaction is written
// as pending, its credit lot is granted, and only then is it settled as paid.
// A row never reads paid unless its credits actually landed.
type PurchaseService struct {
	catalog CatalogServiceInterface
	credits CreditServiceInterface
	txnRepo repositories.ITransactionRepository
	policy  CreditPolicy
	now     func() int64
}

func NewPurchaseService(
	catalog CatalogServiceInterface,
	credits CreditServiceInterface,
	txnRepo repositories.ITransactionRepository,
	policy CreditPolicy,
) PurchaseServiceInterface {
	return &PurchaseService{
		catalog: catalog,
		credits: credits,
		txnRepo: txnRepo,
		policy:  policy,
		now:     utils.NowUnixSeconds,
	}
}

func (p *PurchaseService) PurchasePackage(ctx context.Context, accountID uuid.UUID, packageCode string) (*response_models.PurchaseResponse, error) {

	pkg, err := p.catalog.GetPackageByCode(ctx, packageCode)
	if err != nil {
		return nil, err
	}

	granted := EffectiveCredits(pkg.CreditAmount, pkg.BonusPct)
	now := p.now()

	// sale snapshot survives later catalog edits
	meta, _ := json.Marshal(map[string]any{
		"package_code": pkg.Code,
		"base_credits": pkg.CreditAmount,
		"bonus_pct":    pkg.BonusPct,
	})

	txn := &db_models.Transaction{
		AccountID:      accountID,
		PackageID:      pkg.ID,
		AmountMinor:    pkg.PriceMinor,
		Currency:       pkg.Currency,
		Status:         db_models.TxnStatusPending,
		CreditsGranted: granted,
		Metadata:       meta,
	}

	if err := p.txnRepo.Insert(ctx, txn); err != nil {
		log.Printf("Purchase insert failed for account %s: %v", accountID, err)
		return nil, utils.ErrPersistenceUnavailable
	}

	validity := int(p.policy.ValidityDaysFor(*pkg))
	lot, err := p.credits.Grant(ctx, accountID, granted, now, validity, &txn.ID)
	if err != nil {
		// the row stays pending: it never claims credits it did not deliver
		return nil, err
	}

	if err := p.txnRepo.MarkPaid(ctx, txn.ID, now); err != nil {
		// credits are already spendable; the pending row is reconciled out of band
		log.Printf("Purchase %s settled but could not be marked paid: %v", txn.ID, err)
	} else {
		txn.Status = db_models.TxnStatusPaid
		txn.PaidAt = &now
	}

	snap, err := p.credits.CurrentBalance(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return &response_models.PurchaseResponse{
		TransactionID:  txn.ID,
		PackageCode:    pkg.Code,
		CreditsGranted: granted,
		AmountMinor:    pkg.PriceMinor,
		Currency:       pkg.Currency,
		ExpiresAt:      lot.ExpiresAt,
		NewBalance:     snap.Remaining,
	}, nil
}
