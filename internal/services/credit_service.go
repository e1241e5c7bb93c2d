package services

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"

	"sitesmith/internal/models/db_models"
	"sitesmith/internal/repositories"
	"sitesmith/pkg/utils"
)

// CreditServiceInterface is the balance tracker: the single authority on how
// many credits an account can spend. Per-account grant/debit calls are
// linearizable; see LedgerRepository for the locking contract.
type CreditServiceInterface interface {
	Grant(ctx context.Context, accountID uuid.UUID, amount int64, grantedAt int64, validForDays int, txnID *uuid.UUID) (*db_models.CreditLot, error)
	// Debit never drives the balance negative: a shortfall returns
	// *utils.InsufficientBalanceError and leaves the ledger untouched.
	Debit(ctx context.Context, accountID uuid.UUID, amount int64) (int64, error)
	CurrentBalance(ctx context.Context, accountID uuid.UUID) (repositories.BalanceSnapshot, error)
	ExpiringWithin(ctx context.Context, accountID uuid.UUID, windowDays int) ([]db_models.CreditLot, error)
	RecordUsage(ctx context.Context, rec *db_models.UsageRecord) error
	UsageHistory(ctx context.Context, accountID uuid.UUID, limit int) ([]db_models.UsageRecord, error)
}

type CreditService struct {
	ledger repositories.LedgerRepository
	policy CreditPolicy
	now    func() int64
}

func NewCreditService(ledger repositories.LedgerRepository, policy CreditPolicy) CreditServiceInterface {
	return &CreditService{
		ledger: ledger,
		policy: policy,
		now:    utils.NowUnixSeconds,
	}
}

// NewCreditServiceWithClock pins the clock, for deterministic expiry tests.
func NewCreditServiceWithClock(ledger repositories.LedgerRepository, policy CreditPolicy, now func() int64) CreditServiceInterface {
	return &CreditService{
		ledger: ledger,
		policy: policy,
		now:    now,
	}
}

func (s *CreditService) Grant(ctx context.Context, accountID uuid.UUID, amount int64, grantedAt int64, validForDays int, txnID *uuid.UUID) (*db_models.CreditLot, error) {
	if amount <= 0 {
		return nil, utils.ErrInvalidGrant
	}
	if grantedAt <= 0 {
		grantedAt = s.now()
	}
	if validForDays <= 0 {
		validForDays = s.policy.DefaultValidityDays
	}

	lot := &db_models.CreditLot{
		AccountID:     accountID,
		Amount:        amount,
		Remaining:     amount,
		GrantedAt:     grantedAt,
		ExpiresAt:     utils.AddDays(grantedAt, validForDays),
		TransactionID: txnID,
	}

	if err := s.ledger.InsertLot(ctx, lot); err != nil {
		log.Printf("Grant failed for account %s: %v", accountID, err)
		return nil, utils.ErrPersistenceUnavailable
	}

	return lot, nil
}

func (s *CreditService) Debit(ctx context.Context, accountID uuid.UUID, amount int64) (int64, error) {
	if amount == 0 {
		snap, err := s.CurrentBalance(ctx, accountID)
		return snap.Remaining, err
	}
	if amount < 0 {
		return 0, utils.ErrInvalidDebit
	}

	result, err := s.ledger.DebitFIFO(ctx, accountID, amount, s.now())
	s.logPruned(accountID, result.Pruned)

	if err != nil {
		if errors.Is(err, repositories.ErrInsufficientLotBalance) {
			return result.Available, &utils.InsufficientBalanceError{
				Required:  amount,
				Available: result.Available,
			}
		}
		log.Printf("Debit failed for account %s: %v", accountID, err)
		return 0, utils.ErrPersistenceUnavailable
	}

	return result.Remaining, nil
}

func (s *CreditService) CurrentBalance(ctx context.Context, accountID uuid.UUID) (repositories.BalanceSnapshot, error) {
	snap, err := s.ledger.Snapshot(ctx, accountID, s.now())
	if err != nil {
		log.Printf("Balance read failed for account %s: %v", accountID, err)
		return repositories.BalanceSnapshot{}, utils.ErrPersistenceUnavailable
	}

	s.logPruned(accountID, snap.Pruned)
	return snap, nil
}

func (s *CreditService) ExpiringWithin(ctx context.Context, accountID uuid.UUID, windowDays int) ([]db_models.CreditLot, error) {
	if windowDays <= 0 {
		windowDays = s.policy.WarnWindowDays
	}

	lots, err := s.ledger.ExpiringWithin(ctx, accountID, s.now(), windowDays)
	if err != nil {
		return nil, utils.ErrPersistenceUnavailable
	}

	return lots, nil
}

func (s *CreditService) RecordUsage(ctx context.Context, rec *db_models.UsageRecord) error {
	if err := s.ledger.InsertUsage(ctx, rec); err != nil {
		return utils.ErrPersistenceUnavailable
	}
	return nil
}

func (s *CreditService) UsageHistory(ctx context.Context, accountID uuid.UUID, limit int) ([]db_models.UsageRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	records, err := s.ledger.ListUsage(ctx, accountID, limit)
	if err != nil {
		return nil, utils.ErrPersistenceUnavailable
	}

	return records, nil
}

// pruning is informational, never an error: the lot was already unspendable
func (s *CreditService) logPruned(accountID uuid.UUID, pruned []db_models.CreditLot) {
	for i := range pruned {
		log.Printf("Pruned expired lot %s for account %s (%d credits, expired %s)",
			pruned[i].ID, accountID, pruned[i].Remaining, utils.FormatRFC3339(pruned[i].ExpiresAt))
	}
}
