package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitesmith/internal/models/db_models"
	"sitesmith/internal/repositories"
	"sitesmith/pkg/utils"
)

// failingLedger errors on every operation, standing in for a credit store
// that is down.
type failingLedger struct {
	err error
}

func (f *failingLedger) InsertLot(ctx context.Context, lot *db_models.CreditLot) error {
	return f.err
}

func (f *failingLedger) DebitFIFO(ctx context.Context, accountID uuid.UUID, amount int64, now int64) (repositories.DebitResult, error) {
	return repositories.DebitResult{}, f.err
}

func (f *failingLedger) Snapshot(ctx context.Context, accountID uuid.UUID, now int64) (repositories.BalanceSnapshot, error) {
	return repositories.BalanceSnapshot{}, f.err
}

func (f *failingLedger) ExpiringWithin(ctx context.Context, accountID uuid.UUID, now int64, windowDays int) ([]db_models.CreditLot, error) {
	return nil, f.err
}

func (f *failingLedger) InsertUsage(ctx context.Context, rec *db_models.UsageRecord) error {
	return f.err
}

func (f *failingLedger) ListUsage(ctx context.Context, accountID uuid.UUID, limit int) ([]db_models.UsageRecord, error) {
	return nil, f.err
}

func TestPurchaseSettlesTransactionAsPaid(t *testing.T) {
	policy := CreditPolicy{DefaultValidityDays: 365, WarnWindowDays: 30}
	credits := NewCreditService(repositories.NewMemoryLedgerRepository(), policy)
	catalog := NewCatalogService(&stubPackageRepo{pkgs: testPackages()}, policy)
	txns := &stubTxnRepo{}
	purchases := NewPurchaseService(catalog, credits, txns, policy)

	accountID := uuid.New()
	receipt, err := purchases.PurchasePackage(context.Background(), accountID, "popular")
	require.NoError(t, err)
	assert.Equal(t, int64(550), receipt.CreditsGranted)

	require.Len(t, txns.inserted, 1)
	txn := txns.inserted[0]
	assert.Equal(t, db_models.TxnStatusPaid, txn.Status)
	require.NotNil(t, txn.PaidAt)
}

// A sale whose lot insert fails must not leave a paid transaction behind:
// the row stays pending and the account balance stays untouched.
func TestPurchaseGrantFailureLeavesTransactionPending(t *testing.T) {
	policy := CreditPolicy{DefaultValidityDays: 365, WarnWindowDays: 30}
	credits := NewCreditService(&failingLedger{err: errors.New("connection refused")}, policy)
	catalog := NewCatalogService(&stubPackageRepo{pkgs: testPackages()}, policy)
	txns := &stubTxnRepo{}
	purchases := NewPurchaseService(catalog, credits, txns, policy)

	accountID := uuid.New()
	_, err := purchases.PurchasePackage(context.Background(), accountID, "popular")
	require.ErrorIs(t, err, utils.ErrPersistenceUnavailable)

	require.Len(t, txns.inserted, 1)
	txn := txns.inserted[0]
	assert.Equal(t, db_models.TxnStatusPending, txn.Status)
	assert.Nil(t, txn.PaidAt)
}

func TestPurchaseInsertFailureGrantsNothing(t *testing.T) {
	const now = 1_000_000
	policy := CreditPolicy{DefaultValidityDays: 365, WarnWindowDays: 30}
	ledger := repositories.NewMemoryLedgerRepository()
	credits := NewCreditServiceWithClock(ledger, policy, func() int64 { return now })
	catalog := NewCatalogService(&stubPackageRepo{pkgs: testPackages()}, policy)
	purchases := NewPurchaseService(catalog, credits, &failingTxnRepo{}, policy)

	accountID := uuid.New()
	_, err := purchases.PurchasePackage(context.Background(), accountID, "starter")
	require.ErrorIs(t, err, utils.ErrPersistenceUnavailable)

	snap, err := credits.CurrentBalance(context.Background(), accountID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), snap.Remaining)
}

type failingTxnRepo struct{}

func (f *failingTxnRepo) Insert(ctx context.Context, txn *db_models.Transaction) error {
	return errors.New("connection refused")
}

func (f *failingTxnRepo) MarkPaid(ctx context.Context, txnID uuid.UUID, paidAt int64) error {
	return errors.New("connection refused")
}

func (f *failingTxnRepo) ListByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]db_models.Transaction, error) {
	return nil, errors.New("connection refused")
}
