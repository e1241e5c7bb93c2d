package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitesmith/internal/models/db_models"
	"sitesmith/internal/repositories"
	"sitesmith/pkg/utils"
)

func newGateFixture(now int64, costs map[db_models.ActionKind]int64) (GateServiceInterface, CreditServiceInterface) {
	policy := CreditPolicy{DefaultValidityDays: 365, WarnWindowDays: 30}
	credits := NewCreditServiceWithClock(repositories.NewMemoryLedgerRepository(), policy, func() int64 { return now })
	return NewGateService(credits, costs), credits
}

func TestAuthorizeUnknownKindFails(t *testing.T) {
	gate, credits := newGateFixture(1_000_000, nil)
	accountID := uuid.New()
	ctx := context.Background()

	_, err := credits.Grant(ctx, accountID, 100, 0, 0, nil)
	require.NoError(t, err)

	_, err = gate.Authorize(ctx, accountID, db_models.ActionKind("mystery-action"))
	assert.ErrorIs(t, err, utils.ErrUnknownActionKind)

	// an unknown kind must not cost anything
	snap, err := credits.CurrentBalance(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), snap.Remaining)
}

func TestAuthorizeZeroCostAlwaysSucceeds(t *testing.T) {
	gate, _ := newGateFixture(1_000_000, nil)
	accountID := uuid.New() // zero balance

	result, err := gate.Authorize(context.Background(), accountID, db_models.ActionPreview)
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.Cost)
	assert.Equal(t, int64(0), result.Remaining)
}

func TestAuthorizeDeniesWithoutMutation(t *testing.T) {
	costs := map[db_models.ActionKind]int64{
		db_models.ActionAIBuild: 300,
	}
	gate, credits := newGateFixture(1_000_000, costs)
	accountID := uuid.New()
	ctx := context.Background()

	_, err := credits.Grant(ctx, accountID, 250, 0, 0, nil)
	require.NoError(t, err)

	_, err = gate.Authorize(ctx, accountID, db_models.ActionAIBuild)
	ib, ok := utils.IsInsufficientBalance(err)
	require.True(t, ok)
	assert.Equal(t, int64(300), ib.Required)
	assert.Equal(t, int64(250), ib.Available)

	snap, err := credits.CurrentBalance(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, int64(250), snap.Remaining)
}

func TestAuthorizeDebitsAndRecordsUsage(t *testing.T) {
	gate, credits := newGateFixture(1_000_000, nil)
	accountID := uuid.New()
	ctx := context.Background()

	_, err := credits.Grant(ctx, accountID, 100, 0, 0, nil)
	require.NoError(t, err)

	result, err := gate.Authorize(ctx, accountID, db_models.ActionAIBuild)
	require.NoError(t, err)
	assert.Equal(t, int64(10), result.Cost)
	assert.Equal(t, int64(90), result.Remaining)

	history, err := credits.UsageHistory(ctx, accountID, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, db_models.ActionAIBuild, history[0].Kind)
	assert.Equal(t, int64(10), history[0].Cost)
	assert.Equal(t, int64(90), history[0].BalanceAfter)
}

type stubTxnRepo struct {
	inserted []*db_models.Transaction
}

func (s *stubTxnRepo) Insert(ctx context.Context, txn *db_models.Transaction) error {
	if txn.ID == uuid.Nil {
		txn.ID = uuid.New()
	}
	s.inserted = append(s.inserted, txn)
	return nil
}

func (s *stubTxnRepo) MarkPaid(ctx context.Context, txnID uuid.UUID, paidAt int64) error {
	for _, txn := range s.inserted {
		if txn.ID == txnID && txn.Status == db_models.TxnStatusPending {
			txn.Status = db_models.TxnStatusPaid
			txn.PaidAt = &paidAt
		}
	}
	return nil
}

func (s *stubTxnRepo) ListByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]db_models.Transaction, error) {
	return nil, nil
}

// full journey: empty balance, buy the popular package, spend it down, get
// denied once it cannot cover the next action
func TestPurchaseThenMeteredSpendScenario(t *testing.T) {
	const now = 1_000_000
	policy := CreditPolicy{DefaultValidityDays: 365, WarnWindowDays: 30}
	credits := NewCreditServiceWithClock(repositories.NewMemoryLedgerRepository(), policy, func() int64 { return now })
	catalog := NewCatalogService(&stubPackageRepo{pkgs: testPackages()}, policy)
	purchases := NewPurchaseService(catalog, credits, &stubTxnRepo{}, policy)

	costs := map[db_models.ActionKind]int64{
		db_models.ActionAIBuild:      100,
		db_models.ActionPublishFirst: 300,
	}
	gate := NewGateService(credits, costs)

	accountID := uuid.New()
	ctx := context.Background()

	snap, err := credits.CurrentBalance(ctx, accountID)
	require.NoError(t, err)
	require.Equal(t, int64(0), snap.Remaining)

	receipt, err := purchases.PurchasePackage(ctx, accountID, "popular")
	require.NoError(t, err)
	assert.Equal(t, int64(550), receipt.CreditsGranted)
	assert.Equal(t, int64(550), receipt.NewBalance)

	for i := 0; i < 3; i++ {
		_, err := gate.Authorize(ctx, accountID, db_models.ActionAIBuild)
		require.NoError(t, err)
	}

	snap, err = credits.CurrentBalance(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, int64(250), snap.Remaining)

	_, err = gate.Authorize(ctx, accountID, db_models.ActionPublishFirst)
	ib, ok := utils.IsInsufficientBalance(err)
	require.True(t, ok)
	assert.Equal(t, int64(300), ib.Required)
	assert.Equal(t, int64(250), ib.Available)

	snap, err = credits.CurrentBalance(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, int64(250), snap.Remaining)
}

func TestDefaultActionCostsCoverAllKnownKinds(t *testing.T) {
	costs := DefaultActionCosts()
	for _, kind := range db_models.KnownActionKinds {
		_, ok := costs[kind]
		assert.True(t, ok, "missing cost for %s", kind)
	}
}
