package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitesmith/internal/models/db_models"
	"sitesmith/internal/repositories"
)

type stubAccountRepo struct {
	account *db_models.Account
}

func (s *stubAccountRepo) InsertTx(account *db_models.Account, ctx context.Context) error {
	return nil
}

func (s *stubAccountRepo) FindById(ctx context.Context, id string) (*db_models.Account, error) {
	if s.account != nil && s.account.ID.String() == id {
		return s.account, nil
	}
	return nil, nil
}

func (s *stubAccountRepo) FindByEmail(ctx context.Context, email string) (*db_models.Account, error) {
	return nil, nil
}

type captureMail struct {
	to   string
	lots []db_models.CreditLot
	sent int
}

func (m *captureMail) SendExpiringCreditsWarning(to, fullName string, lots []db_models.CreditLot) error {
	m.to = to
	m.lots = lots
	m.sent++
	return nil
}

func TestNotifyExpiringCreditsMailsFlaggedLots(t *testing.T) {
	const now = 1_000_000
	day := int64(24 * 60 * 60)
	policy := CreditPolicy{DefaultValidityDays: 365, WarnWindowDays: 30}

	ledger := repositories.NewMemoryLedgerRepository()
	credits := NewCreditServiceWithClock(ledger, policy, func() int64 { return now })

	accountID := uuid.New()
	account := &db_models.Account{Email: "owner@example.com", FullName: "Site Owner"}
	account.ID = accountID

	grantLotExpiring(t, ledger, accountID, 40, now+10*day)
	grantLotExpiring(t, ledger, accountID, 60, now+300*day) // outside the warn window

	mail := &captureMail{}
	notifier := NewNotifierService(&stubAccountRepo{account: account}, credits, mail, policy)

	count, err := notifier.NotifyExpiringCredits(context.Background(), accountID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, 1, mail.sent)
	assert.Equal(t, "owner@example.com", mail.to)
	require.Len(t, mail.lots, 1)
	assert.Equal(t, int64(40), mail.lots[0].Remaining)
}

func TestNotifyExpiringCreditsNoLotsSendsNothing(t *testing.T) {
	const now = 1_000_000
	policy := CreditPolicy{DefaultValidityDays: 365, WarnWindowDays: 30}
	credits := NewCreditServiceWithClock(repositories.NewMemoryLedgerRepository(), policy, func() int64 { return now })

	accountID := uuid.New()
	account := &db_models.Account{Email: "owner@example.com"}
	account.ID = accountID

	mail := &captureMail{}
	notifier := NewNotifierService(&stubAccountRepo{account: account}, credits, mail, policy)

	count, err := notifier.NotifyExpiringCredits(context.Background(), accountID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Equal(t, 0, mail.sent)
}
