package repositories

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"

	"sitesmith/internal/models/db_models"
)

// ErrInsufficientLotBalance signals a debit larger than the spendable
// remainder. The service layer turns it into the user-facing shortfall error.
var ErrInsufficientLotBalance = errors.New("insufficient lot balance")

type BalanceSnapshot struct {
	Remaining int64
	Lots      []db_models.CreditLot
	// lots zeroed by lazy expiry during this call, for notification only
	Pruned []db_models.CreditLot
}

type DebitResult struct {
	Remaining int64
	Available int64
	// lots whose expiry-zeroing actually persisted; an implementation that
	// rolls the prune back on shortfall leaves this empty
	Pruned []db_models.CreditLot
}

// LedgerRepository owns the per-account credit lots. Every operation is
// atomic with respect to other operations on the same account: the gorm
// implementation locks the account's rows inside a transaction, the
// in-memory implementation holds a per-account mutex. All operations prune
// expired lots before acting, so callers never observe spendable credits
// past their expiry instant.
type LedgerRepository interface {
	InsertLot(ctx context.Context, lot *db_models.CreditLot) error
	// DebitFIFO consumes amount from the oldest non-expired lots first.
	// No partial debit: on shortfall nothing changes and
	// ErrInsufficientLotBalance is returned with Available filled in.
	DebitFIFO(ctx context.Context, accountID uuid.UUID, amount int64, now int64) (DebitResult, error)
	Snapshot(ctx context.Context, accountID uuid.UUID, now int64) (BalanceSnapshot, error)
	ExpiringWithin(ctx context.Context, accountID uuid.UUID, now int64, windowDays int) ([]db_models.CreditLot, error)
	InsertUsage(ctx context.Context, rec *db_models.UsageRecord) error
	ListUsage(ctx context.Context, accountID uuid.UUID, limit int) ([]db_models.UsageRecord, error)
}

// sumRemaining totals the spendable remainder of non-expired lots.
func sumRemaining(lots []db_models.CreditLot, now int64) int64 {
	var total int64
	for i := range lots {
		if !lots[i].IsExpired(now) {
			total += lots[i].Remaining
		}
	}
	return total
}

// splitExpired partitions lots into live and newly-dead ones. A lot whose
// expiry equals now counts as expired.
func splitExpired(lots []db_models.CreditLot, now int64) (live, dead []db_models.CreditLot) {
	for i := range lots {
		if lots[i].IsExpired(now) {
			if lots[i].Remaining > 0 {
				dead = append(dead, lots[i])
			}
			continue
		}
		live = append(live, lots[i])
	}
	return live, dead
}

// consumeFIFO spends amount across lots ordered oldest grant first, mutating
// Remaining in place. Callers must have verified sufficiency beforehand.
func consumeFIFO(lots []*db_models.CreditLot, amount int64) {
	sort.SliceStable(lots, func(i, j int) bool {
		return lots[i].GrantedAt < lots[j].GrantedAt
	})
	for _, lot := range lots {
		if amount == 0 {
			return
		}
		take := lot.Remaining
		if take > amount {
			take = amount
		}
		lot.Remaining -= take
		amount -= take
	}
}
