package repositories

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"sitesmith/internal/models/db_models"
	mem "sitesmith/pkg/memcache"
)

// memoryLedgerRepository keeps the ledger in process memory. It backs local
// development without Postgres and the service tests; semantics mirror the
// gorm implementation, with per-account mutexes standing in for row locks.
type memoryLedgerRepository struct {
	locks mem.AccountLockStore

	mu    sync.RWMutex
	lots  map[uuid.UUID][]*db_models.CreditLot
	usage map[uuid.UUID][]db_models.UsageRecord
}

func NewMemoryLedgerRepository() LedgerRepository {
	return &memoryLedgerRepository{
		locks: mem.NewAccountLocks(),
		lots:  make(map[uuid.UUID][]*db_models.CreditLot),
		usage: make(map[uuid.UUID][]db_models.UsageRecord),
	}
}

func (r *memoryLedgerRepository) InsertLot(ctx context.Context, lot *db_models.CreditLot) error {
	unlock := r.locks.Lock(lot.AccountID)
	defer unlock()

	if lot.ID == uuid.Nil {
		lot.ID = uuid.New()
	}

	stored := *lot
	r.mu.Lock()
	r.lots[lot.AccountID] = append(r.lots[lot.AccountID], &stored)
	r.mu.Unlock()
	return nil
}

func (r *memoryLedgerRepository) accountLots(accountID uuid.UUID) []*db_models.CreditLot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lots[accountID]
}

func (r *memoryLedgerRepository) DebitFIFO(ctx context.Context, accountID uuid.UUID, amount int64, now int64) (DebitResult, error) {
	unlock := r.locks.Lock(accountID)
	defer unlock()

	var result DebitResult

	var live []*db_models.CreditLot
	for _, lot := range r.accountLots(accountID) {
		if lot.Remaining == 0 {
			continue
		}
		if lot.IsExpired(now) {
			result.Pruned = append(result.Pruned, *lot)
			lot.Remaining = 0
			continue
		}
		live = append(live, lot)
	}

	var available int64
	for _, lot := range live {
		available += lot.Remaining
	}
	result.Available = available

	if amount > available {
		return result, ErrInsufficientLotBalance
	}

	consumeFIFO(live, amount)
	result.Remaining = available - amount
	return result, nil
}

func (r *memoryLedgerRepository) Snapshot(ctx context.Context, accountID uuid.UUID, now int64) (BalanceSnapshot, error) {
	unlock := r.locks.Lock(accountID)
	defer unlock()

	var snap BalanceSnapshot
	for _, lot := range r.accountLots(accountID) {
		if lot.Remaining == 0 {
			continue
		}
		if lot.IsExpired(now) {
			snap.Pruned = append(snap.Pruned, *lot)
			lot.Remaining = 0
			continue
		}
		snap.Lots = append(snap.Lots, *lot)
		snap.Remaining += lot.Remaining
	}

	sort.SliceStable(snap.Lots, func(i, j int) bool {
		return snap.Lots[i].GrantedAt < snap.Lots[j].GrantedAt
	})
	return snap, nil
}

func (r *memoryLedgerRepository) ExpiringWithin(ctx context.Context, accountID uuid.UUID, now int64, windowDays int) ([]db_models.CreditLot, error) {
	unlock := r.locks.Lock(accountID)
	defer unlock()

	windowEnd := now + int64(windowDays)*24*60*60

	var expiring []db_models.CreditLot
	for _, lot := range r.accountLots(accountID) {
		if lot.Remaining > 0 && lot.ExpiresAt > now && lot.ExpiresAt <= windowEnd {
			expiring = append(expiring, *lot)
		}
	}

	sort.SliceStable(expiring, func(i, j int) bool {
		return expiring[i].ExpiresAt < expiring[j].ExpiresAt
	})
	return expiring, nil
}

func (r *memoryLedgerRepository) InsertUsage(ctx context.Context, rec *db_models.UsageRecord) error {
	unlock := r.locks.Lock(rec.AccountID)
	defer unlock()

	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	r.mu.Lock()
	r.usage[rec.AccountID] = append(r.usage[rec.AccountID], *rec)
	r.mu.Unlock()
	return nil
}

func (r *memoryLedgerRepository) ListUsage(ctx context.Context, accountID uuid.UUID, limit int) ([]db_models.UsageRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := r.usage[accountID]
	out := make([]db_models.UsageRecord, 0, len(records))
	// newest first
	for i := len(records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, records[i])
	}
	return out, nil
}
