package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sitesmith/internal/models/db_models"
)

type gormLedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &gormLedgerRepository{db: db}
}

func (r *gormLedgerRepository) InsertLot(ctx context.Context, lot *db_models.CreditLot) error {
	return r.db.WithContext(ctx).Create(lot).Error
}

// lockedLots loads the account's unspent lots under FOR UPDATE so concurrent
// debits against the same account serialize on the row locks.
func lockedLots(tx *gorm.DB, accountID uuid.UUID) ([]db_models.CreditLot, error) {
	var lots []db_models.CreditLot
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("account_id = ? AND remaining > 0", accountID).
		Order("granted_at ASC").
		Find(&lots).Error
	return lots, err
}

func zeroExpired(tx *gorm.DB, dead []db_models.CreditLot) error {
	for i := range dead {
		if err := tx.Model(&db_models.CreditLot{BaseModel: db_models.BaseModel{ID: dead[i].ID}}).
			Update("remaining", 0).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *gormLedgerRepository) DebitFIFO(ctx context.Context, accountID uuid.UUID, amount int64, now int64) (DebitResult, error) {
	var result DebitResult

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lots, err := lockedLots(tx, accountID)
		if err != nil {
			return err
		}

		live, dead := splitExpired(lots, now)
		if err := zeroExpired(tx, dead); err != nil {
			return err
		}
		result.Pruned = dead

		available := sumRemaining(live, now)
		result.Available = available
		if amount > available {
			// the rollback restores the zeroed lots, so they were not pruned;
			// the next operation reapplies the prune
			result.Pruned = nil
			return ErrInsufficientLotBalance
		}

		ptrs := make([]*db_models.CreditLot, len(live))
		before := make([]int64, len(live))
		for i := range live {
			ptrs[i] = &live[i]
			before[i] = live[i].Remaining
		}
		consumeFIFO(ptrs, amount)

		for i := range live {
			if live[i].Remaining == before[i] {
				continue
			}
			if err := tx.Model(&db_models.CreditLot{BaseModel: db_models.BaseModel{ID: live[i].ID}}).
				Update("remaining", live[i].Remaining).Error; err != nil {
				return err
			}
		}

		result.Remaining = available - amount
		return nil
	})

	return result, err
}

func (r *gormLedgerRepository) Snapshot(ctx context.Context, accountID uuid.UUID, now int64) (BalanceSnapshot, error) {
	var snap BalanceSnapshot

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lots, err := lockedLots(tx, accountID)
		if err != nil {
			return err
		}

		live, dead := splitExpired(lots, now)
		if err := zeroExpired(tx, dead); err != nil {
			return err
		}

		snap.Lots = live
		snap.Pruned = dead
		snap.Remaining = sumRemaining(live, now)
		return nil
	})

	return snap, err
}

func (r *gormLedgerRepository) ExpiringWithin(ctx context.Context, accountID uuid.UUID, now int64, windowDays int) ([]db_models.CreditLot, error) {
	windowEnd := now + int64(windowDays)*24*60*60

	var lots []db_models.CreditLot
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND remaining > 0 AND expires_at > ? AND expires_at <= ?",
			accountID, now, windowEnd).
		Order("expires_at ASC").
		Find(&lots).Error
	if err != nil {
		return nil, err
	}

	return lots, nil
}

func (r *gormLedgerRepository) InsertUsage(ctx context.Context, rec *db_models.UsageRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *gormLedgerRepository) ListUsage(ctx context.Context, accountID uuid.UUID, limit int) ([]db_models.UsageRecord, error) {
	var records []db_models.UsageRecord
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}
