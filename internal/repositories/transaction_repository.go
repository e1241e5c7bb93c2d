package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sitesmith/internal/models/db_models"
)

type ITransactionRepository interface {
	Insert(ctx context.Context, txn *db_models.Transaction) error
	// MarkPaid settles a pending transaction once its credits are granted.
	MarkPaid(ctx context.Context, txnID uuid.UUID, paidAt int64) error
	ListByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]db_models.Transaction, error)
}

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) ITransactionRepository {
	return &TransactionRepository{db: db}
}

func (t TransactionRepository) Insert(ctx context.Context, txn *db_models.Transaction) error {
	return t.db.WithContext(ctx).Create(txn).Error
}

func (t TransactionRepository) MarkPaid(ctx context.Context, txnID uuid.UUID, paidAt int64) error {
	return t.db.WithContext(ctx).
		Model(&db_models.Transaction{}).
		Where("id = ? AND status = ?", txnID, db_models.TxnStatusPending).
		Updates(map[string]interface{}{
			"status":  db_models.TxnStatusPaid,
			"paid_at": paidAt,
		}).Error
}

func (t TransactionRepository) ListByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]db_models.Transaction, error) {

	var txns []db_models.Transaction
	err := t.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Limit(limit).
		Find(&txns).Error

	if err != nil {
		return nil, err
	}

	return txns, nil
}
