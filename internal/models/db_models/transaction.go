package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type TransactionStatus string

const (
	TxnStatusPending  TransactionStatus = "pending"
	TxnStatusPaid     TransactionStatus = "paid"
	TxnStatusFailed   TransactionStatus = "failed"
	TxnStatusRefunded TransactionStatus = "refunded"
)

type Transaction struct {
	BaseModel
	AccountID   uuid.UUID         `gorm:"index"`
	PackageID   uuid.UUID         `gorm:"index"`
	AmountMinor int64             // e.g., 999 = $9.99
	Currency    string            `gorm:"size:3"` // ISO 4217 (e.g., "USD","VND")
	Status      TransactionStatus `gorm:"index"`

	// credits actually granted by this purchase (base + bonus)
	CreditsGranted int64

	// Important timestamps (unix seconds)
	PaidAt *int64

	// purchase snapshot: package code, bonus pct at time of sale, etc.
	Metadata datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	Account Account       `gorm:"foreignKey:AccountID"`
	Package CreditPackage `gorm:"foreignKey:PackageID"`
}
