package db_models

import (
	"github.com/google/uuid"
)

type CreditLot struct {
	BaseModel
	AccountID uuid.UUID `gorm:"index"`
	// original grant size; kept for auditability, never mutated after creation
	Amount int64 `gorm:"not null"`
	// spendable remainder of this lot; debits reduce it, expiry zeroes it
	Remaining int64 `gorm:"not null"`
	GrantedAt int64 `gorm:"not null;index"`
	ExpiresAt int64 `gorm:"not null;index"`

	// nullable: promotional grants have no purchase behind them
	TransactionID *uuid.UUID `gorm:"index"`

	Account Account `gorm:"foreignKey:AccountID"`
}

func (l *CreditLot) IsExpired(now int64) bool {
	return l.ExpiresAt <= now
}
