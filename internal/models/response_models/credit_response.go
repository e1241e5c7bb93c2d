package response_models

import (
	"github.com/google/uuid"
)

type CreditLotView struct {
	ID        uuid.UUID `json:"id"`
	Amount    int64     `json:"amount"`
	Remaining int64     `json:"remaining"`
	GrantedAt int64     `json:"granted_at"`
	ExpiresAt int64     `json:"expires_at"`
}

type BalanceResponse struct {
	AccountID uuid.UUID       `json:"account_id"`
	Remaining int64           `json:"remaining"`
	Lots      []CreditLotView `json:"lots"`
}

type ExpiringLotsResponse struct {
	AccountID  uuid.UUID       `json:"account_id"`
	WindowDays int             `json:"window_days"`
	Lots       []CreditLotView `json:"lots"`
}

type AuthorizeResponse struct {
	Kind      string `json:"kind"`
	Cost      int64  `json:"cost"`
	Remaining int64  `json:"remaining"`
}

type PurchaseResponse struct {
	TransactionID  uuid.UUID `json:"transaction_id"`
	PackageCode    string    `json:"package_code"`
	CreditsGranted int64     `json:"credits_granted"`
	AmountMinor    int64     `json:"amount"`
	Currency       string    `json:"currency"`
	ExpiresAt      int64     `json:"expires_at"`
	NewBalance     int64     `json:"new_balance"`
}

type UsageRecordView struct {
	ID           uuid.UUID `json:"id"`
	Kind         string    `json:"kind"`
	Cost         int64     `json:"cost"`
	BalanceAfter int64     `json:"balance_after"`
	CreatedAt    int64     `json:"created_at"`
}
