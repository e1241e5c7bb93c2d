package response_models

import (
	"github.com/google/uuid"
)

type CreditPackageResponse struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"` // e.g., "starter", "popular", "power"
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Credits     int64     `json:"credits"`   // base credits
	BonusPct    int32     `json:"bonus_pct"` // 0..100
	// base + floored bonus; what the buyer actually receives
	EffectiveCredits int64  `json:"effective_credits"`
	Price            int64  `json:"price"` // minor units
	Currency         string `json:"currency"`
	IsFeatured       bool   `json:"is_featured"`
	ValidityDays     int32  `json:"validity_days"`
}
