package db_models

import (
	"github.com/google/uuid"
)

type ActionKind string

const (
	ActionAIBuild       ActionKind = "ai-build"
	ActionAIEdit        ActionKind = "ai-edit"
	ActionPublishFirst  ActionKind = "publish-first"
	ActionPublishUpdate ActionKind = "publish-update"
	ActionPreview       ActionKind = "preview"
)

// KnownActionKinds is the closed set the gate accepts. A kind missing from
// this table must fail authorization rather than default to zero cost.
var KnownActionKinds = []ActionKind{
	ActionAIBuild,
	ActionAIEdit,
	ActionPublishFirst,
	ActionPublishUpdate,
	ActionPreview,
}

type UsageRecord struct {
	BaseModel
	AccountID    uuid.UUID  `gorm:"index"`
	Kind         ActionKind `gorm:"index"`
	Cost         int64
	BalanceAfter int64

	Account Account `gorm:"foreignKey:AccountID"`
}
