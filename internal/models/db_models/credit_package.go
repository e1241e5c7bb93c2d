package db_models

type CreditPackage struct {
	BaseModel
	Code         string `gorm:"uniqueIndex"` // e.g., "starter", "popular", "power", "enterprise"
	Name         string
	Description  *string
	CreditAmount int64 // base credits granted
	BonusPct     int32 `gorm:"default:0"` // 0..100, extra credits as % of base
	PriceMinor   int64 // 999 = $9.99
	Currency     string `gorm:"size:3"` // ISO 4217, "USD", "VND"
	IsFeatured   bool   `gorm:"default:false"`
	IsActive     bool   `gorm:"default:true"`
	// 0 means "use the deployment-wide default validity window"
	ValidityDays int32 `gorm:"default:0"`
	SortOrder    int32 `gorm:"default:0"`
}
