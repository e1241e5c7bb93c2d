package infra

import (
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"sitesmith/internal/models/db_models"
)

func InitPostgresql() *gorm.DB {

	dsn := os.Getenv("POSTGRES_URL")

	connectionPool, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		log.Printf("Error connecting to database: %v", err)
		log.Fatal("Error connecting to database")
	}

	if err := Migrate(connectionPool); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	return connectionPool
}

func ClosePostgresql(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting database instance: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("PostgreSQL database connection closed successfully")
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&db_models.Account{},
		&db_models.CreditPackage{},
		&db_models.CreditLot{},
		&db_models.Transaction{},
		&db_models.UsageRecord{},
	); err != nil {
		return err
	}

	return seedPackages(db)
}

// seedPackages loads the deploy-time catalog on first boot. The catalog is
// immutable at runtime; re-running against a populated table is a no-op.
func seedPackages(db *gorm.DB) error {
	var count int64
	if err := db.Model(&db_models.CreditPackage{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	desc := func(s string) *string { return &s }

	packages := []db_models.CreditPackage{
		{
			Code:         "starter",
			Name:         "Starter",
			Description:  desc("Enough credits to build your first site"),
			CreditAmount: 200,
			BonusPct:     0,
			PriceMinor:   999,
			Currency:     "USD",
			SortOrder:    1,
		},
		{
			Code:         "popular",
			Name:         "Popular",
			Description:  desc("Our most popular bundle"),
			CreditAmount: 500,
			BonusPct:     10,
			PriceMinor:   1999,
			Currency:     "USD",
			IsFeatured:   true,
			SortOrder:    2,
		},
		{
			Code:         "power",
			Name:         "Power",
			Description:  desc("For builders shipping multiple sites"),
			CreditAmount: 1500,
			BonusPct:     20,
			PriceMinor:   4999,
			Currency:     "USD",
			SortOrder:    3,
		},
		{
			Code:         "enterprise",
			Name:         "Enterprise",
			Description:  desc("Agency-scale credit volume"),
			CreditAmount: 5000,
			BonusPct:     30,
			PriceMinor:   14999,
			Currency:     "USD",
			SortOrder:    4,
		},
	}

	return db.Create(&packages).Error
}
