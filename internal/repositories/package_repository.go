package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"sitesmith/internal/models/db_models"
)

type IPackageRepository interface {
	GetPackageByCode(ctx context.Context, code string) (*db_models.CreditPackage, error)
	GetAllActivePackages(ctx context.Context) ([]db_models.CreditPackage, error)
}

type PackageRepository struct {
	db *gorm.DB
}

func NewPackageRepository(db *gorm.DB) IPackageRepository {
	return &PackageRepository{db: db}
}

func (p PackageRepository) GetPackageByCode(ctx context.Context, code string) (*db_models.CreditPackage, error) {

	var pkg db_models.CreditPackage
	err := p.db.WithContext(ctx).First(&pkg, "code = ? AND is_active = TRUE", code).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &pkg, nil
}

func (p PackageRepository) GetAllActivePackages(ctx context.Context) ([]db_models.CreditPackage, error) {

	var pkgs []db_models.CreditPackage
	err := p.db.WithContext(ctx).
		Where("is_active = TRUE").
		Order("sort_order ASC, price_minor ASC").
		Find(&pkgs).Error

	if err != nil {
		return nil, err
	}

	return pkgs, nil
}
