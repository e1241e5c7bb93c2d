package services

import (
	"context"

	"sitesmith/internal/models/db_models"
	"sitesmith/internal/models/response_models"
	"sitesmith/internal/repositories"
	"sitesmith/pkg/utils"
)

type CatalogServiceInterface interface {
	ListPackages(ctx context.Context) ([]response_models.CreditPackageResponse, error)
	GetPackageByCode(ctx context.Context, code string) (*db_models.CreditPackage, error)
}

// EffectiveCredits is what a buyer actually receives: base credits plus the
// bonus percentage, floored. 101 credits at 10% yields 111, never 112.
func EffectiveCredits(creditAmount int64, bonusPct int32) int64 {
	return creditAmount + creditAmount*int64(bonusPct)/100
}

type CatalogService struct {
	packageRepo repositories.IPackageRepository
	policy      CreditPolicy
}

func NewCatalogService(packageRepo repositories.IPackageRepository, policy CreditPolicy) CatalogServiceInterface {
	return &CatalogService{
		packageRepo: packageRepo,
		policy:      policy,
	}
}

func (c *CatalogService) ListPackages(ctx context.Context) ([]response_models.CreditPackageResponse, error) {

	pkgs, err := c.packageRepo.GetAllActivePackages(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	result := make([]response_models.CreditPackageResponse, 0, len(pkgs))
	for _, pkg := range pkgs {
		result = append(result, response_models.CreditPackageResponse{
			ID:               pkg.ID,
			Code:             pkg.Code,
			Name:             pkg.Name,
			Description:      pkg.Description,
			Credits:          pkg.CreditAmount,
			BonusPct:         pkg.BonusPct,
			EffectiveCredits: EffectiveCredits(pkg.CreditAmount, pkg.BonusPct),
			Price:            pkg.PriceMinor,
			Currency:         pkg.Currency,
			IsFeatured:       pkg.IsFeatured,
			ValidityDays:     c.policy.ValidityDaysFor(pkg),
		})
	}

	return result, nil
}

func (c *CatalogService) GetPackageByCode(ctx context.Context, code string) (*db_models.CreditPackage, error) {

	pkg, err := c.packageRepo.GetPackageByCode(ctx, code)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	if pkg == nil {
		return nil, utils.ErrPackageNotFound
	}

	return pkg, nil
}
