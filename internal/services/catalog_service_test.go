package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitesmith/internal/models/db_models"
)

func TestEffectiveCredits(t *testing.T) {
	assert.Equal(t, int64(550), EffectiveCredits(500, 10))
	// 10% of 101 is 10.1; the bonus floors, it never rounds up
	assert.Equal(t, int64(111), EffectiveCredits(101, 10))
	assert.Equal(t, int64(200), EffectiveCredits(200, 0))
	assert.Equal(t, int64(6500), EffectiveCredits(5000, 30))
	assert.Equal(t, int64(1), EffectiveCredits(1, 99))
}

type stubPackageRepo struct {
	pkgs []db_models.CreditPackage
}

func (s *stubPackageRepo) GetPackageByCode(ctx context.Context, code string) (*db_models.CreditPackage, error) {
	for i := range s.pkgs {
		if s.pkgs[i].Code == code {
			return &s.pkgs[i], nil
		}
	}
	return nil, nil
}

func (s *stubPackageRepo) GetAllActivePackages(ctx context.Context) ([]db_models.CreditPackage, error) {
	return s.pkgs, nil
}

func testPackages() []db_models.CreditPackage {
	return []db_models.CreditPackage{
		{Code: "starter", Name: "Starter", CreditAmount: 200, BonusPct: 0, PriceMinor: 999, Currency: "USD"},
		{Code: "popular", Name: "Popular", CreditAmount: 500, BonusPct: 10, PriceMinor: 1999, Currency: "USD", IsFeatured: true},
	}
}

func TestListPackagesComputesEffectiveCredits(t *testing.T) {
	policy := CreditPolicy{DefaultValidityDays: 365, WarnWindowDays: 30}
	svc := NewCatalogService(&stubPackageRepo{pkgs: testPackages()}, policy)

	got, err := svc.ListPackages(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "starter", got[0].Code)
	assert.Equal(t, int64(200), got[0].EffectiveCredits)
	assert.Equal(t, int32(365), got[0].ValidityDays)

	assert.Equal(t, "popular", got[1].Code)
	assert.Equal(t, int64(550), got[1].EffectiveCredits)
	assert.True(t, got[1].IsFeatured)
}

func TestListPackagesHonorsValidityOverride(t *testing.T) {
	policy := CreditPolicy{DefaultValidityDays: 365, WarnWindowDays: 30}
	repo := &stubPackageRepo{pkgs: []db_models.CreditPackage{
		{Code: "promo", CreditAmount: 100, ValidityDays: 30},
	}}
	svc := NewCatalogService(repo, policy)

	got, err := svc.ListPackages(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int32(30), got[0].ValidityDays)
}

func TestGetPackageByCodeNotFound(t *testing.T) {
	policy := CreditPolicy{DefaultValidityDays: 365}
	svc := NewCatalogService(&stubPackageRepo{}, policy)

	_, err := svc.GetPackageByCode(context.Background(), "missing")
	assert.Error(t, err)
}
