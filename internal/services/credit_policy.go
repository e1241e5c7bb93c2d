package services

import (
	"os"
	"strconv"

	"sitesmith/internal/models/db_models"
)

// CreditPolicy carries the deployment-wide expiry knobs. Validity is a
// configuration value, not a per-package hardcode; packages may still
// override it row by row.
type CreditPolicy struct {
	// days a granted lot stays spendable, default for packages without override
	DefaultValidityDays int
	// "expiring soon" warning horizon for notification mail
	WarnWindowDays int
}

const (
	defaultValidityDays = 365
	defaultWarnWindow   = 30
)

func LoadCreditPolicy() CreditPolicy {
	return CreditPolicy{
		DefaultValidityDays: envInt("CREDIT_VALIDITY_DAYS", defaultValidityDays),
		WarnWindowDays:      envInt("CREDIT_WARN_WINDOW_DAYS", defaultWarnWindow),
	}
}

func (p CreditPolicy) ValidityDaysFor(pkg db_models.CreditPackage) int32 {
	if pkg.ValidityDays > 0 {
		return pkg.ValidityDays
	}
	return int32(p.DefaultValidityDays)
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
