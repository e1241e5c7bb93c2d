package services

import (
	"context"
	"log"

	"github.com/google/uuid"

	"sitesmith/internal/models/db_models"
	"sitesmith/internal/models/response_models"
	"sitesmith/pkg/utils"
)

// GateServiceInterface is the single authorization point for metered
// actions. Nothing else in the codebase debits credits for an action: a
// denied action can therefore never leave a charge behind.
type GateServiceInterface interface {
	Authorize(ctx context.Context, accountID uuid.UUID, kind db_models.ActionKind) (response_models.AuthorizeResponse, error)
	Cost(kind db_models.ActionKind) (int64, error)
}

// DefaultActionCosts covers every known kind; authorization of a kind
// missing from the table fails instead of defaulting to zero.
func DefaultActionCosts() map[db_models.ActionKind]int64 {
	return map[db_models.ActionKind]int64{
		db_models.ActionAIBuild:       10,
		db_models.ActionAIEdit:        5,
		db_models.ActionPublishFirst:  50,
		db_models.ActionPublishUpdate: 20,
		db_models.ActionPreview:       0,
	}
}

type GateService struct {
	credits CreditServiceInterface
	costs   map[db_models.ActionKind]int64
}

func NewGateService(credits CreditServiceInterface, costs map[db_models.ActionKind]int64) GateServiceInterface {
	if costs == nil {
		costs = DefaultActionCosts()
	}
	return &GateService{
		credits: credits,
		costs:   costs,
	}
}

func (g *GateService) Cost(kind db_models.ActionKind) (int64, error) {
	cost, ok := g.costs[kind]
	if !ok {
		return 0, utils.ErrUnknownActionKind
	}
	return cost, nil
}

func (g *GateService) Authorize(ctx context.Context, accountID uuid.UUID, kind db_models.ActionKind) (response_models.AuthorizeResponse, error) {

	cost, err := g.Cost(kind)
	if err != nil {
		return response_models.AuthorizeResponse{}, err
	}

	if cost == 0 {
		// free actions pass without touching the ledger
		snap, err := g.credits.CurrentBalance(ctx, accountID)
		if err != nil {
			return response_models.AuthorizeResponse{}, err
		}
		return response_models.AuthorizeResponse{
			Kind:      string(kind),
			Cost:      0,
			Remaining: snap.Remaining,
		}, nil
	}

	// Debit re-checks sufficiency under the account lock, so a concurrent
	// spend between this read and the debit still denies cleanly.
	snap, err := g.credits.CurrentBalance(ctx, accountID)
	if err != nil {
		return response_models.AuthorizeResponse{}, err
	}
	if cost > snap.Remaining {
		return response_models.AuthorizeResponse{}, &utils.InsufficientBalanceError{
			Required:  cost,
			Available: snap.Remaining,
		}
	}

	remaining, err := g.credits.Debit(ctx, accountID, cost)
	if err != nil {
		return response_models.AuthorizeResponse{}, err
	}

	// usage history is an audit trail; losing a row must not fail the
	// already-settled action
	rec := &db_models.UsageRecord{
		AccountID:    accountID,
		Kind:         kind,
		Cost:         cost,
		BalanceAfter: remaining,
	}
	if err := g.credits.RecordUsage(ctx, rec); err != nil {
		log.Printf("Usage record dropped for account %s action %s: %v", accountID, kind, err)
	}

	return response_models.AuthorizeResponse{
		Kind:      string(kind),
		Cost:      cost,
		Remaining: remaining,
	}, nil
}
