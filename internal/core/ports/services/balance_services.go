package services

import (
	"context"
	"time"

	"github.com/tipwave/tip_ledger_backend/internal/core/domain"
)

// BalanceSvcFacade recomputes per-day running balances.
type BalanceSvcFacade interface {
	// Recompute processes each day from startDate to endDate inclusive in
	// strictly ascending order, carrying prior balances forward. Any per-day
	// error halts the loop immediately so later days never build on a broken
	// carry-forward.
	Recompute(ctx context.Context, startDate, endDate time.Time, filter *domain.AccountType) ([]domain.RecomputeDayResult, error)
}
