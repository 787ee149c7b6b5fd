package repositories

import (
	"context"
	"time"

	"github.com/tipwave/tip_ledger_backend/internal/core/domain"
)

// DailyBalanceRepositoryFacade persists per-day running balances.
type DailyBalanceRepositoryFacade interface {
	// ListOnDate returns all balance rows for one UTC day, optionally
	// restricted to one account type.
	ListOnDate(ctx context.Context, date time.Time, filter *domain.AccountType) ([]domain.DailyBalance, error)

	// FindBalance returns the row for one key on one day, or nil when absent.
	FindBalance(ctx context.Context, date time.Time, accountType domain.AccountType, stripeAccountID, currency string) (*domain.DailyBalance, error)

	// UpsertBalances writes rows keyed by (date, type, account, currency).
	// Recomputation over an already-processed range converges to identical rows.
	UpsertBalances(ctx context.Context, rows []domain.DailyBalance) error
}
