package repositories

import (
	"context"
	"time"

	"github.com/tipwave/tip_ledger_backend/internal/core/domain"
)

// LedgerTransactionRepositoryFacade persists the append-only ledger.
type LedgerTransactionRepositoryFacade interface {
	// UpsertTransactions writes records keyed by the processor transaction id.
	// Conflicts overwrite (last write wins) so re-ingestion is idempotent.
	// Returns the number of rows written.
	UpsertTransactions(ctx context.Context, txns []domain.LedgerTransaction) (int, error)

	// ListOnDate returns every ledger transaction created within the given
	// UTC calendar day.
	ListOnDate(ctx context.Context, day time.Time) ([]domain.LedgerTransaction, error)

	// SumNetOnDate returns the per-currency net movement for one account on
	// one UTC day.
	SumNetOnDate(ctx context.Context, day time.Time, accountType domain.AccountType, stripeAccountID string) (map[string]int64, error)
}
