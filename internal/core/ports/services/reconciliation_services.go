package services

import (
	"context"
	"time"

	"github.com/tipwave/tip_ledger_backend/internal/core/domain"
)

// ReconciliationSvcFacade compares ledger-implied balances against the
// processor's live-reported balance. Read-only.
type ReconciliationSvcFacade interface {
	// Reconcile checks one account for one UTC day. currency may be empty
	// when the live snapshot holds a single currency; with several, it must
	// name which one to check. Returns a zero, unmatched result (not an
	// error) when no ledger data exists yet.
	Reconcile(ctx context.Context, accountType domain.AccountType, stripeAccountID string, day time.Time, currency string) (domain.ReconcileResult, error)
}
