package repositories

import (
	"context"

	"github.com/tipwave/tip_ledger_backend/internal/core/domain"
)

// AccountRepositoryFacade persists the account registry and resolves external
// ids against the earner/employer profile tables.
type AccountRepositoryFacade interface {
	// ResolveProfileType reports whether the external id belongs to a known
	// earner or employer profile. Returns apperrors.ErrUnknownAccount when it
	// matches neither.
	ResolveProfileType(ctx context.Context, stripeAccountID string) (domain.AccountType, error)

	// EnsureRegistered inserts a registry row if none exists for the
	// (account type, external id) pair. Existing rows, including their
	// watermark, are left untouched.
	EnsureRegistered(ctx context.Context, account domain.Account) error

	// FindByTypeAndStripeID returns the registry row, or nil when absent.
	FindByTypeAndStripeID(ctx context.Context, accountType domain.AccountType, stripeAccountID string) (*domain.Account, error)

	// Deactivate flags every registry row carrying the external id inactive.
	// Transaction and balance history is kept.
	Deactivate(ctx context.Context, stripeAccountID string) error

	// ListActive returns up to limit active registry rows, oldest watermark first.
	ListActive(ctx context.Context, limit int) ([]domain.Account, error)

	// AdvanceWatermark records the newest synced timestamp and transaction id.
	AdvanceWatermark(ctx context.Context, accountType domain.AccountType, stripeAccountID string, ts int64, lastTxnID string) error
}
