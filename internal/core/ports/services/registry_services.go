package services

import (
	"context"

	"github.com/tipwave/tip_ledger_backend/internal/core/domain"
)

// RegistrySvcFacade maintains the external-account registry.
type RegistrySvcFacade interface {
	// ResolveAccountType maps an external account id to its ledger type.
	// An empty id resolves to the platform account.
	ResolveAccountType(ctx context.Context, stripeAccountID string) (domain.AccountType, error)

	// EnsureRegistered idempotently registers the account as active with a
	// zero watermark. Existing rows are never overwritten.
	EnsureRegistered(ctx context.Context, accountType domain.AccountType, stripeAccountID string) error

	// FindAccount returns the registry row, or nil when none exists.
	FindAccount(ctx context.Context, accountType domain.AccountType, stripeAccountID string) (*domain.Account, error)

	// Deactivate flags the account inactive across the registry without
	// deleting transaction or balance history.
	Deactivate(ctx context.Context, stripeAccountID string) error

	// ListActive returns up to limit active accounts for bulk backfill.
	ListActive(ctx context.Context, limit int) ([]domain.Account, error)

	// AdvanceWatermark records sync progress after a successful job.
	AdvanceWatermark(ctx context.Context, accountType domain.AccountType, stripeAccountID string, ts int64, lastTxnID string) error
}
