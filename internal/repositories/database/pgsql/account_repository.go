package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tipwave/tip_ledger_backend/internal/apperrors"
	"github.com/tipwave/tip_ledger_backend/internal/core/domain"
	portsrepo "github.com/tipwave/tip_ledger_backend/internal/core/ports/repositories"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a repository for the account registry.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// ResolveProfileType checks the earner and employer profile tables for the
// external id. Those tables are owned by the onboarding system; the ledger
// only reads them.
func (r *PgxAccountRepository) ResolveProfileType(ctx context.Context, stripeAccountID string) (domain.AccountType, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM earner_profiles WHERE stripe_account_id = $1)`,
		stripeAccountID).Scan(&exists)
	if err != nil {
		return "", apperrors.NewAppError(500, "failed to query earner profiles", err)
	}
	if exists {
		return domain.Earner, nil
	}

	err = r.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM employer_profiles WHERE stripe_account_id = $1)`,
		stripeAccountID).Scan(&exists)
	if err != nil {
		return "", apperrors.NewAppError(500, "failed to query employer profiles", err)
	}
	if exists {
		return domain.Employer, nil
	}

	return "", fmt.Errorf("%w: %s", apperrors.ErrUnknownAccount, stripeAccountID)
}

// EnsureRegistered inserts the registry row if absent. The unique index on
// (account_type, stripe_account_id) makes concurrent registration convergent;
// an existing row, watermark included, is never touched.
func (r *PgxAccountRepository) EnsureRegistered(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO ledger_accounts (
			account_id, account_type, stripe_account_id, internal_id,
			is_active, last_synced_ts, last_synced_tx_id, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (account_type, stripe_account_id) DO NOTHING;
	`
	_, err := r.Pool.Exec(ctx, query,
		account.AccountID,
		account.AccountType,
		account.StripeAccountID,
		account.InternalID,
		account.IsActive,
		account.LastSyncedTs,
		account.LastSyncedTxID,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to register account "+account.StripeAccountID, err)
	}
	return nil
}

func (r *PgxAccountRepository) FindByTypeAndStripeID(ctx context.Context, accountType domain.AccountType, stripeAccountID string) (*domain.Account, error) {
	query := `
		SELECT account_id, account_type, stripe_account_id, internal_id,
		       is_active, last_synced_ts, last_synced_tx_id, created_at, updated_at
		FROM ledger_accounts
		WHERE account_type = $1 AND stripe_account_id = $2;
	`
	var account domain.Account
	err := r.Pool.QueryRow(ctx, query, accountType, stripeAccountID).Scan(
		&account.AccountID,
		&account.AccountType,
		&account.StripeAccountID,
		&account.InternalID,
		&account.IsActive,
		&account.LastSyncedTs,
		&account.LastSyncedTxID,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to find account "+stripeAccountID, err)
	}
	return &account, nil
}

// Deactivate flips is_active on every registry row carrying the external id.
// History tables are left alone.
func (r *PgxAccountRepository) Deactivate(ctx context.Context, stripeAccountID string) error {
	query := `
		UPDATE ledger_accounts
		SET is_active = FALSE, updated_at = $2
		WHERE stripe_account_id = $1;
	`
	_, err := r.Pool.Exec(ctx, query, stripeAccountID, time.Now().UTC())
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate account "+stripeAccountID, err)
	}
	return nil
}

// ListActive returns active accounts with the stalest watermark first, so
// bulk backfills prioritise the accounts furthest behind.
func (r *PgxAccountRepository) ListActive(ctx context.Context, limit int) ([]domain.Account, error) {
	query := `
		SELECT account_id, account_type, stripe_account_id, internal_id,
		       is_active, last_synced_ts, last_synced_tx_id, created_at, updated_at
		FROM ledger_accounts
		WHERE is_active = TRUE
		ORDER BY last_synced_ts ASC, created_at ASC
		LIMIT $1;
	`
	rows, err := r.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list active accounts", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(
			&account.AccountID,
			&account.AccountType,
			&account.StripeAccountID,
			&account.InternalID,
			&account.IsActive,
			&account.LastSyncedTs,
			&account.LastSyncedTxID,
			&account.CreatedAt,
			&account.UpdatedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate account rows", err)
	}
	return accounts, nil
}

func (r *PgxAccountRepository) AdvanceWatermark(ctx context.Context, accountType domain.AccountType, stripeAccountID string, ts int64, lastTxnID string) error {
	query := `
		UPDATE ledger_accounts
		SET last_synced_ts = GREATEST(last_synced_ts, $3), last_synced_tx_id = $4, updated_at = $5
		WHERE account_type = $1 AND stripe_account_id = $2;
	`
	_, err := r.Pool.Exec(ctx, query, accountType, stripeAccountID, ts, lastTxnID, time.Now().UTC())
	if err != nil {
		return apperrors.NewAppError(500, "failed to advance watermark for "+stripeAccountID, err)
	}
	return nil
}
