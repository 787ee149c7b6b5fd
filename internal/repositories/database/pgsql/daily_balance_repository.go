package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tipwave/tip_ledger_backend/internal/apperrors"
	"github.com/tipwave/tip_ledger_backend/internal/core/domain"
	portsrepo "github.com/tipwave/tip_ledger_backend/internal/core/ports/repositories"
)

type PgxDailyBalanceRepository struct {
	BaseRepository
}

// newPgxDailyBalanceRepository creates a repository for daily balance rows.
func newPgxDailyBalanceRepository(pool *pgxpool.Pool) portsrepo.DailyBalanceRepositoryFacade {
	return &PgxDailyBalanceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DailyBalanceRepositoryFacade = (*PgxDailyBalanceRepository)(nil)

func (r *PgxDailyBalanceRepository) ListOnDate(ctx context.Context, date time.Time, filter *domain.AccountType) ([]domain.DailyBalance, error) {
	query := `
		SELECT balance_date, account_type, stripe_account_id, currency,
		       balance_start_cents, balance_end_cents, created_at, updated_at
		FROM daily_balances
		WHERE balance_date = $1
	`
	args := []any{date.UTC().Format("2006-01-02")}
	if filter != nil {
		query += ` AND account_type = $2`
		args = append(args, *filter)
	}
	query += ` ORDER BY account_type, stripe_account_id, currency;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list daily balances", err)
	}
	defer rows.Close()

	var balances []domain.DailyBalance
	for rows.Next() {
		var b domain.DailyBalance
		if err := rows.Scan(
			&b.BalanceDate,
			&b.AccountType,
			&b.StripeAccountID,
			&b.Currency,
			&b.BalanceStartCents,
			&b.BalanceEndCents,
			&b.CreatedAt,
			&b.UpdatedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan daily balance row", err)
		}
		balances = append(balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate daily balance rows", err)
	}
	return balances, nil
}

func (r *PgxDailyBalanceRepository) FindBalance(ctx context.Context, date time.Time, accountType domain.AccountType, stripeAccountID, currency string) (*domain.DailyBalance, error) {
	query := `
		SELECT balance_date, account_type, stripe_account_id, currency,
		       balance_start_cents, balance_end_cents, created_at, updated_at
		FROM daily_balances
		WHERE balance_date = $1 AND account_type = $2 AND stripe_account_id = $3 AND currency = $4;
	`
	var b domain.DailyBalance
	err := r.Pool.QueryRow(ctx, query, date.UTC().Format("2006-01-02"), accountType, stripeAccountID, currency).Scan(
		&b.BalanceDate,
		&b.AccountType,
		&b.StripeAccountID,
		&b.Currency,
		&b.BalanceStartCents,
		&b.BalanceEndCents,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to find daily balance", err)
	}
	return &b, nil
}

// UpsertBalances writes the rows keyed by the full composite key so repeated
// backfills over the same range converge to identical values.
func (r *PgxDailyBalanceRepository) UpsertBalances(ctx context.Context, balances []domain.DailyBalance) error {
	if len(balances) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO daily_balances (
			balance_date, account_type, stripe_account_id, currency,
			balance_start_cents, balance_end_cents, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (balance_date, account_type, stripe_account_id, currency) DO UPDATE SET
			balance_start_cents = EXCLUDED.balance_start_cents,
			balance_end_cents = EXCLUDED.balance_end_cents,
			updated_at = EXCLUDED.updated_at;
	`

	batch := &pgx.Batch{}
	for _, b := range balances {
		batch.Queue(query,
			b.BalanceDate.UTC().Format("2006-01-02"),
			b.AccountType,
			b.StripeAccountID,
			b.Currency,
			b.BalanceStartCents,
			b.BalanceEndCents,
			b.CreatedAt,
			b.UpdatedAt,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute daily balance batch", err)
	}
	return r.Commit(ctx, tx)
}
