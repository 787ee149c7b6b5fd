package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tipwave/tip_ledger_backend/internal/apperrors"
	"github.com/tipwave/tip_ledger_backend/internal/core/domain"
	portsrepo "github.com/tipwave/tip_ledger_backend/internal/core/ports/repositories"
)

type PgxLedgerTransactionRepository struct {
	BaseRepository
}

// newPgxLedgerTransactionRepository creates a repository for the append-only ledger.
func newPgxLedgerTransactionRepository(pool *pgxpool.Pool) portsrepo.LedgerTransactionRepositoryFacade {
	return &PgxLedgerTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerTransactionRepositoryFacade = (*PgxLedgerTransactionRepository)(nil)

// UpsertTransactions writes the batch keyed by stripe_txn_id with
// last-write-wins conflict resolution, so re-ingesting a window is safe.
func (r *PgxLedgerTransactionRepository) UpsertTransactions(ctx context.Context, txns []domain.LedgerTransaction) (int, error) {
	if len(txns) == 0 {
		return 0, nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO ledger_transactions (
			stripe_txn_id, account_type, stripe_account_id, txn_type, reporting_category,
			currency, gross_cents, net_cents, processor_fee_cents, platform_fee_cents,
			created_ts, raw_payload, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (stripe_txn_id) DO UPDATE SET
			account_type = EXCLUDED.account_type,
			stripe_account_id = EXCLUDED.stripe_account_id,
			txn_type = EXCLUDED.txn_type,
			reporting_category = EXCLUDED.reporting_category,
			currency = EXCLUDED.currency,
			gross_cents = EXCLUDED.gross_cents,
			net_cents = EXCLUDED.net_cents,
			processor_fee_cents = EXCLUDED.processor_fee_cents,
			platform_fee_cents = EXCLUDED.platform_fee_cents,
			created_ts = EXCLUDED.created_ts,
			raw_payload = EXCLUDED.raw_payload,
			updated_at = EXCLUDED.updated_at;
	`

	batch := &pgx.Batch{}
	for _, txn := range txns {
		batch.Queue(query,
			txn.StripeTxnID,
			txn.AccountType,
			txn.StripeAccountID,
			txn.TxnType,
			txn.ReportingCategory,
			txn.Currency,
			txn.GrossCents,
			txn.NetCents,
			txn.ProcessorFeeCents,
			txn.PlatformFeeCents,
			txn.CreatedTs,
			txn.RawPayload,
			txn.CreatedAt,
			txn.UpdatedAt,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return 0, apperrors.NewAppError(500, "failed to execute ledger transaction batch", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return len(txns), nil
}

// ListOnDate returns all ledger transactions created within the UTC day.
func (r *PgxLedgerTransactionRepository) ListOnDate(ctx context.Context, day time.Time) ([]domain.LedgerTransaction, error) {
	dayStart := time.Date(day.UTC().Year(), day.UTC().Month(), day.UTC().Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	query := `
		SELECT stripe_txn_id, account_type, stripe_account_id, txn_type, reporting_category,
		       currency, gross_cents, net_cents, processor_fee_cents, platform_fee_cents,
		       created_ts, raw_payload, created_at, updated_at
		FROM ledger_transactions
		WHERE created_ts >= $1 AND created_ts < $2
		ORDER BY created_ts ASC, stripe_txn_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, dayStart, dayEnd)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list ledger transactions", err)
	}
	defer rows.Close()

	var txns []domain.LedgerTransaction
	for rows.Next() {
		var txn domain.LedgerTransaction
		if err := rows.Scan(
			&txn.StripeTxnID,
			&txn.AccountType,
			&txn.StripeAccountID,
			&txn.TxnType,
			&txn.ReportingCategory,
			&txn.Currency,
			&txn.GrossCents,
			&txn.NetCents,
			&txn.ProcessorFeeCents,
			&txn.PlatformFeeCents,
			&txn.CreatedTs,
			&txn.RawPayload,
			&txn.CreatedAt,
			&txn.UpdatedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger transaction row", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate ledger transaction rows", err)
	}
	return txns, nil
}

// SumNetOnDate aggregates the day's signed net movement per currency for one account.
func (r *PgxLedgerTransactionRepository) SumNetOnDate(ctx context.Context, day time.Time, accountType domain.AccountType, stripeAccountID string) (map[string]int64, error) {
	dayStart := time.Date(day.UTC().Year(), day.UTC().Month(), day.UTC().Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	query := `
		SELECT currency, COALESCE(SUM(net_cents), 0)
		FROM ledger_transactions
		WHERE created_ts >= $1 AND created_ts < $2
			AND account_type = $3
			AND stripe_account_id = $4
		GROUP BY currency;
	`
	rows, err := r.Pool.Query(ctx, query, dayStart, dayEnd, accountType, stripeAccountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to sum ledger net amounts", err)
	}
	defer rows.Close()

	sums := make(map[string]int64)
	for rows.Next() {
		var currency string
		var net int64
		if err := rows.Scan(&currency, &net); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan net sum row", err)
		}
		sums[currency] = net
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate net sum rows", err)
	}
	return sums, nil
}
