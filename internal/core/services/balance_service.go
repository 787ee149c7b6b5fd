package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/tipwave/tip_ledger_backend/internal/apperrors"
	"github.com/tipwave/tip_ledger_backend/internal/core/domain"
	portsrepo "github.com/tipwave/tip_ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/tipwave/tip_ledger_backend/internal/core/ports/services"
)

// balanceService computes per-day running balances from ledger transactions.
type balanceService struct {
	BaseService
	ledgerRepo portsrepo.LedgerTransactionRepositoryFacade
	dailyRepo  portsrepo.DailyBalanceRepositoryFacade
}

// NewBalanceService creates a new daily balance aggregator.
func NewBalanceService(ledgerRepo portsrepo.LedgerTransactionRepositoryFacade, dailyRepo portsrepo.DailyBalanceRepositoryFacade) portssvc.BalanceSvcFacade {
	return &balanceService{ledgerRepo: ledgerRepo, dailyRepo: dailyRepo}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// ComputeDailyDeltas sums the signed net amounts of the transactions that
// fall on the given UTC calendar day, grouped per balance key and optionally
// restricted to one account type. Output ordering is deterministic.
func ComputeDailyDeltas(txns []domain.LedgerTransaction, day time.Time, filter *domain.AccountType) []domain.BalanceDelta {
	dayStart := TruncateToDay(day)
	dayEnd := dayStart.AddDate(0, 0, 1)

	sums := make(map[domain.BalanceKey]int64)
	for _, txn := range txns {
		if filter != nil && txn.AccountType != *filter {
			continue
		}
		ts := txn.CreatedTs.UTC()
		if ts.Before(dayStart) || !ts.Before(dayEnd) {
			continue
		}
		sums[txn.Key()] += txn.NetCents
	}

	deltas := make([]domain.BalanceDelta, 0, len(sums))
	for key, sum := range sums {
		deltas = append(deltas, domain.BalanceDelta{
			AccountType:     key.AccountType,
			StripeAccountID: key.StripeAccountID,
			Currency:        key.Currency,
			DeltaCents:      sum,
		})
	}
	sort.Slice(deltas, func(i, j int) bool {
		a, b := deltas[i], deltas[j]
		if a.AccountType != b.AccountType {
			return a.AccountType < b.AccountType
		}
		if a.StripeAccountID != b.StripeAccountID {
			return a.StripeAccountID < b.StripeAccountID
		}
		return a.Currency < b.Currency
	})
	return deltas
}

// TruncateToDay returns midnight UTC of the given instant.
func TruncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Recompute processes days in strictly ascending order: each day's start
// balance is the previous day's end balance, and keys with no movement are
// carried forward unchanged so quiet days never erase history. Re-running a
// range converges to identical rows. Any per-day failure halts the loop; a
// partially recomputed range beats silently corrupting the next day's
// carry-forward.
func (s *balanceService) Recompute(ctx context.Context, startDate, endDate time.Time, filter *domain.AccountType) ([]domain.RecomputeDayResult, error) {
	start := TruncateToDay(startDate)
	end := TruncateToDay(endDate)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date %s precedes start date %s",
			apperrors.ErrValidation, end.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	var results []domain.RecomputeDayResult
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		rowsWritten, err := s.recomputeDay(ctx, day, filter)
		if err != nil {
			return results, fmt.Errorf("recompute halted at %s: %w", day.Format("2006-01-02"), err)
		}
		results = append(results, domain.RecomputeDayResult{Date: day, RowsWritten: rowsWritten})
	}
	return results, nil
}

func (s *balanceService) recomputeDay(ctx context.Context, day time.Time, filter *domain.AccountType) (int, error) {
	txns, err := s.ledgerRepo.ListOnDate(ctx, day)
	if err != nil {
		return 0, fmt.Errorf("failed to list ledger transactions: %w", err)
	}
	deltas := ComputeDailyDeltas(txns, day, filter)

	prevRows, err := s.dailyRepo.ListOnDate(ctx, day.AddDate(0, 0, -1), filter)
	if err != nil {
		return 0, fmt.Errorf("failed to list previous day balances: %w", err)
	}
	prevEnd := make(map[domain.BalanceKey]int64, len(prevRows))
	for _, row := range prevRows {
		prevEnd[row.Key()] = row.BalanceEndCents
	}

	now := time.Now().UTC()
	rows := make([]domain.DailyBalance, 0, len(deltas)+len(prevRows))
	touched := make(map[domain.BalanceKey]struct{}, len(deltas))

	for _, delta := range deltas {
		key := delta.Key()
		touched[key] = struct{}{}
		// A brand-new key starts from zero.
		startCents := prevEnd[key]
		rows = append(rows, domain.DailyBalance{
			BalanceDate:       day,
			AccountType:       key.AccountType,
			StripeAccountID:   key.StripeAccountID,
			Currency:          key.Currency,
			BalanceStartCents: startCents,
			BalanceEndCents:   startCents + delta.DeltaCents,
			AuditFields:       domain.AuditFields{CreatedAt: now, UpdatedAt: now},
		})
	}

	// Pure carry-forward for every key that had a balance yesterday but no
	// movement today. Without it a quiet day would drop the running balance.
	for _, prev := range prevRows {
		key := prev.Key()
		if _, ok := touched[key]; ok {
			continue
		}
		rows = append(rows, domain.DailyBalance{
			BalanceDate:       day,
			AccountType:       key.AccountType,
			StripeAccountID:   key.StripeAccountID,
			Currency:          key.Currency,
			BalanceStartCents: prev.BalanceEndCents,
			BalanceEndCents:   prev.BalanceEndCents,
			AuditFields:       domain.AuditFields{CreatedAt: now, UpdatedAt: now},
		})
	}

	if len(rows) == 0 {
		return 0, nil
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.AccountType != b.AccountType {
			return a.AccountType < b.AccountType
		}
		if a.StripeAccountID != b.StripeAccountID {
			return a.StripeAccountID < b.StripeAccountID
		}
		return a.Currency < b.Currency
	})

	if err := s.dailyRepo.UpsertBalances(ctx, rows); err != nil {
		return 0, fmt.Errorf("failed to upsert daily balances: %w", err)
	}

	s.LogDebug(ctx, "Recomputed day",
		slog.String("date", day.Format("2006-01-02")),
		slog.Int("delta_keys", len(deltas)),
		slog.Int("rows_written", len(rows)))
	return len(rows), nil
}
