package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tipwave/tip_ledger_backend/internal/apperrors"
	"github.com/tipwave/tip_ledger_backend/internal/core/domain"
	"github.com/tipwave/tip_ledger_backend/internal/core/ports"
	portsrepo "github.com/tipwave/tip_ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/tipwave/tip_ledger_backend/internal/core/ports/services"
)

// reconciliationService verifies the ledger against the processor's own
// reported balance. It never mutates stored balances; it only flags drift.
type reconciliationService struct {
	BaseService
	processor   ports.ProcessorClient
	accountRepo portsrepo.AccountRepositoryFacade
	ledgerRepo  portsrepo.LedgerTransactionRepositoryFacade
	dailyRepo   portsrepo.DailyBalanceRepositoryFacade
}

// NewReconciliationService creates a new reconciliation service.
func NewReconciliationService(
	processor ports.ProcessorClient,
	accountRepo portsrepo.AccountRepositoryFacade,
	ledgerRepo portsrepo.LedgerTransactionRepositoryFacade,
	dailyRepo portsrepo.DailyBalanceRepositoryFacade,
) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{
		processor:   processor,
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		dailyRepo:   dailyRepo,
	}
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

// Reconcile compares expected = prior day's balance_end + day's ledger delta
// against the processor's live available+pending funds for one currency.
func (s *reconciliationService) Reconcile(ctx context.Context, accountType domain.AccountType, stripeAccountID string, day time.Time, currency string) (domain.ReconcileResult, error) {
	result := domain.ReconcileResult{Currency: currency}

	if accountType != domain.Platform {
		account, err := s.accountRepo.FindByTypeAndStripeID(ctx, accountType, stripeAccountID)
		if err != nil {
			return result, fmt.Errorf("failed to look up account %s: %w", stripeAccountID, err)
		}
		if account == nil {
			// Accounts may exist as profiles before their first sync registers them.
			if _, err := s.accountRepo.ResolveProfileType(ctx, stripeAccountID); err != nil {
				return result, fmt.Errorf("reconcile target %s: %w", stripeAccountID, err)
			}
		}
	}

	live, err := s.processor.GetBalance(ctx, stripeAccountID)
	if err != nil {
		return result, fmt.Errorf("%w: fetching live balance for %s/%s: %v",
			apperrors.ErrUpstream, accountType, stripeAccountID, err)
	}

	liveByCurrency := make(map[string]int64, len(live))
	for _, cb := range live {
		liveByCurrency[cb.Currency] = cb.AvailableCents + cb.PendingCents
	}

	if currency == "" {
		switch len(live) {
		case 0:
			// No balance data at all yet: zero, unmatched, but not an error.
			return result, nil
		case 1:
			currency = live[0].Currency
		default:
			return result, fmt.Errorf("%w: account holds %d currencies, specify which to reconcile",
				apperrors.ErrValidation, len(live))
		}
	}
	result.Currency = currency
	result.BalanceEndCents = liveByCurrency[currency]

	day = TruncateToDay(day)
	netByCurrency, err := s.ledgerRepo.SumNetOnDate(ctx, day, accountType, stripeAccountID)
	if err != nil {
		return result, fmt.Errorf("failed to sum ledger net for %s: %w", day.Format("2006-01-02"), err)
	}
	result.DeltaCents = netByCurrency[currency]

	prev, err := s.dailyRepo.FindBalance(ctx, day.AddDate(0, 0, -1), accountType, stripeAccountID, currency)
	if err != nil {
		return result, fmt.Errorf("failed to read prior day balance: %w", err)
	}
	if prev != nil {
		result.BalanceStartCents = prev.BalanceEndCents
	}

	result.ExpectedEndCents = result.BalanceStartCents + result.DeltaCents
	result.Matched = result.ExpectedEndCents == result.BalanceEndCents

	if !result.Matched {
		s.LogWarn(ctx, "Reconciliation drift detected",
			slog.String("account_type", string(accountType)),
			slog.String("stripe_account_id", stripeAccountID),
			slog.String("date", day.Format("2006-01-02")),
			slog.String("currency", currency),
			slog.Int64("expected_end_cents", result.ExpectedEndCents),
			slog.Int64("live_end_cents", result.BalanceEndCents))
	}
	return result, nil
}
