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

// ingestionService pulls balance transactions from the processor and upserts
// them into the append-only ledger.
type ingestionService struct {
	BaseService
	processor   ports.ProcessorClient
	ledgerRepo  portsrepo.LedgerTransactionRepositoryFacade
	feeResolver *FeeResolver
}

// NewIngestionService creates a new ingestion service.
func NewIngestionService(processor ports.ProcessorClient, ledgerRepo portsrepo.LedgerTransactionRepositoryFacade) portssvc.IngestionSvcFacade {
	return &ingestionService{
		processor:   processor,
		ledgerRepo:  ledgerRepo,
		feeResolver: NewFeeResolver(processor),
	}
}

var _ portssvc.IngestionSvcFacade = (*ingestionService)(nil)

// Ingest fetches the window's balance transactions, decomposes fees and
// upserts the decomposed records. Enrichment failures degrade to zero fees
// rather than aborting the window; listing or storage failures abort it.
func (s *ingestionService) Ingest(ctx context.Context, accountType domain.AccountType, stripeAccountID string, fromTs, toTs int64) (domain.IngestResult, error) {
	result := domain.IngestResult{}

	records, err := s.processor.ListBalanceTransactions(ctx, stripeAccountID, fromTs, toTs)
	if err != nil {
		return result, fmt.Errorf("%w: listing balance transactions for %s/%s: %v",
			apperrors.ErrUpstream, accountType, stripeAccountID, err)
	}
	if len(records) == 0 {
		return result, nil
	}

	now := time.Now().UTC()
	txns := make([]domain.LedgerTransaction, 0, len(records))
	for _, bt := range records {
		processorFee, platformFee, feeErr := s.feeResolver.Resolve(ctx, stripeAccountID, bt)
		if feeErr != nil {
			s.LogWarn(ctx, "Fee enrichment failed, storing record with defaulted fees",
				slog.String("stripe_txn_id", bt.ID),
				slog.String("source_id", bt.SourceID),
				slog.String("error", feeErr.Error()))
			result.Errors = append(result.Errors, fmt.Sprintf("fee enrichment failed for %s: %v", bt.ID, feeErr))
		}

		txns = append(txns, domain.LedgerTransaction{
			StripeTxnID:       bt.ID,
			AccountType:       accountType,
			StripeAccountID:   stripeAccountID,
			TxnType:           bt.Type,
			ReportingCategory: bt.ReportingCategory,
			Currency:          bt.Currency,
			GrossCents:        bt.AmountCents,
			NetCents:          bt.NetCents,
			ProcessorFeeCents: processorFee.AmountCents,
			PlatformFeeCents:  platformFee.AmountCents,
			CreatedTs:         time.Unix(bt.CreatedTs, 0).UTC(),
			RawPayload:        bt.Raw,
			AuditFields:       domain.AuditFields{CreatedAt: now, UpdatedAt: now},
		})

		if result.FirstCreatedTs == 0 || bt.CreatedTs < result.FirstCreatedTs {
			result.FirstCreatedTs = bt.CreatedTs
		}
		if bt.CreatedTs > result.LastCreatedTs {
			result.LastCreatedTs = bt.CreatedTs
			result.LastTxnID = bt.ID
		}
	}

	written, err := s.ledgerRepo.UpsertTransactions(ctx, txns)
	if err != nil {
		return result, fmt.Errorf("failed to upsert ledger transactions for %s/%s: %w", accountType, stripeAccountID, err)
	}
	result.TransactionsWritten = written

	s.LogInfo(ctx, "Ingestion window complete",
		slog.String("account_type", string(accountType)),
		slog.String("stripe_account_id", stripeAccountID),
		slog.Int("transactions_written", written),
		slog.Int("enrichment_errors", len(result.Errors)))
	return result, nil
}
