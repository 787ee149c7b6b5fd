package services

import (
	"context"

	"github.com/tipwave/tip_ledger_backend/internal/core/domain"
)

// IngestionSvcFacade pulls processor balance transactions into the ledger.
type IngestionSvcFacade interface {
	// Ingest fetches the account's balance transactions within [fromTs, toTs]
	// (zero toTs means now), decomposes fees and upserts the records.
	// Per-record enrichment failures are collected in the result rather than
	// aborting the window; fetch and storage failures abort it.
	Ingest(ctx context.Context, accountType domain.AccountType, stripeAccountID string, fromTs, toTs int64) (domain.IngestResult, error)
}
