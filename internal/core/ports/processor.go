package ports

import (
	"context"
	"encoding/json"
)

// FeeDetail is one processor-side fee line item on a balance transaction.
type FeeDetail struct {
	Type        string
	AmountCents int64
	Currency    string
}

// BalanceTransaction is a processor-reported balance-affecting event, reduced
// to the fields the ledger needs plus the raw payload for audit.
type BalanceTransaction struct {
	ID                string
	Type              string
	ReportingCategory string
	Currency          string // ISO-4217 uppercase
	AmountCents       int64  // gross
	NetCents          int64  // signed
	FeeCents          int64  // processor fee total as reported
	FeeDetails        []FeeDetail
	SourceID          string // originating object (charge, transfer, payout id)
	CreatedTs         int64  // unix seconds
	Raw               json.RawMessage
}

// Charge carries the fee-fallback fields of a processor charge: the fee on
// its underlying balance transaction and the payment-intent application fee.
type Charge struct {
	ID                  string
	PaymentIntentID     string
	BalanceTxnFeeCents  int64
	ApplicationFeeCents int64
}

// CurrencyBalance is the processor's live balance for one currency.
type CurrencyBalance struct {
	Currency       string
	AvailableCents int64
	PendingCents   int64
}

// ProcessorClient is the outbound port to the payment processor. An empty
// stripeAccountID addresses the platform's own ledger; otherwise calls are
// scoped to the connected account.
type ProcessorClient interface {
	// ListBalanceTransactions returns all balance transactions created within
	// [fromTs, toTs], following pagination internally. A zero toTs means now.
	ListBalanceTransactions(ctx context.Context, stripeAccountID string, fromTs, toTs int64) ([]BalanceTransaction, error)
	// GetCharge fetches a charge with its balance transaction expanded.
	GetCharge(ctx context.Context, stripeAccountID, chargeID string) (*Charge, error)
	// GetBalance returns the live available+pending funds per currency.
	GetBalance(ctx context.Context, stripeAccountID string) ([]CurrencyBalance, error)
}
