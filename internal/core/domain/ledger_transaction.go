package domain

import (
	"encoding/json"
	"time"
)

// LedgerTransaction is one balance-affecting event reported by the processor.
// Rows are append-only and keyed by the processor's transaction id, so
// re-ingesting a window overwrites rather than duplicates.
type LedgerTransaction struct {
	StripeTxnID       string          `json:"stripeTxnID"`
	AccountType       AccountType     `json:"accountType"`
	StripeAccountID   string          `json:"stripeAccountID"` // empty when fetched under the platform ledger
	TxnType           string          `json:"txnType"`         // charge, transfer, payout, adjustment, ...
	ReportingCategory string          `json:"reportingCategory"`
	Currency          string          `json:"currency"` // ISO-4217 uppercase
	GrossCents        int64           `json:"grossCents"`
	NetCents          int64           `json:"netCents"` // signed
	ProcessorFeeCents int64           `json:"processorFeeCents"`
	PlatformFeeCents  int64           `json:"platformFeeCents"`
	CreatedTs         time.Time       `json:"createdTs"`
	RawPayload        json.RawMessage `json:"-"` // opaque processor record, kept for audit/replay
	AuditFields
}

// Key returns the balance key this transaction contributes to.
func (t LedgerTransaction) Key() BalanceKey {
	return BalanceKey{
		AccountType:     t.AccountType,
		StripeAccountID: t.StripeAccountID,
		Currency:        t.Currency,
	}
}
