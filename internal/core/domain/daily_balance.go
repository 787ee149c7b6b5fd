package domain

import "time"

// DailyBalance is the running balance snapshot for one key on one UTC
// calendar day. For consecutive days, BalanceStartCents must equal the
// previous day's BalanceEndCents for the same key.
type DailyBalance struct {
	BalanceDate       time.Time   `json:"balanceDate"` // midnight UTC
	AccountType       AccountType `json:"accountType"`
	StripeAccountID   string      `json:"stripeAccountID"`
	Currency          string      `json:"currency"`
	BalanceStartCents int64       `json:"balanceStartCents"`
	BalanceEndCents   int64       `json:"balanceEndCents"`
	AuditFields
}

// Key returns the balance key of this row.
func (b DailyBalance) Key() BalanceKey {
	return BalanceKey{
		AccountType:     b.AccountType,
		StripeAccountID: b.StripeAccountID,
		Currency:        b.Currency,
	}
}

// BalanceDelta is the net movement for one key on one day.
type BalanceDelta struct {
	AccountType     AccountType `json:"accountType"`
	StripeAccountID string      `json:"stripeAccountID"`
	Currency        string      `json:"currency"`
	DeltaCents      int64       `json:"deltaCents"`
}

// Key returns the balance key of this delta.
func (d BalanceDelta) Key() BalanceKey {
	return BalanceKey{
		AccountType:     d.AccountType,
		StripeAccountID: d.StripeAccountID,
		Currency:        d.Currency,
	}
}

// RecomputeDayResult reports one day's aggregation outcome.
type RecomputeDayResult struct {
	Date        time.Time `json:"date"`
	RowsWritten int       `json:"rowsWritten"`
}
