package domain

// Account is a registry entry mapping an external processor account to an
// internal ledger. The platform's own account carries an empty
// StripeAccountID; there is exactly one such row.
type Account struct {
	AccountID       string      `json:"accountID"`
	AccountType     AccountType `json:"accountType"`
	StripeAccountID string      `json:"stripeAccountID"` // empty for the platform row
	InternalID      string      `json:"internalID"`      // earner/employer record id, empty for platform
	IsActive        bool        `json:"isActive"`
	LastSyncedTs    int64       `json:"lastSyncedTs"`   // unix seconds watermark
	LastSyncedTxID  string      `json:"lastSyncedTxID"` // processor transaction cursor
	AuditFields
}
