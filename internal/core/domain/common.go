package domain

import "time"

// AccountType identifies which ledger an external processor account belongs to.
type AccountType string

const (
	Platform AccountType = "platform"
	Earner   AccountType = "earner"
	Employer AccountType = "employer"
)

// ValidAccountType reports whether s is one of the known account types.
func ValidAccountType(s string) bool {
	switch AccountType(s) {
	case Platform, Earner, Employer:
		return true
	}
	return false
}

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BalanceKey identifies one independent running balance.
// The platform ledger uses an empty StripeAccountID.
type BalanceKey struct {
	AccountType     AccountType `json:"accountType"`
	StripeAccountID string      `json:"stripeAccountID"`
	Currency        string      `json:"currency"`
}
