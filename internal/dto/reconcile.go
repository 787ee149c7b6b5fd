package dto

// ReconcileResponse reports one account's ledger-vs-processor comparison for
// one day. Cent fields are exact; display fields are decimal strings for
// human consumption.
type ReconcileResponse struct {
	OK                  bool   `json:"ok"`
	Currency            string `json:"currency"`
	BalanceStartCents   int64  `json:"balance_start_cents"`
	BalanceEndCents     int64  `json:"balance_end_cents"`
	DeltaCents          int64  `json:"delta_cents"`
	ExpectedEndCents    int64  `json:"expected_end_cents"`
	Matched             bool   `json:"matched"`
	BalanceStartDisplay string `json:"balance_start_display"`
	BalanceEndDisplay   string `json:"balance_end_display"`
	DeltaDisplay        string `json:"delta_display"`
}

// ErrorResponse is the uniform failure body for all trigger endpoints.
type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}
