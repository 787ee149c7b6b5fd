package domain

// ReconcileResult is the outcome of comparing the ledger-implied balance for
// one key on one day against the processor's live-reported balance. It is a
// read-only diagnostic; nothing is mutated when drift is found.
type ReconcileResult struct {
	Currency          string `json:"currency"`
	BalanceStartCents int64  `json:"balanceStartCents"` // prior day's ledger balance_end
	BalanceEndCents   int64  `json:"balanceEndCents"`   // processor live available+pending
	DeltaCents        int64  `json:"deltaCents"`        // ledger net movement on the day
	ExpectedEndCents  int64  `json:"expectedEndCents"`  // balance_start + delta
	Matched           bool   `json:"matched"`
}

// IngestResult summarises one ingestion window.
type IngestResult struct {
	TransactionsWritten int      `json:"transactionsWritten"`
	FirstCreatedTs      int64    `json:"firstCreatedTs"` // unix seconds of oldest record seen
	LastCreatedTs       int64    `json:"lastCreatedTs"`  // unix seconds of newest record seen
	LastTxnID           string   `json:"lastTxnID"`      // processor id of newest record seen
	Errors              []string `json:"errors"`         // per-record enrichment failures, best-effort
}
