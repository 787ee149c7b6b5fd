package dto

// MarkDirtyRequest flags one external account as needing a sync. Sent by
// processor webhooks or manual ops triggers.
type MarkDirtyRequest struct {
	Mode              string `json:"mode" binding:"required,oneof=connected platform"`
	ExternalAccountID string `json:"external_account_id"`
	FromTs            *int64 `json:"from_ts"`
	ToTs              *int64 `json:"to_ts"`
	Source            string `json:"source" binding:"required"`
	EventType         string `json:"event_type"`
}

// MarkDirtyResponse reports whether a sync job was queued. Queued=false with
// a reason means a job for the account is already pending; that is still ok.
type MarkDirtyResponse struct {
	OK          bool   `json:"ok"`
	Queued      bool   `json:"queued"`
	AccountType string `json:"account_type"`
	JobID       string `json:"job_id,omitempty"`
	Deactivated bool   `json:"deactivated,omitempty"`
	Reason      string `json:"reason,omitempty"`
}

// BackfillAllRequest enqueues sync jobs for up to Limit active accounts.
type BackfillAllRequest struct {
	FromTs *int64 `json:"from_ts"`
	ToTs   *int64 `json:"to_ts"`
	Limit  int    `json:"limit" binding:"omitempty,gt=0"`
}

// BackfillAllResult is the enqueue outcome for one account.
type BackfillAllResult struct {
	AccountType     string `json:"account_type"`
	StripeAccountID string `json:"stripe_account_id,omitempty"`
	Queued          bool   `json:"queued"`
	JobID           string `json:"job_id,omitempty"`
	Reason          string `json:"reason,omitempty"`
}

// BackfillAllResponse summarises a bulk enqueue.
type BackfillAllResponse struct {
	OK      bool                `json:"ok"`
	Queued  int                 `json:"queued"`
	Results []BackfillAllResult `json:"results"`
}
