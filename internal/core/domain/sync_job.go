package domain

import "time"

// SyncJobStatus tracks a sync job through its lifecycle.
type SyncJobStatus string

const (
	JobQueued  SyncJobStatus = "queued"
	JobRunning SyncJobStatus = "running"
	JobDone    SyncJobStatus = "done"
	JobFailed  SyncJobStatus = "failed"
)

// SyncJob instructs the worker to ingest and aggregate one account's
// activity over a time window. At most one job per (account type, external
// id) may sit in queued or running; enqueue is deduplicated against that.
type SyncJob struct {
	JobID           string        `json:"jobID"`
	JobType         string        `json:"jobType"` // always "sync" for now
	Status          SyncJobStatus `json:"status"`
	AccountType     AccountType   `json:"accountType"`
	StripeAccountID string        `json:"stripeAccountID"`
	FromTs          *int64        `json:"fromTs,omitempty"` // unix seconds, open-ended when nil
	ToTs            *int64        `json:"toTs,omitempty"`
	Attempts        int           `json:"attempts"`
	LastError       *string       `json:"lastError,omitempty"`
	StartedAt       *time.Time    `json:"startedAt,omitempty"`
	FinishedAt      *time.Time    `json:"finishedAt,omitempty"`
	AuditFields
}
