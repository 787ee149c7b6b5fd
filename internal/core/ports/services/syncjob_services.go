package services

import (
	"context"
	"time"

	"github.com/tipwave/tip_ledger_backend/internal/core/domain"
)

// SyncJobSvcFacade manages the durable sync-job queue.
type SyncJobSvcFacade interface {
	// Enqueue adds a sync job unless one is already queued or running for the
	// same account. The bool reports whether a new job was queued.
	Enqueue(ctx context.Context, accountType domain.AccountType, stripeAccountID string, fromTs, toTs *int64) (*domain.SyncJob, bool, error)

	// ClaimBatch claims up to limit queued jobs, oldest first.
	ClaimBatch(ctx context.Context, limit int) ([]domain.SyncJob, error)

	MarkDone(ctx context.Context, jobID string) error
	MarkFailed(ctx context.Context, jobID string, errMsg string) error

	// RequeueStale returns jobs abandoned in running back to queued.
	RequeueStale(ctx context.Context, maxRunningAge time.Duration) (int, error)
}
