package repositories

import (
	"context"
	"time"

	"github.com/tipwave/tip_ledger_backend/internal/core/domain"
)

// SyncJobRepositoryFacade persists the durable sync-job queue.
type SyncJobRepositoryFacade interface {
	// EnqueueIfAbsent inserts the job unless one is already queued or running
	// for the same (account type, external id). Reports whether a row was
	// actually inserted.
	EnqueueIfAbsent(ctx context.Context, job domain.SyncJob) (bool, error)

	// ClaimBatch atomically moves up to limit queued jobs (oldest first) to
	// running and returns them. Concurrent workers never claim the same job.
	ClaimBatch(ctx context.Context, limit int) ([]domain.SyncJob, error)

	// MarkDone finishes a job successfully.
	MarkDone(ctx context.Context, jobID string) error

	// MarkFailed records the error and increments the attempts counter.
	// Retry scheduling is left to an external caller.
	MarkFailed(ctx context.Context, jobID string, errMsg string) error

	// RequeueStale returns jobs stuck in running longer than maxRunningAge to
	// queued, bumping attempts. Covers workers that crashed mid-job.
	RequeueStale(ctx context.Context, maxRunningAge time.Duration) (int, error)
}
