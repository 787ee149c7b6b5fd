package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/tipwave/tip_ledger_backend/internal/core/domain"
	portsrepo "github.com/tipwave/tip_ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/tipwave/tip_ledger_backend/internal/core/ports/services"
)

// syncJobService manages the durable sync-job queue.
type syncJobService struct {
	BaseService
	jobRepo portsrepo.SyncJobRepositoryFacade
}

// NewSyncJobService creates a new sync-job service.
func NewSyncJobService(jobRepo portsrepo.SyncJobRepositoryFacade) portssvc.SyncJobSvcFacade {
	return &syncJobService{jobRepo: jobRepo}
}

var _ portssvc.SyncJobSvcFacade = (*syncJobService)(nil)

// Enqueue inserts a sync job unless one is already queued or running for the
// same account. Webhook storms therefore collapse into a single pending sync.
func (s *syncJobService) Enqueue(ctx context.Context, accountType domain.AccountType, stripeAccountID string, fromTs, toTs *int64) (*domain.SyncJob, bool, error) {
	now := time.Now().UTC()
	job := domain.SyncJob{
		JobID:           uuid.NewString(),
		JobType:         "sync",
		Status:          domain.JobQueued,
		AccountType:     accountType,
		StripeAccountID: stripeAccountID,
		FromTs:          fromTs,
		ToTs:            toTs,
		Attempts:        0,
		AuditFields:     domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	inserted, err := s.jobRepo.EnqueueIfAbsent(ctx, job)
	if err != nil {
		return nil, false, fmt.Errorf("failed to enqueue sync job: %w", err)
	}
	if !inserted {
		s.LogInfo(ctx, "Sync job already queued or running, skipping",
			slog.String("account_type", string(accountType)),
			slog.String("stripe_account_id", stripeAccountID))
		return nil, false, nil
	}

	s.LogInfo(ctx, "Sync job queued",
		slog.String("job_id", job.JobID),
		slog.String("account_type", string(accountType)),
		slog.String("stripe_account_id", stripeAccountID))
	return &job, true, nil
}

func (s *syncJobService) ClaimBatch(ctx context.Context, limit int) ([]domain.SyncJob, error) {
	jobs, err := s.jobRepo.ClaimBatch(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to claim sync jobs: %w", err)
	}
	return jobs, nil
}

func (s *syncJobService) MarkDone(ctx context.Context, jobID string) error {
	if err := s.jobRepo.MarkDone(ctx, jobID); err != nil {
		return fmt.Errorf("failed to mark job %s done: %w", jobID, err)
	}
	return nil
}

func (s *syncJobService) MarkFailed(ctx context.Context, jobID string, errMsg string) error {
	if err := s.jobRepo.MarkFailed(ctx, jobID, errMsg); err != nil {
		return fmt.Errorf("failed to mark job %s failed: %w", jobID, err)
	}
	return nil
}

// RequeueStale returns jobs abandoned in running back to queued. The running
// state is advisory, not a hard lock: a crashed worker leaves its job stuck
// until this sweep reclaims it.
func (s *syncJobService) RequeueStale(ctx context.Context, maxRunningAge time.Duration) (int, error) {
	n, err := s.jobRepo.RequeueStale(ctx, maxRunningAge)
	if err != nil {
		return 0, fmt.Errorf("failed to requeue stale jobs: %w", err)
	}
	if n > 0 {
		s.LogWarn(ctx, "Requeued stale running jobs", slog.Int("count", n))
	}
	return n, nil
}
