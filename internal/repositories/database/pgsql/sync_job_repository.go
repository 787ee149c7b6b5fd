package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tipwave/tip_ledger_backend/internal/apperrors"
	"github.com/tipwave/tip_ledger_backend/internal/core/domain"
	portsrepo "github.com/tipwave/tip_ledger_backend/internal/core/ports/repositories"
)

type PgxSyncJobRepository struct {
	BaseRepository
}

// newPgxSyncJobRepository creates a repository for the durable sync-job queue.
func newPgxSyncJobRepository(pool *pgxpool.Pool) portsrepo.SyncJobRepositoryFacade {
	return &PgxSyncJobRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SyncJobRepositoryFacade = (*PgxSyncJobRepository)(nil)

// EnqueueIfAbsent relies on the partial unique index over pending jobs: a
// concurrent webhook storm races into a single inserted row, every other
// insert is a no-op.
func (r *PgxSyncJobRepository) EnqueueIfAbsent(ctx context.Context, job domain.SyncJob) (bool, error) {
	query := `
		INSERT INTO sync_jobs (
			job_id, job_type, status, account_type, stripe_account_id,
			from_ts, to_ts, attempts, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (account_type, stripe_account_id) WHERE status IN ('queued', 'running')
		DO NOTHING;
	`
	tag, err := r.Pool.Exec(ctx, query,
		job.JobID,
		job.JobType,
		job.Status,
		job.AccountType,
		job.StripeAccountID,
		job.FromTs,
		job.ToTs,
		job.Attempts,
		job.CreatedAt,
		job.UpdatedAt,
	)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to enqueue sync job", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ClaimBatch moves up to limit queued jobs to running, oldest first.
// FOR UPDATE SKIP LOCKED keeps concurrent workers off each other's claims.
func (r *PgxSyncJobRepository) ClaimBatch(ctx context.Context, limit int) ([]domain.SyncJob, error) {
	query := `
		UPDATE sync_jobs
		SET status = 'running', started_at = NOW(), updated_at = NOW()
		WHERE job_id IN (
			SELECT job_id FROM sync_jobs
			WHERE status = 'queued'
			ORDER BY created_at ASC
			LIMIT $1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING job_id, job_type, status, account_type, stripe_account_id,
		          from_ts, to_ts, attempts, last_error, started_at, finished_at,
		          created_at, updated_at;
	`
	rows, err := r.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to claim sync jobs", err)
	}
	defer rows.Close()

	var jobs []domain.SyncJob
	for rows.Next() {
		var job domain.SyncJob
		if err := rows.Scan(
			&job.JobID,
			&job.JobType,
			&job.Status,
			&job.AccountType,
			&job.StripeAccountID,
			&job.FromTs,
			&job.ToTs,
			&job.Attempts,
			&job.LastError,
			&job.StartedAt,
			&job.FinishedAt,
			&job.CreatedAt,
			&job.UpdatedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan sync job row", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate sync job rows", err)
	}
	return jobs, nil
}

func (r *PgxSyncJobRepository) MarkDone(ctx context.Context, jobID string) error {
	query := `
		UPDATE sync_jobs
		SET status = 'done', finished_at = NOW(), updated_at = NOW()
		WHERE job_id = $1 AND status = 'running';
	`
	if _, err := r.Pool.Exec(ctx, query, jobID); err != nil {
		return apperrors.NewAppError(500, "failed to mark sync job done", err)
	}
	return nil
}

func (r *PgxSyncJobRepository) MarkFailed(ctx context.Context, jobID string, errMsg string) error {
	query := `
		UPDATE sync_jobs
		SET status = 'failed', last_error = $2, attempts = attempts + 1,
		    finished_at = NOW(), updated_at = NOW()
		WHERE job_id = $1;
	`
	if _, err := r.Pool.Exec(ctx, query, jobID, errMsg); err != nil {
		return apperrors.NewAppError(500, "failed to mark sync job failed", err)
	}
	return nil
}

// RequeueStale reclaims jobs whose worker died mid-run. The running marker is
// advisory only, so anything past the lease goes back to queued.
func (r *PgxSyncJobRepository) RequeueStale(ctx context.Context, maxRunningAge time.Duration) (int, error) {
	cutoff := time.Now().UTC().Add(-maxRunningAge)
	query := `
		UPDATE sync_jobs
		SET status = 'queued', attempts = attempts + 1, started_at = NULL,
		    last_error = 'requeued: running past lease', updated_at = NOW()
		WHERE status = 'running' AND started_at < $1;
	`
	tag, err := r.Pool.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to requeue stale sync jobs", err)
	}
	return int(tag.RowsAffected()), nil
}
