package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/tipwave/tip_ledger_backend/internal/core/domain"
	"github.com/tipwave/tip_ledger_backend/internal/core/ports"
	portssvc "github.com/tipwave/tip_ledger_backend/internal/core/ports/services"
	"github.com/tipwave/tip_ledger_backend/internal/middleware"
)

// SyncWorker drains the sync-job queue: each job runs ingestion, then the
// balance aggregator over the job's window, then advances the account
// watermark. Jobs for independent accounts never share a balance key, so a
// batch is processed sequentially without further coordination.
type SyncWorker struct {
	logger       *slog.Logger
	services     *portssvc.ServiceContainer
	publisher    ports.EventPublisher
	batchSize    int
	pollInterval time.Duration
	runningLease time.Duration
}

// NewSyncWorker creates a worker over the given services.
func NewSyncWorker(
	logger *slog.Logger,
	services *portssvc.ServiceContainer,
	publisher ports.EventPublisher,
	batchSize int,
	pollInterval time.Duration,
	runningLease time.Duration,
) *SyncWorker {
	return &SyncWorker{
		logger:       logger.With(slog.String("component", "sync_worker")),
		services:     services,
		publisher:    publisher,
		batchSize:    batchSize,
		pollInterval: pollInterval,
		runningLease: runningLease,
	}
}

// Run polls the queue until ctx is cancelled.
func (w *SyncWorker) Run(ctx context.Context) {
	w.logger.Info("Sync worker starting",
		slog.Int("batch_size", w.batchSize),
		slog.Duration("poll_interval", w.pollInterval))

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Sync worker stopping")
			return
		case <-ticker.C:
			w.Tick(ctx)
		}
	}
}

// Tick performs one poll cycle: reclaim stale jobs, then claim and process a
// batch. Exported so schedulers and tests can drive the worker directly.
func (w *SyncWorker) Tick(ctx context.Context) {
	ctx = middleware.WithLogger(ctx, w.logger)

	if _, err := w.services.SyncJob.RequeueStale(ctx, w.runningLease); err != nil {
		w.logger.Error("Stale job sweep failed", slog.String("error", err.Error()))
	}

	jobs, err := w.services.SyncJob.ClaimBatch(ctx, w.batchSize)
	if err != nil {
		w.logger.Error("Failed to claim jobs", slog.String("error", err.Error()))
		return
	}

	for _, job := range jobs {
		w.processJob(ctx, job)
	}
}

func (w *SyncWorker) processJob(ctx context.Context, job domain.SyncJob) {
	jobLogger := w.logger.With(
		slog.String("job_id", job.JobID),
		slog.String("account_type", string(job.AccountType)),
		slog.String("stripe_account_id", job.StripeAccountID))
	ctx = middleware.WithLogger(ctx, jobLogger)

	ingestRes, err := w.runJob(ctx, job)
	if err != nil {
		jobLogger.Error("Sync job failed", slog.String("error", err.Error()))
		if markErr := w.services.SyncJob.MarkFailed(ctx, job.JobID, err.Error()); markErr != nil {
			jobLogger.Error("Failed to record job failure", slog.String("error", markErr.Error()))
		}
		w.publish(ctx, job, "failed", ingestRes, err)
		return
	}

	if err := w.services.SyncJob.MarkDone(ctx, job.JobID); err != nil {
		jobLogger.Error("Failed to mark job done", slog.String("error", err.Error()))
		return
	}
	jobLogger.Info("Sync job complete",
		slog.Int("transactions_written", ingestRes.TransactionsWritten))
	w.publish(ctx, job, "done", ingestRes, nil)
}

// runJob resolves the job window, ingests it and recomputes the affected days.
func (w *SyncWorker) runJob(ctx context.Context, job domain.SyncJob) (domain.IngestResult, error) {
	now := time.Now().UTC()

	var fromTs int64
	if job.FromTs != nil {
		fromTs = *job.FromTs
	} else if account, err := w.services.Registry.FindAccount(ctx, job.AccountType, job.StripeAccountID); err != nil {
		return domain.IngestResult{}, err
	} else if account != nil {
		fromTs = account.LastSyncedTs
	}

	toTs := now.Unix()
	if job.ToTs != nil {
		toTs = *job.ToTs
	}

	result, err := w.services.Ingestion.Ingest(ctx, job.AccountType, job.StripeAccountID, fromTs, toTs)
	if err != nil {
		return result, err
	}

	startTs := fromTs
	if startTs == 0 {
		// Open-ended backfill: recompute from the oldest ingested record.
		if result.FirstCreatedTs == 0 {
			return result, nil // nothing fetched, nothing to aggregate
		}
		startTs = result.FirstCreatedTs
	}

	filter := job.AccountType
	startDate := time.Unix(startTs, 0).UTC()
	endDate := time.Unix(toTs, 0).UTC()
	if _, err := w.services.Balance.Recompute(ctx, startDate, endDate, &filter); err != nil {
		return result, err
	}

	if result.LastCreatedTs > 0 {
		if err := w.services.Registry.AdvanceWatermark(ctx, job.AccountType, job.StripeAccountID, result.LastCreatedTs, result.LastTxnID); err != nil {
			return result, err
		}
	}
	return result, nil
}

func (w *SyncWorker) publish(ctx context.Context, job domain.SyncJob, status string, res domain.IngestResult, jobErr error) {
	if w.publisher == nil {
		return
	}
	event := ports.SyncEvent{
		JobID:               job.JobID,
		AccountType:         job.AccountType,
		StripeAccountID:     job.StripeAccountID,
		Status:              status,
		TransactionsWritten: res.TransactionsWritten,
		OccurredAt:          time.Now().UTC(),
	}
	if jobErr != nil {
		event.Error = jobErr.Error()
	}
	if err := w.publisher.PublishSyncEvent(ctx, event); err != nil {
		w.logger.Warn("Failed to publish sync event",
			slog.String("job_id", job.JobID),
			slog.String("error", err.Error()))
	}
}
