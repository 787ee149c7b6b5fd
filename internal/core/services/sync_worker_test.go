package services_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tipwave/tip_ledger_backend/internal/core/domain"
	"github.com/tipwave/tip_ledger_backend/internal/core/ports"
	portsrepo "github.com/tipwave/tip_ledger_backend/internal/core/ports/repositories"
	"github.com/tipwave/tip_ledger_backend/internal/core/services"
)

// The worker tests run real services over mocked repositories so one Tick
// exercises the whole claim -> ingest -> aggregate -> watermark chain.
type SyncWorkerTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockLedgerRepo  *MockLedgerTransactionRepository
	mockDailyRepo   *MockDailyBalanceRepository
	mockJobRepo     *MockSyncJobRepository
	mockProcessor   *MockProcessorClient
	mockPublisher   *MockEventPublisher
	worker          *services.SyncWorker
}

func (suite *SyncWorkerTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockLedgerRepo = new(MockLedgerTransactionRepository)
	suite.mockDailyRepo = new(MockDailyBalanceRepository)
	suite.mockJobRepo = new(MockSyncJobRepository)
	suite.mockProcessor = new(MockProcessorClient)
	suite.mockPublisher = new(MockEventPublisher)

	container := services.NewServiceContainer(portsrepo.RepositoryProvider{
		AccountRepo:      suite.mockAccountRepo,
		LedgerTxnRepo:    suite.mockLedgerRepo,
		DailyBalanceRepo: suite.mockDailyRepo,
		SyncJobRepo:      suite.mockJobRepo,
	}, suite.mockProcessor)

	suite.worker = services.NewSyncWorker(slog.Default(), container, suite.mockPublisher,
		5, time.Second, 10*time.Minute)
}

func (suite *SyncWorkerTestSuite) TestTick_ProcessesJobEndToEnd() {
	fromTs := day("2026-03-10").Unix()
	toTs := day("2026-03-10").Add(6 * time.Hour).Unix()
	job := domain.SyncJob{
		JobID:           "job_1",
		JobType:         "sync",
		Status:          domain.JobRunning,
		AccountType:     domain.Earner,
		StripeAccountID: "acct_1",
		FromTs:          &fromTs,
		ToTs:            &toTs,
	}

	suite.mockJobRepo.On("RequeueStale", mock.Anything, 10*time.Minute).Return(0, nil).Once()
	suite.mockJobRepo.On("ClaimBatch", mock.Anything, 5).Return([]domain.SyncJob{job}, nil).Once()

	suite.mockProcessor.On("ListBalanceTransactions", mock.Anything, "acct_1", fromTs, toTs).
		Return([]ports.BalanceTransaction{{
			ID:        "txn_1",
			Type:      "charge",
			Currency:  "USD",
			NetCents:  4600,
			FeeCents:  150,
			SourceID:  "tr_1",
			CreatedTs: fromTs + 3600,
		}}, nil).Once()
	suite.mockLedgerRepo.On("UpsertTransactions", mock.Anything, mock.Anything).Return(1, nil).Once()

	// Aggregation over the single-day window.
	d := day("2026-03-10")
	suite.mockLedgerRepo.On("ListOnDate", mock.Anything, d).Return([]domain.LedgerTransaction{
		txn(domain.Earner, "acct_1", "USD", 4600, d.Add(time.Hour)),
	}, nil).Once()
	filter := domain.Earner
	suite.mockDailyRepo.On("ListOnDate", mock.Anything, d.AddDate(0, 0, -1), &filter).
		Return([]domain.DailyBalance{}, nil).Once()
	suite.mockDailyRepo.On("UpsertBalances", mock.Anything, mock.Anything).Return(nil).Once()

	suite.mockAccountRepo.On("AdvanceWatermark", mock.Anything, domain.Earner, "acct_1", fromTs+3600, "txn_1").
		Return(nil).Once()
	suite.mockJobRepo.On("MarkDone", mock.Anything, "job_1").Return(nil).Once()
	suite.mockPublisher.On("PublishSyncEvent", mock.Anything, mock.MatchedBy(func(e ports.SyncEvent) bool {
		return e.JobID == "job_1" && e.Status == "done" && e.TransactionsWritten == 1
	})).Return(nil).Once()

	suite.worker.Tick(context.Background())

	suite.mockJobRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockPublisher.AssertExpectations(suite.T())
}

func (suite *SyncWorkerTestSuite) TestTick_OpenWindowFallsBackToWatermark() {
	watermark := day("2026-03-09").Unix()
	toTs := day("2026-03-09").Add(time.Hour).Unix()
	job := domain.SyncJob{
		JobID:           "job_2",
		JobType:         "sync",
		Status:          domain.JobRunning,
		AccountType:     domain.Earner,
		StripeAccountID: "acct_1",
		ToTs:            &toTs, // FromTs nil: resume from the account watermark
	}

	suite.mockJobRepo.On("RequeueStale", mock.Anything, 10*time.Minute).Return(0, nil).Once()
	suite.mockJobRepo.On("ClaimBatch", mock.Anything, 5).Return([]domain.SyncJob{job}, nil).Once()
	suite.mockAccountRepo.On("FindByTypeAndStripeID", mock.Anything, domain.Earner, "acct_1").
		Return(&domain.Account{AccountType: domain.Earner, StripeAccountID: "acct_1", LastSyncedTs: watermark}, nil).Once()

	// Nothing new since the watermark: the day is recomputed but the
	// watermark does not move.
	suite.mockProcessor.On("ListBalanceTransactions", mock.Anything, "acct_1", watermark, toTs).
		Return([]ports.BalanceTransaction{}, nil).Once()
	d := day("2026-03-09")
	suite.mockLedgerRepo.On("ListOnDate", mock.Anything, d).Return([]domain.LedgerTransaction{}, nil).Once()
	filter := domain.Earner
	suite.mockDailyRepo.On("ListOnDate", mock.Anything, d.AddDate(0, 0, -1), &filter).
		Return([]domain.DailyBalance{}, nil).Once()
	suite.mockJobRepo.On("MarkDone", mock.Anything, "job_2").Return(nil).Once()
	suite.mockPublisher.On("PublishSyncEvent", mock.Anything, mock.Anything).Return(nil).Once()

	suite.worker.Tick(context.Background())

	suite.mockAccountRepo.AssertNotCalled(suite.T(), "AdvanceWatermark",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockJobRepo.AssertExpectations(suite.T())
}

func (suite *SyncWorkerTestSuite) TestTick_FailedJobIsMarkedAndPublished() {
	fromTs := int64(100)
	toTs := int64(200)
	job := domain.SyncJob{
		JobID:           "job_3",
		JobType:         "sync",
		Status:          domain.JobRunning,
		AccountType:     domain.Employer,
		StripeAccountID: "acct_2",
		FromTs:          &fromTs,
		ToTs:            &toTs,
	}

	suite.mockJobRepo.On("RequeueStale", mock.Anything, 10*time.Minute).Return(0, nil).Once()
	suite.mockJobRepo.On("ClaimBatch", mock.Anything, 5).Return([]domain.SyncJob{job}, nil).Once()
	suite.mockProcessor.On("ListBalanceTransactions", mock.Anything, "acct_2", fromTs, toTs).
		Return(nil, assert.AnError).Once()
	suite.mockJobRepo.On("MarkFailed", mock.Anything, "job_3", mock.AnythingOfType("string")).Return(nil).Once()
	suite.mockPublisher.On("PublishSyncEvent", mock.Anything, mock.MatchedBy(func(e ports.SyncEvent) bool {
		return e.JobID == "job_3" && e.Status == "failed" && e.Error != ""
	})).Return(nil).Once()

	suite.worker.Tick(context.Background())

	suite.mockJobRepo.AssertExpectations(suite.T())
	suite.mockJobRepo.AssertNotCalled(suite.T(), "MarkDone", mock.Anything, mock.Anything)
}

func (suite *SyncWorkerTestSuite) TestTick_EmptyQueueDoesNothing() {
	suite.mockJobRepo.On("RequeueStale", mock.Anything, 10*time.Minute).Return(0, nil).Once()
	suite.mockJobRepo.On("ClaimBatch", mock.Anything, 5).Return([]domain.SyncJob{}, nil).Once()

	suite.worker.Tick(context.Background())

	suite.mockProcessor.AssertNotCalled(suite.T(), "ListBalanceTransactions",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSyncWorkerTestSuite(t *testing.T) {
	suite.Run(t, new(SyncWorkerTestSuite))
}
