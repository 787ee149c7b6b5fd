package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tipwave/tip_ledger_backend/internal/core/domain"
	portssvc "github.com/tipwave/tip_ledger_backend/internal/core/ports/services"
	"github.com/tipwave/tip_ledger_backend/internal/core/services"
)

type SyncJobServiceTestSuite struct {
	suite.Suite
	mockRepo *MockSyncJobRepository
	service  portssvc.SyncJobSvcFacade
}

func (suite *SyncJobServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockSyncJobRepository)
	suite.service = services.NewSyncJobService(suite.mockRepo)
}

func (suite *SyncJobServiceTestSuite) TestEnqueue_NewJob() {
	ctx := context.Background()
	fromTs := int64(1000)

	suite.mockRepo.On("EnqueueIfAbsent", ctx, mock.MatchedBy(func(job domain.SyncJob) bool {
		return job.Status == domain.JobQueued &&
			job.JobType == "sync" &&
			job.AccountType == domain.Earner &&
			job.StripeAccountID == "acct_1" &&
			job.FromTs != nil && *job.FromTs == 1000 &&
			job.ToTs == nil &&
			job.JobID != ""
	})).Return(true, nil).Once()

	job, queued, err := suite.service.Enqueue(ctx, domain.Earner, "acct_1", &fromTs, nil)

	suite.Require().NoError(err)
	suite.True(queued)
	suite.Require().NotNil(job)
	suite.Equal(domain.JobQueued, job.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SyncJobServiceTestSuite) TestEnqueue_DuplicateIsSkipped() {
	ctx := context.Background()

	// A job for this account is already queued or running.
	suite.mockRepo.On("EnqueueIfAbsent", ctx, mock.AnythingOfType("domain.SyncJob")).
		Return(false, nil).Once()

	job, queued, err := suite.service.Enqueue(ctx, domain.Earner, "acct_1", nil, nil)

	suite.Require().NoError(err)
	suite.False(queued)
	suite.Nil(job)
}

func (suite *SyncJobServiceTestSuite) TestEnqueue_RepoError() {
	ctx := context.Background()

	suite.mockRepo.On("EnqueueIfAbsent", ctx, mock.AnythingOfType("domain.SyncJob")).
		Return(false, assert.AnError).Once()

	_, queued, err := suite.service.Enqueue(ctx, domain.Earner, "acct_1", nil, nil)

	suite.Require().Error(err)
	suite.False(queued)
	suite.ErrorIs(err, assert.AnError)
}

func (suite *SyncJobServiceTestSuite) TestRequeueStale() {
	ctx := context.Background()

	suite.mockRepo.On("RequeueStale", ctx, 10*time.Minute).Return(2, nil).Once()

	n, err := suite.service.RequeueStale(ctx, 10*time.Minute)

	suite.Require().NoError(err)
	suite.Equal(2, n)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SyncJobServiceTestSuite) TestMarkDoneAndFailed() {
	ctx := context.Background()

	suite.mockRepo.On("MarkDone", ctx, "job_1").Return(nil).Once()
	suite.mockRepo.On("MarkFailed", ctx, "job_2", "boom").Return(nil).Once()

	suite.Require().NoError(suite.service.MarkDone(ctx, "job_1"))
	suite.Require().NoError(suite.service.MarkFailed(ctx, "job_2", "boom"))
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestSyncJobServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SyncJobServiceTestSuite))
}
