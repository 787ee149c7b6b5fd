package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/tipwave/tip_ledger_backend/internal/core/domain"
	"github.com/tipwave/tip_ledger_backend/internal/core/ports"
)

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) ResolveProfileType(ctx context.Context, stripeAccountID string) (domain.AccountType, error) {
	args := m.Called(ctx, stripeAccountID)
	return args.Get(0).(domain.AccountType), args.Error(1)
}

func (m *MockAccountRepository) EnsureRegistered(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindByTypeAndStripeID(ctx context.Context, accountType domain.AccountType, stripeAccountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountType, stripeAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) Deactivate(ctx context.Context, stripeAccountID string) error {
	args := m.Called(ctx, stripeAccountID)
	return args.Error(0)
}

func (m *MockAccountRepository) ListActive(ctx context.Context, limit int) ([]domain.Account, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) AdvanceWatermark(ctx context.Context, accountType domain.AccountType, stripeAccountID string, ts int64, lastTxnID string) error {
	args := m.Called(ctx, accountType, stripeAccountID, ts, lastTxnID)
	return args.Error(0)
}

// MockLedgerTransactionRepository is a mock type for the LedgerTransactionRepositoryFacade interface
type MockLedgerTransactionRepository struct {
	mock.Mock
}

func (m *MockLedgerTransactionRepository) UpsertTransactions(ctx context.Context, txns []domain.LedgerTransaction) (int, error) {
	args := m.Called(ctx, txns)
	return args.Int(0), args.Error(1)
}

func (m *MockLedgerTransactionRepository) ListOnDate(ctx context.Context, day time.Time) ([]domain.LedgerTransaction, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerTransaction), args.Error(1)
}

func (m *MockLedgerTransactionRepository) SumNetOnDate(ctx context.Context, day time.Time, accountType domain.AccountType, stripeAccountID string) (map[string]int64, error) {
	args := m.Called(ctx, day, accountType, stripeAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

// MockDailyBalanceRepository is a mock type for the DailyBalanceRepositoryFacade interface
type MockDailyBalanceRepository struct {
	mock.Mock
}

func (m *MockDailyBalanceRepository) ListOnDate(ctx context.Context, date time.Time, filter *domain.AccountType) ([]domain.DailyBalance, error) {
	args := m.Called(ctx, date, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailyBalance), args.Error(1)
}

func (m *MockDailyBalanceRepository) FindBalance(ctx context.Context, date time.Time, accountType domain.AccountType, stripeAccountID, currency string) (*domain.DailyBalance, error) {
	args := m.Called(ctx, date, accountType, stripeAccountID, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyBalance), args.Error(1)
}

func (m *MockDailyBalanceRepository) UpsertBalances(ctx context.Context, rows []domain.DailyBalance) error {
	args := m.Called(ctx, rows)
	return args.Error(0)
}

// MockSyncJobRepository is a mock type for the SyncJobRepositoryFacade interface
type MockSyncJobRepository struct {
	mock.Mock
}

func (m *MockSyncJobRepository) EnqueueIfAbsent(ctx context.Context, job domain.SyncJob) (bool, error) {
	args := m.Called(ctx, job)
	return args.Bool(0), args.Error(1)
}

func (m *MockSyncJobRepository) ClaimBatch(ctx context.Context, limit int) ([]domain.SyncJob, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SyncJob), args.Error(1)
}

func (m *MockSyncJobRepository) MarkDone(ctx context.Context, jobID string) error {
	args := m.Called(ctx, jobID)
	return args.Error(0)
}

func (m *MockSyncJobRepository) MarkFailed(ctx context.Context, jobID string, errMsg string) error {
	args := m.Called(ctx, jobID, errMsg)
	return args.Error(0)
}

func (m *MockSyncJobRepository) RequeueStale(ctx context.Context, maxRunningAge time.Duration) (int, error) {
	args := m.Called(ctx, maxRunningAge)
	return args.Int(0), args.Error(1)
}

// MockProcessorClient is a mock type for the ProcessorClient interface
type MockProcessorClient struct {
	mock.Mock
}

func (m *MockProcessorClient) ListBalanceTransactions(ctx context.Context, stripeAccountID string, fromTs, toTs int64) ([]ports.BalanceTransaction, error) {
	args := m.Called(ctx, stripeAccountID, fromTs, toTs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.BalanceTransaction), args.Error(1)
}

func (m *MockProcessorClient) GetCharge(ctx context.Context, stripeAccountID, chargeID string) (*ports.Charge, error) {
	args := m.Called(ctx, stripeAccountID, chargeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.Charge), args.Error(1)
}

func (m *MockProcessorClient) GetBalance(ctx context.Context, stripeAccountID string) ([]ports.CurrencyBalance, error) {
	args := m.Called(ctx, stripeAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.CurrencyBalance), args.Error(1)
}

// MockEventPublisher is a mock type for the EventPublisher interface
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishSyncEvent(ctx context.Context, event ports.SyncEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
