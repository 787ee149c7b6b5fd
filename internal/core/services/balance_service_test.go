package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tipwave/tip_ledger_backend/internal/apperrors"
	"github.com/tipwave/tip_ledger_backend/internal/core/domain"
	portssvc "github.com/tipwave/tip_ledger_backend/internal/core/ports/services"
	"github.com/tipwave/tip_ledger_backend/internal/core/services"
)

func day(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func txn(accountType domain.AccountType, stripeAccountID, currency string, netCents int64, createdTs time.Time) domain.LedgerTransaction {
	return domain.LedgerTransaction{
		StripeTxnID:     "txn_" + createdTs.Format("20060102T150405") + currency,
		AccountType:     accountType,
		StripeAccountID: stripeAccountID,
		Currency:        currency,
		NetCents:        netCents,
		CreatedTs:       createdTs,
	}
}

func TestComputeDailyDeltas_GroupsPerKey(t *testing.T) {
	d := day("2026-03-10")
	txns := []domain.LedgerTransaction{
		txn(domain.Earner, "acct_1", "USD", 4600, d.Add(2*time.Hour)),
		txn(domain.Earner, "acct_1", "USD", -1000, d.Add(5*time.Hour)),
		txn(domain.Earner, "acct_2", "USD", 300, d.Add(6*time.Hour)),
		txn(domain.Earner, "acct_1", "EUR", 250, d.Add(7*time.Hour)),
		txn(domain.Platform, "", "USD", 150, d.Add(8*time.Hour)),
	}

	deltas := services.ComputeDailyDeltas(txns, d, nil)

	assert.Equal(t, []domain.BalanceDelta{
		{AccountType: domain.Earner, StripeAccountID: "acct_1", Currency: "EUR", DeltaCents: 250},
		{AccountType: domain.Earner, StripeAccountID: "acct_1", Currency: "USD", DeltaCents: 3600},
		{AccountType: domain.Earner, StripeAccountID: "acct_2", Currency: "USD", DeltaCents: 300},
		{AccountType: domain.Platform, StripeAccountID: "", Currency: "USD", DeltaCents: 150},
	}, deltas)
}

func TestComputeDailyDeltas_IgnoresOtherDays(t *testing.T) {
	d := day("2026-03-10")
	txns := []domain.LedgerTransaction{
		txn(domain.Earner, "acct_1", "USD", 100, d.Add(-time.Second)),               // previous day
		txn(domain.Earner, "acct_1", "USD", 200, d),                                 // midnight inclusive
		txn(domain.Earner, "acct_1", "USD", 300, d.Add(24*time.Hour-time.Second)),   // last second
		txn(domain.Earner, "acct_1", "USD", 400, d.Add(24*time.Hour)),               // next day
	}

	deltas := services.ComputeDailyDeltas(txns, d, nil)

	assert.Equal(t, []domain.BalanceDelta{
		{AccountType: domain.Earner, StripeAccountID: "acct_1", Currency: "USD", DeltaCents: 500},
	}, deltas)
}

func TestComputeDailyDeltas_AccountTypeFilter(t *testing.T) {
	d := day("2026-03-10")
	txns := []domain.LedgerTransaction{
		txn(domain.Earner, "acct_1", "USD", 100, d.Add(time.Hour)),
		txn(domain.Employer, "acct_9", "USD", 999, d.Add(time.Hour)),
		txn(domain.Platform, "", "USD", 50, d.Add(time.Hour)),
	}

	filter := domain.Earner
	deltas := services.ComputeDailyDeltas(txns, d, &filter)

	assert.Equal(t, []domain.BalanceDelta{
		{AccountType: domain.Earner, StripeAccountID: "acct_1", Currency: "USD", DeltaCents: 100},
	}, deltas)
}

func TestComputeDailyDeltas_Empty(t *testing.T) {
	deltas := services.ComputeDailyDeltas(nil, day("2026-03-10"), nil)
	assert.Empty(t, deltas)
}

// --- Test Suite Setup ---

type BalanceServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo *MockLedgerTransactionRepository
	mockDailyRepo  *MockDailyBalanceRepository
	service        portssvc.BalanceSvcFacade
}

func (suite *BalanceServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerTransactionRepository)
	suite.mockDailyRepo = new(MockDailyBalanceRepository)
	suite.service = services.NewBalanceService(suite.mockLedgerRepo, suite.mockDailyRepo)
}

// --- Test Cases ---

func (suite *BalanceServiceTestSuite) TestRecompute_NewKeyStartsFromZero() {
	ctx := context.Background()
	d := day("2026-03-10")

	suite.mockLedgerRepo.On("ListOnDate", ctx, d).Return([]domain.LedgerTransaction{
		txn(domain.Earner, "acct_1", "USD", 4600, d.Add(time.Hour)),
	}, nil).Once()
	suite.mockDailyRepo.On("ListOnDate", ctx, d.AddDate(0, 0, -1), (*domain.AccountType)(nil)).
		Return([]domain.DailyBalance{}, nil).Once()
	suite.mockDailyRepo.On("UpsertBalances", ctx, mock.MatchedBy(func(rows []domain.DailyBalance) bool {
		return len(rows) == 1 &&
			rows[0].BalanceStartCents == 0 &&
			rows[0].BalanceEndCents == 4600 &&
			rows[0].BalanceDate.Equal(d)
	})).Return(nil).Once()

	results, err := suite.service.Recompute(ctx, d, d, nil)

	suite.Require().NoError(err)
	suite.Require().Len(results, 1)
	suite.Equal(1, results[0].RowsWritten)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
	suite.mockDailyRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestRecompute_ContinuityAcrossDays() {
	ctx := context.Background()
	day1 := day("2026-03-10")
	day2 := day("2026-03-11")

	// Day 1: +10000 from zero.
	suite.mockLedgerRepo.On("ListOnDate", ctx, day1).Return([]domain.LedgerTransaction{
		txn(domain.Earner, "acct_1", "USD", 10000, day1.Add(time.Hour)),
	}, nil).Once()
	suite.mockDailyRepo.On("ListOnDate", ctx, day1.AddDate(0, 0, -1), (*domain.AccountType)(nil)).
		Return([]domain.DailyBalance{}, nil).Once()

	// Day 2: -3000, starting from day 1's end balance.
	suite.mockLedgerRepo.On("ListOnDate", ctx, day2).Return([]domain.LedgerTransaction{
		txn(domain.Earner, "acct_1", "USD", -3000, day2.Add(time.Hour)),
	}, nil).Once()
	suite.mockDailyRepo.On("ListOnDate", ctx, day1, (*domain.AccountType)(nil)).
		Return([]domain.DailyBalance{{
			BalanceDate:     day1,
			AccountType:     domain.Earner,
			StripeAccountID: "acct_1",
			Currency:        "USD",
			BalanceEndCents: 10000,
		}}, nil).Once()

	suite.mockDailyRepo.On("UpsertBalances", ctx, mock.MatchedBy(func(rows []domain.DailyBalance) bool {
		return len(rows) == 1 && rows[0].BalanceDate.Equal(day1) &&
			rows[0].BalanceStartCents == 0 && rows[0].BalanceEndCents == 10000
	})).Return(nil).Once()
	suite.mockDailyRepo.On("UpsertBalances", ctx, mock.MatchedBy(func(rows []domain.DailyBalance) bool {
		return len(rows) == 1 && rows[0].BalanceDate.Equal(day2) &&
			rows[0].BalanceStartCents == 10000 && rows[0].BalanceEndCents == 7000
	})).Return(nil).Once()

	results, err := suite.service.Recompute(ctx, day1, day2, nil)

	suite.Require().NoError(err)
	suite.Require().Len(results, 2)
	suite.mockDailyRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestRecompute_QuietDayCarriesForward() {
	ctx := context.Background()
	d := day("2026-03-11")

	suite.mockLedgerRepo.On("ListOnDate", ctx, d).Return([]domain.LedgerTransaction{}, nil).Once()
	suite.mockDailyRepo.On("ListOnDate", ctx, d.AddDate(0, 0, -1), (*domain.AccountType)(nil)).
		Return([]domain.DailyBalance{{
			BalanceDate:     d.AddDate(0, 0, -1),
			AccountType:     domain.Earner,
			StripeAccountID: "acct_1",
			Currency:        "USD",
			BalanceEndCents: 5000,
		}}, nil).Once()
	suite.mockDailyRepo.On("UpsertBalances", ctx, mock.MatchedBy(func(rows []domain.DailyBalance) bool {
		return len(rows) == 1 && rows[0].BalanceDate.Equal(d) &&
			rows[0].BalanceStartCents == 5000 && rows[0].BalanceEndCents == 5000
	})).Return(nil).Once()

	results, err := suite.service.Recompute(ctx, d, d, nil)

	suite.Require().NoError(err)
	suite.Require().Len(results, 1)
	suite.Equal(1, results[0].RowsWritten)
	suite.mockDailyRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestRecompute_NoDataWritesNothing() {
	ctx := context.Background()
	d := day("2026-03-11")

	suite.mockLedgerRepo.On("ListOnDate", ctx, d).Return([]domain.LedgerTransaction{}, nil).Once()
	suite.mockDailyRepo.On("ListOnDate", ctx, d.AddDate(0, 0, -1), (*domain.AccountType)(nil)).
		Return([]domain.DailyBalance{}, nil).Once()

	results, err := suite.service.Recompute(ctx, d, d, nil)

	suite.Require().NoError(err)
	suite.Require().Len(results, 1)
	suite.Equal(0, results[0].RowsWritten)
	suite.mockDailyRepo.AssertNotCalled(suite.T(), "UpsertBalances", mock.Anything, mock.Anything)
}

func (suite *BalanceServiceTestSuite) TestRecompute_FilterScopesBothBranches() {
	ctx := context.Background()
	d := day("2026-03-11")
	filter := domain.Earner

	suite.mockLedgerRepo.On("ListOnDate", ctx, d).Return([]domain.LedgerTransaction{
		txn(domain.Earner, "acct_1", "USD", 100, d.Add(time.Hour)),
		txn(domain.Employer, "acct_9", "USD", 999, d.Add(time.Hour)),
	}, nil).Once()
	// The repository applies the same filter to the carry-forward source.
	suite.mockDailyRepo.On("ListOnDate", ctx, d.AddDate(0, 0, -1), &filter).
		Return([]domain.DailyBalance{}, nil).Once()
	suite.mockDailyRepo.On("UpsertBalances", ctx, mock.MatchedBy(func(rows []domain.DailyBalance) bool {
		return len(rows) == 1 && rows[0].AccountType == domain.Earner
	})).Return(nil).Once()

	_, err := suite.service.Recompute(ctx, d, d, &filter)

	suite.Require().NoError(err)
	suite.mockDailyRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestRecompute_EndBeforeStart() {
	ctx := context.Background()

	_, err := suite.service.Recompute(ctx, day("2026-03-11"), day("2026-03-10"), nil)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "ListOnDate", mock.Anything, mock.Anything)
}

func (suite *BalanceServiceTestSuite) TestRecompute_HaltsOnFirstFailedDay() {
	ctx := context.Background()
	day1 := day("2026-03-10")
	day2 := day("2026-03-11")

	suite.mockLedgerRepo.On("ListOnDate", ctx, day1).Return([]domain.LedgerTransaction{}, nil).Once()
	suite.mockDailyRepo.On("ListOnDate", ctx, day1.AddDate(0, 0, -1), (*domain.AccountType)(nil)).
		Return([]domain.DailyBalance{}, nil).Once()
	suite.mockLedgerRepo.On("ListOnDate", ctx, day2).Return(nil, assert.AnError).Once()

	results, err := suite.service.Recompute(ctx, day1, day2.AddDate(0, 0, 1), nil)

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
	// Day 1 completed before the halt; day 3 never ran.
	suite.Len(results, 1)
	suite.mockLedgerRepo.AssertNumberOfCalls(suite.T(), "ListOnDate", 2)
}

func TestBalanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BalanceServiceTestSuite))
}
