package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tipwave/tip_ledger_backend/internal/core/ports"
	"github.com/tipwave/tip_ledger_backend/internal/core/services"
)

func TestFeeResolver_ReportedFeeIsUsedDirectly(t *testing.T) {
	ctx := context.Background()
	processor := new(MockProcessorClient)
	resolver := services.NewFeeResolver(processor)

	processor.On("GetCharge", ctx, "acct_1", "ch_123").
		Return(&ports.Charge{ID: "ch_123", BalanceTxnFeeCents: 150, ApplicationFeeCents: 250}, nil).Once()

	processorFee, platformFee, err := resolver.Resolve(ctx, "acct_1", ports.BalanceTransaction{
		ID:       "txn_1",
		FeeCents: 150,
		SourceID: "ch_123",
	})

	require.NoError(t, err)
	assert.Equal(t, services.FeeResolution{AmountCents: 150, Resolved: true}, processorFee)
	assert.Equal(t, services.FeeResolution{AmountCents: 250, Resolved: true}, platformFee)
	processor.AssertNumberOfCalls(t, "GetCharge", 1)
}

func TestFeeResolver_ZeroFeeFallsBackToFeeDetails(t *testing.T) {
	ctx := context.Background()
	processor := new(MockProcessorClient)
	resolver := services.NewFeeResolver(processor)

	processorFee, platformFee, err := resolver.Resolve(ctx, "acct_1", ports.BalanceTransaction{
		ID:       "txn_1",
		FeeCents: 0,
		FeeDetails: []ports.FeeDetail{
			{Type: "stripe_fee", AmountCents: 120},
			{Type: "tax", AmountCents: 30},
		},
		SourceID: "tr_456", // not a charge, no lookup
	})

	require.NoError(t, err)
	assert.Equal(t, int64(150), processorFee.AmountCents)
	assert.True(t, processorFee.Resolved)
	assert.Equal(t, int64(0), platformFee.AmountCents)
	assert.True(t, platformFee.Resolved)
	processor.AssertNotCalled(t, "GetCharge", mock.Anything, mock.Anything, mock.Anything)
}

func TestFeeResolver_ZeroFeeFallsBackToChargeBalanceTxn(t *testing.T) {
	ctx := context.Background()
	processor := new(MockProcessorClient)
	resolver := services.NewFeeResolver(processor)

	processor.On("GetCharge", ctx, "", "py_789").
		Return(&ports.Charge{ID: "py_789", BalanceTxnFeeCents: 175, ApplicationFeeCents: 0}, nil).Once()

	processorFee, platformFee, err := resolver.Resolve(ctx, "", ports.BalanceTransaction{
		ID:       "txn_1",
		FeeCents: 0,
		SourceID: "py_789",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(175), processorFee.AmountCents)
	assert.True(t, processorFee.Resolved)
	assert.Equal(t, int64(0), platformFee.AmountCents)
	assert.True(t, platformFee.Resolved)
}

func TestFeeResolver_ChargeLookupFailureIsUnresolvedZero(t *testing.T) {
	ctx := context.Background()
	processor := new(MockProcessorClient)
	resolver := services.NewFeeResolver(processor)

	processor.On("GetCharge", ctx, "acct_1", "ch_999").Return(nil, assert.AnError).Once()

	processorFee, platformFee, err := resolver.Resolve(ctx, "acct_1", ports.BalanceTransaction{
		ID:       "txn_1",
		FeeCents: 0,
		SourceID: "ch_999",
	})

	require.Error(t, err)
	// Unresolved zero is distinguishable from a genuine zero fee.
	assert.False(t, processorFee.Resolved)
	assert.False(t, platformFee.Resolved)
	assert.Zero(t, processorFee.AmountCents)
	assert.Zero(t, platformFee.AmountCents)
}

func TestFeeResolver_NonChargeSourceSkipsLookup(t *testing.T) {
	ctx := context.Background()
	processor := new(MockProcessorClient)
	resolver := services.NewFeeResolver(processor)

	processorFee, platformFee, err := resolver.Resolve(ctx, "acct_1", ports.BalanceTransaction{
		ID:       "txn_1",
		FeeCents: 25,
		SourceID: "po_42",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(25), processorFee.AmountCents)
	assert.Zero(t, platformFee.AmountCents)
	assert.True(t, platformFee.Resolved)
	processor.AssertNotCalled(t, "GetCharge", mock.Anything, mock.Anything, mock.Anything)
}
