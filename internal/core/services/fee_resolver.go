package services

import (
	"context"
	"strings"

	"github.com/tipwave/tip_ledger_backend/internal/core/ports"
)

// FeeResolution is the outcome of one fee lookup. Resolved=false means the
// enrichment failed and the amount is a zero default, which callers must not
// confuse with a genuinely zero fee.
type FeeResolution struct {
	AmountCents int64
	Resolved    bool
}

// FeeResolver decomposes a balance transaction into its processor fee and
// platform (application) fee, reaching back to the originating charge when
// the processor's own fee reporting comes up empty.
type FeeResolver struct {
	processor ports.ProcessorClient
}

// NewFeeResolver creates a fee resolver backed by the given processor client.
func NewFeeResolver(processor ports.ProcessorClient) *FeeResolver {
	return &FeeResolver{processor: processor}
}

// Resolve returns the processor fee and platform fee for one balance
// transaction. At most one charge lookup is made per record. A lookup
// failure is returned as err with both resolutions defaulted to zero and
// marked unresolved; callers log it and store the record anyway.
func (r *FeeResolver) Resolve(ctx context.Context, stripeAccountID string, bt ports.BalanceTransaction) (processorFee, platformFee FeeResolution, err error) {
	processorFee = FeeResolution{AmountCents: bt.FeeCents, Resolved: true}
	if processorFee.AmountCents == 0 {
		// Some records report a zero fee total but carry fee line items.
		var sum int64
		for _, fd := range bt.FeeDetails {
			sum += fd.AmountCents
		}
		processorFee.AmountCents = sum
	}

	if !isChargeSource(bt.SourceID) {
		// Nothing further to enrich from; no application fee applies.
		return processorFee, FeeResolution{AmountCents: 0, Resolved: true}, nil
	}

	needFallbackFee := processorFee.AmountCents == 0

	charge, chargeErr := r.processor.GetCharge(ctx, stripeAccountID, bt.SourceID)
	if chargeErr != nil {
		// Best effort: the record is still stored with zero fees.
		if needFallbackFee {
			processorFee = FeeResolution{AmountCents: 0, Resolved: false}
		}
		return processorFee, FeeResolution{AmountCents: 0, Resolved: false}, chargeErr
	}

	if needFallbackFee {
		// Known processor reporting gap: the charge's underlying balance
		// transaction carries the true fee even when the record's total is zero.
		processorFee = FeeResolution{AmountCents: charge.BalanceTxnFeeCents, Resolved: true}
	}
	platformFee = FeeResolution{AmountCents: charge.ApplicationFeeCents, Resolved: true}
	return processorFee, platformFee, nil
}

// isChargeSource reports whether the source id references a charge.
func isChargeSource(sourceID string) bool {
	return strings.HasPrefix(sourceID, "ch_") || strings.HasPrefix(sourceID, "py_")
}
