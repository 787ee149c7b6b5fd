// Package events provides event publisher implementations; the no-op
// publisher covers deployments without a configured broker.
package events

import (
	"context"

	"github.com/tipwave/tip_ledger_backend/internal/core/ports"
)

// NoopPublisher drops all events. Used when no brokers are configured.
type NoopPublisher struct{}

var _ ports.EventPublisher = NoopPublisher{}

func (NoopPublisher) PublishSyncEvent(_ context.Context, _ ports.SyncEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }
