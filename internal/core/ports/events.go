package ports

import (
	"context"
	"time"

	"github.com/tipwave/tip_ledger_backend/internal/core/domain"
)

// SyncEvent is published when a sync job finishes, for downstream
// reporting/notification consumers.
type SyncEvent struct {
	JobID               string             `json:"jobID"`
	AccountType         domain.AccountType `json:"accountType"`
	StripeAccountID     string             `json:"stripeAccountID,omitempty"`
	Status              string             `json:"status"` // done | failed
	TransactionsWritten int                `json:"transactionsWritten"`
	Error               string             `json:"error,omitempty"`
	OccurredAt          time.Time          `json:"occurredAt"`
}

// EventPublisher is the outbound port for sync lifecycle events.
type EventPublisher interface {
	PublishSyncEvent(ctx context.Context, event SyncEvent) error
	Close() error
}
