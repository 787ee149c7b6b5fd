package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/tipwave/tip_ledger_backend/internal/apperrors"
	"github.com/tipwave/tip_ledger_backend/internal/core/domain"
	portsrepo "github.com/tipwave/tip_ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/tipwave/tip_ledger_backend/internal/core/ports/services"
)

// registryService maintains the mapping between external processor accounts
// and internal ledgers.
type registryService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewRegistryService creates a new registry service.
func NewRegistryService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.RegistrySvcFacade {
	return &registryService{accountRepo: accountRepo}
}

var _ portssvc.RegistrySvcFacade = (*registryService)(nil)

// ResolveAccountType maps an external account id to platform, earner or
// employer. No id means the platform's own account.
func (s *registryService) ResolveAccountType(ctx context.Context, stripeAccountID string) (domain.AccountType, error) {
	if stripeAccountID == "" {
		return domain.Platform, nil
	}
	accountType, err := s.accountRepo.ResolveProfileType(ctx, stripeAccountID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve account type for %s: %w", stripeAccountID, err)
	}
	return accountType, nil
}

func (s *registryService) EnsureRegistered(ctx context.Context, accountType domain.AccountType, stripeAccountID string) error {
	if accountType != domain.Platform && stripeAccountID == "" {
		return fmt.Errorf("%w: external account id is required for %s accounts", apperrors.ErrValidation, accountType)
	}
	now := time.Now().UTC()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		AccountType:     accountType,
		StripeAccountID: stripeAccountID,
		IsActive:        true,
		LastSyncedTs:    0,
		AuditFields:     domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.accountRepo.EnsureRegistered(ctx, account); err != nil {
		return fmt.Errorf("failed to register account: %w", err)
	}
	return nil
}

func (s *registryService) FindAccount(ctx context.Context, accountType domain.AccountType, stripeAccountID string) (*domain.Account, error) {
	return s.accountRepo.FindByTypeAndStripeID(ctx, accountType, stripeAccountID)
}

// Deactivate is called when the external account is deleted or deauthorized.
// History stays; only is_active flips.
func (s *registryService) Deactivate(ctx context.Context, stripeAccountID string) error {
	if stripeAccountID == "" {
		return fmt.Errorf("%w: external account id is required", apperrors.ErrValidation)
	}
	if err := s.accountRepo.Deactivate(ctx, stripeAccountID); err != nil {
		return fmt.Errorf("failed to deactivate account %s: %w", stripeAccountID, err)
	}
	s.LogInfo(ctx, "Account deactivated", slog.String("stripe_account_id", stripeAccountID))
	return nil
}

func (s *registryService) ListActive(ctx context.Context, limit int) ([]domain.Account, error) {
	return s.accountRepo.ListActive(ctx, limit)
}

func (s *registryService) AdvanceWatermark(ctx context.Context, accountType domain.AccountType, stripeAccountID string, ts int64, lastTxnID string) error {
	if err := s.accountRepo.AdvanceWatermark(ctx, accountType, stripeAccountID, ts, lastTxnID); err != nil {
		return fmt.Errorf("failed to advance watermark: %w", err)
	}
	return nil
}
