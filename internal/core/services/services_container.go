package services

import (
	"github.com/tipwave/tip_ledger_backend/internal/core/ports"
	portsrepo "github.com/tipwave/tip_ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/tipwave/tip_ledger_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, processor ports.ProcessorClient) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Registry = NewRegistryService(repos.AccountRepo)
	container.Ingestion = NewIngestionService(processor, repos.LedgerTxnRepo)
	container.Balance = NewBalanceService(repos.LedgerTxnRepo, repos.DailyBalanceRepo)
	container.SyncJob = NewSyncJobService(repos.SyncJobRepo)
	container.Reconciliation = NewReconciliationService(processor, repos.AccountRepo, repos.LedgerTxnRepo, repos.DailyBalanceRepo)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.RegistrySvcFacade       = (*registryService)(nil)
	_ portssvc.IngestionSvcFacade      = (*ingestionService)(nil)
	_ portssvc.BalanceSvcFacade        = (*balanceService)(nil)
	_ portssvc.SyncJobSvcFacade        = (*syncJobService)(nil)
	_ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)
)
