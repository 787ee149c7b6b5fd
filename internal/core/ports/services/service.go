package services

// ServiceContainer holds all the service facades needed by handlers and the
// sync worker.
type ServiceContainer struct {
	Registry       RegistrySvcFacade
	Ingestion      IngestionSvcFacade
	Balance        BalanceSvcFacade
	SyncJob        SyncJobSvcFacade
	Reconciliation ReconciliationSvcFacade
}
