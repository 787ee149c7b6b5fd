package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/tipwave/tip_ledger_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:      newPgxAccountRepository(dbPool),
		LedgerTxnRepo:    newPgxLedgerTransactionRepository(dbPool),
		DailyBalanceRepo: newPgxDailyBalanceRepository(dbPool),
		SyncJobRepo:      newPgxSyncJobRepository(dbPool),
	}
}
