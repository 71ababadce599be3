package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/inventra/inventra_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider initializes all pgsql repositories over one pool and
// returns them bundled for the service container.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AdjustmentRepo: newPgxAdjustmentRepository(dbPool),
		TransferRepo:   newPgxTransferRepository(dbPool),
		InventoryRepo:  newPgxInventoryRepository(dbPool),
		FundRepo:       newPgxFundRepository(dbPool),
		CatalogRepo:    newPgxCatalogRepository(dbPool),
		AuditRepo:      newPgxAuditRepository(dbPool),
	}
}
