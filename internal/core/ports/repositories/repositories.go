package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AdjustmentRepo AdjustmentRepositoryWithTx
	TransferRepo   TransferRepositoryWithTx
	InventoryRepo  InventoryRepositoryWithTx
	FundRepo       FundRepositoryWithTx
	CatalogRepo    CatalogRepositoryFacade
	AuditRepo      AuditRecorder
}
