package services

import (
	portsrepo "github.com/inventra/inventra_backend/internal/core/ports/repositories"
	portssvc "github.com/inventra/inventra_backend/internal/core/ports/services"
	"github.com/inventra/inventra_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Inventory = NewInventoryService(repos.InventoryRepo, repos.CatalogRepo)
	container.Adjustment = NewAdjustmentService(
		repos.AdjustmentRepo,
		repos.InventoryRepo,
		repos.CatalogRepo,
		repos.AuditRepo,
		cfg.AllowNegativeAdjustmentStock,
	)
	container.Transfer = NewTransferService(
		repos.TransferRepo,
		repos.InventoryRepo,
		repos.CatalogRepo,
		repos.AuditRepo,
	)
	container.Fund = NewFundService(repos.FundRepo, repos.AuditRepo)

	return container
}
