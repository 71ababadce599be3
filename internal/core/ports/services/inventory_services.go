package services

import (
	"context"

	"github.com/inventra/inventra_backend/internal/core/domain"
	"github.com/inventra/inventra_backend/internal/dto"
)

// InventoryReaderSvc defines read operations for stock balances and the
// movement ledger
type InventoryReaderSvc interface {
	// GetStockQuantity returns the current balance for one (product, warehouse)
	// key, zero when no stock has ever moved there.
	GetStockQuantity(ctx context.Context, productID, warehouseID string) (*dto.StockLevelResponse, error)

	// ListStockLevels returns balance rows joined with catalog metadata.
	ListStockLevels(ctx context.Context, params dto.ListStockLevelsParams) ([]domain.StockLevel, error)

	// ListMovements returns movement ledger entries, newest first.
	ListMovements(ctx context.Context, params dto.ListMovementsParams) ([]domain.StockMovement, error)
}

// InventorySvcFacade combines all inventory-related service interfaces
type InventorySvcFacade interface {
	InventoryReaderSvc
}
