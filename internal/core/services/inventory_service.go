package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/inventra/inventra_backend/internal/core/domain"
	portsrepo "github.com/inventra/inventra_backend/internal/core/ports/repositories"
	portssvc "github.com/inventra/inventra_backend/internal/core/ports/services"
	"github.com/inventra/inventra_backend/internal/dto"
	"github.com/inventra/inventra_backend/internal/middleware"
)

// inventoryService provides read access to stock balances and the movement ledger.
type inventoryService struct {
	inventoryRepo portsrepo.InventoryRepositoryWithTx
	catalogRepo   portsrepo.CatalogRepositoryFacade
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(inventoryRepo portsrepo.InventoryRepositoryWithTx, catalogRepo portsrepo.CatalogRepositoryFacade) portssvc.InventorySvcFacade {
	return &inventoryService{
		inventoryRepo: inventoryRepo,
		catalogRepo:   catalogRepo,
	}
}

var _ portssvc.InventorySvcFacade = (*inventoryService)(nil)

// GetStockQuantity returns the current balance for one (product, warehouse)
// key with its catalog metadata. A key that never moved reads as zero.
func (s *inventoryService) GetStockQuantity(ctx context.Context, productID, warehouseID string) (*dto.StockLevelResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	product, err := s.catalogRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to find product %s: %w", productID, err)
	}
	warehouse, err := s.catalogRepo.FindWarehouseByID(ctx, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("failed to find warehouse %s: %w", warehouseID, err)
	}

	quantity, err := s.inventoryRepo.GetStockQuantity(ctx, productID, warehouseID)
	if err != nil {
		logger.Error("Failed to read stock quantity", "product_id", productID, "warehouse_id", warehouseID, "error", err.Error())
		return nil, fmt.Errorf("failed to read stock quantity: %w", err)
	}

	return &dto.StockLevelResponse{
		ProductID:     product.ProductID,
		ProductName:   product.Name,
		WarehouseID:   warehouse.WarehouseID,
		WarehouseName: warehouse.Name,
		Quantity:      quantity,
		BaseUOM:       product.BaseUOM,
	}, nil
}

// ListStockLevels returns balance rows joined with catalog metadata.
func (s *inventoryService) ListStockLevels(ctx context.Context, params dto.ListStockLevelsParams) ([]domain.StockLevel, error) {
	levels, err := s.inventoryRepo.ListStockLevels(ctx, params.WarehouseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock levels: %w", err)
	}

	if params.ProductID == "" && params.Search == "" {
		return levels, nil
	}

	search := strings.ToLower(params.Search)
	filtered := make([]domain.StockLevel, 0, len(levels))
	for _, level := range levels {
		if params.ProductID != "" && level.ProductID != params.ProductID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(level.ProductName), search) {
			continue
		}
		filtered = append(filtered, level)
	}
	return filtered, nil
}

// ListMovements returns movement ledger entries, newest first.
func (s *inventoryService) ListMovements(ctx context.Context, params dto.ListMovementsParams) ([]domain.StockMovement, error) {
	filter := portsrepo.MovementFilter{
		ProductID:   params.ProductID,
		WarehouseID: params.WarehouseID,
		Type:        domain.MovementType(params.Type),
		DateFrom:    params.DateFrom,
		DateTo:      params.DateTo,
		Limit:       params.Limit,
	}
	movements, err := s.inventoryRepo.ListMovements(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock movements: %w", err)
	}
	return movements, nil
}
