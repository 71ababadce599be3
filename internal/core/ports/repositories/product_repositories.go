package repositories

import (
	"context"

	"github.com/inventra/inventra_backend/internal/core/domain"
)

// ProductReader is the catalog collaborator contract. The posting core uses
// it to batch-resolve product existence and UOM sets; it never mutates
// catalog data.
type ProductReader interface {
	// FindProductByID retrieves one product with its alternate UOMs.
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// FindProductsByIDs batch-fetches products with their alternate UOMs.
	// Missing IDs are simply absent from the returned map.
	FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error)
}

// WarehouseReader resolves warehouse existence.
type WarehouseReader interface {
	FindWarehouseByID(ctx context.Context, warehouseID string) (*domain.Warehouse, error)
}

// CatalogRepositoryFacade combines the read-only catalog contracts.
type CatalogRepositoryFacade interface {
	ProductReader
	WarehouseReader
}
