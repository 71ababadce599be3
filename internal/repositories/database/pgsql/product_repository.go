package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inventra/inventra_backend/internal/apperrors"
	"github.com/inventra/inventra_backend/internal/core/domain"
	portsrepo "github.com/inventra/inventra_backend/internal/core/ports/repositories"
)

// PgxCatalogRepository reads product and warehouse reference data.
type PgxCatalogRepository struct {
	BaseRepository
}

// newPgxCatalogRepository creates a new repository for catalog reference data.
func newPgxCatalogRepository(pool *pgxpool.Pool) portsrepo.CatalogRepositoryFacade {
	return &PgxCatalogRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CatalogRepositoryFacade = (*PgxCatalogRepository)(nil)

// FindProductByID retrieves a product with its alternate UOMs.
func (r *PgxCatalogRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	products, err := r.FindProductsByIDs(ctx, []string{productID})
	if err != nil {
		return nil, err
	}
	product, found := products[productID]
	if !found {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("product %s not found", productID))
	}
	return &product, nil
}

// FindProductsByIDs batch-fetches products with their alternate UOMs. Missing
// IDs are simply absent from the returned map.
func (r *PgxCatalogRepository) FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error) {
	if len(productIDs) == 0 {
		return map[string]domain.Product{}, nil
	}

	productQuery := `
		SELECT product_id, name, sku, base_uom, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM products
		WHERE product_id = ANY($1);
	`
	rows, err := r.Pool.Query(ctx, productQuery, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query products by IDs: %w", err)
	}
	defer rows.Close()

	products := make(map[string]domain.Product)
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ProductID,
			&p.Name,
			&p.SKU,
			&p.BaseUOM,
			&p.IsActive,
			&p.CreatedAt,
			&p.CreatedBy,
			&p.LastUpdatedAt,
			&p.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products[p.ProductID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}

	uomQuery := `
		SELECT product_id, name, conversion_factor
		FROM product_uoms
		WHERE product_id = ANY($1)
		ORDER BY name;
	`
	uomRows, err := r.Pool.Query(ctx, uomQuery, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query product UOMs: %w", err)
	}
	defer uomRows.Close()

	for uomRows.Next() {
		var productID string
		var uom domain.AlternateUOM
		if err := uomRows.Scan(&productID, &uom.Name, &uom.ConversionFactor); err != nil {
			return nil, fmt.Errorf("failed to scan product UOM row: %w", err)
		}
		product, found := products[productID]
		if !found {
			continue
		}
		product.AlternateUOMs = append(product.AlternateUOMs, uom)
		products[productID] = product
	}
	if err := uomRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product UOM rows: %w", err)
	}

	return products, nil
}

// FindWarehouseByID retrieves a warehouse by its ID.
func (r *PgxCatalogRepository) FindWarehouseByID(ctx context.Context, warehouseID string) (*domain.Warehouse, error) {
	query := `
		SELECT warehouse_id, name, location, created_at, created_by, last_updated_at, last_updated_by
		FROM warehouses
		WHERE warehouse_id = $1;
	`
	var w domain.Warehouse
	err := r.Pool.QueryRow(ctx, query, warehouseID).Scan(
		&w.WarehouseID,
		&w.Name,
		&w.Location,
		&w.CreatedAt,
		&w.CreatedBy,
		&w.LastUpdatedAt,
		&w.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("warehouse %s not found", warehouseID))
		}
		return nil, fmt.Errorf("failed to find warehouse by ID %s: %w", warehouseID, err)
	}
	return &w, nil
}
