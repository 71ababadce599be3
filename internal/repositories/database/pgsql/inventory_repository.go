package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/inventra/inventra_backend/internal/apperrors"
	"github.com/inventra/inventra_backend/internal/core/domain"
	portsrepo "github.com/inventra/inventra_backend/internal/core/ports/repositories"
)

// PgxInventoryRepository persists stock balances and the movement ledger.
type PgxInventoryRepository struct {
	BaseRepository
}

// newPgxInventoryRepository creates a new repository for stock data.
func newPgxInventoryRepository(pool *pgxpool.Pool) portsrepo.InventoryRepositoryWithTx {
	return &PgxInventoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InventoryRepositoryWithTx = (*PgxInventoryRepository)(nil)

// GetStockQuantity returns the current balance for one (product, warehouse)
// key. A key with no balance row reads as zero.
func (r *PgxInventoryRepository) GetStockQuantity(ctx context.Context, productID, warehouseID string) (decimal.Decimal, error) {
	query := `
		SELECT quantity
		FROM stock_balances
		WHERE product_id = $1 AND warehouse_id = $2;
	`
	var quantity decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, productID, warehouseID).Scan(&quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("failed to read stock balance: %w", err)
	}
	return quantity, nil
}

// ListStockLevels returns balance rows joined with catalog metadata.
func (r *PgxInventoryRepository) ListStockLevels(ctx context.Context, warehouseID string) ([]domain.StockLevel, error) {
	query := `
		SELECT sb.product_id, p.name, sb.warehouse_id, w.name, sb.quantity, p.base_uom, sb.updated_at
		FROM stock_balances sb
		JOIN products p ON p.product_id = sb.product_id
		JOIN warehouses w ON w.warehouse_id = sb.warehouse_id
	`
	args := []any{}
	if warehouseID != "" {
		query += ` WHERE sb.warehouse_id = $1`
		args = append(args, warehouseID)
	}
	query += ` ORDER BY p.name, w.name;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock levels: %w", err)
	}
	defer rows.Close()

	levels := []domain.StockLevel{}
	for rows.Next() {
		var level domain.StockLevel
		if err := rows.Scan(
			&level.ProductID,
			&level.ProductName,
			&level.WarehouseID,
			&level.WarehouseName,
			&level.Quantity,
			&level.BaseUOM,
			&level.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan stock level row: %w", err)
		}
		levels = append(levels, level)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock level rows: %w", err)
	}
	return levels, nil
}

// ListMovements returns movement ledger entries matching the filter, newest first.
func (r *PgxInventoryRepository) ListMovements(ctx context.Context, filter portsrepo.MovementFilter) ([]domain.StockMovement, error) {
	var conditions []string
	var args []any

	addCondition := func(clause string, value any) {
		args = append(args, value)
		conditions = append(conditions, clause+"$"+strconv.Itoa(len(args)))
	}

	if filter.ProductID != "" {
		addCondition("product_id = ", filter.ProductID)
	}
	if filter.WarehouseID != "" {
		addCondition("warehouse_id = ", filter.WarehouseID)
	}
	if filter.Type != "" {
		addCondition("type = ", string(filter.Type))
	}
	if filter.ReferenceType != "" {
		addCondition("reference_type = ", filter.ReferenceType)
	}
	if filter.ReferenceID != "" {
		addCondition("reference_id = ", filter.ReferenceID)
	}
	if filter.DateFrom != nil {
		addCondition("occurred_at >= ", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		addCondition("occurred_at <= ", *filter.DateTo)
	}

	query := `
		SELECT movement_id, product_id, warehouse_id, type, quantity, running_balance,
		       COALESCE(reference_type, ''), COALESCE(reference_id, ''), COALESCE(reason, ''), occurred_at, created_by
		FROM stock_movements
	`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY occurred_at DESC, movement_id DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += " LIMIT $" + strconv.Itoa(len(args))
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock movements: %w", err)
	}
	defer rows.Close()

	movements := []domain.StockMovement{}
	for rows.Next() {
		var m domain.StockMovement
		if err := rows.Scan(
			&m.MovementID,
			&m.ProductID,
			&m.WarehouseID,
			&m.Type,
			&m.Quantity,
			&m.RunningBalance,
			&m.ReferenceType,
			&m.ReferenceID,
			&m.Reason,
			&m.OccurredAt,
			&m.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan stock movement row: %w", err)
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock movement rows: %w", err)
	}
	return movements, nil
}

// ensureBalanceRows creates zero balance rows for any missing keys so the
// subsequent FOR UPDATE select locks every requested key.
func (r *PgxInventoryRepository) ensureBalanceRows(ctx context.Context, tx pgx.Tx, warehouseID string, productIDs []string) error {
	batch := &pgx.Batch{}
	insertQuery := `
		INSERT INTO stock_balances (product_id, warehouse_id, quantity, updated_at)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (product_id, warehouse_id) DO NOTHING;
	`
	for _, productID := range productIDs {
		batch.Queue(insertQuery, productID, warehouseID)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range productIDs {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to ensure stock balance row: %w", err)
		}
	}
	return nil
}

// GetQuantitiesForUpdate batch-fetches and row-locks the balances for the
// given products in one warehouse. Missing rows are created at zero first, so
// every returned key holds its lock until the transaction ends.
func (r *PgxInventoryRepository) GetQuantitiesForUpdate(ctx context.Context, tx pgx.Tx, warehouseID string, productIDs []string) (map[string]decimal.Decimal, error) {
	if len(productIDs) == 0 {
		return map[string]decimal.Decimal{}, nil
	}

	if err := r.ensureBalanceRows(ctx, tx, warehouseID, productIDs); err != nil {
		return nil, err
	}

	query := `
		SELECT product_id, quantity
		FROM stock_balances
		WHERE warehouse_id = $1 AND product_id = ANY($2)
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, warehouseID, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to lock stock balances: %w", err)
	}
	defer rows.Close()

	quantities := make(map[string]decimal.Decimal, len(productIDs))
	for rows.Next() {
		var productID string
		var quantity decimal.Decimal
		if err := rows.Scan(&productID, &quantity); err != nil {
			return nil, fmt.Errorf("failed to scan locked stock balance row: %w", err)
		}
		quantities[productID] = quantity
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked stock balance rows: %w", err)
	}

	if len(quantities) != len(productIDs) {
		return nil, fmt.Errorf("%w: could not lock all requested stock balances", apperrors.ErrInternal)
	}
	return quantities, nil
}

// ApplyStockDelta applies one signed delta to a (product, warehouse) balance.
// The balance row is locked, the guard checked, one movement entry inserted
// with the resulting running balance, and the balance row updated. Nothing is
// written when the guard fails.
func (r *PgxInventoryRepository) ApplyStockDelta(ctx context.Context, tx pgx.Tx, productID, warehouseID string, delta decimal.Decimal, meta portsrepo.StockDeltaMeta) (decimal.Decimal, error) {
	quantities, err := r.GetQuantitiesForUpdate(ctx, tx, warehouseID, []string{productID})
	if err != nil {
		return decimal.Zero, err
	}
	current := quantities[productID]
	newBalance := current.Add(delta)

	if meta.ForbidNegative && newBalance.IsNegative() {
		return decimal.Zero, &apperrors.InsufficientStockError{
			ProductID:   productID,
			WarehouseID: warehouseID,
			Available:   current,
			Requested:   delta.Neg(),
		}
	}

	movement := domain.StockMovement{
		MovementID:     uuid.NewString(),
		ProductID:      productID,
		WarehouseID:    warehouseID,
		Type:           meta.Type,
		Quantity:       delta,
		RunningBalance: newBalance,
		ReferenceType:  meta.ReferenceType,
		ReferenceID:    meta.ReferenceID,
		Reason:         meta.Reason,
		OccurredAt:     meta.OccurredAt,
		CreatedBy:      meta.CreatedBy,
	}
	if err := r.InsertMovement(ctx, tx, movement); err != nil {
		return decimal.Zero, err
	}
	if err := r.SetQuantity(ctx, tx, productID, warehouseID, newBalance); err != nil {
		return decimal.Zero, err
	}
	return newBalance, nil
}

// InsertMovement appends one movement ledger entry.
func (r *PgxInventoryRepository) InsertMovement(ctx context.Context, tx pgx.Tx, movement domain.StockMovement) error {
	query := `
		INSERT INTO stock_movements (
			movement_id, product_id, warehouse_id, type, quantity, running_balance,
			reference_type, reference_id, reason, occurred_at, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := tx.Exec(ctx, query,
		movement.MovementID,
		movement.ProductID,
		movement.WarehouseID,
		string(movement.Type),
		movement.Quantity,
		movement.RunningBalance,
		movement.ReferenceType,
		movement.ReferenceID,
		movement.Reason,
		movement.OccurredAt,
		movement.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert stock movement %s: %w", movement.MovementID, err)
	}
	return nil
}

// SetQuantity sets a locked balance row to an exact value.
func (r *PgxInventoryRepository) SetQuantity(ctx context.Context, tx pgx.Tx, productID, warehouseID string, quantity decimal.Decimal) error {
	query := `
		UPDATE stock_balances
		SET quantity = $3, updated_at = now()
		WHERE product_id = $1 AND warehouse_id = $2;
	`
	tag, err := tx.Exec(ctx, query, productID, warehouseID, quantity)
	if err != nil {
		return fmt.Errorf("failed to update stock balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: stock balance row missing for product %s", apperrors.ErrInternal, productID)
	}
	return nil
}
