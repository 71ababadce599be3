package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/inventra/inventra_backend/internal/apperrors"
	"github.com/inventra/inventra_backend/internal/core/domain"
	portsrepo "github.com/inventra/inventra_backend/internal/core/ports/repositories"
)

const adjustmentNumberPrefix = "ADJ"

// PgxAdjustmentRepository persists inventory adjustment documents.
type PgxAdjustmentRepository struct {
	BaseRepository
}

// newPgxAdjustmentRepository creates a new repository for adjustment documents.
func newPgxAdjustmentRepository(pool *pgxpool.Pool) portsrepo.AdjustmentRepositoryWithTx {
	return &PgxAdjustmentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AdjustmentRepositoryWithTx = (*PgxAdjustmentRepository)(nil)

// NextAdjustmentNumber derives the next ADJ-YYYYMMDD-NNNN number for the day
// by finding the highest existing suffix and incrementing it. The read runs
// inside the caller's transaction so numbering shares its serialization.
func (r *PgxAdjustmentRepository) NextAdjustmentNumber(ctx context.Context, tx pgx.Tx, day time.Time) (string, error) {
	prefix := documentNumberPrefix(adjustmentNumberPrefix, day)
	query := `
		SELECT COALESCE(MAX(CAST(RIGHT(adjustment_number, 4) AS INTEGER)), 0)
		FROM inventory_adjustments
		WHERE adjustment_number LIKE $1;
	`
	var maxSuffix int
	if err := tx.QueryRow(ctx, query, prefix+"%").Scan(&maxSuffix); err != nil {
		return "", fmt.Errorf("failed to read highest adjustment number: %w", err)
	}
	return documentNumber(adjustmentNumberPrefix, day, maxSuffix), nil
}

// CreateAdjustment inserts a DRAFT document and its items.
func (r *PgxAdjustmentRepository) CreateAdjustment(ctx context.Context, tx pgx.Tx, adjustment domain.Adjustment) error {
	headerQuery := `
		INSERT INTO inventory_adjustments (
			adjustment_id, adjustment_number, warehouse_id, reason, reference_number,
			adjustment_date, status, posted_by, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULL, $8, $9, $10, $11);
	`
	_, err := tx.Exec(ctx, headerQuery,
		adjustment.AdjustmentID,
		adjustment.AdjustmentNumber,
		adjustment.WarehouseID,
		adjustment.Reason,
		adjustment.ReferenceNumber,
		adjustment.AdjustmentDate,
		string(adjustment.Status),
		adjustment.CreatedAt,
		adjustment.CreatedBy,
		adjustment.LastUpdatedAt,
		adjustment.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: adjustment number %s", apperrors.ErrDuplicate, adjustment.AdjustmentNumber)
		}
		return fmt.Errorf("failed to insert adjustment %s: %w", adjustment.AdjustmentID, err)
	}

	return r.insertItems(ctx, tx, adjustment.Items)
}

func (r *PgxAdjustmentRepository) insertItems(ctx context.Context, tx pgx.Tx, items []domain.AdjustmentItem) error {
	if len(items) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	itemQuery := `
		INSERT INTO inventory_adjustment_items (
			item_id, adjustment_id, line_no, product_id, quantity, uom, type, system_quantity, actual_quantity
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	for i, item := range items {
		batch.Queue(itemQuery,
			item.ItemID,
			item.AdjustmentID,
			i+1,
			item.ProductID,
			item.Quantity,
			item.UOM,
			string(item.Type),
			item.SystemQuantity,
			item.ActualQuantity,
		)
	}
	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range items {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert adjustment item: %w", err)
		}
	}
	return nil
}

// UpdateDraftAdjustment replaces the header fields and items of a DRAFT document.
func (r *PgxAdjustmentRepository) UpdateDraftAdjustment(ctx context.Context, tx pgx.Tx, adjustment domain.Adjustment) error {
	headerQuery := `
		UPDATE inventory_adjustments
		SET reason = $2, reference_number = $3, adjustment_date = $4, status = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE adjustment_id = $1 AND status = 'DRAFT';
	`
	tag, err := tx.Exec(ctx, headerQuery,
		adjustment.AdjustmentID,
		adjustment.Reason,
		adjustment.ReferenceNumber,
		adjustment.AdjustmentDate,
		string(adjustment.Status),
		adjustment.LastUpdatedAt,
		adjustment.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update adjustment %s: %w", adjustment.AdjustmentID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: adjustment %s is not a draft", apperrors.ErrConflict, adjustment.AdjustmentID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM inventory_adjustment_items WHERE adjustment_id = $1;`, adjustment.AdjustmentID); err != nil {
		return fmt.Errorf("failed to delete adjustment items: %w", err)
	}
	return r.insertItems(ctx, tx, adjustment.Items)
}

func (r *PgxAdjustmentRepository) scanAdjustment(row pgx.Row) (*domain.Adjustment, error) {
	var a domain.Adjustment
	var postedBy sql.NullString
	err := row.Scan(
		&a.AdjustmentID,
		&a.AdjustmentNumber,
		&a.WarehouseID,
		&a.Reason,
		&a.ReferenceNumber,
		&a.AdjustmentDate,
		&a.Status,
		&postedBy,
		&a.CreatedAt,
		&a.CreatedBy,
		&a.LastUpdatedAt,
		&a.LastUpdatedBy,
		&a.WarehouseName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan adjustment row: %w", err)
	}
	a.PostedBy = postedBy.String
	return &a, nil
}

const adjustmentSelectColumns = `
	a.adjustment_id, a.adjustment_number, a.warehouse_id, a.reason, a.reference_number,
	a.adjustment_date, a.status, a.posted_by, a.created_at, a.created_by, a.last_updated_at, a.last_updated_by,
	w.name
`

// FindAdjustmentByID retrieves one adjustment with its items eagerly loaded.
func (r *PgxAdjustmentRepository) FindAdjustmentByID(ctx context.Context, adjustmentID string) (*domain.Adjustment, error) {
	query := `
		SELECT ` + adjustmentSelectColumns + `
		FROM inventory_adjustments a
		JOIN warehouses w ON w.warehouse_id = a.warehouse_id
		WHERE a.adjustment_id = $1;
	`
	adjustment, err := r.scanAdjustment(r.Pool.QueryRow(ctx, query, adjustmentID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("adjustment %s not found", adjustmentID))
		}
		return nil, err
	}

	items, err := r.findItems(ctx, nil, adjustmentID)
	if err != nil {
		return nil, err
	}
	adjustment.Items = items
	return adjustment, nil
}

// FindAdjustmentForUpdate loads an adjustment with its items inside the
// transaction, locking the header row against concurrent posting.
func (r *PgxAdjustmentRepository) FindAdjustmentForUpdate(ctx context.Context, tx pgx.Tx, adjustmentID string) (*domain.Adjustment, error) {
	query := `
		SELECT adjustment_id, adjustment_number, warehouse_id, reason, reference_number,
		       adjustment_date, status, posted_by, created_at, created_by, last_updated_at, last_updated_by
		FROM inventory_adjustments
		WHERE adjustment_id = $1
		FOR UPDATE;
	`
	var a domain.Adjustment
	var postedBy sql.NullString
	err := tx.QueryRow(ctx, query, adjustmentID).Scan(
		&a.AdjustmentID,
		&a.AdjustmentNumber,
		&a.WarehouseID,
		&a.Reason,
		&a.ReferenceNumber,
		&a.AdjustmentDate,
		&a.Status,
		&postedBy,
		&a.CreatedAt,
		&a.CreatedBy,
		&a.LastUpdatedAt,
		&a.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("adjustment %s not found", adjustmentID))
		}
		return nil, fmt.Errorf("failed to lock adjustment %s: %w", adjustmentID, err)
	}
	a.PostedBy = postedBy.String

	items, err := r.findItems(ctx, tx, adjustmentID)
	if err != nil {
		return nil, err
	}
	a.Items = items
	return &a, nil
}

// findItems loads items in document line order with their product reference
// metadata. A nil tx reads
// from the pool.
func (r *PgxAdjustmentRepository) findItems(ctx context.Context, tx pgx.Tx, adjustmentID string) ([]domain.AdjustmentItem, error) {
	query := `
		SELECT i.item_id, i.adjustment_id, i.product_id, i.quantity, i.uom, i.type,
		       i.system_quantity, i.actual_quantity, p.name, p.base_uom
		FROM inventory_adjustment_items i
		JOIN products p ON p.product_id = i.product_id
		WHERE i.adjustment_id = $1
		ORDER BY i.line_no;
	`
	var rows pgx.Rows
	var err error
	if tx != nil {
		rows, err = tx.Query(ctx, query, adjustmentID)
	} else {
		rows, err = r.Pool.Query(ctx, query, adjustmentID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query adjustment items: %w", err)
	}
	defer rows.Close()

	items := []domain.AdjustmentItem{}
	for rows.Next() {
		var item domain.AdjustmentItem
		var system, actual decimal.NullDecimal
		if err := rows.Scan(
			&item.ItemID,
			&item.AdjustmentID,
			&item.ProductID,
			&item.Quantity,
			&item.UOM,
			&item.Type,
			&system,
			&actual,
			&item.ProductName,
			&item.BaseUOM,
		); err != nil {
			return nil, fmt.Errorf("failed to scan adjustment item row: %w", err)
		}
		if system.Valid {
			item.SystemQuantity = &system.Decimal
		}
		if actual.Valid {
			item.ActualQuantity = &actual.Decimal
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating adjustment item rows: %w", err)
	}
	return items, nil
}

// ListAdjustments retrieves adjustment headers matching the filter, newest first.
func (r *PgxAdjustmentRepository) ListAdjustments(ctx context.Context, filter portsrepo.AdjustmentFilter) ([]domain.Adjustment, error) {
	var conditions []string
	var args []any

	addCondition := func(clause string, value any) {
		args = append(args, value)
		conditions = append(conditions, clause+"$"+strconv.Itoa(len(args)))
	}

	if filter.WarehouseID != "" {
		addCondition("a.warehouse_id = ", filter.WarehouseID)
	}
	if filter.Status != "" {
		addCondition("a.status = ", string(filter.Status))
	}
	if filter.DateFrom != nil {
		addCondition("a.adjustment_date >= ", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		addCondition("a.adjustment_date <= ", *filter.DateTo)
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		placeholder := "$" + strconv.Itoa(len(args))
		conditions = append(conditions, "(a.adjustment_number ILIKE "+placeholder+" OR a.reason ILIKE "+placeholder+" OR a.reference_number ILIKE "+placeholder+")")
	}

	query := `
		SELECT ` + adjustmentSelectColumns + `
		FROM inventory_adjustments a
		JOIN warehouses w ON w.warehouse_id = a.warehouse_id
	`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY a.created_at DESC;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query adjustments: %w", err)
	}
	defer rows.Close()

	adjustments := []domain.Adjustment{}
	for rows.Next() {
		adjustment, err := r.scanAdjustment(rows)
		if err != nil {
			return nil, err
		}
		adjustments = append(adjustments, *adjustment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating adjustment rows: %w", err)
	}
	return adjustments, nil
}

// CountReversalsOf reports how many posted adjustments reference the given
// number. Reversal state is derived, never stored on the original.
func (r *PgxAdjustmentRepository) CountReversalsOf(ctx context.Context, adjustmentNumber string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM inventory_adjustments
		WHERE reference_number = $1 AND status = 'POSTED';
	`
	var count int
	if err := r.Pool.QueryRow(ctx, query, adjustmentNumber).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count reversals of %s: %w", adjustmentNumber, err)
	}
	return count, nil
}

// CaptureItemQuantities persists the posting-time system/actual quantities.
func (r *PgxAdjustmentRepository) CaptureItemQuantities(ctx context.Context, tx pgx.Tx, items []domain.AdjustmentItem) error {
	batch := &pgx.Batch{}
	query := `
		UPDATE inventory_adjustment_items
		SET system_quantity = $2, actual_quantity = $3
		WHERE item_id = $1;
	`
	for _, item := range items {
		batch.Queue(query, item.ItemID, item.SystemQuantity, item.ActualQuantity)
	}
	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range items {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to capture item quantities: %w", err)
		}
	}
	return nil
}

// MarkAdjustmentPosted flips DRAFT to POSTED, recording who posted and when.
func (r *PgxAdjustmentRepository) MarkAdjustmentPosted(ctx context.Context, tx pgx.Tx, adjustmentID, postedBy string, postedAt time.Time) error {
	query := `
		UPDATE inventory_adjustments
		SET status = 'POSTED', posted_by = $2, last_updated_at = $3, last_updated_by = $2
		WHERE adjustment_id = $1 AND status = 'DRAFT';
	`
	tag, err := tx.Exec(ctx, query, adjustmentID, postedBy, postedAt)
	if err != nil {
		return fmt.Errorf("failed to mark adjustment %s posted: %w", adjustmentID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: adjustment %s is not a draft", apperrors.ErrConflict, adjustmentID)
	}
	return nil
}

// DeleteAdjustment removes a DRAFT document; its items cascade. The status
// guard lives in the statement so a concurrent post cannot slip between the
// service's read and the delete.
func (r *PgxAdjustmentRepository) DeleteAdjustment(ctx context.Context, adjustmentID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM inventory_adjustments WHERE adjustment_id = $1 AND status = 'DRAFT';`, adjustmentID)
	if err != nil {
		return fmt.Errorf("failed to delete adjustment %s: %w", adjustmentID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: adjustment %s is not a draft", apperrors.ErrConflict, adjustmentID)
	}
	return nil
}
