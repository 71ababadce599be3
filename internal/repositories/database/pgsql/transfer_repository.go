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

	"github.com/inventra/inventra_backend/internal/apperrors"
	"github.com/inventra/inventra_backend/internal/core/domain"
	portsrepo "github.com/inventra/inventra_backend/internal/core/ports/repositories"
)

const transferNumberPrefix = "TRF"

// PgxTransferRepository persists inventory transfer documents.
type PgxTransferRepository struct {
	BaseRepository
}

// newPgxTransferRepository creates a new repository for transfer documents.
func newPgxTransferRepository(pool *pgxpool.Pool) portsrepo.TransferRepositoryWithTx {
	return &PgxTransferRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransferRepositoryWithTx = (*PgxTransferRepository)(nil)

// NextTransferNumber derives the next TRF-YYYYMMDD-NNNN number for the day.
func (r *PgxTransferRepository) NextTransferNumber(ctx context.Context, tx pgx.Tx, day time.Time) (string, error) {
	prefix := documentNumberPrefix(transferNumberPrefix, day)
	query := `
		SELECT COALESCE(MAX(CAST(RIGHT(transfer_number, 4) AS INTEGER)), 0)
		FROM inventory_transfers
		WHERE transfer_number LIKE $1;
	`
	var maxSuffix int
	if err := tx.QueryRow(ctx, query, prefix+"%").Scan(&maxSuffix); err != nil {
		return "", fmt.Errorf("failed to read highest transfer number: %w", err)
	}
	return documentNumber(transferNumberPrefix, day, maxSuffix), nil
}

// CreateTransfer inserts a DRAFT document and its items.
func (r *PgxTransferRepository) CreateTransfer(ctx context.Context, tx pgx.Tx, transfer domain.Transfer) error {
	headerQuery := `
		INSERT INTO inventory_transfers (
			transfer_id, transfer_number, source_warehouse_id, destination_warehouse_id,
			reason, transfer_date, status, posted_by, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULL, $8, $9, $10, $11);
	`
	_, err := tx.Exec(ctx, headerQuery,
		transfer.TransferID,
		transfer.TransferNumber,
		transfer.SourceWarehouseID,
		transfer.DestinationWarehouseID,
		transfer.Reason,
		transfer.TransferDate,
		string(transfer.Status),
		transfer.CreatedAt,
		transfer.CreatedBy,
		transfer.LastUpdatedAt,
		transfer.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: transfer number %s", apperrors.ErrDuplicate, transfer.TransferNumber)
		}
		return fmt.Errorf("failed to insert transfer %s: %w", transfer.TransferID, err)
	}

	return r.insertItems(ctx, tx, transfer.Items)
}

func (r *PgxTransferRepository) insertItems(ctx context.Context, tx pgx.Tx, items []domain.TransferItem) error {
	if len(items) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	itemQuery := `
		INSERT INTO inventory_transfer_items (item_id, transfer_id, line_no, product_id, quantity, uom)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for i, item := range items {
		batch.Queue(itemQuery, item.ItemID, item.TransferID, i+1, item.ProductID, item.Quantity, item.UOM)
	}
	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range items {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert transfer item: %w", err)
		}
	}
	return nil
}

// UpdateDraftTransfer replaces the header fields and items of a DRAFT document.
func (r *PgxTransferRepository) UpdateDraftTransfer(ctx context.Context, tx pgx.Tx, transfer domain.Transfer) error {
	headerQuery := `
		UPDATE inventory_transfers
		SET source_warehouse_id = $2, destination_warehouse_id = $3, reason = $4,
		    transfer_date = $5, status = $6, last_updated_at = $7, last_updated_by = $8
		WHERE transfer_id = $1 AND status = 'DRAFT';
	`
	tag, err := tx.Exec(ctx, headerQuery,
		transfer.TransferID,
		transfer.SourceWarehouseID,
		transfer.DestinationWarehouseID,
		transfer.Reason,
		transfer.TransferDate,
		string(transfer.Status),
		transfer.LastUpdatedAt,
		transfer.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update transfer %s: %w", transfer.TransferID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transfer %s is not a draft", apperrors.ErrConflict, transfer.TransferID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM inventory_transfer_items WHERE transfer_id = $1;`, transfer.TransferID); err != nil {
		return fmt.Errorf("failed to delete transfer items: %w", err)
	}
	return r.insertItems(ctx, tx, transfer.Items)
}

const transferSelectColumns = `
	t.transfer_id, t.transfer_number, t.source_warehouse_id, t.destination_warehouse_id,
	t.reason, t.transfer_date, t.status, t.posted_by, t.created_at, t.created_by,
	t.last_updated_at, t.last_updated_by, ws.name, wd.name
`

func (r *PgxTransferRepository) scanTransfer(row pgx.Row) (*domain.Transfer, error) {
	var t domain.Transfer
	var postedBy sql.NullString
	err := row.Scan(
		&t.TransferID,
		&t.TransferNumber,
		&t.SourceWarehouseID,
		&t.DestinationWarehouseID,
		&t.Reason,
		&t.TransferDate,
		&t.Status,
		&postedBy,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
		&t.SourceWarehouseName,
		&t.DestWarehouseName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan transfer row: %w", err)
	}
	t.PostedBy = postedBy.String
	return &t, nil
}

// FindTransferByID retrieves one transfer with its items eagerly loaded.
func (r *PgxTransferRepository) FindTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error) {
	query := `
		SELECT ` + transferSelectColumns + `
		FROM inventory_transfers t
		JOIN warehouses ws ON ws.warehouse_id = t.source_warehouse_id
		JOIN warehouses wd ON wd.warehouse_id = t.destination_warehouse_id
		WHERE t.transfer_id = $1;
	`
	transfer, err := r.scanTransfer(r.Pool.QueryRow(ctx, query, transferID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("transfer %s not found", transferID))
		}
		return nil, err
	}

	items, err := r.findItems(ctx, nil, transferID)
	if err != nil {
		return nil, err
	}
	transfer.Items = items
	return transfer, nil
}

// FindTransferForUpdate loads a transfer with its items inside the
// transaction, locking the header row against concurrent posting.
func (r *PgxTransferRepository) FindTransferForUpdate(ctx context.Context, tx pgx.Tx, transferID string) (*domain.Transfer, error) {
	query := `
		SELECT transfer_id, transfer_number, source_warehouse_id, destination_warehouse_id,
		       reason, transfer_date, status, posted_by, created_at, created_by,
		       last_updated_at, last_updated_by
		FROM inventory_transfers
		WHERE transfer_id = $1
		FOR UPDATE;
	`
	var t domain.Transfer
	var postedBy sql.NullString
	err := tx.QueryRow(ctx, query, transferID).Scan(
		&t.TransferID,
		&t.TransferNumber,
		&t.SourceWarehouseID,
		&t.DestinationWarehouseID,
		&t.Reason,
		&t.TransferDate,
		&t.Status,
		&postedBy,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("transfer %s not found", transferID))
		}
		return nil, fmt.Errorf("failed to lock transfer %s: %w", transferID, err)
	}
	t.PostedBy = postedBy.String

	items, err := r.findItems(ctx, tx, transferID)
	if err != nil {
		return nil, err
	}
	t.Items = items
	return &t, nil
}

// findItems loads items in document line order with their product reference
// metadata. A nil tx reads
// from the pool.
func (r *PgxTransferRepository) findItems(ctx context.Context, tx pgx.Tx, transferID string) ([]domain.TransferItem, error) {
	query := `
		SELECT i.item_id, i.transfer_id, i.product_id, i.quantity, i.uom, p.name, p.base_uom
		FROM inventory_transfer_items i
		JOIN products p ON p.product_id = i.product_id
		WHERE i.transfer_id = $1
		ORDER BY i.line_no;
	`
	var rows pgx.Rows
	var err error
	if tx != nil {
		rows, err = tx.Query(ctx, query, transferID)
	} else {
		rows, err = r.Pool.Query(ctx, query, transferID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query transfer items: %w", err)
	}
	defer rows.Close()

	items := []domain.TransferItem{}
	for rows.Next() {
		var item domain.TransferItem
		if err := rows.Scan(
			&item.ItemID,
			&item.TransferID,
			&item.ProductID,
			&item.Quantity,
			&item.UOM,
			&item.ProductName,
			&item.BaseUOM,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transfer item row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transfer item rows: %w", err)
	}
	return items, nil
}

// ListTransfers retrieves transfer headers matching the filter, newest first.
// The warehouse filter matches either side of the transfer.
func (r *PgxTransferRepository) ListTransfers(ctx context.Context, filter portsrepo.TransferFilter) ([]domain.Transfer, error) {
	var conditions []string
	var args []any

	addCondition := func(clause string, value any) {
		args = append(args, value)
		conditions = append(conditions, clause+"$"+strconv.Itoa(len(args)))
	}

	if filter.WarehouseID != "" {
		args = append(args, filter.WarehouseID)
		placeholder := "$" + strconv.Itoa(len(args))
		conditions = append(conditions, "(t.source_warehouse_id = "+placeholder+" OR t.destination_warehouse_id = "+placeholder+")")
	}
	if filter.Status != "" {
		addCondition("t.status = ", string(filter.Status))
	}
	if filter.DateFrom != nil {
		addCondition("t.transfer_date >= ", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		addCondition("t.transfer_date <= ", *filter.DateTo)
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		placeholder := "$" + strconv.Itoa(len(args))
		conditions = append(conditions, "(t.transfer_number ILIKE "+placeholder+" OR t.reason ILIKE "+placeholder+")")
	}

	query := `
		SELECT ` + transferSelectColumns + `
		FROM inventory_transfers t
		JOIN warehouses ws ON ws.warehouse_id = t.source_warehouse_id
		JOIN warehouses wd ON wd.warehouse_id = t.destination_warehouse_id
	`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY t.created_at DESC;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transfers: %w", err)
	}
	defer rows.Close()

	transfers := []domain.Transfer{}
	for rows.Next() {
		transfer, err := r.scanTransfer(rows)
		if err != nil {
			return nil, err
		}
		transfers = append(transfers, *transfer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transfer rows: %w", err)
	}
	return transfers, nil
}

// MarkTransferPosted flips DRAFT to POSTED, recording who posted and when.
func (r *PgxTransferRepository) MarkTransferPosted(ctx context.Context, tx pgx.Tx, transferID, postedBy string, postedAt time.Time) error {
	query := `
		UPDATE inventory_transfers
		SET status = 'POSTED', posted_by = $2, last_updated_at = $3, last_updated_by = $2
		WHERE transfer_id = $1 AND status = 'DRAFT';
	`
	tag, err := tx.Exec(ctx, query, transferID, postedBy, postedAt)
	if err != nil {
		return fmt.Errorf("failed to mark transfer %s posted: %w", transferID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transfer %s is not a draft", apperrors.ErrConflict, transferID)
	}
	return nil
}

// DeleteTransfer removes a DRAFT document; its items cascade. The status
// guard lives in the statement so a concurrent post cannot slip between the
// service's read and the delete.
func (r *PgxTransferRepository) DeleteTransfer(ctx context.Context, transferID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM inventory_transfers WHERE transfer_id = $1 AND status = 'DRAFT';`, transferID)
	if err != nil {
		return fmt.Errorf("failed to delete transfer %s: %w", transferID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transfer %s is not a draft", apperrors.ErrConflict, transferID)
	}
	return nil
}
