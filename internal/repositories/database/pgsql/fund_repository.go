package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/inventra/inventra_backend/internal/apperrors"
	"github.com/inventra/inventra_backend/internal/core/domain"
	portsrepo "github.com/inventra/inventra_backend/internal/core/ports/repositories"
)

const fundTransferNumberPrefix = "FT"

// PgxFundRepository persists fund sources, their ledger entries and transfers.
type PgxFundRepository struct {
	BaseRepository
}

// newPgxFundRepository creates a new repository for fund data.
func newPgxFundRepository(pool *pgxpool.Pool) portsrepo.FundRepositoryWithTx {
	return &PgxFundRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FundRepositoryWithTx = (*PgxFundRepository)(nil)

const fundSourceSelectColumns = `
	fund_source_id, name, code, type, bank_name, account_number, account_holder,
	description, opening_balance, current_balance, currency, is_default, status,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanFundSource(row pgx.Row) (*domain.FundSource, error) {
	var s domain.FundSource
	err := row.Scan(
		&s.FundSourceID,
		&s.Name,
		&s.Code,
		&s.Type,
		&s.BankName,
		&s.AccountNumber,
		&s.AccountHolder,
		&s.Description,
		&s.OpeningBalance,
		&s.CurrentBalance,
		&s.Currency,
		&s.IsDefault,
		&s.Status,
		&s.CreatedAt,
		&s.CreatedBy,
		&s.LastUpdatedAt,
		&s.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan fund source row: %w", err)
	}
	return &s, nil
}

// FindFundSourceByID retrieves one fund source.
func (r *PgxFundRepository) FindFundSourceByID(ctx context.Context, fundSourceID string) (*domain.FundSource, error) {
	query := `SELECT ` + fundSourceSelectColumns + ` FROM fund_sources WHERE fund_source_id = $1;`
	source, err := scanFundSource(r.Pool.QueryRow(ctx, query, fundSourceID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("fund source %s not found", fundSourceID))
		}
		return nil, err
	}
	return source, nil
}

// FindFundSourceByCode retrieves one fund source by its unique code.
func (r *PgxFundRepository) FindFundSourceByCode(ctx context.Context, code string) (*domain.FundSource, error) {
	query := `SELECT ` + fundSourceSelectColumns + ` FROM fund_sources WHERE code = $1;`
	source, err := scanFundSource(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("fund source with code %s not found", code))
		}
		return nil, err
	}
	return source, nil
}

// ListFundSources retrieves fund sources matching the filter, ordered by name.
func (r *PgxFundRepository) ListFundSources(ctx context.Context, filter portsrepo.FundSourceFilter) ([]domain.FundSource, error) {
	var conditions []string
	var args []any

	addCondition := func(clause string, value any) {
		args = append(args, value)
		conditions = append(conditions, clause+"$"+strconv.Itoa(len(args)))
	}

	if filter.Status != "" {
		addCondition("status = ", string(filter.Status))
	}
	if filter.Type != "" {
		addCondition("type = ", string(filter.Type))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		placeholder := "$" + strconv.Itoa(len(args))
		conditions = append(conditions, "(name ILIKE "+placeholder+" OR code ILIKE "+placeholder+")")
	}

	query := `SELECT ` + fundSourceSelectColumns + ` FROM fund_sources`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY name;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query fund sources: %w", err)
	}
	defer rows.Close()

	sources := []domain.FundSource{}
	for rows.Next() {
		source, err := scanFundSource(rows)
		if err != nil {
			return nil, err
		}
		sources = append(sources, *source)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fund source rows: %w", err)
	}
	return sources, nil
}

// HasFundActivity reports whether any ledger entries beyond the opening
// balance reference the fund source.
func (r *PgxFundRepository) HasFundActivity(ctx context.Context, fundSourceID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM fund_transactions
			WHERE fund_source_id = $1 AND type <> 'OPENING_BALANCE'
		);
	`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, fundSourceID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check fund activity for %s: %w", fundSourceID, err)
	}
	return exists, nil
}

// CreateFundSource inserts a fund source.
func (r *PgxFundRepository) CreateFundSource(ctx context.Context, tx pgx.Tx, source domain.FundSource) error {
	query := `
		INSERT INTO fund_sources (` + fundSourceSelectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := tx.Exec(ctx, query,
		source.FundSourceID,
		source.Name,
		source.Code,
		string(source.Type),
		source.BankName,
		source.AccountNumber,
		source.AccountHolder,
		source.Description,
		source.OpeningBalance,
		source.CurrentBalance,
		source.Currency,
		source.IsDefault,
		string(source.Status),
		source.CreatedAt,
		source.CreatedBy,
		source.LastUpdatedAt,
		source.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: fund source code %s", apperrors.ErrDuplicate, source.Code)
		}
		return fmt.Errorf("failed to insert fund source %s: %w", source.FundSourceID, err)
	}
	return nil
}

// UpdateFundSource updates the descriptive fields of a fund source. Balances
// change only through ApplyFundDelta.
func (r *PgxFundRepository) UpdateFundSource(ctx context.Context, source domain.FundSource) error {
	query := `
		UPDATE fund_sources
		SET name = $2, code = $3, bank_name = $4, account_number = $5, account_holder = $6,
		    description = $7, is_default = $8, status = $9, last_updated_at = $10, last_updated_by = $11
		WHERE fund_source_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		source.FundSourceID,
		source.Name,
		source.Code,
		source.BankName,
		source.AccountNumber,
		source.AccountHolder,
		source.Description,
		source.IsDefault,
		string(source.Status),
		source.LastUpdatedAt,
		source.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: fund source code %s", apperrors.ErrDuplicate, source.Code)
		}
		return fmt.Errorf("failed to update fund source %s: %w", source.FundSourceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("fund source %s not found", source.FundSourceID))
	}
	return nil
}

// DeactivateFundSource soft-deletes a source that has ledger activity.
func (r *PgxFundRepository) DeactivateFundSource(ctx context.Context, fundSourceID, updatedBy string, at time.Time) error {
	query := `
		UPDATE fund_sources
		SET status = 'inactive', last_updated_at = $2, last_updated_by = $3
		WHERE fund_source_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, fundSourceID, at, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to deactivate fund source %s: %w", fundSourceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("fund source %s not found", fundSourceID))
	}
	return nil
}

// DeleteFundSource hard-deletes a source with no ledger activity. Its opening
// balance entry, if any, cascades.
func (r *PgxFundRepository) DeleteFundSource(ctx context.Context, fundSourceID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM fund_sources WHERE fund_source_id = $1;`, fundSourceID)
	if err != nil {
		return fmt.Errorf("failed to delete fund source %s: %w", fundSourceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("fund source %s not found", fundSourceID))
	}
	return nil
}

// FindFundSourceForUpdate locks the fund source row for the duration of the
// transaction and returns its current state.
func (r *PgxFundRepository) FindFundSourceForUpdate(ctx context.Context, tx pgx.Tx, fundSourceID string) (*domain.FundSource, error) {
	query := `SELECT ` + fundSourceSelectColumns + ` FROM fund_sources WHERE fund_source_id = $1 FOR UPDATE;`
	source, err := scanFundSource(tx.QueryRow(ctx, query, fundSourceID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("fund source %s not found", fundSourceID))
		}
		return nil, err
	}
	return source, nil
}

// ApplyFundDelta applies one signed delta to a fund source balance. The
// caller must already hold the row lock via FindFundSourceForUpdate; the
// guard reads the balance inside the same transaction so it sees earlier
// deltas applied under the lock.
func (r *PgxFundRepository) ApplyFundDelta(ctx context.Context, tx pgx.Tx, fundSourceID string, delta decimal.Decimal, meta portsrepo.FundDeltaMeta) (*domain.FundTransaction, error) {
	var current decimal.Decimal
	if err := tx.QueryRow(ctx, `SELECT current_balance FROM fund_sources WHERE fund_source_id = $1;`, fundSourceID).Scan(&current); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("fund source %s not found", fundSourceID))
		}
		return nil, fmt.Errorf("failed to read balance of fund source %s: %w", fundSourceID, err)
	}

	newBalance := current.Add(delta)
	if newBalance.IsNegative() && !meta.AllowNegative {
		return nil, &apperrors.InsufficientBalanceError{
			FundSourceID: fundSourceID,
			Available:    current,
			Requested:    delta.Neg(),
		}
	}

	entry := domain.FundTransaction{
		TransactionID:   uuid.NewString(),
		FundSourceID:    fundSourceID,
		Type:            meta.Type,
		Amount:          meta.Amount,
		RunningBalance:  newBalance,
		ReferenceType:   meta.ReferenceType,
		ReferenceID:     meta.ReferenceID,
		Description:     meta.Description,
		TransactionDate: meta.TransactionDate,
		CreatedBy:       meta.CreatedBy,
	}
	insertQuery := `
		INSERT INTO fund_transactions (
			transaction_id, fund_source_id, type, amount, running_balance,
			reference_type, reference_id, description, transaction_date, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := tx.Exec(ctx, insertQuery,
		entry.TransactionID,
		entry.FundSourceID,
		string(entry.Type),
		entry.Amount,
		entry.RunningBalance,
		entry.ReferenceType,
		entry.ReferenceID,
		entry.Description,
		entry.TransactionDate,
		entry.CreatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert fund transaction: %w", err)
	}

	updateQuery := `
		UPDATE fund_sources
		SET current_balance = $2, last_updated_at = $3, last_updated_by = $4
		WHERE fund_source_id = $1;
	`
	tag, err := tx.Exec(ctx, updateQuery, fundSourceID, newBalance, meta.TransactionDate, meta.CreatedBy)
	if err != nil {
		return nil, fmt.Errorf("failed to update fund source balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.NewAppError(500, fmt.Sprintf("fund source %s vanished during balance update", fundSourceID), apperrors.ErrInternal)
	}
	return &entry, nil
}

// ListFundTransactions retrieves ledger entries of a fund source, newest first.
func (r *PgxFundRepository) ListFundTransactions(ctx context.Context, fundSourceID string, filter portsrepo.FundTransactionFilter) ([]domain.FundTransaction, error) {
	args := []any{fundSourceID}
	conditions := []string{"fund_source_id = $1"}

	addCondition := func(clause string, value any) {
		args = append(args, value)
		conditions = append(conditions, clause+"$"+strconv.Itoa(len(args)))
	}

	if filter.Type != "" {
		addCondition("type = ", string(filter.Type))
	}
	if filter.DateFrom != nil {
		addCondition("transaction_date >= ", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		addCondition("transaction_date <= ", *filter.DateTo)
	}

	query := `
		SELECT transaction_id, fund_source_id, type, amount, running_balance,
		       COALESCE(reference_type, ''), COALESCE(reference_id, ''), description,
		       transaction_date, created_by
		FROM fund_transactions
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY transaction_date DESC, transaction_id DESC
	`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += " LIMIT $" + strconv.Itoa(len(args))
	}
	query += ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query fund transactions: %w", err)
	}
	defer rows.Close()

	entries := []domain.FundTransaction{}
	for rows.Next() {
		var e domain.FundTransaction
		if err := rows.Scan(
			&e.TransactionID,
			&e.FundSourceID,
			&e.Type,
			&e.Amount,
			&e.RunningBalance,
			&e.ReferenceType,
			&e.ReferenceID,
			&e.Description,
			&e.TransactionDate,
			&e.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan fund transaction row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fund transaction rows: %w", err)
	}
	return entries, nil
}

// NextFundTransferNumber derives the next FT-YYYYMMDD-NNNN number for the day.
func (r *PgxFundRepository) NextFundTransferNumber(ctx context.Context, tx pgx.Tx, day time.Time) (string, error) {
	prefix := documentNumberPrefix(fundTransferNumberPrefix, day)
	query := `
		SELECT COALESCE(MAX(CAST(RIGHT(transfer_number, 4) AS INTEGER)), 0)
		FROM fund_transfers
		WHERE transfer_number LIKE $1;
	`
	var maxSuffix int
	if err := tx.QueryRow(ctx, query, prefix+"%").Scan(&maxSuffix); err != nil {
		return "", fmt.Errorf("failed to read highest fund transfer number: %w", err)
	}
	return documentNumber(fundTransferNumberPrefix, day, maxSuffix), nil
}

// CreateFundTransfer inserts a completed fund transfer record.
func (r *PgxFundRepository) CreateFundTransfer(ctx context.Context, tx pgx.Tx, transfer domain.FundTransfer) error {
	query := `
		INSERT INTO fund_transfers (
			transfer_id, transfer_number, from_fund_source_id, to_fund_source_id,
			amount, transfer_fee, net_amount, description, status, transfer_date,
			created_by, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := tx.Exec(ctx, query,
		transfer.TransferID,
		transfer.TransferNumber,
		transfer.FromFundSourceID,
		transfer.ToFundSourceID,
		transfer.Amount,
		transfer.TransferFee,
		transfer.NetAmount,
		transfer.Description,
		transfer.Status,
		transfer.TransferDate,
		transfer.CreatedBy,
		transfer.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: fund transfer number %s", apperrors.ErrDuplicate, transfer.TransferNumber)
		}
		return fmt.Errorf("failed to insert fund transfer %s: %w", transfer.TransferID, err)
	}
	return nil
}

const fundTransferSelectColumns = `
	ft.transfer_id, ft.transfer_number, ft.from_fund_source_id, ft.to_fund_source_id,
	ft.amount, ft.transfer_fee, ft.net_amount, ft.description, ft.status,
	ft.transfer_date, ft.created_by, ft.created_at, fs.name, ts.name
`

func scanFundTransfer(row pgx.Row) (*domain.FundTransfer, error) {
	var t domain.FundTransfer
	err := row.Scan(
		&t.TransferID,
		&t.TransferNumber,
		&t.FromFundSourceID,
		&t.ToFundSourceID,
		&t.Amount,
		&t.TransferFee,
		&t.NetAmount,
		&t.Description,
		&t.Status,
		&t.TransferDate,
		&t.CreatedBy,
		&t.CreatedAt,
		&t.FromName,
		&t.ToName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan fund transfer row: %w", err)
	}
	return &t, nil
}

// FindFundTransferByID retrieves one fund transfer with both source names.
func (r *PgxFundRepository) FindFundTransferByID(ctx context.Context, transferID string) (*domain.FundTransfer, error) {
	query := `
		SELECT ` + fundTransferSelectColumns + `
		FROM fund_transfers ft
		JOIN fund_sources fs ON fs.fund_source_id = ft.from_fund_source_id
		JOIN fund_sources ts ON ts.fund_source_id = ft.to_fund_source_id
		WHERE ft.transfer_id = $1;
	`
	transfer, err := scanFundTransfer(r.Pool.QueryRow(ctx, query, transferID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("fund transfer %s not found", transferID))
		}
		return nil, err
	}
	return transfer, nil
}

// ListFundTransfers retrieves fund transfers matching the filter, newest
// first. The fund source filter matches either side.
func (r *PgxFundRepository) ListFundTransfers(ctx context.Context, filter portsrepo.FundTransferFilter) ([]domain.FundTransfer, error) {
	var conditions []string
	var args []any

	addCondition := func(clause string, value any) {
		args = append(args, value)
		conditions = append(conditions, clause+"$"+strconv.Itoa(len(args)))
	}

	if filter.FundSourceID != "" {
		args = append(args, filter.FundSourceID)
		placeholder := "$" + strconv.Itoa(len(args))
		conditions = append(conditions, "(ft.from_fund_source_id = "+placeholder+" OR ft.to_fund_source_id = "+placeholder+")")
	}
	if filter.DateFrom != nil {
		addCondition("ft.transfer_date >= ", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		addCondition("ft.transfer_date <= ", *filter.DateTo)
	}

	query := `
		SELECT ` + fundTransferSelectColumns + `
		FROM fund_transfers ft
		JOIN fund_sources fs ON fs.fund_source_id = ft.from_fund_source_id
		JOIN fund_sources ts ON ts.fund_source_id = ft.to_fund_source_id
	`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY ft.transfer_date DESC, ft.created_at DESC;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query fund transfers: %w", err)
	}
	defer rows.Close()

	transfers := []domain.FundTransfer{}
	for rows.Next() {
		transfer, err := scanFundTransfer(rows)
		if err != nil {
			return nil, err
		}
		transfers = append(transfers, *transfer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fund transfer rows: %w", err)
	}
	return transfers, nil
}
