package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/inventra/inventra_backend/internal/core/domain"
)

// StockDeltaMeta carries the ledger entry metadata for a single balance
// mutation performed through ApplyStockDelta.
type StockDeltaMeta struct {
	Type          domain.MovementType
	ReferenceType string
	ReferenceID   string
	Reason        string
	OccurredAt    time.Time
	CreatedBy     string
	// ForbidNegative aborts the mutation with InsufficientStockError when the
	// resulting balance would be negative. Transfers always set it;
	// adjustments follow the configured policy.
	ForbidNegative bool
}

// StockReader defines read operations for stock balances and movements.
type StockReader interface {
	// GetStockQuantity returns the current balance for one (product, warehouse)
	// key, zero if no balance row exists yet.
	GetStockQuantity(ctx context.Context, productID, warehouseID string) (decimal.Decimal, error)

	// ListStockLevels returns balance rows joined with catalog metadata,
	// optionally filtered by warehouse.
	ListStockLevels(ctx context.Context, warehouseID string) ([]domain.StockLevel, error)

	// ListMovements returns movement ledger entries filtered by product,
	// warehouse and/or reference, newest first.
	ListMovements(ctx context.Context, filter MovementFilter) ([]domain.StockMovement, error)
}

// MovementFilter narrows ListMovements.
type MovementFilter struct {
	ProductID     string
	WarehouseID   string
	Type          domain.MovementType
	ReferenceType string
	ReferenceID   string
	DateFrom      *time.Time
	DateTo        *time.Time
	Limit         int
}

// StockWriter defines the balance-store mutation primitives. All methods must
// be called within the caller's transaction; balance rows are locked with
// SELECT ... FOR UPDATE before any read-modify-write.
type StockWriter interface {
	// GetQuantitiesForUpdate batch-fetches and row-locks the balances for the
	// given products in one warehouse. Missing rows are created at zero and
	// locked, so every returned key holds its lock until commit.
	GetQuantitiesForUpdate(ctx context.Context, tx pgx.Tx, warehouseID string, productIDs []string) (map[string]decimal.Decimal, error)

	// ApplyStockDelta applies one signed delta to a (product, warehouse)
	// balance: lock+read, guard, insert one movement entry carrying the
	// resulting running balance, update the balance row. Exactly one insert
	// and one update per call; nothing is written when the guard fails.
	ApplyStockDelta(ctx context.Context, tx pgx.Tx, productID, warehouseID string, delta decimal.Decimal, meta StockDeltaMeta) (decimal.Decimal, error)

	// InsertMovement appends one movement ledger entry. Used by the batch
	// adjustment path, where balances were already locked and recomputed.
	InsertMovement(ctx context.Context, tx pgx.Tx, movement domain.StockMovement) error

	// SetQuantity sets a locked balance row to an exact value.
	SetQuantity(ctx context.Context, tx pgx.Tx, productID, warehouseID string, quantity decimal.Decimal) error
}

// InventoryRepositoryFacade combines stock read and write operations.
type InventoryRepositoryFacade interface {
	StockReader
	StockWriter
}

// InventoryRepositoryWithTx extends the facade with transaction capabilities.
type InventoryRepositoryWithTx interface {
	InventoryRepositoryFacade
	TransactionManager
}
