package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/inventra/inventra_backend/internal/core/domain"
)

// AdjustmentFilter narrows ListAdjustments.
type AdjustmentFilter struct {
	WarehouseID string
	Status      domain.DocumentStatus
	DateFrom    *time.Time
	DateTo      *time.Time
	Search      string
}

// AdjustmentReader defines read operations for adjustment documents.
type AdjustmentReader interface {
	// FindAdjustmentByID retrieves one adjustment with its items and their
	// product reference metadata eagerly loaded.
	FindAdjustmentByID(ctx context.Context, adjustmentID string) (*domain.Adjustment, error)

	// ListAdjustments retrieves adjustment headers matching the filter,
	// newest first.
	ListAdjustments(ctx context.Context, filter AdjustmentFilter) ([]domain.Adjustment, error)

	// CountReversalsOf reports how many posted adjustments reference the
	// given adjustment number as their reference number. "Has this document
	// been reversed" is derived from this query, never from a stored flag.
	CountReversalsOf(ctx context.Context, adjustmentNumber string) (int, error)
}

// AdjustmentWriter defines write operations for adjustment documents. The
// tx-aware methods participate in the posting transaction owned by the service.
type AdjustmentWriter interface {
	// CreateAdjustment inserts a DRAFT document and its items. The document
	// number is generated inside the given transaction.
	CreateAdjustment(ctx context.Context, tx pgx.Tx, adjustment domain.Adjustment) error

	// NextAdjustmentNumber derives the next ADJ-YYYYMMDD-NNNN number for the
	// given day by finding the highest existing suffix and incrementing it.
	NextAdjustmentNumber(ctx context.Context, tx pgx.Tx, day time.Time) (string, error)

	// UpdateDraftAdjustment replaces the header fields and items of a DRAFT
	// document.
	UpdateDraftAdjustment(ctx context.Context, tx pgx.Tx, adjustment domain.Adjustment) error

	// FindAdjustmentForUpdate loads an adjustment with its items inside the
	// transaction, locking the header row against concurrent posting.
	FindAdjustmentForUpdate(ctx context.Context, tx pgx.Tx, adjustmentID string) (*domain.Adjustment, error)

	// CaptureItemQuantities persists the posting-time system/actual
	// quantities on each line item.
	CaptureItemQuantities(ctx context.Context, tx pgx.Tx, items []domain.AdjustmentItem) error

	// MarkAdjustmentPosted flips DRAFT to POSTED, recording who posted and when.
	MarkAdjustmentPosted(ctx context.Context, tx pgx.Tx, adjustmentID, postedBy string, postedAt time.Time) error

	// DeleteAdjustment removes a DRAFT document and its items. It returns
	// ErrConflict when the document is no longer a draft.
	DeleteAdjustment(ctx context.Context, adjustmentID string) error
}

// AdjustmentRepositoryFacade combines adjustment read and write operations.
type AdjustmentRepositoryFacade interface {
	AdjustmentReader
	AdjustmentWriter
}

// AdjustmentRepositoryWithTx extends the facade with transaction capabilities.
type AdjustmentRepositoryWithTx interface {
	AdjustmentRepositoryFacade
	TransactionManager
}
