package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/inventra/inventra_backend/internal/core/domain"
)

// TransferFilter narrows ListTransfers.
type TransferFilter struct {
	WarehouseID string // matches either side of the transfer
	Status      domain.DocumentStatus
	DateFrom    *time.Time
	DateTo      *time.Time
	Search      string
}

// TransferReader defines read operations for inventory transfer documents.
type TransferReader interface {
	// FindTransferByID retrieves one transfer with its items and their
	// product reference metadata eagerly loaded.
	FindTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error)

	// ListTransfers retrieves transfer headers matching the filter, newest first.
	ListTransfers(ctx context.Context, filter TransferFilter) ([]domain.Transfer, error)
}

// TransferWriter defines write operations for inventory transfer documents.
type TransferWriter interface {
	// CreateTransfer inserts a DRAFT document and its items.
	CreateTransfer(ctx context.Context, tx pgx.Tx, transfer domain.Transfer) error

	// NextTransferNumber derives the next TRF-YYYYMMDD-NNNN number for the day.
	NextTransferNumber(ctx context.Context, tx pgx.Tx, day time.Time) (string, error)

	// UpdateDraftTransfer replaces the header fields and items of a DRAFT document.
	UpdateDraftTransfer(ctx context.Context, tx pgx.Tx, transfer domain.Transfer) error

	// FindTransferForUpdate loads a transfer with its items inside the
	// transaction, locking the header row against concurrent posting.
	FindTransferForUpdate(ctx context.Context, tx pgx.Tx, transferID string) (*domain.Transfer, error)

	// MarkTransferPosted flips DRAFT to POSTED, recording who posted and when.
	MarkTransferPosted(ctx context.Context, tx pgx.Tx, transferID, postedBy string, postedAt time.Time) error

	// DeleteTransfer removes a DRAFT document and its items. It returns
	// ErrConflict when the document is no longer a draft.
	DeleteTransfer(ctx context.Context, transferID string) error
}

// TransferRepositoryFacade combines transfer read and write operations.
type TransferRepositoryFacade interface {
	TransferReader
	TransferWriter
}

// TransferRepositoryWithTx extends the facade with transaction capabilities.
type TransferRepositoryWithTx interface {
	TransferRepositoryFacade
	TransactionManager
}
