package services

import (
	"context"

	"github.com/inventra/inventra_backend/internal/core/domain"
	"github.com/inventra/inventra_backend/internal/dto"
)

// TransferReaderSvc defines read operations for inventory transfer documents
type TransferReaderSvc interface {
	// GetTransferByID retrieves a specific transfer with its items.
	GetTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error)

	// ListTransfers retrieves transfer headers matching the filter params.
	ListTransfers(ctx context.Context, params dto.ListTransfersParams) ([]domain.Transfer, error)
}

// TransferWriterSvc defines write and lifecycle operations for inventory transfers
type TransferWriterSvc interface {
	// CreateTransfer persists a new DRAFT transfer with its items.
	CreateTransfer(ctx context.Context, req dto.CreateTransferRequest, creatorUserID string) (*domain.Transfer, error)

	// UpdateTransfer updates a DRAFT transfer; posted documents are immutable.
	UpdateTransfer(ctx context.Context, transferID string, req dto.UpdateTransferRequest, requestingUserID string) (*domain.Transfer, error)

	// PostTransfer applies a DRAFT transfer to stock, writing a TRANSFER_OUT and
	// TRANSFER_IN movement per item, atomically with the status flip.
	PostTransfer(ctx context.Context, transferID string, postingUserID string) (*domain.Transfer, error)

	// CopyTransfer creates a fresh DRAFT from an existing document of any status.
	CopyTransfer(ctx context.Context, transferID string, requestingUserID string) (*domain.Transfer, error)

	// ReverseTransfer creates and immediately posts a sibling transfer with
	// swapped warehouses, moving the stock back, in one transaction.
	ReverseTransfer(ctx context.Context, transferID string, requestingUserID string) (*domain.Transfer, error)

	// DeleteTransfer removes a DRAFT transfer; posted documents cannot be deleted.
	DeleteTransfer(ctx context.Context, transferID string, requestingUserID string) error
}

// TransferSvcFacade combines all transfer-related service interfaces
type TransferSvcFacade interface {
	TransferReaderSvc
	TransferWriterSvc
}
