package services

import (
	"context"

	"github.com/inventra/inventra_backend/internal/core/domain"
	"github.com/inventra/inventra_backend/internal/dto"
)

// FundSourceReaderSvc defines read operations for fund sources and their ledger
type FundSourceReaderSvc interface {
	// GetFundSourceByID retrieves a specific fund source.
	GetFundSourceByID(ctx context.Context, fundSourceID string) (*domain.FundSource, error)

	// ListFundSources retrieves fund sources matching the filter params.
	ListFundSources(ctx context.Context, params dto.ListFundSourcesParams) ([]domain.FundSource, error)

	// ListFundTransactions retrieves one fund source's ledger history, newest first.
	ListFundTransactions(ctx context.Context, fundSourceID string, params dto.ListFundTransactionsParams) ([]domain.FundTransaction, error)
}

// FundSourceWriterSvc defines write operations for fund sources
type FundSourceWriterSvc interface {
	// CreateFundSource persists a new fund source; a non-zero opening balance
	// writes an OPENING_BALANCE ledger entry in the same transaction.
	CreateFundSource(ctx context.Context, req dto.CreateFundSourceRequest, creatorUserID string) (*domain.FundSource, error)

	// UpdateFundSource updates fund source metadata; balances are never edited here.
	UpdateFundSource(ctx context.Context, fundSourceID string, req dto.UpdateFundSourceRequest, requestingUserID string) (*domain.FundSource, error)

	// DeleteFundSource hard-deletes a source with no ledger activity, or
	// deactivates it when activity exists.
	DeleteFundSource(ctx context.Context, fundSourceID string, requestingUserID string) error
}

// FundTransactionSvc defines fund balance mutation operations
type FundTransactionSvc interface {
	// RecordDeposit credits a fund source and appends a DEPOSIT ledger entry.
	RecordDeposit(ctx context.Context, fundSourceID string, req dto.RecordFundTransactionRequest, userID string) (*domain.FundTransaction, error)

	// RecordWithdrawal debits a fund source and appends a WITHDRAWAL ledger
	// entry. The balance guard rejects overdrafts unless skipBalanceCheck is set.
	RecordWithdrawal(ctx context.Context, fundSourceID string, req dto.RecordFundTransactionRequest, userID string, skipBalanceCheck bool) (*domain.FundTransaction, error)

	// AdjustBalance reconciles a fund source to an exact balance, appending an
	// ADJUSTMENT ledger entry carrying the absolute difference.
	AdjustBalance(ctx context.Context, fundSourceID string, req dto.AdjustBalanceRequest, userID string) (*domain.FundTransaction, error)
}

// FundTransferSvc defines fund transfer operations
type FundTransferSvc interface {
	// CreateFundTransfer atomically debits the source by amount plus fee and
	// credits the destination by amount minus fee.
	CreateFundTransfer(ctx context.Context, req dto.CreateFundTransferRequest, userID string) (*domain.FundTransfer, error)

	// GetFundTransferByID retrieves a specific fund transfer.
	GetFundTransferByID(ctx context.Context, transferID string) (*domain.FundTransfer, error)

	// ListFundTransfers retrieves fund transfers matching the filter params.
	ListFundTransfers(ctx context.Context, params dto.ListFundTransfersParams) ([]domain.FundTransfer, error)
}

// FundSvcFacade combines all fund-related service interfaces
type FundSvcFacade interface {
	FundSourceReaderSvc
	FundSourceWriterSvc
	FundTransactionSvc
	FundTransferSvc
}
