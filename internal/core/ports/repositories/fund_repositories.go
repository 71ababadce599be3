package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/inventra/inventra_backend/internal/core/domain"
)

// FundSourceFilter narrows ListFundSources.
type FundSourceFilter struct {
	Status domain.FundSourceStatus
	Type   domain.FundSourceType
	Search string
}

// FundTransactionFilter narrows ListFundTransactions.
type FundTransactionFilter struct {
	Type     domain.FundTransactionType
	DateFrom *time.Time
	DateTo   *time.Time
	Limit    int
}

// FundTransferFilter narrows ListFundTransfers.
type FundTransferFilter struct {
	FundSourceID string // matches either side
	DateFrom     *time.Time
	DateTo       *time.Time
}

// FundDeltaMeta carries the fund ledger entry metadata for one balance
// mutation performed through ApplyFundDelta.
type FundDeltaMeta struct {
	Type            domain.FundTransactionType
	Amount          decimal.Decimal // positive magnitude recorded on the entry
	ReferenceType   string
	ReferenceID     string
	Description     string
	TransactionDate time.Time
	CreatedBy       string
	// AllowNegative skips the insufficiency guard. Set for balance
	// adjustments and for withdrawals mirrored from already-validated
	// operations.
	AllowNegative bool
}

// FundSourceReader defines read operations for fund sources.
type FundSourceReader interface {
	FindFundSourceByID(ctx context.Context, fundSourceID string) (*domain.FundSource, error)
	FindFundSourceByCode(ctx context.Context, code string) (*domain.FundSource, error)
	ListFundSources(ctx context.Context, filter FundSourceFilter) ([]domain.FundSource, error)
	// HasFundActivity reports whether any ledger entries beyond the opening
	// balance reference the fund source; it decides soft versus hard delete.
	HasFundActivity(ctx context.Context, fundSourceID string) (bool, error)
}

// FundSourceWriter defines write operations for fund sources and their ledger.
type FundSourceWriter interface {
	CreateFundSource(ctx context.Context, tx pgx.Tx, source domain.FundSource) error
	UpdateFundSource(ctx context.Context, source domain.FundSource) error
	// DeactivateFundSource soft-deletes a source that has ledger activity.
	DeactivateFundSource(ctx context.Context, fundSourceID, updatedBy string, at time.Time) error
	// DeleteFundSource hard-deletes a source with no ledger activity.
	DeleteFundSource(ctx context.Context, fundSourceID string) error

	// FindFundSourceForUpdate locks the fund source row for the duration of
	// the transaction and returns its current state.
	FindFundSourceForUpdate(ctx context.Context, tx pgx.Tx, fundSourceID string) (*domain.FundSource, error)

	// ApplyFundDelta applies one signed delta to a locked fund source
	// balance: guard, insert one fund transaction carrying the resulting
	// running balance, update the balance. Exactly one insert and one update
	// per call; nothing is written when the guard fails. Returns the
	// inserted ledger entry.
	ApplyFundDelta(ctx context.Context, tx pgx.Tx, fundSourceID string, delta decimal.Decimal, meta FundDeltaMeta) (*domain.FundTransaction, error)
}

// FundTransferReader defines read operations for fund transfers.
type FundTransferReader interface {
	FindFundTransferByID(ctx context.Context, transferID string) (*domain.FundTransfer, error)
	ListFundTransfers(ctx context.Context, filter FundTransferFilter) ([]domain.FundTransfer, error)
}

// FundTransferWriter defines write operations for fund transfers.
type FundTransferWriter interface {
	CreateFundTransfer(ctx context.Context, tx pgx.Tx, transfer domain.FundTransfer) error
	// NextFundTransferNumber derives the next FT-YYYYMMDD-NNNN number for the day.
	NextFundTransferNumber(ctx context.Context, tx pgx.Tx, day time.Time) (string, error)
}

// FundTransactionReader defines read operations for the fund ledger.
type FundTransactionReader interface {
	ListFundTransactions(ctx context.Context, fundSourceID string, filter FundTransactionFilter) ([]domain.FundTransaction, error)
}

// FundRepositoryFacade combines all fund-related repository interfaces.
type FundRepositoryFacade interface {
	FundSourceReader
	FundSourceWriter
	FundTransferReader
	FundTransferWriter
	FundTransactionReader
}

// FundRepositoryWithTx extends the facade with transaction capabilities.
type FundRepositoryWithTx interface {
	FundRepositoryFacade
	TransactionManager
}
