package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/inventra/inventra_backend/internal/core/domain"
	portsrepo "github.com/inventra/inventra_backend/internal/core/ports/repositories"
)

// MockAdjustmentRepository is a mock for AdjustmentRepositoryWithTx. The
// transaction methods are plain stubs so service code runs its usual
// begin/commit path without a database.
type MockAdjustmentRepository struct {
	mock.Mock
}

var _ portsrepo.AdjustmentRepositoryWithTx = (*MockAdjustmentRepository)(nil)

func (m *MockAdjustmentRepository) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (m *MockAdjustmentRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	return nil
}
func (m *MockAdjustmentRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	return nil
}

func (m *MockAdjustmentRepository) FindAdjustmentByID(ctx context.Context, adjustmentID string) (*domain.Adjustment, error) {
	args := m.Called(ctx, adjustmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Adjustment), args.Error(1)
}

func (m *MockAdjustmentRepository) ListAdjustments(ctx context.Context, filter portsrepo.AdjustmentFilter) ([]domain.Adjustment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Adjustment), args.Error(1)
}

func (m *MockAdjustmentRepository) CountReversalsOf(ctx context.Context, adjustmentNumber string) (int, error) {
	args := m.Called(ctx, adjustmentNumber)
	return args.Int(0), args.Error(1)
}

func (m *MockAdjustmentRepository) CreateAdjustment(ctx context.Context, tx pgx.Tx, adjustment domain.Adjustment) error {
	args := m.Called(ctx, tx, adjustment)
	return args.Error(0)
}

func (m *MockAdjustmentRepository) NextAdjustmentNumber(ctx context.Context, tx pgx.Tx, day time.Time) (string, error) {
	args := m.Called(ctx, tx, day)
	return args.String(0), args.Error(1)
}

func (m *MockAdjustmentRepository) UpdateDraftAdjustment(ctx context.Context, tx pgx.Tx, adjustment domain.Adjustment) error {
	args := m.Called(ctx, tx, adjustment)
	return args.Error(0)
}

func (m *MockAdjustmentRepository) FindAdjustmentForUpdate(ctx context.Context, tx pgx.Tx, adjustmentID string) (*domain.Adjustment, error) {
	args := m.Called(ctx, tx, adjustmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Adjustment), args.Error(1)
}

func (m *MockAdjustmentRepository) CaptureItemQuantities(ctx context.Context, tx pgx.Tx, items []domain.AdjustmentItem) error {
	args := m.Called(ctx, tx, items)
	return args.Error(0)
}

func (m *MockAdjustmentRepository) MarkAdjustmentPosted(ctx context.Context, tx pgx.Tx, adjustmentID, postedBy string, postedAt time.Time) error {
	args := m.Called(ctx, tx, adjustmentID, postedBy, postedAt)
	return args.Error(0)
}

func (m *MockAdjustmentRepository) DeleteAdjustment(ctx context.Context, adjustmentID string) error {
	args := m.Called(ctx, adjustmentID)
	return args.Error(0)
}

// MockTransferRepository is a mock for TransferRepositoryWithTx.
type MockTransferRepository struct {
	mock.Mock
}

var _ portsrepo.TransferRepositoryWithTx = (*MockTransferRepository)(nil)

func (m *MockTransferRepository) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (m *MockTransferRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	return nil
}
func (m *MockTransferRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	return nil
}

func (m *MockTransferRepository) FindTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error) {
	args := m.Called(ctx, transferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transfer), args.Error(1)
}

func (m *MockTransferRepository) ListTransfers(ctx context.Context, filter portsrepo.TransferFilter) ([]domain.Transfer, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transfer), args.Error(1)
}

func (m *MockTransferRepository) CreateTransfer(ctx context.Context, tx pgx.Tx, transfer domain.Transfer) error {
	args := m.Called(ctx, tx, transfer)
	return args.Error(0)
}

func (m *MockTransferRepository) NextTransferNumber(ctx context.Context, tx pgx.Tx, day time.Time) (string, error) {
	args := m.Called(ctx, tx, day)
	return args.String(0), args.Error(1)
}

func (m *MockTransferRepository) UpdateDraftTransfer(ctx context.Context, tx pgx.Tx, transfer domain.Transfer) error {
	args := m.Called(ctx, tx, transfer)
	return args.Error(0)
}

func (m *MockTransferRepository) FindTransferForUpdate(ctx context.Context, tx pgx.Tx, transferID string) (*domain.Transfer, error) {
	args := m.Called(ctx, tx, transferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transfer), args.Error(1)
}

func (m *MockTransferRepository) MarkTransferPosted(ctx context.Context, tx pgx.Tx, transferID, postedBy string, postedAt time.Time) error {
	args := m.Called(ctx, tx, transferID, postedBy, postedAt)
	return args.Error(0)
}

func (m *MockTransferRepository) DeleteTransfer(ctx context.Context, transferID string) error {
	args := m.Called(ctx, transferID)
	return args.Error(0)
}

// MockInventoryRepository is a mock for InventoryRepositoryWithTx.
type MockInventoryRepository struct {
	mock.Mock
}

var _ portsrepo.InventoryRepositoryWithTx = (*MockInventoryRepository)(nil)

func (m *MockInventoryRepository) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (m *MockInventoryRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	return nil
}
func (m *MockInventoryRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	return nil
}

func (m *MockInventoryRepository) GetStockQuantity(ctx context.Context, productID, warehouseID string) (decimal.Decimal, error) {
	args := m.Called(ctx, productID, warehouseID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockInventoryRepository) ListStockLevels(ctx context.Context, warehouseID string) ([]domain.StockLevel, error) {
	args := m.Called(ctx, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockLevel), args.Error(1)
}

func (m *MockInventoryRepository) ListMovements(ctx context.Context, filter portsrepo.MovementFilter) ([]domain.StockMovement, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockMovement), args.Error(1)
}

func (m *MockInventoryRepository) GetQuantitiesForUpdate(ctx context.Context, tx pgx.Tx, warehouseID string, productIDs []string) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, tx, warehouseID, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

func (m *MockInventoryRepository) ApplyStockDelta(ctx context.Context, tx pgx.Tx, productID, warehouseID string, delta decimal.Decimal, meta portsrepo.StockDeltaMeta) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, productID, warehouseID, delta, meta)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockInventoryRepository) InsertMovement(ctx context.Context, tx pgx.Tx, movement domain.StockMovement) error {
	args := m.Called(ctx, tx, movement)
	return args.Error(0)
}

func (m *MockInventoryRepository) SetQuantity(ctx context.Context, tx pgx.Tx, productID, warehouseID string, quantity decimal.Decimal) error {
	args := m.Called(ctx, tx, productID, warehouseID, quantity)
	return args.Error(0)
}

// MockFundRepository is a mock for FundRepositoryWithTx.
type MockFundRepository struct {
	mock.Mock
}

var _ portsrepo.FundRepositoryWithTx = (*MockFundRepository)(nil)

func (m *MockFundRepository) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (m *MockFundRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	return nil
}
func (m *MockFundRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	return nil
}

func (m *MockFundRepository) FindFundSourceByID(ctx context.Context, fundSourceID string) (*domain.FundSource, error) {
	args := m.Called(ctx, fundSourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FundSource), args.Error(1)
}

func (m *MockFundRepository) FindFundSourceByCode(ctx context.Context, code string) (*domain.FundSource, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FundSource), args.Error(1)
}

func (m *MockFundRepository) ListFundSources(ctx context.Context, filter portsrepo.FundSourceFilter) ([]domain.FundSource, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FundSource), args.Error(1)
}

func (m *MockFundRepository) HasFundActivity(ctx context.Context, fundSourceID string) (bool, error) {
	args := m.Called(ctx, fundSourceID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFundRepository) CreateFundSource(ctx context.Context, tx pgx.Tx, source domain.FundSource) error {
	args := m.Called(ctx, tx, source)
	return args.Error(0)
}

func (m *MockFundRepository) UpdateFundSource(ctx context.Context, source domain.FundSource) error {
	args := m.Called(ctx, source)
	return args.Error(0)
}

func (m *MockFundRepository) DeactivateFundSource(ctx context.Context, fundSourceID, updatedBy string, at time.Time) error {
	args := m.Called(ctx, fundSourceID, updatedBy, at)
	return args.Error(0)
}

func (m *MockFundRepository) DeleteFundSource(ctx context.Context, fundSourceID string) error {
	args := m.Called(ctx, fundSourceID)
	return args.Error(0)
}

func (m *MockFundRepository) FindFundSourceForUpdate(ctx context.Context, tx pgx.Tx, fundSourceID string) (*domain.FundSource, error) {
	args := m.Called(ctx, tx, fundSourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FundSource), args.Error(1)
}

func (m *MockFundRepository) ApplyFundDelta(ctx context.Context, tx pgx.Tx, fundSourceID string, delta decimal.Decimal, meta portsrepo.FundDeltaMeta) (*domain.FundTransaction, error) {
	args := m.Called(ctx, tx, fundSourceID, delta, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FundTransaction), args.Error(1)
}

func (m *MockFundRepository) FindFundTransferByID(ctx context.Context, transferID string) (*domain.FundTransfer, error) {
	args := m.Called(ctx, transferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FundTransfer), args.Error(1)
}

func (m *MockFundRepository) ListFundTransfers(ctx context.Context, filter portsrepo.FundTransferFilter) ([]domain.FundTransfer, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FundTransfer), args.Error(1)
}

func (m *MockFundRepository) CreateFundTransfer(ctx context.Context, tx pgx.Tx, transfer domain.FundTransfer) error {
	args := m.Called(ctx, tx, transfer)
	return args.Error(0)
}

func (m *MockFundRepository) NextFundTransferNumber(ctx context.Context, tx pgx.Tx, day time.Time) (string, error) {
	args := m.Called(ctx, tx, day)
	return args.String(0), args.Error(1)
}

func (m *MockFundRepository) ListFundTransactions(ctx context.Context, fundSourceID string, filter portsrepo.FundTransactionFilter) ([]domain.FundTransaction, error) {
	args := m.Called(ctx, fundSourceID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FundTransaction), args.Error(1)
}

// MockCatalogRepository is a mock for CatalogRepositoryFacade.
type MockCatalogRepository struct {
	mock.Mock
}

var _ portsrepo.CatalogRepositoryFacade = (*MockCatalogRepository)(nil)

func (m *MockCatalogRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockCatalogRepository) FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error) {
	args := m.Called(ctx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Product), args.Error(1)
}

func (m *MockCatalogRepository) FindWarehouseByID(ctx context.Context, warehouseID string) (*domain.Warehouse, error) {
	args := m.Called(ctx, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Warehouse), args.Error(1)
}

// MockAuditRecorder is a mock for AuditRecorder.
type MockAuditRecorder struct {
	mock.Mock
}

var _ portsrepo.AuditRecorder = (*MockAuditRecorder)(nil)

func (m *MockAuditRecorder) Record(ctx context.Context, tx pgx.Tx, log domain.AuditLog) error {
	args := m.Called(ctx, tx, log)
	return args.Error(0)
}
