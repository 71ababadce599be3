package services_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/inventra/inventra_backend/internal/apperrors"
	"github.com/inventra/inventra_backend/internal/core/domain"
	portsrepo "github.com/inventra/inventra_backend/internal/core/ports/repositories"
	"github.com/inventra/inventra_backend/internal/core/services"
	"github.com/inventra/inventra_backend/internal/dto"
)

// The fakes below back the posting services with plain maps so whole document
// sequences can run end to end. After any mix of posts and reversals, every
// (product, warehouse) balance must equal the sum of its movement quantities,
// and each movement's running balance must continue the previous one.

type stockKey struct {
	productID   string
	warehouseID string
}

type fakeLedgerStore struct {
	mu        sync.Mutex
	balances  map[stockKey]decimal.Decimal
	movements []domain.StockMovement
}

var _ portsrepo.InventoryRepositoryWithTx = (*fakeLedgerStore)(nil)

func newFakeLedgerStore() *fakeLedgerStore {
	return &fakeLedgerStore{balances: make(map[stockKey]decimal.Decimal)}
}

func (f *fakeLedgerStore) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (f *fakeLedgerStore) Commit(ctx context.Context, tx pgx.Tx) error { return nil }
func (f *fakeLedgerStore) Rollback(ctx context.Context, tx pgx.Tx) error { return nil }

func (f *fakeLedgerStore) GetStockQuantity(ctx context.Context, productID, warehouseID string) (decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.balances[stockKey{productID, warehouseID}], nil
}

func (f *fakeLedgerStore) ListStockLevels(ctx context.Context, warehouseID string) ([]domain.StockLevel, error) {
	return nil, nil
}

func (f *fakeLedgerStore) ListMovements(ctx context.Context, filter portsrepo.MovementFilter) ([]domain.StockMovement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.StockMovement, len(f.movements))
	copy(out, f.movements)
	return out, nil
}

func (f *fakeLedgerStore) GetQuantitiesForUpdate(ctx context.Context, tx pgx.Tx, warehouseID string, productIDs []string) (map[string]decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	snapshot := make(map[string]decimal.Decimal, len(productIDs))
	for _, productID := range productIDs {
		snapshot[productID] = f.balances[stockKey{productID, warehouseID}]
	}
	return snapshot, nil
}

func (f *fakeLedgerStore) ApplyStockDelta(ctx context.Context, tx pgx.Tx, productID, warehouseID string, delta decimal.Decimal, meta portsrepo.StockDeltaMeta) (decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := stockKey{productID, warehouseID}
	balance := f.balances[key]
	next := balance.Add(delta)
	if meta.ForbidNegative && next.IsNegative() {
		return decimal.Decimal{}, &apperrors.InsufficientStockError{
			ProductID:   productID,
			WarehouseID: warehouseID,
			Available:   balance,
			Requested:   delta.Neg(),
		}
	}
	f.movements = append(f.movements, domain.StockMovement{
		MovementID:     uuid.NewString(),
		ProductID:      productID,
		WarehouseID:    warehouseID,
		Type:           meta.Type,
		Quantity:       delta,
		RunningBalance: next,
		ReferenceType:  meta.ReferenceType,
		ReferenceID:    meta.ReferenceID,
		Reason:         meta.Reason,
		OccurredAt:     meta.OccurredAt,
		CreatedBy:      meta.CreatedBy,
	})
	f.balances[key] = next
	return next, nil
}

func (f *fakeLedgerStore) InsertMovement(ctx context.Context, tx pgx.Tx, movement domain.StockMovement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.movements = append(f.movements, movement)
	return nil
}

func (f *fakeLedgerStore) SetQuantity(ctx context.Context, tx pgx.Tx, productID, warehouseID string, quantity decimal.Decimal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.balances[stockKey{productID, warehouseID}] = quantity
	return nil
}

type fakeAdjustmentStore struct {
	catalog *fakeCatalogStore
	docs    map[string]*domain.Adjustment
	seq     int
}

var _ portsrepo.AdjustmentRepositoryWithTx = (*fakeAdjustmentStore)(nil)

func newFakeAdjustmentStore(catalog *fakeCatalogStore) *fakeAdjustmentStore {
	return &fakeAdjustmentStore{catalog: catalog, docs: make(map[string]*domain.Adjustment)}
}

func (f *fakeAdjustmentStore) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (f *fakeAdjustmentStore) Commit(ctx context.Context, tx pgx.Tx) error { return nil }
func (f *fakeAdjustmentStore) Rollback(ctx context.Context, tx pgx.Tx) error { return nil }

func (f *fakeAdjustmentStore) FindAdjustmentByID(ctx context.Context, adjustmentID string) (*domain.Adjustment, error) {
	stored, found := f.docs[adjustmentID]
	if !found {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("adjustment %s not found", adjustmentID))
	}
	doc := *stored
	doc.Items = make([]domain.AdjustmentItem, len(stored.Items))
	copy(doc.Items, stored.Items)
	for i := range doc.Items {
		if product, ok := f.catalog.products[doc.Items[i].ProductID]; ok {
			doc.Items[i].ProductName = product.Name
			doc.Items[i].BaseUOM = product.BaseUOM
		}
	}
	return &doc, nil
}

func (f *fakeAdjustmentStore) ListAdjustments(ctx context.Context, filter portsrepo.AdjustmentFilter) ([]domain.Adjustment, error) {
	return nil, nil
}

func (f *fakeAdjustmentStore) CountReversalsOf(ctx context.Context, adjustmentNumber string) (int, error) {
	count := 0
	for _, doc := range f.docs {
		if doc.ReferenceNumber == adjustmentNumber && doc.Status == domain.StatusPosted {
			count++
		}
	}
	return count, nil
}

func (f *fakeAdjustmentStore) CreateAdjustment(ctx context.Context, tx pgx.Tx, adjustment domain.Adjustment) error {
	stored := adjustment
	stored.Items = make([]domain.AdjustmentItem, len(adjustment.Items))
	copy(stored.Items, adjustment.Items)
	f.docs[adjustment.AdjustmentID] = &stored
	return nil
}

func (f *fakeAdjustmentStore) NextAdjustmentNumber(ctx context.Context, tx pgx.Tx, day time.Time) (string, error) {
	f.seq++
	return fmt.Sprintf("ADJ-%s-%04d", day.Format("20060102"), f.seq), nil
}

func (f *fakeAdjustmentStore) UpdateDraftAdjustment(ctx context.Context, tx pgx.Tx, adjustment domain.Adjustment) error {
	stored, found := f.docs[adjustment.AdjustmentID]
	if !found || stored.Status != domain.StatusDraft {
		return fmt.Errorf("%w: adjustment %s is not a draft", apperrors.ErrConflict, adjustment.AdjustmentID)
	}
	return f.CreateAdjustment(ctx, tx, adjustment)
}

func (f *fakeAdjustmentStore) FindAdjustmentForUpdate(ctx context.Context, tx pgx.Tx, adjustmentID string) (*domain.Adjustment, error) {
	return f.FindAdjustmentByID(ctx, adjustmentID)
}

func (f *fakeAdjustmentStore) CaptureItemQuantities(ctx context.Context, tx pgx.Tx, items []domain.AdjustmentItem) error {
	for _, item := range items {
		stored, found := f.docs[item.AdjustmentID]
		if !found {
			continue
		}
		for i := range stored.Items {
			if stored.Items[i].ItemID == item.ItemID {
				stored.Items[i].SystemQuantity = item.SystemQuantity
				stored.Items[i].ActualQuantity = item.ActualQuantity
			}
		}
	}
	return nil
}

func (f *fakeAdjustmentStore) MarkAdjustmentPosted(ctx context.Context, tx pgx.Tx, adjustmentID, postedBy string, postedAt time.Time) error {
	stored, found := f.docs[adjustmentID]
	if !found || stored.Status != domain.StatusDraft {
		return fmt.Errorf("%w: adjustment %s is not a draft", apperrors.ErrConflict, adjustmentID)
	}
	stored.Status = domain.StatusPosted
	stored.PostedBy = postedBy
	stored.LastUpdatedAt = postedAt
	return nil
}

func (f *fakeAdjustmentStore) DeleteAdjustment(ctx context.Context, adjustmentID string) error {
	stored, found := f.docs[adjustmentID]
	if !found || stored.Status != domain.StatusDraft {
		return fmt.Errorf("%w: adjustment %s is not a draft", apperrors.ErrConflict, adjustmentID)
	}
	delete(f.docs, adjustmentID)
	return nil
}

type fakeTransferStore struct {
	catalog *fakeCatalogStore
	docs    map[string]*domain.Transfer
	seq     int
}

var _ portsrepo.TransferRepositoryWithTx = (*fakeTransferStore)(nil)

func newFakeTransferStore(catalog *fakeCatalogStore) *fakeTransferStore {
	return &fakeTransferStore{catalog: catalog, docs: make(map[string]*domain.Transfer)}
}

func (f *fakeTransferStore) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (f *fakeTransferStore) Commit(ctx context.Context, tx pgx.Tx) error { return nil }
func (f *fakeTransferStore) Rollback(ctx context.Context, tx pgx.Tx) error { return nil }

func (f *fakeTransferStore) FindTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error) {
	stored, found := f.docs[transferID]
	if !found {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("transfer %s not found", transferID))
	}
	doc := *stored
	doc.Items = make([]domain.TransferItem, len(stored.Items))
	copy(doc.Items, stored.Items)
	for i := range doc.Items {
		if product, ok := f.catalog.products[doc.Items[i].ProductID]; ok {
			doc.Items[i].ProductName = product.Name
			doc.Items[i].BaseUOM = product.BaseUOM
		}
	}
	return &doc, nil
}

func (f *fakeTransferStore) ListTransfers(ctx context.Context, filter portsrepo.TransferFilter) ([]domain.Transfer, error) {
	return nil, nil
}

func (f *fakeTransferStore) CreateTransfer(ctx context.Context, tx pgx.Tx, transfer domain.Transfer) error {
	stored := transfer
	stored.Items = make([]domain.TransferItem, len(transfer.Items))
	copy(stored.Items, transfer.Items)
	f.docs[transfer.TransferID] = &stored
	return nil
}

func (f *fakeTransferStore) NextTransferNumber(ctx context.Context, tx pgx.Tx, day time.Time) (string, error) {
	f.seq++
	return fmt.Sprintf("TRF-%s-%04d", day.Format("20060102"), f.seq), nil
}

func (f *fakeTransferStore) UpdateDraftTransfer(ctx context.Context, tx pgx.Tx, transfer domain.Transfer) error {
	stored, found := f.docs[transfer.TransferID]
	if !found || stored.Status != domain.StatusDraft {
		return fmt.Errorf("%w: transfer %s is not a draft", apperrors.ErrConflict, transfer.TransferID)
	}
	return f.CreateTransfer(ctx, tx, transfer)
}

func (f *fakeTransferStore) FindTransferForUpdate(ctx context.Context, tx pgx.Tx, transferID string) (*domain.Transfer, error) {
	return f.FindTransferByID(ctx, transferID)
}

func (f *fakeTransferStore) MarkTransferPosted(ctx context.Context, tx pgx.Tx, transferID, postedBy string, postedAt time.Time) error {
	stored, found := f.docs[transferID]
	if !found || stored.Status != domain.StatusDraft {
		return fmt.Errorf("%w: transfer %s is not a draft", apperrors.ErrConflict, transferID)
	}
	stored.Status = domain.StatusPosted
	stored.PostedBy = postedBy
	stored.LastUpdatedAt = postedAt
	return nil
}

func (f *fakeTransferStore) DeleteTransfer(ctx context.Context, transferID string) error {
	stored, found := f.docs[transferID]
	if !found || stored.Status != domain.StatusDraft {
		return fmt.Errorf("%w: transfer %s is not a draft", apperrors.ErrConflict, transferID)
	}
	delete(f.docs, transferID)
	return nil
}

type fakeCatalogStore struct {
	products   map[string]domain.Product
	warehouses map[string]domain.Warehouse
}

var _ portsrepo.CatalogRepositoryFacade = (*fakeCatalogStore)(nil)

func (f *fakeCatalogStore) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	product, found := f.products[productID]
	if !found {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("product %s not found", productID))
	}
	return &product, nil
}

func (f *fakeCatalogStore) FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error) {
	out := make(map[string]domain.Product, len(productIDs))
	for _, productID := range productIDs {
		if product, found := f.products[productID]; found {
			out[productID] = product
		}
	}
	return out, nil
}

func (f *fakeCatalogStore) FindWarehouseByID(ctx context.Context, warehouseID string) (*domain.Warehouse, error) {
	warehouse, found := f.warehouses[warehouseID]
	if !found {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("warehouse %s not found", warehouseID))
	}
	return &warehouse, nil
}

type fakeAuditTrail struct {
	entries []domain.AuditLog
}

var _ portsrepo.AuditRecorder = (*fakeAuditTrail)(nil)

func (f *fakeAuditTrail) Record(ctx context.Context, tx pgx.Tx, log domain.AuditLog) error {
	f.entries = append(f.entries, log)
	return nil
}

func TestPostingSequenceKeepsBalancesConsistentWithMovements(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()

	mainWH := uuid.NewString()
	overflowWH := uuid.NewString()
	waterID := uuid.NewString()
	riceID := uuid.NewString()

	catalog := &fakeCatalogStore{
		products: map[string]domain.Product{
			waterID: {
				ProductID: waterID,
				Name:      "Bottled Water 500ml",
				BaseUOM:   "pcs",
				AlternateUOMs: []domain.AlternateUOM{
					{Name: "box", ConversionFactor: decimal.NewFromInt(12)},
				},
				IsActive: true,
			},
			riceID: {
				ProductID: riceID,
				Name:      "Rice 25kg",
				BaseUOM:   "sack",
				IsActive:  true,
			},
		},
		warehouses: map[string]domain.Warehouse{
			mainWH:     {WarehouseID: mainWH, Name: "Main Warehouse"},
			overflowWH: {WarehouseID: overflowWH, Name: "Overflow Warehouse"},
		},
	}
	ledger := newFakeLedgerStore()
	audit := &fakeAuditTrail{}
	adjustmentStore := newFakeAdjustmentStore(catalog)
	transferStore := newFakeTransferStore(catalog)

	adjustmentSvc := services.NewAdjustmentService(adjustmentStore, ledger, catalog, audit, false)
	transferSvc := services.NewTransferService(transferStore, ledger, catalog, audit)

	// Initial stock count: set water to 100 and receive 40 sacks of rice.
	first, err := adjustmentSvc.CreateAdjustment(ctx, dto.CreateAdjustmentRequest{
		WarehouseID: mainWH,
		Reason:      "Initial stock count",
		Items: []dto.AdjustmentItemRequest{
			{ProductID: waterID, Quantity: decimal.NewFromInt(100), UOM: "pcs", Type: "ABSOLUTE"},
			{ProductID: riceID, Quantity: decimal.NewFromInt(40), UOM: "sack", Type: "RELATIVE"},
		},
	}, userID)
	require.NoError(t, err)
	_, err = adjustmentSvc.PostAdjustment(ctx, first.AdjustmentID, userID)
	require.NoError(t, err)

	// Shrinkage: two boxes of water written off.
	shrinkage, err := adjustmentSvc.CreateAdjustment(ctx, dto.CreateAdjustmentRequest{
		WarehouseID: mainWH,
		Reason:      "Damaged stock write-off",
		Items: []dto.AdjustmentItemRequest{
			{ProductID: waterID, Quantity: decimal.NewFromInt(-2), UOM: "box", Type: "RELATIVE"},
		},
	}, userID)
	require.NoError(t, err)
	posted, err := adjustmentSvc.PostAdjustment(ctx, shrinkage.AdjustmentID, userID)
	require.NoError(t, err)

	// Move part of the stock to the overflow warehouse.
	transfer, err := transferSvc.CreateTransfer(ctx, dto.CreateTransferRequest{
		SourceWarehouseID:      mainWH,
		DestinationWarehouseID: overflowWH,
		Reason:                 "Rebalance locations",
		Items: []dto.TransferItemRequest{
			{ProductID: waterID, Quantity: decimal.NewFromInt(30), UOM: "pcs"},
			{ProductID: riceID, Quantity: decimal.NewFromInt(10), UOM: "sack"},
		},
	}, userID)
	require.NoError(t, err)
	_, err = transferSvc.PostTransfer(ctx, transfer.TransferID, userID)
	require.NoError(t, err)

	// The write-off turns out to be wrong; undo it through a reversal.
	reversal, err := adjustmentSvc.ReverseAdjustment(ctx, posted.AdjustmentID, userID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusPosted, reversal.Status)

	expected := map[stockKey]decimal.Decimal{
		{waterID, mainWH}:     decimal.NewFromInt(70), // 100 - 24 - 30 + 24
		{riceID, mainWH}:      decimal.NewFromInt(30), // 40 - 10
		{waterID, overflowWH}: decimal.NewFromInt(30),
		{riceID, overflowWH}:  decimal.NewFromInt(10),
	}
	for key, want := range expected {
		got, err := ledger.GetStockQuantity(ctx, key.productID, key.warehouseID)
		require.NoError(t, err)
		require.True(t, got.Equal(want), "balance for %s@%s: got %s want %s", key.productID, key.warehouseID, got, want)
	}

	// Every balance equals the sum of its movements, and each movement's
	// running balance continues the previous one.
	sums := make(map[stockKey]decimal.Decimal)
	for _, movement := range ledger.movements {
		key := stockKey{movement.ProductID, movement.WarehouseID}
		sum := sums[key].Add(movement.Quantity)
		require.True(t, movement.RunningBalance.Equal(sum),
			"movement %s running balance %s does not continue %s", movement.MovementID, movement.RunningBalance, sum)
		sums[key] = sum
	}
	for key, want := range expected {
		require.True(t, sums[key].Equal(want), "movement sum for %s@%s: got %s want %s", key.productID, key.warehouseID, sums[key], want)
	}

	// A second reversal of the same document is refused.
	_, err = adjustmentSvc.ReverseAdjustment(ctx, posted.AdjustmentID, userID)
	require.Error(t, err)
	require.ErrorIs(t, err, apperrors.ErrValidation)
}
