package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/inventra/inventra_backend/internal/apperrors"
	"github.com/inventra/inventra_backend/internal/core/domain"
	portsrepo "github.com/inventra/inventra_backend/internal/core/ports/repositories"
	portssvc "github.com/inventra/inventra_backend/internal/core/ports/services"
	"github.com/inventra/inventra_backend/internal/dto"
	"github.com/inventra/inventra_backend/internal/middleware"
)

const transferResource = "INVENTORY_TRANSFER"

// transferService provides inventory transfer lifecycle and posting operations.
type transferService struct {
	transferRepo  portsrepo.TransferRepositoryWithTx
	inventoryRepo portsrepo.InventoryRepositoryWithTx
	catalogRepo   portsrepo.CatalogRepositoryFacade
	auditRepo     portsrepo.AuditRecorder
}

// NewTransferService creates a new TransferService.
func NewTransferService(
	transferRepo portsrepo.TransferRepositoryWithTx,
	inventoryRepo portsrepo.InventoryRepositoryWithTx,
	catalogRepo portsrepo.CatalogRepositoryFacade,
	auditRepo portsrepo.AuditRecorder,
) portssvc.TransferSvcFacade {
	return &transferService{
		transferRepo:  transferRepo,
		inventoryRepo: inventoryRepo,
		catalogRepo:   catalogRepo,
		auditRepo:     auditRepo,
	}
}

var _ portssvc.TransferSvcFacade = (*transferService)(nil)

// validateWarehouses checks both warehouses exist and differ.
func (s *transferService) validateWarehouses(ctx context.Context, sourceID, destinationID string) error {
	if sourceID == destinationID {
		return fmt.Errorf("%w: source and destination warehouses must be different", apperrors.ErrValidation)
	}
	if _, err := s.catalogRepo.FindWarehouseByID(ctx, sourceID); err != nil {
		return fmt.Errorf("failed to find source warehouse %s: %w", sourceID, err)
	}
	if _, err := s.catalogRepo.FindWarehouseByID(ctx, destinationID); err != nil {
		return fmt.Errorf("failed to find destination warehouse %s: %w", destinationID, err)
	}
	return nil
}

// buildItems validates the requested line items against the catalog and
// converts them to domain items linked to transferID. Duplicate products and
// non-positive quantities are rejected before anything is written.
func (s *transferService) buildItems(ctx context.Context, transferID string, reqItems []dto.TransferItemRequest) ([]domain.TransferItem, error) {
	productIDs := make([]string, 0, len(reqItems))
	seen := make(map[string]struct{}, len(reqItems))
	for _, item := range reqItems {
		if _, dup := seen[item.ProductID]; dup {
			return nil, fmt.Errorf("%w: duplicate product %s in transfer items", apperrors.ErrValidation, item.ProductID)
		}
		seen[item.ProductID] = struct{}{}
		productIDs = append(productIDs, item.ProductID)
	}

	products, err := s.catalogRepo.FindProductsByIDs(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	items := make([]domain.TransferItem, len(reqItems))
	for i, reqItem := range reqItems {
		product, found := products[reqItem.ProductID]
		if !found {
			return nil, fmt.Errorf("%w: product %s", apperrors.ErrNotFound, reqItem.ProductID)
		}
		if !product.HasUOM(reqItem.UOM) {
			return nil, fmt.Errorf("%w: UOM %q is not valid for product %s", apperrors.ErrValidation, reqItem.UOM, product.Name)
		}
		if !reqItem.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: transfer quantity must be positive for product %s", apperrors.ErrValidation, product.Name)
		}

		items[i] = domain.TransferItem{
			ItemID:     uuid.NewString(),
			TransferID: transferID,
			ProductID:  reqItem.ProductID,
			Quantity:   reqItem.Quantity,
			UOM:        reqItem.UOM,
		}
	}
	return items, nil
}

// CreateTransfer creates a new DRAFT transfer with its items after validation.
func (s *transferService) CreateTransfer(ctx context.Context, req dto.CreateTransferRequest, creatorUserID string) (*domain.Transfer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.validateWarehouses(ctx, req.SourceWarehouseID, req.DestinationWarehouseID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	transferID := uuid.NewString()

	items, err := s.buildItems(ctx, transferID, req.Items)
	if err != nil {
		return nil, err
	}

	transferDate := now
	if req.TransferDate != nil {
		transferDate = *req.TransferDate
	}

	transfer := domain.Transfer{
		TransferID:             transferID,
		SourceWarehouseID:      req.SourceWarehouseID,
		DestinationWarehouseID: req.DestinationWarehouseID,
		Reason:                 req.Reason,
		TransferDate:           transferDate,
		Status:                 domain.StatusDraft,
		Items:                  items,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	err = runInTx(ctx, s.transferRepo, func(tx pgx.Tx) error {
		number, err := s.transferRepo.NextTransferNumber(ctx, tx, now)
		if err != nil {
			return fmt.Errorf("failed to generate transfer number: %w", err)
		}
		transfer.TransferNumber = number

		if err := s.transferRepo.CreateTransfer(ctx, tx, transfer); err != nil {
			return fmt.Errorf("failed to save transfer: %w", err)
		}
		return s.recordAudit(ctx, tx, creatorUserID, domain.AuditCreate, transferID, map[string]any{
			"transferNumber": transfer.TransferNumber,
		})
	})
	if err != nil {
		logger.Error("Failed to create transfer", "error", err.Error())
		return nil, err
	}

	logger.Info("Transfer created", "transfer_id", transferID, "transfer_number", transfer.TransferNumber)
	return s.transferRepo.FindTransferByID(ctx, transferID)
}

// GetTransferByID retrieves a specific transfer with its items.
func (s *transferService) GetTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error) {
	transfer, err := s.transferRepo.FindTransferByID(ctx, transferID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transfer %s: %w", transferID, err)
	}
	return transfer, nil
}

// ListTransfers retrieves transfer headers matching the filter params.
func (s *transferService) ListTransfers(ctx context.Context, params dto.ListTransfersParams) ([]domain.Transfer, error) {
	filter := portsrepo.TransferFilter{
		WarehouseID: params.WarehouseID,
		Status:      domain.DocumentStatus(params.Status),
		DateFrom:    params.DateFrom,
		DateTo:      params.DateTo,
		Search:      params.Search,
	}
	transfers, err := s.transferRepo.ListTransfers(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list transfers: %w", err)
	}
	return transfers, nil
}

// UpdateTransfer updates a DRAFT transfer's header fields and items, or
// cancels the draft. Posted documents are immutable.
func (s *transferService) UpdateTransfer(ctx context.Context, transferID string, req dto.UpdateTransferRequest, requestingUserID string) (*domain.Transfer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	transfer, err := s.transferRepo.FindTransferByID(ctx, transferID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transfer %s: %w", transferID, err)
	}
	if transfer.Status != domain.StatusDraft {
		return nil, fmt.Errorf("%w: only draft transfers can be updated, current status is %s", apperrors.ErrValidation, transfer.Status)
	}

	now := time.Now().UTC()
	action := domain.AuditUpdate

	if req.Cancel {
		transfer.Status = domain.StatusCancelled
		action = domain.AuditCancel
	} else {
		if req.SourceWarehouseID != nil {
			transfer.SourceWarehouseID = *req.SourceWarehouseID
		}
		if req.DestinationWarehouseID != nil {
			transfer.DestinationWarehouseID = *req.DestinationWarehouseID
		}
		if err := s.validateWarehouses(ctx, transfer.SourceWarehouseID, transfer.DestinationWarehouseID); err != nil {
			return nil, err
		}
		if req.Reason != nil {
			transfer.Reason = *req.Reason
		}
		if req.TransferDate != nil {
			transfer.TransferDate = *req.TransferDate
		}
		if req.Items != nil {
			items, err := s.buildItems(ctx, transferID, req.Items)
			if err != nil {
				return nil, err
			}
			transfer.Items = items
		}
	}
	transfer.LastUpdatedAt = now
	transfer.LastUpdatedBy = requestingUserID

	err = runInTx(ctx, s.transferRepo, func(tx pgx.Tx) error {
		if err := s.transferRepo.UpdateDraftTransfer(ctx, tx, *transfer); err != nil {
			return fmt.Errorf("failed to update transfer: %w", err)
		}
		return s.recordAudit(ctx, tx, requestingUserID, action, transferID, map[string]any{
			"transferNumber": transfer.TransferNumber,
		})
	})
	if err != nil {
		logger.Error("Failed to update transfer", "transfer_id", transferID, "error", err.Error())
		return nil, err
	}

	return s.transferRepo.FindTransferByID(ctx, transferID)
}

// PostTransfer moves stock between the two warehouses. Both sides of every
// item post in one transaction; transfers never drive the source balance
// negative.
func (s *transferService) PostTransfer(ctx context.Context, transferID string, postingUserID string) (*domain.Transfer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	err := runInTx(ctx, s.transferRepo, func(tx pgx.Tx) error {
		transfer, err := s.transferRepo.FindTransferForUpdate(ctx, tx, transferID)
		if err != nil {
			return fmt.Errorf("failed to find transfer %s: %w", transferID, err)
		}
		if transfer.Status != domain.StatusDraft {
			return fmt.Errorf("%w: only draft transfers can be posted, current status is %s", apperrors.ErrValidation, transfer.Status)
		}
		return s.postLocked(ctx, tx, transfer, postingUserID, now)
	})
	if err != nil {
		logger.Error("Failed to post transfer", "transfer_id", transferID, "error", err.Error())
		return nil, err
	}

	logger.Info("Transfer posted", "transfer_id", transferID)
	return s.transferRepo.FindTransferByID(ctx, transferID)
}

// postLocked applies an in-transaction DRAFT transfer to stock. The caller
// holds the document lock and owns the transaction.
func (s *transferService) postLocked(ctx context.Context, tx pgx.Tx, transfer *domain.Transfer, postingUserID string, now time.Time) error {
	if transfer.SourceWarehouseID == transfer.DestinationWarehouseID {
		return fmt.Errorf("%w: source and destination warehouses must be different", apperrors.ErrValidation)
	}

	productIDs := make([]string, 0, len(transfer.Items))
	seen := make(map[string]struct{}, len(transfer.Items))
	for _, item := range transfer.Items {
		if _, dup := seen[item.ProductID]; dup {
			return fmt.Errorf("%w: duplicate product %s in transfer items", apperrors.ErrValidation, item.ProductID)
		}
		seen[item.ProductID] = struct{}{}
		productIDs = append(productIDs, item.ProductID)
	}

	products, err := s.catalogRepo.FindProductsByIDs(ctx, productIDs)
	if err != nil {
		return fmt.Errorf("failed to fetch products: %w", err)
	}

	// Validate every line before the first write so a bad line cannot leave
	// a partially applied document behind.
	baseQuantities := make([]decimal.Decimal, len(transfer.Items))
	for i, item := range transfer.Items {
		product, found := products[item.ProductID]
		if !found {
			return fmt.Errorf("%w: product %s", apperrors.ErrNotFound, item.ProductID)
		}
		factor, ok := product.ConversionFactorFor(item.UOM)
		if !ok {
			return fmt.Errorf("%w: UOM %q is not valid for product %s", apperrors.ErrValidation, item.UOM, product.Name)
		}
		if !item.Quantity.IsPositive() {
			return fmt.Errorf("%w: transfer quantity must be positive for product %s", apperrors.ErrValidation, product.Name)
		}
		baseQuantities[i] = item.Quantity.Mul(factor)
	}

	for i, item := range transfer.Items {
		outMeta := portsrepo.StockDeltaMeta{
			Type:           domain.MovementTransferOut,
			ReferenceType:  transferResource,
			ReferenceID:    transfer.TransferNumber,
			Reason:         transfer.Reason,
			OccurredAt:     now,
			CreatedBy:      postingUserID,
			ForbidNegative: true,
		}
		if _, err := s.inventoryRepo.ApplyStockDelta(ctx, tx, item.ProductID, transfer.SourceWarehouseID, baseQuantities[i].Neg(), outMeta); err != nil {
			return err
		}

		inMeta := outMeta
		inMeta.Type = domain.MovementTransferIn
		inMeta.ForbidNegative = false
		if _, err := s.inventoryRepo.ApplyStockDelta(ctx, tx, item.ProductID, transfer.DestinationWarehouseID, baseQuantities[i], inMeta); err != nil {
			return err
		}
	}

	if err := s.transferRepo.MarkTransferPosted(ctx, tx, transfer.TransferID, postingUserID, now); err != nil {
		return fmt.Errorf("failed to mark transfer posted: %w", err)
	}

	transfer.Status = domain.StatusPosted
	transfer.PostedBy = postingUserID

	return s.recordAudit(ctx, tx, postingUserID, domain.AuditPost, transfer.TransferID, map[string]any{
		"transferNumber": transfer.TransferNumber,
	})
}

// CopyTransfer creates a fresh DRAFT from an existing document of any status.
func (s *transferService) CopyTransfer(ctx context.Context, transferID string, requestingUserID string) (*domain.Transfer, error) {
	original, err := s.transferRepo.FindTransferByID(ctx, transferID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transfer %s: %w", transferID, err)
	}

	req := dto.CreateTransferRequest{
		SourceWarehouseID:      original.SourceWarehouseID,
		DestinationWarehouseID: original.DestinationWarehouseID,
		Reason:                 fmt.Sprintf("Copy of %s: %s", original.TransferNumber, original.Reason),
		Items:                  make([]dto.TransferItemRequest, len(original.Items)),
	}
	for i, item := range original.Items {
		req.Items[i] = dto.TransferItemRequest{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UOM:       item.UOM,
		}
	}

	return s.CreateTransfer(ctx, req, requestingUserID)
}

// ReverseTransfer creates and posts a sibling transfer with swapped
// warehouses, moving the stock back. Creation and posting share one
// transaction; the original document is never modified.
func (s *transferService) ReverseTransfer(ctx context.Context, transferID string, requestingUserID string) (*domain.Transfer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.transferRepo.FindTransferByID(ctx, transferID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transfer %s: %w", transferID, err)
	}
	if original.Status != domain.StatusPosted {
		return nil, fmt.Errorf("%w: only posted transfers can be reversed, current status is %s", apperrors.ErrValidation, original.Status)
	}

	now := time.Now().UTC()
	reversalID := uuid.NewString()

	items := make([]domain.TransferItem, len(original.Items))
	for i, item := range original.Items {
		items[i] = domain.TransferItem{
			ItemID:     uuid.NewString(),
			TransferID: reversalID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UOM:        item.UOM,
		}
	}

	reversal := domain.Transfer{
		TransferID:             reversalID,
		SourceWarehouseID:      original.DestinationWarehouseID,
		DestinationWarehouseID: original.SourceWarehouseID,
		Reason:                 fmt.Sprintf("Reversal of %s", original.TransferNumber),
		TransferDate:           now,
		Status:                 domain.StatusDraft,
		Items:                  items,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	err = runInTx(ctx, s.transferRepo, func(tx pgx.Tx) error {
		number, err := s.transferRepo.NextTransferNumber(ctx, tx, now)
		if err != nil {
			return fmt.Errorf("failed to generate transfer number: %w", err)
		}
		reversal.TransferNumber = number

		if err := s.transferRepo.CreateTransfer(ctx, tx, reversal); err != nil {
			return fmt.Errorf("failed to save reversal transfer: %w", err)
		}
		if err := s.recordAudit(ctx, tx, requestingUserID, domain.AuditCreate, reversalID, map[string]any{
			"transferNumber": reversal.TransferNumber,
			"reverses":       original.TransferNumber,
		}); err != nil {
			return err
		}
		return s.postLocked(ctx, tx, &reversal, requestingUserID, now)
	})
	if err != nil {
		logger.Error("Failed to reverse transfer", "transfer_id", transferID, "error", err.Error())
		return nil, err
	}

	logger.Info("Transfer reversed", "transfer_id", transferID, "reversal_id", reversalID)
	return s.transferRepo.FindTransferByID(ctx, reversalID)
}

// DeleteTransfer removes a DRAFT transfer and its items.
func (s *transferService) DeleteTransfer(ctx context.Context, transferID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	transfer, err := s.transferRepo.FindTransferByID(ctx, transferID)
	if err != nil {
		return fmt.Errorf("failed to find transfer %s: %w", transferID, err)
	}
	if transfer.Status != domain.StatusDraft {
		return fmt.Errorf("%w: only draft transfers can be deleted, current status is %s", apperrors.ErrValidation, transfer.Status)
	}

	if err := s.transferRepo.DeleteTransfer(ctx, transferID); err != nil {
		return fmt.Errorf("failed to delete transfer: %w", err)
	}
	if err := s.recordAudit(ctx, nil, requestingUserID, domain.AuditDelete, transferID, map[string]any{
		"transferNumber": transfer.TransferNumber,
	}); err != nil {
		logger.Warn("Failed to record delete audit", "transfer_id", transferID, "error", err.Error())
	}

	logger.Info("Transfer deleted", "transfer_id", transferID)
	return nil
}

func (s *transferService) recordAudit(ctx context.Context, tx pgx.Tx, userID string, action domain.AuditAction, resourceID string, details map[string]any) error {
	return s.auditRepo.Record(ctx, tx, domain.AuditLog{
		AuditID:      uuid.NewString(),
		UserID:       userID,
		Action:       action,
		ResourceType: transferResource,
		ResourceID:   resourceID,
		Details:      details,
		CreatedAt:    time.Now().UTC(),
	})
}
