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

const adjustmentResource = "INVENTORY_ADJUSTMENT"

// adjustmentService provides inventory adjustment lifecycle and posting operations.
type adjustmentService struct {
	adjustmentRepo portsrepo.AdjustmentRepositoryWithTx
	inventoryRepo  portsrepo.InventoryRepositoryWithTx
	catalogRepo    portsrepo.CatalogRepositoryFacade
	auditRepo      portsrepo.AuditRecorder
	// allowNegativeStock lets adjustments drive a balance below zero.
	// Transfers never do, whatever this is set to.
	allowNegativeStock bool
}

// NewAdjustmentService creates a new AdjustmentService.
func NewAdjustmentService(
	adjustmentRepo portsrepo.AdjustmentRepositoryWithTx,
	inventoryRepo portsrepo.InventoryRepositoryWithTx,
	catalogRepo portsrepo.CatalogRepositoryFacade,
	auditRepo portsrepo.AuditRecorder,
	allowNegativeStock bool,
) portssvc.AdjustmentSvcFacade {
	return &adjustmentService{
		adjustmentRepo:     adjustmentRepo,
		inventoryRepo:      inventoryRepo,
		catalogRepo:        catalogRepo,
		auditRepo:          auditRepo,
		allowNegativeStock: allowNegativeStock,
	}
}

var _ portssvc.AdjustmentSvcFacade = (*adjustmentService)(nil)

// buildItems validates the requested line items against the catalog and
// converts them to domain items linked to adjustmentID.
func (s *adjustmentService) buildItems(ctx context.Context, adjustmentID string, reqItems []dto.AdjustmentItemRequest) ([]domain.AdjustmentItem, error) {
	productIDs := make([]string, 0, len(reqItems))
	for _, item := range reqItems {
		productIDs = append(productIDs, item.ProductID)
	}

	products, err := s.catalogRepo.FindProductsByIDs(ctx, uniqueStrings(productIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	items := make([]domain.AdjustmentItem, len(reqItems))
	for i, reqItem := range reqItems {
		product, found := products[reqItem.ProductID]
		if !found {
			return nil, fmt.Errorf("%w: product %s", apperrors.ErrNotFound, reqItem.ProductID)
		}
		if !product.HasUOM(reqItem.UOM) {
			return nil, fmt.Errorf("%w: UOM %q is not valid for product %s", apperrors.ErrValidation, reqItem.UOM, product.Name)
		}

		adjType := domain.AdjustmentType(reqItem.Type)
		if adjType == "" {
			adjType = domain.AdjustmentRelative
		}
		if adjType == domain.AdjustmentRelative && reqItem.Quantity.IsZero() {
			return nil, fmt.Errorf("%w: relative quantity must be non-zero for product %s", apperrors.ErrValidation, product.Name)
		}

		items[i] = domain.AdjustmentItem{
			ItemID:       uuid.NewString(),
			AdjustmentID: adjustmentID,
			ProductID:    reqItem.ProductID,
			Quantity:     reqItem.Quantity,
			UOM:          reqItem.UOM,
			Type:         adjType,
		}
	}
	return items, nil
}

// CreateAdjustment creates a new DRAFT adjustment with its items after validation.
func (s *adjustmentService) CreateAdjustment(ctx context.Context, req dto.CreateAdjustmentRequest, creatorUserID string) (*domain.Adjustment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.catalogRepo.FindWarehouseByID(ctx, req.WarehouseID); err != nil {
		return nil, fmt.Errorf("failed to find warehouse %s: %w", req.WarehouseID, err)
	}

	now := time.Now().UTC()
	adjustmentID := uuid.NewString()

	items, err := s.buildItems(ctx, adjustmentID, req.Items)
	if err != nil {
		return nil, err
	}

	adjustmentDate := now
	if req.AdjustmentDate != nil {
		adjustmentDate = *req.AdjustmentDate
	}

	adjustment := domain.Adjustment{
		AdjustmentID:    adjustmentID,
		WarehouseID:     req.WarehouseID,
		Reason:          req.Reason,
		ReferenceNumber: req.ReferenceNumber,
		AdjustmentDate:  adjustmentDate,
		Status:          domain.StatusDraft,
		Items:           items,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	err = runInTx(ctx, s.adjustmentRepo, func(tx pgx.Tx) error {
		number, err := s.adjustmentRepo.NextAdjustmentNumber(ctx, tx, now)
		if err != nil {
			return fmt.Errorf("failed to generate adjustment number: %w", err)
		}
		adjustment.AdjustmentNumber = number

		if err := s.adjustmentRepo.CreateAdjustment(ctx, tx, adjustment); err != nil {
			return fmt.Errorf("failed to save adjustment: %w", err)
		}
		return s.recordAudit(ctx, tx, creatorUserID, domain.AuditCreate, adjustment.AdjustmentID, map[string]any{
			"adjustmentNumber": adjustment.AdjustmentNumber,
		})
	})
	if err != nil {
		logger.Error("Failed to create adjustment", "error", err.Error())
		return nil, err
	}

	logger.Info("Adjustment created", "adjustment_id", adjustment.AdjustmentID, "adjustment_number", adjustment.AdjustmentNumber)
	return s.adjustmentRepo.FindAdjustmentByID(ctx, adjustment.AdjustmentID)
}

// GetAdjustmentByID retrieves a specific adjustment with its items.
func (s *adjustmentService) GetAdjustmentByID(ctx context.Context, adjustmentID string) (*domain.Adjustment, error) {
	adjustment, err := s.adjustmentRepo.FindAdjustmentByID(ctx, adjustmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find adjustment %s: %w", adjustmentID, err)
	}
	return adjustment, nil
}

// ListAdjustments retrieves adjustment headers matching the filter params.
func (s *adjustmentService) ListAdjustments(ctx context.Context, params dto.ListAdjustmentsParams) ([]domain.Adjustment, error) {
	filter := portsrepo.AdjustmentFilter{
		WarehouseID: params.WarehouseID,
		Status:      domain.DocumentStatus(params.Status),
		DateFrom:    params.DateFrom,
		DateTo:      params.DateTo,
		Search:      params.Search,
	}
	adjustments, err := s.adjustmentRepo.ListAdjustments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list adjustments: %w", err)
	}
	return adjustments, nil
}

// UpdateAdjustment updates a DRAFT adjustment's header fields and items, or
// cancels the draft. Posted documents are immutable.
func (s *adjustmentService) UpdateAdjustment(ctx context.Context, adjustmentID string, req dto.UpdateAdjustmentRequest, requestingUserID string) (*domain.Adjustment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	adjustment, err := s.adjustmentRepo.FindAdjustmentByID(ctx, adjustmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find adjustment %s: %w", adjustmentID, err)
	}
	if adjustment.Status != domain.StatusDraft {
		return nil, fmt.Errorf("%w: only draft adjustments can be updated, current status is %s", apperrors.ErrValidation, adjustment.Status)
	}

	now := time.Now().UTC()
	action := domain.AuditUpdate

	if req.Cancel {
		adjustment.Status = domain.StatusCancelled
		action = domain.AuditCancel
	} else {
		if req.Reason != nil {
			adjustment.Reason = *req.Reason
		}
		if req.ReferenceNumber != nil {
			adjustment.ReferenceNumber = *req.ReferenceNumber
		}
		if req.AdjustmentDate != nil {
			adjustment.AdjustmentDate = *req.AdjustmentDate
		}
		if req.Items != nil {
			items, err := s.buildItems(ctx, adjustmentID, req.Items)
			if err != nil {
				return nil, err
			}
			adjustment.Items = items
		}
	}
	adjustment.LastUpdatedAt = now
	adjustment.LastUpdatedBy = requestingUserID

	err = runInTx(ctx, s.adjustmentRepo, func(tx pgx.Tx) error {
		if err := s.adjustmentRepo.UpdateDraftAdjustment(ctx, tx, *adjustment); err != nil {
			return fmt.Errorf("failed to update adjustment: %w", err)
		}
		return s.recordAudit(ctx, tx, requestingUserID, action, adjustmentID, map[string]any{
			"adjustmentNumber": adjustment.AdjustmentNumber,
		})
	})
	if err != nil {
		logger.Error("Failed to update adjustment", "adjustment_id", adjustmentID, "error", err.Error())
		return nil, err
	}

	return s.adjustmentRepo.FindAdjustmentByID(ctx, adjustmentID)
}

// PostAdjustment applies a DRAFT adjustment to stock. One transaction covers
// the balance snapshot, every movement write and the status flip; any line
// failure rolls back the whole document.
func (s *adjustmentService) PostAdjustment(ctx context.Context, adjustmentID string, postingUserID string) (*domain.Adjustment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	err := runInTx(ctx, s.adjustmentRepo, func(tx pgx.Tx) error {
		adjustment, err := s.adjustmentRepo.FindAdjustmentForUpdate(ctx, tx, adjustmentID)
		if err != nil {
			return fmt.Errorf("failed to find adjustment %s: %w", adjustmentID, err)
		}
		if adjustment.Status != domain.StatusDraft {
			return fmt.Errorf("%w: only draft adjustments can be posted, current status is %s", apperrors.ErrValidation, adjustment.Status)
		}
		return s.postLocked(ctx, tx, adjustment, postingUserID, now)
	})
	if err != nil {
		logger.Error("Failed to post adjustment", "adjustment_id", adjustmentID, "error", err.Error())
		return nil, err
	}

	logger.Info("Adjustment posted", "adjustment_id", adjustmentID)
	return s.adjustmentRepo.FindAdjustmentByID(ctx, adjustmentID)
}

// postLocked applies an in-transaction DRAFT adjustment to stock. The caller
// holds the document lock and owns the transaction.
func (s *adjustmentService) postLocked(ctx context.Context, tx pgx.Tx, adjustment *domain.Adjustment, postingUserID string, now time.Time) error {
	productIDs := make([]string, 0, len(adjustment.Items))
	for _, item := range adjustment.Items {
		productIDs = append(productIDs, item.ProductID)
	}
	productIDs = uniqueStrings(productIDs)

	products, err := s.catalogRepo.FindProductsByIDs(ctx, productIDs)
	if err != nil {
		return fmt.Errorf("failed to fetch products: %w", err)
	}

	// Single batched read, locking every balance row for the transaction.
	snapshot, err := s.inventoryRepo.GetQuantitiesForUpdate(ctx, tx, adjustment.WarehouseID, productIDs)
	if err != nil {
		return fmt.Errorf("failed to snapshot stock balances: %w", err)
	}

	for i := range adjustment.Items {
		item := &adjustment.Items[i]

		product, found := products[item.ProductID]
		if !found {
			return fmt.Errorf("%w: product %s", apperrors.ErrNotFound, item.ProductID)
		}
		factor, ok := product.ConversionFactorFor(item.UOM)
		if !ok {
			return fmt.Errorf("%w: UOM %q is not valid for product %s", apperrors.ErrValidation, item.UOM, product.Name)
		}
		baseQuantity := item.Quantity.Mul(factor)

		system := snapshot[item.ProductID]
		delta, actual := item.Type.Apply(system, baseQuantity)

		if !s.allowNegativeStock && actual.IsNegative() {
			return &apperrors.InsufficientStockError{
				ProductID:   item.ProductID,
				WarehouseID: adjustment.WarehouseID,
				Available:   system,
				Requested:   delta.Neg(),
			}
		}

		movement := domain.StockMovement{
			MovementID:     uuid.NewString(),
			ProductID:      item.ProductID,
			WarehouseID:    adjustment.WarehouseID,
			Type:           domain.MovementAdjustment,
			Quantity:       delta,
			RunningBalance: actual,
			ReferenceType:  adjustmentResource,
			ReferenceID:    adjustment.AdjustmentNumber,
			Reason:         adjustment.Reason,
			OccurredAt:     now,
			CreatedBy:      postingUserID,
		}
		if err := s.inventoryRepo.InsertMovement(ctx, tx, movement); err != nil {
			return fmt.Errorf("failed to write stock movement: %w", err)
		}
		if err := s.inventoryRepo.SetQuantity(ctx, tx, item.ProductID, adjustment.WarehouseID, actual); err != nil {
			return fmt.Errorf("failed to update stock balance: %w", err)
		}
		// Later lines of the same product see this line's effect.
		snapshot[item.ProductID] = actual

		systemCopy, actualCopy := system, actual
		item.SystemQuantity = &systemCopy
		item.ActualQuantity = &actualCopy
	}

	if err := s.adjustmentRepo.CaptureItemQuantities(ctx, tx, adjustment.Items); err != nil {
		return fmt.Errorf("failed to capture item quantities: %w", err)
	}
	if err := s.adjustmentRepo.MarkAdjustmentPosted(ctx, tx, adjustment.AdjustmentID, postingUserID, now); err != nil {
		return fmt.Errorf("failed to mark adjustment posted: %w", err)
	}

	adjustment.Status = domain.StatusPosted
	adjustment.PostedBy = postingUserID

	return s.recordAudit(ctx, tx, postingUserID, domain.AuditPost, adjustment.AdjustmentID, map[string]any{
		"adjustmentNumber": adjustment.AdjustmentNumber,
	})
}

// CopyAdjustment creates a fresh DRAFT from an existing document of any
// status. Captured quantities and the document number are reset.
func (s *adjustmentService) CopyAdjustment(ctx context.Context, adjustmentID string, requestingUserID string) (*domain.Adjustment, error) {
	original, err := s.adjustmentRepo.FindAdjustmentByID(ctx, adjustmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find adjustment %s: %w", adjustmentID, err)
	}

	req := dto.CreateAdjustmentRequest{
		WarehouseID:     original.WarehouseID,
		Reason:          fmt.Sprintf("Copy of %s: %s", original.AdjustmentNumber, original.Reason),
		ReferenceNumber: original.ReferenceNumber,
		Items:           make([]dto.AdjustmentItemRequest, len(original.Items)),
	}
	for i, item := range original.Items {
		req.Items[i] = dto.AdjustmentItemRequest{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UOM:       item.UOM,
			Type:      string(item.Type),
		}
	}

	return s.CreateAdjustment(ctx, req, requestingUserID)
}

// ReverseAdjustment creates and posts a sibling document negating a POSTED
// adjustment's effective deltas. Every reversal line is RELATIVE: an ABSOLUTE
// original contributes system minus actual, in base units, since only the net
// change can be undone. The original document is never modified.
func (s *adjustmentService) ReverseAdjustment(ctx context.Context, adjustmentID string, requestingUserID string) (*domain.Adjustment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.adjustmentRepo.FindAdjustmentByID(ctx, adjustmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find adjustment %s: %w", adjustmentID, err)
	}
	if original.Status != domain.StatusPosted {
		return nil, fmt.Errorf("%w: only posted adjustments can be reversed, current status is %s", apperrors.ErrValidation, original.Status)
	}

	// Reversal state is derived from the ledger, so an existing posted
	// reversal referencing this number blocks a second one.
	reversals, err := s.adjustmentRepo.CountReversalsOf(ctx, original.AdjustmentNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to check reversals of %s: %w", original.AdjustmentNumber, err)
	}
	if reversals > 0 {
		return nil, fmt.Errorf("%w: adjustment %s has already been reversed", apperrors.ErrValidation, original.AdjustmentNumber)
	}

	now := time.Now().UTC()
	reversalID := uuid.NewString()

	items := make([]domain.AdjustmentItem, len(original.Items))
	for i, item := range original.Items {
		var quantity decimal.Decimal
		uom := item.UOM
		if item.Type == domain.AdjustmentRelative {
			quantity = item.Quantity.Neg()
		} else {
			if item.SystemQuantity == nil || item.ActualQuantity == nil {
				return nil, fmt.Errorf("%w: posted adjustment %s is missing captured quantities", apperrors.ErrInternal, original.AdjustmentNumber)
			}
			quantity = item.SystemQuantity.Sub(*item.ActualQuantity)
			uom = item.BaseUOM
		}
		items[i] = domain.AdjustmentItem{
			ItemID:       uuid.NewString(),
			AdjustmentID: reversalID,
			ProductID:    item.ProductID,
			Quantity:     quantity,
			UOM:          uom,
			Type:         domain.AdjustmentRelative,
		}
	}

	reversal := domain.Adjustment{
		AdjustmentID:    reversalID,
		WarehouseID:     original.WarehouseID,
		Reason:          fmt.Sprintf("Reversal of %s", original.AdjustmentNumber),
		ReferenceNumber: original.AdjustmentNumber,
		AdjustmentDate:  now,
		Status:          domain.StatusDraft,
		Items:           items,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	// Creation and posting of the reversal share one transaction, so the
	// ledger never holds a reversal document without its entries.
	err = runInTx(ctx, s.adjustmentRepo, func(tx pgx.Tx) error {
		number, err := s.adjustmentRepo.NextAdjustmentNumber(ctx, tx, now)
		if err != nil {
			return fmt.Errorf("failed to generate adjustment number: %w", err)
		}
		reversal.AdjustmentNumber = number

		if err := s.adjustmentRepo.CreateAdjustment(ctx, tx, reversal); err != nil {
			return fmt.Errorf("failed to save reversal adjustment: %w", err)
		}
		if err := s.recordAudit(ctx, tx, requestingUserID, domain.AuditCreate, reversalID, map[string]any{
			"adjustmentNumber": reversal.AdjustmentNumber,
			"reverses":         original.AdjustmentNumber,
		}); err != nil {
			return err
		}
		return s.postLocked(ctx, tx, &reversal, requestingUserID, now)
	})
	if err != nil {
		logger.Error("Failed to reverse adjustment", "adjustment_id", adjustmentID, "error", err.Error())
		return nil, err
	}

	logger.Info("Adjustment reversed", "adjustment_id", adjustmentID, "reversal_id", reversalID)
	return s.adjustmentRepo.FindAdjustmentByID(ctx, reversalID)
}

// DeleteAdjustment removes a DRAFT adjustment and its items.
func (s *adjustmentService) DeleteAdjustment(ctx context.Context, adjustmentID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	adjustment, err := s.adjustmentRepo.FindAdjustmentByID(ctx, adjustmentID)
	if err != nil {
		return fmt.Errorf("failed to find adjustment %s: %w", adjustmentID, err)
	}
	if adjustment.Status != domain.StatusDraft {
		return fmt.Errorf("%w: only draft adjustments can be deleted, current status is %s", apperrors.ErrValidation, adjustment.Status)
	}

	if err := s.adjustmentRepo.DeleteAdjustment(ctx, adjustmentID); err != nil {
		return fmt.Errorf("failed to delete adjustment: %w", err)
	}
	if err := s.recordAudit(ctx, nil, requestingUserID, domain.AuditDelete, adjustmentID, map[string]any{
		"adjustmentNumber": adjustment.AdjustmentNumber,
	}); err != nil {
		logger.Warn("Failed to record delete audit", "adjustment_id", adjustmentID, "error", err.Error())
	}

	logger.Info("Adjustment deleted", "adjustment_id", adjustmentID)
	return nil
}

func (s *adjustmentService) recordAudit(ctx context.Context, tx pgx.Tx, userID string, action domain.AuditAction, resourceID string, details map[string]any) error {
	return s.auditRepo.Record(ctx, tx, domain.AuditLog{
		AuditID:      uuid.NewString(),
		UserID:       userID,
		Action:       action,
		ResourceType: adjustmentResource,
		ResourceID:   resourceID,
		Details:      details,
		CreatedAt:    time.Now().UTC(),
	})
}
