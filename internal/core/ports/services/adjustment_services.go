package services

import (
	"context"

	"github.com/inventra/inventra_backend/internal/core/domain"
	"github.com/inventra/inventra_backend/internal/dto"
)

// AdjustmentReaderSvc defines read operations for adjustment documents
type AdjustmentReaderSvc interface {
	// GetAdjustmentByID retrieves a specific adjustment with its items.
	GetAdjustmentByID(ctx context.Context, adjustmentID string) (*domain.Adjustment, error)

	// ListAdjustments retrieves adjustment headers matching the filter params.
	ListAdjustments(ctx context.Context, params dto.ListAdjustmentsParams) ([]domain.Adjustment, error)
}

// AdjustmentWriterSvc defines write and lifecycle operations for adjustment documents
type AdjustmentWriterSvc interface {
	// CreateAdjustment persists a new DRAFT adjustment with its items.
	CreateAdjustment(ctx context.Context, req dto.CreateAdjustmentRequest, creatorUserID string) (*domain.Adjustment, error)

	// UpdateAdjustment updates a DRAFT adjustment; posted documents are immutable.
	UpdateAdjustment(ctx context.Context, adjustmentID string, req dto.UpdateAdjustmentRequest, requestingUserID string) (*domain.Adjustment, error)

	// PostAdjustment applies a DRAFT adjustment to stock, writing one movement
	// per item, atomically with the status flip.
	PostAdjustment(ctx context.Context, adjustmentID string, postingUserID string) (*domain.Adjustment, error)

	// CopyAdjustment creates a fresh DRAFT from an existing document of any status.
	CopyAdjustment(ctx context.Context, adjustmentID string, requestingUserID string) (*domain.Adjustment, error)

	// ReverseAdjustment creates and immediately posts a sibling document whose
	// deltas negate the POSTED original's effective deltas, in one transaction.
	ReverseAdjustment(ctx context.Context, adjustmentID string, requestingUserID string) (*domain.Adjustment, error)

	// DeleteAdjustment removes a DRAFT adjustment; posted documents cannot be deleted.
	DeleteAdjustment(ctx context.Context, adjustmentID string, requestingUserID string) error
}

// AdjustmentSvcFacade combines all adjustment-related service interfaces
type AdjustmentSvcFacade interface {
	AdjustmentReaderSvc
	AdjustmentWriterSvc
}
