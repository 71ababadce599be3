package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/inventra/inventra_backend/internal/core/domain"
)

// AdjustmentItemRequest is one line of a create/update adjustment request.
// Quantity semantics depend on Type: the signed change for RELATIVE, the
// desired end-state for ABSOLUTE.
type AdjustmentItemRequest struct {
	ProductID string          `json:"productID" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UOM       string          `json:"uom" binding:"required"`
	Type      string          `json:"type" binding:"omitempty,oneof=RELATIVE ABSOLUTE"`
}

// CreateAdjustmentRequest creates a new DRAFT adjustment.
type CreateAdjustmentRequest struct {
	WarehouseID     string                  `json:"warehouseID" binding:"required"`
	Reason          string                  `json:"reason" binding:"required"`
	ReferenceNumber string                  `json:"referenceNumber"`
	AdjustmentDate  *time.Time              `json:"adjustmentDate"`
	Items           []AdjustmentItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateAdjustmentRequest updates a DRAFT adjustment. Nil fields are left
// unchanged; a non-nil Items slice replaces all existing items.
type UpdateAdjustmentRequest struct {
	Reason          *string                 `json:"reason"`
	ReferenceNumber *string                 `json:"referenceNumber"`
	AdjustmentDate  *time.Time              `json:"adjustmentDate"`
	Cancel          bool                    `json:"cancel"`
	Items           []AdjustmentItemRequest `json:"items" binding:"omitempty,min=1,dive"`
}

// ListAdjustmentsParams filters the adjustment listing.
type ListAdjustmentsParams struct {
	WarehouseID string     `form:"warehouseID"`
	Status      string     `form:"status" binding:"omitempty,oneof=DRAFT POSTED CANCELLED"`
	DateFrom    *time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo      *time.Time `form:"dateTo" time_format:"2006-01-02"`
	Search      string     `form:"search"`
}

// AdjustmentItemResponse mirrors a line item for API consumers.
type AdjustmentItemResponse struct {
	ItemID         string           `json:"itemID"`
	ProductID      string           `json:"productID"`
	ProductName    string           `json:"productName,omitempty"`
	Quantity       decimal.Decimal  `json:"quantity"`
	UOM            string           `json:"uom"`
	Type           string           `json:"type"`
	SystemQuantity *decimal.Decimal `json:"systemQuantity,omitempty"`
	ActualQuantity *decimal.Decimal `json:"actualQuantity,omitempty"`
}

// AdjustmentResponse mirrors an adjustment document for API consumers.
type AdjustmentResponse struct {
	AdjustmentID     string                   `json:"adjustmentID"`
	AdjustmentNumber string                   `json:"adjustmentNumber"`
	WarehouseID      string                   `json:"warehouseID"`
	WarehouseName    string                   `json:"warehouseName,omitempty"`
	Reason           string                   `json:"reason"`
	ReferenceNumber  string                   `json:"referenceNumber,omitempty"`
	AdjustmentDate   time.Time                `json:"adjustmentDate"`
	Status           string                   `json:"status"`
	PostedBy         string                   `json:"postedBy,omitempty"`
	Items            []AdjustmentItemResponse `json:"items,omitempty"`
	CreatedAt        time.Time                `json:"createdAt"`
	CreatedBy        string                   `json:"createdBy"`
}

// ToAdjustmentResponse converts a domain adjustment to its response DTO.
func ToAdjustmentResponse(a *domain.Adjustment) AdjustmentResponse {
	resp := AdjustmentResponse{
		AdjustmentID:     a.AdjustmentID,
		AdjustmentNumber: a.AdjustmentNumber,
		WarehouseID:      a.WarehouseID,
		WarehouseName:    a.WarehouseName,
		Reason:           a.Reason,
		ReferenceNumber:  a.ReferenceNumber,
		AdjustmentDate:   a.AdjustmentDate,
		Status:           string(a.Status),
		PostedBy:         a.PostedBy,
		CreatedAt:        a.CreatedAt,
		CreatedBy:        a.CreatedBy,
	}
	for _, item := range a.Items {
		resp.Items = append(resp.Items, AdjustmentItemResponse{
			ItemID:         item.ItemID,
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			Quantity:       item.Quantity,
			UOM:            item.UOM,
			Type:           string(item.Type),
			SystemQuantity: item.SystemQuantity,
			ActualQuantity: item.ActualQuantity,
		})
	}
	return resp
}

// ToAdjustmentResponses converts a slice of domain adjustments.
func ToAdjustmentResponses(adjustments []domain.Adjustment) []AdjustmentResponse {
	responses := make([]AdjustmentResponse, len(adjustments))
	for i := range adjustments {
		responses[i] = ToAdjustmentResponse(&adjustments[i])
	}
	return responses
}
