package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/inventra/inventra_backend/internal/core/domain"
)

// TransferItemRequest is one line of a create/update transfer request.
type TransferItemRequest struct {
	ProductID string          `json:"productID" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UOM       string          `json:"uom" binding:"required"`
}

// CreateTransferRequest creates a new DRAFT inventory transfer.
type CreateTransferRequest struct {
	SourceWarehouseID      string                `json:"sourceWarehouseID" binding:"required"`
	DestinationWarehouseID string                `json:"destinationWarehouseID" binding:"required"`
	Reason                 string                `json:"reason"`
	TransferDate           *time.Time            `json:"transferDate"`
	Items                  []TransferItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateTransferRequest updates a DRAFT transfer. Nil fields are left
// unchanged; a non-nil Items slice replaces all existing items.
type UpdateTransferRequest struct {
	SourceWarehouseID      *string               `json:"sourceWarehouseID"`
	DestinationWarehouseID *string               `json:"destinationWarehouseID"`
	Reason                 *string               `json:"reason"`
	TransferDate           *time.Time            `json:"transferDate"`
	Cancel                 bool                  `json:"cancel"`
	Items                  []TransferItemRequest `json:"items" binding:"omitempty,min=1,dive"`
}

// ListTransfersParams filters the transfer listing.
type ListTransfersParams struct {
	WarehouseID string     `form:"warehouseID"`
	Status      string     `form:"status" binding:"omitempty,oneof=DRAFT POSTED CANCELLED"`
	DateFrom    *time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo      *time.Time `form:"dateTo" time_format:"2006-01-02"`
	Search      string     `form:"search"`
}

// TransferItemResponse mirrors a transfer line item for API consumers.
type TransferItemResponse struct {
	ItemID      string          `json:"itemID"`
	ProductID   string          `json:"productID"`
	ProductName string          `json:"productName,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UOM         string          `json:"uom"`
}

// TransferResponse mirrors a transfer document for API consumers.
type TransferResponse struct {
	TransferID             string                 `json:"transferID"`
	TransferNumber         string                 `json:"transferNumber"`
	SourceWarehouseID      string                 `json:"sourceWarehouseID"`
	SourceWarehouseName    string                 `json:"sourceWarehouseName,omitempty"`
	DestinationWarehouseID string                 `json:"destinationWarehouseID"`
	DestWarehouseName      string                 `json:"destinationWarehouseName,omitempty"`
	Reason                 string                 `json:"reason,omitempty"`
	TransferDate           time.Time              `json:"transferDate"`
	Status                 string                 `json:"status"`
	PostedBy               string                 `json:"postedBy,omitempty"`
	Items                  []TransferItemResponse `json:"items,omitempty"`
	CreatedAt              time.Time              `json:"createdAt"`
	CreatedBy              string                 `json:"createdBy"`
}

// ToTransferResponse converts a domain transfer to its response DTO.
func ToTransferResponse(t *domain.Transfer) TransferResponse {
	resp := TransferResponse{
		TransferID:             t.TransferID,
		TransferNumber:         t.TransferNumber,
		SourceWarehouseID:      t.SourceWarehouseID,
		SourceWarehouseName:    t.SourceWarehouseName,
		DestinationWarehouseID: t.DestinationWarehouseID,
		DestWarehouseName:      t.DestWarehouseName,
		Reason:                 t.Reason,
		TransferDate:           t.TransferDate,
		Status:                 string(t.Status),
		PostedBy:               t.PostedBy,
		CreatedAt:              t.CreatedAt,
		CreatedBy:              t.CreatedBy,
	}
	for _, item := range t.Items {
		resp.Items = append(resp.Items, TransferItemResponse{
			ItemID:      item.ItemID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UOM:         item.UOM,
		})
	}
	return resp
}

// ToTransferResponses converts a slice of domain transfers.
func ToTransferResponses(transfers []domain.Transfer) []TransferResponse {
	responses := make([]TransferResponse, len(transfers))
	for i := range transfers {
		responses[i] = ToTransferResponse(&transfers[i])
	}
	return responses
}
