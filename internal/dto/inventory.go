package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/inventra/inventra_backend/internal/core/domain"
)

// ListStockLevelsParams filters the stock level read model.
type ListStockLevelsParams struct {
	WarehouseID string `form:"warehouseID"`
	ProductID   string `form:"productID"`
	Search      string `form:"search"`
}

// ListMovementsParams filters the stock movement ledger.
type ListMovementsParams struct {
	ProductID   string     `form:"productID"`
	WarehouseID string     `form:"warehouseID"`
	Type        string     `form:"type"`
	DateFrom    *time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo      *time.Time `form:"dateTo" time_format:"2006-01-02"`
	Limit       int        `form:"limit"`
}

// StockLevelResponse is one product/warehouse balance row.
type StockLevelResponse struct {
	ProductID     string          `json:"productID"`
	ProductName   string          `json:"productName"`
	WarehouseID   string          `json:"warehouseID"`
	WarehouseName string          `json:"warehouseName"`
	Quantity      decimal.Decimal `json:"quantity"`
	BaseUOM       string          `json:"baseUOM"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ToStockLevelResponses converts stock level rows.
func ToStockLevelResponses(levels []domain.StockLevel) []StockLevelResponse {
	responses := make([]StockLevelResponse, len(levels))
	for i, l := range levels {
		responses[i] = StockLevelResponse{
			ProductID:     l.ProductID,
			ProductName:   l.ProductName,
			WarehouseID:   l.WarehouseID,
			WarehouseName: l.WarehouseName,
			Quantity:      l.Quantity,
			BaseUOM:       l.BaseUOM,
			UpdatedAt:     l.UpdatedAt,
		}
	}
	return responses
}

// StockMovementResponse is one immutable stock ledger entry.
type StockMovementResponse struct {
	MovementID     string          `json:"movementID"`
	ProductID      string          `json:"productID"`
	WarehouseID    string          `json:"warehouseID"`
	Type           string          `json:"type"`
	Quantity       decimal.Decimal `json:"quantity"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
	ReferenceType  string          `json:"referenceType,omitempty"`
	ReferenceID    string          `json:"referenceID,omitempty"`
	Reason         string          `json:"reason,omitempty"`
	OccurredAt     time.Time       `json:"occurredAt"`
}

// ToStockMovementResponses converts stock ledger entries.
func ToStockMovementResponses(movements []domain.StockMovement) []StockMovementResponse {
	responses := make([]StockMovementResponse, len(movements))
	for i, m := range movements {
		responses[i] = StockMovementResponse{
			MovementID:     m.MovementID,
			ProductID:      m.ProductID,
			WarehouseID:    m.WarehouseID,
			Type:           string(m.Type),
			Quantity:       m.Quantity,
			RunningBalance: m.RunningBalance,
			ReferenceType:  m.ReferenceType,
			ReferenceID:    m.ReferenceID,
			Reason:         m.Reason,
			OccurredAt:     m.OccurredAt,
		}
	}
	return responses
}
