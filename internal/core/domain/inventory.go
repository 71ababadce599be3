package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType classifies a stock movement ledger entry.
type MovementType string

const (
	MovementIn          MovementType = "IN"
	MovementOut         MovementType = "OUT"
	MovementAdjustment  MovementType = "ADJUSTMENT"
	MovementTransferIn  MovementType = "TRANSFER_IN"
	MovementTransferOut MovementType = "TRANSFER_OUT"
)

// StockBalance is the durable running balance for one (product, warehouse)
// key. Quantity is always expressed in the product's base UOM.
type StockBalance struct {
	ProductID   string          `json:"productID"`
	WarehouseID string          `json:"warehouseID"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// StockMovement is an immutable inventory ledger entry. Quantity carries the
// signed effect of the movement; RunningBalance is the balance of the
// (product, warehouse) key immediately after it was applied. Entries are
// append-only and are never mutated or deleted.
type StockMovement struct {
	MovementID     string          `json:"movementID"`
	ProductID      string          `json:"productID"`
	WarehouseID    string          `json:"warehouseID"`
	Type           MovementType    `json:"type"`
	Quantity       decimal.Decimal `json:"quantity"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
	ReferenceType  string          `json:"referenceType"`
	ReferenceID    string          `json:"referenceID"`
	Reason         string          `json:"reason"`
	OccurredAt     time.Time       `json:"occurredAt"`
	CreatedBy      string          `json:"createdBy"`
}

// StockLevel is a read model joining a balance row with its catalog metadata,
// used for audit display.
type StockLevel struct {
	ProductID     string          `json:"productID"`
	ProductName   string          `json:"productName"`
	WarehouseID   string          `json:"warehouseID"`
	WarehouseName string          `json:"warehouseName"`
	Quantity      decimal.Decimal `json:"quantity"`
	BaseUOM       string          `json:"baseUOM"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}
