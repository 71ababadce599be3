package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferItem is one line of an inventory transfer. Quantity is a positive
// magnitude; the OUT/IN sides get their sign at posting time.
type TransferItem struct {
	ItemID      string          `json:"itemID"`
	TransferID  string          `json:"transferID"`
	ProductID   string          `json:"productID"`
	Quantity    decimal.Decimal `json:"quantity"`
	UOM         string          `json:"uom"`
	ProductName string          `json:"productName,omitempty"`
	BaseUOM     string          `json:"baseUOM,omitempty"`
}

// Transfer is a two-sided stock movement document between warehouses. Both
// sides post in the same transaction or not at all; transfers never allow the
// source balance to go negative.
type Transfer struct {
	TransferID             string         `json:"transferID"`
	TransferNumber         string         `json:"transferNumber"`
	SourceWarehouseID      string         `json:"sourceWarehouseID"`
	DestinationWarehouseID string         `json:"destinationWarehouseID"`
	Reason                 string         `json:"reason"`
	TransferDate           time.Time      `json:"transferDate"`
	Status                 DocumentStatus `json:"status"`
	PostedBy               string         `json:"postedBy,omitempty"`
	Items                  []TransferItem `json:"items,omitempty"`
	SourceWarehouseName    string         `json:"sourceWarehouseName,omitempty"`
	DestWarehouseName      string         `json:"destinationWarehouseName,omitempty"`
	AuditFields
}
