package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustmentType discriminates how an adjustment line item's quantity is
// interpreted when posting.
type AdjustmentType string

const (
	// AdjustmentRelative means Quantity is the signed change to apply.
	AdjustmentRelative AdjustmentType = "RELATIVE"
	// AdjustmentAbsolute means Quantity is the desired end-state balance;
	// the delta is derived from the balance at posting time.
	AdjustmentAbsolute AdjustmentType = "ABSOLUTE"
)

// Apply computes the signed delta and resulting quantity for a line item of
// this type, given the system quantity captured at the start of the posting
// transaction. Dispatching on the tag here keeps the computation in one
// place, before any side effect.
func (t AdjustmentType) Apply(system, quantity decimal.Decimal) (delta, actual decimal.Decimal) {
	if t == AdjustmentAbsolute {
		return quantity.Sub(system), quantity
	}
	return quantity, system.Add(quantity)
}

// AdjustmentItem is one line of an inventory adjustment. SystemQuantity and
// ActualQuantity are captured at posting time and persisted for audit, so the
// document stays self-explanatory without replaying the movement ledger.
type AdjustmentItem struct {
	ItemID         string           `json:"itemID"`
	AdjustmentID   string           `json:"adjustmentID"`
	ProductID      string           `json:"productID"`
	Quantity       decimal.Decimal  `json:"quantity"`
	UOM            string           `json:"uom"`
	Type           AdjustmentType   `json:"type"`
	SystemQuantity *decimal.Decimal `json:"systemQuantity,omitempty"`
	ActualQuantity *decimal.Decimal `json:"actualQuantity,omitempty"`
	ProductName    string           `json:"productName,omitempty"`
	BaseUOM        string           `json:"baseUOM,omitempty"`
}

// Adjustment is an inventory adjustment document. It is created DRAFT, may be
// edited while DRAFT, and is posted exactly once; posting writes one stock
// movement per line item. A posted adjustment is immutable; reversal creates
// a sibling document referencing this one by number.
type Adjustment struct {
	AdjustmentID     string           `json:"adjustmentID"`
	AdjustmentNumber string           `json:"adjustmentNumber"`
	WarehouseID      string           `json:"warehouseID"`
	Reason           string           `json:"reason"`
	ReferenceNumber  string           `json:"referenceNumber,omitempty"`
	AdjustmentDate   time.Time        `json:"adjustmentDate"`
	Status           DocumentStatus   `json:"status"`
	PostedBy         string           `json:"postedBy,omitempty"`
	Items            []AdjustmentItem `json:"items,omitempty"`
	WarehouseName    string           `json:"warehouseName,omitempty"`
	AuditFields
}
