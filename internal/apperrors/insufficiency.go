package apperrors

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// InsufficientStockError reports a stock movement that would drive a
// warehouse balance negative. It always aborts the enclosing transaction.
type InsufficientStockError struct {
	ProductID   string
	WarehouseID string
	Available   decimal.Decimal
	Requested   decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s in warehouse %s: available %s, requested %s",
		e.ProductID, e.WarehouseID, e.Available.String(), e.Requested.String())
}

// InsufficientBalanceError reports a fund movement that would drive a fund
// source balance negative without an explicit override.
type InsufficientBalanceError struct {
	FundSourceID string
	Available    decimal.Decimal
	Requested    decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance on fund source %s: available %s, requested %s",
		e.FundSourceID, e.Available.String(), e.Requested.String())
}
