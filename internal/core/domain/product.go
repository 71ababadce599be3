package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AlternateUOM is a declared alternative unit of measure for a product.
// ConversionFactor is the number of base units in one alternate unit.
type AlternateUOM struct {
	Name             string          `json:"name"`
	ConversionFactor decimal.Decimal `json:"conversionFactor"`
}

// Product is catalog reference data. The posting core only reads it, to
// validate UOMs and resolve product existence; it never mutates the catalog.
type Product struct {
	ProductID     string         `json:"productID"`
	Name          string         `json:"name"`
	SKU           string         `json:"sku"`
	BaseUOM       string         `json:"baseUOM"`
	AlternateUOMs []AlternateUOM `json:"alternateUOMs"`
	IsActive      bool           `json:"isActive"`
	AuditFields
}

// HasUOM reports whether the given unit of measure is the product's base UOM
// or one of its declared alternates. Comparison is case-insensitive.
func (p Product) HasUOM(uom string) bool {
	name := strings.ToLower(strings.TrimSpace(uom))
	if strings.ToLower(strings.TrimSpace(p.BaseUOM)) == name {
		return true
	}
	for _, alt := range p.AlternateUOMs {
		if strings.ToLower(strings.TrimSpace(alt.Name)) == name {
			return true
		}
	}
	return false
}

// ConversionFactorFor returns the factor converting one unit of the given UOM
// to base units, or false if the UOM is not declared for the product.
func (p Product) ConversionFactorFor(uom string) (decimal.Decimal, bool) {
	name := strings.ToLower(strings.TrimSpace(uom))
	if strings.ToLower(strings.TrimSpace(p.BaseUOM)) == name {
		return decimal.NewFromInt(1), true
	}
	for _, alt := range p.AlternateUOMs {
		if strings.ToLower(strings.TrimSpace(alt.Name)) == name {
			return alt.ConversionFactor, true
		}
	}
	return decimal.Decimal{}, false
}

// Warehouse is a stocking location.
type Warehouse struct {
	WarehouseID string `json:"warehouseID"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	AuditFields
}
