// =============================================================================
// Store POS Simulator - Catalog Module
// =============================================================================
//
// This package owns the product model and everything needed to build the
// read-only catalog at startup:
//   - Product: immutable identifier / display name / unit price value
//   - Catalog: ordered product list with identifier lookup
//   - Loader:  pipe-delimited text and XLSX workbook sources
//
// CATALOG FILE FORMAT:
//   One product per line, exactly three pipe-delimited fields:
//
//     A17|Wireless Mouse|19.99
//
//   The price is a base-10 decimal with a '.' separator and no currency symbol.
//
// =============================================================================

package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Delimiter separates the fields of a catalog line.
const Delimiter = "|"

// Product is a single purchasable item. Fields are unexported so a Product
// cannot change after construction.
type Product struct {
	id    string
	name  string
	price decimal.Decimal
}

// NewProduct builds a Product. It rejects an empty identifier or name and a
// negative price.
func NewProduct(id, name string, price decimal.Decimal) (Product, error) {
	if id == "" {
		return Product{}, fmt.Errorf("identifier is empty")
	}
	if name == "" {
		return Product{}, fmt.Errorf("display name is empty")
	}
	if price.IsNegative() {
		return Product{}, fmt.Errorf("price %s is negative", price.String())
	}
	return Product{id: id, name: name, price: price}, nil
}

// ID returns the catalog identifier (SKU).
func (p Product) ID() string { return p.id }

// Name returns the display name.
func (p Product) Name() string { return p.name }

// Price returns the unit price.
func (p Product) Price() decimal.Decimal { return p.price }

// String renders the catalog listing line, e.g. "A17|Wireless Mouse|19.99".
func (p Product) String() string {
	return p.id + Delimiter + p.name + Delimiter + p.price.StringFixed(2)
}
