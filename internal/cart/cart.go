// =============================================================================
// Store POS Simulator - Cart Aggregator
// =============================================================================
//
// The cart is the only mutable state of a shopping session. It is an ordered
// list of catalog products, one entry per add. Everything shown to the
// operator (quantities per product, the total) is derived from that list on
// demand, so the display can never drift from the cart contents.
//
// =============================================================================

package cart

import (
	"github.com/ginjaninja78/store-pos/internal/catalog"

	"github.com/shopspring/decimal"
)

// Line is one aggregated cart row: a display name and how many entries of the
// cart carry it.
type Line struct {
	Name  string
	Count int
}

// Cart holds the products selected in the current session.
type Cart struct {
	items []catalog.Product
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add appends one unit of p. Adding the same product twice yields two entries.
func (c *Cart) Add(p catalog.Product) {
	c.items = append(c.items, p)
}

// AddFromCatalog looks query up in cat and adds every product it selects.
// In exact mode that is at most one product; in contains mode it may be
// several. The cart is unchanged when the query matches nothing.
func (c *Cart) AddFromCatalog(cat *catalog.Catalog, query string, mode catalog.MatchMode) ([]catalog.Product, error) {
	found, err := cat.Find(query, mode)
	if err != nil {
		return nil, err
	}
	for _, p := range found {
		c.Add(p)
	}
	return found, nil
}

// Items returns a copy of the cart entries in the order they were added.
func (c *Cart) Items() []catalog.Product {
	return append([]catalog.Product(nil), c.items...)
}

// Len returns the number of entries.
func (c *Cart) Len() int { return len(c.items) }

// IsEmpty reports whether the cart has no entries.
func (c *Cart) IsEmpty() bool { return len(c.items) == 0 }

// Clear removes every entry.
func (c *Cart) Clear() {
	c.items = nil
}

// Total is the sum of the unit prices of all entries.
func (c *Cart) Total() decimal.Decimal {
	return Total(c.items)
}

// Aggregate groups the entries by display name in first-seen order.
func (c *Cart) Aggregate() []Line {
	return Aggregate(c.items)
}

// Total sums the unit prices of items.
func Total(items []catalog.Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range items {
		total = total.Add(p.Price())
	}
	return total
}

// Aggregate counts items per display name, preserving first-seen order.
func Aggregate(items []catalog.Product) []Line {
	lines := []Line{}
	index := make(map[string]int)

	for _, p := range items {
		if i, ok := index[p.Name()]; ok {
			lines[i].Count++
			continue
		}
		index[p.Name()] = len(lines)
		lines = append(lines, Line{Name: p.Name(), Count: 1})
	}

	return lines
}
