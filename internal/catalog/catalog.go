package catalog

import (
	"fmt"
	"strings"
)

// =============================================================================
// MATCH MODE
// =============================================================================

// MatchMode selects how a query is compared with product identifiers.
type MatchMode int

const (
	// MatchExact selects the first product whose identifier equals the query,
	// ignoring case.
	MatchExact MatchMode = iota

	// MatchContains selects every product whose identifier contains the
	// query, ignoring case.
	MatchContains
)

// String returns the configuration name of the mode.
func (m MatchMode) String() string {
	switch m {
	case MatchExact:
		return "exact"
	case MatchContains:
		return "contains"
	default:
		return fmt.Sprintf("MatchMode(%d)", int(m))
	}
}

// ParseMatchMode parses "exact" or "contains".
func ParseMatchMode(s string) (MatchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "exact":
		return MatchExact, nil
	case "contains":
		return MatchContains, nil
	default:
		return MatchExact, fmt.Errorf("unknown match mode %q (want exact or contains)", s)
	}
}

// =============================================================================
// CATALOG
// =============================================================================

// Catalog is the ordered, read-only product list. Order is source order.
type Catalog struct {
	products []Product
	skipped  []*LoadError
}

// New builds a catalog from products in the given order.
func New(products ...Product) *Catalog {
	return &Catalog{products: append([]Product(nil), products...)}
}

// Products returns a copy of the products in catalog order.
func (c *Catalog) Products() []Product {
	return append([]Product(nil), c.products...)
}

// Len returns the number of products.
func (c *Catalog) Len() int { return len(c.products) }

// Skipped returns the lines dropped by a skip-policy load.
func (c *Catalog) Skipped() []*LoadError {
	return append([]*LoadError(nil), c.skipped...)
}

// Find looks up products by identifier. Exact mode returns at most one
// product, the first match. Contains mode returns every match in catalog
// order. A query matching nothing yields a *NotFoundError.
func (c *Catalog) Find(query string, mode MatchMode) ([]Product, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, &NotFoundError{Query: query}
	}

	var found []Product
	for _, p := range c.products {
		switch mode {
		case MatchContains:
			if strings.Contains(strings.ToLower(p.id), strings.ToLower(q)) {
				found = append(found, p)
			}
		default:
			if strings.EqualFold(p.id, q) {
				return []Product{p}, nil
			}
		}
	}

	if len(found) == 0 {
		return nil, &NotFoundError{Query: q}
	}
	return found, nil
}

// FindByID returns the first product whose identifier equals id, ignoring case.
func (c *Catalog) FindByID(id string) (Product, error) {
	found, err := c.Find(id, MatchExact)
	if err != nil {
		return Product{}, err
	}
	return found[0], nil
}

// Listing renders one catalog line per product.
func (c *Catalog) Listing() []string {
	lines := make([]string, len(c.products))
	for i, p := range c.products {
		lines[i] = p.String()
	}
	return lines
}
