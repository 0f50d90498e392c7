// =============================================================================
// Store POS Simulator - Receipt Renderer
// =============================================================================
//
// A receipt is the write-once record of a completed sale. Its text layout is
// fixed:
//
//   Order Date: 2026-10-14
//
//   Items purchased:
//   2x Widget
//   1x Gadget
//
//   Sales Total: 25.00
//   Amount Paid: 30.00
//   Change Given: $5.00
//
// =============================================================================

package receipt

import (
	"fmt"
	"strings"
	"time"

	"github.com/ginjaninja78/store-pos/internal/cart"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultCurrency prefixes the change line when Currency is empty.
const DefaultCurrency = "$"

// Receipt describes one completed sale.
type Receipt struct {
	ID        uuid.UUID
	OrderedAt time.Time
	Lines     []cart.Line
	Total     decimal.Decimal
	Paid      decimal.Decimal
	Change    decimal.Decimal
	Currency  string
}

// New builds a receipt for the given aggregated lines and amounts. Change is
// paid minus total.
func New(orderedAt time.Time, lines []cart.Line, total, paid decimal.Decimal) *Receipt {
	return &Receipt{
		ID:        uuid.New(),
		OrderedAt: orderedAt,
		Lines:     append([]cart.Line(nil), lines...),
		Total:     total,
		Paid:      paid,
		Change:    paid.Sub(total),
		Currency:  DefaultCurrency,
	}
}

// Render returns the receipt text.
func (r *Receipt) Render() string {
	currency := r.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Order Date: %s\n", r.OrderedAt.Format("2006-01-02"))
	b.WriteString("\n")
	b.WriteString("Items purchased:\n")
	for _, line := range r.Lines {
		fmt.Fprintf(&b, "%dx %s\n", line.Count, line.Name)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Sales Total: %s\n", r.Total.StringFixed(2))
	fmt.Fprintf(&b, "Amount Paid: %s\n", r.Paid.StringFixed(2))
	fmt.Fprintf(&b, "Change Given: %s%s\n", currency, r.Change.StringFixed(2))
	return b.String()
}

// FileBase is the timestamp part of the receipt file name (yyyyMMddHHmm).
func (r *Receipt) FileBase() string {
	return r.OrderedAt.Format("200601021504")
}
