package invoice

import (
	"math"

	"github.com/google/uuid"
)

// Totals holds the derived monetary aggregates for a sequence of line items.
type Totals struct {
	Subtotal float64
	Total    float64
}

// CalculateTotals sums quantity x price over the items. Tax and discount
// are not folded in yet, so Total mirrors Subtotal. A NaN or infinite
// line contributes zero to the sum, so malformed input can never poison
// the aggregate.
func CalculateTotals(items []Item) Totals {
	var subtotal float64

	for _, item := range items {
		line := item.Quantity * item.Price
		if math.IsNaN(line) || math.IsInf(line, 0) {
			continue
		}

		subtotal += line
	}

	return Totals{Subtotal: subtotal, Total: subtotal}
}

// withAmounts returns a copy of items with each Amount recomputed from
// quantity and price, applying the same coercion policy as CalculateTotals.
// Items without an id get one assigned.
func withAmounts(items []Item) []Item {
	out := make([]Item, len(items))

	for i, item := range items {
		if item.ID == "" {
			item.ID = uuid.NewString()
		}

		line := item.Quantity * item.Price
		if math.IsNaN(line) || math.IsInf(line, 0) {
			line = 0
		}

		item.Amount = line
		out[i] = item
	}

	return out
}
