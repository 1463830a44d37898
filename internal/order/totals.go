package order

import "github.com/shopspring/decimal"

// TaxRate is applied to the subtotal. Tip and discount never enter the total.
var TaxRate = decimal.RequireFromString("0.10")

type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// ComputeTotals derives subtotal, tax and total from the order lines.
func ComputeTotals(items []*OrderItem) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}

	tax := subtotal.Mul(TaxRate)

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}
