package domain

import "github.com/shopspring/decimal"

// CartLine is one priced line of the sale cart. Subtotal is fixed when the
// line is created and is never recomputed.
type CartLine struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId,omitempty"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

func NewCartLine(id string, p Product, qty decimal.Decimal) CartLine {
	return CartLine{
		ID:        id,
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  qty,
		Unit:      p.Unit,
		Subtotal:  p.Price.Mul(qty),
	}
}

func (l CartLine) LineID() string { return l.ID }

// PreOrderLine is an unpriced shopping request.
type PreOrderLine struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId,omitempty"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
}

func (l PreOrderLine) LineID() string { return l.ID }

func SumSubtotals(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal)
	}
	return total
}

func CloneLines[L any](lines []L) []L {
	if lines == nil {
		return nil
	}
	out := make([]L, len(lines))
	copy(out, lines)
	return out
}

// RemoveLine drops the line with the given id and reports whether one matched.
func RemoveLine[L interface{ LineID() string }](lines []L, id string) ([]L, bool) {
	for i, l := range lines {
		if l.LineID() == id {
			out := make([]L, 0, len(lines)-1)
			out = append(out, lines[:i]...)
			return append(out, lines[i+1:]...), true
		}
	}
	return lines, false
}
