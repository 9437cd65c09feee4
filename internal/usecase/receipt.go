package usecase

import domain "github.com/samuelordialeseya/fruit-pos/internal/entity"

// Receipt is what the receipt image is drawn from. Amounts are preformatted
// with two decimals.
type Receipt struct {
	OrderID     string        `json:"orderId"`
	Customer    string        `json:"customer"`
	Address     string        `json:"address"`
	Status      domain.Status `json:"status"`
	DisplayDate string        `json:"displayDate"`
	Time        string        `json:"time"`
	Lines       []ReceiptLine `json:"lines"`
	Total       string        `json:"total"`
}

type ReceiptLine struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
	Price    string `json:"price"`
	Subtotal string `json:"subtotal"`
}

func NewReceipt(o domain.Order) Receipt {
	r := Receipt{
		OrderID:     o.ID,
		Customer:    o.Customer,
		Address:     o.Address,
		Status:      o.Status,
		DisplayDate: o.DisplayDate,
		Time:        o.Time,
		Lines:       make([]ReceiptLine, 0, len(o.Items)),
		Total:       o.Total.StringFixed(2),
	}
	for _, it := range o.Items {
		r.Lines = append(r.Lines, ReceiptLine{
			Name:     it.Name,
			Quantity: it.Quantity.String(),
			Unit:     it.Unit,
			Price:    it.Price.StringFixed(2),
			Subtotal: it.Subtotal.StringFixed(2),
		})
	}
	return r
}
