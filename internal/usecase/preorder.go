package usecase

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/samuelordialeseya/fruit-pos/internal/entity"
)

type ShoppingListRow struct {
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
}

func (s *State) SavePreOrder(id string, now time.Time, customer string) (domain.PreOrder, error) {
	customer = strings.TrimSpace(customer)
	if customer == "" {
		return domain.PreOrder{}, fmt.Errorf("%w: enter customer name", domain.ErrValidation)
	}
	if len(s.PreOrderCart) == 0 {
		return domain.PreOrder{}, fmt.Errorf("%w: pre-order has no items", domain.ErrEmptyCollection)
	}
	po := domain.PreOrder{
		ID:        id,
		Customer:  customer,
		Items:     domain.CloneLines(s.PreOrderCart),
		Date:      now.Format(RawDateLayout),
		CreatedAt: now,
	}
	s.PreOrders = append(s.PreOrders, po)
	s.PreOrderCart = nil
	return po, nil
}

func (s *State) ClearPreOrders() { s.PreOrders = nil }

// Aggregate merges every pre-order line by product name and sums the
// quantities. Rows come back sorted by name. With foldCase, "apples" and
// "Apples" share a row under the first spelling seen.
func Aggregate(preOrders []domain.PreOrder, foldCase bool) []ShoppingListRow {
	index := map[string]int{}
	var rows []ShoppingListRow
	for _, po := range preOrders {
		for _, it := range po.Items {
			key := it.Name
			if foldCase {
				key = strings.ToLower(key)
			}
			if i, ok := index[key]; ok {
				rows[i].Quantity = rows[i].Quantity.Add(it.Quantity)
				continue
			}
			index[key] = len(rows)
			rows = append(rows, ShoppingListRow{Name: it.Name, Quantity: it.Quantity, Unit: it.Unit})
		}
	}
	slices.SortStableFunc(rows, func(a, b ShoppingListRow) int { return strings.Compare(a.Name, b.Name) })
	return rows
}
