package usecase

import (
	"fmt"

	"github.com/shopspring/decimal"

	domain "github.com/samuelordialeseya/fruit-pos/internal/entity"
)

type AddLineInput struct {
	ProductID string            `json:"productId" binding:"required"`
	Quantity  domain.NumberText `json:"quantity"`
}

func (s *State) AddLine(lineID string, in AddLineInput, policy UnitPolicy) (domain.CartLine, error) {
	qty, err := domain.ParseQuantity(in.Quantity.String())
	if err != nil {
		return domain.CartLine{}, fmt.Errorf("%w: enter a valid quantity", domain.ErrValidation)
	}
	p, ok := s.FindProduct(in.ProductID)
	if !ok {
		return domain.CartLine{}, domain.ErrNotFound
	}
	line := domain.NewCartLine(lineID, p, policy.BillableQuantity(p.Unit, qty))
	s.Cart = append(s.Cart, line)
	return line, nil
}

func (s *State) RemoveLine(lineID string) bool {
	var ok bool
	s.Cart, ok = domain.RemoveLine(s.Cart, lineID)
	return ok
}

func (s *State) ClearCart() { s.Cart = nil }

func (s *State) CartTotal() decimal.Decimal { return domain.SumSubtotals(s.Cart) }

func (s *State) AddPreOrderLine(lineID string, in AddLineInput) (domain.PreOrderLine, error) {
	qty, err := domain.ParseQuantity(in.Quantity.String())
	if err != nil {
		return domain.PreOrderLine{}, fmt.Errorf("%w: enter a valid quantity", domain.ErrValidation)
	}
	p, ok := s.FindProduct(in.ProductID)
	if !ok {
		return domain.PreOrderLine{}, domain.ErrNotFound
	}
	line := domain.PreOrderLine{
		ID:        lineID,
		ProductID: p.ID,
		Name:      p.Name,
		Quantity:  qty,
		Unit:      p.Unit,
	}
	s.PreOrderCart = append(s.PreOrderCart, line)
	return line, nil
}

func (s *State) RemovePreOrderLine(lineID string) bool {
	var ok bool
	s.PreOrderCart, ok = domain.RemoveLine(s.PreOrderCart, lineID)
	return ok
}

func (s *State) ClearPreOrderCart() { s.PreOrderCart = nil }
