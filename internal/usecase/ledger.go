package usecase

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/samuelordialeseya/fruit-pos/internal/entity"
)

const (
	RawDateLayout     = "2006-01-02"
	DisplayDateLayout = "Jan 2, 2006"
	TimeLayout        = "3:04 PM"

	DefaultWalkInLabel = "Walk-in"
)

type CheckoutInput struct {
	Customer       string `json:"customer"`
	Address        string `json:"address"`
	IdempotencyKey string `json:"-"`
}

// CompleteOrder turns the sale cart into an order and empties the cart.
// The customer counter moves on every checkout, named or not.
func (s *State) CompleteOrder(id string, now time.Time, in CheckoutInput, walkIn string) (domain.Order, error) {
	if len(s.Cart) == 0 {
		return domain.Order{}, fmt.Errorf("%w: cart is empty", domain.ErrEmptyCollection)
	}
	customer := strings.TrimSpace(in.Customer)
	if customer == "" {
		customer = fmt.Sprintf("Customer #%d", s.CustomerCount)
	}
	address := strings.TrimSpace(in.Address)
	if address == "" {
		address = walkIn
	}
	items := domain.CloneLines(s.Cart)
	o := domain.Order{
		SchemaVersion: domain.OrderSchemaVersion,
		ID:            id,
		Customer:      customer,
		Address:       address,
		Status:        domain.StatusPending,
		Items:         items,
		Total:         domain.SumSubtotals(items),
		RawDate:       now.Format(RawDateLayout),
		DisplayDate:   now.Format(DisplayDateLayout),
		Time:          now.Format(TimeLayout),
		CreatedAt:     now,
	}
	s.Orders = append(s.Orders, o)
	s.CustomerCount++
	s.Cart = nil
	return o.Clone(), nil
}

func (s *State) FindOrder(id string) (domain.Order, bool) {
	idx := s.orderIndex(id)
	if idx < 0 {
		return domain.Order{}, false
	}
	return s.Orders[idx].Clone(), true
}

func (s *State) DeleteOrder(id string) bool {
	idx := s.orderIndex(id)
	if idx < 0 {
		return false
	}
	s.Orders = append(s.Orders[:idx:idx], s.Orders[idx+1:]...)
	return true
}

func (s *State) ToggleStatus(id string) (domain.Order, bool) {
	idx := s.orderIndex(id)
	if idx < 0 {
		return domain.Order{}, false
	}
	s.Orders[idx].Status = s.Orders[idx].Status.Toggled()
	return s.Orders[idx].Clone(), true
}

// SetStatus reports changed=false when the order already had the status.
func (s *State) SetStatus(id string, st domain.Status) (o domain.Order, found, changed bool) {
	idx := s.orderIndex(id)
	if idx < 0 {
		return domain.Order{}, false, false
	}
	if s.Orders[idx].Status != st {
		s.Orders[idx].Status = st
		changed = true
	}
	return s.Orders[idx].Clone(), true, changed
}

// SelectOrders returns the orders whose id is in ids, in ledger order.
func (s *State) SelectOrders(ids []string) []domain.Order {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []domain.Order
	for _, o := range s.Orders {
		if want[o.ID] {
			out = append(out, o.Clone())
		}
	}
	return out
}

func (s *State) orderIndex(id string) int {
	for i, o := range s.Orders {
		if o.ID == id {
			return i
		}
	}
	return -1
}

func FilterByDate(orders []domain.Order, rawDate string) []domain.Order {
	var out []domain.Order
	for _, o := range orders {
		if o.RawDate == rawDate {
			out = append(out, o.Clone())
		}
	}
	return out
}

func DailyRevenue(orders []domain.Order, rawDate string) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		if o.RawDate == rawDate {
			total = total.Add(o.Total)
		}
	}
	return total
}

// SortForDispatch sinks delivered orders below pending ones, keeping the
// relative order inside each group.
func SortForDispatch(orders []domain.Order) []domain.Order {
	out := slices.Clone(orders)
	slices.SortStableFunc(out, func(a, b domain.Order) int {
		return dispatchRank(a.Status) - dispatchRank(b.Status)
	})
	return out
}

func dispatchRank(st domain.Status) int {
	if st == domain.StatusDelivered {
		return 1
	}
	return 0
}
