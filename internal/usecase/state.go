package usecase

import domain "github.com/samuelordialeseya/fruit-pos/internal/entity"

// State is every collection the POS owns. It is only mutated through POS,
// which holds the lock and writes the touched collections back to the store.
type State struct {
	Products      []domain.Product
	Cart          []domain.CartLine
	PreOrderCart  []domain.PreOrderLine
	Orders        []domain.Order
	PreOrders     []domain.PreOrder
	CustomerCount int

	// keys whose stored form differs from what was loaded, set by LoadState
	upgraded []string
}

func NewState() *State {
	return &State{CustomerCount: 1}
}
