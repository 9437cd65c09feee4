package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/samuelordialeseya/fruit-pos/internal/entity"
)

func preOrder(lines ...domain.PreOrderLine) domain.PreOrder {
	return domain.PreOrder{Items: lines}
}

func line(name, qty, unit string) domain.PreOrderLine {
	return domain.PreOrderLine{Name: name, Quantity: dec(qty), Unit: unit}
}

func rowsOf(rows []ShoppingListRow) map[string]string {
	out := map[string]string{}
	for _, r := range rows {
		out[r.Name] = r.Quantity.String() + r.Unit
	}
	return out
}

func TestAggregate(t *testing.T) {
	a := preOrder(line("Apples", "2", "kg"))
	b := preOrder(line("Apples", "3", "kg"))
	c := preOrder(line("Bananas", "1", "kg"))

	for _, in := range [][]domain.PreOrder{{a, b, c}, {c, b, a}, {b, c, a}} {
		rows := Aggregate(in, false)
		require.Len(t, rows, 2)
		assert.Equal(t, "Apples", rows[0].Name)
		assert.Equal(t, "5", rows[0].Quantity.String())
		assert.Equal(t, "Bananas", rows[1].Name)
		assert.Equal(t, "1", rows[1].Quantity.String())
	}
}

func TestAggregate_MergesByNameAcrossProducts(t *testing.T) {
	in := []domain.PreOrder{
		preOrder(domain.PreOrderLine{ProductID: "p1", Name: "Mango", Quantity: dec("1.5"), Unit: "kg"},
			domain.PreOrderLine{ProductID: "p9", Name: "Mango", Quantity: dec("0.5"), Unit: "kg"}),
		preOrder(line("mango", "2", "kg")),
	}
	assert.Equal(t, map[string]string{"Mango": "2kg", "mango": "2kg"}, rowsOf(Aggregate(in, false)))
	assert.Equal(t, map[string]string{"Mango": "4kg"}, rowsOf(Aggregate(in, true)))
}

func TestAggregate_Empty(t *testing.T) {
	assert.Empty(t, Aggregate(nil, false))
	assert.Empty(t, Aggregate([]domain.PreOrder{preOrder()}, false))
}

func TestSavePreOrder(t *testing.T) {
	st := NewState()
	p, _ := st.AddProduct("p1", AddProductInput{Name: "Mango", Price: "100", Unit: "kg"})

	_, err := st.SavePreOrder("r1", fixedNow, "Ana")
	assert.ErrorIs(t, err, domain.ErrEmptyCollection)

	st.AddPreOrderLine("l1", AddLineInput{ProductID: p.ID, Quantity: "2"})
	_, err = st.SavePreOrder("r1", fixedNow, "  ")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Len(t, st.PreOrderCart, 1, "failed save keeps the cart")

	po, err := st.SavePreOrder("r1", fixedNow, "Ana")
	require.NoError(t, err)
	assert.Equal(t, "2026-10-16", po.Date)
	assert.Equal(t, "Ana", po.Customer)
	assert.Len(t, po.Items, 1)
	assert.Empty(t, st.PreOrderCart)
	assert.Len(t, st.PreOrders, 1)

	st.ClearPreOrders()
	assert.Empty(t, st.PreOrders)
}
