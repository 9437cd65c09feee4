package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/samuelordialeseya/fruit-pos/internal/entity"
)

// cartOf builds a state whose cart holds one line per subtotal (price x 1).
func cartOf(t *testing.T, subtotals ...string) *State {
	t.Helper()
	st := NewState()
	for i, s := range subtotals {
		id := string(rune('a' + i))
		p, err := st.AddProduct("p"+id, AddProductInput{Name: "Item " + id, Price: domain.NumberText(s), Unit: "pcs"})
		require.NoError(t, err)
		_, err = st.AddLine("l"+id, AddLineInput{ProductID: p.ID, Quantity: "1"}, PerUnit{})
		require.NoError(t, err)
	}
	return st
}

func TestCompleteOrder_TwoItemCart(t *testing.T) {
	st := cartOf(t, "50.00", "30.00")
	before := st.CustomerCount

	o, err := st.CompleteOrder("o1", fixedNow, CheckoutInput{Customer: "Aling Nena", Address: "4 blk2 lot5"}, DefaultWalkInLabel)
	require.NoError(t, err)

	assert.Equal(t, "80.00", o.Total.StringFixed(2))
	assert.Empty(t, st.Cart)
	assert.Equal(t, before+1, st.CustomerCount)
	assert.Equal(t, domain.StatusPending, o.Status)
	assert.Equal(t, "Aling Nena", o.Customer)
	assert.Equal(t, "4 blk2 lot5", o.Address)
	assert.Equal(t, "2026-10-16", o.RawDate)
	assert.Equal(t, "Oct 16, 2026", o.DisplayDate)
	assert.Equal(t, "9:30 AM", o.Time)
	assert.Equal(t, domain.OrderSchemaVersion, o.SchemaVersion)
	assert.True(t, domain.SumSubtotals(o.Items).Equal(o.Total))
}

func TestCompleteOrder_EmptyCart(t *testing.T) {
	st := NewState()
	_, err := st.CompleteOrder("o1", fixedNow, CheckoutInput{Customer: "X"}, DefaultWalkInLabel)
	assert.ErrorIs(t, err, domain.ErrEmptyCollection)
	assert.Empty(t, st.Orders)
	assert.Equal(t, 1, st.CustomerCount)
}

func TestCompleteOrder_DefaultsAndCounter(t *testing.T) {
	st := cartOf(t, "10")
	o1, err := st.CompleteOrder("o1", fixedNow, CheckoutInput{}, DefaultWalkInLabel)
	require.NoError(t, err)
	assert.Equal(t, "Customer #1", o1.Customer)
	assert.Equal(t, "Walk-in", o1.Address)

	// a named order still consumes a number
	p := st.Products[0]
	st.AddLine("x", AddLineInput{ProductID: p.ID, Quantity: "1"}, PerUnit{})
	o2, err := st.CompleteOrder("o2", fixedNow, CheckoutInput{Customer: "Mang Ben"}, DefaultWalkInLabel)
	require.NoError(t, err)
	assert.Equal(t, "Mang Ben", o2.Customer)

	st.AddLine("y", AddLineInput{ProductID: p.ID, Quantity: "1"}, PerUnit{})
	o3, err := st.CompleteOrder("o3", fixedNow, CheckoutInput{Customer: "   "}, "Pick-up")
	require.NoError(t, err)
	assert.Equal(t, "Customer #3", o3.Customer)
	assert.Equal(t, "Pick-up", o3.Address)

	// deletions never free a number
	st.DeleteOrder(o3.ID)
	st.AddLine("z", AddLineInput{ProductID: p.ID, Quantity: "1"}, PerUnit{})
	o4, err := st.CompleteOrder("o4", fixedNow, CheckoutInput{}, DefaultWalkInLabel)
	require.NoError(t, err)
	assert.Equal(t, "Customer #4", o4.Customer)
	assert.Equal(t, 5, st.CustomerCount)
}

func TestCompleteOrder_SnapshotIsIsolated(t *testing.T) {
	st := cartOf(t, "50")
	p := st.Products[0]
	o, err := st.CompleteOrder("o1", fixedNow, CheckoutInput{}, DefaultWalkInLabel)
	require.NoError(t, err)

	_, err = st.UpdateProduct(p.ID, ProductPatch{Name: strPtr("Renamed"), Price: numPtr("999")})
	require.NoError(t, err)
	st.AddLine("l2", AddLineInput{ProductID: p.ID, Quantity: "1"}, PerUnit{})

	// mutating the returned copy must not reach the ledger either
	o.Items[0].Name = "tampered"

	stored, ok := st.FindOrder("o1")
	require.True(t, ok)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, "Item a", stored.Items[0].Name)
	assert.Equal(t, "50.00", stored.Total.StringFixed(2))
}

func TestDeleteOrder_UnknownIDIsNoop(t *testing.T) {
	st := cartOf(t, "10")
	st.CompleteOrder("o1", fixedNow, CheckoutInput{}, DefaultWalkInLabel)
	before := append([]domain.Order(nil), st.Orders...)

	assert.False(t, st.DeleteOrder("missing"))
	assert.Equal(t, before, st.Orders)

	assert.True(t, st.DeleteOrder("o1"))
	assert.Empty(t, st.Orders)
}

func TestToggleStatus(t *testing.T) {
	st := cartOf(t, "10")
	st.CompleteOrder("o1", fixedNow, CheckoutInput{}, DefaultWalkInLabel)

	o, ok := st.ToggleStatus("o1")
	require.True(t, ok)
	assert.Equal(t, domain.StatusDelivered, o.Status)

	o, ok = st.ToggleStatus("o1")
	require.True(t, ok)
	assert.Equal(t, domain.StatusPending, o.Status)

	_, ok = st.ToggleStatus("missing")
	assert.False(t, ok)
}

func TestSetStatus(t *testing.T) {
	st := cartOf(t, "10")
	st.CompleteOrder("o1", fixedNow, CheckoutInput{}, DefaultWalkInLabel)

	_, found, changed := st.SetStatus("o1", domain.StatusPending)
	assert.True(t, found)
	assert.False(t, changed)

	o, found, changed := st.SetStatus("o1", domain.StatusDelivered)
	assert.True(t, found)
	assert.True(t, changed)
	assert.Equal(t, domain.StatusDelivered, o.Status)

	_, found, _ = st.SetStatus("nope", domain.StatusDelivered)
	assert.False(t, found)
}

func order(id string, st domain.Status, rawDate, total string) domain.Order {
	return domain.Order{ID: id, Status: st, RawDate: rawDate, Total: dec(total)}
}

func TestFilterByDateAndRevenue(t *testing.T) {
	orders := []domain.Order{
		order("a", domain.StatusPending, "2026-10-15", "100"),
		order("b", domain.StatusPending, "2026-10-16", "80"),
		order("c", domain.StatusDelivered, "2026-10-16", "45.50"),
	}
	got := FilterByDate(orders, "2026-10-16")
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
	assert.Equal(t, "125.50", DailyRevenue(orders, "2026-10-16").StringFixed(2))
	assert.True(t, DailyRevenue(orders, "2026-01-01").IsZero())
	assert.Empty(t, FilterByDate(orders, "2026-01-01"))
}

func TestSortForDispatch(t *testing.T) {
	in := []domain.Order{
		order("A", domain.StatusPending, "d", "1"),
		order("B", domain.StatusDelivered, "d", "1"),
		order("C", domain.StatusPending, "d", "1"),
	}
	got := SortForDispatch(in)

	var ids []string
	for _, o := range got {
		ids = append(ids, o.ID)
	}
	assert.Equal(t, []string{"A", "C", "B"}, ids)
	assert.Equal(t, "B", in[1].ID, "input is not reordered")
}

func TestSortForDispatch_StableWithinGroups(t *testing.T) {
	in := []domain.Order{
		order("d1", domain.StatusDelivered, "d", "1"),
		order("p1", domain.StatusPending, "d", "1"),
		order("d2", domain.StatusDelivered, "d", "1"),
		order("p2", domain.StatusPending, "d", "1"),
		order("d3", domain.StatusDelivered, "d", "1"),
	}
	var ids []string
	for _, o := range SortForDispatch(in) {
		ids = append(ids, o.ID)
	}
	assert.Equal(t, []string{"p1", "p2", "d1", "d2", "d3"}, ids)
}

func TestNewReceipt(t *testing.T) {
	st := cartOf(t, "50", "30.5")
	o, err := st.CompleteOrder("o1", fixedNow, CheckoutInput{Customer: "Ana"}, DefaultWalkInLabel)
	require.NoError(t, err)

	r := NewReceipt(o)
	assert.Equal(t, "o1", r.OrderID)
	assert.Equal(t, "80.50", r.Total)
	require.Len(t, r.Lines, 2)
	assert.Equal(t, ReceiptLine{Name: "Item b", Quantity: "1", Unit: "pcs", Price: "30.50", Subtotal: "30.50"}, r.Lines[1])
}
