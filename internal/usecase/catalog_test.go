package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/samuelordialeseya/fruit-pos/internal/entity"
)

func strPtr(s string) *string { return &s }

func numPtr(s string) *domain.NumberText {
	n := domain.NumberText(s)
	return &n
}

func TestAddProduct_Validation(t *testing.T) {
	tests := []struct {
		name string
		in   AddProductInput
	}{
		{"missing name", AddProductInput{Price: "10", Unit: "kg"}},
		{"blank name", AddProductInput{Name: "  ", Price: "10", Unit: "kg"}},
		{"missing price", AddProductInput{Name: "Mango", Unit: "kg"}},
		{"missing unit", AddProductInput{Name: "Mango", Price: "10"}},
		{"non numeric price", AddProductInput{Name: "Mango", Price: "ten", Unit: "kg"}},
		{"zero price", AddProductInput{Name: "Mango", Price: "0", Unit: "kg"}},
		{"negative price", AddProductInput{Name: "Mango", Price: "-4", Unit: "kg"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := NewState()
			_, err := st.AddProduct("p1", tt.in)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Empty(t, st.Products)
		})
	}
}

func TestAddProduct_AppendsAndIsRetrievable(t *testing.T) {
	st := NewState()
	for i, name := range []string{"Mango", "Banana", "Calamansi"} {
		before := len(st.Products)
		p, err := st.AddProduct(name, AddProductInput{Name: name, Price: "12.50", Unit: "kg", Category: "Fruit"})
		require.NoError(t, err)
		assert.Len(t, st.Products, before+1)
		assert.Equal(t, name, st.Products[i].Name, "append keeps insertion order")

		got, ok := st.FindProduct(p.ID)
		require.True(t, ok)
		assert.Equal(t, p, got)
	}
}

func TestUpdateProduct(t *testing.T) {
	st := NewState()
	p, err := st.AddProduct("p1", AddProductInput{Name: "Mango", Price: "100", Unit: "kg", Category: "Fruit"})
	require.NoError(t, err)

	t.Run("patches only set fields", func(t *testing.T) {
		got, err := st.UpdateProduct(p.ID, ProductPatch{Price: numPtr("120.5")})
		require.NoError(t, err)
		assert.Equal(t, "Mango", got.Name)
		assert.True(t, dec("120.5").Equal(got.Price))
	})

	t.Run("invalid price is rejected and nothing changes", func(t *testing.T) {
		for _, bad := range []string{"", "abc", "0", "-1"} {
			_, err := st.UpdateProduct(p.ID, ProductPatch{Name: strPtr("Ripe Mango"), Price: numPtr(bad)})
			assert.ErrorIs(t, err, domain.ErrValidation, "price %q", bad)
		}
		got, _ := st.FindProduct(p.ID)
		assert.Equal(t, "Mango", got.Name)
		assert.True(t, dec("120.5").Equal(got.Price))
	})

	t.Run("blank name or unit is rejected", func(t *testing.T) {
		_, err := st.UpdateProduct(p.ID, ProductPatch{Name: strPtr(" ")})
		assert.ErrorIs(t, err, domain.ErrValidation)
		_, err = st.UpdateProduct(p.ID, ProductPatch{Unit: strPtr("")})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := st.UpdateProduct("nope", ProductPatch{Name: strPtr("x")})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestDeleteProduct_DoesNotTouchOrders(t *testing.T) {
	st := NewState()
	p, _ := st.AddProduct("p1", AddProductInput{Name: "Mango", Price: "100", Unit: "kg"})
	_, err := st.AddLine("l1", AddLineInput{ProductID: p.ID, Quantity: "2"}, PerUnit{})
	require.NoError(t, err)
	o, err := st.CompleteOrder("o1", fixedNow, CheckoutInput{}, DefaultWalkInLabel)
	require.NoError(t, err)

	assert.True(t, st.DeleteProduct(p.ID))
	assert.False(t, st.DeleteProduct(p.ID), "second delete is a no-op")
	assert.Empty(t, st.Products)

	kept, ok := st.FindOrder(o.ID)
	require.True(t, ok)
	assert.Equal(t, "Mango", kept.Items[0].Name)
	assert.True(t, dec("200").Equal(kept.Total))
}

func TestListProducts_FilterAndSearchCompose(t *testing.T) {
	st := NewState()
	st.AddProduct("1", AddProductInput{Name: "Green Mango", Price: "80", Unit: "kg", Category: "Fruit"})
	st.AddProduct("2", AddProductInput{Name: "Ripe Mango", Price: "120", Unit: "kg", Category: "Fruit"})
	st.AddProduct("3", AddProductInput{Name: "Mango Juice", Price: "35", Unit: "pcs", Category: "Drinks"})
	st.AddProduct("4", AddProductInput{Name: "Kangkong", Price: "15", Unit: "tali", Category: "Vegetables"})

	ids := func(ps []domain.Product) []string {
		var out []string
		for _, p := range ps {
			out = append(out, p.ID)
		}
		return out
	}

	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(st.ListProducts(ProductFilter{Category: "All"})))
	assert.Equal(t, []string{"1", "2", "3"}, ids(st.ListProducts(ProductFilter{Term: "MANGO"})))
	assert.Equal(t, []string{"1", "2"}, ids(st.ListProducts(ProductFilter{Category: "Fruit", Term: "mango"})))
	assert.Empty(t, st.ListProducts(ProductFilter{Category: "Drinks", Term: "kang"}))
}

func TestCategories(t *testing.T) {
	st := NewState()
	assert.Equal(t, []string{"All"}, st.Categories())

	st.AddProduct("1", AddProductInput{Name: "Mango", Price: "80", Unit: "kg", Category: "Fruit"})
	st.AddProduct("2", AddProductInput{Name: "Kangkong", Price: "15", Unit: "tali", Category: "Vegetables"})
	st.AddProduct("3", AddProductInput{Name: "Banana", Price: "60", Unit: "kg", Category: "Fruit"})
	st.AddProduct("4", AddProductInput{Name: "Ice", Price: "5", Unit: "pcs"})

	assert.Equal(t, []string{"All", "Fruit", "Vegetables"}, st.Categories())
}

func TestResetInventory(t *testing.T) {
	st := NewState()
	p, _ := st.AddProduct("1", AddProductInput{Name: "Mango", Price: "80", Unit: "kg"})
	st.AddLine("l1", AddLineInput{ProductID: p.ID, Quantity: "1"}, PerUnit{})

	st.ResetInventory()
	assert.Empty(t, st.Products)
	assert.Empty(t, st.Cart)
}
