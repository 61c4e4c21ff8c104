package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/shared"
)

func lineItem(productID string, price float64, quantity int64) LineItem {
	return LineItem{
		ProductID: productID,
		Title:     "Product " + productID,
		UnitPrice: decimal.NewFromFloat(price),
		Quantity:  quantity,
	}
}

func TestNewCart(t *testing.T) {
	c := NewCart("cart-1")

	assert.Equal(t, "cart-1", c.Key)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.ItemCount())
	assert.True(t, c.AllSelected())
	assert.True(t, c.Total().IsZero())
}

func TestCartAddItem(t *testing.T) {
	t.Run("appends a new line selected", func(t *testing.T) {
		c := NewCart("cart-1")

		err := c.AddItem(lineItem("p1", 10.0, 2))
		require.NoError(t, err)

		assert.Equal(t, 1, c.ItemCount())
		assert.True(t, c.IsSelected("p1"))
		assert.Equal(t, int64(2), c.Items[0].Quantity)
	})

	t.Run("merges a duplicate product into the existing line", func(t *testing.T) {
		c := NewCart("cart-1")
		require.NoError(t, c.AddItem(lineItem("p1", 10.0, 2)))

		err := c.AddItem(lineItem("p1", 10.0, 3))
		require.NoError(t, err)

		assert.Equal(t, 1, c.ItemCount())
		assert.Equal(t, int64(5), c.Items[0].Quantity)
	})

	t.Run("merge does not change a deselected line's selection", func(t *testing.T) {
		c := NewCart("cart-1")
		require.NoError(t, c.AddItem(lineItem("p1", 10.0, 1)))
		require.NoError(t, c.Toggle("p1"))

		require.NoError(t, c.AddItem(lineItem("p1", 10.0, 1)))
		assert.False(t, c.IsSelected("p1"))
	})

	t.Run("keeps insertion order", func(t *testing.T) {
		c := NewCart("cart-1")
		require.NoError(t, c.AddItem(lineItem("p1", 10.0, 1)))
		require.NoError(t, c.AddItem(lineItem("p2", 20.0, 1)))
		require.NoError(t, c.AddItem(lineItem("p1", 10.0, 1)))
		require.NoError(t, c.AddItem(lineItem("p3", 30.0, 1)))

		ids := make([]string, 0, len(c.Items))
		for _, item := range c.Items {
			ids = append(ids, item.ProductID)
		}
		assert.Equal(t, []string{"p1", "p2", "p3"}, ids)
	})

	t.Run("fails with empty product ID", func(t *testing.T) {
		c := NewCart("cart-1")
		err := c.AddItem(lineItem("", 10.0, 1))
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PRODUCT", domainErr.Code)
	})

	t.Run("fails with quantity below 1", func(t *testing.T) {
		c := NewCart("cart-1")
		err := c.AddItem(lineItem("p1", 10.0, 0))
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_QUANTITY", domainErr.Code)
	})
}

func TestCartRemoveItem(t *testing.T) {
	t.Run("removes the line and its selection entry", func(t *testing.T) {
		c := NewCart("cart-1")
		require.NoError(t, c.AddItem(lineItem("p1", 10.0, 1)))
		require.NoError(t, c.AddItem(lineItem("p2", 20.0, 1)))

		c.RemoveItem("p1")

		assert.Equal(t, 1, c.ItemCount())
		assert.Equal(t, "p2", c.Items[0].ProductID)
		_, ok := c.Selected["p1"]
		assert.False(t, ok)
	})

	t.Run("removing an absent product is a no-op", func(t *testing.T) {
		c := NewCart("cart-1")
		require.NoError(t, c.AddItem(lineItem("p1", 10.0, 1)))

		c.RemoveItem("missing")
		assert.Equal(t, 1, c.ItemCount())
	})
}

func TestCartAdjustQuantity(t *testing.T) {
	t.Run("applies positive and negative deltas", func(t *testing.T) {
		c := NewCart("cart-1")
		require.NoError(t, c.AddItem(lineItem("p1", 10.0, 3)))

		require.NoError(t, c.AdjustQuantity("p1", 2))
		assert.Equal(t, int64(5), c.Items[0].Quantity)

		require.NoError(t, c.AdjustQuantity("p1", -4))
		assert.Equal(t, int64(1), c.Items[0].Quantity)
	})

	t.Run("quantity never drops below 1", func(t *testing.T) {
		c := NewCart("cart-1")
		require.NoError(t, c.AddItem(lineItem("p1", 10.0, 1)))

		require.NoError(t, c.AdjustQuantity("p1", -1))
		assert.Equal(t, int64(1), c.Items[0].Quantity)

		require.NoError(t, c.AdjustQuantity("p1", -100))
		assert.Equal(t, int64(1), c.Items[0].Quantity)
	})

	t.Run("fails for a product not in the cart", func(t *testing.T) {
		c := NewCart("cart-1")
		err := c.AdjustQuantity("missing", 1)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})
}

func TestCartToggle(t *testing.T) {
	t.Run("flips one line's selection", func(t *testing.T) {
		c := NewCart("cart-1")
		require.NoError(t, c.AddItem(lineItem("p1", 10.0, 1)))

		require.NoError(t, c.Toggle("p1"))
		assert.False(t, c.IsSelected("p1"))

		require.NoError(t, c.Toggle("p1"))
		assert.True(t, c.IsSelected("p1"))
	})

	t.Run("fails for a product not in the cart", func(t *testing.T) {
		c := NewCart("cart-1")
		err := c.Toggle("missing")
		require.Error(t, err)
	})
}

func TestCartToggleAll(t *testing.T) {
	t.Run("all selected becomes all deselected", func(t *testing.T) {
		c := NewCart("cart-1")
		require.NoError(t, c.AddItem(lineItem("p1", 10.0, 1)))
		require.NoError(t, c.AddItem(lineItem("p2", 20.0, 1)))

		c.ToggleAll()

		assert.False(t, c.IsSelected("p1"))
		assert.False(t, c.IsSelected("p2"))
	})

	t.Run("mixed selection resolves to all selected", func(t *testing.T) {
		c := NewCart("cart-1")
		require.NoError(t, c.AddItem(lineItem("p1", 10.0, 1)))
		require.NoError(t, c.AddItem(lineItem("p2", 20.0, 1)))
		require.NoError(t, c.Toggle("p1"))

		c.ToggleAll()

		assert.True(t, c.IsSelected("p1"))
		assert.True(t, c.IsSelected("p2"))
	})

	t.Run("none selected becomes all selected", func(t *testing.T) {
		c := NewCart("cart-1")
		require.NoError(t, c.AddItem(lineItem("p1", 10.0, 1)))
		require.NoError(t, c.AddItem(lineItem("p2", 20.0, 1)))
		c.ToggleAll()

		c.ToggleAll()

		assert.True(t, c.IsSelected("p1"))
		assert.True(t, c.IsSelected("p2"))
	})
}

func TestCartTotal(t *testing.T) {
	t.Run("sums only the selected lines", func(t *testing.T) {
		c := NewCart("cart-1")
		require.NoError(t, c.AddItem(lineItem("p1", 10.5, 2)))
		require.NoError(t, c.AddItem(lineItem("p2", 3.0, 4)))
		require.NoError(t, c.Toggle("p2"))

		assert.True(t, c.Total().Amount().Equal(decimal.NewFromFloat(21.0)))
	})

	t.Run("deselecting everything totals to zero", func(t *testing.T) {
		c := NewCart("cart-1")
		require.NoError(t, c.AddItem(lineItem("p1", 10.0, 2)))
		c.ToggleAll()

		assert.True(t, c.Total().IsZero())
	})

	t.Run("selected items come back in cart order", func(t *testing.T) {
		c := NewCart("cart-1")
		require.NoError(t, c.AddItem(lineItem("p1", 10.0, 1)))
		require.NoError(t, c.AddItem(lineItem("p2", 20.0, 1)))
		require.NoError(t, c.AddItem(lineItem("p3", 30.0, 1)))
		require.NoError(t, c.Toggle("p2"))

		selected := c.SelectedItems()
		require.Len(t, selected, 2)
		assert.Equal(t, "p1", selected[0].ProductID)
		assert.Equal(t, "p3", selected[1].ProductID)
	})
}

func TestRehydrate(t *testing.T) {
	t.Run("restores items and selection", func(t *testing.T) {
		items := []LineItem{
			lineItem("p1", 10.0, 2),
			lineItem("p2", 20.0, 1),
		}
		selected := map[string]bool{"p1": true, "p2": false}

		c := Rehydrate("cart-1", items, selected)

		assert.Equal(t, 2, c.ItemCount())
		assert.True(t, c.IsSelected("p1"))
		assert.False(t, c.IsSelected("p2"))
	})

	t.Run("drops selection entries for unknown products", func(t *testing.T) {
		items := []LineItem{lineItem("p1", 10.0, 1)}
		selected := map[string]bool{"p1": true, "ghost": false}

		c := Rehydrate("cart-1", items, selected)

		_, ok := c.Selected["ghost"]
		assert.False(t, ok)
		assert.True(t, c.AllSelected())
	})

	t.Run("missing selection entries default to selected", func(t *testing.T) {
		items := []LineItem{lineItem("p1", 10.0, 1)}

		c := Rehydrate("cart-1", items, map[string]bool{})

		assert.True(t, c.IsSelected("p1"))
	})

	t.Run("lifts persisted quantities below 1 up to 1", func(t *testing.T) {
		items := []LineItem{lineItem("p1", 10.0, 0)}

		c := Rehydrate("cart-1", items, nil)

		assert.Equal(t, int64(1), c.Items[0].Quantity)
	})
}

func TestCartClear(t *testing.T) {
	c := NewCart("cart-1")
	require.NoError(t, c.AddItem(lineItem("p1", 10.0, 1)))
	require.NoError(t, c.AddItem(lineItem("p2", 20.0, 1)))

	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.Empty(t, c.Selected)
	assert.True(t, c.AllSelected())
}

func TestLineItemSubtotal(t *testing.T) {
	item := lineItem("p1", 12.5, 3)
	assert.True(t, item.Subtotal().Amount().Equal(decimal.NewFromFloat(37.5)))
}
