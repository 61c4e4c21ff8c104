package cart

import (
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// LineItem represents one product entry in a cart.
// A cart holds at most one LineItem per product; adding the same product
// again increments the quantity instead.
type LineItem struct {
	ProductID string
	Title     string
	UnitPrice decimal.Decimal
	Image     string
	Quantity  int64
}

// Subtotal returns UnitPrice * Quantity for this line
func (i LineItem) Subtotal() valueobject.Money {
	return valueobject.NewMoneyVND(i.UnitPrice).MultiplyByInt(i.Quantity)
}

// Cart is the aggregate root for a customer's shopping cart.
// Items keep insertion order. Selected tracks which lines count toward
// the total; its key set always equals the set of product IDs in Items.
type Cart struct {
	Key      string
	Items    []LineItem
	Selected map[string]bool
}

// NewCart creates an empty cart for the given key
func NewCart(key string) *Cart {
	return &Cart{
		Key:      key,
		Items:    make([]LineItem, 0),
		Selected: make(map[string]bool),
	}
}

// Rehydrate rebuilds a cart from persisted state. Selection entries for
// unknown products are dropped and missing entries default to selected,
// restoring the invariant that selection keys mirror the item set.
func Rehydrate(key string, items []LineItem, selected map[string]bool) *Cart {
	c := NewCart(key)
	for _, item := range items {
		if item.Quantity < 1 {
			item.Quantity = 1
		}
		c.Items = append(c.Items, item)
		sel, ok := selected[item.ProductID]
		if !ok {
			sel = true
		}
		c.Selected[item.ProductID] = sel
	}
	return c
}

// AddItem merges the product into the cart. An existing line has its
// quantity incremented; a new line is appended and starts selected.
func (c *Cart) AddItem(item LineItem) error {
	if item.ProductID == "" {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if item.Quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	for idx := range c.Items {
		if c.Items[idx].ProductID == item.ProductID {
			c.Items[idx].Quantity += item.Quantity
			return nil
		}
	}
	c.Items = append(c.Items, item)
	c.Selected[item.ProductID] = true
	return nil
}

// RemoveItem deletes the line for the product. Removing an absent
// product is a no-op.
func (c *Cart) RemoveItem(productID string) {
	for idx := range c.Items {
		if c.Items[idx].ProductID == productID {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			delete(c.Selected, productID)
			return
		}
	}
}

// AdjustQuantity applies a signed delta to a line's quantity.
// The result never drops below 1; a decrement at quantity 1 holds at 1.
func (c *Cart) AdjustQuantity(productID string, delta int64) error {
	for idx := range c.Items {
		if c.Items[idx].ProductID == productID {
			next := c.Items[idx].Quantity + delta
			if next < 1 {
				next = 1
			}
			c.Items[idx].Quantity = next
			return nil
		}
	}
	return shared.NewDomainError("NOT_FOUND", "Product is not in the cart")
}

// Toggle flips the selection state of a single line
func (c *Cart) Toggle(productID string) error {
	if _, ok := c.Selected[productID]; !ok {
		return shared.NewDomainError("NOT_FOUND", "Product is not in the cart")
	}
	c.Selected[productID] = !c.Selected[productID]
	return nil
}

// ToggleAll flips the whole selection: when every line is selected it
// deselects everything, otherwise it selects everything. The mixed case
// resolves to all-selected, not a per-line flip.
func (c *Cart) ToggleAll() {
	next := !c.AllSelected()
	for id := range c.Selected {
		c.Selected[id] = next
	}
}

// AllSelected reports whether every line is selected.
// An empty cart counts as all-selected.
func (c *Cart) AllSelected() bool {
	for _, sel := range c.Selected {
		if !sel {
			return false
		}
	}
	return true
}

// IsSelected reports the selection state of a line
func (c *Cart) IsSelected(productID string) bool {
	return c.Selected[productID]
}

// SelectedItems returns the selected lines in cart order
func (c *Cart) SelectedItems() []LineItem {
	items := make([]LineItem, 0, len(c.Items))
	for _, item := range c.Items {
		if c.Selected[item.ProductID] {
			items = append(items, item)
		}
	}
	return items
}

// Total sums UnitPrice * Quantity over the selected lines only
func (c *Cart) Total() valueobject.Money {
	total := valueobject.ZeroVND()
	for _, item := range c.SelectedItems() {
		total = total.MustAdd(item.Subtotal())
	}
	return total
}

// ItemCount returns the number of distinct lines in the cart
func (c *Cart) ItemCount() int {
	return len(c.Items)
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Clear empties the cart and its selection
func (c *Cart) Clear() {
	c.Items = c.Items[:0]
	c.Selected = make(map[string]bool)
}
