package cart

import "github.com/storefront/backend/internal/domain/cart"

// AddItemRequest represents a request to add a product to a cart
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"omitempty,gte=1"`
}

// AdjustQuantityRequest represents a signed quantity change for a line
type AdjustQuantityRequest struct {
	Delta int64 `json:"delta" binding:"required"`
}

// CartItemResponse represents one cart line in API responses
type CartItemResponse struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int64   `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
	Selected  bool    `json:"selected"`
}

// CartResponse represents a cart in API responses. Total covers the
// selected lines only.
type CartResponse struct {
	Key         string             `json:"key"`
	Items       []CartItemResponse `json:"items"`
	ItemCount   int                `json:"item_count"`
	AllSelected bool               `json:"all_selected"`
	Total       float64            `json:"total"`
}

// ToCartResponse converts a domain cart to its response form
func ToCartResponse(c *cart.Cart) CartResponse {
	items := make([]CartItemResponse, 0, len(c.Items))
	for _, item := range c.Items {
		price, _ := item.UnitPrice.Float64()
		items = append(items, CartItemResponse{
			ProductID: item.ProductID,
			Title:     item.Title,
			Price:     price,
			Image:     item.Image,
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal().Float64(),
			Selected:  c.IsSelected(item.ProductID),
		})
	}
	return CartResponse{
		Key:         c.Key,
		Items:       items,
		ItemCount:   c.ItemCount(),
		AllSelected: c.AllSelected(),
		Total:       c.Total().Float64(),
	}
}
