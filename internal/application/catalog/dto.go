package catalog

import "github.com/storefront/backend/internal/domain/catalog"

// ProductResponse represents a catalog product in API responses
type ProductResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	CategoryID  string  `json:"category_id"`
}

// ProductDetailResponse is a product plus items from the same category
type ProductDetailResponse struct {
	ProductResponse
	Related []ProductResponse `json:"related"`
}

// ToProductResponse converts a domain product to its response form
func ToProductResponse(p catalog.Product) ProductResponse {
	price, _ := p.Price.Float64()
	return ProductResponse{
		ID:          p.ID,
		Title:       p.Title,
		Price:       price,
		Image:       p.Image,
		Description: p.Description,
		Category:    p.Category,
		CategoryID:  p.CategoryID,
	}
}

// ToProductResponses converts a slice of domain products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, ToProductResponse(p))
	}
	return responses
}
