package checkout

import (
	"time"

	"github.com/storefront/backend/internal/domain/checkout"
)

// ChooseMethodRequest selects the payment method for a session
type ChooseMethodRequest struct {
	Method string `json:"method" binding:"required,oneof=cash bank"`
}

// LinkAccountRequest records the chosen bank and account number
type LinkAccountRequest struct {
	BankID        string `json:"bank_id" binding:"required"`
	BankName      string `json:"bank_name" binding:"required"`
	AccountNumber string `json:"account_number" binding:"required"`
}

// ConfirmCodeRequest carries the one-time confirmation code
type ConfirmCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// SnapshotItemResponse is one frozen cart line in session responses
type SnapshotItemResponse struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int64   `json:"quantity"`
}

// BankResponse is one bank directory entry in API responses
type BankResponse struct {
	ID        string `json:"id"`
	ShortName string `json:"short_name"`
}

// SessionResponse represents a checkout session in API responses.
// Banks is populated only by the response to choosing bank payment.
type SessionResponse struct {
	ID            string                 `json:"id"`
	CartKey       string                 `json:"cart_key"`
	State         string                 `json:"state"`
	Method        string                 `json:"method"`
	BankID        string                 `json:"bank_id,omitempty"`
	BankName      string                 `json:"bank_name,omitempty"`
	AccountNumber string                 `json:"account_number,omitempty"`
	Items         []SnapshotItemResponse `json:"items"`
	Total         float64                `json:"total"`
	Banks         []BankResponse         `json:"banks,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	CompletedAt   *time.Time             `json:"completed_at,omitempty"`
}

// ToSessionResponse converts a domain session to its response form
func ToSessionResponse(s *checkout.Session) SessionResponse {
	items := make([]SnapshotItemResponse, 0, len(s.Items))
	for _, item := range s.Items {
		price, _ := item.UnitPrice.Float64()
		items = append(items, SnapshotItemResponse{
			ProductID: item.ProductID,
			Title:     item.Title,
			Price:     price,
			Image:     item.Image,
			Quantity:  item.Quantity,
		})
	}
	return SessionResponse{
		ID:            s.ID.String(),
		CartKey:       s.CartKey,
		State:         s.State.String(),
		Method:        string(s.Method),
		BankID:        s.BankID,
		BankName:      s.BankName,
		AccountNumber: s.AccountNumber,
		Items:         items,
		Total:         s.Total().Float64(),
		CreatedAt:     s.CreatedAt,
		CompletedAt:   s.CompletedAt,
	}
}

// ToBankResponses converts bank directory entries
func ToBankResponses(banks []checkout.Bank) []BankResponse {
	responses := make([]BankResponse, 0, len(banks))
	for _, b := range banks {
		responses = append(responses, BankResponse{
			ID:        b.ID,
			ShortName: b.ShortName,
		})
	}
	return responses
}
