package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/checkout"
)

// bankListSuccessCode is the upstream response code for a successful listing
const bankListSuccessCode = "00"

// BankClient fetches the bank list from the bank directory.
// It implements checkout.BankDirectory.
type BankClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewBankClient creates a new BankClient
func NewBankClient(baseURL string, timeout time.Duration, logger *zap.Logger) *BankClient {
	return &BankClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// bankListPayload is the upstream envelope. Code "00" means success;
// any other code carries a description of the failure.
type bankListPayload struct {
	Code string        `json:"code"`
	Desc string        `json:"desc"`
	Data []bankPayload `json:"data"`
}

// bankPayload is one upstream bank entry. Upstream sends numeric IDs
// and many extra fields; only what the linking flow needs is decoded.
type bankPayload struct {
	ID        json.Number `json:"id"`
	ShortName string      `json:"shortName"`
}

// ListBanks retrieves the banks available for account linking
func (c *BankClient) ListBanks(ctx context.Context) ([]checkout.Bank, error) {
	url := c.baseURL + "/v2/banks"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("bank directory: failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bank directory: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("bank directory: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("bank directory: failed to read response: %w", err)
	}

	var payload bankListPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("bank directory: failed to decode response: %w", err)
	}
	if payload.Code != bankListSuccessCode {
		return nil, fmt.Errorf("bank directory: listing failed: %s", payload.Desc)
	}

	banks := make([]checkout.Bank, 0, len(payload.Data))
	for _, b := range payload.Data {
		banks = append(banks, checkout.Bank{
			ID:        b.ID.String(),
			ShortName: b.ShortName,
		})
	}

	c.logger.Debug("Bank directory fetched", zap.Int("banks", len(banks)))
	return banks, nil
}
