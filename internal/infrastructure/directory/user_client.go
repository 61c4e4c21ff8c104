package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/identity"
)

// UserClient talks to the upstream user directory.
// It implements identity.UserDirectory.
type UserClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewUserClient creates a new UserClient
func NewUserClient(baseURL string, timeout time.Duration, logger *zap.Logger) *UserClient {
	return &UserClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// userPayload is the upstream wire shape for one account
type userPayload struct {
	ID       json.Number `json:"id"`
	Username string      `json:"username"`
	Password string      `json:"password"`
	Phone    string      `json:"phone"`
}

func (p userPayload) toDomain() identity.User {
	return identity.User{
		ID:       p.ID.String(),
		Username: p.Username,
		Password: p.Password,
		Phone:    p.Phone,
	}
}

// ListUsers retrieves every account from the directory
func (c *UserClient) ListUsers(ctx context.Context) ([]identity.User, error) {
	url := c.baseURL + "/user"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("user directory: failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("user directory: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("user directory: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("user directory: failed to read response: %w", err)
	}

	var payloads []userPayload
	if err := json.Unmarshal(body, &payloads); err != nil {
		return nil, fmt.Errorf("user directory: failed to decode response: %w", err)
	}

	users := make([]identity.User, 0, len(payloads))
	for _, p := range payloads {
		users = append(users, p.toDomain())
	}
	return users, nil
}

// CreateUser registers a new account. The directory signals success by
// echoing the created record back with an ID.
func (c *UserClient) CreateUser(ctx context.Context, reg identity.Registration) (*identity.User, error) {
	payload, err := json.Marshal(map[string]string{
		"username": reg.Username,
		"password": reg.Password,
		"phone":    reg.Phone,
	})
	if err != nil {
		return nil, fmt.Errorf("user directory: failed to encode request: %w", err)
	}

	url := c.baseURL + "/user"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("user directory: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("user directory: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("user directory: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("user directory: failed to read response: %w", err)
	}

	var created userPayload
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("user directory: failed to decode response: %w", err)
	}

	c.logger.Debug("User directory create completed",
		zap.String("username", created.Username),
		zap.Bool("has_id", created.ID.String() != ""),
	)

	user := created.toDomain()
	return &user, nil
}
