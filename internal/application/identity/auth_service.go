package identity

import (
	"context"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
)

// LoginRequest carries the credentials for a login attempt
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest carries the data for a new account
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone" binding:"required,numeric,max=10"`
}

// UserResponse represents a directory account in API responses.
// Passwords never leave the service.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Phone    string `json:"phone"`
}

// AuthService matches credentials against the upstream user directory
// and registers new accounts with it. There are no local sessions or
// tokens; a successful login simply returns the matched account.
type AuthService struct {
	directory identity.UserDirectory
	logger    *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(directory identity.UserDirectory, logger *zap.Logger) *AuthService {
	return &AuthService{
		directory: directory,
		logger:    logger,
	}
}

// Login checks the credentials against every directory account
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*UserResponse, error) {
	users, err := s.directory.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if u.Matches(req.Username, req.Password) {
			return &UserResponse{
				ID:       u.ID,
				Username: u.Username,
				Phone:    u.Phone,
			}, nil
		}
	}

	s.logger.Info("Login rejected", zap.String("username", req.Username))
	return nil, shared.NewDomainError("UNAUTHORIZED", "Incorrect username or password")
}

// Register creates a new directory account. The directory signals
// success by echoing the created record with an ID.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	reg := identity.Registration{
		Username: req.Username,
		Password: req.Password,
		Phone:    identity.SanitizePhone(req.Phone),
	}
	if err := reg.Validate(); err != nil {
		return nil, err
	}

	created, err := s.directory.CreateUser(ctx, reg)
	if err != nil {
		return nil, err
	}
	if created == nil || created.ID == "" {
		return nil, shared.NewDomainError("REGISTRATION_FAILED", "Registration was not accepted")
	}

	s.logger.Info("Account registered", zap.String("username", created.Username))
	return &UserResponse{
		ID:       created.ID,
		Username: created.Username,
		Phone:    created.Phone,
	}, nil
}
