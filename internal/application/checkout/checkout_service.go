package checkout

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/checkout"
	"github.com/storefront/backend/internal/domain/shared"
)

// CheckoutService manages checkout sessions. Sessions live in memory
// only; a completed or abandoned session is removed from the store,
// and the cart survives everything except a completed order.
type CheckoutService struct {
	carts            cart.Repository
	banks            checkout.BankDirectory
	confirmationCode string
	logger           *zap.Logger

	// mu guards the session store and the sessions themselves.
	// Mutating operations hold the write lock until the response has
	// been built, so concurrent requests to one session never observe
	// a half-applied transition.
	mu       sync.RWMutex
	sessions map[uuid.UUID]*checkout.Session
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(carts cart.Repository, banks checkout.BankDirectory, confirmationCode string, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		carts:            carts,
		banks:            banks,
		confirmationCode: confirmationCode,
		logger:           logger,
		sessions:         make(map[uuid.UUID]*checkout.Session),
	}
}

// Start opens a checkout session over a frozen snapshot of the cart's
// selected lines. Later cart edits do not affect the session.
func (s *CheckoutService) Start(ctx context.Context, cartKey string) (*SessionResponse, error) {
	c, err := s.carts.Load(ctx, cartKey)
	if err != nil {
		return nil, err
	}

	selected := c.SelectedItems()
	items := make([]checkout.SnapshotItem, 0, len(selected))
	for _, line := range selected {
		items = append(items, checkout.SnapshotItem{
			ProductID: line.ProductID,
			Title:     line.Title,
			UnitPrice: line.UnitPrice,
			Image:     line.Image,
			Quantity:  line.Quantity,
		})
	}

	session, err := checkout.NewSession(cartKey, items, s.confirmationCode)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	s.logger.Info("Checkout session started",
		zap.String("session_id", session.ID.String()),
		zap.String("cart_key", cartKey),
		zap.Int("items", len(items)),
	)

	resp := ToSessionResponse(session)
	return &resp, nil
}

// Get returns the current state of a session
func (s *CheckoutService) Get(ctx context.Context, id uuid.UUID) (*SessionResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, shared.NewDomainError("NOT_FOUND", "Checkout session does not exist")
	}
	resp := ToSessionResponse(session)
	return &resp, nil
}

// ChooseMethod selects cash or bank payment. Choosing bank fetches the
// bank directory first; a fetch failure surfaces as an error and leaves
// the session state untouched so the user can re-choose.
func (s *CheckoutService) ChooseMethod(ctx context.Context, id uuid.UUID, method string) (*SessionResponse, error) {
	switch checkout.PaymentMethod(method) {
	case checkout.PaymentMethodCash:
		s.mu.Lock()
		defer s.mu.Unlock()

		session, ok := s.sessions[id]
		if !ok {
			return nil, shared.NewDomainError("NOT_FOUND", "Checkout session does not exist")
		}
		if err := session.ChooseCash(); err != nil {
			return nil, err
		}
		resp := ToSessionResponse(session)
		return &resp, nil

	case checkout.PaymentMethodBank:
		// Reject sessions that can no longer switch to bank before
		// going upstream; the listing fetch is not free.
		s.mu.RLock()
		session, ok := s.sessions[id]
		var stateErr error
		if ok {
			stateErr = session.CheckChooseBank()
		}
		s.mu.RUnlock()
		if !ok {
			return nil, shared.NewDomainError("NOT_FOUND", "Checkout session does not exist")
		}
		if stateErr != nil {
			return nil, stateErr
		}

		banks, err := s.banks.ListBanks(ctx)
		if err != nil {
			s.logger.Warn("Bank directory fetch failed",
				zap.String("session_id", id.String()),
				zap.Error(err),
			)
			return nil, err
		}

		// The lock was released during the fetch; re-validate the
		// transition before applying it.
		s.mu.Lock()
		defer s.mu.Unlock()

		session, ok = s.sessions[id]
		if !ok {
			return nil, shared.NewDomainError("NOT_FOUND", "Checkout session does not exist")
		}
		if err := session.ChooseBank(); err != nil {
			return nil, err
		}
		resp := ToSessionResponse(session)
		resp.Banks = ToBankResponses(banks)
		return &resp, nil

	default:
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Payment method must be cash or bank")
	}
}

// LinkAccount records the bank account details for a bank session
func (s *CheckoutService) LinkAccount(ctx context.Context, id uuid.UUID, req LinkAccountRequest) (*SessionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, shared.NewDomainError("NOT_FOUND", "Checkout session does not exist")
	}

	if err := session.LinkAccount(req.BankID, req.BankName, req.AccountNumber); err != nil {
		return nil, err
	}
	resp := ToSessionResponse(session)
	return &resp, nil
}

// PlaceOrder advances the session. Cash completes immediately and the
// cart is cleared; a linked bank account moves on to code confirmation.
func (s *CheckoutService) PlaceOrder(ctx context.Context, id uuid.UUID) (*SessionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, shared.NewDomainError("NOT_FOUND", "Checkout session does not exist")
	}

	if err := session.PlaceOrder(); err != nil {
		return nil, err
	}

	if session.IsCompleted() {
		if err := s.finish(ctx, session); err != nil {
			return nil, err
		}
	}
	resp := ToSessionResponse(session)
	return &resp, nil
}

// ConfirmCode checks the one-time code for a bank order. A mismatch is
// an error and the session keeps waiting; a match completes the order
// and clears the cart.
func (s *CheckoutService) ConfirmCode(ctx context.Context, id uuid.UUID, code string) (*SessionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, shared.NewDomainError("NOT_FOUND", "Checkout session does not exist")
	}

	if err := session.ConfirmCode(code); err != nil {
		return nil, err
	}

	if err := s.finish(ctx, session); err != nil {
		return nil, err
	}
	resp := ToSessionResponse(session)
	return &resp, nil
}

// Abandon drops a session without touching the cart
func (s *CheckoutService) Abandon(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return shared.NewDomainError("NOT_FOUND", "Checkout session does not exist")
	}
	delete(s.sessions, id)
	s.logger.Info("Checkout session abandoned", zap.String("session_id", id.String()))
	return nil
}

// finish clears the cart behind a completed session and drops the
// session from the store. The caller holds s.mu.
func (s *CheckoutService) finish(ctx context.Context, session *checkout.Session) error {
	c, err := s.carts.Load(ctx, session.CartKey)
	if err != nil {
		return err
	}
	c.Clear()
	if err := s.carts.Save(ctx, c); err != nil {
		return err
	}

	delete(s.sessions, session.ID)

	s.logger.Info("Order placed",
		zap.String("session_id", session.ID.String()),
		zap.String("cart_key", session.CartKey),
		zap.String("method", string(session.Method)),
		zap.Float64("total", session.Total().Float64()),
	)
	return nil
}
