package checkout

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// PaymentMethod identifies how the customer intends to pay
type PaymentMethod string

const (
	PaymentMethodNone PaymentMethod = ""
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodBank PaymentMethod = "bank"
)

// SessionState represents the state of a checkout session
type SessionState string

const (
	StateInit         SessionState = "INIT"
	StateCashSelected SessionState = "CASH_SELECTED"
	StateBankSelected SessionState = "BANK_SELECTED"
	StateAwaitingLink SessionState = "AWAITING_LINK"
	StateOTPPending   SessionState = "OTP_PENDING"
	StateCompleted    SessionState = "COMPLETED"
)

// IsValid checks if the state is a valid SessionState
func (s SessionState) IsValid() bool {
	switch s {
	case StateInit, StateCashSelected, StateBankSelected, StateAwaitingLink, StateOTPPending, StateCompleted:
		return true
	}
	return false
}

// String returns the string representation of SessionState
func (s SessionState) String() string {
	return string(s)
}

// IsTerminal reports whether the state accepts no further transitions
func (s SessionState) IsTerminal() bool {
	return s == StateCompleted
}

// CanTransitionTo checks if the state can transition to the target state
func (s SessionState) CanTransitionTo(target SessionState) bool {
	switch s {
	case StateInit:
		return target == StateCashSelected || target == StateBankSelected
	case StateCashSelected:
		return target == StateBankSelected || target == StateCompleted
	case StateBankSelected:
		return target == StateCashSelected || target == StateAwaitingLink
	case StateAwaitingLink:
		return target == StateCashSelected || target == StateBankSelected || target == StateOTPPending
	case StateOTPPending:
		return target == StateCompleted
	case StateCompleted:
		return false // Terminal state
	}
	return false
}

// SnapshotItem is one cart line frozen into a checkout session
type SnapshotItem struct {
	ProductID string
	Title     string
	UnitPrice decimal.Decimal
	Image     string
	Quantity  int64
}

// Session is the aggregate root for one checkout attempt. It carries an
// immutable snapshot of the selected cart lines taken at creation; later
// cart edits never affect a session's totals.
type Session struct {
	ID            uuid.UUID
	CartKey       string
	Items         []SnapshotItem
	Method        PaymentMethod
	BankID        string
	BankName      string
	AccountNumber string
	State         SessionState
	expectedCode  string
	CreatedAt     time.Time
	CompletedAt   *time.Time
}

// NewSession creates a checkout session over a snapshot of cart lines.
// An empty snapshot is allowed; the session then totals to zero.
func NewSession(cartKey string, items []SnapshotItem, confirmationCode string) (*Session, error) {
	if cartKey == "" {
		return nil, shared.NewDomainError("INVALID_CART_KEY", "Cart key cannot be empty")
	}
	if confirmationCode == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Confirmation code cannot be empty")
	}
	snapshot := make([]SnapshotItem, len(items))
	copy(snapshot, items)
	return &Session{
		ID:           uuid.New(),
		CartKey:      cartKey,
		Items:        snapshot,
		Method:       PaymentMethodNone,
		State:        StateInit,
		expectedCode: confirmationCode,
		CreatedAt:    time.Now(),
	}, nil
}

// Total sums UnitPrice * Quantity over the frozen snapshot
func (s *Session) Total() valueobject.Money {
	total := valueobject.ZeroVND()
	for _, item := range s.Items {
		line := valueobject.NewMoneyVND(item.UnitPrice).MultiplyByInt(item.Quantity)
		total = total.MustAdd(line)
	}
	return total
}

// ChooseCash switches the session to cash on delivery.
// Any linked bank details are discarded.
func (s *Session) ChooseCash() error {
	if s.State != StateCashSelected && !s.State.CanTransitionTo(StateCashSelected) {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot select cash payment in state "+s.State.String())
	}
	s.State = StateCashSelected
	s.Method = PaymentMethodCash
	s.BankID = ""
	s.BankName = ""
	s.AccountNumber = ""
	return nil
}

// CheckChooseBank reports whether bank selection is currently allowed,
// without changing the state. Callers that must do work before the
// transition, such as fetching the bank listing, check this first.
func (s *Session) CheckChooseBank() error {
	if s.State != StateBankSelected && !s.State.CanTransitionTo(StateBankSelected) {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot select bank payment in state "+s.State.String())
	}
	return nil
}

// ChooseBank switches the session to bank payment.
// Re-choosing bank is also the retry path after a failed directory fetch.
func (s *Session) ChooseBank() error {
	if err := s.CheckChooseBank(); err != nil {
		return err
	}
	s.State = StateBankSelected
	s.Method = PaymentMethodBank
	return nil
}

// LinkAccount records the chosen bank and account number.
// Both a bank and a non-empty account number are required; a validation
// failure leaves the state untouched.
func (s *Session) LinkAccount(bankID, bankName, accountNumber string) error {
	if s.State != StateBankSelected && s.State != StateAwaitingLink {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot link a bank account in state "+s.State.String())
	}
	if bankID == "" || bankName == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "A bank must be selected")
	}
	if accountNumber == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Account number cannot be empty")
	}
	s.BankID = bankID
	s.BankName = bankName
	s.AccountNumber = accountNumber
	s.State = StateAwaitingLink
	return nil
}

// PlaceOrder advances the session toward completion. Cash completes the
// order immediately; a linked bank account moves to OTP confirmation.
func (s *Session) PlaceOrder() error {
	switch s.State {
	case StateCashSelected:
		s.State = StateCompleted
		now := time.Now()
		s.CompletedAt = &now
		return nil
	case StateAwaitingLink:
		s.State = StateOTPPending
		return nil
	case StateBankSelected:
		return shared.NewDomainError("VALIDATION_ERROR", "Bank account details are required before placing the order")
	case StateInit:
		return shared.NewDomainError("VALIDATION_ERROR", "A payment method must be selected before placing the order")
	default:
		return shared.NewDomainError("INVALID_STATE",
			"Cannot place an order in state "+s.State.String())
	}
}

// ConfirmCode checks the one-time confirmation code. A mismatch keeps
// the session awaiting another attempt.
func (s *Session) ConfirmCode(code string) error {
	if s.State != StateOTPPending {
		return shared.NewDomainError("INVALID_STATE",
			"No confirmation is pending in state "+s.State.String())
	}
	if code != s.expectedCode {
		return shared.NewDomainError("INVALID_OTP", "The confirmation code is incorrect")
	}
	s.State = StateCompleted
	now := time.Now()
	s.CompletedAt = &now
	return nil
}

// IsCompleted reports whether the order has been placed successfully
func (s *Session) IsCompleted() bool {
	return s.State == StateCompleted
}
