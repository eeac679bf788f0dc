package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/multierr"

	"github.com/aromacraft/storefront-backend/internal/cart"
	"github.com/aromacraft/storefront-backend/pkg/enums"
	pkgerrors "github.com/aromacraft/storefront-backend/pkg/errors"
	"github.com/aromacraft/storefront-backend/pkg/metrics"
	"github.com/aromacraft/storefront-backend/pkg/redis"
)

const (
	orderNumberPrefix = "AC"
	estimatedDelivery = "Within Office Hours"
)

type stateStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	SessionKey(sessionID, suffix string) string
}

// Challenge verifies that a human is driving the checkout. A nil challenge
// on the service skips verification entirely.
type Challenge interface {
	Verify(ctx context.Context, token string) error
}

// OrderForm is the payment-details form. Every field is required.
type OrderForm struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Address  string `json:"address" validate:"required"`
	City     string `json:"city" validate:"required"`
	State    string `json:"state" validate:"required"`
	Zip      string `json:"zip" validate:"required,max=10"`
}

// Confirmation is returned once an order completes.
type Confirmation struct {
	OrderNumber       string `json:"order_number"`
	EstimatedDelivery string `json:"estimated_delivery"`
}

// Service walks a session through the checkout flow.
type Service interface {
	State(ctx context.Context, sessionID string) (enums.CheckoutState, error)
	Begin(ctx context.Context, sessionID string) error
	Verify(ctx context.Context, sessionID, token string) error
	Submit(ctx context.Context, sessionID string, form OrderForm) (*Confirmation, error)
	Abandon(ctx context.Context, sessionID string) error
}

type service struct {
	store     stateStore
	cart      cart.Service
	challenge Challenge
	ttl       time.Duration
	validate  *validator.Validate
	metrics   *metrics.StorefrontMetrics
	now       func() time.Time
}

// NewService builds a checkout service. Challenge and metrics may be nil.
func NewService(store stateStore, cartSvc cart.Service, challenge Challenge, ttl time.Duration, m *metrics.StorefrontMetrics) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("state store required")
	}
	if cartSvc == nil {
		return nil, fmt.Errorf("cart service required")
	}
	return &service{
		store:     store,
		cart:      cartSvc,
		challenge: challenge,
		ttl:       ttl,
		validate:  validator.New(),
		metrics:   m,
		now:       time.Now,
	}, nil
}

// State returns the session's current checkout state; a session with no
// stored state is idle.
func (s *service) State(ctx context.Context, sessionID string) (enums.CheckoutState, error) {
	if sessionID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	return s.loadState(ctx, sessionID)
}

// Begin starts checkout for a non-empty cart.
func (s *service) Begin(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	lines, err := s.cart.Items(ctx, sessionID)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		s.metrics.IncCheckout("rejected_empty_cart")
		return pkgerrors.New(pkgerrors.CodeValidation, "your cart is empty")
	}

	state, err := s.loadState(ctx, sessionID)
	if err != nil {
		return err
	}
	if state != enums.CheckoutStateIdle {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "checkout already in progress")
	}

	if err := s.saveState(ctx, sessionID, enums.CheckoutStateAwaitingVerification); err != nil {
		return err
	}
	s.metrics.IncCheckout("begun")
	return nil
}

// Verify runs the human-verification challenge and advances to payment
// details. With no challenge configured the token is not inspected.
func (s *service) Verify(ctx context.Context, sessionID, token string) error {
	if sessionID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	state, err := s.loadState(ctx, sessionID)
	if err != nil {
		return err
	}
	if state != enums.CheckoutStateAwaitingVerification {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "checkout is not awaiting verification")
	}

	if s.challenge != nil {
		if err := s.challenge.Verify(ctx, token); err != nil {
			s.metrics.IncCheckout("verification_failed")
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "verification failed")
		}
	}

	if err := s.saveState(ctx, sessionID, enums.CheckoutStateAwaitingPaymentDetails); err != nil {
		return err
	}
	s.metrics.IncCheckout("verified")
	return nil
}

// Submit validates the form, clears the cart and its discount, and returns
// the order confirmation. An incomplete form leaves the state untouched.
func (s *service) Submit(ctx context.Context, sessionID string, form OrderForm) (*Confirmation, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	state, err := s.loadState(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state != enums.CheckoutStateAwaitingPaymentDetails {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "checkout is not awaiting payment details")
	}

	if err := s.validateForm(form); err != nil {
		return nil, err
	}

	// Both teardown steps run regardless of the other failing: a session
	// stuck with an empty cart in awaiting_payment_details must still be
	// able to retry the submit.
	if err := multierr.Combine(
		s.store.Del(ctx, s.store.SessionKey(sessionID, redis.SessionKeyCheckout)),
		s.cart.Clear(ctx, sessionID),
	); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "complete checkout")
	}

	s.metrics.IncCheckout("completed")
	return &Confirmation{
		OrderNumber:       fmt.Sprintf("%s%d", orderNumberPrefix, s.now().UnixMilli()),
		EstimatedDelivery: estimatedDelivery,
	}, nil
}

// Abandon drops the session back to idle from any state. The cart is left
// untouched.
func (s *service) Abandon(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if err := s.store.Del(ctx, s.store.SessionKey(sessionID, redis.SessionKeyCheckout)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reset checkout state")
	}
	s.metrics.IncCheckout("abandoned")
	return nil
}

func (s *service) validateForm(form OrderForm) error {
	// Whitespace-only fields must not pass the required tags. Checked in
	// form order so the reported field is always the first one missing.
	fields := []struct {
		label string
		value string
	}{
		{"full name", form.FullName},
		{"email", form.Email},
		{"phone", form.Phone},
		{"address", form.Address},
		{"city", form.City},
		{"state", form.State},
		{"zip", form.Zip},
	}
	for _, field := range fields {
		if strings.TrimSpace(field.value) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "please complete all fields").
				WithDetails(map[string]any{"missing": field.label})
		}
	}
	if err := s.validate.Struct(form); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "please complete all fields")
	}
	return nil
}

func (s *service) loadState(ctx context.Context, sessionID string) (enums.CheckoutState, error) {
	raw, err := s.store.Get(ctx, s.store.SessionKey(sessionID, redis.SessionKeyCheckout))
	if errors.Is(err, goredis.Nil) {
		return enums.CheckoutStateIdle, nil
	}
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load checkout state")
	}
	state, parseErr := enums.ParseCheckoutState(raw)
	if parseErr != nil {
		return enums.CheckoutStateIdle, nil
	}
	return state, nil
}

func (s *service) saveState(ctx context.Context, sessionID string, state enums.CheckoutState) error {
	key := s.store.SessionKey(sessionID, redis.SessionKeyCheckout)
	if err := s.store.Set(ctx, key, state.String(), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save checkout state")
	}
	return nil
}
