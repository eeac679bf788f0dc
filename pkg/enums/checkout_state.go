package enums

import "fmt"

// CheckoutState tracks a session's progress through the checkout flow.
type CheckoutState string

const (
	CheckoutStateIdle                   CheckoutState = "idle"
	CheckoutStateAwaitingVerification   CheckoutState = "awaiting_verification"
	CheckoutStateAwaitingPaymentDetails CheckoutState = "awaiting_payment_details"
	CheckoutStateCompleted              CheckoutState = "completed"
)

var validCheckoutStates = []CheckoutState{
	CheckoutStateIdle,
	CheckoutStateAwaitingVerification,
	CheckoutStateAwaitingPaymentDetails,
	CheckoutStateCompleted,
}

// String implements fmt.Stringer.
func (c CheckoutState) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CheckoutState.
func (c CheckoutState) IsValid() bool {
	for _, candidate := range validCheckoutStates {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCheckoutState converts raw input into a CheckoutState.
func ParseCheckoutState(value string) (CheckoutState, error) {
	for _, candidate := range validCheckoutStates {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid checkout state %q", value)
}
