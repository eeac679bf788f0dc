package checkout

import (
	"context"
	"crypto/subtle"
	"errors"
)

// SecretChallenge accepts checkout verification tokens matching a shared
// secret. It stands in for an external human-verification widget; the
// storefront embeds the secret in the verification step it renders.
type SecretChallenge struct {
	secret string
}

// NewSecretChallenge returns a challenge for the given secret, or nil when
// the secret is empty.
func NewSecretChallenge(secret string) *SecretChallenge {
	if secret == "" {
		return nil
	}
	return &SecretChallenge{secret: secret}
}

// Verify compares the token in constant time. A nil challenge accepts
// every token, matching the no-challenge service behavior.
func (c *SecretChallenge) Verify(_ context.Context, token string) error {
	if c == nil {
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(c.secret)) != 1 {
		return errors.New("verification token mismatch")
	}
	return nil
}
