package checkout

import (
	"context"
	"testing"
)

func TestSecretChallengeVerify(t *testing.T) {
	challenge := NewSecretChallenge("open-sesame")
	if challenge == nil {
		t.Fatal("expected challenge for non-empty secret")
	}
	if err := challenge.Verify(context.Background(), "open-sesame"); err != nil {
		t.Fatalf("expected matching token to pass: %v", err)
	}
	if err := challenge.Verify(context.Background(), "wrong"); err == nil {
		t.Fatal("expected mismatched token to fail")
	}
}

func TestSecretChallengeEmptySecretDisables(t *testing.T) {
	if challenge := NewSecretChallenge(""); challenge != nil {
		t.Fatal("expected nil challenge for empty secret")
	}
}
