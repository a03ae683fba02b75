package service

import (
	"errors"
	"testing"
	"time"

	"github.com/autolane/marketplace-api/internal/core/domain"
)

func TestTokenCodec_RoundTrip(t *testing.T) {
	codec := NewTokenCodec("secret", time.Hour)

	token, err := codec.Issue("alice")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	subject, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if subject != "alice" {
		t.Fatalf("expected subject alice, got %q", subject)
	}
}

func TestTokenCodec_WrongKey(t *testing.T) {
	issuer := NewTokenCodec("key-one", time.Hour)
	verifier := NewTokenCodec("key-two", time.Hour)

	token, err := issuer.Issue("alice")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := verifier.Verify(token); !errors.Is(err, domain.ErrTokenSignatureInvalid) {
		t.Fatalf("expected ErrTokenSignatureInvalid, got %v", err)
	}
}

func TestTokenCodec_Expired(t *testing.T) {
	codec := NewTokenCodec("secret", time.Minute)
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	codec.now = func() time.Time { return issued }

	token, err := codec.Issue("bob")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	codec.now = func() time.Time { return issued.Add(2 * time.Minute) }
	if _, err := codec.Verify(token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

// A token whose expiration equals the current instant is already expired:
// validity is exclusive of the expiration time.
func TestTokenCodec_ExpiryBoundaryIsExclusive(t *testing.T) {
	codec := NewTokenCodec("secret", time.Minute)
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	codec.now = func() time.Time { return issued }

	token, err := codec.Issue("bob")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	codec.now = func() time.Time { return issued.Add(time.Minute) }
	if _, err := codec.Verify(token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired at exact expiry, got %v", err)
	}

	codec.now = func() time.Time { return issued.Add(time.Minute - time.Second) }
	if _, err := codec.Verify(token); err != nil {
		t.Fatalf("expected token still valid just before expiry, got %v", err)
	}
}

func TestTokenCodec_TamperedSignature(t *testing.T) {
	codec := NewTokenCodec("secret", time.Hour)

	token, err := codec.Issue("alice")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	// Flip the last character of the signature.
	last := token[len(token)-1]
	flipped := byte('A')
	if last == 'A' {
		flipped = 'B'
	}
	tampered := token[:len(token)-1] + string(flipped)

	if _, err := codec.Verify(tampered); !errors.Is(err, domain.ErrTokenSignatureInvalid) {
		t.Fatalf("expected ErrTokenSignatureInvalid, got %v", err)
	}
}

func TestTokenCodec_Malformed(t *testing.T) {
	codec := NewTokenCodec("secret", time.Hour)

	for _, tok := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		if _, err := codec.Verify(tok); !errors.Is(err, domain.ErrTokenMalformed) {
			t.Fatalf("token %q: expected ErrTokenMalformed, got %v", tok, err)
		}
	}
}

func TestTokenCodec_DefaultTTL(t *testing.T) {
	codec := NewTokenCodec("secret", 0)
	if codec.ttl != 24*time.Hour {
		t.Fatalf("expected 24h default ttl, got %v", codec.ttl)
	}
}
