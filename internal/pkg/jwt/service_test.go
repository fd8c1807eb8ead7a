package jwt

import (
	"errors"
	"testing"
	"time"
)

func TestHMACService_RoundTrip(t *testing.T) {
	svc := NewHMACService("secret", time.Hour)

	tok, err := svc.GenerateToken(42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := svc.ValidateToken(tok)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != 42 || claims.Subject != "42" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestHMACService_Expired(t *testing.T) {
	svc := NewHMACService("secret", time.Minute)
	issued := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	tok, err := svc.GenerateToken(1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	svc.now = func() time.Time { return issued.Add(2 * time.Minute) }
	if _, err := svc.ValidateToken(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestHMACService_WrongSecret(t *testing.T) {
	tok, err := NewHMACService("secret-a", time.Hour).GenerateToken(1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := NewHMACService("secret-b", time.Hour).ValidateToken(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestHMACService_Malformed(t *testing.T) {
	svc := NewHMACService("secret", time.Hour)
	for _, tok := range []string{"", "abc", "a.b.c"} {
		if _, err := svc.ValidateToken(tok); !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("token %q: expected ErrTokenInvalid, got %v", tok, err)
		}
	}
}

func TestHMACService_RejectsBadInput(t *testing.T) {
	if _, err := NewHMACService("", time.Hour).GenerateToken(1); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected error for empty secret")
	}
	if _, err := NewHMACService("secret", time.Hour).GenerateToken(0); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected error for zero user id")
	}
}
