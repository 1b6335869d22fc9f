package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"krysselista-backend/internal/domain/profile"
)

func TestTokens_IssueAndParse(t *testing.T) {
	tk := NewTokens("test-secret", time.Hour)
	in := Session{UserID: "7f1d0a52-3c1e-4a55-9d6a-0c1b2d3e4f50", Role: profile.RoleEmployee, Name: "Kari"}

	raw, exp, err := tk.Issue(in)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if exp.Before(time.Now()) {
		t.Fatalf("expiry in the past: %v", exp)
	}
	got, err := tk.Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got != in {
		t.Fatalf("session = %+v, want %+v", got, in)
	}
}

func TestTokens_WrongSecret(t *testing.T) {
	raw, _, err := NewTokens("a", time.Hour).Issue(Session{UserID: "u1", Role: profile.RoleParent})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := NewTokens("b", time.Hour).Parse(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken, got %v", err)
	}
}

func TestTokens_Expired(t *testing.T) {
	tk := NewTokens("s", time.Minute)
	tk.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	raw, _, err := tk.Issue(Session{UserID: "u1", Role: profile.RoleParent})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	tk.now = time.Now
	if _, err := tk.Parse(raw); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("want ErrTokenExpired, got %v", err)
	}
}

func TestTokens_RejectsUnknownRole(t *testing.T) {
	claims := Claims{Role: "janitor", RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"}}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("s"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := NewTokens("s", time.Hour).Parse(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken, got %v", err)
	}
}

func TestSessionContext(t *testing.T) {
	if _, ok := FromContext(context.Background()); ok {
		t.Fatal("empty context should carry no session")
	}
	ctx := WithSession(context.Background(), Session{UserID: "u1", Role: profile.RoleAdmin})
	s, ok := FromContext(ctx)
	if !ok || s.UserID != "u1" || s.Role != profile.RoleAdmin {
		t.Fatalf("unexpected session: %+v ok=%v", s, ok)
	}
}
