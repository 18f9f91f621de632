package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signTestToken(t *testing.T, secret, issuer, email string, issuedAt time.Time, ttl time.Duration) string {
	t.Helper()
	claims := SessionClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "test-jti",
			Issuer:    issuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestTokenService_IssueVerify(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Issue("owner@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Email != "owner@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.ID == "" {
		t.Fatalf("expected jti on issued token")
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		t.Fatalf("expected iat and exp claims")
	}
	life := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if life != time.Hour {
		t.Fatalf("expected 1h lifetime, got %v", life)
	}
}

func TestTokenService_AcceptsBeforeExpiryRejectsAfter(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	stillValid := signTestToken(t, "secret", "ecommerce-api", "a@b.com", time.Now().UTC().Add(-59*time.Minute), time.Hour)
	if _, err := svc.Verify(stillValid); err != nil {
		t.Fatalf("token at T+59m should verify, got %v", err)
	}

	expired := signTestToken(t, "secret", "ecommerce-api", "a@b.com", time.Now().UTC().Add(-61*time.Minute), time.Hour)
	if _, err := svc.Verify(expired); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("token at T+61m should be expired, got %v", err)
	}
}

func TestTokenService_RejectsTamperedToken(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Issue("a@b.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape")
	}
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("x", len(parts[2]))
	if _, err := svc.Verify(tampered); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for tampered signature, got %v", err)
	}
}

func TestTokenService_RejectsResignedToken(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	resigned := signTestToken(t, "other-secret", "ecommerce-api", "a@b.com", time.Now().UTC(), time.Hour)
	if _, err := svc.Verify(resigned); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for re-signed token, got %v", err)
	}
}

func TestTokenService_RejectsWrongIssuer(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token := signTestToken(t, "secret", "other-issuer", "a@b.com", time.Now().UTC(), time.Hour)
	if _, err := svc.Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for wrong issuer, got %v", err)
	}
}

func TestTokenService_RejectsEmptySecret(t *testing.T) {
	svc := NewTokenService("", time.Hour)
	if _, err := svc.Issue("a@b.com"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid on empty secret, got %v", err)
	}
}

func TestTokenService_RevokeDenylistsUntilExpiry(t *testing.T) {
	denylist := NewMemoryTokenDenylist()
	svc := NewTokenServiceWithDenylist("secret", time.Hour, denylist)

	token, err := svc.Issue("a@b.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := svc.Verify(token); err != nil {
		t.Fatalf("verify before revoke: %v", err)
	}

	if err := svc.Revoke(token); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if _, err := svc.Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected revoked token rejected, got %v", err)
	}
}

func TestTokenService_RevokeWithoutDenylistIsNoop(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Issue("a@b.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if err := svc.Revoke(token); err != nil {
		t.Fatalf("stateless revoke should be no-op, got %v", err)
	}
	if _, err := svc.Verify(token); err != nil {
		t.Fatalf("token should remain valid without denylist, got %v", err)
	}
}
