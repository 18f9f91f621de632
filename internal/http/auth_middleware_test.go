package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"ecommerce-api/internal/service"
)

func protectedRouter(tokens *service.TokenService) *gin.Engine {
	r := gin.New()
	r.GET("/protected", SessionAuthMiddleware(tokens, nil), func(c *gin.Context) {
		claims, ok := GetSessionClaims(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"email": claims.Email})
	})
	return r
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body.Message
}

func TestSessionAuthMiddleware_AllowsValidCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := service.NewTokenService("secret", time.Hour)
	token, err := tokens.Issue("user@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	rec := httptest.NewRecorder()
	protectedRouter(tokens).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSessionAuthMiddleware_RejectsMissingCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := service.NewTokenService("secret", time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	protectedRouter(tokens).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != "Unauthorized: No token provided" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestSessionAuthMiddleware_RejectsResignedToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := service.NewTokenService("secret", time.Hour)
	otherTokens := service.NewTokenService("other-secret", time.Hour)
	forged, err := otherTokens.Issue("user@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: forged})
	rec := httptest.NewRecorder()
	protectedRouter(tokens).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != "Unauthorized: Invalid token" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestSessionAuthMiddleware_RejectsGarbageToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := service.NewTokenService("secret", time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "not-a-jwt"})
	rec := httptest.NewRecorder()
	protectedRouter(tokens).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != "Unauthorized: Invalid token" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestSessionAuthMiddleware_RejectsRevokedToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := service.NewTokenServiceWithDenylist("secret", time.Hour, service.NewMemoryTokenDenylist())
	token, err := tokens.Issue("user@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if err := tokens.Revoke(token); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	rec := httptest.NewRecorder()
	protectedRouter(tokens).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != "Unauthorized: Invalid token" {
		t.Fatalf("unexpected message: %q", msg)
	}
}
