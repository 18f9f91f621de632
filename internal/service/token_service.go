package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenService emite y valida session tokens JWT firmados con HS256.
type TokenService struct {
	secret   []byte
	ttl      time.Duration
	issuer   string
	denylist TokenDenylist
}

// SessionClaims son los claims del session token: email + registrados.
type SessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

var (
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: "ecommerce-api",
	}
}

// NewTokenServiceWithDenylist agrega un denylist opcional para revocación en logout.
func NewTokenServiceWithDenylist(secret string, ttl time.Duration, denylist TokenDenylist) *TokenService {
	svc := NewTokenService(secret, ttl)
	svc.denylist = denylist
	return svc
}

// TTL devuelve la vida configurada de los tokens emitidos.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue firma un token nuevo para el email dado, con vigencia de s.ttl.
func (s *TokenService) Issue(email string) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrTokenInvalid
	}
	now := time.Now().UTC()
	claims := SessionClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify valida firma, vigencia e issuer, y consulta el denylist si existe.
func (s *TokenService) Verify(tokenString string) (SessionClaims, error) {
	if len(s.secret) == 0 {
		return SessionClaims{}, ErrTokenInvalid
	}
	if strings.TrimSpace(tokenString) == "" {
		return SessionClaims{}, ErrTokenInvalid
	}
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return SessionClaims{}, err
	}
	if !s.isValidClaims(claims) {
		return SessionClaims{}, ErrTokenInvalid
	}
	if s.denylist != nil && claims.ID != "" {
		revoked, err := s.denylist.Contains(claims.ID)
		if err != nil || revoked {
			return SessionClaims{}, ErrTokenInvalid
		}
	}
	return claims, nil
}

// Revoke agrega el jti del token al denylist hasta su expiración natural.
// Sin denylist configurado el logout queda stateless y esto es un no-op.
func (s *TokenService) Revoke(tokenString string) error {
	if s.denylist == nil {
		return nil
	}
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return err
	}
	if claims.ID == "" || claims.ExpiresAt == nil {
		return ErrTokenInvalid
	}
	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 {
		return nil
	}
	return s.denylist.Add(claims.ID, remaining)
}

func (s *TokenService) parseToken(tokenString string) (SessionClaims, error) {
	var claims SessionClaims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	_, err := parser.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return SessionClaims{}, ErrTokenExpired
		}
		return SessionClaims{}, ErrTokenInvalid
	}
	return claims, nil
}

func (s *TokenService) isValidClaims(claims SessionClaims) bool {
	if strings.TrimSpace(claims.Email) == "" {
		return false
	}
	return strings.TrimSpace(claims.Issuer) == s.issuer
}
