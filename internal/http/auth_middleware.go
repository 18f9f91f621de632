package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ecommerce-api/internal/service"
)

const sessionClaimsKey = "session_claims"

// SessionAuthMiddleware extrae el token del cookie, lo verifica y deja
// los claims en el contexto. Rechaza con los mensajes exactos del API.
func SessionAuthMiddleware(tokens *service.TokenService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokens == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			c.Abort()
			return
		}

		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: No token provided"})
			c.Abort()
			return
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			if logger != nil {
				if errors.Is(err, service.ErrTokenExpired) {
					logger.Warn("session token expired", zap.String("path", c.Request.URL.Path))
				} else {
					logger.Warn("session token rejected", zap.String("path", c.Request.URL.Path))
				}
			}
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: Invalid token"})
			c.Abort()
			return
		}

		c.Set(sessionClaimsKey, claims)
		c.Next()
	}
}

// GetSessionClaims obtiene los claims verificados desde el contexto.
func GetSessionClaims(c *gin.Context) (service.SessionClaims, bool) {
	val, ok := c.Get(sessionClaimsKey)
	if !ok {
		return service.SessionClaims{}, false
	}
	claims, ok := val.(service.SessionClaims)
	return claims, ok
}
