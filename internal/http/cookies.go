package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionCookieName es el nombre del cookie que transporta el session token.
const SessionCookieName = "token"

// CookieSettings gobierna los atributos del cookie según el despliegue.
// En producción el frontend vive en otro origen y el cookie necesita
// SameSite=None + Secure; en desarrollo Lax sin Secure.
type CookieSettings struct {
	Production bool
}

func (s CookieSettings) apply(c *gin.Context) {
	if s.Production {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
}

// SetSession escribe el cookie HTTP-only con el token firmado.
func (s CookieSettings) SetSession(c *gin.Context, token string, maxAge int) {
	s.apply(c)
	c.SetCookie(SessionCookieName, token, maxAge, "/", "", s.Production, true)
}

// ClearSession borra el cookie de sesión en el cliente.
func (s CookieSettings) ClearSession(c *gin.Context) {
	s.apply(c)
	c.SetCookie(SessionCookieName, "", -1, "/", "", s.Production, true)
}
