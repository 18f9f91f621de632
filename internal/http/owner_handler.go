package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ecommerce-api/internal/service"
)

// OwnerHandler mantiene dependencias para endpoints del owner.
type OwnerHandler struct {
	logger    *zap.Logger
	ownerServ *service.OwnerService
	tokens    *service.TokenService
	cookies   CookieSettings
}

// NewOwnerHandler crea una instancia de OwnerHandler con dependencias necesarias.
func NewOwnerHandler(logger *zap.Logger, ownerServ *service.OwnerService, tokens *service.TokenService, cookies CookieSettings) *OwnerHandler {
	return &OwnerHandler{
		logger:    logger,
		ownerServ: ownerServ,
		tokens:    tokens,
		cookies:   cookies,
	}
}

// Register maneja POST /owner/register.
func (h *OwnerHandler) Register(c *gin.Context) {
	var req struct {
		Firstname string `json:"firstname" binding:"required"`
		Lastname  string `json:"lastname" binding:"required"`
		Email     string `json:"email" binding:"required,email"`
		Contact   string `json:"contact" binding:"required"`
		Password  string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid owner register request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": bindErrorMessage(err)})
		return
	}

	owner, err := h.ownerServ.Register(c.Request.Context(), service.RegisterOwnerInput{
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Email:     req.Email,
		Contact:   req.Contact,
		Password:  req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOwnerExists):
			// Ya hay un owner: el registro redirige al login en vez de fallar.
			c.Redirect(http.StatusFound, "/owner/login")
			return
		case errors.Is(err, service.ErrMissingFields):
			c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
			return
		default:
			h.logger.Error("owner register failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
	}

	token, err := h.tokens.Issue(owner.Email)
	if err != nil {
		h.logger.Error("token issue failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	h.cookies.SetSession(c, token, int(h.tokens.TTL().Seconds()))

	c.JSON(http.StatusCreated, gin.H{"message": "Owner registered successfully", "owner": owner})
}

// Login maneja POST /owner/login.
func (h *OwnerHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid owner login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}

	owner, err := h.ownerServ.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid email or password"})
			return
		case errors.Is(err, service.ErrMissingFields):
			c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
			return
		case errors.Is(err, service.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"message": "Too many login attempts"})
			return
		default:
			h.logger.Error("owner login failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
	}

	token, err := h.tokens.Issue(owner.Email)
	if err != nil {
		h.logger.Error("token issue failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	h.cookies.SetSession(c, token, int(h.tokens.TTL().Seconds()))

	c.JSON(http.StatusOK, gin.H{"message": "Owner logged in successfully", "owner": owner})
}

// Logout maneja POST /owner/logout.
func (h *OwnerHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(SessionCookieName); err == nil && token != "" {
		// Revocación best-effort: sin denylist configurado el token
		// capturado sigue siendo válido hasta su expiración natural.
		if err := h.tokens.Revoke(token); err != nil {
			h.logger.Warn("token revoke failed", zap.Error(err))
		}
	}
	h.cookies.ClearSession(c)
	c.JSON(http.StatusOK, gin.H{"message": "Owner logged out successfully"})
}

// Profile maneja GET /owner/profile, detrás del middleware de sesión.
func (h *OwnerHandler) Profile(c *gin.Context) {
	claims, ok := GetSessionClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	owner, err := h.ownerServ.Profile(c.Request.Context(), claims.Email)
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			// Token válido pero la cuenta referida ya no existe.
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		h.logger.Error("owner profile fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Owner profile fetched successfully", "owner": owner})
}
