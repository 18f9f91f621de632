package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ecommerce-api/internal/service"
)

// UserHandler mantiene dependencias para endpoints de usuarios.
type UserHandler struct {
	logger   *zap.Logger
	userServ *service.UserService
	tokens   *service.TokenService
	cookies  CookieSettings
}

// NewUserHandler crea una instancia de UserHandler con dependencias necesarias.
func NewUserHandler(logger *zap.Logger, userServ *service.UserService, tokens *service.TokenService, cookies CookieSettings) *UserHandler {
	return &UserHandler{
		logger:   logger,
		userServ: userServ,
		tokens:   tokens,
		cookies:  cookies,
	}
}

// Register maneja POST /users/register.
func (h *UserHandler) Register(c *gin.Context) {
	var req struct {
		Firstname string `json:"firstname" binding:"required"`
		Lastname  string `json:"lastname" binding:"required"`
		Email     string `json:"email" binding:"required,email"`
		Contact   string `json:"contact"`
		Password  string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid user register request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": bindErrorMessage(err)})
		return
	}

	user, err := h.userServ.Register(c.Request.Context(), service.RegisterUserInput{
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Email:     req.Email,
		Contact:   req.Contact,
		Password:  req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserExists):
			c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
			return
		case errors.Is(err, service.ErrMissingFields):
			c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
			return
		default:
			h.logger.Error("user register failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
	}

	token, err := h.tokens.Issue(user.Email)
	if err != nil {
		h.logger.Error("token issue failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	h.cookies.SetSession(c, token, int(h.tokens.TTL().Seconds()))

	// El SPA también guarda el token del body en localStorage.
	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "user": user, "token": token})
}

// Login maneja POST /users/login.
func (h *UserHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid user login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}

	user, err := h.userServ.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
			return
		case errors.Is(err, service.ErrMissingFields):
			c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
			return
		case errors.Is(err, service.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"message": "Too many login attempts"})
			return
		default:
			h.logger.Error("user login failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
	}

	token, err := h.tokens.Issue(user.Email)
	if err != nil {
		h.logger.Error("token issue failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	h.cookies.SetSession(c, token, int(h.tokens.TTL().Seconds()))

	c.JSON(http.StatusOK, gin.H{"message": "User logged in successfully", "user": user, "token": token})
}

// Logout maneja POST /users/logout.
func (h *UserHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(SessionCookieName); err == nil && token != "" {
		if err := h.tokens.Revoke(token); err != nil {
			h.logger.Warn("token revoke failed", zap.Error(err))
		}
	}
	h.cookies.ClearSession(c)
	c.JSON(http.StatusOK, gin.H{"message": "User logged out successfully"})
}

// Profile maneja GET /users/profile, detrás del middleware de sesión.
// Devuelve la identidad decodificada del token, no el body del request.
func (h *UserHandler) Profile(c *gin.Context) {
	claims, ok := GetSessionClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	if _, err := h.userServ.Profile(c.Request.Context(), claims.Email); err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		h.logger.Error("user profile fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile data", "user": claims})
}
