package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	allowedOrigins []string,
	ownerH *OwnerHandler,
	userH *UserHandler,
	sessionMW gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y CORS con credenciales.
	// El allow-list es explícito porque los requests llevan cookies.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.GET("/", HealthHandler)

	owner := r.Group("/owner")
	owner.POST("/register", ownerH.Register)
	owner.POST("/login", ownerH.Login)
	owner.POST("/logout", ownerH.Logout)
	owner.GET("/profile", sessionMW, ownerH.Profile)

	users := r.Group("/users")
	users.POST("/register", userH.Register)
	users.POST("/login", userH.Login)
	users.POST("/logout", userH.Logout)
	users.GET("/profile", sessionMW, userH.Profile)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
