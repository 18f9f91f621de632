package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"ecommerce-api/internal/config"
	"ecommerce-api/internal/db"
	apihttp "ecommerce-api/internal/http"
	"ecommerce-api/internal/repository"
	"ecommerce-api/internal/service"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Ping(ctx, pool); err != nil {
		logger.Fatal("db ping", zap.Error(err))
	}
	if err := db.RunMigrations(ctx, cfg.DatabaseURL); err != nil {
		logger.Fatal("db migrate", zap.Error(err))
	}

	loginWindow := time.Duration(cfg.LoginWindowMin) * time.Minute
	var (
		limiter  service.LoginRateLimiter
		denylist service.TokenDenylist
	)
	limiter = service.NewLoginRateLimiter(loginWindow, cfg.LoginMaxTries)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, logout stays stateless", zap.Error(err))
		} else {
			limiter = service.NewRedisLoginRateLimiter(redisClient, loginWindow, cfg.LoginMaxTries)
			denylist = service.NewRedisTokenDenylist(redisClient)
		}
		cancel()
	}

	tokenSvc := service.NewTokenServiceWithDenylist(
		cfg.JWTSecret,
		time.Duration(cfg.JWTTTLMinutes)*time.Minute,
		denylist,
	)

	ownerRepo := repository.NewPgOwnerRepository(pool)
	userRepo := repository.NewPgUserRepository(pool)
	ownerSvc := service.NewOwnerService(logger, ownerRepo, limiter)
	userSvc := service.NewUserService(logger, userRepo, limiter)

	cookies := apihttp.CookieSettings{Production: cfg.IsProduction()}
	ownerHandler := apihttp.NewOwnerHandler(logger, ownerSvc, tokenSvc, cookies)
	userHandler := apihttp.NewUserHandler(logger, userSvc, tokenSvc, cookies)
	sessionMW := apihttp.SessionAuthMiddleware(tokenSvc, logger)
	router := apihttp.NewRouter(logger, cfg.AllowedOrigins, ownerHandler, userHandler, sessionMW)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort), zap.String("env", cfg.AppEnv))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
