package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Ylandolsi/ExpenseTrackerApi/config"
	"github.com/Ylandolsi/ExpenseTrackerApi/db"
	authhandler "github.com/Ylandolsi/ExpenseTrackerApi/internal/auth/handler"
	authrepo "github.com/Ylandolsi/ExpenseTrackerApi/internal/auth/repository/postgres"
	authservice "github.com/Ylandolsi/ExpenseTrackerApi/internal/auth/service"
	"github.com/Ylandolsi/ExpenseTrackerApi/internal/expense/cache"
	expensehandler "github.com/Ylandolsi/ExpenseTrackerApi/internal/expense/handler"
	expenserepo "github.com/Ylandolsi/ExpenseTrackerApi/internal/expense/repository/postgres"
	expenseservice "github.com/Ylandolsi/ExpenseTrackerApi/internal/expense/service"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	if err := db.RunMigrations(ctx, cfg.DBURL); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	dbPool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		log.Fatalf("postgres connection failed: %v", err)
	}
	defer dbPool.Close()

	redisClient, err := db.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis connection failed: %v", err)
	}
	defer redisClient.Close()

	userRepo := authrepo.NewUserRepository(dbPool)
	refreshTokenRepo := authrepo.NewRefreshTokenRepository(dbPool)
	expenseRepo := expenserepo.NewExpenseRepository(dbPool)

	tokenService := authservice.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience,
		cfg.AccessExpiryMin, cfg.RefreshExpiryMin)
	authService := authservice.NewAuthService(userRepo, refreshTokenRepo, tokenService,
		cfg.MaxActiveRefreshTokens)
	userService := authservice.NewUserService(userRepo)
	expenseService := expenseservice.NewExpenseService(expenseRepo,
		cache.NewRedisCache(redisClient), time.Duration(cfg.CacheTTLSeconds)*time.Second)

	authHandler := authhandler.NewAuthHandler(authService, userService)
	expenseHandler := expensehandler.NewExpenseHandler(expenseService)

	app := fiber.New()
	authhandler.RegisterRoutes(app, authHandler)
	expensehandler.RegisterRoutes(app, expenseHandler, tokenService)

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
