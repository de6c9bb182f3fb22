package main

import (
	"log"
	"net/http"
	"os"

	_ "bazaar/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"bazaar/internal/auth"
	"bazaar/internal/cache"
	"bazaar/internal/config"
	"bazaar/internal/db"
	"bazaar/internal/events"
	"bazaar/internal/handler"
	"bazaar/internal/model"
	"bazaar/internal/repository"
	"bazaar/internal/router"
	"bazaar/internal/service"
)

// @title Marketplace API
// @version 1.0
// @description Marketplace REST API with product listings, orders, and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Order{},
			&model.Product{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Order{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)
	orderRepo := repository.NewOrderRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Order events are published only when brokers are configured.
	publisher := events.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer publisher.Close()

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	productService := service.NewProductService(productRepo, cacheClient)
	orderService := service.NewOrderService(orderRepo, productRepo, publisher)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService)
	orderHandler := handler.NewOrderHandler(orderService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		productHandler,
		orderHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
