package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/stocksmart/backend/internal/auth"
	"github.com/stocksmart/backend/internal/config"
	"github.com/stocksmart/backend/internal/db"
	"github.com/stocksmart/backend/internal/handler"
	"github.com/stocksmart/backend/internal/service"
)

// @title StockSmart API
// @version 1.0
// @description Inventory management backend with JWT authentication.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	ctx := context.Background()

	pool, err := db.NewPostgresPool(ctx)
	if err != nil {
		log.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	database := &db.Postgres{Pool: pool}
	if err := database.EnsureUserSchema(ctx); err != nil {
		log.Fatalf("Failed to ensure user schema: %v", err)
	}
	if err := database.EnsureProductSchema(ctx); err != nil {
		log.Fatalf("Failed to ensure product schema: %v", err)
	}
	if err := database.EnsureAlertSchema(ctx); err != nil {
		log.Fatalf("Failed to ensure alert schema: %v", err)
	}

	// A missing signing key is fatal; refusing to start beats issuing
	// unverifiable tokens.
	issuer, err := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.JWTAudience)
	if err != nil {
		log.Fatalf("Failed to configure auth: %v", err)
	}

	authSvc := service.NewAuthService(database, issuer)
	alertSvc := service.NewAlertService(database)
	productSvc := service.NewProductService(database, alertSvc)
	supplierSvc := service.NewSupplierService(database)

	authHandler := handler.NewAuthHandler(authSvc, cfg.Auth)
	productHandler := handler.NewProductHandler(productSvc)
	alertHandler := handler.NewAlertHandler(alertSvc)
	supplierHandler := handler.NewSupplierHandler(supplierSvc)

	router := gin.Default()
	router.Use(handler.CORSMiddleware(cfg.CORS.AllowedOrigins, true))

	router.GET("/", handler.Root)
	router.GET("/ping", handler.Ping)
	router.GET("/openapi.json", handler.OpenAPIDoc)

	api := router.Group("/api/v1")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/refresh", authHandler.Refresh)

		api.GET("/products", productHandler.List)
		api.GET("/products/:id", productHandler.Get)
		api.GET("/suppliers", supplierHandler.List)
		api.GET("/suppliers/:id", supplierHandler.Get)
	}

	protected := router.Group("/api/v1")
	protected.Use(handler.AuthMiddleware(authSvc))
	{
		protected.POST("/auth/logout", authHandler.Logout)
		protected.GET("/auth/me", authHandler.Me)

		protected.POST("/products", productHandler.Create)
		protected.PUT("/products/:id", productHandler.Update)
		protected.DELETE("/products/:id", productHandler.Delete)

		protected.GET("/alerts", alertHandler.List)
		protected.POST("/alerts/:id/resolve", alertHandler.Resolve)

		protected.POST("/suppliers", supplierHandler.Create)
	}

	log.Printf("Listening on :%s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
