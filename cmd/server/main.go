package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging

	"coinshop/internal/api"        // Custom package for API handlers
	"coinshop/internal/config"     // Custom package for configuration
	"coinshop/internal/db"         // Custom package for store access
	"coinshop/internal/middleware" // Custom package for middleware
	"coinshop/internal/wallet"     // Custom package for the wallet service

	// For loading .env files
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database
	gdb, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Bootstrap the admin account before serving
	if err := db.EnsureAdmin(gdb, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		logrus.Fatalf("failed to bootstrap admin: %v", err)
	}

	// Wallet service over the gorm store
	walletSvc := wallet.NewService(db.NewGormStore(gdb))

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Public routes
	r.POST("/api/auth/register", api.RegisterHandler(gdb, cfg.JWTSecret)) // Registration endpoint
	r.POST("/api/auth/login", api.LoginHandler(gdb, cfg.JWTSecret))       // Login endpoint
	r.GET("/api/items", api.ListItemsHandler(gdb, redisClient))           // Public catalog endpoint

	// Authenticated routes (protected by JWT)
	authGroup := r.Group("/api")
	authGroup.Use(middleware.JWTAuthMiddleware(gdb, cfg.JWTSecret))
	authGroup.GET("/wallet/balance", api.GetBalanceHandler(walletSvc, redisClient)) // Balance endpoint
	authGroup.POST("/wallet/deposit", api.DepositHandler(walletSvc, redisClient))   // Deposit endpoint
	authGroup.POST("/wallet/withdraw", api.WithdrawHandler(walletSvc, redisClient)) // Withdraw endpoint
	authGroup.POST("/items/:id/buy", api.BuyItemHandler(walletSvc, redisClient))    // Purchase endpoint
	authGroup.GET("/user/purchases", api.ListPurchasesHandler(walletSvc))           // Purchase history endpoint
	authGroup.GET("/user/transactions", api.ListTransactionsHandler(walletSvc))     // Ledger history endpoint

	// Admin routes (protected, admin only)
	adminGroup := r.Group("/api")
	adminGroup.Use(middleware.JWTAuthMiddleware(gdb, cfg.JWTSecret), middleware.AdminOnlyMiddleware(gdb))
	adminGroup.POST("/items", api.CreateItemHandler(gdb, redisClient))       // Create item endpoint
	adminGroup.PUT("/items/:id", api.UpdateItemHandler(gdb, redisClient))    // Update item endpoint
	adminGroup.DELETE("/items/:id", api.DeleteItemHandler(gdb, redisClient)) // Delete item endpoint
	adminGroup.GET("/admin/users", api.ListUsersHandler(gdb))                // List users endpoint
	adminGroup.GET("/admin/stats", api.GetStatsHandler(gdb))                 // Stats endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
