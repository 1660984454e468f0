package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging

	"gamewallet/internal/api"        // Custom package for API handlers
	"gamewallet/internal/config"     // Custom package for configuration
	"gamewallet/internal/middleware" // Custom package for middleware
	"gamewallet/internal/notify"     // Telegram notifier
	"gamewallet/internal/service"    // Core wallet and settlement services
	"gamewallet/internal/store"      // GORM-backed persistence
	"gamewallet/pkg/cloudinary"      // Payment-proof storage

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

	// Setup Data Source Name (DSN) and connect to the database
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
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

	// Setup Cloudinary client for payment-proof uploads
	cloud, err := cloudinary.NewClientFromParams(cfg.CloudName, cfg.CloudAPIKey, cfg.CloudAPISecret)
	if err != nil {
		logrus.Fatalf("failed to configure Cloudinary: %v", err)
	}

	// Setup Telegram notifier; nil when unconfigured, which silently
	// disables notifications without affecting wallet operations
	notifier := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)

	// Wire the core services on top of the GORM store
	ledger := store.New(db)
	walletSvc := service.NewWalletService(ledger, notifier)
	adminSvc := service.NewAdminService(ledger)

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

	// Health probe
	r.GET("/api/health", api.HealthHandler())

	// Auth routes
	authGroup := r.Group("/api/auth")
	authGroup.POST("/register", api.RegisterHandler(db)) // Registration endpoint
	authGroup.POST("/login", api.LoginHandler(db, cfg.JWTSecret))
	authGroup.GET("/me", middleware.JWTAuthMiddleware(cfg.JWTSecret), api.MeHandler(ledger))

	// Wallet routes (protected by JWT)
	walletGroup := r.Group("/api/wallet")
	walletGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	walletGroup.GET("/balance", api.GetBalanceHandler(walletSvc, redisClient))                        // Balance endpoint
	walletGroup.GET("/transactions", api.MyTransactionsHandler(walletSvc, redisClient))               // Own history endpoint
	walletGroup.POST("/deposit-request", api.DepositRequestHandler(walletSvc, cloud, redisClient))    // Deposit request endpoint
	walletGroup.POST("/withdraw-request", api.WithdrawRequestHandler(walletSvc, redisClient))         // Withdrawal request endpoint

	// Admin routes (protected, admin only)
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.AdminOnlyMiddleware(ledger))
	adminGroup.GET("/transactions", api.ListTransactionsHandler(adminSvc, redisClient)) // Full review queue
	adminGroup.GET("/withdrawals", api.ListWithdrawalsHandler(adminSvc, redisClient))   // Withdrawals only
	adminGroup.GET("/users", api.ListUsersHandler(adminSvc, redisClient))               // User list for the wallet editor
	adminGroup.PATCH("/user/:id/wallet", api.UpdateWalletHandler(adminSvc, redisClient)) // Settlement endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
