package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging

	"election_billing/internal/api"        // Custom package for API handlers
	"election_billing/internal/config"     // Custom package for configuration
	"election_billing/internal/db"         // Custom package for database setup
	"election_billing/internal/mailer"     // Email dispatch collaborator
	"election_billing/internal/middleware" // Custom package for middleware
	"election_billing/internal/pdf"        // PDF rendering collaborator
	"election_billing/internal/service"    // Domain services
	"election_billing/internal/session"    // Server-side sessions
	"election_billing/internal/sheets"     // Google Sheets import
	"election_billing/internal/tracking"   // External delivery tracker

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup Data Source Name (DSN) and connect to the database
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	gormDB, err := db.Open(dsn)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Collaborators
	renderer := pdf.NewChromeRenderer(cfg.ChromeURL)
	defer renderer.Close()
	mail := &mailer.SMTPMailer{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}
	tracker := tracking.NewClient(cfg.TrackingURL, cfg.TrackingKey)

	// Domain services
	sessions := session.NewRedisStore(redisClient, cfg.SessionTTL)
	billService := service.NewBillService(gormDB, renderer, mail, tracker, cfg.DocumentDir)
	userService := service.NewUserService(gormDB, sheets.NewFetcher())
	incomeService := service.NewIncomeService(gormDB, renderer)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.New()
	r.Use(gin.Logger(), gin.CustomRecovery(api.RecoveryHandler))
	api.RegisterValidators()

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	requireLogin := middleware.RequireLogin(cfg.SessionSecret, sessions)
	requireLoginView := middleware.RequireLoginView(cfg.SessionSecret, sessions)
	adminOnly := middleware.AdminOnly(gormDB)
	ttlSeconds := int(cfg.SessionTTL.Seconds())

	// Entry point and auth
	r.GET("/", api.IndexHandler())
	r.POST("/login", api.LoginHandler(userService, sessions, cfg.SessionSecret, ttlSeconds))
	r.GET("/logout", api.LogoutHandler(sessions, cfg.SessionSecret))

	// Authenticated views
	views := r.Group("/", requireLoginView)
	views.GET("/main", api.MainMenuHandler(gormDB))
	views.GET("/bill-tracking", api.BillTrackingHandler(billService, gormDB, redisClient))
	views.GET("/my-income", api.MyIncomeHandler(incomeService, gormDB))
	views.GET("/profile", api.ProfileHandler(gormDB))

	// JSON API (request diagnostics recorded per call)
	apiGroup := r.Group("/api", middleware.ApiLogger(gormDB), requireLogin)
	apiGroup.POST("/bills", api.CreateBillHandler(billService, gormDB, redisClient))
	apiGroup.POST("/bills/:id/send", api.SendBillHandler(billService, gormDB, redisClient))
	apiGroup.GET("/delivery/:tracking_number/status", api.DeliveryStatusHandler(billService))
	apiGroup.GET("/income/report", api.IncomeReportHandler(incomeService, gormDB))
	apiGroup.POST("/profile/change-password", api.ChangePasswordHandler(userService, gormDB))

	// Admin management (protected, admin only)
	r.GET("/admin/users", requireLoginView, adminOnly, api.ListUsersHandler(userService))
	adminAPI := apiGroup.Group("/admin", adminOnly)
	adminAPI.POST("/users", api.CreateUserHandler(userService))
	adminAPI.POST("/users/bulk", api.BulkCreateUsersHandler(userService))
	adminAPI.POST("/sheets/import", api.SheetImportHandler(userService))

	// Unrouted paths get the dedicated 404 view
	r.NoRoute(api.NotFoundHandler())

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
