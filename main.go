package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mhuescar/hostify-broadcast-message/environments"
	"github.com/mhuescar/hostify-broadcast-message/handlers"
	"github.com/mhuescar/hostify-broadcast-message/internal/catalog"
	"github.com/mhuescar/hostify-broadcast-message/internal/collector"
	"github.com/mhuescar/hostify-broadcast-message/internal/progress"
	"github.com/mhuescar/hostify-broadcast-message/internal/repository"
	"github.com/mhuescar/hostify-broadcast-message/internal/service"
	"github.com/mhuescar/hostify-broadcast-message/pkg/chekin"
	"github.com/mhuescar/hostify-broadcast-message/pkg/database"
	"github.com/mhuescar/hostify-broadcast-message/pkg/hostify"
	"github.com/mhuescar/hostify-broadcast-message/pkg/logger"
	"github.com/mhuescar/hostify-broadcast-message/pkg/redis"
	"github.com/mhuescar/hostify-broadcast-message/pkg/validator"
	"github.com/mhuescar/hostify-broadcast-message/routes"

	_ "github.com/mhuescar/hostify-broadcast-message/docs" // swagger docs
)

// @title Hostify Broadcast Message API
// @version 1.0
// @description Bulk templated guest messaging for Hostify bookings with Chekin check-in links
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email mhuescar@gmail.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @schemes http https
func main() {
	logger.Init()

	// Load config
	cfg := environments.Load()

	// Hard-fail if required secrets are missing
	if cfg.Hostify.APIKey == "" {
		logger.Fatalf("HOSTIFY_API_KEY is required but not set")
	}
	if cfg.Auth.BroadcastAPIKey == "" {
		logger.Fatalf("BROADCAST_API_KEY is required but not set")
	}

	logger.Infof("Starting Hostify Broadcast Message Service...")

	// Init DB. The audit log is optional: without DB_HOST the service
	// runs with message logging disabled.
	var db *sqlx.DB
	if cfg.Database.Host != "" {
		var err error
		db, err = database.NewMySQLDB(cfg.Database)
		if err != nil {
			logger.Fatalf("Failed to connect to database: %v", err)
		}
		if err := database.RunMigrations(db); err != nil {
			logger.Fatalf("Failed to run migrations: %v", err)
		}
	} else {
		logger.Warnf("DB_HOST not set, message audit log disabled")
	}

	// Init redis (check-in link cache)
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		var err error
		redisClient, err = redis.NewRedisClient(cfg.Redis, cfg.Broadcast.LinkCacheTTL)
		if err != nil {
			logger.Warnf("Redis not available, link caching disabled: %v", err)
			redisClient = nil
		}
	}

	// Initialize API clients
	hostifyClient := hostify.NewClient(cfg.Hostify)
	chekinClient := chekin.NewClient(cfg.Chekin)

	// Authenticate against Chekin once at startup. Failure is not
	// fatal: campaigns run without check-in links, and templates that
	// require one simply skip those reservations.
	if cfg.Chekin.APIKey == "" {
		logger.Warnf("CHEKIN_API_KEY not set, check-in links disabled")
	} else {
		authCtx, authCancel := context.WithTimeout(context.Background(), cfg.Chekin.Timeout)
		if err := chekinClient.Authenticate(authCtx); err != nil {
			logger.Warnf("Chekin authentication failed, check-in links disabled: %v", err)
		}
		authCancel()
	}

	// Initialize link resolver. A nil cache interface would still be
	// non-nil when built from a nil *redis.Client, so branch here.
	var linkResolver *service.LinkResolver
	if redisClient != nil {
		linkResolver = service.NewLinkResolver(chekinClient, redisClient)
	} else {
		linkResolver = service.NewLinkResolver(chekinClient, nil)
	}

	// Initialize repository (optional, follows the DB)
	var messageRepo *repository.MessageLogRepository
	if db != nil {
		messageRepo = repository.NewMessageLogRepository(db)
	}

	// Initialize core pipeline
	catalogResolver := catalog.NewResolver(hostifyClient, cfg.Broadcast.MaxChannelPages)
	reservationCollector := collector.NewCollector(hostifyClient, cfg.Broadcast.PageSize)
	progressStore := progress.Load(cfg.Broadcast.ProgressFile)

	var broadcastService *service.BroadcastService
	if messageRepo != nil {
		broadcastService = service.NewBroadcastService(
			catalogResolver,
			reservationCollector,
			hostifyClient,
			progressStore,
			linkResolver,
			messageRepo,
			cfg.Broadcast.PacingDelay,
		)
	} else {
		broadcastService = service.NewBroadcastService(
			catalogResolver,
			reservationCollector,
			hostifyClient,
			progressStore,
			linkResolver,
			nil,
			cfg.Broadcast.PacingDelay,
		)
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize campaign runner
	runner := service.NewCampaignRunner(broadcastService, progressStore)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, redisClient, chekinClient)
	broadcastHandler := handlers.NewBroadcastHandler(broadcastService)
	campaignHandler := handlers.NewCampaignHandler(runner, progressStore, ctx)

	var messageLogHandler *handlers.MessageLogHandler
	if messageRepo != nil {
		messageLogHandler = handlers.NewMessageLogHandler(messageRepo)
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
			"x-hbm-auth-key",
		},
	}))

	// Setup routes
	routes.RegisterRoutes(e, healthHandler, broadcastHandler, campaignHandler, messageLogHandler, cfg)

	// Start server in goroutine
	go func() {
		addr := ":" + cfg.Server.Port
		logger.Infof("Server starting on http://localhost%s", addr)
		logger.Infof("Swagger docs available at http://localhost%s/swagger/index.html", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Infof("Shutting down gracefully...")

	// Cancel context to interrupt a running campaign. Progress is
	// persisted per listing, so a restarted campaign resumes where
	// this one stopped.
	cancel()

	if runner.IsRunning() {
		logger.Infof("Waiting for campaign to stop...")
		waitCtx, waitCancel := context.WithTimeout(context.Background(), 15*time.Second)
		if err := runner.Wait(waitCtx); err != nil {
			logger.Warnf("Campaign stop timeout, forcing shutdown")
		} else {
			logger.Infof("Campaign stopped")
		}
		waitCancel()
	}

	// Shutdown HTTP server (with timeout)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	logger.Infof("Shutting down HTTP server...")
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	} else {
		logger.Infof("HTTP server stopped successfully")
	}

	if db != nil {
		logger.Infof("Closing database connection...")
		if err := db.Close(); err != nil {
			logger.Errorf("Error closing database: %v", err)
		}
	}

	if redisClient != nil {
		logger.Infof("Closing Redis connection...")
		if err := redisClient.Close(); err != nil {
			logger.Errorf("Error closing Redis: %v", err)
		}
	}

	logger.Infof("Graceful shutdown completed")
}
