package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/profiledesk/backend/internal/auth"
	"github.com/profiledesk/backend/internal/config"
	"github.com/profiledesk/backend/internal/database"
	"github.com/profiledesk/backend/internal/handlers"
	"github.com/profiledesk/backend/internal/logging"
	"github.com/profiledesk/backend/internal/middleware"
	"github.com/profiledesk/backend/internal/services"
	"github.com/profiledesk/backend/internal/storage"
)

func main() {
	if err := run(); err != nil {
		logging.Error("Application error", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
}

func run() error {
	// Initialize logger
	logger := logging.New()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if cfg.Server.Debug {
		logger.SetLevel(logging.LevelDebug)
		logging.SetDefaultLevel(logging.LevelDebug)
		logger.Debug("Debug logging enabled", map[string]interface{}{
			"env": cfg.Server.Environment,
		})
	}

	logger.Info("Starting ProfileDesk server...")

	if cfg.Admin.Password == "" {
		logger.Warn("ADMIN_PASSWORD is not set; all operator endpoints will refuse access")
	}

	// Connect to PostgreSQL
	logger.Info("Connecting to PostgreSQL", map[string]interface{}{
		"host": cfg.Database.Host,
		"port": cfg.Database.Port,
	})
	db, err := database.NewPostgresDB(cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	defer db.Close()
	logger.Info("Connected to PostgreSQL")

	// Run migrations
	logger.Info("Running database migrations...")
	migrator, err := database.NewMigrator(cfg.Database.DSN(), "migrations")
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	if err := migrator.Up(); err != nil {
		_ = migrator.Close()
		return fmt.Errorf("running migrations: %w", err)
	}
	_ = migrator.Close()
	logger.Info("Migrations completed")

	// Connect to Redis
	logger.Info("Connecting to Redis", map[string]interface{}{
		"addr": cfg.Redis.Addr(),
	})
	redisDB, err := database.NewRedisDB(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	defer func() { _ = redisDB.Close() }()
	logger.Info("Connected to Redis")

	// Initialize storage
	var store storage.BlobStore
	switch cfg.Storage.Provider {
	case "s3":
		store, err = storage.NewS3Store(context.Background(), cfg.Storage)
		if err != nil {
			return fmt.Errorf("initializing s3 storage: %w", err)
		}
		logger.Info("Using S3 blob storage", map[string]interface{}{
			"bucket": cfg.Storage.S3Bucket,
		})
	default:
		store, err = storage.NewLocalStore(cfg.Storage.LocalDir, cfg.Storage.PublicURL)
		if err != nil {
			return fmt.Errorf("initializing local storage: %w", err)
		}
		logger.Info("Using local blob storage", map[string]interface{}{
			"dir": cfg.Storage.LocalDir,
		})
	}

	// Initialize services
	dbAdapter := services.NewPoolAdapter(db.Pool)
	requestService := services.NewRequestService(dbAdapter)
	messageService := services.NewMessageService(dbAdapter)
	chatService := services.NewChatService(dbAdapter)

	gate := auth.NewGate(cfg.Admin.Password)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, redisDB)
	requestHandler := handlers.NewRequestHandler(requestService)
	messageHandler := handlers.NewMessageHandler(messageService)
	chatHandler := handlers.NewChatHandler(chatService, gate)
	uploadHandler := handlers.NewUploadHandler(store, cfg.Storage.MaxUploadBytes)

	// Initialize middleware
	adminAuth := middleware.NewAdminAuth(gate)
	cors := middleware.NewCORS()
	securityHeaders := middleware.NewSecurityHeaders(cfg.Server.Secure)
	requestLogger := middleware.NewRequestLogger(logger)
	// A valid operator credential skips the public limit so visitor spam
	// cannot throttle the operator's own chat replies.
	publicLimiter := middleware.NewRateLimiter(redisDB.Client, cfg.RateLimit.PublicLimit, cfg.RateLimit.PublicWindow, "ratelimit:public", middleware.AdminBypass(gate))

	requireAdmin := adminAuth.Require
	limitPublic := publicLimiter.Limit

	// Set up router
	mux := http.NewServeMux()

	// Health endpoints (no auth, no rate limit)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /live", healthHandler.Live)

	// Friend request endpoints: public submit, operator review
	mux.Handle("POST /requests", limitPublic(http.HandlerFunc(requestHandler.Create)))
	mux.Handle("GET /requests", requireAdmin(http.HandlerFunc(requestHandler.List)))
	mux.Handle("PUT /requests", requireAdmin(http.HandlerFunc(requestHandler.SetStatus)))
	mux.Handle("DELETE /requests", requireAdmin(http.HandlerFunc(requestHandler.Delete)))

	// Contact message endpoints: public submit, operator inbox
	mux.Handle("POST /messages", limitPublic(http.HandlerFunc(messageHandler.Create)))
	mux.Handle("GET /messages", requireAdmin(http.HandlerFunc(messageHandler.List)))
	mux.Handle("PUT /messages", requireAdmin(http.HandlerFunc(messageHandler.SetRead)))
	mux.Handle("DELETE /messages", requireAdmin(http.HandlerFunc(messageHandler.Delete)))

	// Chat endpoints: transcript is public, admin sends are gated inside
	// the handler because the route itself stays open for visitors
	mux.HandleFunc("GET /chat", chatHandler.List)
	mux.Handle("POST /chat", limitPublic(http.HandlerFunc(chatHandler.Send)))

	// Avatar upload
	mux.Handle("POST /upload", limitPublic(http.HandlerFunc(uploadHandler.Upload)))

	// Serve uploaded blobs directly when using local storage
	if cfg.Storage.Provider != "s3" {
		fs := http.FileServer(http.Dir(cfg.Storage.LocalDir))
		mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", fs))
	}

	// Build middleware chain (order matters: outermost first)
	var handler http.Handler = mux
	handler = cors.Apply(handler)
	handler = securityHeaders.Apply(handler)
	handler = requestLogger.Apply(handler)

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan bool, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("Server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Could not gracefully shutdown the server", map[string]interface{}{
				"error": err.Error(),
			})
		}
		close(done)
	}()

	logger.Info("Server listening", map[string]interface{}{
		"addr": addr,
	})
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	<-done
	logger.Info("Server stopped")
	return nil
}
