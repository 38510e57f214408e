// Package main is the entry point for the Mobilia server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mobilia/internal/cache"
	"mobilia/internal/config"
	"mobilia/internal/database"
	"mobilia/internal/handlers"
	"mobilia/internal/mailer"
	"mobilia/internal/middleware"
	"mobilia/internal/models"
	"mobilia/internal/router"
	"mobilia/internal/session"
	"mobilia/internal/storage"
	"mobilia/internal/store"
)

func main() {
	// Structured logger — text output with debug level for operations.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (Redis-compatible cache + session store).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Session store backed by Valkey. Outside development, session
	// cookies are Secure (HTTPS-only).
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)

	// Data stores.
	userStore := store.NewUserStore(db)
	categoryStore := store.NewCategoryStore(db)
	productStore := store.NewProductStore(db)
	appointmentStore := store.NewAppointmentStore(db)

	// S3-compatible object storage (optional — app works without it).
	storageClient, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3PublicURL,
	)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if storageClient != nil {
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		slog.Warn("s3 storage not configured — image uploads disabled")
	}

	// Transactional mail (optional — bookings work without it).
	mailService := mailer.New(cfg.MailAPIURL, cfg.MailAPIKey, cfg.MailFrom)
	if mailService == nil {
		slog.Warn("mail not configured — booking confirmations disabled")
	}

	// Catalog response cache in Valkey.
	catalogCache := cache.NewCatalogCache(valkeyClient, cache.DefaultCatalogTTL)

	// The single admin policy: both the page guard and the API gate use
	// this exact check, so they cannot drift apart.
	isAdmin := func(sess *session.Data) bool {
		return sess != nil && sess.Role == string(models.RoleAdmin)
	}

	// Public booking rate limit: 5 bookings per IP per minute.
	bookingLimiter := middleware.NewRateLimiter(5, time.Minute)
	defer bookingLimiter.Stop()

	// Handler groups.
	adminHandlers := handlers.NewAdmin(categoryStore, productStore, appointmentStore, storageClient, catalogCache)
	authHandlers := handlers.NewAuth(sessionStore, userStore)
	publicHandlers := handlers.NewPublic(categoryStore, productStore, appointmentStore, catalogCache, mailService, cfg.NotifyEmail)

	// Chi router with all middleware and routes.
	r := router.New(sessionStore, adminHandlers, authHandlers, publicHandlers, isAdmin, bookingLimiter)

	// HTTP server with sensible timeouts. WriteTimeout covers the backup
	// export, which can stream a large table.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
