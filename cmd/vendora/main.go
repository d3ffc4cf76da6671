// Package main is the entry point for the vendora marketplace API server.
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

	"vendora/internal/auth"
	"vendora/internal/cache"
	"vendora/internal/catalog"
	"vendora/internal/config"
	"vendora/internal/database"
	"vendora/internal/handlers"
	"vendora/internal/router"
	"vendora/internal/storage"
	"vendora/internal/store"
)

func main() {
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

	// Connect to Valkey. The cache degrades to pass-through when absent,
	// so a connection failure is a warning, not a fatal error.
	valkeyClient, err := cache.Connect(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("valkey unavailable, running without cache", "error", err)
		valkeyClient = nil
	} else {
		defer valkeyClient.Close()
	}

	appCache := cache.New(valkeyClient, cache.TTLs{
		Category: cfg.CategoryTTL,
		Product:  cfg.ProductTTL,
		Shop:     cfg.ShopTTL,
		Listing:  cfg.ListingTTL,
		Session:  cfg.SessionTTL,
	})

	// Initialize data stores.
	userStore := store.NewUserStore(db)
	shopStore := store.NewShopStore(db)
	categoryStore := store.NewCategoryStore(db)
	productStore := store.NewProductStore(db)
	variantStore := store.NewVariantStore(db)
	imageStore := store.NewImageStore(db)
	reviewStore := store.NewReviewStore(db)

	// Connect to S3-compatible object storage (optional).
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
		slog.Warn("s3 storage not configured, image uploads disabled")
	}

	// Catalog engines.
	hierarchy := catalog.NewHierarchy(categoryStore, appCache)
	search := catalog.NewSearch(productStore, variantStore, imageStore, reviewStore, hierarchy, appCache)

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)

	// Create handler groups with their dependencies.
	r := router.New(router.Deps{
		Tokens:     tokens,
		Cache:      appCache,
		Auth:       handlers.NewAuth(userStore, tokens, appCache),
		Categories: handlers.NewCategories(hierarchy),
		Products:   handlers.NewProducts(search, reviewStore),
		Shops:      handlers.NewShops(shopStore, productStore, appCache),
		Seller:     handlers.NewSeller(productStore, variantStore, imageStore, shopStore, search, appCache, storageClient),
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
