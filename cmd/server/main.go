package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/api/option"

	"github.com/hearthside/vesta/internal"
	"github.com/hearthside/vesta/internal/identity"
	"github.com/hearthside/vesta/internal/middleware"
	"github.com/hearthside/vesta/internal/routes"
	"github.com/hearthside/vesta/internal/service"
	"github.com/hearthside/vesta/internal/store"
	"github.com/hearthside/vesta/internal/telemetry"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize the document store and token verifier
	var (
		st       store.Client
		verifier identity.TokenVerifier
	)
	switch cfg.StoreBackend {
	case "memory":
		logger.Warn("Using in-memory store; data will not survive a restart")
		st = store.NewMemoryClient()
	default:
		logger.Info("Connecting to Firebase...", "database_url", cfg.Firebase.DatabaseURL)

		var opts []option.ClientOption
		if cfg.Firebase.CredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.Firebase.CredentialsFile))
		}

		app, err := firebase.NewApp(ctx, &firebase.Config{DatabaseURL: cfg.Firebase.DatabaseURL}, opts...)
		if err != nil {
			return fmt.Errorf("firebase initialization failed: %w", err)
		}

		st, err = store.NewFirebaseClient(ctx, app, cfg.Firebase.DatabaseURL)
		if err != nil {
			return fmt.Errorf("database connection failed: %w", err)
		}

		authClient, err := app.Auth(ctx)
		if err != nil {
			return fmt.Errorf("auth client initialization failed: %w", err)
		}
		verifier = identity.NewFirebaseVerifier(authClient)

		logger.Info("Firebase connection established")
	}

	// Initialize metrics
	metrics := middleware.NewMetrics("vesta", prometheus.DefaultRegisterer)
	business := telemetry.NewBusiness(prometheus.DefaultRegisterer)

	// Initialize services
	users := service.NewUserService(st)
	catalog := service.NewCatalogService(st)
	carts := service.NewCartService(st, catalog)
	orders := service.NewOrderService(st, carts, logger, business)
	resolver := identity.NewResolver(users, verifier, logger, business)

	r := routes.New(routes.Deps{
		Logger:         logger,
		Metrics:        metrics,
		Resolver:       resolver,
		Catalog:        catalog,
		Carts:          carts,
		Orders:         orders,
		AllowedOrigins: []string{cfg.FrontendURL},
		SecureCookie:   cfg.SessionCookieSecure,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "address", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		logger.Info("Shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
