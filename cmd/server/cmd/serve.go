package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"eventcatalog/config"
	"eventcatalog/internal/adapters/auth"
	httpdelivery "eventcatalog/internal/delivery/http"
	"eventcatalog/internal/delivery/http/controllers"
	"eventcatalog/internal/domain"
	"eventcatalog/internal/metrics"
	"eventcatalog/internal/repository/memory"
	"eventcatalog/internal/repository/postgres"
	"eventcatalog/internal/services"
)

const (
	startupTimeout  = 10 * time.Second
	shutdownTimeout = 10 * time.Second
)

func newServeCommand() *cobra.Command {
	var (
		port    string
		migrate bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the HTTP server and handle graceful shutdown on SIGINT/SIGTERM.

Examples:
  # In-memory storage on the default port
  server serve

  # PostgreSQL storage, applying pending migrations first
  STORAGE_BACKEND=postgres server serve --migrate`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			if port != "" {
				cfg.Port = port
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, cfg, config.NewLogger(), migrate)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "server port (default: $PORT or 8080)")
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving (postgres backend)")
	return cmd
}

func runServer(ctx context.Context, cfg *config.Config, logger *slog.Logger, migrate bool) error {
	storage, closeStorage, err := openStorage(ctx, cfg, logger, migrate)
	if err != nil {
		return err
	}
	defer closeStorage()

	m := metrics.New()
	opts := []services.Option{
		services.WithLogger(logger),
		services.WithTransitionRecorder(m),
		services.WithMaxPageSize(cfg.MaxPageSize),
	}
	venueSvc := services.NewVenueService(storage, cfg.RequestTimeout, opts...)
	eventSvc := services.NewEventService(storage, cfg.RequestTimeout, opts...)

	jwt := auth.NewJWT(cfg.JWTSecret)
	if cfg.AdminPasswordHash == "" {
		logger.Warn("ADMIN_PASSWORD_HASH not set; admin login is disabled")
	}
	authSvc := services.NewAuthService(cfg.AdminEmail, cfg.AdminPasswordHash, auth.NewBcryptHasher(bcrypt.DefaultCost), jwt, cfg.JWTExpiry, logger)

	router := httpdelivery.NewRouter(httpdelivery.RouterConfig{
		Logger:         logger,
		Venues:         controllers.NewVenueController(logger, venueSvc),
		Events:         controllers.NewEventController(logger, eventSvc),
		Auth:           controllers.NewAuthController(logger, authSvc),
		Health:         controllers.NewHealthController(logger, storage, cfg.StorageBackend),
		Verifier:       jwt,
		Metrics:        m,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", "addr", server.Addr, "storage", cfg.StorageBackend, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// openStorage builds the configured backend. The returned func releases it.
func openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger, migrate bool) (domain.Storage, func(), error) {
	if cfg.StorageBackend != config.BackendPostgres {
		logger.Info("using in-memory storage")
		return memory.New(), func() {}, nil
	}

	if migrate {
		if err := postgres.MigrateUp(cfg.DBUrl); err != nil {
			return nil, nil, err
		}
		logger.Info("migrations applied")
	}
	openCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()
	db, err := postgres.Open(openCtx, cfg.DBUrl)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}
	logger.Info("using postgres storage")
	return postgres.NewStorage(db), func() { _ = db.Close() }, nil
}
