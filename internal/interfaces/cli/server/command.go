package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/marzgate/marzgate/internal/domain/superadmin"
	"github.com/marzgate/marzgate/internal/infrastructure/auth"
	"github.com/marzgate/marzgate/internal/infrastructure/config"
	"github.com/marzgate/marzgate/internal/infrastructure/database"
	"github.com/marzgate/marzgate/internal/infrastructure/migration"
	"github.com/marzgate/marzgate/internal/infrastructure/ratelimit"
	"github.com/marzgate/marzgate/internal/infrastructure/repository"
	httpRouter "github.com/marzgate/marzgate/internal/interfaces/http"
	"github.com/marzgate/marzgate/internal/shared/errors"
	"github.com/marzgate/marzgate/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the admin panel HTTP server with the specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	debugMode := env != "production"
	if err := logger.Init(&cfg.Logger, debugMode); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	log.Infow("starting server", "environment", env)

	gin.SetMode(mapEnvToGinMode(env))
	gin.DefaultWriter = io.Discard

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	if err := runMigrations(cfg); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if err := bootstrapSuperAdmin(cmd.Context(), cfg, log); err != nil {
		return fmt.Errorf("super admin bootstrap failed: %w", err)
	}

	limiter := buildRateLimiter(cfg, log)

	engine := gin.New()
	router := httpRouter.BuildRouter(engine, database.Get(), cfg, limiter, log)
	router.SetupRoutes(cfg)

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.Engine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "address", cfg.Server.GetAddr())

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

func runMigrations(cfg *config.Config) error {
	manager := migration.NewManager(cfg.Migration.Strategy, cfg.Migration.ScriptsPath)
	return manager.Migrate(database.Get(), migration.AutoMigrateModels()...)
}

// bootstrapSuperAdmin seeds the configured super admin account on first
// start. An existing account with the same username is left untouched.
func bootstrapSuperAdmin(ctx context.Context, cfg *config.Config, log logger.Interface) error {
	if cfg.Bootstrap.SuperAdminUsername == "" || cfg.Bootstrap.SuperAdminPassword == "" {
		log.Debugw("super admin bootstrap not configured, skipping")
		return nil
	}

	repo := repository.NewSuperAdminRepository(database.Get())

	if _, err := repo.GetByUsername(ctx, cfg.Bootstrap.SuperAdminUsername); err == nil {
		return nil
	} else if !errors.IsNotFoundError(err) {
		return err
	}

	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	hash, err := hasher.Hash(cfg.Bootstrap.SuperAdminPassword)
	if err != nil {
		return err
	}

	var email *string
	if cfg.Bootstrap.SuperAdminEmail != "" {
		email = &cfg.Bootstrap.SuperAdminEmail
	}

	account, err := superadmin.NewSuperAdmin(cfg.Bootstrap.SuperAdminUsername, email, hash)
	if err != nil {
		return err
	}

	if err := repo.Create(ctx, account); err != nil {
		return err
	}

	log.Infow("super admin account bootstrapped", "username", account.Username())
	return nil
}

func buildRateLimiter(cfg *config.Config, log logger.Interface) ratelimit.RateLimiter {
	if !cfg.Redis.Enabled {
		log.Infow("redis disabled, rate limiting is a no-op")
		return ratelimit.NewNoopRateLimiter()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	return ratelimit.NewRedisRateLimiter(client)
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}
