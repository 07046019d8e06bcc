package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/savings_ledger/internal/core/ports/services"
	coreservices "github.com/SscSPs/savings_ledger/internal/core/services"
	"github.com/SscSPs/savings_ledger/internal/handlers"
	"github.com/SscSPs/savings_ledger/internal/middleware"
	"github.com/SscSPs/savings_ledger/internal/platform/config"
	"github.com/SscSPs/savings_ledger/internal/platform/database"
	"github.com/SscSPs/savings_ledger/internal/platform/lock"
	"github.com/SscSPs/savings_ledger/internal/repositories/database/pgsql"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// @title Savings Ledger API
// @version 1.0
// @description Transactional ledger for savings and deposit accounts.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	// --- Run Database Migrations ---
	if err := database.RunMigrations(ctx, cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	// Calendar lookups go through database/sql
	sqlDB, err := database.OpenSQLDB(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to open calendar database handle", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			logger.Error("Error closing calendar DB connection", slog.String("error", cerr.Error()))
		}
	}()

	locker, err := newAccountLocker(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize account locker", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit", slog.String("rate_limit", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}
	rateLimiter := limiter.New(memory.NewStore(), rate)

	serviceContainer := coreservices.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(dbPool, sqlDB), locker)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, rateLimiter)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// newAccountLocker picks the Redis locker when an address is configured.
func newAccountLocker(ctx context.Context, cfg *config.Config, logger *slog.Logger) (services.AccountLocker, error) {
	if cfg.RedisAddr == "" {
		logger.Info("Using in-process account locker")
		return lock.NewMemoryLocker(), nil
	}
	client, err := lock.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, err
	}
	logger.Info("Using Redis account locker", slog.String("redis_addr", cfg.RedisAddr))
	return lock.NewRedisLocker(client, cfg.AccountLockTTL), nil
}
