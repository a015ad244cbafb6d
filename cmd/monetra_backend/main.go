package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/SscSPs/monetra/internal/adapters/cache/rediscache"
	"github.com/SscSPs/monetra/internal/adapters/docstore/memory"
	"github.com/SscSPs/monetra/internal/adapters/docstore/pgsql"
	portsrepo "github.com/SscSPs/monetra/internal/core/ports/repositories"
	"github.com/SscSPs/monetra/internal/core/services"
	"github.com/SscSPs/monetra/internal/handlers"
	"github.com/SscSPs/monetra/internal/middleware"
	"github.com/SscSPs/monetra/internal/platform/config"
	"github.com/SscSPs/monetra/internal/repositories/docstore"
	"github.com/SscSPs/monetra/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	limitermemory "github.com/ulule/limiter/v3/drivers/store/memory"
	limiterredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

// @title Monetra API
// @version 1.0
// @description Wallet balances, transactions and reports for personal finance.

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checks := map[string]handlers.HealthCheck{}

	store, closeStore, err := openStore(ctx, cfg, logger, checks)
	if err != nil {
		logger.Error("Failed to initialize document store", slog.String("driver", cfg.StoreDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	var redisClient *redis.Client
	var walletCache portsrepo.WalletCache
	if cfg.RedisAddr != "" {
		redisClient, err = rediscache.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Error("Failed to connect to redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() {
			if cerr := redisClient.Close(); cerr != nil {
				logger.Error("Error closing redis client", slog.String("error", cerr.Error()))
			}
		}()
		walletCache = rediscache.NewWalletCache(redisClient, cfg.WalletCacheTTL)
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
		logger.Info("Wallet cache enabled.", slog.String("addr", cfg.RedisAddr), slog.Duration("ttl", cfg.WalletCacheTTL))
	}

	rateLimiter, err := newRateLimiter(cfg, redisClient)
	if err != nil {
		logger.Error("Failed to configure rate limiter", slog.String("rate", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos := docstore.NewRepositoryProvider(store, walletCache)
	serviceContainer := services.NewServiceContainer(cfg, repos)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AddAllowHeaders("Authorization", "X-Request-ID")
	corsConfig.AddExposeHeaders("X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining")

	// Global middleware (cors, logging, recovery, rate limiting)
	r.Use(
		cors.New(corsConfig),
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.RateLimit(rateLimiter),
	)

	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, checks)

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("store", cfg.StoreDriver))
	if err := runServer(ctx, r, ":"+cfg.Port, logger); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// openStore builds the configured DocumentStore and registers its health check.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger, checks map[string]handlers.HealthCheck) (portsrepo.DocumentStore, func(), error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		logger.Info("Using in-memory document store.")
		return memory.NewStore(), func() {}, nil
	}

	if cfg.RunMigrations {
		if err := pgsql.RunMigrations(cfg.DatabaseURL, logger); err != nil {
			return nil, nil, err
		}
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck, logger)
	if err != nil {
		return nil, nil, err
	}
	checks["postgres"] = dbPool.Ping
	return pgsql.NewStore(dbPool), func() { database.ClosePgxPool(dbPool, logger) }, nil
}

// newRateLimiter shares counters through redis when a client is available.
func newRateLimiter(cfg *config.Config, redisClient *redis.Client) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		return nil, err
	}

	if redisClient == nil {
		return limiter.New(limitermemory.NewStore(), rate), nil
	}
	store, err := limiterredis.NewStoreWithOptions(redisClient, limiter.StoreOptions{
		Prefix: "monetra:limiter",
	})
	if err != nil {
		return nil, err
	}
	return limiter.New(store, rate), nil
}
