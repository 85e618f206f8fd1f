package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/tradejournal/internal/adapter/http"
	"github.com/iho/tradejournal/internal/adapter/http/handler"
	"github.com/iho/tradejournal/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/tradejournal/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/tradejournal/internal/adapter/repository/redis"
	"github.com/iho/tradejournal/internal/infrastructure/auth"
	"github.com/iho/tradejournal/internal/infrastructure/config"
	"github.com/iho/tradejournal/internal/infrastructure/eventpublisher"
	"github.com/iho/tradejournal/internal/infrastructure/logger"
	"github.com/iho/tradejournal/internal/infrastructure/logging"
	"github.com/iho/tradejournal/internal/infrastructure/metrics"
	"github.com/iho/tradejournal/internal/infrastructure/postgres"
	"github.com/iho/tradejournal/internal/infrastructure/redis"
	"github.com/iho/tradejournal/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup loggers. Components built on zerolog share appLogger;
	// slog-based components go through the default slog logger.
	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger
	slog.SetDefault(logging.New(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat).Logger)

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations when a migrations path is configured
	if path := resolveMigrationsPath(); path != "" {
		if err := postgres.RunMigrations(cfg.DatabaseURL, path); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	journalRepo := postgresRepo.NewJournalRepository(pool)
	tradeRepo := postgresRepo.NewTradeRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier()

	// Initialize use cases
	appMetrics := metrics.New()
	userUC := usecase.NewUserUseCase(userRepo, auditRepo, idGen, appMetrics)
	journalUC := usecase.NewJournalUseCase(txManager, journalRepo, outboxRepo, auditRepo, cache, idGen, appMetrics)
	tradeUC := usecase.NewTradeUseCase(txManager, journalRepo, tradeRepo, outboxRepo, auditRepo, cache, idGen, appMetrics)
	statsUC := usecase.NewStatsUseCase(journalRepo, appMetrics)
	auditUC := usecase.NewAuditUseCase(auditRepo)

	// Initialize handlers
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	authHandler := handler.NewAuthHandler(userUC, jwtManager)
	journalHandler := handler.NewJournalHandler(journalUC)
	tradeHandler := handler.NewTradeHandler(tradeUC)
	statsHandler := handler.NewStatsHandler(statsUC)
	auditHandler := handler.NewAuditHandler(auditUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AuthHandler:      authHandler,
		JournalHandler:   journalHandler,
		TradeHandler:     tradeHandler,
		StatsHandler:     statsHandler,
		AuditHandler:     auditHandler,
		HealthHandler:    healthHandler,
		JWTManager:       jwtManager,
		IdempotencyStore: idempotencyStore,
		RateLimiter:      middleware.NewRateLimiter(float64(cfg.RateLimitRPS), cfg.RateLimitBurst),
		Logging:          middleware.NewLoggingMiddleware(appLogger),
	})

	// Start outbox publisher
	publisherCtx, stopPublisher := context.WithCancel(ctx)
	defer stopPublisher()

	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  eventpublisher.NewLogPublisher(nil),
		Retrier:    retrier,
		BatchSize:  cfg.OutboxBatchSize,
		Interval:   cfg.OutboxPollInterval,
		Retention:  cfg.OutboxRetention,
	})
	go func() {
		if err := publisher.Start(publisherCtx); err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("event publisher stopped")
		}
	}()

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	stopPublisher()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// resolveMigrationsPath returns the migrations directory, or empty to
// skip running migrations on startup.
func resolveMigrationsPath() string {
	return os.Getenv("MIGRATIONS_PATH")
}
