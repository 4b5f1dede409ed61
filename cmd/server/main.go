package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/agencyledger/internal/adapter/http"
	"github.com/iho/agencyledger/internal/adapter/http/handler"
	"github.com/iho/agencyledger/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/agencyledger/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/agencyledger/internal/adapter/repository/redis"
	"github.com/iho/agencyledger/internal/infrastructure/config"
	"github.com/iho/agencyledger/internal/infrastructure/logger"
	"github.com/iho/agencyledger/internal/infrastructure/metrics"
	"github.com/iho/agencyledger/internal/infrastructure/postgres"
	"github.com/iho/agencyledger/internal/infrastructure/redis"
	"github.com/iho/agencyledger/internal/usecase"
)

const limiterCleanupInterval = 10 * time.Minute

func main() {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	l := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = l

	if err := run(cfg, l); err != nil {
		l.Fatal().Err(err).Msg("server failed")
	}
}

func run(cfg *config.Config, l zerolog.Logger) error {
	ctx := context.Background()

	if cfg.RunMigrations {
		if err := postgres.NewMigrator(cfg.DatabaseURL, cfg.MigrationsPath, l).Up(); err != nil {
			return err
		}
	}

	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL:    cfg.DatabaseURL,
		MaxConns:       cfg.DatabaseMaxConns,
		MinConns:       cfg.DatabaseMinConns,
		ConnectTimeout: cfg.DatabaseTimeout,
	})
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()
	l.Info().Msg("connected to postgres")

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL, cfg.RedisTimeout)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()
	l.Info().Msg("connected to redis")

	reg := prometheus.NewRegistry()
	router, limiter, err := buildRouter(cfg, pool, redisClient, reg, l)
	if err != nil {
		return err
	}

	cleanupCtx, stopCleanup := context.WithCancel(ctx)
	defer stopCleanup()
	go cleanupLimiters(cleanupCtx, limiter, limiterCleanupInterval)

	server := newServer(cfg, router)

	errCh := make(chan error, 1)
	go func() {
		l.Info().Str("addr", server.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	l.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	l.Info().Msg("server stopped")
	return nil
}

// buildRouter wires repositories, use cases and handlers into the HTTP router.
func buildRouter(
	cfg *config.Config,
	pool *pgxpool.Pool,
	redisClient *goredis.Client,
	reg *prometheus.Registry,
	l zerolog.Logger,
) (http.Handler, *middleware.RateLimiter, error) {
	tolerance, err := cfg.Tolerance()
	if err != nil {
		return nil, nil, err
	}

	m := metrics.New(reg)

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	clientRepo := postgresRepo.NewClientRepository(pool)
	vendorRepo := postgresRepo.NewVendorRepository(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool)
	voucherRepo := postgresRepo.NewVoucherRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(l)

	cache := redisRepo.NewCache(redisClient, m)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient, m)

	// Posting engine
	balances := usecase.NewBalanceStore(accountRepo, clientRepo, vendorRepo)
	ledger := usecase.NewLedgerWriter(entryRepo, idGen)
	sequence := usecase.NewSequenceGenerator(voucherRepo, m)
	engine := usecase.NewPostingEngine(txManager, balances, ledger, sequence, idGen, tolerance, l, m)
	engine.SetTransactionTimeout(cfg.TransactionTimeout)

	// Use cases
	advanceReturns := usecase.NewAdvanceReturnUseCase(engine, postgresRepo.NewAdvanceReturnRepository(pool))
	transfers := usecase.NewBalanceTransferUseCase(engine, postgresRepo.NewBalanceTransferRepository(pool))
	expenses := usecase.NewExpenseUseCase(engine, postgresRepo.NewExpenseRepository(pool))
	investments := usecase.NewInvestmentUseCase(engine, postgresRepo.NewInvestmentRepository(pool))
	vendorAdvanceReturns := usecase.NewVendorAdvanceReturnUseCase(engine, postgresRepo.NewVendorAdvanceReturnRepository(pool))
	clientPayments := usecase.NewClientPaymentUseCase(engine, postgresRepo.NewClientPaymentRepository(pool), auditRepo, idGen, m)
	reconciliation := usecase.NewReconciliationUseCase(
		txManager, clientRepo, entryRepo, auditRepo, balances, idGen, cache, cfg.ReportCacheTTL, l, m,
	)
	reconciliation.SetTransactionTimeout(cfg.TransactionTimeout)
	clientPayments.SetReportCache(cache)

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, m)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AdvanceReturnHandler:       handler.NewAdvanceReturnHandler(advanceReturns, retrier),
		BalanceTransferHandler:     handler.NewBalanceTransferHandler(transfers, retrier),
		ExpenseHandler:             handler.NewExpenseHandler(expenses, retrier),
		InvestmentHandler:          handler.NewInvestmentHandler(investments, retrier),
		VendorAdvanceReturnHandler: handler.NewVendorAdvanceReturnHandler(vendorAdvanceReturns, retrier),
		ClientPaymentHandler:       handler.NewClientPaymentHandler(clientPayments, retrier),
		ReconciliationHandler:      handler.NewReconciliationHandler(reconciliation),
		HealthHandler: handler.NewHealthHandler(
			handler.PingFunc(pool.Ping),
			handler.PingFunc(func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }),
		),
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		RateLimiter:      limiter,
		Metrics:          m,
		MetricsHandler:   promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		Logger:           l,
	})

	return router, limiter, nil
}

func newServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      h,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}
}

// cleanupLimiters resets per-client limiters until ctx is done.
func cleanupLimiters(ctx context.Context, limiter *middleware.RateLimiter, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			limiter.CleanupLimiters()
		}
	}
}
