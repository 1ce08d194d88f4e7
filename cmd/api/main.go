package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/admin-portal/internal/api/http"
	"github.com/spec-kit/admin-portal/internal/api/http/handlers"
	"github.com/spec-kit/admin-portal/internal/auth"
	"github.com/spec-kit/admin-portal/internal/config"
	"github.com/spec-kit/admin-portal/internal/events"
	"github.com/spec-kit/admin-portal/internal/gateway"
	"github.com/spec-kit/admin-portal/internal/observability"
	"github.com/spec-kit/admin-portal/internal/persistence"
	"github.com/spec-kit/admin-portal/internal/repository"
	"github.com/spec-kit/admin-portal/internal/service"
	"github.com/spec-kit/admin-portal/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if cfg.Auth.JWTSecret == "dev-secret" {
		logger.Warn("AUTH_JWT_SECRET not set; using the development signing secret")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations && pg.Configured() {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	lookup, err := principalLookup(cfg, pg)
	if err != nil {
		logger.Fatal("failed to build admin user store", zap.Error(err))
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(dispatcher, logger)

	var auditHandler *handlers.AuditHandler
	if pg.Configured() {
		auditRepo := repository.NewAuditRepository(pg.PoolHandle())
		worker.StartAuditStore(dispatcher, auditRepo)
		auditHandler = handlers.NewAuditHandler(auditRepo)
	} else {
		auditHandler = handlers.NewAuditHandler(nil)
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret)
	authService, err := service.NewAuthService(service.AuthDependencies{
		Lookup:     lookup,
		Tokens:     tokens,
		Limiter:    loginLimiter(cfg, redis),
		Dispatcher: dispatcher,
		BcryptCost: cfg.Auth.BcryptCost,
		Metrics:    metrics,
		Logger:     logger,
	})
	if err != nil {
		logger.Fatal("failed to build auth service", zap.Error(err))
	}
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), logger)

	upstream := gateway.NewClient(cfg.Upstream, gateway.WithMetrics(metrics))
	ticketService := service.NewTicketService(upstream, dispatcher, logger)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:      logger,
		Metrics:     metrics,
		Timeout:     cfg.App.RequestTimeout(),
		CORSOrigins: cfg.App.CORSOrigins,
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, upstream, pg, redis),
		Auth:           handlers.NewAuthHandler(authService, cfg.Auth.CookieSecure),
		Customers:      handlers.NewCustomersHandler(upstream),
		Devices:        handlers.NewDevicesHandler(upstream),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Audit:          auditHandler,
		AuthMiddleware: authMiddleware,
		Metrics:        metrics,
	})

	go func() {
		logger.Info("listening",
			zap.String("addr", cfg.App.Addr()),
			zap.String("upstream", cfg.Upstream.BaseURL),
			zap.String("principal_store", cfg.Auth.PrincipalStore))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func principalLookup(cfg *config.Config, pg *persistence.Postgres) (repository.PrincipalLookup, error) {
	if cfg.Auth.PrincipalStore == config.PrincipalStorePostgres {
		return repository.NewPostgresPrincipalStore(pg.PoolHandle()), nil
	}
	return repository.NewStaticPrincipalStore(repository.DemoUsers(), cfg.Auth.BcryptCost)
}

func loginLimiter(cfg *config.Config, redis *persistence.Redis) auth.LoginLimiter {
	if !redis.Configured() {
		return auth.NoopLoginLimiter{}
	}
	return auth.NewRedisLoginLimiter(redis.Client, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow())
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
