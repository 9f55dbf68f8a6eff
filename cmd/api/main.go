package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/user-directory/internal/api/http"
	"github.com/spec-kit/user-directory/internal/api/http/handlers"
	"github.com/spec-kit/user-directory/internal/auth"
	"github.com/spec-kit/user-directory/internal/config"
	"github.com/spec-kit/user-directory/internal/events"
	"github.com/spec-kit/user-directory/internal/observability"
	"github.com/spec-kit/user-directory/internal/persistence"
	"github.com/spec-kit/user-directory/internal/ratelimit"
	"github.com/spec-kit/user-directory/internal/repository"
	"github.com/spec-kit/user-directory/internal/service"
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

	metrics := observability.NewMetrics()

	userRepoOpts := []repository.UserRepositoryOption{
		repository.WithLatency(
			time.Duration(cfg.Store.LatencyMinMillis)*time.Millisecond,
			time.Duration(cfg.Store.LatencyMaxMillis)*time.Millisecond,
		),
	}
	if cfg.Store.Seed {
		userRepoOpts = append(userRepoOpts, repository.WithSeedUsers())
	}
	userRepo := repository.NewMemoryUserRepository(userRepoOpts...)
	contactRepo := repository.NewMemoryContactRepository()

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification, cfg.App.IsProduction())
	notificationService.RegisterHandlers()

	userService := service.NewUserService(userRepo)
	contactService := service.NewContactService(contactRepo)

	authMiddleware := auth.NewAuthMiddleware(cfg.Auth.APIKey, cfg.App.IsProduction(), logger)

	var limiterStore ratelimit.Store
	if cfg.RateLimit.Backend == "redis" {
		redisClient := persistence.NewRedis(cfg.Redis, logger)
		defer redisClient.Close()
		limiterStore = ratelimit.NewRedisStore(redisClient.Client, cfg.RateLimit.MaxRequests, cfg.RateLimit.Window())
	} else {
		limiterStore = ratelimit.NewMemoryStore(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window())
	}
	rateLimitMiddleware := ratelimit.Middleware(limiterStore, cfg.RateLimit.MaxRequests, cfg.RateLimit.Window(), logger)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.IsProduction())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, cfg.App.Env)
	usersHandler := handlers.NewUsersHandler(userService, dispatcher)
	contactsHandler := handlers.NewContactsHandler(contactService)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         healthHandler,
		Users:          usersHandler,
		Contacts:       contactsHandler,
		AuthMiddleware: authMiddleware,
		RateLimit:      rateLimitMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
