package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/careers-portal/internal/api/http"
	"github.com/spec-kit/careers-portal/internal/api/http/handlers"
	"github.com/spec-kit/careers-portal/internal/auth"
	"github.com/spec-kit/careers-portal/internal/config"
	"github.com/spec-kit/careers-portal/internal/events"
	"github.com/spec-kit/careers-portal/internal/observability"
	"github.com/spec-kit/careers-portal/internal/persistence"
	"github.com/spec-kit/careers-portal/internal/repository"
	"github.com/spec-kit/careers-portal/internal/service"
	"github.com/spec-kit/careers-portal/internal/worker"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	if cfg.Metrics.Enabled {
		observability.ServeMetrics(cfg.Metrics, logger)
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	profileRepo := repository.NewProfileRepository(pool)
	jobRepo := repository.NewJobRepository(pool)
	applicationRepo := repository.NewApplicationRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	statsService := service.NewStatsService(jobRepo, applicationRepo, redis, cfg.Auth.CacheTTL(), logger)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:    userRepo,
		ProfileRepo: profileRepo,
	})
	profileService := service.NewProfileService(profileRepo)
	jobService := service.NewJobService(service.JobDependencies{
		JobRepo:    jobRepo,
		Dispatcher: dispatcher,
		Stats:      statsService,
	})
	applicationService := service.NewApplicationService(service.ApplicationDependencies{
		ApplicationRepo: applicationRepo,
		JobRepo:         jobRepo,
		ProfileRepo:     profileRepo,
		UserRepo:        userRepo,
		Dispatcher:      dispatcher,
		Stats:           statsService,
	})
	userService := service.NewUserService(service.UserDependencies{
		UserRepo:        userRepo,
		ProfileRepo:     profileRepo,
		ApplicationRepo: applicationRepo,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notify)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo, profileRepo, cfg.Auth.CookieName)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService, cfg.Auth),
		Profile:        handlers.NewProfileHandler(profileService),
		Jobs:           handlers.NewJobsHandler(jobService, applicationService, statsService),
		Applications:   handlers.NewApplicationsHandler(applicationService),
		Admin:          handlers.NewAdminHandler(userService, applicationService),
		AuthMiddleware: authMiddleware,
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
