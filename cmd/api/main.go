package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/wellbeing-service/internal/api/http"
	"github.com/spec-kit/wellbeing-service/internal/api/http/handlers"
	"github.com/spec-kit/wellbeing-service/internal/auth"
	"github.com/spec-kit/wellbeing-service/internal/config"
	"github.com/spec-kit/wellbeing-service/internal/events"
	"github.com/spec-kit/wellbeing-service/internal/observability"
	"github.com/spec-kit/wellbeing-service/internal/persistence"
	"github.com/spec-kit/wellbeing-service/internal/repository"
	"github.com/spec-kit/wellbeing-service/internal/service"
	"github.com/spec-kit/wellbeing-service/internal/worker"
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

	pool := pg.PoolHandle()
	studentRepo := repository.NewStudentRepository(pool)
	counselorRepo := repository.NewCounselorRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)
	appointmentRepo := repository.NewAppointmentRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)
	feedbackRepo := repository.NewFeedbackRepository(pool)
	supportTicketRepo := repository.NewSupportTicketRepository(pool)
	resourceRepo := repository.NewResourceRepository(pool)
	eventImageRepo := repository.NewEventImageRepository(pool)
	activityStore := repository.NewActivityStore(redis.Client)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		StudentRepo:       studentRepo,
		CounselorRepo:     counselorRepo,
		PasswordResetRepo: resetRepo,
	})
	feedbackService := service.NewFeedbackService(cfg.Feedback, service.FeedbackDependencies{
		StudentRepo:   studentRepo,
		CounselorRepo: counselorRepo,
		FeedbackRepo:  feedbackRepo,
		ActivityStore: activityStore,
		Dispatcher:    dispatcher,
	}, logger)
	appointmentService := service.NewAppointmentService(appointmentRepo, counselorRepo, dispatcher)
	notificationService := service.NewNotificationService(notificationRepo, counselorRepo, dispatcher, logger)
	classifierService := service.NewClassifierService(cfg.Classifier, supportTicketRepo, dispatcher, logger)
	resourceService := service.NewResourceService(cfg.Storage, resourceRepo, logger)
	eventImageService := service.NewEventImageService(cfg.Storage, eventImageRepo, logger)

	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), studentRepo, counselorRepo)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Students:       handlers.NewStudentsHandler(authService),
		Counselors:     handlers.NewCounselorsHandler(authService),
		Feedback:       handlers.NewFeedbackHandler(feedbackService),
		Appointments:   handlers.NewAppointmentsHandler(appointmentService),
		Notifications:  handlers.NewNotificationsHandler(notificationService),
		Classifier:     handlers.NewClassifierHandler(classifierService),
		Resources:      handlers.NewResourcesHandler(resourceService),
		Events:         handlers.NewEventsHandler(eventImageService),
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
