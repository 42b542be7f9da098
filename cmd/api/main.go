package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/comprende-ia/comprende-api/internal/config"
	"github.com/comprende-ia/comprende-api/internal/database"
	"github.com/comprende-ia/comprende-api/internal/handler"
	"github.com/comprende-ia/comprende-api/internal/middleware"
	"github.com/comprende-ia/comprende-api/internal/models"
	"github.com/comprende-ia/comprende-api/internal/repository"
	"github.com/comprende-ia/comprende-api/internal/router"
	"github.com/comprende-ia/comprende-api/internal/service"
	"github.com/comprende-ia/comprende-api/pkg/ai"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Text{},
		&models.Fallacy{},
		&models.Question{},
		&models.Attempt{},
		&models.AttemptAnswer{},
		&models.Enrollment{},
		&models.TextRecommendation{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	}

	var notifier service.AttemptNotifier = service.NoopNotifier{}
	if cfg.NATSURL != "" {
		natsConn, err := database.ConnectNATS(cfg.NATSURL)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Drain()
		notifier = service.NewNATSNotifier(natsConn, logger)
	}

	gateway, err := ai.NewOpenAIGateway(ai.OpenAIConfig{
		APIKey:         cfg.OpenAIAPIKey,
		Model:          cfg.AIModel,
		RequestTimeout: cfg.AIRequestTimeout,
		Logger:         logger,
	})
	if err != nil {
		log.Fatalf("failed to create ai gateway: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	textRepo := repository.NewTextRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	recommendationRepo := repository.NewRecommendationRepository(db)

	authService := service.NewAuthService(userRepo, validate, cfg.JWTSecret, cfg.TokenTTL, logger)
	textService := service.NewTextService(textRepo, enrollmentRepo, gateway, validate, cfg.MaxUploadBytes, logger)
	questionService := service.NewQuestionService(questionRepo, textRepo, gateway, logger)
	progressService := service.NewProgressService(attemptRepo, enrollmentRepo, redisClient, cfg.ProgressCacheTTL, logger)
	attemptService := service.NewAttemptService(attemptRepo, enrollmentRepo, gateway, notifier, progressService, validate, cfg.AIRequestTimeout, cfg.NotificationTimeout, logger)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, userRepo, validate, logger)
	recommendationService := service.NewRecommendationService(recommendationRepo, enrollmentRepo, textRepo, validate, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		BodyLimit:    int(cfg.MaxUploadBytes),
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		HealthHandler:  handler.NewHealthHandler(cfg.AppName),
		AuthHandler:    handler.NewAuthHandler(authService, logger),
		TextHandler:    handler.NewTextHandler(textService, questionService, logger),
		AttemptHandler: handler.NewAttemptHandler(attemptService, logger),
		StudentHandler: handler.NewStudentHandler(progressService, recommendationService, logger),
		TeacherHandler: handler.NewTeacherHandler(enrollmentService, progressService, recommendationService, attemptService, textService, logger),
		JWTMiddleware:  middleware.JWTProtected(cfg.JWTSecret),
		RequireStudent: middleware.RequireRole(userRepo, models.RoleStudent),
		RequireTeacher: middleware.RequireRole(userRepo, models.RoleTeacher),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
