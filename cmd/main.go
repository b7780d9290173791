package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/minilms/backend/config"
	"github.com/minilms/backend/internal/constants"
	"github.com/minilms/backend/internal/handler"
	"github.com/minilms/backend/internal/repository"
	"github.com/minilms/backend/internal/router"
	"github.com/minilms/backend/internal/service"
	"github.com/minilms/backend/pkg/database"
	"github.com/minilms/backend/pkg/logger"
	"github.com/minilms/backend/pkg/mailer"
	"github.com/minilms/backend/pkg/otp"
	"github.com/minilms/backend/pkg/redis"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	if err := logger.InitLogger(cfg); err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()
	log := logger.GetLogger()

	log.Info("Starting Mini LMS backend",
		zap.String("environment", cfg.App.Environment),
		zap.String("port", cfg.App.Port),
	)

	db, err := database.NewPostgresDB(database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Name,
		SSLMode:         cfg.Database.SSLMode,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
	})
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.CloseDB(db); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()

	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database migrations applied")

	cache := redis.NewClient(redis.Config{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.Database,
		Enabled:      cfg.Redis.Enabled,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, log)
	defer cache.Close()

	// The OTP store rides on redis when available so step-2
	// verification works behind a load balancer; otherwise it is a
	// process-local map.
	var otpStore otp.Store
	if cache.IsEnabled() {
		otpStore = otp.NewRedisStore(cache, constants.OtpKeyPrefix)
	} else {
		otpStore = otp.NewMemoryStore()
	}

	smtp := mailer.NewSMTPMailer(mailer.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		FromName: cfg.SMTP.FromName,
	}, log)

	// Repositories
	userRepo := repository.NewUserRepository(db, log)
	courseRepo := repository.NewCourseRepository(db, log)
	moduleRepo := repository.NewModuleRepository(db, log)
	enrollmentRepo := repository.NewEnrollmentRepository(db, log)
	feedbackRepo := repository.NewFeedbackRepository(db, log)
	notificationRepo := repository.NewNotificationRepository(db, log)
	resetRepo := repository.NewPasswordResetRepository(db, log)

	// Services
	tokens := service.NewTokenService(
		cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience, cfg.JWT.Expiry, log)
	adminAuth := service.NewAdminAuthService(
		cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.OtpTTL, otpStore, smtp, tokens, log)
	authSvc := service.NewAuthService(
		userRepo, resetRepo, tokens, smtp, cfg.App.FrontendBaseURL, log)
	userSvc := service.NewUserService(userRepo, courseRepo, enrollmentRepo, log)
	courseSvc := service.NewCourseService(courseRepo, userRepo, notificationRepo, smtp, log)
	moduleSvc := service.NewModuleService(
		moduleRepo, courseRepo, enrollmentRepo, notificationRepo, smtp, cfg.Upload.Dir, log)
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, courseRepo, log)
	feedbackSvc := service.NewFeedbackService(
		feedbackRepo, courseRepo, enrollmentRepo, notificationRepo, smtp, log)
	notificationSvc := service.NewNotificationService(notificationRepo, log)

	// Handlers
	handlers := router.Handlers{
		Auth:         handler.NewAuthHandler(authSvc, adminAuth, userSvc, log),
		User:         handler.NewUserHandler(userSvc, log),
		Course:       handler.NewCourseHandler(courseSvc, log),
		Module:       handler.NewModuleHandler(moduleSvc, log),
		Enrollment:   handler.NewEnrollmentHandler(enrollmentSvc, log),
		Feedback:     handler.NewFeedbackHandler(feedbackSvc, log),
		Notification: handler.NewNotificationHandler(notificationSvc, log),
	}

	engine := router.Setup(cfg, db, cache, tokens, handlers, log)

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.App.Timeout,
		WriteTimeout: cfg.App.Timeout,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
