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
	"github.com/rs/zerolog"

	"github.com/brightpath-edu/report-card-api/internal/config"
	"github.com/brightpath-edu/report-card-api/internal/database"
	"github.com/brightpath-edu/report-card-api/internal/handler"
	"github.com/brightpath-edu/report-card-api/internal/middleware"
	"github.com/brightpath-edu/report-card-api/internal/models"
	"github.com/brightpath-edu/report-card-api/internal/repository"
	"github.com/brightpath-edu/report-card-api/internal/router"
	"github.com/brightpath-edu/report-card-api/internal/service"
	"github.com/brightpath-edu/report-card-api/pkg/reportpdf"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.Connect(cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Student{}, &models.GradeEntry{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	studentRepo := repository.NewStudentRepository(db)
	gradeRepo := repository.NewGradeEntryRepository(db)

	exporter := reportpdf.New(cfg.SchoolName)

	credentials := service.StaticCredentials{}
	if cfg.AdminUser != "" && cfg.AdminHash != "" {
		credentials[cfg.AdminUser] = service.Credential{
			Username:     cfg.AdminUser,
			PasswordHash: cfg.AdminHash,
			Role:         "admin",
		}
	}

	enrollmentService := service.NewEnrollmentService(studentRepo, gradeRepo, validate, logger)
	reportService := service.NewReportService(studentRepo, gradeRepo, exporter, logger)
	authService := service.NewAuthService(credentials, cfg.JWTSecret, cfg.TokenTTL, logger)
	seedService := service.NewSeedService(studentRepo, gradeRepo, cfg.SeedEnabled, cfg.SeedToken, logger)

	studentHandler := handler.NewStudentHandler(enrollmentService, reportService, logger)
	reportHandler := handler.NewReportHandler(reportService, logger)
	authHandler := handler.NewAuthHandler(authService, logger)
	seedHandler := handler.NewSeedHandler(seedService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		StudentHandler: studentHandler,
		ReportHandler:  reportHandler,
		AuthHandler:    authHandler,
		SeedHandler:    seedHandler,
		JWTMiddleware:  middleware.JWTProtected(cfg.JWTSecret),
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
