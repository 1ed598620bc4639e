// Package main runs the event administration HTTP server with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/afrinov/expo-backend/config"
	"github.com/afrinov/expo-backend/internal/auth"
	"github.com/afrinov/expo-backend/internal/events"
	"github.com/afrinov/expo-backend/internal/meetings"
	"github.com/afrinov/expo-backend/internal/members"
	"github.com/afrinov/expo-backend/internal/middleware"
	"github.com/afrinov/expo-backend/internal/participants"
	"github.com/afrinov/expo-backend/internal/programs"
	"github.com/afrinov/expo-backend/internal/registration"
	"github.com/afrinov/expo-backend/internal/reports"
	"github.com/afrinov/expo-backend/internal/scans"
	"github.com/afrinov/expo-backend/internal/settings"
	"github.com/afrinov/expo-backend/internal/store"
	"github.com/afrinov/expo-backend/internal/tickets"
	"github.com/afrinov/expo-backend/internal/users"
	"github.com/afrinov/expo-backend/internal/worker"
	"github.com/afrinov/expo-backend/pkg/database"
	"github.com/afrinov/expo-backend/pkg/queue"
	"github.com/afrinov/expo-backend/pkg/redis"
	"github.com/afrinov/expo-backend/pkg/response"
	"github.com/afrinov/expo-backend/pkg/storage"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	rdb, err := redis.NewClient(ctx, cfg.Store.Redis.Addr, cfg.Store.Redis.Password, cfg.Store.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	var kv store.Store
	switch cfg.Store.Driver {
	case "postgres":
		pool, err := database.NewPostgresPool(ctx, cfg.Store.Database.DSN(), logger)
		if err != nil {
			logger.Fatal("database", zap.Error(err))
		}
		defer pool.Close()
		if err := database.Migrate(ctx, pool); err != nil {
			logger.Fatal("migrate", zap.Error(err))
		}
		kv = store.NewPostgresStore(pool)
	default:
		kv = store.NewRedisStore(rdb.Client)
	}
	logger.Info("store ready", zap.String("driver", cfg.Store.Driver))

	var s3Client *storage.S3
	if cfg.AWS.Region != "" {
		s3Cfg := storage.S3Config{
			Region:               cfg.AWS.Region,
			AccessKeyID:          cfg.AWS.AccessKeyID,
			SecretAccessKey:      cfg.AWS.SecretAccessKey,
			ImagesBucket:         cfg.AWS.ImagesBucket,
			PresignExpireMinutes: cfg.AWS.PresignExpireMinutes,
		}
		s3Client, err = storage.NewS3(ctx, s3Cfg, logger)
		if err != nil {
			logger.Warn("s3 disabled", zap.Error(err))
		}
	}

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)
	jobQueue := queue.NewQueue(rdb.Client, logger)

	// Users and auth
	userRepo := users.NewRepository(kv, logger)
	userHandler := users.NewHandler(userRepo, logger)
	authHandler := auth.NewHandler(userRepo, kv, jwtService, logger)

	// Event catalog
	eventRepo := events.NewRepository(kv, logger)
	eventHandler := events.NewHandler(eventRepo, s3Client, logger)

	// Per-event resources
	participantRepo := participants.NewRepository(kv, logger)
	participantHandler := participants.NewHandler(participantRepo, logger)
	ticketRepo := tickets.NewRepository(kv, logger)
	ticketHandler := tickets.NewHandler(ticketRepo, logger)
	programRepo := programs.NewRepository(kv, logger)
	programHandler := programs.NewHandler(programRepo, logger)

	// Two independent meeting agendas per event
	eventMeetingRepo := meetings.NewRepository(kv, store.KeyEventMeetings, logger)
	eventMeetingHandler := meetings.NewHandler(eventMeetingRepo, participantRepo, logger)
	organizerMeetingRepo := meetings.NewRepository(kv, store.KeyOrganizerMeetings, logger)
	organizerMeetingHandler := meetings.NewHandler(organizerMeetingRepo, participantRepo, logger)

	// Gate scans (read + queued ingestion)
	scanRepo := scans.NewRepository(kv, logger)
	scanHandler := scans.NewHandler(scanRepo, jobQueue, logger)
	scanProcessor := worker.NewScanProcessor(scanRepo, jobQueue, logger)

	// Organizing team, settings, public registration, reports
	memberRepo := members.NewRepository(kv, logger)
	memberHandler := members.NewHandler(memberRepo, logger)
	settingsHandler := settings.NewHandler(kv, userRepo, logger)
	registrationHandler := registration.NewHandler(kv, logger)
	reportService := reports.NewService(eventRepo, participantRepo, ticketRepo, scanRepo, logger)
	reportHandler := reports.NewHandler(reportService, eventRepo, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Auth (public)
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/logout", authHandler.Logout)
	}

	// Public visitor registration and ticket
	router.POST("/register/visitor", registrationHandler.Register)
	router.GET("/ticket", registrationHandler.Ticket)
	router.GET("/ticket/qr-payload", registrationHandler.QRPayload)

	// Gate devices submit scans without console credentials
	router.POST("/events/:id/scans", scanHandler.Ingest)

	// Protected API (JWT required)
	api := router.Group("")
	api.Use(middleware.JWT(jwtService))
	{
		api.GET("/auth/me", authHandler.Me)

		// Users (admin only)
		api.GET("/users", middleware.RequireRole("admin"), userHandler.List)
		api.POST("/users", middleware.RequireRole("admin"), userHandler.Create)
		api.PUT("/users/:id", middleware.RequireRole("admin"), userHandler.Update)
		api.PUT("/users/:id/password", middleware.RequireRole("admin"), userHandler.UpdatePassword)
		api.DELETE("/users/:id", middleware.RequireRole("admin"), userHandler.Delete)

		// Events
		api.GET("/events", eventHandler.List)
		api.POST("/events", middleware.RequireWriter(), eventHandler.Create)
		api.GET("/events/:id", eventHandler.Get)
		api.PUT("/events/:id", middleware.RequireWriter(), eventHandler.Update)
		api.DELETE("/events/:id", middleware.RequireWriter(), eventHandler.Delete)
		api.POST("/events/:id/image", middleware.RequireWriter(), eventHandler.UploadImage)
		api.POST("/events/:id/image/upload-url", middleware.RequireWriter(), eventHandler.GenerateImageUploadURL)

		// Participants
		api.GET("/events/:id/participants", participantHandler.List)
		api.POST("/events/:id/participants", middleware.RequireWriter(), participantHandler.Create)
		api.PUT("/events/:id/participants/:participantId", middleware.RequireWriter(), participantHandler.Update)
		api.DELETE("/events/:id/participants/:participantId", middleware.RequireWriter(), participantHandler.Delete)

		// Ticket types
		api.GET("/events/:id/tickets", ticketHandler.List)
		api.POST("/events/:id/tickets", middleware.RequireWriter(), ticketHandler.Create)
		api.PUT("/events/:id/tickets/:ticketId", middleware.RequireWriter(), ticketHandler.Update)
		api.DELETE("/events/:id/tickets/:ticketId", middleware.RequireWriter(), ticketHandler.Delete)

		// Program
		api.GET("/events/:id/program", programHandler.List)
		api.POST("/events/:id/program", middleware.RequireWriter(), programHandler.Create)
		api.PUT("/events/:id/program/:sessionId", middleware.RequireWriter(), programHandler.Update)
		api.DELETE("/events/:id/program/:sessionId", middleware.RequireWriter(), programHandler.Delete)

		// Meetings (participant-facing agenda)
		api.GET("/events/:id/meetings", eventMeetingHandler.List)
		api.GET("/events/:id/meetings/candidates", eventMeetingHandler.Candidates)
		api.POST("/events/:id/meetings", middleware.RequireWriter(), eventMeetingHandler.Create)
		api.PUT("/events/:id/meetings/:meetingId", middleware.RequireWriter(), eventMeetingHandler.Update)
		api.DELETE("/events/:id/meetings/:meetingId", middleware.RequireWriter(), eventMeetingHandler.Delete)

		// Meetings (organizer agenda)
		api.GET("/events/:id/organizer-meetings", organizerMeetingHandler.List)
		api.GET("/events/:id/organizer-meetings/candidates", organizerMeetingHandler.Candidates)
		api.POST("/events/:id/organizer-meetings", middleware.RequireWriter(), organizerMeetingHandler.Create)
		api.PUT("/events/:id/organizer-meetings/:meetingId", middleware.RequireWriter(), organizerMeetingHandler.Update)
		api.DELETE("/events/:id/organizer-meetings/:meetingId", middleware.RequireWriter(), organizerMeetingHandler.Delete)

		// Gate scans (consultation)
		api.GET("/events/:id/scans", scanHandler.List)

		// Organizing team
		api.GET("/members", memberHandler.List)
		api.POST("/members", middleware.RequireWriter(), memberHandler.Create)
		api.PUT("/members/:id", middleware.RequireWriter(), memberHandler.Update)
		api.DELETE("/members/:id", middleware.RequireWriter(), memberHandler.Delete)

		// Settings
		api.GET("/settings", settingsHandler.Get)
		api.PUT("/settings", middleware.RequireWriter(), settingsHandler.Update)
		api.PUT("/settings/password", settingsHandler.ChangePassword)

		// Reports
		api.GET("/events/:id/report", reportHandler.ForEvent)
		api.GET("/reports/summary", reportHandler.Summary)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// In-process scan worker; cmd/worker runs the same processor standalone.
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	go scanProcessor.Run(workerCtx)

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	workerCancel()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
