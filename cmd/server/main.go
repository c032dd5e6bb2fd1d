// Package main runs the Stillpoint community HTTP server with graceful shutdown.
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

	"github.com/stillpoint-community/backend/config"
	"github.com/stillpoint-community/backend/internal/auth"
	"github.com/stillpoint-community/backend/internal/emaillogs"
	"github.com/stillpoint-community/backend/internal/events"
	"github.com/stillpoint-community/backend/internal/middleware"
	"github.com/stillpoint-community/backend/internal/notify"
	"github.com/stillpoint-community/backend/internal/profiles"
	"github.com/stillpoint-community/backend/internal/registrations"
	"github.com/stillpoint-community/backend/internal/resources"
	"github.com/stillpoint-community/backend/internal/submissions"
	"github.com/stillpoint-community/backend/internal/uploads"
	"github.com/stillpoint-community/backend/internal/venues"
	"github.com/stillpoint-community/backend/internal/worker"
	"github.com/stillpoint-community/backend/pkg/database"
	"github.com/stillpoint-community/backend/pkg/mail"
	"github.com/stillpoint-community/backend/pkg/queue"
	"github.com/stillpoint-community/backend/pkg/redis"
	"github.com/stillpoint-community/backend/pkg/response"
	"github.com/stillpoint-community/backend/pkg/storage"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	var s3Client *storage.S3
	if cfg.AWS.Region != "" {
		s3Cfg := storage.S3Config{
			Region:          cfg.AWS.Region,
			AccessKeyID:     cfg.AWS.AccessKeyID,
			SecretAccessKey: cfg.AWS.SecretAccessKey,
			ImagesBucket:    cfg.AWS.ImagesBucket,
		}
		s3Client, err = storage.NewS3(ctx, s3Cfg, logger)
		if err != nil {
			logger.Warn("s3 disabled", zap.Error(err))
		}
	}

	jobQueue := queue.NewQueue(rdb.Client, logger)
	notifier := notify.NewService(jobQueue, cfg.App.Name, cfg.App.BaseURL)

	var sender mail.Sender = mail.NewConsole(logger)
	if cfg.Email.APIKey != "" {
		sender = mail.NewSendGrid(cfg.Email.APIKey, cfg.Email.FromName, cfg.Email.FromAddress)
	}

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)
	blacklist := auth.NewBlacklist(rdb.Client)

	// Auth
	authRepo := auth.NewRepository(pool)
	authHandler := auth.NewHandler(authRepo, jwtService, blacklist, notifier, logger)

	// Profiles and facilitator directory
	profileRepo := profiles.NewRepository(pool)
	profileHandler := profiles.NewHandler(profileRepo, logger)

	// Events
	eventRepo := events.NewRepository(pool)
	eventHandler := events.NewHandler(eventRepo, logger)

	// Registrations
	registrationRepo := registrations.NewRepository(pool)
	registrationHandler := registrations.NewHandler(registrationRepo, eventRepo, logger)

	// Published library and venues
	resourceRepo := resources.NewRepository(pool)
	resourceHandler := resources.NewHandler(resourceRepo, logger)
	venueRepo := venues.NewRepository(pool)
	venueHandler := venues.NewHandler(venueRepo, logger)

	// Submission review queue
	submissionStore := submissions.NewPgStore(pool)
	reviewWorkflow := submissions.NewWorkflow(submissionStore, notifier, logger)
	submissionHandler := submissions.NewHandler(submissionStore, reviewWorkflow, notifier, authRepo, logger)

	// Uploads
	uploadHandler := uploads.NewHandler(s3Client, logger)

	// Email delivery audit
	emailLogsRepo := emaillogs.NewRepository(pool)
	emailLogsHandler := emaillogs.NewHandler(emailLogsRepo, logger)
	emailProcessor := worker.NewEmailProcessor(jobQueue, sender, emailLogsRepo, logger)

	jwtValidate := func(token string) (*middleware.TokenClaims, error) {
		claims, err := jwtService.Validate(token)
		if err != nil {
			return nil, err
		}
		return &middleware.TokenClaims{
			UserID:  claims.UserID,
			Email:   claims.Email,
			Role:    claims.Role,
			TokenID: claims.ID,
		}, nil
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Auth (public)
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/signup", authHandler.Signup)
		authGroup.POST("/signin", authHandler.Signin)
		authGroup.POST("/resend-confirmation", authHandler.ResendConfirmation)
		authGroup.GET("/confirm/:token", authHandler.Confirm)
	}

	// Public browsing
	router.GET("/events", eventHandler.List)
	router.GET("/events/:id", eventHandler.GetByID)
	router.GET("/facilitators", profileHandler.ListFacilitators)
	router.GET("/facilitators/:id", profileHandler.GetFacilitator)
	router.GET("/resources", resourceHandler.List)
	router.GET("/resources/:id", resourceHandler.Get)
	router.GET("/venues", venueHandler.List)
	router.GET("/venues/:id", venueHandler.Get)

	// Protected API (JWT required)
	api := router.Group("")
	api.Use(middleware.JWT(jwtValidate, blacklist.IsRevoked))
	{
		api.GET("/auth/me", authHandler.Me)
		api.POST("/auth/signout", authHandler.Signout)
		api.PATCH("/profile", profileHandler.UpdateProfile)

		// Events (create/update/delete restricted to facilitators and admins)
		api.POST("/events", middleware.RequireRole("facilitator", "admin"), eventHandler.Create)
		api.PATCH("/events/:id", middleware.RequireRole("facilitator", "admin"), eventHandler.Update)
		api.DELETE("/events/:id", middleware.RequireRole("facilitator", "admin"), eventHandler.Delete)

		// Registrations
		api.POST("/events/:id/register", registrationHandler.Register)
		api.DELETE("/registrations/:id", registrationHandler.Cancel)
		api.GET("/events/:id/participants", registrationHandler.ListParticipants)
		api.GET("/my-events", registrationHandler.MyEvents)

		// Direct publish (no review queue)
		api.POST("/resources", middleware.RequireRole("facilitator", "admin"), resourceHandler.Create)
		api.PATCH("/resources/:id", middleware.RequireRole("facilitator", "admin"), resourceHandler.Update)
		api.DELETE("/resources/:id", middleware.RequireRole("facilitator", "admin"), resourceHandler.Delete)
		api.POST("/venues", middleware.RequireRole("facilitator", "admin"), venueHandler.Create)
		api.PATCH("/venues/:id", middleware.RequireRole("facilitator", "admin"), venueHandler.Update)
		api.DELETE("/venues/:id", middleware.RequireRole("facilitator", "admin"), venueHandler.Delete)

		// Member submissions into the review queue
		api.POST("/resources/submissions", submissionHandler.SubmitResource)
		api.POST("/venues/submissions", submissionHandler.SubmitVenue)
		api.POST("/facilitator-applications", submissionHandler.SubmitApplication)

		// Uploads
		api.POST("/uploads/image", uploadHandler.Image)
	}

	// Admin
	admin := router.Group("/admin")
	admin.Use(middleware.JWT(jwtValidate, blacklist.IsRevoked), middleware.RequireRole("admin"))
	{
		admin.GET("/users", profileHandler.ListUsers)
		admin.PATCH("/users/:id/role", profileHandler.SetRole)
		admin.GET("/stats", profileHandler.Stats)

		admin.GET("/resources/pending", submissionHandler.PendingResources)
		admin.GET("/venues/pending", submissionHandler.PendingVenues)
		admin.GET("/facilitator-applications/pending", submissionHandler.PendingApplications)

		admin.POST("/resource-submissions/:id/approve", submissionHandler.Decide(submissions.DomainResource, true))
		admin.POST("/resource-submissions/:id/reject", submissionHandler.Decide(submissions.DomainResource, false))
		admin.POST("/venue-submissions/:id/approve", submissionHandler.Decide(submissions.DomainVenue, true))
		admin.POST("/venue-submissions/:id/reject", submissionHandler.Decide(submissions.DomainVenue, false))
		admin.POST("/facilitator-applications/:id/approve", submissionHandler.Decide(submissions.DomainApplication, true))
		admin.POST("/facilitator-applications/:id/reject", submissionHandler.Decide(submissions.DomainApplication, false))

		admin.GET("/email-logs", emailLogsHandler.List)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// In-process email worker
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	go emailProcessor.Run(workerCtx)

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
