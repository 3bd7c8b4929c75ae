package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"golang.org/x/crypto/bcrypt"

	"github.com/Yassen717/ModBlog/internal/auth"
	"github.com/Yassen717/ModBlog/internal/backup"
	"github.com/Yassen717/ModBlog/internal/config"
	"github.com/Yassen717/ModBlog/internal/handler"
	"github.com/Yassen717/ModBlog/internal/logger"
	"github.com/Yassen717/ModBlog/internal/metrics"
	"github.com/Yassen717/ModBlog/internal/middleware"
	"github.com/Yassen717/ModBlog/internal/repository"
	"github.com/Yassen717/ModBlog/internal/seed"
	"github.com/Yassen717/ModBlog/internal/service"
	"github.com/Yassen717/ModBlog/internal/storage"
	"github.com/Yassen717/ModBlog/internal/validator"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration",
			slog.String("error", err.Error()))
	}
	logger.Init(cfg.LogLevel)

	ctx := context.Background()

	// Open storage backend
	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to open storage",
			slog.String("backend", cfg.StorageBackend),
			slog.String("error", err.Error()))
	}
	defer backend.Close()

	if backend.Pool != nil {
		metrics.LogPoolStats(ctx, backend.Pool)
		poolStatsCollector := metrics.NewPoolStatsCollector(backend.Pool)
		poolStatsCollector.Start(15 * time.Second)
		defer poolStatsCollector.Stop()
	}

	store := storage.NewAdapter(backend.KV)
	seeder := seed.New(store)
	if cfg.SeedOnStart {
		result := seeder.Initialize(ctx)
		if len(result.Seeded) > 0 {
			logger.Info("Seeded initial content",
				slog.Any("namespaces", result.Seeded))
		}
	}

	// Initialize repositories
	postRepo := repository.NewPostRepository(store)
	categoryRepo := repository.NewCategoryRepository(store)
	authorRepo := repository.NewAuthorRepository(store)
	userRepo := repository.NewUserRepository(store)
	commentRepo := repository.NewCommentRepository(store)
	settingsRepo := repository.NewSettingsRepository(store)
	sessionRepo := repository.NewAdminSessionRepository(store)

	// Initialize validator
	v := validator.NewValidator()

	// Initialize services
	postService := service.NewPostService(postRepo, categoryRepo, authorRepo, v)
	categoryService := service.NewCategoryService(categoryRepo, postRepo, v)
	commentService := service.NewCommentService(commentRepo, postRepo, settingsRepo, v)
	dashboardService := service.NewDashboardService(postRepo, commentRepo, userRepo, categoryRepo, authorRepo)
	dataService := service.NewDataService(seeder, dashboardService)
	exportService := service.NewExportService(postRepo, categoryRepo, commentRepo, userRepo)

	// Authentication
	directory, err := auth.NewDirectory(auth.DefaultSeeds(), bcrypt.DefaultCost)
	if err != nil {
		logger.Fatal("Failed to build credential directory",
			slog.String("error", err.Error()))
	}
	secret := cfg.AuthSecret
	if secret == "" {
		secret = randomSecret()
		logger.Warn("AUTH_SECRET is not set; sessions will not survive a restart")
	}
	tokens := auth.NewTokenManager(secret, cfg.AuthTokenTTL)

	loginLimiter := middleware.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginRateWindow)
	defer loginLimiter.Stop()

	// Backups stay nil unless a bucket is configured.
	var backups handler.Backups
	var scheduler *backup.Scheduler
	if cfg.BackupConfigured() {
		objects, err := backup.NewS3Store(ctx, backup.S3Config{
			Bucket:    cfg.BackupBucket,
			Endpoint:  cfg.BackupEndpoint,
			Region:    cfg.BackupRegion,
			AccessKey: cfg.BackupAccessKey,
			SecretKey: cfg.BackupSecretKey,
		})
		if err != nil {
			logger.Fatal("Failed to create backup store",
				slog.String("error", err.Error()))
		}
		backupService := backup.NewService(store, objects, cfg.BackupPrefix, cfg.BackupKeep)
		backups = backupService

		if cfg.BackupEnabled {
			scheduler, err = backup.NewScheduler(cfg.BackupSchedule, backupService)
			if err != nil {
				logger.Fatal("Invalid backup schedule",
					slog.String("schedule", cfg.BackupSchedule),
					slog.String("error", err.Error()))
			}
			scheduler.Start()
			logger.Info("Backup scheduler started",
				slog.String("schedule", cfg.BackupSchedule),
				slog.String("bucket", cfg.BackupBucket))
		}
	}

	var adminUI http.Handler
	if cfg.AdminDir != "" {
		adminUI = http.FileServer(http.Dir(cfg.AdminDir))
	}

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	cookie := auth.CookieOptions{Secure: cfg.CookieSecure, MaxAge: cfg.AuthTokenTTL}
	router := handler.NewRouter(handler.RouterDeps{
		Health:         handler.NewHealthHandler(store, backend.Name),
		Posts:          handler.NewPostHandler(postService),
		Blog:           handler.NewBlogHandler(postService, categoryService, commentService),
		Categories:     handler.NewCategoryHandler(categoryService),
		Comments:       handler.NewCommentHandler(commentService),
		Authors:        handler.NewAuthorHandler(service.NewAuthorService(authorRepo, v)),
		Users:          handler.NewUserHandler(service.NewUserService(userRepo, v)),
		Settings:       handler.NewSettingsHandler(service.NewSettingsService(settingsRepo, v)),
		Admin:          handler.NewAdminHandler(dashboardService, dataService, backups),
		Export:         handler.NewExportHandler(exportService),
		Auth:           handler.NewAuthHandler(directory, tokens, sessionRepo, cfg.CookieSecure),
		Tokens:         tokens,
		Cookie:         cookie,
		LoginLimiter:   loginLimiter,
		TrustedProxies: cfg.TrustedProxies,
		AdminUI:        adminUI,
	})

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler(router)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      corsHandler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting server",
			slog.String("port", cfg.ServerPort),
			slog.String("storage", backend.Name))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server",
				slog.String("error", err.Error()))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if scheduler != nil {
		logger.Info("Stopping backup scheduler")
		scheduler.Stop(shutdownCtx)
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error",
			slog.String("error", err.Error()))
	}

	logger.Info("Server exited")
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		logger.Fatal("Failed to generate auth secret",
			slog.String("error", err.Error()))
	}
	return hex.EncodeToString(buf)
}
