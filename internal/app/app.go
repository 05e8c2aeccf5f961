package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"iblaze_backend/database"
	"iblaze_backend/internal/auth"
	"iblaze_backend/internal/config"
	"iblaze_backend/internal/email"
	"iblaze_backend/internal/handlers"
	"iblaze_backend/internal/logger"
	"iblaze_backend/internal/middleware"
	"iblaze_backend/internal/models"
	"iblaze_backend/internal/ratelimit"
	"iblaze_backend/internal/repositories"
	"iblaze_backend/internal/routes"
	"iblaze_backend/internal/services"
	"iblaze_backend/internal/validator"
	"iblaze_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// Dependencies are the outside resources the router is built on.
type Dependencies struct {
	Repos *repositories.Repositories
	// Mailer defaults to the logging provider when nil.
	Mailer email.Provider
	// Limiter disables rate limiting when nil.
	Limiter middleware.Limiter
}

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)
	apperrors.Configure(!cfg.IsProduction())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, closeStore, err := OpenRepositories(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to open storage", "error", err)
	}
	defer closeStore()

	if err := SeedFirstAdmin(ctx, repos.Users, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	mailer, err := NewMailer(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize email provider", "error", err)
	}
	defer mailer.Close()

	limiter, closeLimiter := NewLimiter(ctx, cfg)
	defer closeLimiter()

	ginRouter, err := SetupRouter(cfg, Dependencies{Repos: repos, Mailer: mailer, Limiter: limiter})
	if err != nil {
		logger.Fatal("Failed to build router", "error", err)
	}

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              address,
		Handler:           ginRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "address", address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
}

// OpenRepositories picks the storage backend from the configured driver.
func OpenRepositories(ctx context.Context, cfg *config.Config) (*repositories.Repositories, func(), error) {
	switch cfg.Database.Driver {
	case "memory":
		logger.Warn("Using the in-memory store; data is lost on restart")
		return repositories.NewMemoryRepositories(), func() {}, nil
	default:
		logger.Info("Connecting to database...")
		gormDB, err := database.Open(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := database.AutoMigrate(gormDB); err != nil {
			return nil, nil, err
		}
		logger.Info("Database connected")

		closeDB := func() {
			if sqlDB, err := gormDB.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return repositories.NewGormRepositories(gormDB), closeDB, nil
	}
}

// NewMailer uses SMTP when a host is configured and logs messages otherwise.
func NewMailer(cfg *config.Config) (email.Provider, error) {
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP_HOST is not set. Emails will only be logged.")
		return email.NewLogProvider(), nil
	}
	return email.NewSMTPProvider(email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
	})
}

// NewLimiter returns a nil Limiter when Redis is not configured.
func NewLimiter(ctx context.Context, cfg *config.Config) (middleware.Limiter, func()) {
	if cfg.RateLimit.RedisAddr == "" {
		logger.Warn("REDIS_ADDR is not set. Rate limiting is disabled.")
		return nil, func() {}
	}

	limiter, err := ratelimit.NewFixedWindowLimiter(
		cfg.RateLimit.RedisAddr,
		cfg.RateLimit.RedisPassword,
		cfg.RateLimit.Prefix,
		cfg.RateLimit.MaxRequests,
		cfg.RateLimitWindow(),
	)
	if err != nil {
		logger.Fatal("Failed to initialize rate limiter", "error", err)
	}
	if err := limiter.Ping(ctx); err != nil {
		// Requests are rejected until Redis comes back.
		logger.Error("Rate limiter redis is unreachable", "error", err)
	}
	logger.Info("Rate limiter initialized", "max_requests", cfg.RateLimit.MaxRequests, "window", cfg.RateLimitWindow())
	return limiter, func() { _ = limiter.Close() }
}

func SetupRouter(cfg *config.Config, deps Dependencies) (*gin.Engine, error) {
	tokens, err := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.RefreshSecret, cfg.JWT.Expire, cfg.JWT.RefreshExpire)
	if err != nil {
		return nil, fmt.Errorf("token manager: %w", err)
	}

	templates, err := email.NewDefaultTemplateManager()
	if err != nil {
		return nil, fmt.Errorf("email templates: %w", err)
	}

	mailer := deps.Mailer
	if mailer == nil {
		mailer = email.NewLogProvider()
	}

	// 1. Services
	notifier := services.NewNotificationService(mailer, templates)
	serviceContainer := services.NewServiceContainer(deps.Repos, tokens, notifier)

	// 2. Handlers
	appHandlers := initializeHandlers(serviceContainer, deps.Repos)

	// 3. Gin
	ginRouter := initializeGinRouter(cfg)

	// 4. Routes
	routes.RegisterRoutes(ginRouter, appHandlers, deps.Limiter)

	return ginRouter, nil
}

func initializeHandlers(container *services.ServiceContainer, repos *repositories.Repositories) *handlers.AppHandlers {
	baseHandler := handlers.NewBaseHandler(validator.New())
	gate := middleware.NewGate(container.AuthService)

	return &handlers.AppHandlers{
		AuthHandler:   handlers.NewAuthHandler(baseHandler, container.AuthService, gate),
		IdeaHandler:   handlers.NewIdeaHandler(baseHandler, container.IdeaService, gate),
		JobHandler:    handlers.NewJobHandler(baseHandler, container.JobService, gate),
		AdminHandler:  handlers.NewAdminHandler(baseHandler, container.AdminService, gate),
		HealthHandler: handlers.NewHealthHandler(baseHandler, repos.Ping),
	}
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORS.ClientURL, cfg.CORS.AdminURL))
	return router
}

// SeedFirstAdmin creates the admin from FIRST_ADMIN_* once. Admins cannot self-register,
// so this and the seed command are the only ways to create one.
func SeedFirstAdmin(ctx context.Context, users repositories.UserRepository, cfg *config.Config) error {
	adminEmail := cfg.FirstAdmin.Email
	adminPassword := cfg.FirstAdmin.Password

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	_, err := users.FindByEmail(ctx, adminEmail)
	if err == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", err)
	}

	logger.Warn("No admin user found with specified email. Creating first admin...", "email", adminEmail)

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		Name:         cfg.FirstAdmin.Name,
		Email:        adminEmail,
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,
	}
	admin.ApplyRoleDefaults()

	if err := users.Create(ctx, admin); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil
		}
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("Created first admin user", "email", adminEmail)
	return nil
}
