package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "rastaka_backend/docs"
	"rastaka_backend/internal/auth"
	"rastaka_backend/internal/config"
	"rastaka_backend/internal/database"
	"rastaka_backend/internal/email"
	"rastaka_backend/internal/handlers"
	"rastaka_backend/internal/imageprocessor"
	"rastaka_backend/internal/logger"
	"rastaka_backend/internal/mediaurl"
	"rastaka_backend/internal/middleware"
	"rastaka_backend/internal/repositories"
	"rastaka_backend/internal/routes"
	"rastaka_backend/internal/services"
	"rastaka_backend/internal/storage"
	"rastaka_backend/internal/validator"
	"rastaka_backend/internal/workers"
	"rastaka_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"gorm.io/gorm"
)

const (
	shutdownTimeout    = 15 * time.Second
	maxMultipartMemory = 32 << 20
)

func Run() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Init("development")
		logger.Fatal("Failed to load config", "error", err)
	}
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	apperrors.SetDebug(!cfg.IsProduction())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	gormDB, err := database.Open(ctx, cfg.Database, !cfg.IsProduction())
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer database.Close(gormDB)

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to migrate database", "error", err)
	}
	logger.Info("Database connected")

	ginRouter, container, err := SetupRouter(ctx, cfg, gormDB)
	if err != nil {
		logger.Fatal("Failed to set up router", "error", err)
	}

	if err := seedFirstAdmin(ctx, gormDB, cfg, container.AuthService); err != nil {
		// Без администратора сервер бесполезен
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	workers.NewContactWorker(gormDB, repositories.NewContactRepository(),
		cfg.Contact.ArchiveAfter, cfg.Contact.ArchiveEvery).Start(ctx)

	server := &http.Server{
		Addr:         cfg.Address(),
		Handler:      ginRouter,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Server starting on %s", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Fatal("Server startup error", "error", err)
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
		return
	}
	logger.Info("Server stopped")
}

// SetupRouter собирает хранилище, сервисы, хэндлеры и gin.Engine
func SetupRouter(ctx context.Context, cfg *config.Config, gormDB *gorm.DB) (*gin.Engine, *services.ServiceContainer, error) {
	// ShouldBind* валидируют теги binding нашим валидатором
	customValidator := validator.New()
	binding.Validator = customValidator

	storageInstance, err := storage.NewStorage(ctx, storage.Config{
		Type:         cfg.Storage.Type,
		BasePath:     cfg.Storage.BasePath,
		PublicPrefix: cfg.Storage.PublicPrefix,
		Bucket:       cfg.Storage.Bucket,
		Region:       cfg.Storage.Region,
		AccessKey:    cfg.Storage.AccessKey,
		SecretKey:    cfg.Storage.SecretKey,
		Endpoint:     cfg.Storage.Endpoint,
		PublicURL:    cfg.Storage.PublicURL,
		UsePathStyle: cfg.Storage.UsePathStyle,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	logger.Info("Storage initialized", "type", storageInstance.Provider())

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)

	// 1. Сервисы
	serviceContainer, err := initializeServices(cfg, storageInstance, tokens)
	if err != nil {
		return nil, nil, err
	}

	// 2. Хэндлеры
	appHandlers := initializeHandlers(serviceContainer, customValidator)

	// 3. Gin
	ginRouter := initializeGinRouter(cfg, gormDB)

	// 4. Маршруты
	opts := routes.Options{Swagger: !cfg.IsProduction()}
	if local, ok := storageInstance.(*storage.LocalStorage); ok {
		opts.UploadsDir = local.BasePath()
		opts.UploadsPrefix = local.PublicPrefix()
	}
	routes.RegisterRoutes(ginRouter, appHandlers, tokens, opts)

	return ginRouter, serviceContainer, nil
}

func initializeServices(cfg *config.Config, storageInstance storage.Storage, tokens *auth.TokenManager) (*services.ServiceContainer, error) {
	notifier, err := newContactNotifier(cfg)
	if err != nil {
		return nil, err
	}

	// --- Репозитории ---
	adminRepo := repositories.NewAdminUserRepository()
	clientRepo := repositories.NewClientRepository()
	workRepo := repositories.NewWorkRepository()
	sectionRepo := repositories.NewSectionRepository()
	mediaRepo := repositories.NewMediaRepository()
	companyRepo := repositories.NewCompanyRepository()
	portfolioRepo := repositories.NewPortfolioRepository()
	siteRepo := repositories.NewSiteRepository()
	contactRepo := repositories.NewContactRepository()
	uploadRepo := repositories.NewUploadRepository()

	// --- Общие зависимости ---
	images := imageprocessor.NewProcessor(cfg.Upload.ImageQuality, cfg.Upload.ThumbnailWidth)
	slugs := services.NewSlugWriter(cfg.Slug.MaxAttempts)
	urls := mediaurl.New(cfg.Server.BaseURL)

	// --- Сервисы ---
	uploadService := services.NewUploadService(uploadRepo, storageInstance, images, services.UploadSettings{
		MaxSize:  cfg.Upload.MaxSize,
		MaxFiles: cfg.Upload.MaxFiles,
	})

	return &services.ServiceContainer{
		AuthService:      services.NewAuthService(adminRepo, tokens),
		ClientService:    services.NewClientService(clientRepo, uploadService, slugs, urls),
		WorkService:      services.NewWorkService(workRepo, clientRepo, mediaRepo, uploadService, slugs, urls),
		SectionService:   services.NewSectionService(sectionRepo, workRepo, urls),
		MediaService:     services.NewMediaService(mediaRepo, workRepo, sectionRepo, uploadService, urls),
		CompanyService:   services.NewCompanyService(companyRepo, portfolioRepo, uploadService, slugs, urls),
		PortfolioService: services.NewPortfolioService(portfolioRepo, companyRepo, uploadService, slugs, urls),
		SiteService:      services.NewSiteService(siteRepo, portfolioRepo, companyRepo, urls, cfg.Server.FrontendURL),
		ContactService:   services.NewContactService(contactRepo, notifier),
		UploadService:    uploadService,
	}, nil
}

// newContactNotifier - SMTP, если почта настроена, иначе письма не отправляются
func newContactNotifier(cfg *config.Config) (*email.ContactNotifier, error) {
	adminURL := strings.TrimRight(cfg.Server.FrontendURL, "/") + "/admin/contact"

	if !cfg.Email.Enabled() {
		logger.Warn("SMTP is not configured. Contact notifications are disabled.")
		return email.NewContactNotifier(email.NoopSender{}, nil, adminURL), nil
	}

	sender, err := email.NewSMTPSender(email.Config{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUser,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SMTP sender: %w", err)
	}

	var notifyTo []string
	for _, addr := range strings.Split(cfg.Email.NotifyTo, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			notifyTo = append(notifyTo, addr)
		}
	}

	logger.Info("Contact notifications enabled", "smtp_host", cfg.Email.SMTPHost, "recipients", len(notifyTo))
	return email.NewContactNotifier(sender, notifyTo, adminURL), nil
}

func initializeHandlers(services *services.ServiceContainer, customValidator *validator.Validator) *handlers.AppHandlers {
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:      handlers.NewAuthHandler(baseHandler, services.AuthService),
		ClientHandler:    handlers.NewClientHandler(baseHandler, services.ClientService),
		WorkHandler:      handlers.NewWorkHandler(baseHandler, services.WorkService),
		SectionHandler:   handlers.NewSectionHandler(baseHandler, services.SectionService),
		MediaHandler:     handlers.NewMediaHandler(baseHandler, services.MediaService),
		CompanyHandler:   handlers.NewCompanyHandler(baseHandler, services.CompanyService),
		PortfolioHandler: handlers.NewPortfolioHandler(baseHandler, services.PortfolioService),
		SiteHandler:      handlers.NewSiteHandler(baseHandler, services.SiteService),
		ContactHandler:   handlers.NewContactHandler(baseHandler, services.ContactService),
		HealthHandler:    handlers.NewHealthHandler(baseHandler),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = maxMultipartMemory

	// Тело запроса: все файлы одной загрузки плюс поля формы
	bodyLimit := cfg.Upload.MaxSize*int64(max(cfg.Upload.MaxFiles, 1)) + 1<<20

	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	router.Use(middleware.BodyLimitMiddleware(bodyLimit))
	router.Use(middleware.DBMiddleware(db))
	return router
}

func seedFirstAdmin(ctx context.Context, db *gorm.DB, cfg *config.Config, authService services.AuthService) error {
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	created, err := authService.SeedFirstAdmin(ctx, db, cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.Name)
	if err != nil {
		return err
	}
	if created {
		logger.Info("Successfully created first admin user", "email", cfg.Admin.Email)
	} else {
		logger.Info("Admin user already exists. Skipping creation.")
	}
	return nil
}
