package routes

import (
	"net/http"

	"rastaka_backend/internal/auth"
	"rastaka_backend/internal/handlers"
	"rastaka_backend/internal/logger"
	"rastaka_backend/internal/middleware"
	"rastaka_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Options - служебные маршруты вне /api/v1
type Options struct {
	// UploadsDir и UploadsPrefix - раздача локального хранилища; пусто для s3
	UploadsDir    string
	UploadsPrefix string
	Swagger       bool
}

// AccessFor собирает middleware доступа для хэндлеров
func AccessFor(tokens *auth.TokenManager) handlers.Access {
	return handlers.Access{
		Auth:         middleware.AuthMiddleware(tokens),
		OptionalAuth: middleware.OptionalAuthMiddleware(tokens),
		Write:        middleware.RequirePermission(auth.PermContentWrite),
		Delete:       middleware.RequirePermission(auth.PermContentDelete),
		InboxRead:    middleware.RequirePermission(auth.PermInboxRead),
		InboxDelete:  middleware.RequirePermission(auth.PermInboxDelete),
	}
}

// RegisterRoutes регистрирует все HTTP маршруты.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	tokens *auth.TokenManager,
	opts Options,
) {
	access := AccessFor(tokens)

	// Регистрация HTTP API v1
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api, access)
		appHandlers.ClientHandler.RegisterRoutes(api, access)
		appHandlers.WorkHandler.RegisterRoutes(api, access)
		appHandlers.SectionHandler.RegisterRoutes(api, access)
		appHandlers.MediaHandler.RegisterRoutes(api, access)
		appHandlers.CompanyHandler.RegisterRoutes(api, access)
		appHandlers.PortfolioHandler.RegisterRoutes(api, access)
		appHandlers.SiteHandler.RegisterRoutes(api, access)
		appHandlers.ContactHandler.RegisterRoutes(api, access)
		api.GET("/health", appHandlers.HealthHandler.Health)
	}

	ginRouter.GET("/health", appHandlers.HealthHandler.Health)
	ginRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if opts.UploadsDir != "" {
		prefix := opts.UploadsPrefix
		if prefix == "" {
			prefix = "/uploads"
		}
		ginRouter.StaticFS(prefix, gin.Dir(opts.UploadsDir, false))
		logger.Info("Local uploads served", "prefix", prefix, "dir", opts.UploadsDir)
	}

	if opts.Swagger {
		ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	ginRouter.NoRoute(func(c *gin.Context) {
		apperrors.HandleError(c, apperrors.New(apperrors.CodeNotFound, "route", "Route not found", http.StatusNotFound))
	})
}
