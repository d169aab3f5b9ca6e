package handlers

import (
	"net/http"

	"rastaka_backend/internal/models"
	"rastaka_backend/internal/services"
	"rastaka_backend/internal/services/dto"
	"rastaka_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// Поле multipart с файлами работы портфолио
const portfolioMediaField = "media"

type PortfolioHandler struct {
	*BaseHandler
	portfolioService services.PortfolioService
}

func NewPortfolioHandler(base *BaseHandler, portfolioService services.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		BaseHandler:      base,
		portfolioService: portfolioService,
	}
}

func (h *PortfolioHandler) RegisterRoutes(rg *gin.RouterGroup, access Access) {
	portfolio := rg.Group("/portfolio")
	{
		portfolio.GET("", h.ListPortfolio)
		portfolio.GET("/stats", h.GetPortfolioStats)
		portfolio.GET("/type/:type", h.ListPortfolioByType)
		portfolio.GET("/slug/:slug", h.GetPortfolioItemBySlug)
		portfolio.GET("/:id", h.GetPortfolioItem)

		portfolio.POST("", access.Auth, access.Write, h.CreatePortfolioItem)
		portfolio.PUT("/:id", access.Auth, access.Write, h.UpdatePortfolioItem)
		portfolio.DELETE("/:id", access.Auth, access.Delete, h.DeletePortfolioItem)
	}
}

// ListPortfolio godoc
// @Summary      Работы портфолио
// @Tags         portfolio
// @Produce      json
// @Param        type query string false "WEBSITE, LOGO, REEL, SOCIAL_MEDIA"
// @Param        category query string false "CORPORATE или INDIVIDUAL"
// @Param        companyId query string false "ID компании"
// @Success      200 {object} map[string]interface{}
// @Router       /portfolio [get]
func (h *PortfolioHandler) ListPortfolio(c *gin.Context) {
	var filter dto.PortfolioFilter
	if !h.BindAndValidate_Query(c, &filter) {
		return
	}
	h.list(c, &filter)
}

// ListPortfolioByType godoc
// @Summary      Работы портфолио по типу
// @Tags         portfolio
// @Produce      json
// @Param        type path string true "WEBSITE, LOGO, REEL, SOCIAL_MEDIA"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} apperrors.ErrorResponse
// @Router       /portfolio/type/{type} [get]
func (h *PortfolioHandler) ListPortfolioByType(c *gin.Context) {
	itemType := models.PortfolioType(c.Param("type"))
	if !models.OneOf(itemType, models.PortfolioTypes) {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid portfolio type"))
		return
	}
	h.list(c, &dto.PortfolioFilter{Type: itemType})
}

func (h *PortfolioHandler) list(c *gin.Context, filter *dto.PortfolioFilter) {
	items, err := h.portfolioService.List(c.Request.Context(), h.GetDB(c), filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"portfolioItems": items,
		"count":          len(items),
	})
}

// GetPortfolioStats godoc
// @Summary      Статистика портфолио
// @Tags         portfolio
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /portfolio/stats [get]
func (h *PortfolioHandler) GetPortfolioStats(c *gin.Context) {
	stats, err := h.portfolioService.Stats(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// GetPortfolioItem godoc
// @Summary      Работа портфолио по ID
// @Tags         portfolio
// @Produce      json
// @Param        id path string true "ID"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} apperrors.ErrorResponse
// @Router       /portfolio/{id} [get]
func (h *PortfolioHandler) GetPortfolioItem(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := h.portfolioService.Get(c.Request.Context(), h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"portfolioItem": item})
}

// GetPortfolioItemBySlug godoc
// @Summary      Работа портфолио по slug
// @Tags         portfolio
// @Produce      json
// @Param        slug path string true "Slug"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} apperrors.ErrorResponse
// @Router       /portfolio/slug/{slug} [get]
func (h *PortfolioHandler) GetPortfolioItemBySlug(c *gin.Context) {
	item, err := h.portfolioService.GetBySlug(c.Request.Context(), h.GetDB(c), c.Param("slug"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"portfolioItem": item})
}

// CreatePortfolioItem godoc
// @Summary      Создать работу портфолио
// @Tags         portfolio
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title formData string true "Заголовок"
// @Param        type formData string true "WEBSITE, LOGO, REEL, SOCIAL_MEDIA"
// @Param        category formData string true "CORPORATE или INDIVIDUAL"
// @Param        companyId formData string false "ID компании (для CORPORATE)"
// @Param        media formData file true "Файлы (до 10)"
// @Success      201 {object} map[string]interface{}
// @Failure      400 {object} apperrors.ErrorResponse
// @Failure      404 {object} apperrors.ErrorResponse
// @Failure      415 {object} apperrors.ErrorResponse
// @Router       /portfolio [post]
func (h *PortfolioHandler) CreatePortfolioItem(c *gin.Context) {
	var req dto.CreatePortfolioRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	item, err := h.portfolioService.Create(c.Request.Context(), h.GetDB(c), &req, h.FormFiles(c, portfolioMediaField))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":       "Portfolio item created successfully",
		"portfolioItem": item,
	})
}

// UpdatePortfolioItem godoc
// @Summary      Обновить работу портфолио
// @Tags         portfolio
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "ID"
// @Param        media formData file false "Новые файлы заменяют старые"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} apperrors.ErrorResponse
// @Failure      404 {object} apperrors.ErrorResponse
// @Router       /portfolio/{id} [put]
func (h *PortfolioHandler) UpdatePortfolioItem(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdatePortfolioRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	item, err := h.portfolioService.Update(c.Request.Context(), h.GetDB(c), id, &req, h.FormFiles(c, portfolioMediaField))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Portfolio item updated successfully",
		"portfolioItem": item,
	})
}

// DeletePortfolioItem godoc
// @Summary      Удалить работу портфолио и ее файлы
// @Tags         portfolio
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "ID"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} apperrors.ErrorResponse
// @Router       /portfolio/{id} [delete]
func (h *PortfolioHandler) DeletePortfolioItem(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.portfolioService.Delete(c.Request.Context(), h.GetDB(c), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Portfolio item deleted successfully"})
}
