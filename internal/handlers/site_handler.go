package handlers

import (
	"net/http"

	"rastaka_backend/internal/services"
	"rastaka_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// SiteHandler - настройки сайта и SEO
type SiteHandler struct {
	*BaseHandler
	siteService services.SiteService
}

func NewSiteHandler(base *BaseHandler, siteService services.SiteService) *SiteHandler {
	return &SiteHandler{
		BaseHandler: base,
		siteService: siteService,
	}
}

func (h *SiteHandler) RegisterRoutes(rg *gin.RouterGroup, access Access) {
	config := rg.Group("/config")
	{
		config.GET("", h.GetConfig)
		config.PUT("", access.Auth, access.Write, h.UpdateConfig)
	}

	seo := rg.Group("/seo")
	{
		seo.GET("/config", h.GetSeoConfig)
		seo.PUT("/config", access.Auth, access.Write, h.UpdateSeoConfig)
		seo.GET("/metadata/:type/:slug", h.GetPageMetadata)
		seo.GET("/sitemap.xml", h.Sitemap)
		seo.GET("/robots.txt", h.RobotsTxt)
	}
}

// GetConfig godoc
// @Summary      Настройки сайта
// @Tags         config
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /config [get]
func (h *SiteHandler) GetConfig(c *gin.Context) {
	config, err := h.siteService.GetConfig(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"config": config})
}

// UpdateConfig godoc
// @Summary      Обновить настройки сайта
// @Tags         config
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.UpdateSiteConfigRequest true "Изменяемые поля"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} apperrors.ErrorResponse
// @Router       /config [put]
func (h *SiteHandler) UpdateConfig(c *gin.Context) {
	var req dto.UpdateSiteConfigRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	config, err := h.siteService.UpdateConfig(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Config updated successfully",
		"config":  config,
	})
}

// GetSeoConfig godoc
// @Summary      SEO-настройки
// @Tags         seo
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /seo/config [get]
func (h *SiteHandler) GetSeoConfig(c *gin.Context) {
	seoConfig, err := h.siteService.GetSeoConfig(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"seoConfig": seoConfig})
}

// UpdateSeoConfig godoc
// @Summary      Обновить SEO-настройки
// @Tags         seo
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.UpdateSeoConfigRequest true "Изменяемые поля"
// @Success      200 {object} map[string]interface{}
// @Router       /seo/config [put]
func (h *SiteHandler) UpdateSeoConfig(c *gin.Context) {
	var req dto.UpdateSeoConfigRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	seoConfig, err := h.siteService.UpdateSeoConfig(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "SEO config updated successfully",
		"seoConfig": seoConfig,
	})
}

// GetPageMetadata godoc
// @Summary      Мета-теги страницы
// @Tags         seo
// @Produce      json
// @Param        type path string true "portfolio или company"
// @Param        slug path string true "Slug"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} apperrors.ErrorResponse
// @Failure      404 {object} apperrors.ErrorResponse
// @Router       /seo/metadata/{type}/{slug} [get]
func (h *SiteHandler) GetPageMetadata(c *gin.Context) {
	metadata, err := h.siteService.Metadata(c.Request.Context(), h.GetDB(c), c.Param("type"), c.Param("slug"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"metadata": metadata})
}

// Sitemap godoc
// @Summary      sitemap.xml
// @Tags         seo
// @Produce      xml
// @Success      200 {string} string
// @Router       /seo/sitemap.xml [get]
func (h *SiteHandler) Sitemap(c *gin.Context) {
	body, err := h.siteService.Sitemap(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}

// RobotsTxt godoc
// @Summary      robots.txt
// @Tags         seo
// @Produce      plain
// @Success      200 {string} string
// @Router       /seo/robots.txt [get]
func (h *SiteHandler) RobotsTxt(c *gin.Context) {
	c.String(http.StatusOK, h.siteService.RobotsTxt())
}
