package handlers

import (
	"net/http"

	"rastaka_backend/internal/services"
	"rastaka_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type SectionHandler struct {
	*BaseHandler
	sectionService services.SectionService
}

func NewSectionHandler(base *BaseHandler, sectionService services.SectionService) *SectionHandler {
	return &SectionHandler{
		BaseHandler:    base,
		sectionService: sectionService,
	}
}

func (h *SectionHandler) RegisterRoutes(rg *gin.RouterGroup, access Access) {
	workSections := rg.Group("/works/:id/sections")
	{
		workSections.GET("", h.ListWorkSections)
		workSections.POST("", access.Auth, access.Write, h.CreateSection)
	}

	sections := rg.Group("/sections")
	{
		sections.GET("/:id", h.GetSection)
		sections.PATCH("/:id", access.Auth, access.Write, h.UpdateSection)
		sections.DELETE("/:id", access.Auth, access.Delete, h.DeleteSection)
	}
}

// ListWorkSections godoc
// @Summary      Секции работы
// @Tags         sections
// @Produce      json
// @Param        id path string true "ID работы"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} apperrors.ErrorResponse
// @Router       /works/{id}/sections [get]
func (h *SectionHandler) ListWorkSections(c *gin.Context) {
	workID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	sections, err := h.sectionService.ListByWork(c.Request.Context(), h.GetDB(c), workID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sections": sections})
}

// CreateSection godoc
// @Summary      Добавить секцию к работе
// @Tags         sections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "ID работы"
// @Param        request body dto.CreateSectionRequest true "Секция"
// @Success      201 {object} map[string]interface{}
// @Failure      400 {object} apperrors.ErrorResponse
// @Failure      404 {object} apperrors.ErrorResponse
// @Router       /works/{id}/sections [post]
func (h *SectionHandler) CreateSection(c *gin.Context) {
	workID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CreateSectionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	section, err := h.sectionService.Create(c.Request.Context(), h.GetDB(c), workID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"section": section})
}

// GetSection godoc
// @Summary      Секция по ID
// @Tags         sections
// @Produce      json
// @Param        id path string true "ID секции"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} apperrors.ErrorResponse
// @Router       /sections/{id} [get]
func (h *SectionHandler) GetSection(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	section, err := h.sectionService.Get(c.Request.Context(), h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"section": section})
}

// UpdateSection godoc
// @Summary      Обновить секцию
// @Tags         sections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "ID секции"
// @Param        request body dto.UpdateSectionRequest true "Изменяемые поля"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} apperrors.ErrorResponse
// @Router       /sections/{id} [patch]
func (h *SectionHandler) UpdateSection(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateSectionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	section, err := h.sectionService.Update(c.Request.Context(), h.GetDB(c), id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"section": section})
}

// DeleteSection godoc
// @Summary      Удалить секцию (медиа остаются у работы)
// @Tags         sections
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "ID секции"
// @Success      200 {object} map[string]interface{}
// @Router       /sections/{id} [delete]
func (h *SectionHandler) DeleteSection(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.sectionService.Delete(c.Request.Context(), h.GetDB(c), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Section deleted successfully"})
}
