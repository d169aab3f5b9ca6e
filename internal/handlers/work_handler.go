package handlers

import (
	"net/http"

	"rastaka_backend/internal/services"
	"rastaka_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type WorkHandler struct {
	*BaseHandler
	workService services.WorkService
}

func NewWorkHandler(base *BaseHandler, workService services.WorkService) *WorkHandler {
	return &WorkHandler{
		BaseHandler: base,
		workService: workService,
	}
}

func (h *WorkHandler) RegisterRoutes(rg *gin.RouterGroup, access Access) {
	works := rg.Group("/works")
	{
		works.GET("", h.ListWorks)
		works.GET("/id/:id", h.GetWorkByID)
		// В дереве GET параметр на этой позиции называется :id (см. /:id/sections),
		// здесь в нем slug
		works.GET("/:id", h.GetWorkBySlug)

		works.POST("", access.Auth, access.Write, h.CreateWork)
		works.PATCH("/:id", access.Auth, access.Write, h.UpdateWork)
		works.DELETE("/:id", access.Auth, access.Delete, h.DeleteWork)
	}

	tags := rg.Group("/tags")
	{
		tags.GET("", h.ListTags)
		tags.POST("", access.Auth, access.Write, h.CreateTag)
		tags.DELETE("/:id", access.Auth, access.Delete, h.DeleteTag)
	}
}

// ListWorks godoc
// @Summary      Список работ
// @Tags         works
// @Produce      json
// @Param        status query string false "DRAFT, PUBLISHED, ARCHIVED (по умолчанию PUBLISHED)"
// @Param        type query string false "LOGO, WEBSITE, SOCIAL_MEDIA, REEL"
// @Param        clientId query string false "ID клиента"
// @Param        clientType query string false "INDIVIDUAL или COMPANY"
// @Param        featured query bool false "Только избранные"
// @Param        page query int false "Страница"
// @Param        pageSize query int false "Размер страницы"
// @Success      200 {object} dto.WorkListResponse
// @Router       /works [get]
func (h *WorkHandler) ListWorks(c *gin.Context) {
	var query dto.WorkListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	response, err := h.workService.List(c.Request.Context(), h.GetDB(c), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetWorkBySlug godoc
// @Summary      Работа по slug
// @Tags         works
// @Produce      json
// @Param        slug path string true "Slug"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} apperrors.ErrorResponse
// @Router       /works/{slug} [get]
func (h *WorkHandler) GetWorkBySlug(c *gin.Context) {
	work, err := h.workService.GetBySlug(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"work": work})
}

// GetWorkByID godoc
// @Summary      Работа по ID
// @Tags         works
// @Produce      json
// @Param        id path string true "ID работы"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} apperrors.ErrorResponse
// @Router       /works/id/{id} [get]
func (h *WorkHandler) GetWorkByID(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	work, err := h.workService.GetByID(c.Request.Context(), h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"work": work})
}

// CreateWork godoc
// @Summary      Создать работу
// @Tags         works
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        clientId formData string true "ID клиента"
// @Param        type formData string true "LOGO, WEBSITE, SOCIAL_MEDIA, REEL"
// @Param        title formData string true "Заголовок"
// @Param        tagIds formData string false "Теги: повторяющиеся поля, JSON-массив или CSV"
// @Param        file formData file false "Обложка"
// @Success      201 {object} map[string]interface{}
// @Failure      400 {object} apperrors.ErrorResponse
// @Failure      404 {object} apperrors.ErrorResponse
// @Router       /works [post]
func (h *WorkHandler) CreateWork(c *gin.Context) {
	var req dto.CreateWorkRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	tagIDs, ok := h.ParseTagIDs(c)
	if !ok {
		return
	}
	if tagIDs != nil {
		req.TagIDs = *tagIDs
	}

	cover, ok := h.OptionalFile(c, "file")
	if !ok {
		return
	}

	work, err := h.workService.Create(c.Request.Context(), h.GetDB(c), &req, cover)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Work created successfully",
		"work":    work,
	})
}

// UpdateWork godoc
// @Summary      Обновить работу
// @Tags         works
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "ID работы"
// @Param        request body dto.UpdateWorkRequest true "Изменяемые поля"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} apperrors.ErrorResponse
// @Failure      404 {object} apperrors.ErrorResponse
// @Router       /works/{id} [patch]
func (h *WorkHandler) UpdateWork(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateWorkRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	// Для JSON tagIds уже разобраны, для форм берем из полей
	if req.TagIDs == nil {
		tagIDs, ok := h.ParseTagIDs(c)
		if !ok {
			return
		}
		req.TagIDs = tagIDs
	}

	work, err := h.workService.Update(c.Request.Context(), h.GetDB(c), id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Work updated successfully",
		"work":    work,
	})
}

// DeleteWork godoc
// @Summary      Удалить работу вместе с медиа и секциями
// @Tags         works
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "ID работы"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} apperrors.ErrorResponse
// @Router       /works/{id} [delete]
func (h *WorkHandler) DeleteWork(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.workService.Delete(c.Request.Context(), h.GetDB(c), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Work deleted successfully"})
}

// ListTags godoc
// @Summary      Все теги
// @Tags         tags
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /tags [get]
func (h *WorkHandler) ListTags(c *gin.Context) {
	tags, err := h.workService.ListTags(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

// CreateTag godoc
// @Summary      Создать тег
// @Tags         tags
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateTagRequest true "Название"
// @Success      201 {object} map[string]interface{}
// @Failure      400 {object} apperrors.ErrorResponse
// @Router       /tags [post]
func (h *WorkHandler) CreateTag(c *gin.Context) {
	var req dto.CreateTagRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	tag, err := h.workService.CreateTag(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"tag": tag})
}

// DeleteTag godoc
// @Summary      Удалить тег
// @Tags         tags
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "ID тега"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} apperrors.ErrorResponse
// @Router       /tags/{id} [delete]
func (h *WorkHandler) DeleteTag(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.workService.DeleteTag(c.Request.Context(), h.GetDB(c), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tag deleted successfully"})
}
