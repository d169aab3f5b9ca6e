package handlers

import (
	"net/http"

	"rastaka_backend/internal/models"
	"rastaka_backend/internal/services"
	"rastaka_backend/internal/services/dto"
	"rastaka_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type MediaHandler struct {
	*BaseHandler
	mediaService services.MediaService
}

func NewMediaHandler(base *BaseHandler, mediaService services.MediaService) *MediaHandler {
	return &MediaHandler{
		BaseHandler:  base,
		mediaService: mediaService,
	}
}

func (h *MediaHandler) RegisterRoutes(rg *gin.RouterGroup, access Access) {
	media := rg.Group("/media")
	{
		media.GET("/work/:id", h.ListWorkMedia)

		media.POST("/image", access.Auth, access.Write, h.UploadImage)
		media.POST("/reel", access.Auth, access.Write, h.UploadReel)
		media.PATCH("/:id", access.Auth, access.Write, h.UpdateMedia)
		media.DELETE("/:id", access.Auth, access.Delete, h.DeleteMedia)
	}
}

// UploadImage godoc
// @Summary      Загрузить изображение работы (с превью)
// @Tags         media
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        workId formData string true "ID работы"
// @Param        sectionId formData string false "ID секции"
// @Param        altText formData string false "Alt"
// @Param        isPrimary formData bool false "Главное медиа"
// @Param        sortOrder formData int false "Порядок"
// @Param        file formData file true "Изображение"
// @Success      201 {object} map[string]interface{}
// @Failure      400 {object} apperrors.ErrorResponse
// @Failure      413 {object} apperrors.ErrorResponse
// @Failure      415 {object} apperrors.ErrorResponse
// @Router       /media/image [post]
func (h *MediaHandler) UploadImage(c *gin.Context) {
	h.upload(c, models.MediaImage)
}

// UploadReel godoc
// @Summary      Загрузить видео работы
// @Tags         media
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        workId formData string true "ID работы"
// @Param        file formData file true "Видео"
// @Success      201 {object} map[string]interface{}
// @Failure      400 {object} apperrors.ErrorResponse
// @Failure      415 {object} apperrors.ErrorResponse
// @Router       /media/reel [post]
func (h *MediaHandler) UploadReel(c *gin.Context) {
	h.upload(c, models.MediaVideo)
}

func (h *MediaHandler) upload(c *gin.Context, fileType models.MediaFileType) {
	var req dto.UploadMediaRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	file, ok := h.OptionalFile(c, "file")
	if !ok {
		return
	}
	if file == nil {
		apperrors.HandleError(c, apperrors.ErrFileRequired)
		return
	}

	media, err := h.mediaService.Upload(c.Request.Context(), h.GetDB(c), fileType, &req, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"media": media})
}

// ListWorkMedia godoc
// @Summary      Медиа работы
// @Tags         media
// @Produce      json
// @Param        id path string true "ID работы"
// @Success      200 {object} map[string]interface{}
// @Router       /media/work/{id} [get]
func (h *MediaHandler) ListWorkMedia(c *gin.Context) {
	workID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	media, err := h.mediaService.ListByWork(c.Request.Context(), h.GetDB(c), workID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"media": media})
}

// UpdateMedia godoc
// @Summary      Обновить медиа
// @Tags         media
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "ID медиа"
// @Param        request body dto.UpdateMediaRequest true "Изменяемые поля"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} apperrors.ErrorResponse
// @Failure      404 {object} apperrors.ErrorResponse
// @Router       /media/{id} [patch]
func (h *MediaHandler) UpdateMedia(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateMediaRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	media, err := h.mediaService.Update(c.Request.Context(), h.GetDB(c), id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"media": media})
}

// DeleteMedia godoc
// @Summary      Удалить медиа и файл
// @Tags         media
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "ID медиа"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} apperrors.ErrorResponse
// @Router       /media/{id} [delete]
func (h *MediaHandler) DeleteMedia(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.mediaService.Delete(c.Request.Context(), h.GetDB(c), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Media deleted successfully"})
}
