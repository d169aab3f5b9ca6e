package handlers

import (
	"net/http"

	"rastaka_backend/internal/services"
	"rastaka_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	*BaseHandler
	contactService services.ContactService
}

func NewContactHandler(base *BaseHandler, contactService services.ContactService) *ContactHandler {
	return &ContactHandler{
		BaseHandler:    base,
		contactService: contactService,
	}
}

func (h *ContactHandler) RegisterRoutes(rg *gin.RouterGroup, access Access) {
	contact := rg.Group("/contact")
	{
		contact.POST("", h.Submit)
	}

	submissions := rg.Group("/contact/submissions")
	submissions.Use(access.Auth)
	{
		submissions.GET("", access.InboxRead, h.ListSubmissions)
		submissions.GET("/stats", access.InboxRead, h.GetStats)
		submissions.GET("/:id", access.InboxRead, h.GetSubmission)
		submissions.PATCH("/:id/status", access.InboxRead, h.UpdateStatus)
		submissions.DELETE("/:id", access.InboxDelete, h.DeleteSubmission)
	}
}

// Submit godoc
// @Summary      Отправить заявку
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        request body dto.ContactRequest true "Заявка"
// @Success      201 {object} map[string]interface{}
// @Failure      400 {object} apperrors.ErrorResponse
// @Router       /contact [post]
func (h *ContactHandler) Submit(c *gin.Context) {
	var req dto.ContactRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	submission, err := h.contactService.Submit(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Your message has been sent",
		"submission": submission,
	})
}

// ListSubmissions godoc
// @Summary      Заявки
// @Tags         contact
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "UNREAD, READ, ARCHIVED"
// @Param        limit query int false "По умолчанию 50, максимум 100"
// @Param        offset query int false "Смещение"
// @Success      200 {object} dto.ContactListResponse
// @Router       /contact/submissions [get]
func (h *ContactHandler) ListSubmissions(c *gin.Context) {
	var query dto.ContactListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	response, err := h.contactService.List(c.Request.Context(), h.GetDB(c), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetStats godoc
// @Summary      Статистика заявок
// @Tags         contact
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]interface{}
// @Router       /contact/submissions/stats [get]
func (h *ContactHandler) GetStats(c *gin.Context) {
	stats, err := h.contactService.Stats(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// GetSubmission godoc
// @Summary      Заявка (непрочитанная помечается прочитанной)
// @Tags         contact
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "ID заявки"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} apperrors.ErrorResponse
// @Router       /contact/submissions/{id} [get]
func (h *ContactHandler) GetSubmission(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	submission, err := h.contactService.Get(c.Request.Context(), h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"submission": submission})
}

// UpdateStatus godoc
// @Summary      Сменить статус заявки
// @Tags         contact
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "ID заявки"
// @Param        request body dto.UpdateContactStatusRequest true "Статус"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} apperrors.ErrorResponse
// @Router       /contact/submissions/{id}/status [patch]
func (h *ContactHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateContactStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	submission, err := h.contactService.UpdateStatus(c.Request.Context(), h.GetDB(c), id, req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"submission": submission})
}

// DeleteSubmission godoc
// @Summary      Удалить заявку
// @Tags         contact
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "ID заявки"
// @Success      200 {object} map[string]interface{}
// @Failure      403 {object} apperrors.ErrorResponse
// @Router       /contact/submissions/{id} [delete]
func (h *ContactHandler) DeleteSubmission(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.contactService.Delete(c.Request.Context(), h.GetDB(c), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Submission deleted successfully"})
}
