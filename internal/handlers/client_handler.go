package handlers

import (
	"net/http"

	"rastaka_backend/internal/services"
	"rastaka_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ClientHandler struct {
	*BaseHandler
	clientService services.ClientService
}

func NewClientHandler(base *BaseHandler, clientService services.ClientService) *ClientHandler {
	return &ClientHandler{
		BaseHandler:   base,
		clientService: clientService,
	}
}

func (h *ClientHandler) RegisterRoutes(rg *gin.RouterGroup, access Access) {
	clients := rg.Group("/clients")
	{
		clients.GET("", h.ListClients)
		clients.GET("/id/:id", h.GetClientByID)
		clients.GET("/:slug", h.GetClientBySlug)

		clients.POST("", access.Auth, access.Write, h.CreateClient)
		clients.PATCH("/:id", access.Auth, access.Write, h.UpdateClient)
		clients.DELETE("/:id", access.Auth, access.Delete, h.DeleteClient)
	}
}

// ListClients godoc
// @Summary      Список клиентов
// @Tags         clients
// @Produce      json
// @Param        type query string false "INDIVIDUAL или COMPANY"
// @Success      200 {object} map[string]interface{}
// @Router       /clients [get]
func (h *ClientHandler) ListClients(c *gin.Context) {
	var query dto.ClientListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	clients, err := h.clientService.List(c.Request.Context(), h.GetDB(c), query.Type)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"clients": clients,
		"count":   len(clients),
	})
}

// GetClientBySlug godoc
// @Summary      Клиент по slug (с опубликованными работами)
// @Tags         clients
// @Produce      json
// @Param        slug path string true "Slug"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} apperrors.ErrorResponse
// @Router       /clients/{slug} [get]
func (h *ClientHandler) GetClientBySlug(c *gin.Context) {
	client, err := h.clientService.GetBySlug(c.Request.Context(), h.GetDB(c), c.Param("slug"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"client": client})
}

// GetClientByID godoc
// @Summary      Клиент по ID
// @Tags         clients
// @Produce      json
// @Param        id path string true "ID клиента"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} apperrors.ErrorResponse
// @Router       /clients/id/{id} [get]
func (h *ClientHandler) GetClientByID(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	client, err := h.clientService.GetByID(c.Request.Context(), h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"client": client})
}

// CreateClient godoc
// @Summary      Создать клиента
// @Tags         clients
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        name formData string true "Название"
// @Param        type formData string true "INDIVIDUAL или COMPANY"
// @Param        description formData string false "Описание"
// @Param        websiteUrl formData string false "Сайт"
// @Param        logo formData file false "Логотип"
// @Success      201 {object} map[string]interface{}
// @Failure      400 {object} apperrors.ErrorResponse
// @Failure      415 {object} apperrors.ErrorResponse
// @Router       /clients [post]
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req dto.CreateClientRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	logo, ok := h.OptionalFile(c, "logo")
	if !ok {
		return
	}

	client, err := h.clientService.Create(c.Request.Context(), h.GetDB(c), &req, logo)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Client created successfully",
		"client":  client,
	})
}

// UpdateClient godoc
// @Summary      Обновить клиента
// @Tags         clients
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "ID клиента"
// @Param        logo formData file false "Новый логотип"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} apperrors.ErrorResponse
// @Failure      404 {object} apperrors.ErrorResponse
// @Router       /clients/{id} [patch]
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateClientRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	logo, ok := h.OptionalFile(c, "logo")
	if !ok {
		return
	}

	client, err := h.clientService.Update(c.Request.Context(), h.GetDB(c), id, &req, logo)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Client updated successfully",
		"client":  client,
	})
}

// DeleteClient godoc
// @Summary      Удалить клиента
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "ID клиента"
// @Success      200 {object} map[string]interface{}
// @Failure      409 {object} apperrors.ErrorResponse
// @Router       /clients/{id} [delete]
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.clientService.Delete(c.Request.Context(), h.GetDB(c), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}
