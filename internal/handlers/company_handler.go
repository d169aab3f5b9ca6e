package handlers

import (
	"net/http"

	"rastaka_backend/internal/services"
	"rastaka_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	*BaseHandler
	companyService services.CompanyService
}

func NewCompanyHandler(base *BaseHandler, companyService services.CompanyService) *CompanyHandler {
	return &CompanyHandler{
		BaseHandler:    base,
		companyService: companyService,
	}
}

func (h *CompanyHandler) RegisterRoutes(rg *gin.RouterGroup, access Access) {
	companies := rg.Group("/companies")
	{
		companies.GET("", h.ListCompanies)
		companies.GET("/slug/:slug", h.GetCompanyBySlug)
		companies.GET("/:id", h.GetCompany)
		companies.GET("/:id/portfolio", h.GetCompanyPortfolio)

		companies.POST("", access.Auth, access.Write, h.CreateCompany)
		companies.PUT("/:id", access.Auth, access.Write, h.UpdateCompany)
		companies.DELETE("/:id", access.Auth, access.Delete, h.DeleteCompany)
	}
}

// ListCompanies godoc
// @Summary      Компании с количеством работ
// @Tags         companies
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /companies [get]
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	companies, err := h.companyService.List(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"companies": companies,
		"count":     len(companies),
	})
}

// GetCompany godoc
// @Summary      Компания по ID (с работами)
// @Tags         companies
// @Produce      json
// @Param        id path string true "ID компании"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} apperrors.ErrorResponse
// @Router       /companies/{id} [get]
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	company, err := h.companyService.Get(c.Request.Context(), h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"company": company})
}

// GetCompanyBySlug godoc
// @Summary      Компания по slug
// @Tags         companies
// @Produce      json
// @Param        slug path string true "Slug"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} apperrors.ErrorResponse
// @Router       /companies/slug/{slug} [get]
func (h *CompanyHandler) GetCompanyBySlug(c *gin.Context) {
	company, err := h.companyService.GetBySlug(c.Request.Context(), h.GetDB(c), c.Param("slug"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"company": company})
}

// GetCompanyPortfolio godoc
// @Summary      Работы компании
// @Tags         companies
// @Produce      json
// @Param        id path string true "ID компании"
// @Param        type query string false "WEBSITE, LOGO, REEL, SOCIAL_MEDIA"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} apperrors.ErrorResponse
// @Router       /companies/{id}/portfolio [get]
func (h *CompanyHandler) GetCompanyPortfolio(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var filter dto.PortfolioFilter
	if !h.BindAndValidate_Query(c, &filter) {
		return
	}

	items, err := h.companyService.Portfolio(c.Request.Context(), h.GetDB(c), id, filter.Type)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"portfolioItems": items,
		"count":          len(items),
	})
}

// CreateCompany godoc
// @Summary      Создать компанию
// @Tags         companies
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        name formData string true "Название"
// @Param        description formData string false "Описание"
// @Param        logo formData file false "Логотип"
// @Success      201 {object} map[string]interface{}
// @Failure      400 {object} apperrors.ErrorResponse
// @Router       /companies [post]
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	var req dto.CreateCompanyRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	logo, ok := h.OptionalFile(c, "logo")
	if !ok {
		return
	}

	company, err := h.companyService.Create(c.Request.Context(), h.GetDB(c), &req, logo)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Company created successfully",
		"company": company,
	})
}

// UpdateCompany godoc
// @Summary      Обновить компанию
// @Tags         companies
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "ID компании"
// @Param        logo formData file false "Новый логотип"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} apperrors.ErrorResponse
// @Failure      404 {object} apperrors.ErrorResponse
// @Router       /companies/{id} [put]
func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCompanyRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	logo, ok := h.OptionalFile(c, "logo")
	if !ok {
		return
	}

	company, err := h.companyService.Update(c.Request.Context(), h.GetDB(c), id, &req, logo)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Company updated successfully",
		"company": company,
	})
}

// DeleteCompany godoc
// @Summary      Удалить компанию
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "ID компании"
// @Success      200 {object} map[string]interface{}
// @Failure      409 {object} apperrors.ErrorResponse
// @Router       /companies/{id} [delete]
func (h *CompanyHandler) DeleteCompany(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.companyService.Delete(c.Request.Context(), h.GetDB(c), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Company deleted successfully"})
}
