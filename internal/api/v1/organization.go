package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nkripta/nkripta/internal/api/dto"
	ierr "github.com/nkripta/nkripta/internal/errors"
	"github.com/nkripta/nkripta/internal/logger"
	"github.com/nkripta/nkripta/internal/service"
	"github.com/nkripta/nkripta/internal/types"
)

type OrganizationHandler struct {
	service service.OrganizationService
	log     *logger.Logger
}

func NewOrganizationHandler(service service.OrganizationService, log *logger.Logger) *OrganizationHandler {
	return &OrganizationHandler{service: service, log: log}
}

// @Summary Create an organization
// @Tags Organizations
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param organization body dto.CreateOrganizationRequest true "Organization to create"
// @Success 201 {object} dto.OrganizationResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Router /organizations [post]
func (h *OrganizationHandler) CreateOrganization(c *gin.Context) {
	var req dto.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateOrganization(c.Request.Context(), &req)
	if err != nil {
		h.log.Error("Failed to create organization", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get an organization
// @Tags Organizations
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Organization ID"
// @Success 200 {object} dto.OrganizationResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /organizations/{id} [get]
func (h *OrganizationHandler) GetOrganization(c *gin.Context) {
	resp, err := h.service.GetOrganization(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Update an organization
// @Tags Organizations
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Organization ID"
// @Param organization body dto.UpdateOrganizationRequest true "Fields to update"
// @Success 200 {object} dto.OrganizationResponse
// @Failure 403 {object} ierr.ErrorResponse
// @Router /organizations/{id} [put]
func (h *OrganizationHandler) UpdateOrganization(c *gin.Context) {
	var req dto.UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateOrganization(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.log.Error("Failed to update organization", "error", err)
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary List organizations
// @Tags Organizations
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} types.ListResponse[dto.OrganizationResponse]
// @Router /organizations [get]
func (h *OrganizationHandler) ListOrganizations(c *gin.Context) {
	var filter types.QueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid pagination parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListOrganizations(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
