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

type ProfileHandler struct {
	service service.ProfileService
	log     *logger.Logger
}

func NewProfileHandler(service service.ProfileService, log *logger.Logger) *ProfileHandler {
	return &ProfileHandler{service: service, log: log}
}

// @Summary Create a profile
// @Tags Profiles
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param profile body dto.CreateProfileRequest true "Profile to create"
// @Success 201 {object} dto.ProfileResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Router /profiles [post]
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var req dto.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateProfile(c.Request.Context(), &req)
	if err != nil {
		h.log.Error("Failed to create profile", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a profile
// @Tags Profiles
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Profile ID"
// @Success 200 {object} dto.ProfileResponse
// @Failure 403 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /profiles/{id} [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	resp, err := h.service.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Get the caller's profile
// @Tags Profiles
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.ProfileResponse
// @Router /profiles/me [get]
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	resp, err := h.service.GetProfile(c.Request.Context(), types.GetProfileID(c.Request.Context()))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Update a profile
// @Tags Profiles
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Profile ID"
// @Param profile body dto.UpdateProfileRequest true "Fields to update"
// @Success 200 {object} dto.ProfileResponse
// @Failure 403 {object} ierr.ErrorResponse
// @Router /profiles/{id} [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateProfile(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.log.Error("Failed to update profile", "error", err)
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary List profiles in an organization
// @Tags Profiles
// @Produce json
// @Security ApiKeyAuth
// @Param organizationId query string false "Organization ID (defaults to the caller's)"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} types.ListResponse[dto.ProfileResponse]
// @Router /profiles [get]
func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	var filter types.QueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid pagination parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListProfiles(c.Request.Context(), c.Query("organizationId"), &filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
