package dto

import (
	"time"

	"github.com/nkripta/nkripta/internal/domain/organization"
	ierr "github.com/nkripta/nkripta/internal/errors"
	"github.com/nkripta/nkripta/internal/types"
)

type CreateOrganizationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Website     string `json:"website,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
}

func (r *CreateOrganizationRequest) Validate() error {
	if r.Name == "" {
		return ierr.NewError("name is required").
			WithHint("Organization name is required").
			WithReportableDetails(map[string]interface{}{
				"field": "name",
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *CreateOrganizationRequest) ToOrganization() *organization.Organization {
	return &organization.Organization{
		ID:          types.GenerateUUID(),
		Name:        r.Name,
		Slug:        organization.SlugFromName(r.Name),
		Description: r.Description,
		Website:     r.Website,
		Phone:       r.Phone,
		Email:       r.Email,
	}
}

type UpdateOrganizationRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Website     *string `json:"website,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Email       *string `json:"email,omitempty"`
}

func (r *UpdateOrganizationRequest) Validate() error {
	if r.Name != nil && *r.Name == "" {
		return ierr.NewError("name cannot be empty").
			WithHint("Organization name cannot be empty").
			Mark(ierr.ErrValidation)
	}
	return nil
}

type OrganizationResponse struct {
	ID          string    `json:"organizationId"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Website     string    `json:"website,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewOrganizationResponse(org *organization.Organization) *OrganizationResponse {
	return &OrganizationResponse{
		ID:          org.ID,
		Name:        org.Name,
		Slug:        org.Slug,
		Description: org.Description,
		Website:     org.Website,
		Phone:       org.Phone,
		Email:       org.Email,
		CreatedAt:   org.CreatedAt,
		UpdatedAt:   org.UpdatedAt,
	}
}
