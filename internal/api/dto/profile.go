package dto

import (
	"regexp"
	"time"

	"github.com/nkripta/nkripta/internal/domain/profile"
	ierr "github.com/nkripta/nkripta/internal/errors"
	"github.com/nkripta/nkripta/internal/types"
)

var emailRegexp = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type CreateProfileRequest struct {
	FirstName         string       `json:"firstName"`
	MiddleName        string       `json:"middleName,omitempty"`
	LastName          string       `json:"lastName"`
	Position          string       `json:"position,omitempty"`
	Email             string       `json:"email"`
	Phone             string       `json:"phone,omitempty"`
	Mobile            string       `json:"mobile,omitempty"`
	PreferredLanguage string       `json:"preferredLanguage,omitempty"`
	Roles             []types.Role `json:"roles,omitempty"`
	OrganizationID    string       `json:"organizationId"`
}

func (r *CreateProfileRequest) Validate() error {
	if r.FirstName == "" || r.LastName == "" {
		return ierr.NewError("firstName and lastName are required").
			WithHint("First and last name are required").
			Mark(ierr.ErrValidation)
	}
	if !emailRegexp.MatchString(r.Email) {
		return ierr.NewError("invalid email").
			WithHint("A valid email address is required").
			WithReportableDetails(map[string]interface{}{
				"field": "email",
			}).
			Mark(ierr.ErrValidation)
	}
	if r.OrganizationID == "" {
		return ierr.NewError("organizationId is required").
			WithHint("Organization ID is required").
			WithReportableDetails(map[string]interface{}{
				"field": "organizationId",
			}).
			Mark(ierr.ErrValidation)
	}
	if !types.ValidateRoles(r.Roles) {
		return ierr.NewError("invalid roles").
			WithHint("Roles must be USER or ADMIN").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *CreateProfileRequest) ToProfile() *profile.Profile {
	roles := r.Roles
	if len(roles) == 0 {
		roles = []types.Role{types.RoleUser}
	}
	return &profile.Profile{
		ID:                types.GenerateUUID(),
		FirstName:         r.FirstName,
		MiddleName:        r.MiddleName,
		LastName:          r.LastName,
		Position:          r.Position,
		Email:             r.Email,
		Phone:             r.Phone,
		Mobile:            r.Mobile,
		PreferredLanguage: r.PreferredLanguage,
		Roles:             roles,
		OrganizationID:    r.OrganizationID,
	}
}

type UpdateProfileRequest struct {
	FirstName         *string `json:"firstName,omitempty"`
	MiddleName        *string `json:"middleName,omitempty"`
	LastName          *string `json:"lastName,omitempty"`
	Position          *string `json:"position,omitempty"`
	Phone             *string `json:"phone,omitempty"`
	Mobile            *string `json:"mobile,omitempty"`
	Avatar            *string `json:"avatar,omitempty"`
	PreferredLanguage *string `json:"preferredLanguage,omitempty"`
}

func (r *UpdateProfileRequest) Validate() error {
	if r.FirstName != nil && *r.FirstName == "" {
		return ierr.NewError("firstName cannot be empty").
			WithHint("First name cannot be empty").
			Mark(ierr.ErrValidation)
	}
	if r.LastName != nil && *r.LastName == "" {
		return ierr.NewError("lastName cannot be empty").
			WithHint("Last name cannot be empty").
			Mark(ierr.ErrValidation)
	}
	return nil
}

type ProfileResponse struct {
	ID                string       `json:"profileId"`
	FirstName         string       `json:"firstName"`
	MiddleName        string       `json:"middleName,omitempty"`
	LastName          string       `json:"lastName"`
	Position          string       `json:"position,omitempty"`
	Email             string       `json:"email"`
	Phone             string       `json:"phone,omitempty"`
	Mobile            string       `json:"mobile,omitempty"`
	Avatar            string       `json:"avatar,omitempty"`
	PreferredLanguage string       `json:"preferredLanguage,omitempty"`
	Roles             []types.Role `json:"roles"`
	OrganizationID    string       `json:"organizationId"`
	HasBillingAccount bool         `json:"hasBillingAccount"`
	CreatedAt         time.Time    `json:"createdAt"`
	UpdatedAt         time.Time    `json:"updatedAt"`
}

func NewProfileResponse(p *profile.Profile) *ProfileResponse {
	return &ProfileResponse{
		ID:                p.ID,
		FirstName:         p.FirstName,
		MiddleName:        p.MiddleName,
		LastName:          p.LastName,
		Position:          p.Position,
		Email:             p.Email,
		Phone:             p.Phone,
		Mobile:            p.Mobile,
		Avatar:            p.Avatar,
		PreferredLanguage: p.PreferredLanguage,
		Roles:             p.Roles,
		OrganizationID:    p.OrganizationID,
		HasBillingAccount: p.StripeCustomerID != "",
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
