package service

import (
	"context"

	"github.com/samber/lo"

	"github.com/nkripta/nkripta/internal/api/dto"
	"github.com/nkripta/nkripta/internal/domain/organization"
	"github.com/nkripta/nkripta/internal/types"
)

type OrganizationService interface {
	CreateOrganization(ctx context.Context, req *dto.CreateOrganizationRequest) (*dto.OrganizationResponse, error)
	GetOrganization(ctx context.Context, id string) (*dto.OrganizationResponse, error)
	UpdateOrganization(ctx context.Context, id string, req *dto.UpdateOrganizationRequest) (*dto.OrganizationResponse, error)
	ListOrganizations(ctx context.Context, filter *types.QueryFilter) (*types.ListResponse[*dto.OrganizationResponse], error)
}

type organizationService struct {
	ServiceParams
}

func NewOrganizationService(params ServiceParams) OrganizationService {
	return &organizationService{ServiceParams: params}
}

// CreateOrganization provisions a new tenant. Only admins may create one;
// the route carries the same guard, the check here covers every other caller.
func (s *organizationService) CreateOrganization(ctx context.Context, req *dto.CreateOrganizationRequest) (*dto.OrganizationResponse, error) {
	if !types.HasAdmin(types.GetRoles(ctx)) {
		return nil, forbidden()
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	org := req.ToOrganization()
	org.CreatedBy = types.GetProfileID(ctx)
	org.UpdatedBy = org.CreatedBy

	if err := s.OrgRepo.Create(ctx, org); err != nil {
		return nil, err
	}

	s.Logger.Infow("organization created", "organization_id", org.ID, "slug", org.Slug)
	return dto.NewOrganizationResponse(org), nil
}

func (s *organizationService) GetOrganization(ctx context.Context, id string) (*dto.OrganizationResponse, error) {
	org, err := s.OrgRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewOrganizationResponse(org), nil
}

// UpdateOrganization applies a partial update. Only admins of the targeted
// organization may change it.
func (s *organizationService) UpdateOrganization(ctx context.Context, id string, req *dto.UpdateOrganizationRequest) (*dto.OrganizationResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	org, err := s.OrgRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !types.HasAdmin(types.GetRoles(ctx)) || types.GetOrganizationID(ctx) != org.ID {
		return nil, forbidden()
	}

	if req.Name != nil {
		org.Name = *req.Name
	}
	if req.Description != nil {
		org.Description = *req.Description
	}
	if req.Website != nil {
		org.Website = *req.Website
	}
	if req.Phone != nil {
		org.Phone = *req.Phone
	}
	if req.Email != nil {
		org.Email = *req.Email
	}
	org.UpdatedBy = types.GetProfileID(ctx)

	if err := s.OrgRepo.Update(ctx, org); err != nil {
		return nil, err
	}
	return dto.NewOrganizationResponse(org), nil
}

func (s *organizationService) ListOrganizations(ctx context.Context, filter *types.QueryFilter) (*types.ListResponse[*dto.OrganizationResponse], error) {
	orgs, err := s.OrgRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.OrgRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	items := lo.Map(orgs, func(org *organization.Organization, _ int) *dto.OrganizationResponse {
		return dto.NewOrganizationResponse(org)
	})
	resp := types.NewListResponse(items, total, filter.GetPage(), filter.GetLimit())
	return &resp, nil
}
