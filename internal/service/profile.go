package service

import (
	"context"

	"github.com/samber/lo"

	"github.com/nkripta/nkripta/internal/api/dto"
	"github.com/nkripta/nkripta/internal/domain/profile"
	"github.com/nkripta/nkripta/internal/types"
)

type ProfileService interface {
	CreateProfile(ctx context.Context, req *dto.CreateProfileRequest) (*dto.ProfileResponse, error)
	GetProfile(ctx context.Context, id string) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, id string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	ListProfiles(ctx context.Context, organizationID string, filter *types.QueryFilter) (*types.ListResponse[*dto.ProfileResponse], error)
}

type profileService struct {
	ServiceParams
}

func NewProfileService(params ServiceParams) ProfileService {
	return &profileService{ServiceParams: params}
}

// CreateProfile registers a profile under an existing organization. Only
// admins of that organization may add members.
func (s *profileService) CreateProfile(ctx context.Context, req *dto.CreateProfileRequest) (*dto.ProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if !types.HasAdmin(types.GetRoles(ctx)) || types.GetOrganizationID(ctx) != req.OrganizationID {
		return nil, forbidden()
	}

	if _, err := s.OrgRepo.Get(ctx, req.OrganizationID); err != nil {
		return nil, err
	}

	p := req.ToProfile()
	p.CreatedBy = types.GetProfileID(ctx)
	p.UpdatedBy = p.CreatedBy

	if err := s.ProfileRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.Logger.Infow("profile created", "profile_id", p.ID, "organization_id", p.OrganizationID)
	return dto.NewProfileResponse(p), nil
}

func (s *profileService) GetProfile(ctx context.Context, id string) (*dto.ProfileResponse, error) {
	p, err := s.ProfileRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.canAccess(ctx, p) {
		return nil, forbidden()
	}
	return dto.NewProfileResponse(p), nil
}

func (s *profileService) UpdateProfile(ctx context.Context, id string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.ProfileRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.canAccess(ctx, p) {
		return nil, forbidden()
	}

	if req.FirstName != nil {
		p.FirstName = *req.FirstName
	}
	if req.MiddleName != nil {
		p.MiddleName = *req.MiddleName
	}
	if req.LastName != nil {
		p.LastName = *req.LastName
	}
	if req.Position != nil {
		p.Position = *req.Position
	}
	if req.Phone != nil {
		p.Phone = *req.Phone
	}
	if req.Mobile != nil {
		p.Mobile = *req.Mobile
	}
	if req.Avatar != nil {
		p.Avatar = *req.Avatar
	}
	if req.PreferredLanguage != nil {
		p.PreferredLanguage = *req.PreferredLanguage
	}
	p.UpdatedBy = types.GetProfileID(ctx)

	if err := s.ProfileRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return dto.NewProfileResponse(p), nil
}

// ListProfiles lists members of one organization. Non-admin callers are
// pinned to their own organization regardless of the requested id.
func (s *profileService) ListProfiles(ctx context.Context, organizationID string, filter *types.QueryFilter) (*types.ListResponse[*dto.ProfileResponse], error) {
	if organizationID == "" {
		organizationID = types.GetOrganizationID(ctx)
	}
	if types.GetOrganizationID(ctx) != organizationID {
		return nil, forbidden()
	}

	profiles, err := s.ProfileRepo.List(ctx, organizationID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.ProfileRepo.Count(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	items := lo.Map(profiles, func(p *profile.Profile, _ int) *dto.ProfileResponse {
		return dto.NewProfileResponse(p)
	})
	resp := types.NewListResponse(items, total, filter.GetPage(), filter.GetLimit())
	return &resp, nil
}

func (s *profileService) canAccess(ctx context.Context, p *profile.Profile) bool {
	callerID := types.GetProfileID(ctx)
	if callerID == "" {
		return false
	}
	if p.ID == callerID {
		return true
	}
	if types.HasAdmin(types.GetRoles(ctx)) {
		return p.OrganizationID != "" && p.OrganizationID == types.GetOrganizationID(ctx)
	}
	return false
}
