package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/nkripta/nkripta/internal/api/dto"
	"github.com/nkripta/nkripta/internal/domain/organization"
	ierr "github.com/nkripta/nkripta/internal/errors"
	"github.com/nkripta/nkripta/internal/testutil"
	"github.com/nkripta/nkripta/internal/types"
)

type ProfileServiceTestSuite struct {
	testutil.BaseServiceTestSuite
	profileService ProfileService
	org            *organization.Organization
}

func TestProfileService(t *testing.T) {
	suite.Run(t, new(ProfileServiceTestSuite))
}

func (s *ProfileServiceTestSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.profileService = NewProfileService(ServiceParams{
		Logger:      s.GetLogger(),
		Config:      s.GetConfig(),
		Cache:       s.GetCache(),
		ProfileRepo: s.GetProfileStore(),
		OrgRepo:     s.GetOrgStore(),
		Gateway:     s.GetGateway(),
		MockGen:     s.GetMockGen(),
	})

	s.org = &organization.Organization{ID: "o1", Name: "Org One", Slug: "org-one"}
	s.NoError(s.GetOrgStore().Create(s.GetContext(), s.org))
}

func (s *ProfileServiceTestSuite) adminCtx() context.Context {
	return testutil.ContextWithCaller("admin", s.org.ID, "admin@example.com",
		[]types.Role{types.RoleAdmin, types.RoleUser})
}

func (s *ProfileServiceTestSuite) createProfile(email string) *dto.ProfileResponse {
	resp, err := s.profileService.CreateProfile(s.adminCtx(), &dto.CreateProfileRequest{
		FirstName:      "Jana",
		LastName:       "Nowak",
		Email:          email,
		OrganizationID: s.org.ID,
	})
	s.Require().NoError(err)
	return resp
}

func (s *ProfileServiceTestSuite) TestCreateProfile() {
	resp := s.createProfile("jana@example.com")
	s.NotEmpty(resp.ID)
	s.Equal([]types.Role{types.RoleUser}, resp.Roles)
	s.False(resp.HasBillingAccount)
}

func (s *ProfileServiceTestSuite) TestCreateProfileValidation() {
	_, err := s.profileService.CreateProfile(s.adminCtx(), &dto.CreateProfileRequest{
		FirstName:      "Jana",
		LastName:       "Nowak",
		Email:          "not-an-email",
		OrganizationID: s.org.ID,
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *ProfileServiceTestSuite) TestCreateProfileRequiresAdminOfTargetOrganization() {
	memberCtx := testutil.ContextWithCaller("member", s.org.ID, "member@example.com",
		[]types.Role{types.RoleUser})

	_, err := s.profileService.CreateProfile(memberCtx, &dto.CreateProfileRequest{
		FirstName:      "Jana",
		LastName:       "Nowak",
		Email:          "jana@example.com",
		OrganizationID: s.org.ID,
	})
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *ProfileServiceTestSuite) TestDuplicateEmailConflicts() {
	s.createProfile("jana@example.com")

	_, err := s.profileService.CreateProfile(s.adminCtx(), &dto.CreateProfileRequest{
		FirstName:      "Other",
		LastName:       "Person",
		Email:          "jana@example.com",
		OrganizationID: s.org.ID,
	})
	s.Error(err)
	s.True(ierr.IsAlreadyExists(err))
}

func (s *ProfileServiceTestSuite) TestGetProfileAuthorization() {
	created := s.createProfile("jana@example.com")

	selfCtx := testutil.ContextWithCaller(created.ID, s.org.ID, created.Email,
		[]types.Role{types.RoleUser})
	got, err := s.profileService.GetProfile(selfCtx, created.ID)
	s.NoError(err)
	s.Equal(created.ID, got.ID)

	strangerCtx := testutil.ContextWithCaller("stranger", "o2", "stranger@example.com",
		[]types.Role{types.RoleUser})
	_, err = s.profileService.GetProfile(strangerCtx, created.ID)
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *ProfileServiceTestSuite) TestUpdateProfile() {
	created := s.createProfile("jana@example.com")
	position := "CTO"

	selfCtx := testutil.ContextWithCaller(created.ID, s.org.ID, created.Email,
		[]types.Role{types.RoleUser})
	updated, err := s.profileService.UpdateProfile(selfCtx, created.ID, &dto.UpdateProfileRequest{
		Position: &position,
	})
	s.NoError(err)
	s.Equal(position, updated.Position)
}

func (s *ProfileServiceTestSuite) TestListProfilesPinnedToCallerOrganization() {
	s.createProfile("a@example.com")
	s.createProfile("b@example.com")

	memberCtx := testutil.ContextWithCaller("member", s.org.ID, "member@example.com",
		[]types.Role{types.RoleUser})

	page, err := s.profileService.ListProfiles(memberCtx, "", types.NewDefaultQueryFilter())
	s.NoError(err)
	s.Equal(int64(2), page.Total)

	_, err = s.profileService.ListProfiles(memberCtx, "other-org", types.NewDefaultQueryFilter())
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}
