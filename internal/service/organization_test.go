package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/nkripta/nkripta/internal/api/dto"
	ierr "github.com/nkripta/nkripta/internal/errors"
	"github.com/nkripta/nkripta/internal/testutil"
	"github.com/nkripta/nkripta/internal/types"
)

type OrganizationServiceTestSuite struct {
	testutil.BaseServiceTestSuite
	organizationService OrganizationService
}

func TestOrganizationService(t *testing.T) {
	suite.Run(t, new(OrganizationServiceTestSuite))
}

func (s *OrganizationServiceTestSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.organizationService = NewOrganizationService(ServiceParams{
		Logger:      s.GetLogger(),
		Config:      s.GetConfig(),
		Cache:       s.GetCache(),
		ProfileRepo: s.GetProfileStore(),
		OrgRepo:     s.GetOrgStore(),
		Gateway:     s.GetGateway(),
		MockGen:     s.GetMockGen(),
	})
}

func (s *OrganizationServiceTestSuite) adminCtx(orgID string) context.Context {
	return testutil.ContextWithCaller("admin", orgID, "admin@example.com",
		[]types.Role{types.RoleAdmin, types.RoleUser})
}

func (s *OrganizationServiceTestSuite) TestCreateOrganization() {
	resp, err := s.organizationService.CreateOrganization(s.adminCtx("platform"), &dto.CreateOrganizationRequest{
		Name:    "Acme GmbH",
		Website: "https://acme.example",
	})
	s.NoError(err)
	s.NotEmpty(resp.ID)
	s.Equal("acme-gmbh", resp.Slug)

	got, err := s.organizationService.GetOrganization(s.GetContext(), resp.ID)
	s.NoError(err)
	s.Equal("Acme GmbH", got.Name)
}

func (s *OrganizationServiceTestSuite) TestCreateOrganizationRequiresAdmin() {
	memberCtx := testutil.ContextWithCaller("member", "some-org", "member@example.com",
		[]types.Role{types.RoleUser})

	_, err := s.organizationService.CreateOrganization(memberCtx, &dto.CreateOrganizationRequest{
		Name: "Rogue Tenant",
	})
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))

	// An anonymous context carries no roles and is denied as well.
	_, err = s.organizationService.CreateOrganization(s.GetContext(), &dto.CreateOrganizationRequest{
		Name: "Rogue Tenant",
	})
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *OrganizationServiceTestSuite) TestCreateOrganizationRequiresName() {
	_, err := s.organizationService.CreateOrganization(s.adminCtx("platform"), &dto.CreateOrganizationRequest{})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *OrganizationServiceTestSuite) TestDuplicateSlugConflicts() {
	_, err := s.organizationService.CreateOrganization(s.adminCtx("platform"), &dto.CreateOrganizationRequest{Name: "Acme"})
	s.NoError(err)

	_, err = s.organizationService.CreateOrganization(s.adminCtx("platform"), &dto.CreateOrganizationRequest{Name: "Acme"})
	s.Error(err)
	s.True(ierr.IsAlreadyExists(err))
}

func (s *OrganizationServiceTestSuite) TestUpdateRequiresAdminOfSameOrganization() {
	created, err := s.organizationService.CreateOrganization(s.adminCtx("platform"), &dto.CreateOrganizationRequest{Name: "Acme"})
	s.NoError(err)

	name := "Acme Renamed"

	// A non-admin member may not update.
	memberCtx := testutil.ContextWithCaller("member", created.ID, "member@example.com",
		[]types.Role{types.RoleUser})
	_, err = s.organizationService.UpdateOrganization(memberCtx, created.ID, &dto.UpdateOrganizationRequest{Name: &name})
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))

	// An admin of another organization may not update either.
	_, err = s.organizationService.UpdateOrganization(s.adminCtx("other-org"), created.ID, &dto.UpdateOrganizationRequest{Name: &name})
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))

	updated, err := s.organizationService.UpdateOrganization(s.adminCtx(created.ID), created.ID, &dto.UpdateOrganizationRequest{Name: &name})
	s.NoError(err)
	s.Equal(name, updated.Name)
}

func (s *OrganizationServiceTestSuite) TestListOrganizationsPaginates() {
	for _, name := range []string{"Alpha", "Beta", "Gamma"} {
		_, err := s.organizationService.CreateOrganization(s.adminCtx("platform"), &dto.CreateOrganizationRequest{Name: name})
		s.NoError(err)
	}

	page, err := s.organizationService.ListOrganizations(s.GetContext(), &types.QueryFilter{Page: 1, Limit: 2})
	s.NoError(err)
	s.Len(page.Items, 2)
	s.Equal(int64(3), page.Total)
	s.Equal(1, page.Page)
	s.Equal(2, page.Limit)
}
