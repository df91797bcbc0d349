package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/nkripta/nkripta/internal/api/dto"
	"github.com/nkripta/nkripta/internal/domain/organization"
	"github.com/nkripta/nkripta/internal/domain/profile"
	ierr "github.com/nkripta/nkripta/internal/errors"
	"github.com/nkripta/nkripta/internal/mockdata"
	"github.com/nkripta/nkripta/internal/testutil"
	"github.com/nkripta/nkripta/internal/types"
)

type BillingServiceTestSuite struct {
	testutil.BaseServiceTestSuite
	billingService BillingService
	testData       struct {
		org1   *organization.Organization
		org2   *organization.Organization
		noSubs *profile.Profile // seed yields zero synthetic subscriptions
		oneSub *profile.Profile // seed yields one synthetic subscription
		twoSub *profile.Profile // seed yields two synthetic subscriptions
		other  *profile.Profile
	}
}

func TestBillingService(t *testing.T) {
	suite.Run(t, new(BillingServiceTestSuite))
}

func (s *BillingServiceTestSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	s.billingService = NewBillingService(ServiceParams{
		Logger:      s.GetLogger(),
		Config:      s.GetConfig(),
		Cache:       s.GetCache(),
		ProfileRepo: s.GetProfileStore(),
		OrgRepo:     s.GetOrgStore(),
		Gateway:     s.GetGateway(),
		MockGen:     s.GetMockGen(),
	})

	s.setupTestData()
}

func (s *BillingServiceTestSuite) setupTestData() {
	ctx := s.GetContext()

	s.testData.org1 = &organization.Organization{ID: "o1", Name: "Org One", Slug: "org-one"}
	s.testData.org2 = &organization.Organization{ID: "o2", Name: "Org Two", Slug: "org-two"}
	s.NoError(s.GetOrgStore().Create(ctx, s.testData.org1))
	s.NoError(s.GetOrgStore().Create(ctx, s.testData.org2))

	// Profile ids chosen for their character-code sums: "p1" lands in the
	// zero-subscription bucket, "p3" in the one-subscription bucket and
	// "p8" in the two-subscription bucket.
	s.testData.noSubs = s.newProfile("p1", "p1@example.com", "o1")
	s.testData.oneSub = s.newProfile("p3", "p3@example.com", "o1")
	s.testData.twoSub = s.newProfile("p8", "p8@example.com", "o1")
	s.testData.other = s.newProfile("px", "px@example.com", "o2")
}

func (s *BillingServiceTestSuite) newProfile(id, email, orgID string) *profile.Profile {
	p := &profile.Profile{
		ID:             id,
		FirstName:      "Test",
		LastName:       "User",
		Email:          email,
		Roles:          []types.Role{types.RoleUser},
		OrganizationID: orgID,
	}
	s.NoError(s.GetProfileStore().Create(s.GetContext(), p))
	return p
}

func (s *BillingServiceTestSuite) callerCtx(p *profile.Profile, roles ...types.Role) context.Context {
	if len(roles) == 0 {
		roles = []types.Role{types.RoleUser}
	}
	return testutil.ContextWithCaller(p.ID, p.OrganizationID, p.Email, roles)
}

func (s *BillingServiceTestSuite) TestEnsureCustomerIsIdempotent() {
	ctx := s.callerCtx(s.testData.oneSub)

	first, err := s.billingService.EnsureCustomer(ctx, &dto.CreateCustomerRequest{})
	s.NoError(err)
	s.True(first.Created)
	s.NotEmpty(first.CustomerID)

	second, err := s.billingService.EnsureCustomer(ctx, &dto.CreateCustomerRequest{})
	s.NoError(err)
	s.False(second.Created)
	s.Equal(first.CustomerID, second.CustomerID)

	s.Equal(1, s.GetGateway().CreateCustomerCalls)
}

func (s *BillingServiceTestSuite) TestEnsureCustomerForOtherProfileRequiresAdmin() {
	ctx := s.callerCtx(s.testData.other)

	_, err := s.billingService.EnsureCustomer(ctx, &dto.CreateCustomerRequest{ProfileID: s.testData.oneSub.ID})
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *BillingServiceTestSuite) TestCreateSubscription() {
	ctx := s.callerCtx(s.testData.noSubs)

	result, err := s.billingService.CreateSubscription(ctx, &dto.CreateSubscriptionRequest{
		PaymentMethodID: "pm_card",
		PlanID:          "price_basic",
	})
	s.NoError(err)
	s.NotEmpty(result.SubscriptionID)
	s.Contains([]types.SubscriptionStatus{
		types.SubscriptionStatusActive,
		types.SubscriptionStatusTrialing,
		types.SubscriptionStatusIncomplete,
	}, result.Status)
	s.NotEmpty(result.ClientSecret)

	subs, err := s.billingService.GetProfileSubscriptions(ctx, s.testData.noSubs.ID)
	s.NoError(err)
	s.Len(subs, 1)
	s.Equal(result.SubscriptionID, subs[0].ID)
}

func (s *BillingServiceTestSuite) TestCreateSubscriptionRejectsDuplicatePlan() {
	ctx := s.callerCtx(s.testData.noSubs)

	_, err := s.billingService.CreateSubscription(ctx, &dto.CreateSubscriptionRequest{
		PaymentMethodID: "pm_card",
		PlanID:          "price_basic",
	})
	s.NoError(err)

	_, err = s.billingService.CreateSubscription(ctx, &dto.CreateSubscriptionRequest{
		PaymentMethodID: "pm_other_card",
		PlanID:          "price_basic",
	})
	s.Error(err)
	s.True(ierr.IsAlreadyExists(err))

	// A different plan is fine.
	_, err = s.billingService.CreateSubscription(ctx, &dto.CreateSubscriptionRequest{
		PaymentMethodID: "pm_card",
		PlanID:          "price_premium",
	})
	s.NoError(err)
}

func (s *BillingServiceTestSuite) TestCreateSubscriptionValidatesInput() {
	ctx := s.callerCtx(s.testData.noSubs)

	_, err := s.billingService.CreateSubscription(ctx, &dto.CreateSubscriptionRequest{PlanID: "price_basic"})
	s.Error(err)
	s.True(ierr.IsValidation(err))

	_, err = s.billingService.CreateSubscription(ctx, &dto.CreateSubscriptionRequest{PaymentMethodID: "pm_card"})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *BillingServiceTestSuite) TestSyntheticTransitionOverlay() {
	ctx := s.callerCtx(s.testData.oneSub)

	subs, err := s.billingService.GetProfileSubscriptions(ctx, s.testData.oneSub.ID)
	s.NoError(err)
	s.Require().Len(subs, 1)
	id := subs[0].ID

	paused, err := s.billingService.PauseSubscription(ctx, id)
	s.NoError(err)
	s.True(paused.CancelAtPeriodEnd)
	s.Equal(types.SubscriptionStatusActive, paused.Status)

	got, err := s.billingService.GetSubscription(ctx, id)
	s.NoError(err)
	s.True(got.CancelAtPeriodEnd)
	s.Equal(types.SubscriptionStatusActive, got.Status)

	_, err = s.billingService.CancelSubscription(ctx, id)
	s.NoError(err)

	got, err = s.billingService.GetSubscription(ctx, id)
	s.NoError(err)
	s.Equal(types.SubscriptionStatusCanceled, got.Status)

	// The overlay survives a fresh listing too.
	subs, err = s.billingService.GetProfileSubscriptions(ctx, s.testData.oneSub.ID)
	s.NoError(err)
	s.Require().Len(subs, 1)
	s.Equal(types.SubscriptionStatusCanceled, subs[0].Status)
}

func (s *BillingServiceTestSuite) TestOwnershipAuthorization() {
	ownerCtx := s.callerCtx(s.testData.oneSub)
	strangerCtx := s.callerCtx(s.testData.other)

	subs, err := s.billingService.GetProfileSubscriptions(ownerCtx, s.testData.oneSub.ID)
	s.NoError(err)
	s.Require().Len(subs, 1)
	id := subs[0].ID

	_, err = s.billingService.GetSubscription(strangerCtx, id)
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))

	_, err = s.billingService.CancelSubscription(strangerCtx, id)
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))

	_, err = s.billingService.GetSubscription(ownerCtx, id)
	s.NoError(err)
}

func (s *BillingServiceTestSuite) TestAdminScopedToOwnOrganization() {
	ownerCtx := s.callerCtx(s.testData.oneSub)

	subs, err := s.billingService.GetProfileSubscriptions(ownerCtx, s.testData.oneSub.ID)
	s.NoError(err)
	s.Require().Len(subs, 1)
	id := subs[0].ID

	sameOrgAdmin := testutil.ContextWithCaller("admin1", "o1", "admin1@example.com",
		[]types.Role{types.RoleAdmin, types.RoleUser})
	_, err = s.billingService.GetSubscription(sameOrgAdmin, id)
	s.NoError(err)

	otherOrgAdmin := testutil.ContextWithCaller("admin2", "o2", "admin2@example.com",
		[]types.Role{types.RoleAdmin, types.RoleUser})
	_, err = s.billingService.GetSubscription(otherOrgAdmin, id)
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *BillingServiceTestSuite) TestListAllScopesNonAdminsToTheirOrganization() {
	_, err := s.billingService.CreateSubscription(s.callerCtx(s.testData.noSubs), &dto.CreateSubscriptionRequest{
		PaymentMethodID: "pm_card",
		PlanID:          "price_basic",
	})
	s.NoError(err)
	_, err = s.billingService.CreateSubscription(s.callerCtx(s.testData.other), &dto.CreateSubscriptionRequest{
		PaymentMethodID: "pm_card",
		PlanID:          "price_basic",
	})
	s.NoError(err)

	subs, err := s.billingService.GetAllSubscriptions(s.callerCtx(s.testData.noSubs))
	s.NoError(err)
	s.NotEmpty(subs)
	for _, sub := range subs {
		s.Equal("o1", sub.OrganizationID)
	}

	adminCtx := testutil.ContextWithCaller("admin1", "o1", "admin1@example.com",
		[]types.Role{types.RoleAdmin})
	all, err := s.billingService.GetAllSubscriptions(adminCtx)
	s.NoError(err)
	s.Len(all, 2)
}

func (s *BillingServiceTestSuite) TestDegenerateListingFallsBackToSyntheticData() {
	ctx := s.callerCtx(s.testData.twoSub)

	_, err := s.billingService.EnsureCustomer(ctx, &dto.CreateCustomerRequest{})
	s.NoError(err)

	s.GetGateway().Degenerate = true

	subs, err := s.billingService.GetProfileSubscriptions(ctx, s.testData.twoSub.ID)
	s.NoError(err)
	s.Len(subs, 2)
	for _, sub := range subs {
		s.NotEqual("sub_degenerate", sub.ID)
		s.Equal(s.testData.twoSub.ID, sub.ProfileID)
	}
}

func (s *BillingServiceTestSuite) TestUnreachableGatewayFallsBackToSyntheticData() {
	ctx := s.callerCtx(s.testData.twoSub)

	_, err := s.billingService.EnsureCustomer(ctx, &dto.CreateCustomerRequest{})
	s.NoError(err)

	s.GetGateway().Err = ierr.NewError("connection refused").
		WithHint("Payment gateway is unreachable").
		Mark(ierr.ErrHTTPClient)

	subs, err := s.billingService.GetProfileSubscriptions(ctx, s.testData.twoSub.ID)
	s.NoError(err)
	s.Len(subs, 2)
}

func (s *BillingServiceTestSuite) TestGetPaymentMethodOwnership() {
	ctx := s.callerCtx(s.testData.oneSub)

	methods, err := s.billingService.GetProfilePaymentMethods(ctx, s.testData.oneSub.ID)
	s.NoError(err)
	s.Require().NotEmpty(methods)
	id := methods[0].ID

	pm, err := s.billingService.GetPaymentMethod(ctx, id)
	s.NoError(err)
	s.Equal(id, pm.ID)

	_, err = s.billingService.GetPaymentMethod(s.callerCtx(s.testData.other), id)
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *BillingServiceTestSuite) TestCatalogIsCached() {
	ctx := s.callerCtx(s.testData.oneSub)
	s.GetGateway().PlanCatalog = mockdata.Plans()

	plans, err := s.billingService.ListPlans(ctx)
	s.NoError(err)
	s.NotEmpty(plans)

	// A gateway outage after the first read is invisible to callers.
	s.GetGateway().Err = ierr.NewError("connection refused").Mark(ierr.ErrHTTPClient)

	cached, err := s.billingService.ListPlans(ctx)
	s.NoError(err)
	s.Equal(plans, cached)
}

func (s *BillingServiceTestSuite) TestListPlansFallsBackToSyntheticCatalog() {
	ctx := s.callerCtx(s.testData.oneSub)

	s.GetGateway().Err = ierr.NewError("connection refused").Mark(ierr.ErrHTTPClient)

	plans, err := s.billingService.ListPlans(ctx)
	s.NoError(err)
	s.Len(plans, 5)

	coupons, err := s.billingService.ListCoupons(ctx)
	s.NoError(err)
	s.Len(coupons, 5)
}
