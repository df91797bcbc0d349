package service

import (
	"context"

	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/nkripta/nkripta/internal/api/dto"
	"github.com/nkripta/nkripta/internal/cache"
	"github.com/nkripta/nkripta/internal/domain/profile"
	"github.com/nkripta/nkripta/internal/domain/subscription"
	ierr "github.com/nkripta/nkripta/internal/errors"
	"github.com/nkripta/nkripta/internal/mockdata"
	"github.com/nkripta/nkripta/internal/types"
)

const (
	cacheKeyPlans   = "billing:plans"
	cacheKeyCoupons = "billing:coupons"
)

// BillingService is the single entry point for all subscription operations.
// It owns the gateway-vs-mock decision and every authorization predicate;
// the gateway is the source of truth and no subscription rows are persisted
// locally.
type BillingService interface {
	EnsureCustomer(ctx context.Context, req *dto.CreateCustomerRequest) (*dto.CreateCustomerResponse, error)

	CreateSubscription(ctx context.Context, req *dto.CreateSubscriptionRequest) (*subscription.CreateResult, error)
	CancelSubscription(ctx context.Context, id string) (*subscription.TransitionResult, error)
	PauseSubscription(ctx context.Context, id string) (*subscription.TransitionResult, error)
	ResumeSubscription(ctx context.Context, id string) (*subscription.TransitionResult, error)

	GetSubscription(ctx context.Context, id string) (*subscription.Subscription, error)
	GetProfileSubscriptions(ctx context.Context, profileID string) ([]*subscription.Subscription, error)
	GetAllSubscriptions(ctx context.Context) ([]*subscription.Subscription, error)

	GetPaymentMethod(ctx context.Context, id string) (*subscription.PaymentMethod, error)
	GetProfilePaymentMethods(ctx context.Context, profileID string) ([]*subscription.PaymentMethod, error)

	ListPlans(ctx context.Context) ([]*subscription.Plan, error)
	ListCoupons(ctx context.Context) ([]*subscription.Coupon, error)

	HandleWebhookEvent(ctx context.Context, payload []byte, signature string) error
}

type billingService struct {
	ServiceParams
}

func NewBillingService(params ServiceParams) BillingService {
	return &billingService{ServiceParams: params}
}

// EnsureCustomer guarantees the target profile has a gateway customer
// reference, creating one only on first call. The reference persisted on the
// profile makes repeated calls idempotent.
func (s *billingService) EnsureCustomer(ctx context.Context, req *dto.CreateCustomerRequest) (*dto.CreateCustomerResponse, error) {
	profileID := req.ProfileID
	if profileID == "" {
		profileID = types.GetProfileID(ctx)
	}

	p, err := s.ProfileRepo.Get(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if !s.canManageProfile(ctx, p) {
		return nil, forbidden()
	}

	customerID, created, err := s.ensureCustomerID(ctx, p)
	if err != nil {
		return nil, err
	}

	return &dto.CreateCustomerResponse{
		ProfileID:  p.ID,
		CustomerID: customerID,
		Created:    created,
	}, nil
}

func (s *billingService) ensureCustomerID(ctx context.Context, p *profile.Profile) (string, bool, error) {
	if p.StripeCustomerID != "" {
		return p.StripeCustomerID, false, nil
	}

	customerID, err := s.Gateway.CreateCustomer(ctx, p.Email, p.FullName(), p.ID, p.OrganizationID)
	if err != nil {
		return "", false, err
	}

	p.StripeCustomerID = customerID
	if err := s.ProfileRepo.Update(ctx, p); err != nil {
		return "", false, err
	}
	return customerID, true, nil
}

// CreateSubscription subscribes the caller to a plan. An existing active
// subscription for the same plan id is a conflict; the caller must cancel it
// first.
func (s *billingService) CreateSubscription(ctx context.Context, req *dto.CreateSubscriptionRequest) (*subscription.CreateResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.ProfileRepo.Get(ctx, types.GetProfileID(ctx))
	if err != nil {
		return nil, err
	}

	customerID, _, err := s.ensureCustomerID(ctx, p)
	if err != nil {
		return nil, err
	}

	exists, err := s.Gateway.ActiveSubscriptionExists(ctx, customerID, req.PlanID)
	if err != nil {
		// The guard is best effort when the gateway cannot answer; the
		// create call that follows will surface a real outage anyway.
		s.Logger.Warnw("could not check for existing subscriptions",
			"profile_id", p.ID, "plan_id", req.PlanID, "error", err)
	} else if exists {
		return nil, ierr.NewError("plan already subscribed").
			WithHintf("An active subscription for plan %s already exists", req.PlanID).
			WithReportableDetails(map[string]interface{}{
				"planId": req.PlanID,
			}).
			Mark(ierr.ErrAlreadyExists)
	}

	result, err := s.Gateway.CreateSubscription(ctx, subscription.CreateParams{
		CustomerID:      customerID,
		ProfileID:       p.ID,
		OrganizationID:  p.OrganizationID,
		PaymentMethodID: req.PaymentMethodID,
		PriceID:         req.PlanID,
		CouponID:        req.CouponID,
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("subscription created",
		"subscription_id", result.SubscriptionID,
		"profile_id", p.ID,
		"plan_id", req.PlanID)
	return result, nil
}

func (s *billingService) CancelSubscription(ctx context.Context, id string) (*subscription.TransitionResult, error) {
	return s.transition(ctx, id,
		mockdata.State{Status: types.SubscriptionStatusCanceled, CancelAtPeriodEnd: true},
		"Subscription canceled successfully",
		s.Gateway.CancelSubscription)
}

func (s *billingService) PauseSubscription(ctx context.Context, id string) (*subscription.TransitionResult, error) {
	return s.transition(ctx, id,
		mockdata.State{Status: types.SubscriptionStatusActive, CancelAtPeriodEnd: true},
		"Subscription will be canceled at the end of the current period",
		s.Gateway.PauseSubscription)
}

func (s *billingService) ResumeSubscription(ctx context.Context, id string) (*subscription.TransitionResult, error) {
	return s.transition(ctx, id,
		mockdata.State{Status: types.SubscriptionStatusActive, CancelAtPeriodEnd: false},
		"Subscription resumed successfully",
		s.Gateway.ResumeSubscription)
}

// transition applies a lifecycle mutation after an ownership check. Synthetic
// subscriptions record the transition in the mock state table; real ones
// delegate to the gateway, whose failures propagate untouched.
func (s *billingService) transition(
	ctx context.Context,
	id string,
	state mockdata.State,
	message string,
	mutate func(context.Context, string) (*subscription.TransitionResult, error),
) (*subscription.TransitionResult, error) {
	sub, err := s.resolveSubscription(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.canManageSubscription(ctx, sub) {
		return nil, forbidden()
	}

	if s.Config.Stripe.MockMode && mockdata.IsSyntheticID(id) {
		s.MockGen.RecordTransition(id, state)
		return &subscription.TransitionResult{
			SubscriptionID:    id,
			Status:            state.Status,
			CancelAtPeriodEnd: state.CancelAtPeriodEnd,
			Message:           message,
		}, nil
	}

	return mutate(ctx, id)
}

func (s *billingService) GetSubscription(ctx context.Context, id string) (*subscription.Subscription, error) {
	sub, err := s.resolveSubscription(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.canManageSubscription(ctx, sub) {
		return nil, forbidden()
	}
	return sub, nil
}

// resolveSubscription fetches a subscription without authorization. Synthetic
// ids are reconstructed from the generator after resolving the owning
// profile; real ids come from the gateway.
func (s *billingService) resolveSubscription(ctx context.Context, id string) (*subscription.Subscription, error) {
	if !mockdata.IsSyntheticID(id) {
		return s.Gateway.GetSubscription(ctx, id)
	}

	p, err := s.resolveSyntheticOwner(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.MockGen.SubscriptionForID(id, p), nil
}

// resolveSyntheticOwner maps a synthetic id to its owning profile, preferring
// the explicit record table over the embedded id fragment.
func (s *billingService) resolveSyntheticOwner(ctx context.Context, id string) (*profile.Profile, error) {
	if ownerID, ok := s.MockGen.OwnerProfileID(id); ok {
		return s.ProfileRepo.Get(ctx, ownerID)
	}
	fragment, ok := mockdata.ProfileFragment(id)
	if !ok {
		return nil, ierr.NewError("malformed synthetic id").
			WithHint("Subscription not found").
			Mark(ierr.ErrNotFound)
	}
	return s.ProfileRepo.GetByIDPrefix(ctx, fragment)
}

// GetProfileSubscriptions lists a profile's subscriptions, live from the
// gateway when it is healthy, substituted with deterministic synthetic data
// in mock mode when the gateway is unreachable or returns the degenerate
// all-one-id signature.
func (s *billingService) GetProfileSubscriptions(ctx context.Context, profileID string) ([]*subscription.Subscription, error) {
	p, err := s.ProfileRepo.Get(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if !s.canManageProfile(ctx, p) {
		return nil, forbidden()
	}
	return s.subscriptionsForProfile(ctx, p)
}

func (s *billingService) subscriptionsForProfile(ctx context.Context, p *profile.Profile) ([]*subscription.Subscription, error) {
	if p.StripeCustomerID == "" {
		if s.Config.Stripe.MockMode {
			return s.MockGen.SubscriptionsForProfile(p), nil
		}
		return []*subscription.Subscription{}, nil
	}

	subs, err := s.Gateway.ListSubscriptions(ctx, p.StripeCustomerID)
	switch {
	case err != nil:
		if !s.Config.Stripe.MockMode {
			return nil, err
		}
		s.Logger.Warnw("gateway listing failed, substituting synthetic data",
			"profile_id", p.ID, "error", err)
		return s.MockGen.SubscriptionsForProfile(p), nil
	case subscription.AllSameID(subs):
		if !s.Config.Stripe.MockMode {
			return subs, nil
		}
		s.Logger.Warnw("gateway returned degenerate listing, substituting synthetic data",
			"profile_id", p.ID, "subscription_id", subs[0].ID)
		return s.MockGen.SubscriptionsForProfile(p), nil
	}

	for _, sub := range subs {
		if sub.ProfileID == "" {
			sub.ProfileID = p.ID
		}
		if sub.OrganizationID == "" {
			sub.OrganizationID = p.OrganizationID
		}
		if sub.CustomerEmail == "" {
			sub.CustomerEmail = p.Email
		}
	}
	return subs, nil
}

// GetAllSubscriptions lists every subscription visible to the caller: the
// whole system for admins, the caller's organization otherwise.
func (s *billingService) GetAllSubscriptions(ctx context.Context) ([]*subscription.Subscription, error) {
	subs, err := s.listAllSubscriptions(ctx)
	if err != nil {
		return nil, err
	}

	if types.HasAdmin(types.GetRoles(ctx)) {
		return subs, nil
	}

	callerOrg := types.GetOrganizationID(ctx)
	scoped := make([]*subscription.Subscription, 0, len(subs))
	for _, sub := range subs {
		if sub.OrganizationID != "" && sub.OrganizationID == callerOrg {
			scoped = append(scoped, sub)
		}
	}
	return scoped, nil
}

func (s *billingService) listAllSubscriptions(ctx context.Context) ([]*subscription.Subscription, error) {
	subs, err := s.Gateway.ListAllSubscriptions(ctx)
	if err == nil && !subscription.AllSameID(subs) {
		return subs, nil
	}
	if !s.Config.Stripe.MockMode {
		if err != nil {
			return nil, err
		}
		return subs, nil
	}

	s.Logger.Warnw("gateway listing unusable, generating synthetic data for all profiles", "error", err)

	profiles, listErr := s.ProfileRepo.ListAll(ctx)
	if listErr != nil {
		return nil, listErr
	}
	all := make([]*subscription.Subscription, 0, len(profiles))
	for _, p := range profiles {
		all = append(all, s.MockGen.SubscriptionsForProfile(p)...)
	}
	return all, nil
}

func (s *billingService) GetPaymentMethod(ctx context.Context, id string) (*subscription.PaymentMethod, error) {
	if mockdata.IsSyntheticID(id) {
		p, err := s.resolveSyntheticOwner(ctx, id)
		if err != nil {
			return nil, err
		}
		if !s.canManageProfile(ctx, p) {
			return nil, forbidden()
		}
		for _, pm := range s.MockGen.PaymentMethodsForProfile(p) {
			if pm.ID == id {
				return pm, nil
			}
		}
		return nil, ierr.NewError("payment method not found").
			WithHint("Payment method not found").
			Mark(ierr.ErrNotFound)
	}

	pm, err := s.Gateway.GetPaymentMethod(ctx, id)
	if err != nil {
		return nil, err
	}

	owner, err := s.ProfileRepo.GetByStripeCustomerID(ctx, pm.CustomerID)
	if err != nil || !s.canManageProfile(ctx, owner) {
		// Unresolvable ownership reads as unauthorized, not as a hint that
		// the payment method exists.
		return nil, forbidden()
	}
	return pm, nil
}

func (s *billingService) GetProfilePaymentMethods(ctx context.Context, profileID string) ([]*subscription.PaymentMethod, error) {
	p, err := s.ProfileRepo.Get(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if !s.canManageProfile(ctx, p) {
		return nil, forbidden()
	}

	if p.StripeCustomerID == "" {
		if s.Config.Stripe.MockMode {
			return s.MockGen.PaymentMethodsForProfile(p), nil
		}
		return []*subscription.PaymentMethod{}, nil
	}

	methods, err := s.Gateway.ListPaymentMethods(ctx, p.StripeCustomerID)
	if err != nil {
		if !s.Config.Stripe.MockMode {
			return nil, err
		}
		s.Logger.Warnw("gateway payment method listing failed, substituting synthetic data",
			"profile_id", p.ID, "error", err)
		return s.MockGen.PaymentMethodsForProfile(p), nil
	}
	return methods, nil
}

// ListPlans returns the plan catalog, cached between calls.
func (s *billingService) ListPlans(ctx context.Context) ([]*subscription.Plan, error) {
	if plans, ok := cache.TypedGet[[]*subscription.Plan](ctx, s.Cache, cacheKeyPlans); ok {
		return plans, nil
	}

	plans, err := s.Gateway.ListPlans(ctx)
	if err != nil {
		if !s.Config.Stripe.MockMode {
			return nil, err
		}
		s.Logger.Warnw("gateway plan catalog unavailable, serving synthetic catalog", "error", err)
		plans = mockdata.Plans()
	}

	s.Cache.Set(ctx, cacheKeyPlans, plans, s.Config.Cache.TTL)
	return plans, nil
}

// ListCoupons returns the coupon catalog, cached between calls. Route-level
// authorization restricts it to admins.
func (s *billingService) ListCoupons(ctx context.Context) ([]*subscription.Coupon, error) {
	if coupons, ok := cache.TypedGet[[]*subscription.Coupon](ctx, s.Cache, cacheKeyCoupons); ok {
		return coupons, nil
	}

	coupons, err := s.Gateway.ListCoupons(ctx, 100)
	if err != nil {
		if !s.Config.Stripe.MockMode {
			return nil, err
		}
		s.Logger.Warnw("gateway coupon catalog unavailable, serving synthetic catalog", "error", err)
		coupons = mockdata.Coupons()
	}

	s.Cache.Set(ctx, cacheKeyCoupons, coupons, s.Config.Cache.TTL)
	return coupons, nil
}

// HandleWebhookEvent verifies the gateway signature over the raw payload and
// acknowledges the event. The gateway is the source of truth, so no local
// state is synchronized from webhook payloads.
func (s *billingService) HandleWebhookEvent(ctx context.Context, payload []byte, signature string) error {
	event, err := webhook.ConstructEventWithOptions(payload, signature, s.Config.Stripe.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Invalid webhook signature").
			Mark(ierr.ErrValidation)
	}

	s.Logger.Infow("webhook event acknowledged", "event_id", event.ID, "event_type", event.Type)
	return nil
}

// canManageSubscription authorizes subscription-scoped reads and writes:
// the owning profile may always act; an admin may act within their own
// organization only.
func (s *billingService) canManageSubscription(ctx context.Context, sub *subscription.Subscription) bool {
	callerID := types.GetProfileID(ctx)
	if callerID == "" {
		return false
	}
	if sub.ProfileID != "" && sub.ProfileID == callerID {
		return true
	}
	if types.HasAdmin(types.GetRoles(ctx)) {
		callerOrg := types.GetOrganizationID(ctx)
		return sub.OrganizationID != "" && sub.OrganizationID == callerOrg
	}
	return false
}

// canManageProfile authorizes profile-scoped billing access: the profile
// itself, or an admin of the same organization.
func (s *billingService) canManageProfile(ctx context.Context, p *profile.Profile) bool {
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

func forbidden() error {
	return ierr.NewError("not authorized").
		WithHint("You are not authorized to access this resource").
		Mark(ierr.ErrPermissionDenied)
}
