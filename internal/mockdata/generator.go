package mockdata

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nkripta/nkripta/internal/domain/profile"
	"github.com/nkripta/nkripta/internal/domain/subscription"
	"github.com/nkripta/nkripta/internal/types"
)

// planSpec is one of the synthetic catalog tiers.
type planSpec struct {
	planType string
	name     string
	cents    int64
}

var planSpecs = []planSpec{
	{types.PlanTypeBasic, "Basic Plan", 999},
	{types.PlanTypePremium, "Premium Plan", 2999},
	{types.PlanTypeEnterprise, "Enterprise Plan", 9999},
}

var statusBuckets = []types.SubscriptionStatus{
	types.SubscriptionStatusActive,
	types.SubscriptionStatusActive,
	types.SubscriptionStatusActive,
	types.SubscriptionStatusPastDue,
	types.SubscriptionStatusCanceled,
}

// Generator produces deterministic, profile-scoped synthetic billing records
// for sandbox deployments where the gateway is unreachable or degenerate.
// Repeated calls for the same profile yield the same records within a
// process lifetime; applied transitions are overlaid via the StateStore.
type Generator struct {
	store StateStore

	mu     sync.RWMutex
	owners map[string]string // synthetic id -> profile id

	now func() time.Time
}

func NewGenerator(store StateStore) *Generator {
	return &Generator{
		store:  store,
		owners: make(map[string]string),
		now:    time.Now,
	}
}

// seedFor derives the pseudo-random seed by summing the character codes of
// the profile identifier, so every derived choice is stable per profile.
func seedFor(profileID string) int {
	sum := 0
	for _, c := range profileID {
		sum += int(c)
	}
	return sum
}

func idPrefix(profileID string) string {
	if len(profileID) > 8 {
		return profileID[:8]
	}
	return profileID
}

// tierFragment is the portion of the plan type embedded in synthetic ids,
// e.g. plan_basic -> "basic", plan_premium -> "premiu".
func tierFragment(planType string) string {
	fragment := strings.TrimPrefix(planType, "plan_")
	if len(fragment) > 6 {
		fragment = fragment[:6]
	}
	return fragment
}

func planForFragment(fragment string) planSpec {
	for _, spec := range planSpecs {
		if tierFragment(spec.planType) == fragment {
			return spec
		}
	}
	return planSpec{types.PlanTypeUnknown, "Unknown Plan", 0}
}

// SubscriptionsForProfile generates the synthetic subscription set for a
// profile: ~30% of profiles get none, ~50% one, ~20% two. Recorded
// transitions are overlaid on the fresh base records.
func (g *Generator) SubscriptionsForProfile(p *profile.Profile) []*subscription.Subscription {
	seed := seedFor(p.ID)

	var count int
	switch {
	case seed%10 < 3:
		count = 0
	case seed%10 < 8:
		count = 1
	default:
		count = 2
	}
	if count == 0 {
		return []*subscription.Subscription{}
	}

	now := g.now()
	subs := make([]*subscription.Subscription, 0, count)

	for i := 0; i < count; i++ {
		spec := planSpecs[(seed+i)%len(planSpecs)]
		status := statusBuckets[(seed+i*3)%len(statusBuckets)]

		createdMonthsAgo := (seed+i)%12 + 1
		created := now.AddDate(0, -createdMonthsAgo, 0)

		var periodStart time.Time
		if status == types.SubscriptionStatusActive || status == types.SubscriptionStatusPastDue {
			// Current period: started 0-27 days ago, runs 30 days.
			periodStart = now.AddDate(0, 0, -((seed + i) % 28))
		} else {
			// Ended period: placed 60-89 days in the past.
			periodStart = now.AddDate(0, 0, -60-((seed+i)%30))
		}
		periodEnd := periodStart.AddDate(0, 0, 30)

		id := fmt.Sprintf("sub_%s_%s_%d", idPrefix(p.ID), tierFragment(spec.planType), i)
		g.recordOwner(id, p.ID)

		sub := &subscription.Subscription{
			ID:                 id,
			ProfileID:          p.ID,
			OrganizationID:     p.OrganizationID,
			PlanType:           spec.planType,
			PlanName:           spec.name,
			PlanAmount:         decimal.NewFromInt(spec.cents).Div(decimal.NewFromInt(100)),
			PlanCurrency:       "eur",
			Status:             status,
			CurrentPeriodStart: periodStart,
			CurrentPeriodEnd:   periodEnd,
			CancelAtPeriodEnd:  status == types.SubscriptionStatusCanceled,
			CustomerEmail:      p.Email,
			CreatedAt:          created,
		}
		g.applyState(sub)
		subs = append(subs, sub)
	}

	return subs
}

// SubscriptionForID reconstructs a synthetic subscription view for a known
// id and its owning profile, overlaying any recorded transition.
func (g *Generator) SubscriptionForID(id string, p *profile.Profile) *subscription.Subscription {
	fragment := ""
	if parts := strings.Split(id, "_"); len(parts) >= 3 {
		fragment = parts[2]
	}
	spec := planForFragment(fragment)

	now := g.now()
	periodStart := now.AddDate(0, 0, -15)
	periodEnd := periodStart.AddDate(0, 0, 30)

	g.recordOwner(id, p.ID)

	sub := &subscription.Subscription{
		ID:                 id,
		ProfileID:          p.ID,
		OrganizationID:     p.OrganizationID,
		PlanType:           spec.planType,
		PlanName:           spec.name,
		PlanAmount:         decimal.NewFromInt(spec.cents).Div(decimal.NewFromInt(100)),
		PlanCurrency:       "eur",
		Status:             types.SubscriptionStatusActive,
		CurrentPeriodStart: periodStart,
		CurrentPeriodEnd:   periodEnd,
		CancelAtPeriodEnd:  false,
		CustomerEmail:      p.Email,
	}
	g.applyState(sub)
	return sub
}

// PaymentMethodsForProfile generates 1-2 synthetic cards per profile.
func (g *Generator) PaymentMethodsForProfile(p *profile.Profile) []*subscription.PaymentMethod {
	seed := seedFor(p.ID)

	count := 1
	if seed%5 == 0 {
		count = 2
	}

	brands := []string{"visa", "mastercard", "amex"}
	now := g.now()
	methods := make([]*subscription.PaymentMethod, 0, count)

	for i := 0; i < count; i++ {
		brand := brands[(seed+i)%len(brands)]
		last4 := fmt.Sprintf("%04d", 1000+((seed+i*33)%9000))
		month := int64(1 + ((seed + i*7) % 12))
		year := int64(now.Year() + 1 + ((seed + i*3) % 5))

		id := fmt.Sprintf("pm_%s_%s_%d", idPrefix(p.ID), brand, i)
		g.recordOwner(id, p.ID)

		methods = append(methods, &subscription.PaymentMethod{
			ID:   id,
			Type: "card",
			Card: subscription.Card{
				Brand:       brand,
				Last4:       last4,
				ExpiryMonth: month,
				ExpiryYear:  year,
			},
			BillingName:  p.FullName(),
			BillingEmail: p.Email,
			CustomerID:   p.StripeCustomerID,
			CreatedAt:    now.AddDate(0, 0, -30*i),
			Default:      i == 0,
		})
	}

	return methods
}

// RecordTransition stores the result of a cancel/pause/resume applied to a
// synthetic subscription.
func (g *Generator) RecordTransition(id string, state State) {
	g.store.Set(id, state)
}

func (g *Generator) applyState(sub *subscription.Subscription) {
	if state, ok := g.store.Get(sub.ID); ok {
		sub.Status = state.Status
		sub.CancelAtPeriodEnd = state.CancelAtPeriodEnd
	}
}

func (g *Generator) recordOwner(id, profileID string) {
	g.mu.Lock()
	g.owners[id] = profileID
	g.mu.Unlock()
}

// OwnerProfileID resolves a synthetic record id to its owning profile via
// the explicit record table populated at generation time.
func (g *Generator) OwnerProfileID(id string) (string, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	profileID, ok := g.owners[id]
	return profileID, ok
}

// IsSyntheticID reports whether an id was minted by this generator.
// Synthetic ids carry at least three underscore separators
// (sub_<fragment>_<tier>_<index>); real gateway ids carry one.
func IsSyntheticID(id string) bool {
	if !strings.HasPrefix(id, "sub_") && !strings.HasPrefix(id, "pm_") {
		return false
	}
	return strings.Count(id, "_") >= 3
}

// ProfileFragment extracts the embedded profile-id fragment from a synthetic
// id. Used only as a fallback when the record table has no entry (e.g. an id
// minted by a previous process).
func ProfileFragment(id string) (string, bool) {
	parts := strings.Split(id, "_")
	if len(parts) < 3 {
		return "", false
	}
	return parts[1], true
}

// Plans returns the synthetic plan catalog.
func Plans() []*subscription.Plan {
	specs := []struct {
		id, productID, name, description string
		cents                            int64
		interval                         string
	}{
		{"price_basic_monthly", "prod_basic", "Basic Plan", "Monthly plan with core features", 999, "month"},
		{"price_premium_monthly", "prod_premium", "Premium Plan", "Monthly plan with all premium features", 2999, "month"},
		{"price_enterprise_monthly", "prod_enterprise", "Enterprise Plan", "Enterprise plan with premium support", 9999, "month"},
		{"price_basic_yearly", "prod_basic", "Basic Plan (Yearly)", "Yearly plan with core features", 10190, "year"},
		{"price_premium_yearly", "prod_premium", "Premium Plan (Yearly)", "Yearly plan with all premium features", 30590, "year"},
	}

	plans := make([]*subscription.Plan, 0, len(specs))
	for _, s := range specs {
		plans = append(plans, &subscription.Plan{
			ID:            s.id,
			ProductID:     s.productID,
			Name:          s.name,
			Description:   s.description,
			UnitAmount:    s.cents,
			Amount:        decimal.NewFromInt(s.cents).Div(decimal.NewFromInt(100)),
			Currency:      "eur",
			Interval:      s.interval,
			IntervalCount: 1,
			Active:        true,
		})
	}
	return plans
}

// Coupons returns the synthetic coupon catalog.
func Coupons() []*subscription.Coupon {
	return []*subscription.Coupon{
		{ID: "WELCOME10", Name: "Welcome: 10% off", PercentOff: 10, Duration: types.CouponDurationOnce, Valid: true},
		{ID: "PREMIUM20", Name: "Premium: 20% off", PercentOff: 20, Duration: types.CouponDurationOnce, Valid: true},
		{ID: "YEARLYPLAN", Name: "Yearly plan: 15% off", PercentOff: 15, Duration: types.CouponDurationForever, Valid: true},
		{ID: "FIRST5EUR", Name: "5 EUR off the first subscription", AmountOff: 500, Duration: types.CouponDurationOnce, Valid: true},
		{ID: "TEAM25", Name: "Teams: 25% off", PercentOff: 25, Duration: types.CouponDurationRepeating, DurationInMonths: 3, Valid: true},
	}
}
