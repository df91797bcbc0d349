package mockdata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkripta/nkripta/internal/domain/profile"
	"github.com/nkripta/nkripta/internal/types"
)

func fixedGenerator() *Generator {
	g := NewGenerator(NewMemoryStateStore())
	g.now = func() time.Time {
		return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	}
	return g
}

func testProfile(id, orgID string) *profile.Profile {
	return &profile.Profile{
		ID:             id,
		FirstName:      "Test",
		LastName:       "User",
		Email:          id + "@example.com",
		OrganizationID: orgID,
	}
}

func TestSubscriptionCountBuckets(t *testing.T) {
	g := fixedGenerator()

	// Character-code sums: "p1" -> 161 (bucket 1, zero subs),
	// "p3" -> 163 (bucket 3, one sub), "p8" -> 168 (bucket 8, two subs).
	assert.Empty(t, g.SubscriptionsForProfile(testProfile("p1", "o1")))
	assert.Len(t, g.SubscriptionsForProfile(testProfile("p3", "o1")), 1)
	assert.Len(t, g.SubscriptionsForProfile(testProfile("p8", "o1")), 2)
}

func TestGenerationIsDeterministic(t *testing.T) {
	g := fixedGenerator()
	p := testProfile("p8", "o1")

	first := g.SubscriptionsForProfile(p)
	second := g.SubscriptionsForProfile(p)
	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i], second[i])
	}

	firstPMs := g.PaymentMethodsForProfile(p)
	secondPMs := g.PaymentMethodsForProfile(p)
	assert.Equal(t, firstPMs, secondPMs)
}

func TestSubscriptionShape(t *testing.T) {
	g := fixedGenerator()

	subs := g.SubscriptionsForProfile(testProfile("p3", "o1"))
	require.Len(t, subs, 1)
	sub := subs[0]

	assert.Equal(t, "sub_p3_premiu_0", sub.ID)
	assert.Equal(t, "p3", sub.ProfileID)
	assert.Equal(t, "o1", sub.OrganizationID)
	assert.Equal(t, types.PlanTypePremium, sub.PlanType)
	assert.Equal(t, "Premium Plan", sub.PlanName)
	assert.Equal(t, "29.99", sub.PlanAmount.String())
	assert.Equal(t, "eur", sub.PlanCurrency)
	assert.Equal(t, types.SubscriptionStatusPastDue, sub.Status)
	assert.Equal(t, sub.CurrentPeriodStart.AddDate(0, 0, 30), sub.CurrentPeriodEnd)
	assert.False(t, sub.CurrentPeriodEnd.Before(g.now()))
}

func TestCanceledSubscriptionPeriodIsInThePast(t *testing.T) {
	g := fixedGenerator()

	// "p9" -> seed 169: the first of its two subscriptions lands in the
	// canceled bucket.
	subs := g.SubscriptionsForProfile(testProfile("p9", "o1"))
	require.Len(t, subs, 2)

	canceled := subs[0]
	require.Equal(t, types.SubscriptionStatusCanceled, canceled.Status)
	assert.True(t, canceled.CurrentPeriodEnd.Before(g.now()))
	assert.True(t, canceled.CancelAtPeriodEnd)
}

func TestStateOverlaySurvivesRegeneration(t *testing.T) {
	g := fixedGenerator()
	p := testProfile("p3", "o1")

	subs := g.SubscriptionsForProfile(p)
	require.Len(t, subs, 1)
	id := subs[0].ID

	g.RecordTransition(id, State{Status: types.SubscriptionStatusActive, CancelAtPeriodEnd: true})

	regenerated := g.SubscriptionsForProfile(p)
	require.Len(t, regenerated, 1)
	assert.Equal(t, types.SubscriptionStatusActive, regenerated[0].Status)
	assert.True(t, regenerated[0].CancelAtPeriodEnd)

	g.RecordTransition(id, State{Status: types.SubscriptionStatusCanceled, CancelAtPeriodEnd: true})

	byID := g.SubscriptionForID(id, p)
	assert.Equal(t, types.SubscriptionStatusCanceled, byID.Status)
}

func TestSubscriptionForIDDecodesPlanFragment(t *testing.T) {
	g := fixedGenerator()
	p := testProfile("p3", "o1")

	sub := g.SubscriptionForID("sub_p3_basic_0", p)
	assert.Equal(t, types.PlanTypeBasic, sub.PlanType)
	assert.Equal(t, "9.99", sub.PlanAmount.String())

	sub = g.SubscriptionForID("sub_p3_enterp_0", p)
	assert.Equal(t, types.PlanTypeEnterprise, sub.PlanType)

	sub = g.SubscriptionForID("sub_p3_bogus_0", p)
	assert.Equal(t, types.PlanTypeUnknown, sub.PlanType)
}

func TestOwnerRecordTable(t *testing.T) {
	g := fixedGenerator()
	p := testProfile("p8", "o1")

	subs := g.SubscriptionsForProfile(p)
	require.NotEmpty(t, subs)

	owner, ok := g.OwnerProfileID(subs[0].ID)
	assert.True(t, ok)
	assert.Equal(t, "p8", owner)

	_, ok = g.OwnerProfileID("sub_zz_basic_9")
	assert.False(t, ok)
}

func TestPaymentMethodGeneration(t *testing.T) {
	g := fixedGenerator()

	// "p3" -> seed 163, one card; "p5" -> seed 165, divisible by five, two.
	one := g.PaymentMethodsForProfile(testProfile("p3", "o1"))
	require.Len(t, one, 1)
	assert.True(t, one[0].Default)
	assert.Equal(t, "card", one[0].Type)
	assert.Len(t, one[0].Card.Last4, 4)

	two := g.PaymentMethodsForProfile(testProfile("p5", "o1"))
	require.Len(t, two, 2)
	assert.Equal(t, "visa", two[0].Card.Brand)
	assert.Equal(t, "mastercard", two[1].Card.Brand)
	assert.True(t, two[0].Default)
	assert.False(t, two[1].Default)
}

func TestIsSyntheticID(t *testing.T) {
	assert.True(t, IsSyntheticID("sub_p3_premiu_0"))
	assert.True(t, IsSyntheticID("pm_p3_visa_0"))

	// Real gateway ids carry a single underscore.
	assert.False(t, IsSyntheticID("sub_1MowQVLkdIwHu7ix"))
	assert.False(t, IsSyntheticID("pm_1MowQVLkdIwHu7ix"))
	assert.False(t, IsSyntheticID("cus_NffrFeUfNV2Hib"))
}

func TestProfileFragment(t *testing.T) {
	fragment, ok := ProfileFragment("sub_p3_premiu_0")
	assert.True(t, ok)
	assert.Equal(t, "p3", fragment)

	_, ok = ProfileFragment("sub_x")
	assert.False(t, ok)
}

func TestSyntheticCatalogs(t *testing.T) {
	plans := Plans()
	require.Len(t, plans, 5)
	assert.Equal(t, "price_basic_monthly", plans[0].ID)
	assert.Equal(t, int64(999), plans[0].UnitAmount)
	assert.Equal(t, "9.99", plans[0].Amount.String())
	assert.Equal(t, "year", plans[4].Interval)

	coupons := Coupons()
	require.Len(t, coupons, 5)
	assert.Equal(t, "WELCOME10", coupons[0].ID)
	assert.Equal(t, float64(10), coupons[0].PercentOff)
	assert.Equal(t, types.CouponDurationForever, coupons[2].Duration)
	assert.Equal(t, int64(500), coupons[3].AmountOff)
}
