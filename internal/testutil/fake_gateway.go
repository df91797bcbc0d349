package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nkripta/nkripta/internal/domain/subscription"
	ierr "github.com/nkripta/nkripta/internal/errors"
	"github.com/nkripta/nkripta/internal/types"
)

// FakeGateway is a scriptable in-memory subscription.Gateway. Setting Err
// simulates an unreachable gateway; Degenerate makes every listing return
// the all-one-id failure signature.
type FakeGateway struct {
	mu sync.Mutex

	Err        error
	Degenerate bool

	CreateCustomerCalls int

	customerSeq int
	subSeq      int

	subs        map[string]*subscription.Subscription
	subCustomer map[string]string

	paymentMethods map[string]*subscription.PaymentMethod

	PlanCatalog   []*subscription.Plan
	CouponCatalog []*subscription.Coupon
}

var _ subscription.Gateway = (*FakeGateway)(nil)

func NewFakeGateway() *FakeGateway {
	return &FakeGateway{
		subs:           make(map[string]*subscription.Subscription),
		subCustomer:    make(map[string]string),
		paymentMethods: make(map[string]*subscription.PaymentMethod),
	}
}

func (g *FakeGateway) CreateCustomer(ctx context.Context, email, name, profileID, organizationID string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.CreateCustomerCalls++
	if g.Err != nil {
		return "", g.Err
	}
	g.customerSeq++
	return fmt.Sprintf("cus_fake%04d", g.customerSeq), nil
}

func (g *FakeGateway) CreateSubscription(ctx context.Context, params subscription.CreateParams) (*subscription.CreateResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Err != nil {
		return nil, g.Err
	}

	g.subSeq++
	id := fmt.Sprintf("sub_fake%04d", g.subSeq)
	now := time.Now()

	sub := &subscription.Subscription{
		ID:                 id,
		ProfileID:          params.ProfileID,
		OrganizationID:     params.OrganizationID,
		PlanType:           params.PriceID,
		PlanName:           "Fake Plan",
		PlanAmount:         decimal.RequireFromString("9.99"),
		PlanCurrency:       "eur",
		Status:             types.SubscriptionStatusActive,
		CurrentPeriodStart: now,
		CurrentPeriodEnd:   now.AddDate(0, 0, 30),
		CreatedAt:          now,
	}
	g.subs[id] = sub
	g.subCustomer[id] = params.CustomerID

	return &subscription.CreateResult{
		SubscriptionID: id,
		Status:         sub.Status,
		ClientSecret:   fmt.Sprintf("pi_fake_secret_%04d", g.subSeq),
		HasCoupon:      params.CouponID != "",
	}, nil
}

func (g *FakeGateway) CancelSubscription(ctx context.Context, id string) (*subscription.TransitionResult, error) {
	return g.mutate(id, func(sub *subscription.Subscription) {
		sub.Status = types.SubscriptionStatusCanceled
		sub.CancelAtPeriodEnd = true
	}, "Subscription canceled successfully")
}

func (g *FakeGateway) PauseSubscription(ctx context.Context, id string) (*subscription.TransitionResult, error) {
	return g.mutate(id, func(sub *subscription.Subscription) {
		sub.CancelAtPeriodEnd = true
	}, "Subscription will be canceled at the end of the current period")
}

func (g *FakeGateway) ResumeSubscription(ctx context.Context, id string) (*subscription.TransitionResult, error) {
	return g.mutate(id, func(sub *subscription.Subscription) {
		sub.CancelAtPeriodEnd = false
	}, "Subscription resumed successfully")
}

func (g *FakeGateway) mutate(id string, apply func(*subscription.Subscription), message string) (*subscription.TransitionResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Err != nil {
		return nil, g.Err
	}
	sub, ok := g.subs[id]
	if !ok {
		return nil, subscriptionNotFound(id)
	}
	apply(sub)
	return &subscription.TransitionResult{
		SubscriptionID:    id,
		Status:            sub.Status,
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
		Message:           message,
	}, nil
}

func (g *FakeGateway) GetSubscription(ctx context.Context, id string) (*subscription.Subscription, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Err != nil {
		return nil, g.Err
	}
	sub, ok := g.subs[id]
	if !ok {
		return nil, subscriptionNotFound(id)
	}
	copied := *sub
	return &copied, nil
}

func (g *FakeGateway) ListSubscriptions(ctx context.Context, customerID string) ([]*subscription.Subscription, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Err != nil {
		return nil, g.Err
	}

	out := make([]*subscription.Subscription, 0)
	for id, sub := range g.subs {
		if g.subCustomer[id] == customerID {
			copied := *sub
			out = append(out, &copied)
		}
	}
	if g.Degenerate {
		return degenerateListing(), nil
	}
	return out, nil
}

func (g *FakeGateway) ListAllSubscriptions(ctx context.Context) ([]*subscription.Subscription, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Err != nil {
		return nil, g.Err
	}
	if g.Degenerate {
		return degenerateListing(), nil
	}

	out := make([]*subscription.Subscription, 0, len(g.subs))
	for _, sub := range g.subs {
		copied := *sub
		out = append(out, &copied)
	}
	return out, nil
}

func (g *FakeGateway) ActiveSubscriptionExists(ctx context.Context, customerID, priceID string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Err != nil {
		return false, g.Err
	}
	for id, sub := range g.subs {
		if g.subCustomer[id] == customerID &&
			sub.PlanType == priceID &&
			sub.Status == types.SubscriptionStatusActive {
			return true, nil
		}
	}
	return false, nil
}

func (g *FakeGateway) ListPlans(ctx context.Context) ([]*subscription.Plan, error) {
	if g.Err != nil {
		return nil, g.Err
	}
	return g.PlanCatalog, nil
}

func (g *FakeGateway) ListCoupons(ctx context.Context, limit int) ([]*subscription.Coupon, error) {
	if g.Err != nil {
		return nil, g.Err
	}
	if limit > 0 && limit < len(g.CouponCatalog) {
		return g.CouponCatalog[:limit], nil
	}
	return g.CouponCatalog, nil
}

func (g *FakeGateway) GetCoupon(ctx context.Context, id string) (*subscription.Coupon, error) {
	if g.Err != nil {
		return nil, g.Err
	}
	for _, coupon := range g.CouponCatalog {
		if coupon.ID == id {
			return coupon, nil
		}
	}
	return nil, ierr.NewError("coupon not found").
		WithHintf("Coupon %s does not exist", id).
		Mark(ierr.ErrNotFound)
}

// AddPaymentMethod seeds a stored card owned by a gateway customer.
func (g *FakeGateway) AddPaymentMethod(pm *subscription.PaymentMethod) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.paymentMethods[pm.ID] = pm
}

func (g *FakeGateway) GetPaymentMethod(ctx context.Context, id string) (*subscription.PaymentMethod, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Err != nil {
		return nil, g.Err
	}
	pm, ok := g.paymentMethods[id]
	if !ok {
		return nil, ierr.NewError("payment method not found").
			WithHintf("Payment method %s does not exist", id).
			Mark(ierr.ErrNotFound)
	}
	copied := *pm
	return &copied, nil
}

func (g *FakeGateway) ListPaymentMethods(ctx context.Context, customerID string) ([]*subscription.PaymentMethod, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Err != nil {
		return nil, g.Err
	}
	out := make([]*subscription.PaymentMethod, 0)
	for _, pm := range g.paymentMethods {
		if pm.CustomerID == customerID {
			copied := *pm
			out = append(out, &copied)
		}
	}
	return out, nil
}

func degenerateListing() []*subscription.Subscription {
	rows := make([]*subscription.Subscription, 0, 3)
	for i := 0; i < 3; i++ {
		rows = append(rows, &subscription.Subscription{
			ID:     "sub_degenerate",
			Status: types.SubscriptionStatusActive,
		})
	}
	return rows
}

func subscriptionNotFound(id string) error {
	return ierr.NewError("subscription not found").
		WithHintf("Subscription %s does not exist", id).
		Mark(ierr.ErrNotFound)
}
