package stripe

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	stripesdk "github.com/stripe/stripe-go/v82"

	"github.com/nkripta/nkripta/internal/domain/subscription"
	"github.com/nkripta/nkripta/internal/types"
)

var _ subscription.Gateway = (*Gateway)(nil)

// CreateSubscription attaches the payment method, makes it the customer
// default, applies an optional coupon and creates the subscription. A
// coupon that fails validation is skipped with a warning rather than
// failing the purchase.
func (g *Gateway) CreateSubscription(ctx context.Context, params subscription.CreateParams) (*subscription.CreateResult, error) {
	attachParams := &stripesdk.PaymentMethodAttachParams{
		Customer: stripesdk.String(params.CustomerID),
	}
	attachParams.Context = ctx
	if _, err := g.api.PaymentMethods.Attach(params.PaymentMethodID, attachParams); err != nil {
		return nil, g.wrapErr(err, "Failed to attach payment method")
	}

	custParams := &stripesdk.CustomerParams{
		InvoiceSettings: &stripesdk.CustomerInvoiceSettingsParams{
			DefaultPaymentMethod: stripesdk.String(params.PaymentMethodID),
		},
	}
	custParams.Context = ctx
	if _, err := g.api.Customers.Update(params.CustomerID, custParams); err != nil {
		return nil, g.wrapErr(err, "Failed to set default payment method")
	}

	var coupon *subscription.Coupon
	if params.CouponID != "" {
		var err error
		coupon, err = g.GetCoupon(ctx, params.CouponID)
		if err != nil || !coupon.Valid {
			g.log.Warnw("skipping invalid coupon", "coupon_id", params.CouponID, "error", err)
			coupon = nil
		}
	}

	subParams := &stripesdk.SubscriptionParams{
		Customer: stripesdk.String(params.CustomerID),
		Items: []*stripesdk.SubscriptionItemsParams{
			{Price: stripesdk.String(params.PriceID)},
		},
	}
	subParams.Context = ctx
	subParams.AddMetadata("profileId", params.ProfileID)
	subParams.AddMetadata("organizationId", params.OrganizationID)
	subParams.AddExpand("latest_invoice.confirmation_secret")
	subParams.Discounts = discountParams(coupon)

	sub, err := g.api.Subscriptions.New(subParams)
	if err != nil {
		return nil, g.wrapErr(err, "Failed to create subscription")
	}

	g.log.Infow("created gateway subscription",
		"subscription_id", sub.ID,
		"customer_id", params.CustomerID,
		"price_id", params.PriceID,
		"coupon_applied", coupon != nil)

	return &subscription.CreateResult{
		SubscriptionID: sub.ID,
		Status:         types.SubscriptionStatus(sub.Status),
		ClientSecret:   clientSecret(sub),
		HasCoupon:      coupon != nil,
		Coupon:         coupon,
	}, nil
}

func discountParams(coupon *subscription.Coupon) []*stripesdk.SubscriptionDiscountParams {
	if coupon == nil {
		return nil
	}
	return []*stripesdk.SubscriptionDiscountParams{
		{Coupon: stripesdk.String(coupon.ID)},
	}
}

// clientSecret pulls the payment-confirmation token off the latest invoice,
// or mints a placeholder token when the invoice carries none (e.g. a 100%
// discount needs no confirmation).
func clientSecret(sub *stripesdk.Subscription) string {
	if sub.LatestInvoice != nil && sub.LatestInvoice.ConfirmationSecret != nil {
		if secret := sub.LatestInvoice.ConfirmationSecret.ClientSecret; secret != "" {
			return secret
		}
	}
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:13]
	return fmt.Sprintf("pi_%d_secret_%s", time.Now().Unix(), token)
}

func (g *Gateway) CancelSubscription(ctx context.Context, id string) (*subscription.TransitionResult, error) {
	params := &stripesdk.SubscriptionCancelParams{}
	params.Context = ctx

	sub, err := g.api.Subscriptions.Cancel(id, params)
	if err != nil {
		return nil, g.wrapErr(err, "Failed to cancel subscription")
	}

	g.log.Infow("canceled gateway subscription", "subscription_id", id)
	return &subscription.TransitionResult{
		SubscriptionID:    sub.ID,
		Status:            types.SubscriptionStatus(sub.Status),
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
		Message:           "Subscription canceled successfully",
	}, nil
}

func (g *Gateway) PauseSubscription(ctx context.Context, id string) (*subscription.TransitionResult, error) {
	return g.setCancelAtPeriodEnd(ctx, id, true, "Subscription will be canceled at the end of the current period")
}

func (g *Gateway) ResumeSubscription(ctx context.Context, id string) (*subscription.TransitionResult, error) {
	return g.setCancelAtPeriodEnd(ctx, id, false, "Subscription resumed successfully")
}

func (g *Gateway) setCancelAtPeriodEnd(ctx context.Context, id string, cancel bool, message string) (*subscription.TransitionResult, error) {
	params := &stripesdk.SubscriptionParams{
		CancelAtPeriodEnd: stripesdk.Bool(cancel),
	}
	params.Context = ctx

	sub, err := g.api.Subscriptions.Update(id, params)
	if err != nil {
		return nil, g.wrapErr(err, "Failed to update subscription")
	}

	g.log.Infow("updated gateway subscription", "subscription_id", id, "cancel_at_period_end", cancel)
	return &subscription.TransitionResult{
		SubscriptionID:    sub.ID,
		Status:            types.SubscriptionStatus(sub.Status),
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
		Message:           message,
	}, nil
}

func (g *Gateway) GetSubscription(ctx context.Context, id string) (*subscription.Subscription, error) {
	params := &stripesdk.SubscriptionParams{}
	params.Context = ctx
	params.AddExpand("customer")
	params.AddExpand("items.data.price.product")

	var sub *stripesdk.Subscription
	err := g.retryRead(ctx, func() error {
		var opErr error
		sub, opErr = g.api.Subscriptions.Get(id, params)
		return opErr
	})
	if err != nil {
		return nil, g.wrapErr(err, "Failed to fetch subscription")
	}

	return g.normalize(sub), nil
}

func (g *Gateway) ListSubscriptions(ctx context.Context, customerID string) ([]*subscription.Subscription, error) {
	params := &stripesdk.SubscriptionListParams{
		Customer: stripesdk.String(customerID),
	}
	params.Context = ctx
	params.AddExpand("data.customer")
	params.AddExpand("data.items.data.price.product")

	return g.collectSubscriptions(ctx, params)
}

func (g *Gateway) ListAllSubscriptions(ctx context.Context) ([]*subscription.Subscription, error) {
	params := &stripesdk.SubscriptionListParams{
		Status: stripesdk.String("all"),
	}
	params.Context = ctx
	params.AddExpand("data.customer")
	params.AddExpand("data.items.data.price.product")

	return g.collectSubscriptions(ctx, params)
}

func (g *Gateway) collectSubscriptions(ctx context.Context, params *stripesdk.SubscriptionListParams) ([]*subscription.Subscription, error) {
	var subs []*subscription.Subscription
	err := g.retryRead(ctx, func() error {
		subs = subs[:0]
		iter := g.api.Subscriptions.List(params)
		for iter.Next() {
			subs = append(subs, g.normalize(iter.Subscription()))
		}
		return iter.Err()
	})
	if err != nil {
		return nil, g.wrapErr(err, "Failed to list subscriptions")
	}
	return subs, nil
}

// ActiveSubscriptionExists reports whether the customer already holds an
// active subscription on the given price.
func (g *Gateway) ActiveSubscriptionExists(ctx context.Context, customerID, priceID string) (bool, error) {
	params := &stripesdk.SubscriptionListParams{
		Customer: stripesdk.String(customerID),
		Price:    stripesdk.String(priceID),
		Status:   stripesdk.String(string(stripesdk.SubscriptionStatusActive)),
	}
	params.Context = ctx

	exists := false
	err := g.retryRead(ctx, func() error {
		exists = false
		iter := g.api.Subscriptions.List(params)
		if iter.Next() {
			exists = true
		}
		return iter.Err()
	})
	if err != nil {
		return false, g.wrapErr(err, "Failed to check existing subscriptions")
	}
	return exists, nil
}

// normalize maps a raw gateway subscription onto the local view. Plan tier
// is resolved by exact unit amount so renamed gateway products still land
// on the right local tier.
func (g *Gateway) normalize(sub *stripesdk.Subscription) *subscription.Subscription {
	out := &subscription.Subscription{
		ID:                sub.ID,
		Status:            types.SubscriptionStatus(sub.Status),
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
		CreatedAt:         time.Unix(sub.Created, 0).UTC(),
		PlanType:          types.PlanTypeUnknown,
		PlanName:          "Unknown Plan",
		PlanCurrency:      "eur",
	}

	if sub.Metadata != nil {
		out.ProfileID = sub.Metadata["profileId"]
		out.OrganizationID = sub.Metadata["organizationId"]
	}
	if sub.Customer != nil {
		out.CustomerEmail = sub.Customer.Email
	}

	if sub.Items == nil || len(sub.Items.Data) == 0 {
		return out
	}
	item := sub.Items.Data[0]
	out.CurrentPeriodStart = time.Unix(item.CurrentPeriodStart, 0).UTC()
	out.CurrentPeriodEnd = time.Unix(item.CurrentPeriodEnd, 0).UTC()

	price := item.Price
	if price == nil {
		return out
	}
	out.PlanCurrency = string(price.Currency)

	switch price.UnitAmount {
	case 999:
		out.PlanType = types.PlanTypeBasic
		out.PlanName = "Basic Plan"
		out.PlanAmount = decimal.RequireFromString("9.99")
	case 2999:
		out.PlanType = types.PlanTypePremium
		out.PlanName = "Premium Plan"
		out.PlanAmount = decimal.RequireFromString("29.99")
	default:
		out.PlanType = price.ID
		out.PlanAmount = decimal.NewFromInt(price.UnitAmount).Div(decimal.NewFromInt(100))
		if price.Product != nil && price.Product.Name != "" {
			out.PlanName = price.Product.Name
		}
	}

	return out
}
