package stripe

import (
	"context"

	"github.com/shopspring/decimal"
	stripesdk "github.com/stripe/stripe-go/v82"

	"github.com/nkripta/nkripta/internal/domain/subscription"
	"github.com/nkripta/nkripta/internal/types"
)

// ListPlans returns the active recurring prices with their products.
func (g *Gateway) ListPlans(ctx context.Context) ([]*subscription.Plan, error) {
	params := &stripesdk.PriceListParams{
		Active: stripesdk.Bool(true),
	}
	params.Context = ctx
	params.AddExpand("data.product")

	var plans []*subscription.Plan
	err := g.retryRead(ctx, func() error {
		plans = plans[:0]
		iter := g.api.Prices.List(params)
		for iter.Next() {
			price := iter.Price()
			if price.Recurring == nil {
				continue
			}
			plan := &subscription.Plan{
				ID:            price.ID,
				UnitAmount:    price.UnitAmount,
				Amount:        decimal.NewFromInt(price.UnitAmount).Div(decimal.NewFromInt(100)),
				Currency:      string(price.Currency),
				Interval:      string(price.Recurring.Interval),
				IntervalCount: price.Recurring.IntervalCount,
				Active:        price.Active,
			}
			if price.Product != nil {
				plan.ProductID = price.Product.ID
				plan.Name = price.Product.Name
				plan.Description = price.Product.Description
			}
			plans = append(plans, plan)
		}
		return iter.Err()
	})
	if err != nil {
		return nil, g.wrapErr(err, "Failed to list plans")
	}
	return plans, nil
}

// ListCoupons returns up to limit coupons.
func (g *Gateway) ListCoupons(ctx context.Context, limit int) ([]*subscription.Coupon, error) {
	params := &stripesdk.CouponListParams{}
	params.Context = ctx
	if limit > 0 {
		params.Limit = stripesdk.Int64(int64(limit))
	}

	var coupons []*subscription.Coupon
	err := g.retryRead(ctx, func() error {
		coupons = coupons[:0]
		iter := g.api.Coupons.List(params)
		for iter.Next() {
			coupons = append(coupons, normalizeCoupon(iter.Coupon()))
		}
		return iter.Err()
	})
	if err != nil {
		return nil, g.wrapErr(err, "Failed to list coupons")
	}
	return coupons, nil
}

func (g *Gateway) GetCoupon(ctx context.Context, id string) (*subscription.Coupon, error) {
	params := &stripesdk.CouponParams{}
	params.Context = ctx

	var coupon *stripesdk.Coupon
	err := g.retryRead(ctx, func() error {
		var opErr error
		coupon, opErr = g.api.Coupons.Get(id, params)
		return opErr
	})
	if err != nil {
		return nil, g.wrapErr(err, "Failed to fetch coupon")
	}
	return normalizeCoupon(coupon), nil
}

func normalizeCoupon(c *stripesdk.Coupon) *subscription.Coupon {
	name := c.Name
	if name == "" {
		name = c.ID
	}
	return &subscription.Coupon{
		ID:               c.ID,
		Name:             name,
		AmountOff:        c.AmountOff,
		PercentOff:       c.PercentOff,
		Duration:         types.CouponDuration(c.Duration),
		DurationInMonths: c.DurationInMonths,
		Valid:            c.Valid,
	}
}
