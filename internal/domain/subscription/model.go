package subscription

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nkripta/nkripta/internal/types"
)

// Subscription is the normalized view of a billing subscription. The payment
// processor is the source of truth; nothing in this shape is persisted
// locally.
type Subscription struct {
	ID                 string                   `json:"subscriptionId"`
	ProfileID          string                   `json:"profileId"`
	OrganizationID     string                   `json:"organizationId"`
	PlanType           string                   `json:"planType"`
	PlanName           string                   `json:"planName"`
	PlanAmount         decimal.Decimal          `json:"planAmount"`
	PlanCurrency       string                   `json:"planCurrency"`
	Status             types.SubscriptionStatus `json:"status"`
	CurrentPeriodStart time.Time                `json:"currentPeriodStart"`
	CurrentPeriodEnd   time.Time                `json:"currentPeriodEnd"`
	CancelAtPeriodEnd  bool                     `json:"cancelAtPeriodEnd"`
	CustomerEmail      string                   `json:"customerEmail,omitempty"`
	CreatedAt          time.Time                `json:"createdAt"`
}

// Plan is a read-only catalog entry sourced from the gateway (or synthesized
// in mock mode).
type Plan struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"productId"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	UnitAmount    int64           `json:"unitAmount"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Interval      string          `json:"interval"`
	IntervalCount int64           `json:"intervalCount"`
	Active        bool            `json:"active"`
}

// Coupon is a read-only discount descriptor.
type Coupon struct {
	ID               string               `json:"id"`
	Name             string               `json:"name"`
	AmountOff        int64                `json:"amountOff,omitempty"`
	PercentOff       float64              `json:"percentOff,omitempty"`
	Duration         types.CouponDuration `json:"duration"`
	DurationInMonths int64                `json:"durationInMonths,omitempty"`
	Valid            bool                 `json:"valid"`
}

// Card is the payment card summary exposed on a payment method.
type Card struct {
	Brand       string `json:"brand"`
	Last4       string `json:"last4"`
	ExpiryMonth int64  `json:"expiryMonth"`
	ExpiryYear  int64  `json:"expiryYear"`
}

// PaymentMethod is the normalized view of a stored payment instrument.
type PaymentMethod struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Card         Card      `json:"card"`
	BillingName  string    `json:"billingName,omitempty"`
	BillingEmail string    `json:"billingEmail,omitempty"`
	CustomerID   string    `json:"-"`
	CreatedAt    time.Time `json:"created"`
	Default      bool      `json:"isDefault"`
}

// CreateResult is returned from subscription creation: the new subscription
// id, its initial status, a client-usable payment-confirmation token, and
// the applied discount if any.
type CreateResult struct {
	SubscriptionID string                   `json:"subscriptionId"`
	Status         types.SubscriptionStatus `json:"status"`
	ClientSecret   string                   `json:"clientSecret"`
	HasCoupon      bool                     `json:"hasCoupon"`
	Coupon         *Coupon                  `json:"coupon,omitempty"`
}

// TransitionResult is returned from cancel/pause/resume mutations.
type TransitionResult struct {
	SubscriptionID    string                   `json:"subscriptionId"`
	Status            types.SubscriptionStatus `json:"status"`
	CancelAtPeriodEnd bool                     `json:"cancelAtPeriodEnd"`
	Message           string                   `json:"message"`
}
