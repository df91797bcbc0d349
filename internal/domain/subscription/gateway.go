package subscription

import "context"

// CreateParams carries everything the gateway needs to create a
// subscription for an existing customer.
type CreateParams struct {
	CustomerID      string
	ProfileID       string
	OrganizationID  string
	PaymentMethodID string
	PriceID         string
	CouponID        string
}

// Gateway is the payment-processor boundary. Read methods may be retried;
// write methods are issued exactly once and their failures surface to the
// caller, since fabricating a successful payment mutation is unacceptable.
type Gateway interface {
	CreateCustomer(ctx context.Context, email, name, profileID, organizationID string) (string, error)

	CreateSubscription(ctx context.Context, params CreateParams) (*CreateResult, error)
	CancelSubscription(ctx context.Context, id string) (*TransitionResult, error)
	PauseSubscription(ctx context.Context, id string) (*TransitionResult, error)
	ResumeSubscription(ctx context.Context, id string) (*TransitionResult, error)

	GetSubscription(ctx context.Context, id string) (*Subscription, error)
	ListSubscriptions(ctx context.Context, customerID string) ([]*Subscription, error)
	ListAllSubscriptions(ctx context.Context) ([]*Subscription, error)
	// ActiveSubscriptionExists reports whether the customer already holds an
	// active subscription for the exact price id.
	ActiveSubscriptionExists(ctx context.Context, customerID, priceID string) (bool, error)

	ListPlans(ctx context.Context) ([]*Plan, error)
	ListCoupons(ctx context.Context, limit int) ([]*Coupon, error)
	GetCoupon(ctx context.Context, id string) (*Coupon, error)

	GetPaymentMethod(ctx context.Context, id string) (*PaymentMethod, error)
	ListPaymentMethods(ctx context.Context, customerID string) ([]*PaymentMethod, error)
}

// AllSameID detects the degenerate listing signature of naive sandbox
// backends: more than one row, every row sharing one subscription id.
func AllSameID(subs []*Subscription) bool {
	if len(subs) < 2 {
		return false
	}
	first := subs[0].ID
	for _, s := range subs[1:] {
		if s.ID != first {
			return false
		}
	}
	return true
}
