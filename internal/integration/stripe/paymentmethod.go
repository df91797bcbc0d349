package stripe

import (
	"context"
	"time"

	stripesdk "github.com/stripe/stripe-go/v82"

	"github.com/nkripta/nkripta/internal/domain/subscription"
)

func (g *Gateway) GetPaymentMethod(ctx context.Context, id string) (*subscription.PaymentMethod, error) {
	params := &stripesdk.PaymentMethodParams{}
	params.Context = ctx

	var pm *stripesdk.PaymentMethod
	err := g.retryRead(ctx, func() error {
		var opErr error
		pm, opErr = g.api.PaymentMethods.Get(id, params)
		return opErr
	})
	if err != nil {
		return nil, g.wrapErr(err, "Failed to fetch payment method")
	}
	return normalizePaymentMethod(pm, ""), nil
}

// ListPaymentMethods returns the customer's stored cards. The customer's
// default payment method is resolved first so the Default flag survives
// normalization.
func (g *Gateway) ListPaymentMethods(ctx context.Context, customerID string) ([]*subscription.PaymentMethod, error) {
	custParams := &stripesdk.CustomerParams{}
	custParams.Context = ctx

	defaultID := ""
	err := g.retryRead(ctx, func() error {
		cust, opErr := g.api.Customers.Get(customerID, custParams)
		if opErr != nil {
			return opErr
		}
		if cust.InvoiceSettings != nil && cust.InvoiceSettings.DefaultPaymentMethod != nil {
			defaultID = cust.InvoiceSettings.DefaultPaymentMethod.ID
		}
		return nil
	})
	if err != nil {
		return nil, g.wrapErr(err, "Failed to fetch customer")
	}

	params := &stripesdk.PaymentMethodListParams{
		Customer: stripesdk.String(customerID),
		Type:     stripesdk.String("card"),
	}
	params.Context = ctx

	var methods []*subscription.PaymentMethod
	err = g.retryRead(ctx, func() error {
		methods = methods[:0]
		iter := g.api.PaymentMethods.List(params)
		for iter.Next() {
			methods = append(methods, normalizePaymentMethod(iter.PaymentMethod(), defaultID))
		}
		return iter.Err()
	})
	if err != nil {
		return nil, g.wrapErr(err, "Failed to list payment methods")
	}
	return methods, nil
}

func normalizePaymentMethod(pm *stripesdk.PaymentMethod, defaultID string) *subscription.PaymentMethod {
	out := &subscription.PaymentMethod{
		ID:        pm.ID,
		Type:      string(pm.Type),
		CreatedAt: time.Unix(pm.Created, 0).UTC(),
		Default:   defaultID != "" && pm.ID == defaultID,
	}
	if pm.Customer != nil {
		out.CustomerID = pm.Customer.ID
	}
	if pm.BillingDetails != nil {
		out.BillingName = pm.BillingDetails.Name
		out.BillingEmail = pm.BillingDetails.Email
	}
	if pm.Card != nil {
		out.Card = subscription.Card{
			Brand:       string(pm.Card.Brand),
			Last4:       pm.Card.Last4,
			ExpiryMonth: pm.Card.ExpMonth,
			ExpiryYear:  pm.Card.ExpYear,
		}
	}
	return out
}
