package dto

import (
	ierr "github.com/nkripta/nkripta/internal/errors"
)

// CreateCustomerRequest ensures a gateway customer exists for a profile.
// ProfileID defaults to the caller when omitted.
type CreateCustomerRequest struct {
	ProfileID string `json:"profileId"`
}

// CreateCustomerResponse reports the gateway customer reference. Created is
// false when the profile already carried one.
type CreateCustomerResponse struct {
	ProfileID  string `json:"profileId"`
	CustomerID string `json:"customerId"`
	Created    bool   `json:"created"`
}

type CreateSubscriptionRequest struct {
	PaymentMethodID string `json:"paymentMethodId"`
	PlanID          string `json:"planId"`
	CouponID        string `json:"couponId,omitempty"`
}

func (r *CreateSubscriptionRequest) Validate() error {
	if r.PaymentMethodID == "" {
		return ierr.NewError("paymentMethodId is required").
			WithHint("Payment method ID is required").
			WithReportableDetails(map[string]interface{}{
				"field": "paymentMethodId",
			}).
			Mark(ierr.ErrValidation)
	}
	if r.PlanID == "" {
		return ierr.NewError("planId is required").
			WithHint("Plan ID is required").
			WithReportableDetails(map[string]interface{}{
				"field": "planId",
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
