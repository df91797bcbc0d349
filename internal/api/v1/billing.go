package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nkripta/nkripta/internal/api/dto"
	ierr "github.com/nkripta/nkripta/internal/errors"
	"github.com/nkripta/nkripta/internal/logger"
	"github.com/nkripta/nkripta/internal/service"
	"github.com/nkripta/nkripta/internal/types"
)

type BillingHandler struct {
	service service.BillingService
	log     *logger.Logger
}

func NewBillingHandler(service service.BillingService, log *logger.Logger) *BillingHandler {
	return &BillingHandler{service: service, log: log}
}

// @Summary List subscriptions
// @Description List all subscriptions visible to the caller
// @Tags Billing
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} types.ListResponse[subscription.Subscription]
// @Failure 500 {object} ierr.ErrorResponse
// @Router /billing/subscriptions [get]
func (h *BillingHandler) ListSubscriptions(c *gin.Context) {
	subs, err := h.service.GetAllSubscriptions(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to list subscriptions", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, types.NewListResponse(subs, int64(len(subs)), types.DefaultPage, len(subs)))
}

// @Summary Create a subscription
// @Description Subscribe the caller to a plan
// @Tags Billing
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param subscription body dto.CreateSubscriptionRequest true "Subscription to create"
// @Success 201 {object} subscription.CreateResult
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Router /billing/subscriptions [post]
func (h *BillingHandler) CreateSubscription(c *gin.Context) {
	var req dto.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	result, err := h.service.CreateSubscription(c.Request.Context(), &req)
	if err != nil {
		h.log.Error("Failed to create subscription", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// @Summary Get a subscription
// @Tags Billing
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Subscription ID"
// @Success 200 {object} subscription.Subscription
// @Failure 403 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /billing/subscriptions/{id} [get]
func (h *BillingHandler) GetSubscription(c *gin.Context) {
	sub, err := h.service.GetSubscription(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

// @Summary Cancel a subscription
// @Tags Billing
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Subscription ID"
// @Success 200 {object} subscription.TransitionResult
// @Failure 403 {object} ierr.ErrorResponse
// @Router /billing/subscriptions/{id}/cancel [post]
func (h *BillingHandler) CancelSubscription(c *gin.Context) {
	result, err := h.service.CancelSubscription(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.log.Error("Failed to cancel subscription", "error", err)
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary Pause a subscription
// @Description Schedule cancellation at the end of the current period
// @Tags Billing
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Subscription ID"
// @Success 200 {object} subscription.TransitionResult
// @Failure 403 {object} ierr.ErrorResponse
// @Router /billing/subscriptions/{id}/pause [post]
func (h *BillingHandler) PauseSubscription(c *gin.Context) {
	result, err := h.service.PauseSubscription(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.log.Error("Failed to pause subscription", "error", err)
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary Resume a paused subscription
// @Tags Billing
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Subscription ID"
// @Success 200 {object} subscription.TransitionResult
// @Failure 403 {object} ierr.ErrorResponse
// @Router /billing/subscriptions/{id}/resume [post]
func (h *BillingHandler) ResumeSubscription(c *gin.Context) {
	result, err := h.service.ResumeSubscription(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.log.Error("Failed to resume subscription", "error", err)
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary List a profile's subscriptions
// @Tags Billing
// @Produce json
// @Security ApiKeyAuth
// @Param profileId path string true "Profile ID"
// @Success 200 {object} types.ListResponse[subscription.Subscription]
// @Failure 403 {object} ierr.ErrorResponse
// @Router /billing/profiles/{profileId}/subscriptions [get]
func (h *BillingHandler) GetProfileSubscriptions(c *gin.Context) {
	subs, err := h.service.GetProfileSubscriptions(c.Request.Context(), c.Param("profileId"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, types.NewListResponse(subs, int64(len(subs)), types.DefaultPage, len(subs)))
}

// @Summary Ensure a gateway customer exists
// @Description Create the billing customer for a profile if absent; idempotent
// @Tags Billing
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param customer body dto.CreateCustomerRequest false "Target profile (defaults to caller)"
// @Success 200 {object} dto.CreateCustomerResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /billing/customers [post]
func (h *BillingHandler) CreateCustomer(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.log.Error("Failed to bind JSON", "error", err)
			c.Error(ierr.WithError(err).
				WithHint("Invalid request format").
				Mark(ierr.ErrValidation))
			return
		}
	}

	resp, err := h.service.EnsureCustomer(c.Request.Context(), &req)
	if err != nil {
		h.log.Error("Failed to ensure customer", "error", err)
		c.Error(err)
		return
	}

	status := http.StatusOK
	if resp.Created {
		status = http.StatusCreated
	}
	c.JSON(status, resp)
}

// @Summary Get a payment method
// @Tags Billing
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Payment method ID"
// @Success 200 {object} subscription.PaymentMethod
// @Failure 403 {object} ierr.ErrorResponse
// @Router /billing/payment-methods/{id} [get]
func (h *BillingHandler) GetPaymentMethod(c *gin.Context) {
	pm, err := h.service.GetPaymentMethod(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, pm)
}

// @Summary List a profile's payment methods
// @Tags Billing
// @Produce json
// @Security ApiKeyAuth
// @Param profileId path string true "Profile ID"
// @Success 200 {object} types.ListResponse[subscription.PaymentMethod]
// @Failure 403 {object} ierr.ErrorResponse
// @Router /billing/profiles/{profileId}/payment-methods [get]
func (h *BillingHandler) GetProfilePaymentMethods(c *gin.Context) {
	methods, err := h.service.GetProfilePaymentMethods(c.Request.Context(), c.Param("profileId"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, types.NewListResponse(methods, int64(len(methods)), types.DefaultPage, len(methods)))
}

// @Summary List catalog plans
// @Tags Billing
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} types.ListResponse[subscription.Plan]
// @Router /billing/plans [get]
func (h *BillingHandler) ListPlans(c *gin.Context) {
	plans, err := h.service.ListPlans(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, types.NewListResponse(plans, int64(len(plans)), types.DefaultPage, len(plans)))
}

// @Summary List catalog coupons
// @Tags Billing
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} types.ListResponse[subscription.Coupon]
// @Router /billing/coupons [get]
func (h *BillingHandler) ListCoupons(c *gin.Context) {
	coupons, err := h.service.ListCoupons(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, types.NewListResponse(coupons, int64(len(coupons)), types.DefaultPage, len(coupons)))
}
