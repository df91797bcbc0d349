package v1

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	ierr "github.com/nkripta/nkripta/internal/errors"
	"github.com/nkripta/nkripta/internal/logger"
	"github.com/nkripta/nkripta/internal/service"
)

const webhookMaxBodyBytes = 64 * 1024

type WebhookHandler struct {
	service service.BillingService
	log     *logger.Logger
}

func NewWebhookHandler(service service.BillingService, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{service: service, log: log}
}

// HandleWebhook receives asynchronous gateway events. The raw body is read
// untouched so the signature header can be verified against it; a failed
// verification rejects the request before any payload processing.
func (h *WebhookHandler) HandleWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, webhookMaxBodyBytes))
	if err != nil {
		h.log.Error("Failed to read webhook body", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Failed to read request body").
			Mark(ierr.ErrValidation))
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if err := h.service.HandleWebhookEvent(c.Request.Context(), payload, signature); err != nil {
		h.log.Error("Webhook rejected", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
