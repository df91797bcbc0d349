package middleware

import (
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"

	"github.com/nkripta/nkripta/internal/config"
	"github.com/nkripta/nkripta/internal/types"
)

// SentryMiddleware returns a middleware that captures errors and performance data
func SentryMiddleware(cfg *config.Configuration) gin.HandlerFunc {
	if !cfg.Sentry.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         2 * time.Second,
	})
}

// SentryCallerContextMiddleware tags the Sentry scope with the resolved
// caller identity. Add this after AuthenticateMiddleware so captured events
// on private routes carry these tags.
func SentryCallerContextMiddleware(c *gin.Context) {
	hub := sentrygin.GetHubFromContext(c)
	if hub == nil {
		c.Next()
		return
	}
	ctx := c.Request.Context()
	if profileID := types.GetProfileID(ctx); profileID != "" {
		hub.Scope().SetTag("profile_id", profileID)
	}
	if organizationID := types.GetOrganizationID(ctx); organizationID != "" {
		hub.Scope().SetTag("organization_id", organizationID)
	}
	c.Next()
}
