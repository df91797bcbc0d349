package rest

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nkripta/nkripta/internal/auth"
	v1 "github.com/nkripta/nkripta/internal/api/v1"
	"github.com/nkripta/nkripta/internal/config"
	"github.com/nkripta/nkripta/internal/logger"
	"github.com/nkripta/nkripta/internal/rest/middleware"
)

// Handlers bundles the route handlers wired into the router.
type Handlers struct {
	Billing      *v1.BillingHandler
	Webhook      *v1.WebhookHandler
	Organization *v1.OrganizationHandler
	Profile      *v1.ProfileHandler
}

// NewRouter assembles the HTTP surface. The webhook route skips bearer
// authentication; it authenticates by payload signature instead.
func NewRouter(handlers Handlers, cfg *config.Configuration, provider auth.Provider, log *logger.Logger) *gin.Engine {
	if cfg.Deployment.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.LoggingMiddleware(log))
	router.Use(middleware.SentryMiddleware(cfg))
	router.Use(middleware.ErrorHandlerMiddleware(log))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	// Signature-verified, no bearer token.
	api.POST("/billing/webhook", handlers.Webhook.HandleWebhook)

	private := api.Group("")
	private.Use(middleware.AuthenticateMiddleware(provider, log))
	private.Use(middleware.SentryCallerContextMiddleware)

	billing := private.Group("/billing")
	{
		billing.GET("", handlers.Billing.ListSubscriptions)
		billing.GET("/subscriptions", handlers.Billing.ListSubscriptions)
		billing.POST("/subscriptions", handlers.Billing.CreateSubscription)
		billing.GET("/subscriptions/:id", handlers.Billing.GetSubscription)
		billing.POST("/subscriptions/:id/cancel", handlers.Billing.CancelSubscription)
		billing.POST("/subscriptions/:id/pause", handlers.Billing.PauseSubscription)
		billing.POST("/subscriptions/:id/resume", handlers.Billing.ResumeSubscription)
		billing.GET("/profiles/:profileId/subscriptions", handlers.Billing.GetProfileSubscriptions)
		billing.GET("/profiles/:profileId/payment-methods", handlers.Billing.GetProfilePaymentMethods)
		billing.POST("/customers", handlers.Billing.CreateCustomer)
		billing.GET("/payment-methods/:id", handlers.Billing.GetPaymentMethod)
		billing.GET("/plans", handlers.Billing.ListPlans)
		billing.GET("/coupons", middleware.AdminRequiredMiddleware, handlers.Billing.ListCoupons)
	}

	organizations := private.Group("/organizations")
	{
		organizations.POST("", middleware.AdminRequiredMiddleware, handlers.Organization.CreateOrganization)
		organizations.GET("", handlers.Organization.ListOrganizations)
		organizations.GET("/:id", handlers.Organization.GetOrganization)
		organizations.PUT("/:id", handlers.Organization.UpdateOrganization)
	}

	profiles := private.Group("/profiles")
	{
		profiles.POST("", handlers.Profile.CreateProfile)
		profiles.GET("", handlers.Profile.ListProfiles)
		profiles.GET("/me", handlers.Profile.GetMyProfile)
		profiles.GET("/:id", handlers.Profile.GetProfile)
		profiles.PUT("/:id", handlers.Profile.UpdateProfile)
	}

	return router
}
