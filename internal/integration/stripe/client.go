package stripe

import (
	"context"
	"net/http"

	"github.com/cenkalti/backoff/v4"
	stripesdk "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"

	"github.com/nkripta/nkripta/internal/config"
	ierr "github.com/nkripta/nkripta/internal/errors"
	"github.com/nkripta/nkripta/internal/logger"
)

const readRetries = 2

// Gateway translates local billing intents into Stripe API calls and Stripe
// responses into the local normalized shapes. BaseURL may point it at a
// local sandbox double.
type Gateway struct {
	api *client.API
	cfg config.StripeConfig
	log *logger.Logger
}

func NewGateway(cfg *config.Configuration, log *logger.Logger) *Gateway {
	httpClient := &http.Client{Timeout: cfg.Stripe.Timeout}

	var backends *stripesdk.Backends
	if cfg.Stripe.BaseURL != "" {
		backendCfg := &stripesdk.BackendConfig{
			URL:        stripesdk.String(cfg.Stripe.BaseURL),
			HTTPClient: httpClient,
		}
		backends = &stripesdk.Backends{
			API:     stripesdk.GetBackendWithConfig(stripesdk.APIBackend, backendCfg),
			Connect: stripesdk.GetBackendWithConfig(stripesdk.ConnectBackend, backendCfg),
			Uploads: stripesdk.GetBackendWithConfig(stripesdk.UploadsBackend, backendCfg),
		}
	} else {
		backends = stripesdk.NewBackends(httpClient)
	}

	api := &client.API{}
	api.Init(cfg.Stripe.APIKey, backends)

	return &Gateway{api: api, cfg: cfg.Stripe, log: log}
}

// retryRead runs an idempotent read with a small bounded retry. Writes are
// never routed through here.
func (g *Gateway) retryRead(ctx context.Context, op func() error) error {
	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), readRetries), ctx)
	return backoff.Retry(op, bo)
}

// wrapErr classifies a Stripe failure: missing resources become NotFound,
// everything else is a gateway communication failure carrying the
// underlying reason.
func (g *Gateway) wrapErr(err error, hint string) error {
	if stripeErr, ok := err.(*stripesdk.Error); ok {
		if stripeErr.Code == stripesdk.ErrorCodeResourceMissing {
			return ierr.WithError(err).
				WithHint("The referenced billing resource does not exist").
				Mark(ierr.ErrNotFound)
		}
		return ierr.WithError(err).
			WithHint(hint).
			WithReportableDetails(map[string]interface{}{
				"reason": stripeErr.Msg,
			}).
			Mark(ierr.ErrHTTPClient)
	}
	return ierr.WithError(err).
		WithHint(hint).
		Mark(ierr.ErrHTTPClient)
}
