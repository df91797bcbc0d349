package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/nkripta/nkripta/internal/api/v1"
	"github.com/nkripta/nkripta/internal/auth"
	"github.com/nkripta/nkripta/internal/cache"
	"github.com/nkripta/nkripta/internal/config"
	stripegw "github.com/nkripta/nkripta/internal/integration/stripe"
	"github.com/nkripta/nkripta/internal/logger"
	"github.com/nkripta/nkripta/internal/mockdata"
	"github.com/nkripta/nkripta/internal/repository/postgres"
	"github.com/nkripta/nkripta/internal/rest"
	"github.com/nkripta/nkripta/internal/service"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logger.L.Fatalw("failed to load configuration", "error", err)
	}

	log, err := logger.NewLogger(cfg)
	if err != nil {
		logger.L.Fatalw("failed to initialize logger", "error", err)
	}

	if cfg.Sentry.Enabled {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.Sentry.DSN,
			Environment:      cfg.Sentry.Environment,
			TracesSampleRate: cfg.Sentry.SampleRate,
		}); err != nil {
			log.Warnw("sentry initialization failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	db, err := postgres.NewDB(cfg, log)
	if err != nil {
		log.Fatalw("failed to initialize database", "error", err)
	}

	params := service.ServiceParams{
		Logger:      log,
		Config:      cfg,
		Cache:       cache.GetInMemoryCache(),
		ProfileRepo: postgres.NewProfileRepository(db, log),
		OrgRepo:     postgres.NewOrganizationRepository(db, log),
		Gateway:     stripegw.NewGateway(cfg, log),
		MockGen:     mockdata.NewGenerator(mockdata.NewMemoryStateStore()),
	}

	billingService := service.NewBillingService(params)
	organizationService := service.NewOrganizationService(params)
	profileService := service.NewProfileService(params)

	handlers := rest.Handlers{
		Billing:      v1.NewBillingHandler(billingService, log),
		Webhook:      v1.NewWebhookHandler(billingService, log),
		Organization: v1.NewOrganizationHandler(organizationService, log),
		Profile:      v1.NewProfileHandler(profileService, log),
	}

	router := rest.NewRouter(handlers, cfg, auth.NewProvider(cfg, log), log)

	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router,
	}

	go func() {
		log.Infow("starting server", "address", cfg.Server.Address, "mock_mode", cfg.Stripe.MockMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("forced shutdown", "error", err)
	}
}
