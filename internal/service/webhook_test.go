package service

import (
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/stripe/stripe-go/v82/webhook"

	ierr "github.com/nkripta/nkripta/internal/errors"
	"github.com/nkripta/nkripta/internal/testutil"
)

const testWebhookSecret = "whsec_test_secret"

type WebhookTestSuite struct {
	testutil.BaseServiceTestSuite
	billingService BillingService
}

func TestWebhookHandling(t *testing.T) {
	suite.Run(t, new(WebhookTestSuite))
}

func (s *WebhookTestSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	cfg := s.GetConfig()
	cfg.Stripe.WebhookSecret = testWebhookSecret

	s.billingService = NewBillingService(ServiceParams{
		Logger:      s.GetLogger(),
		Config:      cfg,
		Cache:       s.GetCache(),
		ProfileRepo: s.GetProfileStore(),
		OrgRepo:     s.GetOrgStore(),
		Gateway:     s.GetGateway(),
		MockGen:     s.GetMockGen(),
	})
}

func signPayload(payload []byte, secret string, at time.Time) string {
	signature := webhook.ComputeSignature(at, payload, secret)
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(signature))
}

func (s *WebhookTestSuite) TestAcceptsValidSignature() {
	payload := []byte(`{"id":"evt_1","object":"event","type":"invoice.paid"}`)
	header := signPayload(payload, testWebhookSecret, time.Now())

	err := s.billingService.HandleWebhookEvent(s.GetContext(), payload, header)
	s.NoError(err)
}

func (s *WebhookTestSuite) TestRejectsTamperedSignature() {
	payload := []byte(`{"id":"evt_1","object":"event","type":"invoice.paid"}`)
	header := signPayload(payload, "whsec_wrong_secret", time.Now())

	err := s.billingService.HandleWebhookEvent(s.GetContext(), payload, header)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *WebhookTestSuite) TestRejectsTamperedPayload() {
	payload := []byte(`{"id":"evt_1","object":"event","type":"invoice.paid"}`)
	header := signPayload(payload, testWebhookSecret, time.Now())

	tampered := []byte(`{"id":"evt_1","object":"event","type":"payout.paid"}`)
	err := s.billingService.HandleWebhookEvent(s.GetContext(), tampered, header)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *WebhookTestSuite) TestRejectsMissingSignature() {
	payload := []byte(`{"id":"evt_1","object":"event"}`)

	err := s.billingService.HandleWebhookEvent(s.GetContext(), payload, "")
	s.Error(err)
	s.True(ierr.IsValidation(err))
}
