package stripe

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	stripesdk "github.com/stripe/stripe-go/v82"

	"github.com/nkripta/nkripta/internal/domain/subscription"
)

func TestDiscountParams(t *testing.T) {
	assert.Nil(t, discountParams(nil))

	discounts := discountParams(&subscription.Coupon{ID: "WELCOME10", Valid: true})
	require.Len(t, discounts, 1)
	assert.Equal(t, "WELCOME10", *discounts[0].Coupon)
}

func TestClientSecretPassthrough(t *testing.T) {
	sub := &stripesdk.Subscription{
		LatestInvoice: &stripesdk.Invoice{
			ConfirmationSecret: &stripesdk.InvoiceConfirmationSecret{
				ClientSecret: "pi_123_secret_abc",
			},
		},
	}
	assert.Equal(t, "pi_123_secret_abc", clientSecret(sub))
}

func TestClientSecretSynthesizedWhenAbsent(t *testing.T) {
	secret := clientSecret(&stripesdk.Subscription{})
	assert.True(t, strings.HasPrefix(secret, "pi_"))
	assert.Contains(t, secret, "_secret_")
}
