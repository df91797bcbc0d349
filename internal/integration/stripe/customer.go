package stripe

import (
	"context"

	stripesdk "github.com/stripe/stripe-go/v82"
)

// CreateCustomer registers a gateway customer for a profile and returns the
// new customer id. The profile and organization ids travel in metadata so
// gateway records can always be traced back to their local owner.
func (g *Gateway) CreateCustomer(ctx context.Context, email, name, profileID, organizationID string) (string, error) {
	params := &stripesdk.CustomerParams{
		Email: stripesdk.String(email),
		Name:  stripesdk.String(name),
	}
	params.Context = ctx
	params.AddMetadata("profileId", profileID)
	params.AddMetadata("organizationId", organizationID)

	cust, err := g.api.Customers.New(params)
	if err != nil {
		return "", g.wrapErr(err, "Failed to create billing customer")
	}

	g.log.Infow("created gateway customer", "customer_id", cust.ID, "profile_id", profileID)
	return cust.ID, nil
}
