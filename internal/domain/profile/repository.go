package profile

import (
	"context"

	"github.com/nkripta/nkripta/internal/types"
)

// Repository is the persistence boundary for profiles.
type Repository interface {
	Create(ctx context.Context, p *Profile) error
	Get(ctx context.Context, id string) (*Profile, error)
	GetByEmail(ctx context.Context, email string) (*Profile, error)
	GetByStripeCustomerID(ctx context.Context, customerID string) (*Profile, error)
	// GetByIDPrefix resolves a profile whose id starts with the given
	// fragment, used when decoding legacy synthetic subscription ids.
	GetByIDPrefix(ctx context.Context, prefix string) (*Profile, error)
	Update(ctx context.Context, p *Profile) error
	List(ctx context.Context, organizationID string, filter *types.QueryFilter) ([]*Profile, error)
	ListAll(ctx context.Context) ([]*Profile, error)
	Count(ctx context.Context, organizationID string) (int64, error)
}
