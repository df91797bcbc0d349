package organization

import (
	"context"

	"github.com/nkripta/nkripta/internal/types"
)

// Repository is the persistence boundary for organizations.
type Repository interface {
	Create(ctx context.Context, org *Organization) error
	Get(ctx context.Context, id string) (*Organization, error)
	GetBySlug(ctx context.Context, slug string) (*Organization, error)
	Update(ctx context.Context, org *Organization) error
	List(ctx context.Context, filter *types.QueryFilter) ([]*Organization, error)
	Count(ctx context.Context) (int64, error)
}
