package testutil

import (
	"context"
	"sort"

	"github.com/nkripta/nkripta/internal/domain/organization"
	ierr "github.com/nkripta/nkripta/internal/errors"
	"github.com/nkripta/nkripta/internal/types"
)

// InMemoryOrganizationStore implements organization.Repository
type InMemoryOrganizationStore struct {
	*InMemoryStore[*organization.Organization]
}

func NewInMemoryOrganizationStore() *InMemoryOrganizationStore {
	return &InMemoryOrganizationStore{InMemoryStore: NewInMemoryStore[*organization.Organization]()}
}

func copyOrganization(org *organization.Organization) *organization.Organization {
	if org == nil {
		return nil
	}
	copied := *org
	return &copied
}

func (s *InMemoryOrganizationStore) Create(ctx context.Context, org *organization.Organization) error {
	for _, existing := range s.InMemoryStore.All() {
		if existing.Slug == org.Slug {
			return ierr.NewError("slug already taken").
				WithHintf("An organization with slug %s already exists", org.Slug).
				Mark(ierr.ErrAlreadyExists)
		}
	}
	return s.InMemoryStore.Insert(org.ID, copyOrganization(org))
}

func (s *InMemoryOrganizationStore) Get(ctx context.Context, id string) (*organization.Organization, error) {
	org, ok := s.InMemoryStore.Get(id)
	if !ok {
		return nil, organizationNotFound(id)
	}
	return copyOrganization(org), nil
}

func (s *InMemoryOrganizationStore) GetBySlug(ctx context.Context, slug string) (*organization.Organization, error) {
	for _, org := range s.InMemoryStore.All() {
		if org.Slug == slug {
			return copyOrganization(org), nil
		}
	}
	return nil, organizationNotFound(slug)
}

func (s *InMemoryOrganizationStore) Update(ctx context.Context, org *organization.Organization) error {
	if !s.InMemoryStore.Update(org.ID, copyOrganization(org)) {
		return organizationNotFound(org.ID)
	}
	return nil
}

func (s *InMemoryOrganizationStore) List(ctx context.Context, filter *types.QueryFilter) ([]*organization.Organization, error) {
	all := make([]*organization.Organization, 0)
	for _, org := range s.InMemoryStore.All() {
		all = append(all, copyOrganization(org))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	offset := filter.GetOffset()
	if offset >= len(all) {
		return []*organization.Organization{}, nil
	}
	end := offset + filter.GetLimit()
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (s *InMemoryOrganizationStore) Count(ctx context.Context) (int64, error) {
	return s.InMemoryStore.Count(), nil
}

func organizationNotFound(ref string) error {
	return ierr.NewError("organization not found").
		WithHintf("Organization %s does not exist", ref).
		Mark(ierr.ErrNotFound)
}
