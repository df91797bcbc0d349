package testutil

import (
	"context"
	"sort"
	"strings"

	"github.com/nkripta/nkripta/internal/domain/profile"
	ierr "github.com/nkripta/nkripta/internal/errors"
	"github.com/nkripta/nkripta/internal/types"
)

// InMemoryProfileStore implements profile.Repository
type InMemoryProfileStore struct {
	*InMemoryStore[*profile.Profile]
}

func NewInMemoryProfileStore() *InMemoryProfileStore {
	return &InMemoryProfileStore{InMemoryStore: NewInMemoryStore[*profile.Profile]()}
}

func copyProfile(p *profile.Profile) *profile.Profile {
	if p == nil {
		return nil
	}
	copied := *p
	copied.Roles = append([]types.Role(nil), p.Roles...)
	return &copied
}

func (s *InMemoryProfileStore) Create(ctx context.Context, p *profile.Profile) error {
	for _, existing := range s.InMemoryStore.All() {
		if existing.Email == p.Email {
			return ierr.NewError("email already taken").
				WithHintf("A profile with email %s already exists", p.Email).
				Mark(ierr.ErrAlreadyExists)
		}
	}
	return s.InMemoryStore.Insert(p.ID, copyProfile(p))
}

func (s *InMemoryProfileStore) Get(ctx context.Context, id string) (*profile.Profile, error) {
	p, ok := s.InMemoryStore.Get(id)
	if !ok {
		return nil, profileNotFound(id)
	}
	return copyProfile(p), nil
}

func (s *InMemoryProfileStore) GetByEmail(ctx context.Context, email string) (*profile.Profile, error) {
	for _, p := range s.InMemoryStore.All() {
		if p.Email == email {
			return copyProfile(p), nil
		}
	}
	return nil, profileNotFound(email)
}

func (s *InMemoryProfileStore) GetByStripeCustomerID(ctx context.Context, customerID string) (*profile.Profile, error) {
	for _, p := range s.InMemoryStore.All() {
		if p.StripeCustomerID == customerID {
			return copyProfile(p), nil
		}
	}
	return nil, profileNotFound(customerID)
}

func (s *InMemoryProfileStore) GetByIDPrefix(ctx context.Context, prefix string) (*profile.Profile, error) {
	if prefix == "" {
		return nil, ierr.NewError("empty profile id prefix").
			WithHint("Profile reference is malformed").
			Mark(ierr.ErrValidation)
	}
	for _, p := range s.InMemoryStore.All() {
		if strings.HasPrefix(p.ID, prefix) {
			return copyProfile(p), nil
		}
	}
	return nil, profileNotFound(prefix)
}

func (s *InMemoryProfileStore) Update(ctx context.Context, p *profile.Profile) error {
	if !s.InMemoryStore.Update(p.ID, copyProfile(p)) {
		return profileNotFound(p.ID)
	}
	return nil
}

func (s *InMemoryProfileStore) List(ctx context.Context, organizationID string, filter *types.QueryFilter) ([]*profile.Profile, error) {
	matched := make([]*profile.Profile, 0)
	for _, p := range s.InMemoryStore.All() {
		if organizationID == "" || p.OrganizationID == organizationID {
			matched = append(matched, copyProfile(p))
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	offset := filter.GetOffset()
	if offset >= len(matched) {
		return []*profile.Profile{}, nil
	}
	end := offset + filter.GetLimit()
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (s *InMemoryProfileStore) ListAll(ctx context.Context) ([]*profile.Profile, error) {
	all := make([]*profile.Profile, 0)
	for _, p := range s.InMemoryStore.All() {
		all = append(all, copyProfile(p))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

func (s *InMemoryProfileStore) Count(ctx context.Context, organizationID string) (int64, error) {
	var count int64
	for _, p := range s.InMemoryStore.All() {
		if organizationID == "" || p.OrganizationID == organizationID {
			count++
		}
	}
	return count, nil
}

func profileNotFound(ref string) error {
	return ierr.NewError("profile not found").
		WithHintf("Profile %s does not exist", ref).
		Mark(ierr.ErrNotFound)
}
