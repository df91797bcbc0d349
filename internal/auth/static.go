package auth

import (
	"context"

	"github.com/nkripta/nkripta/internal/config"
	"github.com/nkripta/nkripta/internal/types"
)

// staticAuth resolves every request to one configured identity. Development
// convenience only; config validation rejects it outside development mode.
type staticAuth struct {
	claims Claims
}

func NewStaticAuth(cfg *config.Configuration) Provider {
	roles := make([]types.Role, 0, len(cfg.Auth.Static.Roles))
	for _, raw := range cfg.Auth.Static.Roles {
		roles = append(roles, types.Role(raw))
	}
	if len(roles) == 0 {
		roles = []types.Role{types.RoleUser}
	}

	return &staticAuth{
		claims: Claims{
			ProfileID:      cfg.Auth.Static.ProfileID,
			OrganizationID: cfg.Auth.Static.OrganizationID,
			Email:          cfg.Auth.Static.Email,
			Roles:          roles,
		},
	}
}

func (s *staticAuth) GetProvider() string {
	return config.AuthProviderStatic
}

func (s *staticAuth) ValidateToken(ctx context.Context, token string) (*Claims, error) {
	claims := s.claims
	return &claims, nil
}
