package auth

import (
	"context"

	"github.com/nkripta/nkripta/internal/config"
	"github.com/nkripta/nkripta/internal/logger"
	"github.com/nkripta/nkripta/internal/types"
)

// Claims is the authenticated caller identity extracted from a token.
type Claims struct {
	ProfileID      string
	OrganizationID string
	Email          string
	Roles          []types.Role
}

// Provider validates bearer tokens into caller claims.
type Provider interface {
	GetProvider() string
	ValidateToken(ctx context.Context, token string) (*Claims, error)
}

// NewProvider selects the token validator from configuration. The static
// provider exists for local development only and is rejected by config
// validation in production mode.
func NewProvider(cfg *config.Configuration, log *logger.Logger) Provider {
	switch cfg.Auth.Provider {
	case config.AuthProviderStatic:
		log.Warnw("using static auth provider, all requests share one identity")
		return NewStaticAuth(cfg)
	default:
		return NewJWTAuth(cfg)
	}
}
