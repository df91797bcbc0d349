package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkripta/nkripta/internal/config"
	ierr "github.com/nkripta/nkripta/internal/errors"
	"github.com/nkripta/nkripta/internal/types"
)

func jwtConfig(secret string) *config.Configuration {
	cfg := config.GetDefaultConfig()
	cfg.Auth.Provider = config.AuthProviderJWT
	cfg.Auth.Secret = secret
	return cfg
}

func TestJWTRoundTrip(t *testing.T) {
	provider := NewJWTAuth(jwtConfig("test-secret")).(*jwtAuth)

	token, err := provider.GenerateToken("prof-1", "org-1", "user@example.com",
		[]types.Role{types.RoleAdmin, types.RoleUser})
	require.NoError(t, err)

	claims, err := provider.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "prof-1", claims.ProfileID)
	assert.Equal(t, "org-1", claims.OrganizationID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, []types.Role{types.RoleAdmin, types.RoleUser}, claims.Roles)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	signer := NewJWTAuth(jwtConfig("secret-a")).(*jwtAuth)
	verifier := NewJWTAuth(jwtConfig("secret-b"))

	token, err := signer.GenerateToken("prof-1", "org-1", "user@example.com", []types.Role{types.RoleUser})
	require.NoError(t, err)

	_, err = verifier.ValidateToken(context.Background(), token)
	require.Error(t, err)
	assert.True(t, ierr.IsPermissionDenied(err))
}

func TestJWTRejectsGarbageToken(t *testing.T) {
	provider := NewJWTAuth(jwtConfig("test-secret"))

	_, err := provider.ValidateToken(context.Background(), "not-a-token")
	require.Error(t, err)
	assert.True(t, ierr.IsPermissionDenied(err))
}

func TestStaticProviderReturnsConfiguredIdentity(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Auth.Static.ProfileID = "dev-profile"
	cfg.Auth.Static.OrganizationID = "dev-org"
	cfg.Auth.Static.Roles = []string{"ADMIN"}

	provider := NewStaticAuth(cfg)

	claims, err := provider.ValidateToken(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, "dev-profile", claims.ProfileID)
	assert.Equal(t, "dev-org", claims.OrganizationID)
	assert.Equal(t, []types.Role{types.RoleAdmin}, claims.Roles)

	// The token content is irrelevant for the static provider.
	again, err := provider.ValidateToken(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, claims.ProfileID, again.ProfileID)
}
