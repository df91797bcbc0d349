package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/nkripta/nkripta/internal/config"
	ierr "github.com/nkripta/nkripta/internal/errors"
	"github.com/nkripta/nkripta/internal/types"
)

type jwtAuth struct {
	AuthConfig config.AuthConfig
}

func NewJWTAuth(cfg *config.Configuration) Provider {
	return &jwtAuth{AuthConfig: cfg.Auth}
}

func (j *jwtAuth) GetProvider() string {
	return config.AuthProviderJWT
}

func (j *jwtAuth) ValidateToken(ctx context.Context, token string) (*Claims, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ierr.NewError("unexpected signing method").
				WithHint(fmt.Sprintf("unexpected signing method: %v", token.Header["alg"])).
				Mark(ierr.ErrPermissionDenied)
		}
		return []byte(j.AuthConfig.Secret), nil
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Token parse error").
			Mark(ierr.ErrPermissionDenied)
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, ierr.NewError("invalid token claims").
			WithHint("Invalid token claims").
			Mark(ierr.ErrPermissionDenied)
	}

	profileID, profileOk := claims["profile_id"].(string)
	if !profileOk || profileID == "" {
		return nil, ierr.NewError("token missing profile ID").
			WithHint("Token missing profile ID").
			Mark(ierr.ErrPermissionDenied)
	}

	organizationID, _ := claims["organization_id"].(string)
	email, _ := claims["email"].(string)

	roles := []types.Role{types.RoleUser}
	if rawRoles, rolesOk := claims["roles"].([]interface{}); rolesOk {
		roles = roles[:0]
		for _, raw := range rawRoles {
			if s, sOk := raw.(string); sOk {
				roles = append(roles, types.Role(s))
			}
		}
	}
	if !types.ValidateRoles(roles) {
		return nil, ierr.NewError("token carries unknown roles").
			WithHint("Token carries unknown roles").
			Mark(ierr.ErrPermissionDenied)
	}

	return &Claims{
		ProfileID:      profileID,
		OrganizationID: organizationID,
		Email:          email,
		Roles:          roles,
	}, nil
}

// GenerateToken mints a signed token for a profile, used by tests and local
// tooling rather than a production login flow.
func (j *jwtAuth) GenerateToken(profileID, organizationID, email string, roles []types.Role) (string, error) {
	expiration := time.Now().Add(30 * 24 * time.Hour)

	rawRoles := make([]string, 0, len(roles))
	for _, role := range roles {
		rawRoles = append(rawRoles, string(role))
	}

	claims := jwt.MapClaims{
		"profile_id":      profileID,
		"organization_id": organizationID,
		"email":           email,
		"roles":           rawRoles,
		"exp":             expiration.Unix(),
		"iat":             time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.AuthConfig.Secret))
}
