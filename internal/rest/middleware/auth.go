package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nkripta/nkripta/internal/auth"
	ierr "github.com/nkripta/nkripta/internal/errors"
	"github.com/nkripta/nkripta/internal/logger"
	"github.com/nkripta/nkripta/internal/types"
)

// AuthenticateMiddleware validates the bearer token and attaches the caller
// identity to the request context. Every private route sits behind it.
func AuthenticateMiddleware(provider auth.Provider, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token == "" && provider.GetProvider() != "static" {
			abortUnauthorized(c, "Missing or malformed Authorization header")
			return
		}

		claims, err := provider.ValidateToken(c.Request.Context(), token)
		if err != nil {
			log.Debugw("token validation failed", "error", err)
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		ctx := types.SetCallerContext(c.Request.Context(),
			claims.ProfileID, claims.OrganizationID, claims.Email, claims.Roles)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// AdminRequiredMiddleware gates a route to callers holding the ADMIN role.
// It assumes AuthenticateMiddleware already ran.
func AdminRequiredMiddleware(c *gin.Context) {
	if !types.HasAdmin(types.GetRoles(c.Request.Context())) {
		c.AbortWithStatusJSON(http.StatusForbidden, ierr.NewErrorResponse(
			ierr.NewError("admin role required").
				WithHint("This operation requires the ADMIN role").
				Mark(ierr.ErrPermissionDenied)))
		return
	}
	c.Next()
}

func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func abortUnauthorized(c *gin.Context, hint string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ierr.NewErrorResponse(
		ierr.NewError("unauthorized").
			WithHint(hint).
			Mark(ierr.ErrPermissionDenied)))
}
