package types

import "context"

type ContextKey string

const (
	CtxRequestID      ContextKey = "ctx_request_id"
	CtxProfileID      ContextKey = "ctx_profile_id"
	CtxOrganizationID ContextKey = "ctx_organization_id"
	CtxEmail          ContextKey = "ctx_email"
	CtxRoles          ContextKey = "ctx_roles"
)

func GetRequestID(ctx context.Context) string {
	return ctxString(ctx, CtxRequestID)
}

func GetProfileID(ctx context.Context) string {
	return ctxString(ctx, CtxProfileID)
}

func GetOrganizationID(ctx context.Context) string {
	return ctxString(ctx, CtxOrganizationID)
}

func GetEmail(ctx context.Context) string {
	return ctxString(ctx, CtxEmail)
}

func GetRoles(ctx context.Context) []Role {
	if roles, ok := ctx.Value(CtxRoles).([]Role); ok {
		return roles
	}
	return nil
}

func SetRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CtxRequestID, id)
}

// SetCallerContext attaches the resolved caller identity to the request
// context. Every service-layer authorization predicate reads from here.
func SetCallerContext(ctx context.Context, profileID, organizationID, email string, roles []Role) context.Context {
	ctx = context.WithValue(ctx, CtxProfileID, profileID)
	ctx = context.WithValue(ctx, CtxOrganizationID, organizationID)
	ctx = context.WithValue(ctx, CtxEmail, email)
	ctx = context.WithValue(ctx, CtxRoles, roles)
	return ctx
}

func ctxString(ctx context.Context, key ContextKey) string {
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}
