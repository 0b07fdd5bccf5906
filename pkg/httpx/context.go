package httpx

import "context"

type ctxKey string

const (
	CtxKeyUserID ctxKey = "user_id"
	CtxKeyRole   ctxKey = "role"
)

// RoleAdmin is the role string granted administrative access.
const RoleAdmin = "admin"

// CallerID returns the authenticated user ID from the request context,
// or the empty string when the request is unauthenticated.
func CallerID(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return v
	}
	return ""
}

// CallerRole returns the authenticated user's role from the request
// context, or the empty string when the request is unauthenticated.
func CallerRole(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyRole).(string); ok {
		return v
	}
	return ""
}

// CallerCanAccess reports whether the authenticated caller may operate
// on the given user's resources: admins may touch anyone, everyone else
// only themselves.
func CallerCanAccess(ctx context.Context, userID string) bool {
	if CallerRole(ctx) == RoleAdmin {
		return true
	}
	id := CallerID(ctx)
	return id != "" && id == userID
}
