package httpx

import "context"

type ctxKey string

const (
	// CtxKeyUserID carries the authenticated subject for rate limiting and
	// audit logging. Handlers should prefer their own richer context values.
	CtxKeyUserID ctxKey = "user_id"

	// CtxKeyScopes carries the permission scopes granted to the caller.
	CtxKeyScopes ctxKey = "scopes"
)

// UserIDFromContext returns the authenticated subject, or "" if the request
// was not authenticated.
func UserIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return v
	}
	return ""
}

// ScopesFromContext returns the permission scopes granted to the caller.
func ScopesFromContext(ctx context.Context) []string {
	if v, ok := ctx.Value(CtxKeyScopes).([]string); ok {
		return v
	}
	return nil
}
