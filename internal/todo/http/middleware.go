package http

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/aussiebroadwan/todohub/internal/todo/domain"
	"github.com/aussiebroadwan/todohub/internal/todo/service"
	"github.com/aussiebroadwan/todohub/pkg/httpx"
	"github.com/aussiebroadwan/todohub/pkg/jwtx"
	"github.com/aussiebroadwan/todohub/pkg/slogx"
)

// Permission scopes expected on access tokens.
const (
	ScopeReadTodo  = "read:todo"
	ScopeWriteTodo = "write:todo"
	ScopeWorker    = "worker"
)

// Authenticate verifies the bearer token and resolves it to a local user.
// Machine tokens (client-credentials grant) have no user behind them and
// skip resolution; they carry permissions only.
func Authenticate(verifier jwtx.Verifier, users *service.UserService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, ok := bearerToken(r)
			if !ok {
				writeError(w, r, domain.ErrInvalidToken)
				return
			}

			claims, err := verifier.Verify(raw)
			if err != nil {
				log.Debug("token verification failed", "err", err)
				writeError(w, r, domain.ErrInvalidToken)
				return
			}

			// Responses behind a bearer token are personal, keep them
			// out of shared caches
			httpx.NoCache(w)

			if !claims.IsMachine() {
				user, err := users.Resolve(ctx, claims.Subject, raw)
				if err != nil {
					writeError(w, r, err)
					return
				}
				ctx = context.WithValue(ctx, httpx.CtxKeyUserID, user.ID)
			}

			ctx = context.WithValue(ctx, httpx.CtxKeyScopes, claims.Permissions)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireScopes rejects requests whose token permissions are not a superset
// of the required set.
func RequireScopes(required ...string) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			granted := httpx.ScopesFromContext(r.Context())
			for _, want := range required {
				if !slices.Contains(granted, want) {
					writeError(w, r, domain.ErrPermissionDenied)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	if !strings.HasPrefix(authz, "Bearer ") {
		return "", false
	}
	raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))
	return raw, raw != ""
}

// currentUserID pulls the resolved user from the request context. Machine
// tokens never populate it, so user-facing handlers reject them here.
func currentUserID(r *http.Request) (string, error) {
	id := httpx.UserIDFromContext(r.Context())
	if id == "" {
		return "", domain.ErrUserNotFound
	}
	return id, nil
}
