package auth

import (
	"context"
	"net/http"
	"strings"

	"restaurant-pos/internal/common/httpx"
)

const (
	RoleAdmin  = "admin"
	RoleChef   = "chef"
	RoleWaiter = "waiter"
)

// Identity is the opaque per-request auth context the rest of the system
// consumes.
type Identity struct {
	UserID int64
	Role   string
}

type ctxKey struct{}

func FromContext(ctx context.Context) (Identity, bool) {
	ident, ok := ctx.Value(ctxKey{}).(Identity)
	return ident, ok
}

// Middleware rejects requests without a valid bearer token and injects the
// identity into the request context.
func (s *Service) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			httpx.Unauthorized(w, "missing bearer token")
			return
		}
		ident, err := s.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			httpx.Unauthorized(w, "invalid or expired token")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, ident)))
	})
}

// RequireRole gates a handler to the given roles. It assumes Middleware ran.
func RequireRole(next http.HandlerFunc, roles ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident, ok := FromContext(r.Context())
		if !ok {
			httpx.Unauthorized(w, "missing bearer token")
			return
		}
		for _, role := range roles {
			if ident.Role == role {
				next(w, r)
				return
			}
		}
		httpx.Forbidden(w, "insufficient role")
	}
}
