package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func protectedHandler(t *testing.T, wantUserID int64) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		ident, ok := FromContext(r.Context())
		if !ok {
			t.Error("handler ran without an identity in context")
		}
		if wantUserID != 0 && ident.UserID != wantUserID {
			t.Errorf("identity user id = %d, want %d", ident.UserID, wantUserID)
		}
		w.WriteHeader(http.StatusOK)
	}
}

func TestMiddlewareRejectsBadTokens(t *testing.T) {
	svc := NewService(testUsers(t), "test-secret", time.Hour)
	h := svc.Middleware(protectedHandler(t, 0))

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not a bearer scheme", "Basic d2FpdGVyOmh1bnRlcjIy"},
		{"garbage token", "Bearer not-a-jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestRoleGating(t *testing.T) {
	svc := NewService(testUsers(t), "test-secret", time.Hour)
	_, token, err := svc.Login(context.Background(), "waiter@restaurant.local", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	tests := []struct {
		name  string
		roles []string
		want  int
	}{
		{"waiter allowed on waiter route", []string{RoleWaiter, RoleAdmin}, http.StatusOK},
		{"waiter forbidden on admin route", []string{RoleAdmin}, http.StatusForbidden},
		{"waiter forbidden on kitchen route", []string{RoleChef, RoleAdmin}, http.StatusForbidden},
		{"ungated route passes any staff", nil, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner := protectedHandler(t, 0)
			if tt.want == http.StatusForbidden {
				inner = func(w http.ResponseWriter, _ *http.Request) {
					t.Error("gated handler ran for a forbidden role")
				}
			}
			var h http.Handler = inner
			if len(tt.roles) > 0 {
				h = RequireRole(inner, tt.roles...)
			}
			h = svc.Middleware(h)

			req := httptest.NewRequest(http.MethodGet, "/api/tables", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestMiddlewareInjectsIdentity(t *testing.T) {
	svc := NewService(testUsers(t), "test-secret", time.Hour)
	_, token, err := svc.Login(context.Background(), "waiter@restaurant.local", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	h := svc.Middleware(RequireRole(protectedHandler(t, 42), RoleWaiter))
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

// RequireRole assumes the auth middleware ran; without an identity it must
// refuse, not panic.
func TestRequireRoleWithoutIdentity(t *testing.T) {
	h := RequireRole(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("handler ran without an identity")
	}, RoleAdmin)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/api/users", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
