package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"restaurant-pos/internal/domain"
)

type fakeUsers struct {
	byEmail map[string]domain.User
}

func (f fakeUsers) GetByEmail(_ context.Context, email string) (domain.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return u, nil
}

func (f fakeUsers) GetByID(_ context.Context, id int64) (domain.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound
}

func testUsers(t *testing.T) fakeUsers {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return fakeUsers{byEmail: map[string]domain.User{
		"waiter@restaurant.local": {
			ID: 42, Name: "Waiter", Email: "waiter@restaurant.local",
			PasswordHash: string(hash), RoleName: RoleWaiter, IsActive: true,
		},
		"gone@restaurant.local": {
			ID: 43, Name: "Gone", Email: "gone@restaurant.local",
			PasswordHash: string(hash), RoleName: RoleChef, IsActive: false,
		},
	}}
}

func TestLoginRoundTrip(t *testing.T) {
	svc := NewService(testUsers(t), "test-secret", time.Hour)

	user, token, err := svc.Login(context.Background(), "waiter@restaurant.local", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != 42 {
		t.Errorf("user id = %d, want 42", user.ID)
	}

	ident, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if ident.UserID != 42 || ident.Role != RoleWaiter {
		t.Errorf("identity = %+v, want user 42 with role waiter", ident)
	}
}

func TestLoginRejections(t *testing.T) {
	svc := NewService(testUsers(t), "test-secret", time.Hour)
	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "waiter@restaurant.local", "wrong"},
		{"unknown user", "nobody@restaurant.local", "hunter22"},
		{"deactivated user", "gone@restaurant.local", "hunter22"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Login(context.Background(), tt.email, tt.password)
			if !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Errorf("err = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	issuer := NewService(testUsers(t), "secret-a", time.Hour)
	verifier := NewService(testUsers(t), "secret-b", time.Hour)

	_, token, err := issuer.Login(context.Background(), "waiter@restaurant.local", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := verifier.Verify(token); err == nil {
		t.Error("token signed with a different secret verified")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	svc := NewService(testUsers(t), "test-secret", -time.Minute)
	_, token, err := svc.Login(context.Background(), "waiter@restaurant.local", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := svc.Verify(token); err == nil {
		t.Error("expired token verified")
	}
}
