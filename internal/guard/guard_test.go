// ABOUTME: Tests for view access decisions
// ABOUTME: Covers the login and admin-role gating table

package guard

import (
	"testing"

	"github.com/inkwell-books/storefront/internal/session"
)

func TestDecide(t *testing.T) {
	admin := &session.User{ID: "1", Name: "Root", Role: "ADMIN"}
	customer := &session.User{ID: "2", Name: "Reader", Role: "CUSTOMER"}

	tests := []struct {
		name         string
		state        session.State
		requiredRole string
		want         Decision
	}{
		{
			name:  "no token redirects to login",
			state: session.State{},
			want:  RedirectLogin,
		},
		{
			name:         "no token with role requirement still redirects to login",
			state:        session.State{},
			requiredRole: RoleAdmin,
			want:         RedirectLogin,
		},
		{
			name:  "logged in without role requirement",
			state: session.State{LoggedIn: true, Token: "t", User: customer},
			want:  Allow,
		},
		{
			name:         "customer blocked from admin view",
			state:        session.State{LoggedIn: true, Token: "t", User: customer},
			requiredRole: RoleAdmin,
			want:         RedirectHome,
		},
		{
			name:         "admin allowed into admin view",
			state:        session.State{LoggedIn: true, Token: "t", User: admin},
			requiredRole: RoleAdmin,
			want:         Allow,
		},
		{
			name:         "missing user blocked from admin view",
			state:        session.State{LoggedIn: true, Token: "t"},
			requiredRole: RoleAdmin,
			want:         RedirectHome,
		},
		{
			name:         "non-admin role requirement passes through",
			state:        session.State{LoggedIn: true, Token: "t", User: customer},
			requiredRole: "EDITOR",
			want:         Allow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decide(tt.state, tt.requiredRole); got != tt.want {
				t.Errorf("Decide() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecisionString(t *testing.T) {
	if Allow.String() != "allow" || RedirectLogin.String() != "redirect-login" || RedirectHome.String() != "redirect-home" {
		t.Error("unexpected decision names")
	}
}
