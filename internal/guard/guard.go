// ABOUTME: Access decisions for identity-gated views
// ABOUTME: Pure function of the current session and an optional required role

package guard

import "github.com/inkwell-books/storefront/internal/session"

// RoleAdmin is the elevated role gating the back-office.
const RoleAdmin = "ADMIN"

// Decision is the outcome of an access check.
type Decision int

const (
	// Allow renders the requested view.
	Allow Decision = iota
	// RedirectLogin sends the user to the login view; no valid token.
	RedirectLogin
	// RedirectHome sends the user home; token valid but the admin role
	// requirement is unmet.
	RedirectHome
)

// Decide gates access to a view that requires an identity, and optionally a
// role. Only the admin role is enforced: a required non-admin role that the
// user lacks currently passes through unchanged.
func Decide(s session.State, requiredRole string) Decision {
	if !s.LoggedIn || s.Token == "" {
		return RedirectLogin
	}
	if requiredRole != "" && (s.User == nil || s.User.Role != requiredRole) {
		if requiredRole == RoleAdmin {
			return RedirectHome
		}
	}
	return Allow
}

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect-login"
	case RedirectHome:
		return "redirect-home"
	default:
		return "unknown"
	}
}
