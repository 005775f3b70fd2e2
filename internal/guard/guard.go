// Package guard decides, per protected navigation, whether to render the
// target screen, redirect to login, or show the denial screen.
package guard

import "github.com/reftrack/refadmin/internal/session"

// Decision is the outcome of a navigation check.
type Decision int

const (
	// Wait means initialization has not finished; render a neutral waiting
	// indicator and make no redirect decision yet.
	Wait Decision = iota
	// RedirectLogin means no credential is present; send the user to login.
	RedirectLogin
	// Deny means the user is authenticated but lacks the required role.
	// This is an explicit state, not an error.
	Deny
	// Allow means the target screen may render.
	Allow
)

// String returns the decision name for logs.
func (d Decision) String() string {
	switch d {
	case Wait:
		return "wait"
	case RedirectLogin:
		return "redirect-login"
	case Deny:
		return "deny"
	case Allow:
		return "allow"
	default:
		return "unknown"
	}
}

// Requirement describes what a screen demands of the session.
type Requirement struct {
	// Role is the role name the screen requires; empty means any
	// authenticated user.
	Role string
}

// AdminOnly is the requirement for administrative screens.
var AdminOnly = Requirement{Role: session.AdminRole}

// Authenticated is the requirement for screens open to any logged-in user.
var Authenticated = Requirement{}

// Decide is a total function over {loading, credential-present, role-match}
// with four mutually exclusive outcomes. It never renders a protected target
// while the session is still loading, so a restored session cannot flash
// through a login redirect.
func Decide(s session.Snapshot, req Requirement) Decision {
	if s.Loading {
		return Wait
	}
	if !s.Authenticated() {
		return RedirectLogin
	}
	if req.Role != "" && !s.Profile.HasRole(req.Role) {
		return Deny
	}
	return Allow
}
