// internal/domain/guard/guard.go
package guard

// Outcome is the access decision for a protected view
type Outcome int

const (
	// Allow renders the protected content unchanged
	Allow Outcome = iota
	// RedirectLogin sends an unauthenticated visitor to the login entry
	// point. The originally requested destination is not preserved.
	RedirectLogin
	// RedirectHome sends an authenticated visitor without a required role
	// to the default destination.
	RedirectHome
)

// Session is the view of the session store the guard needs
type Session interface {
	IsAuthenticated() bool
	HasRole(role string) bool
}

// Decide gates a protected view. It must be evaluated on every render of a
// protected route, so a logout while the page is open takes effect
// immediately. An empty requirement admits any authenticated session.
func Decide(session Session, required ...string) Outcome {
	if !session.IsAuthenticated() {
		return RedirectLogin
	}

	if len(required) == 0 {
		return Allow
	}

	for _, role := range required {
		if session.HasRole(role) {
			return Allow
		}
	}
	return RedirectHome
}
