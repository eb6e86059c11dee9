package guard

import "testing"

type stubSession struct {
	authenticated bool
	roles         map[string]bool
}

func (s *stubSession) IsAuthenticated() bool    { return s.authenticated }
func (s *stubSession) HasRole(role string) bool { return s.roles[role] }

func merchantSession() *stubSession {
	return &stubSession{authenticated: true, roles: map[string]bool{"MERCHANT": true}}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name     string
		session  *stubSession
		required []string
		want     Outcome
	}{
		{
			name:     "unauthenticated redirects to login",
			session:  &stubSession{},
			required: []string{"CUSTOMER"},
			want:     RedirectLogin,
		},
		{
			name:     "unauthenticated redirects to login regardless of requirement",
			session:  &stubSession{},
			required: nil,
			want:     RedirectLogin,
		},
		{
			name:     "merchant against admin requirement redirects home",
			session:  merchantSession(),
			required: []string{"ADMIN"},
			want:     RedirectHome,
		},
		{
			name:     "merchant against any-role requirement renders",
			session:  merchantSession(),
			required: []string{"CUSTOMER", "MERCHANT", "ADMIN"},
			want:     Allow,
		},
		{
			name:     "authenticated with empty requirement renders",
			session:  merchantSession(),
			required: nil,
			want:     Allow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decide(tt.session, tt.required...); got != tt.want {
				t.Errorf("Decide() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecideReflectsLogoutImmediately(t *testing.T) {
	session := merchantSession()
	if got := Decide(session, "MERCHANT"); got != Allow {
		t.Fatalf("Decide() = %v, want Allow", got)
	}

	// The guard re-evaluates live session state, so a logout flips the
	// decision on the next render.
	session.authenticated = false
	if got := Decide(session, "MERCHANT"); got != RedirectLogin {
		t.Errorf("Decide() after logout = %v, want RedirectLogin", got)
	}
}
