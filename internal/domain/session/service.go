// internal/domain/session/service.go
package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/pkg/apiclient"
	"github.com/your-org/storefront/internal/storage"
)

// Store holds the authenticated identity and its role set. State changes
// notify subscribed listeners; persisted snapshots keep the session across
// restarts.
type Store struct {
	mu        sync.RWMutex
	api       AuthAPI
	storage   storage.Store
	log       *logrus.Logger
	user      *User
	loading   bool
	listeners map[int]func()
	nextID    int
}

// NewStore creates the session store. A persisted identity snapshot is used
// immediately; a persisted token without a snapshot marks the store as
// loading until Rehydrate runs.
func NewStore(api AuthAPI, st storage.Store, log *logrus.Logger) *Store {
	s := &Store{
		api:       api,
		storage:   st,
		log:       log,
		listeners: make(map[int]func()),
	}

	if raw, ok := st.Get(storage.KeyUser); ok {
		var user User
		if err := json.Unmarshal(raw, &user); err != nil {
			log.WithError(err).Warn("Discarding unreadable session snapshot")
			st.Delete(storage.KeyUser)
		} else {
			s.user = &user
		}
	}

	if s.user == nil {
		if _, ok := st.Get(storage.KeyToken); ok {
			s.loading = true
		}
	}

	return s
}

// Rehydrate exchanges a persisted token for a fresh identity at startup.
// Any failure is treated as logout rather than leaving a half-valid session.
func (s *Store) Rehydrate(ctx context.Context) {
	s.mu.Lock()
	if s.user != nil || !s.loading {
		s.loading = false
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	token, ok := s.storage.Get(storage.KeyToken)
	if ok && tokenExpired(string(token), time.Now()) {
		s.log.Info("Persisted token expired, logging out")
		s.Logout()
		s.setLoading(false)
		return
	}

	wire, err := s.api.Me(ctx)
	if err != nil {
		s.log.WithError(err).Info("Session rehydration failed, logging out")
		s.Logout()
		s.setLoading(false)
		return
	}

	user, err := normalizeUser(wire)
	if err != nil {
		s.log.WithError(err).Warn("Rehydrated identity rejected, logging out")
		s.Logout()
		s.setLoading(false)
		return
	}

	s.persist("", user)
	s.setLoading(false)
}

// Login authenticates with the backend, normalizes the returned role
// structure, and persists session and token.
func (s *Store) Login(ctx context.Context, credentials Credentials) (*User, error) {
	token, wire, err := s.api.Login(ctx, credentials)
	if err != nil {
		return nil, authFailure(err, "Login failed")
	}

	user, err := normalizeUser(wire)
	if err != nil {
		return nil, &apiclient.AuthError{Message: err.Error()}
	}

	s.persist(token, user)
	s.log.WithField("email", user.Email).Info("User logged in")
	return s.CurrentUser(), nil
}

// Register creates an account using the same normalization and persistence
// contract as Login.
func (s *Store) Register(ctx context.Context, data RegisterData) (*User, error) {
	token, wire, err := s.api.Register(ctx, data)
	if err != nil {
		return nil, authFailure(err, "Registration failed")
	}

	user, err := normalizeUser(wire)
	if err != nil {
		return nil, &apiclient.AuthError{Message: err.Error()}
	}

	s.persist(token, user)
	s.log.WithField("email", user.Email).Info("User registered")
	return s.CurrentUser(), nil
}

// Logout clears the persisted token, session, and cart snapshot. It always
// succeeds and makes no server round-trip.
func (s *Store) Logout() {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	s.storage.ClearAll()
	s.notify()
}

// CurrentUser returns a copy of the authenticated identity, or nil
func (s *Store) CurrentUser() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return nil
	}
	user := *s.user
	user.Roles = append([]string(nil), s.user.Roles...)
	return &user
}

// IsAuthenticated reports whether a session is present
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// IsLoading is true only during the startup rehydration fetch
func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// HasRole reports role membership; false when unauthenticated
func (s *Store) HasRole(role string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return false
	}
	return s.user.HasRole(role)
}

// Subscribe registers a listener invoked on every state change and returns
// an unsubscribe function.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// persist stores the token (when non-empty) and session snapshot, and
// installs the user as current.
func (s *Store) persist(token string, user *User) {
	if token != "" {
		s.storage.Set(storage.KeyToken, []byte(token))
	}
	if raw, err := json.Marshal(user); err == nil {
		s.storage.Set(storage.KeyUser, raw)
	} else {
		s.log.WithError(err).Warn("Failed to encode session snapshot")
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	s.notify()
}

func (s *Store) setLoading(loading bool) {
	s.mu.Lock()
	changed := s.loading != loading
	s.loading = loading
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

func (s *Store) notify() {
	s.mu.RLock()
	listeners := make([]func(), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn()
	}
}

// authFailure surfaces the collaborator-provided message when present, else
// the generic fallback.
func authFailure(err error, fallback string) *apiclient.AuthError {
	var authErr *apiclient.AuthError
	if errors.As(err, &authErr) {
		return authErr
	}

	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return &apiclient.AuthError{Message: apiErr.Message}
	}
	return &apiclient.AuthError{Message: fallback}
}
