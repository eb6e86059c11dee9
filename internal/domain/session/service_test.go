package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/pkg/apiclient"
	"github.com/your-org/storefront/internal/storage"
)

type stubAuthAPI struct {
	loginToken    string
	loginUser     *wireUser
	loginErr      error
	registerToken string
	registerUser  *wireUser
	registerErr   error
	meUser        *wireUser
	meErr         error
	meCalls       int
}

func (a *stubAuthAPI) Login(_ context.Context, _ Credentials) (string, *wireUser, error) {
	return a.loginToken, a.loginUser, a.loginErr
}

func (a *stubAuthAPI) Register(_ context.Context, _ RegisterData) (string, *wireUser, error) {
	return a.registerToken, a.registerUser, a.registerErr
}

func (a *stubAuthAPI) Me(_ context.Context) (*wireUser, error) {
	a.meCalls++
	return a.meUser, a.meErr
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func backendUser() *wireUser {
	return &wireUser{
		ID:        "user-1",
		Email:     "jo@example.com",
		FirstName: "Jo",
		LastName:  "Doe",
		Roles: []roleAssignment{
			{Role: roleRef{Name: RoleCustomer}},
			{Role: roleRef{Name: RoleMerchant}},
		},
	}
}

func TestLoginNormalizesRolesAndPersists(t *testing.T) {
	api := &stubAuthAPI{loginToken: "tok-123", loginUser: backendUser()}
	snapshots := storage.NewMemoryStore()
	store := NewStore(api, snapshots, testLogger())

	user, err := store.Login(context.Background(), Credentials{Email: "jo@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	want := []string{RoleCustomer, RoleMerchant}
	if len(user.Roles) != len(want) || user.Roles[0] != want[0] || user.Roles[1] != want[1] {
		t.Errorf("roles = %v, want %v", user.Roles, want)
	}

	if token, ok := snapshots.Get(storage.KeyToken); !ok || string(token) != "tok-123" {
		t.Errorf("persisted token = %q, want tok-123", token)
	}

	raw, ok := snapshots.Get(storage.KeyUser)
	if !ok {
		t.Fatal("session snapshot missing after login")
	}
	var saved User
	if err := json.Unmarshal(raw, &saved); err != nil {
		t.Fatalf("decoding session snapshot: %v", err)
	}
	if len(saved.Roles) != 2 {
		t.Errorf("snapshot roles = %v, want the flat set", saved.Roles)
	}

	if !store.IsAuthenticated() {
		t.Error("IsAuthenticated = false after login")
	}
	if store.IsLoading() {
		t.Error("IsLoading = true during login, want false")
	}
}

func TestLoginSurfacesBackendMessage(t *testing.T) {
	api := &stubAuthAPI{loginErr: &apiclient.APIError{StatusCode: 422, Message: "Email already registered"}}
	store := NewStore(api, storage.NewMemoryStore(), testLogger())

	_, err := store.Login(context.Background(), Credentials{})
	var authErr *apiclient.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("error type = %T, want *apiclient.AuthError", err)
	}
	if authErr.Message != "Email already registered" {
		t.Errorf("message = %q, want the backend-provided message", authErr.Message)
	}
}

func TestLoginFallsBackToGenericMessage(t *testing.T) {
	api := &stubAuthAPI{loginErr: errors.New("dial tcp: connection refused")}
	store := NewStore(api, storage.NewMemoryStore(), testLogger())

	_, err := store.Login(context.Background(), Credentials{})
	var authErr *apiclient.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("error type = %T, want *apiclient.AuthError", err)
	}
	if authErr.Message != "Login failed" {
		t.Errorf("message = %q, want the generic fallback", authErr.Message)
	}
}

func TestLoginRejectsEmptyRoleSet(t *testing.T) {
	user := backendUser()
	user.Roles = nil
	api := &stubAuthAPI{loginToken: "tok", loginUser: user}
	store := NewStore(api, storage.NewMemoryStore(), testLogger())

	if _, err := store.Login(context.Background(), Credentials{}); err == nil {
		t.Fatal("expected a role-less identity to be rejected")
	}
	if store.IsAuthenticated() {
		t.Error("session installed despite empty role set")
	}
}

func TestLogoutClearsAllSnapshots(t *testing.T) {
	api := &stubAuthAPI{loginToken: "tok", loginUser: backendUser()}
	snapshots := storage.NewMemoryStore()
	store := NewStore(api, snapshots, testLogger())

	if _, err := store.Login(context.Background(), Credentials{}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	snapshots.Set(storage.KeyCart, []byte(`[{"quantity":1}]`))

	store.Logout()

	for _, key := range []string{storage.KeyToken, storage.KeyUser, storage.KeyCart} {
		if _, ok := snapshots.Get(key); ok {
			t.Errorf("snapshot %q still present after logout", key)
		}
	}
	if store.IsAuthenticated() {
		t.Error("IsAuthenticated = true after logout")
	}
	if store.HasRole(RoleCustomer) {
		t.Error("HasRole = true after logout")
	}
}

func TestHasRole(t *testing.T) {
	api := &stubAuthAPI{loginToken: "tok", loginUser: backendUser()}
	store := NewStore(api, storage.NewMemoryStore(), testLogger())

	if store.HasRole(RoleCustomer) {
		t.Error("HasRole = true while unauthenticated")
	}

	if _, err := store.Login(context.Background(), Credentials{}); err != nil {
		t.Fatalf("Login: %v", err)
	}

	if !store.HasRole(RoleMerchant) {
		t.Error("HasRole(MERCHANT) = false, want true")
	}
	if store.HasRole(RoleAdmin) {
		t.Error("HasRole(ADMIN) = true, want false")
	}
}

func TestStartupUsesPersistedSnapshotWithoutLoading(t *testing.T) {
	snapshots := storage.NewMemoryStore()
	raw, _ := json.Marshal(&User{ID: "user-1", Email: "jo@example.com", Roles: []string{RoleCustomer}})
	snapshots.Set(storage.KeyUser, raw)
	snapshots.Set(storage.KeyToken, []byte("tok"))

	api := &stubAuthAPI{}
	store := NewStore(api, snapshots, testLogger())

	if store.IsLoading() {
		t.Error("IsLoading = true despite a persisted snapshot")
	}
	if !store.IsAuthenticated() {
		t.Error("IsAuthenticated = false despite a persisted snapshot")
	}

	store.Rehydrate(context.Background())
	if api.meCalls != 0 {
		t.Errorf("identity fetch issued despite a persisted snapshot")
	}
}

func TestRehydrateFetchesIdentityForBareToken(t *testing.T) {
	snapshots := storage.NewMemoryStore()
	snapshots.Set(storage.KeyToken, []byte("opaque-token"))

	api := &stubAuthAPI{meUser: backendUser()}
	store := NewStore(api, snapshots, testLogger())

	if !store.IsLoading() {
		t.Error("IsLoading = false for a bare persisted token")
	}

	store.Rehydrate(context.Background())

	if store.IsLoading() {
		t.Error("IsLoading = true after rehydration")
	}
	if !store.IsAuthenticated() {
		t.Error("IsAuthenticated = false after successful rehydration")
	}
	if _, ok := snapshots.Get(storage.KeyUser); !ok {
		t.Error("rehydrated identity not persisted")
	}
}

func TestRehydrateFailureTreatedAsLogout(t *testing.T) {
	snapshots := storage.NewMemoryStore()
	snapshots.Set(storage.KeyToken, []byte("stale-token"))

	api := &stubAuthAPI{meErr: &apiclient.AuthError{Message: "Invalid or expired token"}}
	store := NewStore(api, snapshots, testLogger())

	store.Rehydrate(context.Background())

	if store.IsAuthenticated() {
		t.Error("half-valid session left after failed rehydration")
	}
	if _, ok := snapshots.Get(storage.KeyToken); ok {
		t.Error("token still persisted after failed rehydration")
	}
}

func TestSubscribeNotifiesOnStateChange(t *testing.T) {
	api := &stubAuthAPI{loginToken: "tok", loginUser: backendUser()}
	store := NewStore(api, storage.NewMemoryStore(), testLogger())

	notified := 0
	unsubscribe := store.Subscribe(func() { notified++ })

	if _, err := store.Login(context.Background(), Credentials{}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if notified == 0 {
		t.Error("listener not notified on login")
	}

	unsubscribe()
	before := notified
	store.Logout()
	if notified != before {
		t.Error("listener notified after unsubscribe")
	}
}
