// internal/domain/session/api.go
package session

import (
	"context"
	"net/http"

	"github.com/your-org/storefront/internal/pkg/apiclient"
)

// AuthAPI is the auth collaborator contract used by the store
type AuthAPI interface {
	Login(ctx context.Context, credentials Credentials) (string, *wireUser, error)
	Register(ctx context.Context, data RegisterData) (string, *wireUser, error)
	Me(ctx context.Context) (*wireUser, error)
}

// API implements AuthAPI against the backend auth endpoints
type API struct {
	client *apiclient.Client
}

// NewAPI creates the backend auth client
func NewAPI(client *apiclient.Client) *API {
	return &API{client: client}
}

// authPayload is the login/register response payload: a token plus the
// backend-shaped user.
type authPayload struct {
	Token string   `json:"token"`
	User  wireUser `json:"user"`
}

// Login exchanges credentials for a token and identity
func (a *API) Login(ctx context.Context, credentials Credentials) (string, *wireUser, error) {
	var payload authPayload
	if err := a.client.Do(ctx, http.MethodPost, "auth/login", credentials, &payload); err != nil {
		return "", nil, err
	}
	return payload.Token, &payload.User, nil
}

// Register creates an account and returns a token and identity
func (a *API) Register(ctx context.Context, data RegisterData) (string, *wireUser, error) {
	var payload authPayload
	if err := a.client.Do(ctx, http.MethodPost, "auth/register", data, &payload); err != nil {
		return "", nil, err
	}
	return payload.Token, &payload.User, nil
}

// Me exchanges the persisted token for a fresh identity
func (a *API) Me(ctx context.Context) (*wireUser, error) {
	var user wireUser
	if err := a.client.Do(ctx, http.MethodGet, "auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
