// internal/pkg/apiclient/errors.go
package apiclient

import "fmt"

// AuthError indicates invalid credentials, a registration conflict, or an
// expired/invalid token. Callers treat it as "logged out".
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// NotFoundError indicates a requested single record does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// APIError is any other backend failure (network, validation, server error).
// Message carries the backend-provided message when present, else a generic
// fallback string.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}
