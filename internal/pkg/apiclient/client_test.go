package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

type staticToken string

func (t staticToken) Token() string { return string(t) }

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func newTestClient(handler http.Handler, token string) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := New(server.URL+"/api/v1", 5*time.Second, staticToken(token), testLogger())
	return client, server
}

func TestDoAttachesBearerToken(t *testing.T) {
	var gotAuth string
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"data":{"ok":true}}`))
	}), "tok-123")
	defer server.Close()

	var out map[string]any
	if err := client.Do(context.Background(), http.MethodGet, "auth/me", nil, &out); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want the persisted bearer token", gotAuth)
	}
}

func TestDoOmitsAuthorizationWhenLoggedOut(t *testing.T) {
	var gotAuth string
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}), "")
	defer server.Close()

	if err := client.Do(context.Background(), http.MethodGet, "products", nil, nil); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want none without a token", gotAuth)
	}
}

func TestDoDecodesEnvelopedAndBarePayloads(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/login":
			w.Write([]byte(`{"success":true,"message":"ok","data":{"token":"tok"}}`))
		case "/api/v1/auth/me":
			// Some endpoints answer with the payload unwrapped
			w.Write([]byte(`{"token":"bare"}`))
		}
	}), "")
	defer server.Close()

	var enveloped struct {
		Token string `json:"token"`
	}
	if err := client.Do(context.Background(), http.MethodPost, "auth/login", nil, &enveloped); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if enveloped.Token != "tok" {
		t.Errorf("enveloped token = %q, want tok", enveloped.Token)
	}

	var bare struct {
		Token string `json:"token"`
	}
	if err := client.Do(context.Background(), http.MethodGet, "auth/me", nil, &bare); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if bare.Token != "bare" {
		t.Errorf("bare token = %q, want bare", bare.Token)
	}
}

func TestListDecodesNestedEnvelope(t *testing.T) {
	var gotQuery url.Values
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"data":{"data":[{"id":"1"},{"id":"2"}],"meta":{"page":2,"limit":10,"total":23,"totalPages":3}}}`))
	}), "")
	defer server.Close()

	query := url.Values{"page": {"2"}, "limit": {"10"}, "search": {"phone"}}
	var records []struct {
		ID string `json:"id"`
	}
	meta, err := client.List(context.Background(), "products", query, &records)
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if gotQuery.Get("search") != "phone" || gotQuery.Get("page") != "2" {
		t.Errorf("query = %v, want page/limit/search forwarded", gotQuery)
	}
	if len(records) != 2 {
		t.Errorf("records = %d, want 2", len(records))
	}
	if meta.TotalPages != 3 || meta.Total != 23 {
		t.Errorf("meta = %+v, want the backend pagination metadata", meta)
	}
}

func TestListComputesTotalPagesWhenAbsent(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"data":[],"meta":{"page":1,"limit":10,"total":21}}}`))
	}), "")
	defer server.Close()

	var records []struct{}
	meta, err := client.List(context.Background(), "products", url.Values{}, &records)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if meta.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want ceil(21/10) = 3", meta.TotalPages)
	}
}

func TestStatusErrorMapping(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/login":
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"Invalid credentials"}`))
		case "/api/v1/products/missing":
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"Product not found"}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`oops`))
		}
	}), "")
	defer server.Close()

	err := client.Do(context.Background(), http.MethodPost, "auth/login", nil, nil)
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("401 error = %T, want *AuthError", err)
	}
	if authErr.Message != "Invalid credentials" {
		t.Errorf("auth message = %q, want the backend-provided message", authErr.Message)
	}

	err = client.Get(context.Background(), "products", "missing", nil)
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("404 error = %T, want *NotFoundError", err)
	}

	err = client.Do(context.Background(), http.MethodGet, "orders", nil, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("500 error = %T, want *APIError", err)
	}
	if apiErr.Message != "Request failed with status 500" {
		t.Errorf("fallback message = %q, want the generic string", apiErr.Message)
	}
}
