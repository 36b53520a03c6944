// Copyright (c) 2026 MovieFlix. All rights reserved.

package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/movieflix/api/internal/platform/apperr"
	"github.com/movieflix/api/internal/platform/ctxutil"
	"github.com/movieflix/api/internal/platform/middleware"
	"github.com/movieflix/api/internal/platform/sec"
)

// # Test Fakes

type fakeVerifier struct {
	claims *sec.AuthClaims
	err    error
}

func (f fakeVerifier) VerifyToken(string) (*sec.AuthClaims, error) {
	return f.claims, f.err
}

type fakeResolver struct {
	live map[string]bool
}

func (f fakeResolver) ResolveIdentity(_ context.Context, username string) error {
	if f.live[username] {
		return nil
	}
	return apperr.NotFoundMsg(username + " was not found.")
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		*called = true
		writer.WriteHeader(http.StatusOK)
	})
}

// # Authenticate

/*
TestAuthenticate covers the auth gate: anonymous pass-through, format errors,
invalid tokens, and tokens whose subject no longer exists.
*/
func TestAuthenticate(t *testing.T) {
	validClaims := &sec.AuthClaims{Username: "moviefan42"}

	tests := []struct {
		name       string
		header     string
		verifier   fakeVerifier
		live       map[string]bool
		wantStatus int
		wantNext   bool
	}{
		{
			name:       "no_header_passes_anonymous",
			header:     "",
			verifier:   fakeVerifier{},
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:       "malformed_header",
			header:     "Token abc",
			verifier:   fakeVerifier{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing_token_part",
			header:     "Bearer",
			verifier:   fakeVerifier{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid_token",
			header:     "Bearer bad-token",
			verifier:   fakeVerifier{err: errors.New("expired")},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "deleted_account",
			header:     "Bearer good-token",
			verifier:   fakeVerifier{claims: validClaims},
			live:       map[string]bool{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid_token_live_account",
			header:     "Bearer good-token",
			verifier:   fakeVerifier{claims: validClaims},
			live:       map[string]bool{"moviefan42": true},
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			gate := middleware.Authenticate(tt.verifier, fakeResolver{live: tt.live})(okHandler(&called))

			request := httptest.NewRequest(http.MethodGet, "/movies", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()

			gate.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.wantNext, called)
		})
	}
}

/*
TestAuthenticate_InjectsClaims verifies that downstream handlers see the
authenticated identity.
*/
func TestAuthenticate_InjectsClaims(t *testing.T) {
	var seen *sec.AuthClaims
	next := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = middleware.GetUser(request.Context())
	})

	gate := middleware.Authenticate(
		fakeVerifier{claims: &sec.AuthClaims{Username: "moviefan42"}},
		fakeResolver{live: map[string]bool{"moviefan42": true}},
	)(next)

	request := httptest.NewRequest(http.MethodGet, "/movies", nil)
	request.Header.Set("Authorization", "Bearer good-token")
	gate.ServeHTTP(httptest.NewRecorder(), request)

	assert.NotNil(t, seen)
	assert.Equal(t, "moviefan42", seen.Username)
}

// # Authorization Guards

func authedRequest(t *testing.T, username string, params map[string]string) *http.Request {
	t.Helper()

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := request.Context()

	if username != "" {
		ctx = ctxutil.WithAuthUser(ctx, &sec.AuthClaims{Username: username})
	}

	routeContext := chi.NewRouteContext()
	for key, value := range params {
		routeContext.URLParams.Add(key, value)
	}
	ctx = context.WithValue(ctx, chi.RouteCtxKey, routeContext)

	return request.WithContext(ctx)
}

/*
TestRequireAuth verifies that anonymous requests are blocked with 401.
*/
func TestRequireAuth(t *testing.T) {
	called := false
	guard := middleware.RequireAuth(okHandler(&called))

	recorder := httptest.NewRecorder()
	guard.ServeHTTP(recorder, authedRequest(t, "", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.False(t, called)

	recorder = httptest.NewRecorder()
	guard.ServeHTTP(recorder, authedRequest(t, "moviefan42", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, called)
}

/*
TestRequireSelf verifies the ownership comparison against the URL parameter.
*/
func TestRequireSelf(t *testing.T) {
	tests := []struct {
		name       string
		subject    string
		param      string
		wantStatus int
	}{
		{"owner_passes", "moviefan42", "moviefan42", http.StatusOK},
		{"other_user_forbidden", "moviefan42", "cinephile99", http.StatusForbidden},
		{"anonymous_unauthorized", "", "moviefan42", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			guard := middleware.RequireSelf("username")(okHandler(&called))

			recorder := httptest.NewRecorder()
			guard.ServeHTTP(recorder, authedRequest(t, tt.subject, map[string]string{"username": tt.param}))

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, called)
		})
	}
}

/*
TestRequireAdmin verifies the privileged-account comparison.
*/
func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name       string
		subject    string
		wantStatus int
	}{
		{"admin_passes", "admin", http.StatusOK},
		{"regular_user_forbidden", "moviefan42", http.StatusForbidden},
		{"anonymous_unauthorized", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			guard := middleware.RequireAdmin("admin")(okHandler(&called))

			recorder := httptest.NewRecorder()
			guard.ServeHTTP(recorder, authedRequest(t, tt.subject, nil))

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, called)
		})
	}
}
