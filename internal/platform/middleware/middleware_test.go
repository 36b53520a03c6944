// Copyright (c) 2026 MovieFlix. All rights reserved.

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/movieflix/api/internal/platform/middleware"
)

type fakeCORSConfig struct {
	development bool
	origins     []string
}

func (f fakeCORSConfig) IsDevelopment() bool { return f.development }
func (f fakeCORSConfig) Origins() []string   { return f.origins }

/*
TestCORS verifies the fixed allow-list policy: no Origin passes, allow-listed
origins get headers, and unknown origins are rejected with 403.
*/
func TestCORS(t *testing.T) {
	cfg := fakeCORSConfig{origins: []string{"http://localhost:8080", "http://localhost:1234"}}

	tests := []struct {
		name        string
		origin      string
		wantStatus  int
		wantAllowed string
	}{
		{"no_origin_passes", "", http.StatusOK, ""},
		{"allowed_origin", "http://localhost:8080", http.StatusOK, "http://localhost:8080"},
		{"disallowed_origin", "http://evil.example", http.StatusForbidden, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := middleware.CORS(cfg)(okHandler(&called))

			request := httptest.NewRequest(http.MethodGet, "/movies", nil)
			if tt.origin != "" {
				request.Header.Set("Origin", tt.origin)
			}
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.wantAllowed, recorder.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.wantStatus == http.StatusOK, called)
		})
	}
}

/*
TestCORS_Preflight verifies that OPTIONS requests from an allowed origin are
answered without reaching the application handler.
*/
func TestCORS_Preflight(t *testing.T) {
	cfg := fakeCORSConfig{origins: []string{"http://localhost:8080"}}

	called := false
	handler := middleware.CORS(cfg)(okHandler(&called))

	request := httptest.NewRequest(http.MethodOptions, "/movies", nil)
	request.Header.Set("Origin", "http://localhost:8080")
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.False(t, called)
}

/*
TestCORS_DevelopmentReflectsAnyOrigin verifies the relaxed development mode.
*/
func TestCORS_DevelopmentReflectsAnyOrigin(t *testing.T) {
	cfg := fakeCORSConfig{development: true}

	called := false
	handler := middleware.CORS(cfg)(okHandler(&called))

	request := httptest.NewRequest(http.MethodGet, "/movies", nil)
	request.Header.Set("Origin", "http://anything.local")
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "http://anything.local", recorder.Header().Get("Access-Control-Allow-Origin"))
	assert.True(t, called)
}
