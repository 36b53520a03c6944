// Copyright (c) 2026 MovieFlix. All rights reserved.

package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/movieflix/api/internal/platform/respond"
	"github.com/movieflix/api/internal/users/auth"
)

func decodeErrorEnvelope(t *testing.T, recorder *httptest.ResponseRecorder) respond.ErrorEnvelope {
	t.Helper()

	var envelope respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return envelope
}

/*
TestHandler_Register_ValidationBeforeStorage verifies that a request failing
field validation is rejected without a single repository call.
*/
func TestHandler_Register_ValidationBeforeStorage(t *testing.T) {
	users := newFakeUserRepository()
	handler := auth.NewHandler(newTestService(users, newFakeResetTokenRepository()))

	// Username too short AND not alphanumeric, email malformed
	body := `{"username":"a b","password":"secret","first_name":"Jamie","last_name":"Doe","email":"nope"}`
	request := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	recorder := httptest.NewRecorder()

	handler.Register(recorder, request)

	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	assert.Zero(t, users.findCalls)
	assert.Zero(t, users.createCalls)

	// All violations reported together
	envelope := decodeErrorEnvelope(t, recorder)
	assert.Equal(t, "VALIDATION_ERROR", envelope.Code)
	assert.GreaterOrEqual(t, len(envelope.Details), 3)
}

/*
TestHandler_Register_Success verifies the created profile serialization,
including that the password hash never appears on the wire.
*/
func TestHandler_Register_Success(t *testing.T) {
	users := newFakeUserRepository()
	handler := auth.NewHandler(newTestService(users, newFakeResetTokenRepository()))

	body := `{"username":"moviefan42","password":"sup3r-secret","first_name":"Jamie","last_name":"Doe","email":"jamie@movieflix.app","birth":"1990-05-17"}`
	request := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	recorder := httptest.NewRecorder()

	handler.Register(recorder, request)

	require.Equal(t, http.StatusCreated, recorder.Code)

	payload := recorder.Body.String()
	assert.Contains(t, payload, `"username":"moviefan42"`)
	assert.Contains(t, payload, `"favorites":[]`)
	assert.NotContains(t, payload, "sup3r-secret")
	assert.NotContains(t, payload, "passwordhash")
}

/*
TestHandler_Login_InvalidJSON verifies malformed payload handling.
*/
func TestHandler_Login_InvalidJSON(t *testing.T) {
	users := newFakeUserRepository()
	handler := auth.NewHandler(newTestService(users, newFakeResetTokenRepository()))

	request := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("{not json"))
	recorder := httptest.NewRecorder()

	handler.Login(recorder, request)

	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	assert.Zero(t, users.findCalls)
}

/*
TestHandler_Login_Unauthorized verifies that bad credentials surface as 401
with the generic message.
*/
func TestHandler_Login_Unauthorized(t *testing.T) {
	users := newFakeUserRepository()
	registeredUser(t, users, "moviefan42", "sup3r-secret")
	handler := auth.NewHandler(newTestService(users, newFakeResetTokenRepository()))

	body := `{"username":"moviefan42","password":"wrong"}`
	request := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	recorder := httptest.NewRecorder()

	handler.Login(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	envelope := decodeErrorEnvelope(t, recorder)
	assert.Equal(t, "Invalid login credentials", envelope.Error)
}

/*
TestHandler_Login_Success verifies the token envelope shape.
*/
func TestHandler_Login_Success(t *testing.T) {
	users := newFakeUserRepository()
	registeredUser(t, users, "moviefan42", "sup3r-secret")
	handler := auth.NewHandler(newTestService(users, newFakeResetTokenRepository()))

	body := `{"username":"moviefan42","password":"sup3r-secret"}`
	request := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	recorder := httptest.NewRecorder()

	handler.Login(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	payload := recorder.Body.String()
	assert.Contains(t, payload, `"token":"token-for-moviefan42"`)
	assert.Contains(t, payload, `"token_type":"Bearer"`)
	assert.Contains(t, payload, `"username":"moviefan42"`)
	assert.NotContains(t, payload, "sup3r-secret")
}
