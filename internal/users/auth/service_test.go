// Copyright (c) 2026 MovieFlix. All rights reserved.

package auth_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/movieflix/api/internal/platform/apperr"
	"github.com/movieflix/api/internal/platform/sec"
	"github.com/movieflix/api/internal/users/auth"
)

// # Test Fakes

type fakeUserRepository struct {
	users       map[string]*auth.User
	findCalls   int
	createCalls int
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[string]*auth.User{}}
}

func (f *fakeUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	f.findCalls++
	user, ok := f.users[username]
	if !ok {
		return nil, apperr.NotFoundMsg(username + " was not found.")
	}
	return user, nil
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User not found with this email")
}

func (f *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	f.createCalls++
	if _, exists := f.users[user.Username]; exists {
		return apperr.Conflict(user.Username + " already exists")
	}
	f.users[user.Username] = user
	return nil
}

func (f *fakeUserRepository) UpdatePassword(_ context.Context, username, newHash string) error {
	user, ok := f.users[username]
	if !ok {
		return apperr.NotFoundMsg(username + " was not found.")
	}
	user.PasswordHash = newHash
	return nil
}

type fakeResetTokenRepository struct {
	tokens map[string]string
}

func newFakeResetTokenRepository() *fakeResetTokenRepository {
	return &fakeResetTokenRepository{tokens: map[string]string{}}
}

func (f *fakeResetTokenRepository) Set(_ context.Context, token, username string, _ time.Duration) error {
	f.tokens[token] = username
	return nil
}

func (f *fakeResetTokenRepository) Get(_ context.Context, token string) (string, error) {
	username, ok := f.tokens[token]
	if !ok {
		return "", apperr.NotFound("Reset token is invalid or expired")
	}
	return username, nil
}

func (f *fakeResetTokenRepository) Delete(_ context.Context, token string) error {
	delete(f.tokens, token)
	return nil
}

type fakeTokenProvider struct{}

func (fakeTokenProvider) GenerateAccessToken(username string, _ time.Duration) (string, error) {
	return "token-for-" + username, nil
}

func newTestService(users *fakeUserRepository, resets *fakeResetTokenRepository) *auth.Service {
	return auth.NewService(users, resets, fakeTokenProvider{}, slog.Default())
}

func registeredUser(t *testing.T, users *fakeUserRepository, username, password string) *auth.User {
	t.Helper()

	hash, err := sec.HashPassword(password)
	require.NoError(t, err)

	user := &auth.User{
		ID:           "01915b3a-8f4e-7cc2-a7b9-1f2e3d4c5b6a",
		Username:     username,
		PasswordHash: hash,
		FirstName:    "Jamie",
		LastName:     "Doe",
		Email:        username + "@movieflix.app",
		Favorites:    []string{},
	}
	users.users[username] = user
	return user
}

// # Registration

/*
TestService_Register verifies new-account persistence and the plaintext-never-stored
guarantee.
*/
func TestService_Register(t *testing.T) {
	users := newFakeUserRepository()
	service := newTestService(users, newFakeResetTokenRepository())

	user, err := service.Register(context.Background(), auth.RegisterInput{
		Username:  "moviefan42",
		Password:  "sup3r-secret",
		FirstName: "Jamie",
		LastName:  "Doe",
		Email:     "jamie@movieflix.app",
	})
	require.NoError(t, err)

	// Stored and returned entity carries a hash, never the plaintext
	assert.NotEqual(t, "sup3r-secret", user.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("sup3r-secret", user.PasswordHash))

	// Fresh accounts start with an empty, non-nil favorites set
	assert.NotNil(t, user.Favorites)
	assert.Empty(t, user.Favorites)

	assert.NotEmpty(t, user.ID)
}

/*
TestService_Register_Conflict verifies that a duplicate username is rejected
with a conflict before any insert.
*/
func TestService_Register_Conflict(t *testing.T) {
	users := newFakeUserRepository()
	registeredUser(t, users, "moviefan42", "original-password")
	service := newTestService(users, newFakeResetTokenRepository())

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "moviefan42",
		Password: "another-password",
	})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, 409, ae.HTTPStatus)
	assert.Zero(t, users.createCalls)
}

// # Login

/*
TestService_Login verifies the exact-match credential property: only the
registered username with its exact password yields a token.
*/
func TestService_Login(t *testing.T) {
	users := newFakeUserRepository()
	registeredUser(t, users, "moviefan42", "sup3r-secret")
	service := newTestService(users, newFakeResetTokenRepository())

	result, err := service.Login(context.Background(), auth.LoginInput{
		Username: "moviefan42",
		Password: "sup3r-secret",
	})
	require.NoError(t, err)

	assert.Equal(t, "token-for-moviefan42", result.AccessToken)
	assert.Equal(t, auth.AccessTokenTTL, result.ExpiresIn)
	assert.Equal(t, "moviefan42", result.User.Username)
}

/*
TestService_Login_Failures verifies that an unknown username and a wrong
password are indistinguishable to the caller.
*/
func TestService_Login_Failures(t *testing.T) {
	users := newFakeUserRepository()
	registeredUser(t, users, "moviefan42", "sup3r-secret")
	service := newTestService(users, newFakeResetTokenRepository())

	_, unknownErr := service.Login(context.Background(), auth.LoginInput{
		Username: "nosuchuser9",
		Password: "sup3r-secret",
	})
	_, wrongPassErr := service.Login(context.Background(), auth.LoginInput{
		Username: "moviefan42",
		Password: "wrong-password",
	})

	require.Error(t, unknownErr)
	require.Error(t, wrongPassErr)

	unknownAE := apperr.As(unknownErr)
	wrongPassAE := apperr.As(wrongPassErr)
	require.NotNil(t, unknownAE)
	require.NotNil(t, wrongPassAE)

	// Identical status and message, no account enumeration
	assert.Equal(t, 401, unknownAE.HTTPStatus)
	assert.Equal(t, 401, wrongPassAE.HTTPStatus)
	assert.Equal(t, unknownAE.Message, wrongPassAE.Message)
}

// # Identity Resolution

/*
TestService_ResolveIdentity verifies the live-account check behind the auth gate.
*/
func TestService_ResolveIdentity(t *testing.T) {
	users := newFakeUserRepository()
	registeredUser(t, users, "moviefan42", "sup3r-secret")
	service := newTestService(users, newFakeResetTokenRepository())

	assert.NoError(t, service.ResolveIdentity(context.Background(), "moviefan42"))
	assert.Error(t, service.ResolveIdentity(context.Background(), "deleteduser1"))
}

// # Password Recovery

/*
TestService_PasswordReset walks the full recovery flow: request, reset,
token consumption.
*/
func TestService_PasswordReset(t *testing.T) {
	users := newFakeUserRepository()
	resets := newFakeResetTokenRepository()
	user := registeredUser(t, users, "moviefan42", "old-password")
	service := newTestService(users, resets)

	token, err := service.RequestPasswordReset(context.Background(), user.Email)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, service.ResetPassword(context.Background(), token, "new-password"))

	// Password rotated, plaintext hashed
	assert.True(t, sec.CheckPasswordHash("new-password", user.PasswordHash))
	assert.False(t, sec.CheckPasswordHash("old-password", user.PasswordHash))

	// The token is single-use
	err = service.ResetPassword(context.Background(), token, "yet-another")
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestService_PasswordReset_UnknownEmail verifies the anti-enumeration contract:
an unknown email yields no token and no error.
*/
func TestService_PasswordReset_UnknownEmail(t *testing.T) {
	resets := newFakeResetTokenRepository()
	service := newTestService(newFakeUserRepository(), resets)

	token, err := service.RequestPasswordReset(context.Background(), "nobody@movieflix.app")
	assert.NoError(t, err)
	assert.Empty(t, token)
	assert.Empty(t, resets.tokens)
}
