// Copyright (c) 2026 MovieFlix. All rights reserved.

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/movieflix/api/internal/platform/sec"
)

func newTestTokenService(t *testing.T) *sec.TokenService {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	return sec.NewTokenServiceFromKey(key, "movieflix.test")
}

/*
TestTokenService_RoundTrip verifies that a generated token verifies and
carries the expected claims.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := newTestTokenService(t)

	token, err := service.GenerateAccessToken("moviefan42", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, "moviefan42", claims.Username)
	assert.Equal(t, "moviefan42", claims.Subject)
	assert.Equal(t, "movieflix.test", claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

/*
TestTokenService_Expired verifies that an expired token is rejected.
*/
func TestTokenService_Expired(t *testing.T) {
	service := newTestTokenService(t)

	token, err := service.GenerateAccessToken("moviefan42", -time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestTokenService_WrongKey verifies that a token signed by a different key
fails signature verification.
*/
func TestTokenService_WrongKey(t *testing.T) {
	signer := newTestTokenService(t)
	verifier := newTestTokenService(t)

	token, err := signer.GenerateAccessToken("moviefan42", time.Hour)
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestTokenService_Garbage verifies that malformed strings are rejected.
*/
func TestTokenService_Garbage(t *testing.T) {
	service := newTestTokenService(t)

	for _, tokenString := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := service.VerifyToken(tokenString)
		assert.Error(t, err)
	}
}
