// Copyright (c) 2026 MovieFlix. All rights reserved.

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration a JWT access token remains valid.
	// Four hours: long enough for a browsing session, short enough to
	// bound the damage of a leaked token. There is no refresh mechanism;
	// clients log in again when the token expires.
	AccessTokenTTL = 4 * time.Hour

	// ResetTokenTTL is the duration a password reset token remains valid.
	// Short-lived (1 hour) for security.
	ResetTokenTTL = 1 * time.Hour

	// ResetTokenLength is the byte length of the random password reset token.
	ResetTokenLength = 32

	// UsernameMinLen is the minimum username length accepted at registration.
	UsernameMinLen = 5
)
