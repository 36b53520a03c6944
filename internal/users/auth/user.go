// Copyright (c) 2026 MovieFlix. All rights reserved.

/*
Package auth implements the user identity layer.

It defines the core domain entity (User) and logic for authentication,
registration, and credential recovery.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import "time"

// # Domain Entities

// User represents a registered member of the MovieFlix platform.
//
// The wire format mirrors the public API contract: snake_case profile fields,
// a "birth" date, and a "favorites" array of movie identifiers. The password
// hash never leaves the server.
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"` // Explicitly omitted from JSON for security.
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Email        string     `json:"email"`
	BirthDate    *time.Time `json:"birth,omitempty"`
	Favorites    []string   `json:"favorites"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// HasFavorite reports whether the given movie id is in the favorites set.
func (u *User) HasFavorite(movieID string) bool {
	for _, id := range u.Favorites {
		if id == movieID {
			return true
		}
	}
	return false
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername  = "username"
	FieldPassword  = "password"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldEmail     = "email"
	FieldBirth     = "birth"
	FieldToken     = "token"
	FieldTokenType = "token_type"
	FieldExpiresIn = "expires_in"
	FieldMessage   = "message"
	FieldUser      = "user"
)
