// Copyright (c) 2026 MovieFlix. All rights reserved.

/*
Package account handles user profile management and the personal favorites set.

It provides functionalities for users to view and update their private identity
data, and to add or remove movies from their favorites collection.

# Architecture

  - Domain: This package depends on the auth package for the User entity.
  - Favorites: Membership changes are single atomic statements against the
    users.favorite table; the account is never read, mutated, and rewritten.
  - Security: Ownership checks happen in the routing pipeline before any
    handler in this package runs.
*/
package account

import (
	"context"

	"github.com/movieflix/api/internal/users/auth"
)

// # Repository Contracts

// AccountRepository defines the persistence contract for user accounts.
type AccountRepository interface {
	/*
		FindByUsername retrieves a user record by their unique username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Loaded account entity with aggregated favorites
		  - err: apperr.NotFound or storage failures
	*/
	FindByUsername(context context.Context, username string) (*auth.User, error)

	/*
		List retrieves every registered account, favorites included.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*User: All accounts ordered by username
		  - err: Storage failures
	*/
	List(context context.Context) ([]*auth.User, error)

	/*
		Update replaces every mutable field of an account in one statement.

		Description: The username itself may change; the ON UPDATE CASCADE
		on users.favorite carries the favorites set across a rename.

		Parameters:
		  - context: context.Context
		  - currentUsername: string (Lookup key before any rename)
		  - user: *User (Hydrated entity with changes, PasswordHash included)

		Returns:
		  - err: apperr.NotFound if the account does not exist,
		    apperr.Conflict if the new username is taken
	*/
	Update(context context.Context, currentUsername string, user *auth.User) error

	/*
		Delete permanently removes an account and, via cascade, its favorites.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - err: apperr.NotFound if the account does not exist
	*/
	Delete(context context.Context, username string) error

	/*
		AddFavorite inserts a (username, movieID) membership row.

		Description: Idempotent. Inserting an already-present pair is a no-op.

		Parameters:
		  - context: context.Context
		  - username: string
		  - movieID: string (UUID)

		Returns:
		  - err: apperr.NotFound if the account does not exist
	*/
	AddFavorite(context context.Context, username, movieID string) error

	/*
		RemoveFavorite deletes a (username, movieID) membership row.

		Description: Idempotent. Removing an absent pair is a no-op.

		Parameters:
		  - context: context.Context
		  - username: string
		  - movieID: string (UUID)

		Returns:
		  - err: Execution failures
	*/
	RemoveFavorite(context context.Context, username, movieID string) error
}
