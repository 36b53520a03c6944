// Copyright (c) 2026 MovieFlix. All rights reserved.

// # Architecture
//
// Repositories in this file are strictly separated from domain logic. They
// implement domain-defined interfaces (e.g., [UserRepository]) using the
// [pgxpool.Pool] connection manager.
//
// # err Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to domain-friendly
// [apperr.AppError] types to avoid leaking storage implementation details.

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/movieflix/api/internal/platform/apperr"
	"github.com/movieflix/api/internal/platform/dberr"
)

// # User Repository

// selectUserColumns is shared by every account lookup so that all call sites
// hydrate the same projection, favorites included.
//
// The LEFT JOIN + FILTER pair guarantees an empty array — never NULL — for
// accounts with no favorites.
const selectUserColumns = `
	SELECT
		a.id, a.username, a.passwordhash, a.firstname, a.lastname,
		a.email, a.birthdate, a.createdat, a.updatedat,
		COALESCE(array_agg(f.movieid ORDER BY f.movieid) FILTER (WHERE f.movieid IS NOT NULL), '{}') AS favorites
	FROM users.account a
	LEFT JOIN users.favorite f ON f.username = a.username`

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.BirthDate,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.Favorites,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

/*
Create persists a new user record into the users.account table.

Description: Deep-persists account metadata, ensuring timestamps are initialized
if not provided. A concurrent duplicate username surfaces as apperr.Conflict via
the unique constraint.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - err: Database constraint violations or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO users.account (
			id, username, passwordhash, firstname, lastname, email, birthdate, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Email,
		user.BirthDate,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict(user.Username + " already exists")
		}
		return fmt.Errorf("postgres_user_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByUsername retrieves a user record by their unique username.

Description: Standard lookup by username for authentication and profile
resolution. Favorites are aggregated into the entity in the same round trip.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *User: Hydrated account entity
  - err: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	const query = selectUserColumns + `
		WHERE a.username = $1
		GROUP BY a.id, a.username`

	user, err := scanUser(repository.pool.QueryRow(context, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFoundMsg(username + " was not found.")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_username_failed: %w", err)
	}

	return user, nil
}

/*
FindByEmail retrieves a user record by their email address.

Description: Used by the password recovery flow to resolve the owning account.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity
  - err: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	const query = selectUserColumns + `
		WHERE a.email = $1
		GROUP BY a.id, a.username`

	user, err := scanUser(repository.pool.QueryRow(context, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User not found with this email")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_email_failed: %w", err)
	}

	return user, nil
}

/*
UpdatePassword updates only the password hash for a specific user.

Parameters:
  - context: context.Context
  - username: string
  - newHash: string

Returns:
  - err: Execution errors
*/
func (repository *PostgresUserRepository) UpdatePassword(context context.Context, username, newHash string) error {
	const query = `
		UPDATE users.account
		SET passwordhash = $2, updatedat = $3
		WHERE username = $1`

	tag, err := repository.pool.Exec(context, query, username, newHash, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_update_password_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFoundMsg(username + " was not found.")
	}

	return nil
}
