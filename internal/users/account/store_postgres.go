// Copyright (c) 2026 MovieFlix. All rights reserved.

package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/movieflix/api/internal/platform/apperr"
	"github.com/movieflix/api/internal/platform/dberr"
	"github.com/movieflix/api/internal/users/auth"
)

// selectAccountColumns mirrors the auth package projection so both packages
// hydrate identical User entities.
const selectAccountColumns = `
	SELECT
		a.id, a.username, a.passwordhash, a.firstname, a.lastname,
		a.email, a.birthdate, a.createdat, a.updatedat,
		COALESCE(array_agg(f.movieid ORDER BY f.movieid) FILTER (WHERE f.movieid IS NOT NULL), '{}') AS favorites
	FROM users.account a
	LEFT JOIN users.favorite f ON f.username = a.username`

// PostgresAccountRepository implements the AccountRepository interface using pgx.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new PostgreSQL implementation of AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

func scanAccount(row pgx.Row) (*auth.User, error) {
	user := &auth.User{}
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
FindByUsername retrieves a user record by their unique username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *auth.User: Hydrated account entity with aggregated favorites
  - err: apperr.NotFound or database errors
*/
func (repository *PostgresAccountRepository) FindByUsername(context context.Context, username string) (*auth.User, error) {
	const query = selectAccountColumns + `
		WHERE a.username = $1
		GROUP BY a.id, a.username`

	user, err := scanAccount(repository.pool.QueryRow(context, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFoundMsg(username + " was not found.")
		}
		return nil, fmt.Errorf("postgres_account_repo_find_failed: %w", err)
	}

	return user, nil
}

/*
List retrieves every registered account ordered by username.

Parameters:
  - context: context.Context

Returns:
  - []*auth.User: All accounts with aggregated favorites
  - err: Database errors
*/
func (repository *PostgresAccountRepository) List(context context.Context) ([]*auth.User, error) {
	const query = selectAccountColumns + `
		GROUP BY a.id, a.username
		ORDER BY a.username`

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_account_repo_list_failed: %w", err)
	}
	defer rows.Close()

	users := []*auth.User{}
	for rows.Next() {
		user, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_account_repo_list_scan_failed: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_account_repo_list_rows_failed: %w", err)
	}

	return users, nil
}

/*
Update replaces every mutable field of an account in one statement.

Description: Single atomic UPDATE keyed on the current username. The FK on
users.favorite declares ON UPDATE CASCADE, so a rename drags the favorites
rows along inside the same statement.

Parameters:
  - context: context.Context
  - currentUsername: string
  - user: *auth.User (New field values, PasswordHash already hashed)

Returns:
  - err: apperr.NotFound, apperr.Conflict on a taken username, or execution errors
*/
func (repository *PostgresAccountRepository) Update(context context.Context, currentUsername string, user *auth.User) error {
	const query = `
		UPDATE users.account
		SET username = $2, passwordhash = $3, firstname = $4, lastname = $5,
		    email = $6, birthdate = $7, updatedat = $8
		WHERE username = $1`

	user.UpdatedAt = time.Now()
	tag, err := repository.pool.Exec(context, query,
		currentUsername,
		user.Username,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Email,
		user.BirthDate,
		user.UpdatedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict(user.Username + " already exists")
		}
		return fmt.Errorf("postgres_account_repo_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFoundMsg(currentUsername + " was not found.")
	}

	return nil
}

/*
Delete permanently removes a user account.

Description: The FK on users.favorite has ON DELETE CASCADE, so the
favorites set disappears in the same statement.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - err: apperr.NotFound or execution errors
*/
func (repository *PostgresAccountRepository) Delete(context context.Context, username string) error {
	const query = "DELETE FROM users.account WHERE username = $1"

	tag, err := repository.pool.Exec(context, query, username)
	if err != nil {
		return fmt.Errorf("postgres_account_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFoundMsg(username + " was not found.")
	}

	return nil
}

/*
AddFavorite inserts a favorite membership row.

Description: ON CONFLICT DO NOTHING makes the insert idempotent. The primary
key on (username, movieid) enforces set semantics at the storage layer, so
concurrent duplicate adds converge on one row.

Parameters:
  - context: context.Context
  - username: string
  - movieID: string (UUID)

Returns:
  - err: apperr.NotFound when the account FK is unsatisfied
*/
func (repository *PostgresAccountRepository) AddFavorite(context context.Context, username, movieID string) error {
	const query = `
		INSERT INTO users.favorite (username, movieid, addedat)
		VALUES ($1, $2, $3)
		ON CONFLICT (username, movieid) DO NOTHING`

	_, err := repository.pool.Exec(context, query, username, movieID, time.Now())
	if err != nil {
		if dberr.IsForeignKeyViolation(err) {
			return apperr.NotFoundMsg(username + " was not found.")
		}
		return fmt.Errorf("postgres_account_repo_add_favorite_failed: %w", err)
	}

	return nil
}

/*
RemoveFavorite deletes a favorite membership row.

Description: Deleting an absent pair affects zero rows and is not an error.

Parameters:
  - context: context.Context
  - username: string
  - movieID: string (UUID)

Returns:
  - err: Execution errors
*/
func (repository *PostgresAccountRepository) RemoveFavorite(context context.Context, username, movieID string) error {
	const query = "DELETE FROM users.favorite WHERE username = $1 AND movieid = $2"

	_, err := repository.pool.Exec(context, query, username, movieID)
	if err != nil {
		return fmt.Errorf("postgres_account_repo_remove_favorite_failed: %w", err)
	}

	return nil
}
