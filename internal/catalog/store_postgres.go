// Copyright (c) 2026 MovieFlix. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/movieflix/api/internal/platform/apperr"
)

// PostgresMovieRepository implements the MovieRepository interface using pgx.
//
// Director and cast data live as JSONB columns on core.movie. The
// people-centric views unnest those columns with DISTINCT ON so that a person
// appearing in many movies still projects as one record.
type PostgresMovieRepository struct {
	pool *pgxpool.Pool
}

// NewMovieRepository creates a new PostgreSQL implementation of MovieRepository.
func NewMovieRepository(pool *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{pool: pool}
}

const selectMovieColumns = `
	SELECT id, title, description, genrename, genredescription,
	       director, actors, imagepath, featured
	FROM core.movie`

func scanMovie(row pgx.Row) (*Movie, error) {
	movie := &Movie{}
	var directorJSON, actorsJSON []byte

	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.Genre.Name,
		&movie.Genre.Description,
		&directorJSON,
		&actorsJSON,
		&movie.ImagePath,
		&movie.Featured,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(directorJSON, &movie.Director); err != nil {
		return nil, fmt.Errorf("postgres_movie_repo_director_decode_failed: %w", err)
	}
	if err := json.Unmarshal(actorsJSON, &movie.Actors); err != nil {
		return nil, fmt.Errorf("postgres_movie_repo_actors_decode_failed: %w", err)
	}

	return movie, nil
}

/*
ListMovies retrieves the full catalog ordered by title.

Parameters:
  - context: context.Context

Returns:
  - []*Movie: All catalog entries
  - err: Database errors
*/
func (repository *PostgresMovieRepository) ListMovies(context context.Context) ([]*Movie, error) {
	const query = selectMovieColumns + `
		ORDER BY title`

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_movie_repo_list_failed: %w", err)
	}
	defer rows.Close()

	movies := []*Movie{}
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_movie_repo_list_scan_failed: %w", err)
		}
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_movie_repo_list_rows_failed: %w", err)
	}

	return movies, nil
}

/*
FindMovieByTitle retrieves one movie by its exact title.

Parameters:
  - context: context.Context
  - title: string

Returns:
  - *Movie: The matching entry
  - err: apperr.NotFound or database errors
*/
func (repository *PostgresMovieRepository) FindMovieByTitle(context context.Context, title string) (*Movie, error) {
	const query = selectMovieColumns + `
		WHERE title = $1`

	movie, err := scanMovie(repository.pool.QueryRow(context, query, title))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Movie not found")
		}
		return nil, fmt.Errorf("postgres_movie_repo_find_by_title_failed: %w", err)
	}

	return movie, nil
}

/*
ListGenres retrieves the distinct genres present in the catalog.

Parameters:
  - context: context.Context

Returns:
  - []Genre: Distinct name/description pairs ordered by name
  - err: Database errors
*/
func (repository *PostgresMovieRepository) ListGenres(context context.Context) ([]Genre, error) {
	const query = `
		SELECT DISTINCT genrename, genredescription
		FROM core.movie
		ORDER BY genrename`

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_movie_repo_list_genres_failed: %w", err)
	}
	defer rows.Close()

	genres := []Genre{}
	for rows.Next() {
		var genre Genre
		if err := rows.Scan(&genre.Name, &genre.Description); err != nil {
			return nil, fmt.Errorf("postgres_movie_repo_genre_scan_failed: %w", err)
		}
		genres = append(genres, genre)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_movie_repo_list_genres_rows_failed: %w", err)
	}

	return genres, nil
}

/*
FindGenreByName retrieves one genre by its exact name.

Parameters:
  - context: context.Context
  - name: string

Returns:
  - *Genre: The matching genre
  - err: apperr.NotFound or database errors
*/
func (repository *PostgresMovieRepository) FindGenreByName(context context.Context, name string) (*Genre, error) {
	const query = `
		SELECT genrename, genredescription
		FROM core.movie
		WHERE genrename = $1
		LIMIT 1`

	genre := &Genre{}
	err := repository.pool.QueryRow(context, query, name).Scan(&genre.Name, &genre.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Genre not found")
		}
		return nil, fmt.Errorf("postgres_movie_repo_find_genre_failed: %w", err)
	}

	return genre, nil
}

// scanPerson decodes a single JSONB person payload.
func scanPerson(row pgx.Row) (*Person, error) {
	var payload []byte
	if err := row.Scan(&payload); err != nil {
		return nil, err
	}

	person := &Person{}
	if err := json.Unmarshal(payload, person); err != nil {
		return nil, fmt.Errorf("postgres_movie_repo_person_decode_failed: %w", err)
	}

	return person, nil
}

func (repository *PostgresMovieRepository) listPeople(context context.Context, query, label string) ([]Person, error) {
	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_movie_repo_list_%s_failed: %w", label, err)
	}
	defer rows.Close()

	people := []Person{}
	for rows.Next() {
		person, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_movie_repo_%s_scan_failed: %w", label, err)
		}
		people = append(people, *person)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_movie_repo_list_%s_rows_failed: %w", label, err)
	}

	return people, nil
}

/*
ListDirectors retrieves the distinct directors across the catalog.

Description: DISTINCT ON the director's name collapses repeat credits into
one record per person.

Parameters:
  - context: context.Context

Returns:
  - []Person: One entry per director name, ordered by name
  - err: Database errors
*/
func (repository *PostgresMovieRepository) ListDirectors(context context.Context) ([]Person, error) {
	const query = `
		SELECT DISTINCT ON (director->>'name') director
		FROM core.movie
		ORDER BY director->>'name'`

	return repository.listPeople(context, query, "directors")
}

/*
FindDirectorByName retrieves one director by their exact name.

Parameters:
  - context: context.Context
  - name: string

Returns:
  - *Person: The matching director
  - err: apperr.NotFound or database errors
*/
func (repository *PostgresMovieRepository) FindDirectorByName(context context.Context, name string) (*Person, error) {
	const query = `
		SELECT director
		FROM core.movie
		WHERE director->>'name' = $1
		LIMIT 1`

	person, err := scanPerson(repository.pool.QueryRow(context, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Director not found")
		}
		return nil, err
	}

	return person, nil
}

/*
ListActors retrieves the distinct actors unnested from every cast list.

Description: jsonb_array_elements flattens the per-movie cast arrays before
DISTINCT ON collapses repeat appearances.

Parameters:
  - context: context.Context

Returns:
  - []Person: One entry per actor name, ordered by name
  - err: Database errors
*/
func (repository *PostgresMovieRepository) ListActors(context context.Context) ([]Person, error) {
	const query = `
		SELECT DISTINCT ON (actor->>'name') actor
		FROM core.movie
		CROSS JOIN LATERAL jsonb_array_elements(actors) AS actor
		ORDER BY actor->>'name'`

	return repository.listPeople(context, query, "actors")
}

/*
FindActorByName retrieves one actor by their exact name.

Parameters:
  - context: context.Context
  - name: string

Returns:
  - *Person: The matching actor
  - err: apperr.NotFound or database errors
*/
func (repository *PostgresMovieRepository) FindActorByName(context context.Context, name string) (*Person, error) {
	const query = `
		SELECT actor
		FROM core.movie
		CROSS JOIN LATERAL jsonb_array_elements(actors) AS actor
		WHERE actor->>'name' = $1
		LIMIT 1`

	person, err := scanPerson(repository.pool.QueryRow(context, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Actor not found")
		}
		return nil, err
	}

	return person, nil
}
